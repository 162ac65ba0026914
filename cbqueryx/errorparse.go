package cbqueryx

import (
	"regexp"
	"strings"

	"github.com/couchbase/gocbqueryx/cberrorsx"
)

var indexExistsRegexp = regexp.MustCompile(`.*?ndex .*? already exist.*`)

func parseError(errJson *queryErrorJson, readOnly bool) *ServerError {
	var err error

	errCode := errJson.Code
	errCodeGroup := errCode / 1000
	lowerMsg := strings.ToLower(errJson.Msg)

	switch errCodeGroup {
	case 4:
		err = ErrPlanningFailure
	case 5:
		err = ErrInternalServerError
		if indexExistsRegexp.MatchString(lowerMsg) {
			err = createResourceError(errJson.Msg, ErrIndexExists)
		}
	case 10:
		err = ErrAuthenticationFailure
	case 12, 14:
		err = ErrIndexFailure
	}

	switch errCode {
	case 1065:
		err = cberrorsx.CommonInvalidArgument
	case 1080:
		if readOnly {
			err = cberrorsx.CommonUnambiguousTimeout
		} else {
			err = cberrorsx.CommonAmbiguousTimeout
		}
	case 1191, 1192, 1193, 1194:
		err = ErrRateLimited
	case 3000:
		err = ErrParsingFailure
	case 4040, 4050, 4060, 4070, 4080, 4090:
		err = ErrPreparedStatementFailure
	case 4300:
		err = createResourceError(errJson.Msg, ErrIndexExists)
	case 12003:
		err = createKeyspaceNotFoundError(errJson.Msg)
	case 12004, 12016:
		err = createResourceError(errJson.Msg, ErrIndexNotFound)
	case 12009:
		err = ErrDmlFailure

		if code, ok := errJson.Reason["code"].(float64); ok && int(code) == 12033 {
			err = ErrCasMismatch
		}
		if strings.Contains(lowerMsg, "cas mismatch") {
			err = ErrCasMismatch
		}
	case 12021:
		err = createResourceError(errJson.Msg, ErrScopeNotFound)
	case 13014:
		err = ErrAuthenticationFailure
	}

	if err == nil {
		err = ErrInternalServerError
	}

	return &ServerError{
		InnerError: err,
		Code:       errJson.Code,
		Msg:        errJson.Msg,
		Retry:      errJson.Retry,
		Reason:     errJson.Reason,
	}
}

func parseErrors(errsJson []*queryErrorJson, readOnly bool) *ServerErrors {
	errs := make([]*ServerError, 0, len(errsJson))
	for _, errJson := range errsJson {
		errs = append(errs, parseError(errJson, readOnly))
	}
	return &ServerErrors{
		Errors: errs,
	}
}

func createResourceError(msg string, cause error) *ResourceError {
	err := &ResourceError{
		Cause: cause,
	}

	switch cause {
	case ErrScopeNotFound:
		_, path := splitKeyspacePath(msg)
		if path != "" {
			// bucket names may contain dots, the scope name may not
			parts := strings.Split(path, ".")
			err.BucketName = strings.Join(parts[:len(parts)-1], ".")
			err.ScopeName = parts[len(parts)-1]
		}
	case ErrIndexNotFound, ErrIndexExists:
		err.IndexName = parseIndexName(msg)
	}

	return err
}

// createKeyspaceNotFoundError handles code 12003, which is returned for
// both missing buckets and missing collections.
func createKeyspaceNotFoundError(msg string) *ResourceError {
	if idx := strings.Index(msg, "No bucket named "); idx >= 0 {
		fields := strings.Fields(msg[idx+len("No bucket named "):])
		if len(fields) > 0 {
			return &ResourceError{
				Cause:      ErrBucketNotFound,
				BucketName: fields[0],
			}
		}
	}

	_, path := splitKeyspacePath(msg)
	parts := strings.Split(path, ".")
	if len(parts) < 3 {
		return &ResourceError{
			Cause:      ErrBucketNotFound,
			BucketName: path,
		}
	}

	return &ResourceError{
		Cause:          ErrCollectionNotFound,
		BucketName:     strings.Join(parts[:len(parts)-2], "."),
		ScopeName:      parts[len(parts)-2],
		CollectionName: parts[len(parts)-1],
	}
}

// splitKeyspacePath finds a "namespace:path" token in msg and returns both
// halves.  Tokens ending with a colon are prose, not paths.
func splitKeyspacePath(msg string) (string, string) {
	for _, f := range strings.Fields(msg) {
		if strings.HasSuffix(f, ":") {
			continue
		}
		if namespace, path, found := strings.Cut(f, ":"); found {
			return namespace, path
		}
	}
	return "", ""
}

func parseIndexName(msg string) string {
	// "Index Not Found - cause: GSI index testingIndex not found."
	// "The index NewIndex already exists."
	fields := strings.Fields(msg)
	for i, f := range fields {
		if f == "index" && i+1 < len(fields) {
			return fields[i+1]
		}
	}
	return ""
}
