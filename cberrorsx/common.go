package cberrorsx

// CommonErrc is an error code shared by every service.
type CommonErrc int

const (
	CommonRequestCanceled       CommonErrc = 2
	CommonInvalidArgument       CommonErrc = 3
	CommonServiceNotAvailable   CommonErrc = 4
	CommonInternalServerFailure CommonErrc = 5
	CommonAuthenticationFailure CommonErrc = 6
	CommonTemporaryFailure      CommonErrc = 7
	CommonParsingFailure        CommonErrc = 8
	CommonCasMismatch           CommonErrc = 9
	CommonBucketNotFound        CommonErrc = 10
	CommonCollectionNotFound    CommonErrc = 11
	CommonUnsupportedOperation  CommonErrc = 12
	CommonAmbiguousTimeout      CommonErrc = 13
	CommonUnambiguousTimeout    CommonErrc = 14
	CommonFeatureNotAvailable   CommonErrc = 15
	CommonScopeNotFound         CommonErrc = 16
	CommonIndexNotFound         CommonErrc = 17
	CommonIndexExists           CommonErrc = 18
	CommonEncodingFailure       CommonErrc = 19
	CommonDecodingFailure       CommonErrc = 20
	CommonRateLimited           CommonErrc = 21
	CommonQuotaLimited          CommonErrc = 22
)

var commonCategory = newCategory("couchbase.common", map[int]string{
	int(CommonRequestCanceled):       "request_canceled",
	int(CommonInvalidArgument):       "invalid_argument",
	int(CommonServiceNotAvailable):   "service_not_available",
	int(CommonInternalServerFailure): "internal_server_failure",
	int(CommonAuthenticationFailure): "authentication_failure",
	int(CommonTemporaryFailure):      "temporary_failure",
	int(CommonParsingFailure):        "parsing_failure",
	int(CommonCasMismatch):           "cas_mismatch",
	int(CommonBucketNotFound):        "bucket_not_found",
	int(CommonCollectionNotFound):    "collection_not_found",
	int(CommonUnsupportedOperation):  "unsupported_operation",
	int(CommonAmbiguousTimeout):      "ambiguous_timeout",
	int(CommonUnambiguousTimeout):    "unambiguous_timeout",
	int(CommonFeatureNotAvailable):   "feature_not_available",
	int(CommonScopeNotFound):         "scope_not_found",
	int(CommonIndexNotFound):         "index_not_found",
	int(CommonIndexExists):           "index_exists",
	int(CommonEncodingFailure):       "encoding_failure",
	int(CommonDecodingFailure):       "decoding_failure",
	int(CommonRateLimited):           "rate_limited",
	int(CommonQuotaLimited):          "quota_limited",
})

// CommonCategory returns the "couchbase.common" category.
func CommonCategory() *Category {
	return commonCategory
}

func (e CommonErrc) Error() string       { return commonCategory.Message(int(e)) }
func (e CommonErrc) Category() *Category { return commonCategory }
func (e CommonErrc) Value() int          { return int(e) }
