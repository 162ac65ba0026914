package transactionsx

import (
	"errors"

	"github.com/couchbase/gocbqueryx/cberrorsx"
)

// translateQueryError maps the error a query dispatch ended with onto the
// transaction_op category.  override is the code the caller wants reported
// and is nil when it has no preference.
//
// A parsing failure always becomes TransactionOpParsingFailure, even over an
// explicit override.  Any other failure keeps the override when there is one.
func translateQueryError(queryErr, override error) error {
	if queryErr == nil {
		return override
	}

	if errors.Is(queryErr, cberrorsx.CommonParsingFailure) {
		return cberrorsx.TransactionOpParsingFailure
	}

	if override == nil {
		return cberrorsx.TransactionOpGeneric
	}

	return override
}
