package cberrorsx

// TransactionOpErrc is an error code in the transactions subsystem's own
// code space.  It is distinct from the transport level codes above.
type TransactionOpErrc int

const (
	TransactionOpGeneric                            TransactionOpErrc = 1000
	TransactionOpAtrEntryNotFound                   TransactionOpErrc = 1001
	TransactionOpAtrFull                            TransactionOpErrc = 1002
	TransactionOpAtrNotFound                        TransactionOpErrc = 1003
	TransactionOpDocumentAlreadyInTransaction       TransactionOpErrc = 1004
	TransactionOpDocumentExists                     TransactionOpErrc = 1005
	TransactionOpDocumentNotFound                   TransactionOpErrc = 1006
	TransactionOpFeatureNotAvailable                TransactionOpErrc = 1007
	TransactionOpTransactionAbortedExternally       TransactionOpErrc = 1008
	TransactionOpPreviousOperationFailed            TransactionOpErrc = 1009
	TransactionOpForwardCompatibilityFailure        TransactionOpErrc = 1010
	TransactionOpParsingFailure                     TransactionOpErrc = 1011
	TransactionOpIllegalState                       TransactionOpErrc = 1012
	TransactionOpCouchbase                          TransactionOpErrc = 1013
	TransactionOpServiceNotAvailable                TransactionOpErrc = 1014
	TransactionOpRequestCanceled                    TransactionOpErrc = 1015
	TransactionOpConcurrentOperationsOnSameDocument TransactionOpErrc = 1016
	TransactionOpCommitNotPermitted                 TransactionOpErrc = 1017
	TransactionOpRollbackNotPermitted               TransactionOpErrc = 1018
	TransactionOpTransactionAlreadyAborted          TransactionOpErrc = 1019
	TransactionOpTransactionAlreadyCommitted        TransactionOpErrc = 1020
)

var transactionOpCategory = newCategory("couchbase.transaction_op", map[int]string{
	int(TransactionOpGeneric):                            "generic",
	int(TransactionOpAtrEntryNotFound):                   "active_transaction_record_entry_not_found",
	int(TransactionOpAtrFull):                            "active_transaction_record_full",
	int(TransactionOpAtrNotFound):                        "active_transaction_record_not_found",
	int(TransactionOpDocumentAlreadyInTransaction):       "document_already_in_transaction",
	int(TransactionOpDocumentExists):                     "document_exists",
	int(TransactionOpDocumentNotFound):                   "document_not_found",
	int(TransactionOpFeatureNotAvailable):                "feature_not_available",
	int(TransactionOpTransactionAbortedExternally):       "transaction_aborted_externally",
	int(TransactionOpPreviousOperationFailed):            "previous_operation_failed",
	int(TransactionOpForwardCompatibilityFailure):        "forward_compatibility_failure",
	int(TransactionOpParsingFailure):                     "parsing_failure",
	int(TransactionOpIllegalState):                       "illegal_state",
	int(TransactionOpCouchbase):                          "couchbase",
	int(TransactionOpServiceNotAvailable):                "service_not_available",
	int(TransactionOpRequestCanceled):                    "request_canceled",
	int(TransactionOpConcurrentOperationsOnSameDocument): "concurrent_operations_detected_on_same_document",
	int(TransactionOpCommitNotPermitted):                 "commit_not_permitted",
	int(TransactionOpRollbackNotPermitted):               "rollback_not_permitted",
	int(TransactionOpTransactionAlreadyAborted):          "transaction_already_aborted",
	int(TransactionOpTransactionAlreadyCommitted):        "transaction_already_committed",
})

// TransactionOpCategory returns the "couchbase.transaction_op" category.
func TransactionOpCategory() *Category {
	return transactionOpCategory
}

func (e TransactionOpErrc) Error() string       { return transactionOpCategory.Message(int(e)) }
func (e TransactionOpErrc) Category() *Category { return transactionOpCategory }
func (e TransactionOpErrc) Value() int          { return int(e) }
