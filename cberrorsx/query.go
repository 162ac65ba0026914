package cberrorsx

// QueryErrc is an error code specific to the query service.
type QueryErrc int

const (
	QueryPlanningFailure          QueryErrc = 201
	QueryIndexFailure             QueryErrc = 202
	QueryPreparedStatementFailure QueryErrc = 203
	QueryDmlFailure               QueryErrc = 204
)

var queryCategory = newCategory("couchbase.query", map[int]string{
	int(QueryPlanningFailure):          "planning_failure",
	int(QueryIndexFailure):             "index_failure",
	int(QueryPreparedStatementFailure): "prepared_statement_failure",
	int(QueryDmlFailure):               "dml_failure",
})

// QueryCategory returns the "couchbase.query" category.
func QueryCategory() *Category {
	return queryCategory
}

func (e QueryErrc) Error() string       { return queryCategory.Message(int(e)) }
func (e QueryErrc) Category() *Category { return queryCategory }
func (e QueryErrc) Value() int          { return int(e) }
