package cberrorsx

// ViewErrc is an error code specific to the views service.
type ViewErrc int

const (
	ViewNotFound           ViewErrc = 501
	DesignDocumentNotFound ViewErrc = 502
)

var viewCategory = newCategory("couchbase.view", map[int]string{
	int(ViewNotFound):           "view_not_found",
	int(DesignDocumentNotFound): "design_document_not_found",
})

// ViewCategory returns the "couchbase.view" category.
func ViewCategory() *Category {
	return viewCategory
}

func (e ViewErrc) Error() string       { return viewCategory.Message(int(e)) }
func (e ViewErrc) Category() *Category { return viewCategory }
func (e ViewErrc) Value() int          { return int(e) }
