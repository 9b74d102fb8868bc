package query

// Pagination is the cursor-style page request passed to repository list
// methods; a nil Pagination means "no paging".
type Pagination struct {
	Limit *int
	After *uint
	Order string
}
