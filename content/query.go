package content

// QueryOptions narrows down article list and count queries.
type QueryOptions struct {
	Limit      int
	Offset     int
	Category   Category
	OlderFirst bool
}

// QueryOpt mutates query options.
type QueryOpt struct {
	f func(*QueryOptions)
}

// Paging limits the result to limit articles, skipping the first offset
// ones. A zero limit means no limit.
func Paging(limit, offset int) QueryOpt {
	return QueryOpt{func(o *QueryOptions) {
		o.Limit = limit
		o.Offset = offset
	}}
}

// ForCategory selects the articles with the given category.
func ForCategory(c Category) QueryOpt {
	return QueryOpt{func(o *QueryOptions) {
		o.Category = c
	}}
}

// OlderFirst orders the articles by ascending publication date.
var OlderFirst = QueryOpt{func(o *QueryOptions) {
	o.OlderFirst = true
}}

// Apply folds the given options into o.
func (o *QueryOptions) Apply(opts []QueryOpt) {
	for _, opt := range opts {
		if opt.f != nil {
			opt.f(o)
		}
	}
}
