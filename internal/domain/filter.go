package domain

const (
	OperatorEqual = "="
	OperatorILike = "ilike"
)

// Term is one [field, operator, value] triple of a search filter.
type Term struct {
	Field    string
	Operator string
	Value    any
}

// Filter is the remote search domain. An empty filter matches every record.
type Filter []Term

func MatchAll() Filter {
	return Filter{}
}

// NameFilter returns a case-insensitive substring filter on name, or MatchAll
// when name is empty.
func NameFilter(name string) Filter {
	if name == "" {
		return MatchAll()
	}
	return Filter{{Field: "name", Operator: OperatorILike, Value: name}}
}

func IDFilter(id PartnerID) Filter {
	return Filter{{Field: "id", Operator: OperatorEqual, Value: int64(id)}}
}

// Wire returns the filter in its list-of-triples form.
func (f Filter) Wire() []any {
	out := make([]any, 0, len(f))
	for _, term := range f {
		out = append(out, []any{term.Field, term.Operator, term.Value})
	}
	return out
}
