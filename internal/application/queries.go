package application

import "github.com/bnema/odoo-partners-cli/internal/domain"

const DefaultListLimit = 10

var (
	SummaryFields = []string{domain.FieldID, domain.FieldName, domain.FieldEmail}
	DetailFields  = []string{domain.FieldID, domain.FieldName, domain.FieldEmail, domain.FieldImage}
)

type SearchPartnersQuery struct {
	Filter domain.Filter
	Fields []string
	// Limit of zero or less sends no limit.
	Limit int
}

func ListPartnersQuery(limit int, fields []string) SearchPartnersQuery {
	return SearchPartnersQuery{Filter: domain.MatchAll(), Fields: fields, Limit: limit}
}

func (q SearchPartnersQuery) options() map[string]any {
	options := map[string]any{}
	if len(q.Fields) > 0 {
		fields := make([]any, 0, len(q.Fields))
		for _, field := range q.Fields {
			fields = append(fields, field)
		}
		options["fields"] = fields
	}
	if q.Limit > 0 {
		options["limit"] = q.Limit
	}
	return options
}
