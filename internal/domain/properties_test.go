package domain

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestPartnerDraftProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("empty optional fields are omitted from the payload", prop.ForAll(
		func(name string) bool {
			values := PartnerDraft{Name: name}.Values()
			_, hasEmail := values[FieldEmail]
			_, hasImage := values[FieldImage]
			return !hasEmail && !hasImage && values[FieldName] == name && len(values) == 1
		},
		gen.AnyString(),
	))

	properties.Property("non-empty optional fields are sent verbatim", prop.ForAll(
		func(name, email, image string) bool {
			values := PartnerDraft{Name: name, Email: email, Image: image}.Values()
			return values[FieldEmail] == email && values[FieldImage] == image
		},
		gen.AlphaString(),
		gen.AlphaString().SuchThat(func(s string) bool { return s != "" }),
		gen.AlphaString().SuchThat(func(s string) bool { return s != "" }),
	))

	properties.TestingRun(t)
}

func TestNameFilterProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("non-empty names produce one ilike term", prop.ForAll(
		func(name string) bool {
			filter := NameFilter(name)
			return len(filter) == 1 && filter[0].Operator == OperatorILike && filter[0].Value == name
		},
		gen.AnyString().SuchThat(func(s string) bool { return s != "" }),
	))

	properties.Property("id filters wrap exactly one id", prop.ForAll(
		func(id int64) bool {
			wire := IDFilter(PartnerID(id)).Wire()
			if len(wire) != 1 {
				return false
			}
			term, ok := wire[0].([]any)
			return ok && len(term) == 3 && term[2] == id
		},
		gen.Int64Range(1, 1<<40),
	))

	properties.TestingRun(t)
}
