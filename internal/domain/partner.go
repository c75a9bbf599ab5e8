package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

const PartnerModel = "res.partner"

const (
	FieldID    = "id"
	FieldName  = "name"
	FieldEmail = "email"
	FieldImage = "image_1920"
)

type PartnerID int64

func (id PartnerID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

func ParsePartnerID(raw string) (PartnerID, error) {
	value, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || value <= 0 {
		return 0, NewFailure(FailureValidation, "parse partner id", fmt.Errorf("invalid partner id %q", raw))
	}
	return PartnerID(value), nil
}

// Record is a partner exactly as the remote service returned it.
type Record map[string]any

type Partner struct {
	ID    PartnerID
	Name  string
	Email string
	Image string
}

// PartnerFromRecord decodes the typed view of a record. The remote service
// reports unset text fields as false; those decode to "".
func PartnerFromRecord(record Record) (Partner, error) {
	id, err := AsInt64(record[FieldID])
	if err != nil {
		return Partner{}, fmt.Errorf("partner id: %w", err)
	}

	return Partner{
		ID:    PartnerID(id),
		Name:  asText(record[FieldName]),
		Email: asText(record[FieldEmail]),
		Image: asText(record[FieldImage]),
	}, nil
}

// PartnerDraft is the input of a create call.
type PartnerDraft struct {
	Name  string
	Email string
	Image string
}

func (d PartnerDraft) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return NewFailure(FailureValidation, "validate partner", fmt.Errorf("name is required"))
	}
	return nil
}

// Values builds the create payload. Empty optional fields are left out
// instead of being sent as empty values.
func (d PartnerDraft) Values() map[string]any {
	values := map[string]any{FieldName: d.Name}
	if d.Email != "" {
		values[FieldEmail] = d.Email
	}
	if d.Image != "" {
		values[FieldImage] = d.Image
	}
	return values
}

func asText(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case nil, bool:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// AsInt64 converts the integer encodings produced by both codecs.
func AsInt64(value any) (int64, error) {
	switch v := value.(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case float64:
		if v != float64(int64(v)) {
			return 0, fmt.Errorf("non-integer number %v", v)
		}
		return int64(v), nil
	case json.Number:
		return v.Int64()
	default:
		return 0, fmt.Errorf("unexpected value %v (%T)", value, value)
	}
}

// Truthy mirrors the remote service's notion of a falsy result: false, nil,
// zero and empty values.
func Truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case []any:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	default:
		n, err := AsInt64(value)
		if err != nil {
			return true
		}
		return n != 0
	}
}
