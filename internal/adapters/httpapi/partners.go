package httpapi

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/bnema/odoo-partners-cli/internal/application"
	"github.com/bnema/odoo-partners-cli/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

const maxCreateBodyBytes = 32 << 20

const createPartnerSchema = `{
	"type": "object",
	"required": ["name"],
	"properties": {
		"name": {"type": "string"},
		"email": {"type": ["string", "null"]},
		"image_1920": {"type": ["string", "null"]}
	}
}`

var createPartnerValidator = jsonschema.MustCompileString("partner_create.json", createPartnerSchema)

type createPartnerRequest struct {
	Name  string  `json:"name"`
	Email *string `json:"email"`
	Image *string `json:"image_1920"`
}

// RegisterRoutes registers partner routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/partners", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/search", h.Search)
		r.Get("/{id}", h.Get)
		r.Delete("/{id}", h.Delete)
	})
}

// List returns the first partners including their image.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	h.search(w, r, domain.MatchAll())
}

// Search matches partners by name; an empty name lists everything.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	h.search(w, r, domain.NameFilter(r.URL.Query().Get("name")))
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request, filter domain.Filter) {
	session, err := h.auth.Authenticate(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	records, err := h.partners.Search(r.Context(), session, application.SearchPartnersQuery{
		Filter: filter,
		Fields: application.DetailFields,
		Limit:  PageLimit,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	JSON(w, http.StatusOK, records)
}

// Get returns one partner by id.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParsePartnerID(chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	session, err := h.auth.Authenticate(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	record, found, err := h.partners.Get(r.Context(), session, id, application.DetailFields)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if !found {
		Error(w, http.StatusNotFound, fmt.Sprintf("partner %s not found", id))
		return
	}

	JSON(w, http.StatusOK, record)
}

// Create validates the body before authenticating, so malformed input never
// reaches the remote service.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	draft, err := decodeCreatePartner(r.Body)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	session, err := h.auth.Authenticate(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	id, err := h.partners.Create(r.Context(), session, application.CreatePartnerCommand{Draft: draft})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	JSON(w, http.StatusOK, map[string]any{"id": id})
}

// Delete unlinks one partner and reports the remote result.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParsePartnerID(chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	session, err := h.auth.Authenticate(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	deleted, err := h.partners.Delete(r.Context(), session, application.DeletePartnerCommand{ID: id})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	JSON(w, http.StatusOK, map[string]any{"deleted": deleted})
}

func decodeCreatePartner(body io.Reader) (domain.PartnerDraft, error) {
	data, err := io.ReadAll(io.LimitReader(body, maxCreateBodyBytes))
	if err != nil {
		return domain.PartnerDraft{}, invalidBody(fmt.Errorf("read body: %w", err))
	}

	var document any
	if err := json.Unmarshal(data, &document); err != nil {
		return domain.PartnerDraft{}, invalidBody(fmt.Errorf("decode body: %w", err))
	}
	if err := createPartnerValidator.Validate(document); err != nil {
		return domain.PartnerDraft{}, invalidBody(err)
	}

	var req createPartnerRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return domain.PartnerDraft{}, invalidBody(fmt.Errorf("decode body: %w", err))
	}

	draft := domain.PartnerDraft{Name: req.Name}
	if req.Email != nil {
		draft.Email = *req.Email
	}
	if req.Image != nil {
		draft.Image = *req.Image
		if draft.Image != "" {
			if _, err := base64.StdEncoding.DecodeString(draft.Image); err != nil {
				return domain.PartnerDraft{}, invalidBody(fmt.Errorf("image_1920 is not valid base64: %w", err))
			}
		}
	}

	if err := draft.Validate(); err != nil {
		return domain.PartnerDraft{}, err
	}
	return draft, nil
}

func invalidBody(err error) error {
	return domain.NewFailure(domain.FailureValidation, "decode partner", err)
}
