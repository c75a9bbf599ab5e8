package application

import (
	"context"
	"fmt"

	"github.com/bnema/odoo-partners-cli/internal/domain"
)

const (
	MethodSearchRead = "search_read"
	MethodCreate     = "create"
	MethodUnlink     = "unlink"
)

type PartnerService struct {
	gateway *Gateway
}

func NewPartnerService(gateway *Gateway) *PartnerService {
	return &PartnerService{gateway: gateway}
}

// Search returns records in the order the remote service produced them.
func (s *PartnerService) Search(ctx context.Context, session domain.Session, query SearchPartnersQuery) ([]domain.Record, error) {
	filter := query.Filter
	if filter == nil {
		filter = domain.MatchAll()
	}

	result, err := s.gateway.ExecuteKW(ctx, session, domain.RemoteCallRequest{
		Model:   domain.PartnerModel,
		Method:  MethodSearchRead,
		Args:    []any{filter.Wire()},
		Options: query.options(),
	})
	if err != nil {
		return nil, fmt.Errorf("search partners: %w", err)
	}

	records, err := decodeRecords(result)
	if err != nil {
		return nil, domain.NewFailure(domain.FailureMalformedResponse, "search partners", err)
	}
	return records, nil
}

func (s *PartnerService) Get(ctx context.Context, session domain.Session, id domain.PartnerID, fields []string) (domain.Record, bool, error) {
	records, err := s.Search(ctx, session, SearchPartnersQuery{Filter: domain.IDFilter(id), Fields: fields, Limit: 1})
	if err != nil {
		return nil, false, err
	}
	if len(records) == 0 {
		return nil, false, nil
	}
	return records[0], true, nil
}

func (s *PartnerService) Create(ctx context.Context, session domain.Session, cmd CreatePartnerCommand) (domain.PartnerID, error) {
	if err := cmd.Draft.Validate(); err != nil {
		return 0, err
	}

	result, err := s.gateway.ExecuteKW(ctx, session, domain.RemoteCallRequest{
		Model:  domain.PartnerModel,
		Method: MethodCreate,
		Args:   []any{cmd.Draft.Values()},
	})
	if err != nil {
		return 0, fmt.Errorf("create partner: %w", err)
	}

	id, err := domain.AsInt64(result)
	if err != nil {
		return 0, domain.NewFailure(domain.FailureMalformedResponse, "create partner", err)
	}
	return domain.PartnerID(id), nil
}

// Delete reports whether the remote service confirmed the unlink.
func (s *PartnerService) Delete(ctx context.Context, session domain.Session, cmd DeletePartnerCommand) (bool, error) {
	result, err := s.gateway.ExecuteKW(ctx, session, domain.RemoteCallRequest{
		Model:  domain.PartnerModel,
		Method: MethodUnlink,
		Args:   []any{[]any{int64(cmd.ID)}},
	})
	if err != nil {
		return false, fmt.Errorf("delete partner %s: %w", cmd.ID, err)
	}
	return domain.Truthy(result), nil
}

func decodeRecords(result any) ([]domain.Record, error) {
	if result == nil {
		return []domain.Record{}, nil
	}

	items, ok := result.([]any)
	if !ok {
		return nil, fmt.Errorf("expected a list of records, got %T", result)
	}

	records := make([]domain.Record, 0, len(items))
	for i, item := range items {
		record, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("record %d: expected an object, got %T", i, item)
		}
		records = append(records, domain.Record(record))
	}
	return records, nil
}

// Partners decodes the typed view of each record, keeping their order.
func Partners(records []domain.Record) ([]domain.Partner, error) {
	partners := make([]domain.Partner, 0, len(records))
	for _, record := range records {
		partner, err := domain.PartnerFromRecord(record)
		if err != nil {
			return nil, err
		}
		partners = append(partners, partner)
	}
	return partners, nil
}
