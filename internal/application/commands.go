package application

import "github.com/bnema/odoo-partners-cli/internal/domain"

type CreatePartnerCommand struct {
	Draft domain.PartnerDraft
}

type DeletePartnerCommand struct {
	ID domain.PartnerID
}
