package partners

import (
	"fmt"

	"github.com/bnema/odoo-partners-cli/internal/domain"
)

const noEmailLabel = "no email"

type RenderOptions struct {
	// EmptyMessage is printed instead of the list when there are no partners.
	EmptyMessage string
	// Summary appends a count line after a non-empty list.
	Summary bool
}

// renderLine prints "ID: NAME (EMAIL)" with the ID padded to idWidth.
func renderLine(partner domain.Partner, idWidth int, s styles) string {
	email := s.email.Render(partner.Email)
	if partner.Email == "" {
		email = s.noEmail.Render(noEmailLabel)
	}

	return fmt.Sprintf("%s %s (%s)",
		s.id.Render(fmt.Sprintf("%*s:", idWidth, partner.ID)),
		s.name.Render(partner.Name),
		email,
	)
}

func renderSummary(total, withoutEmail int, s styles) string {
	noun := "partners"
	if total == 1 {
		noun = "partner"
	}
	if withoutEmail == 0 {
		return s.summary.Render(fmt.Sprintf("%d %s", total, noun))
	}
	return s.summary.Render(fmt.Sprintf("%d %s, %d without email", total, noun, withoutEmail))
}
