package partners

import (
	"errors"
	"io"
	"strings"

	"github.com/bnema/odoo-partners-cli/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

// partnerRowMsg asks the model to render the partner at index.
type partnerRowMsg struct {
	index int
}

type model struct {
	partners []domain.Partner
	opts     RenderOptions
	styles   styles
	idWidth  int

	lines        []string
	withoutEmail int
	done         bool
}

func newModel(partners []domain.Partner, opts RenderOptions) model {
	width := 0
	for _, partner := range partners {
		width = max(width, len(partner.ID.String()))
	}

	return model{
		partners: partners,
		opts:     opts,
		styles:   newStyles(),
		idWidth:  width,
		lines:    make([]string, 0, len(partners)+1),
	}
}

func (m model) Init() tea.Cmd {
	return nextRow(0)
}

func nextRow(index int) tea.Cmd {
	return func() tea.Msg {
		return partnerRowMsg{index: index}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	row, ok := msg.(partnerRowMsg)
	if !ok || m.done {
		return m, nil
	}

	if row.index < len(m.partners) {
		partner := m.partners[row.index]
		if partner.Email == "" {
			m.withoutEmail++
		}
		m.lines = append(m.lines, renderLine(partner, m.idWidth, m.styles))
		return m, nextRow(row.index + 1)
	}

	if len(m.partners) > 0 && m.opts.Summary {
		m.lines = append(m.lines, renderSummary(len(m.partners), m.withoutEmail, m.styles))
	}
	m.done = true
	return m, tea.Quit
}

func (m model) View() string {
	if !m.done {
		return ""
	}
	if len(m.partners) == 0 {
		return m.styles.empty.Render(m.opts.EmptyMessage)
	}
	return strings.Join(m.lines, "\n")
}

// Render formats partners one per line, IDs right-aligned.
func Render(partners []domain.Partner, opts RenderOptions) (string, error) {
	p := tea.NewProgram(
		newModel(partners, opts),
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	rendered, ok := finalModel.(model)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}

	return rendered.View(), nil
}
