package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/bnema/odoo-partners-cli/internal/config"
	"github.com/bnema/odoo-partners-cli/internal/domain"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// remoteCall describes the res.partner method a command is waiting on.
type remoteCall struct {
	action string
	method string
}

func (c remoteCall) target() string {
	return domain.PartnerModel + "." + c.method
}

var authenticateTarget = string(domain.ServiceCommon) + "." + domain.MethodAuthenticate

type remoteCallDoneMsg struct {
	err error
}

// remoteStepMsg reports which remote method the call has moved on to.
type remoteStepMsg struct {
	target string
}

type remoteCallSpinnerModel struct {
	spinner   spinner.Model
	detail    lipgloss.Style
	call      remoteCall
	transport config.Transport
	target    string
	started   time.Time
	elapsed   time.Duration
	run       tea.Cmd
	err       error
	done      bool
}

func newRemoteCallSpinnerModel(call remoteCall, transport config.Transport, started time.Time, run tea.Cmd) remoteCallSpinnerModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return remoteCallSpinnerModel{
		spinner:   s,
		detail:    lipgloss.NewStyle().Faint(true),
		call:      call,
		transport: transport,
		target:    call.target(),
		started:   started,
		run:       run,
	}
}

func (m remoteCallSpinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.run)
}

func (m remoteCallSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if msg.Time.After(m.started) {
			m.elapsed = msg.Time.Sub(m.started)
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case remoteStepMsg:
		m.target = msg.target
		return m, nil
	case remoteCallDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m remoteCallSpinnerModel) View() string {
	if m.done {
		return ""
	}

	detail := fmt.Sprintf("(%s over %s, %s)", m.target, m.transport, m.elapsed.Truncate(100*time.Millisecond))
	return fmt.Sprintf("%s %s... %s", m.spinner.View(), m.call.action, m.detail.Render(detail))
}

// runRemoteCallSpinner draws a spinner on output until run returns. run
// reports each remote method it reaches through step.
func runRemoteCallSpinner(ctx context.Context, output io.Writer, call remoteCall, transport config.Transport, run func(ctx context.Context, step func(target string)) error) error {
	var p *tea.Program
	runCmd := func() tea.Msg {
		return remoteCallDoneMsg{err: run(ctx, func(target string) {
			p.Send(remoteStepMsg{target: target})
		})}
	}

	p = tea.NewProgram(
		newRemoteCallSpinnerModel(call, transport, time.Now(), runCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(remoteCallSpinnerModel)
	if !ok {
		return fmt.Errorf("unexpected final spinner model type %T", finalModel)
	}

	return result.err
}
