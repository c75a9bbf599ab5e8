package cmd

import (
	"errors"
	"testing"
	"time"

	"github.com/bnema/odoo-partners-cli/internal/config"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoteCallSpinnerShowsTargetAndElapsed(t *testing.T) {
	started := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	call := remoteCall{action: "Creating partner", method: "create"}
	m := newRemoteCallSpinnerModel(call, config.TransportXMLRPC, started, nil)

	next, _ := m.Update(remoteStepMsg{target: authenticateTarget})
	assert.Contains(t, next.View(), "Creating partner... (common.authenticate over xmlrpc, 0s)")

	next, _ = next.Update(remoteStepMsg{target: call.target()})
	next, _ = next.Update(spinner.TickMsg{Time: started.Add(1530 * time.Millisecond)})
	assert.Contains(t, next.View(), "(res.partner.create over xmlrpc, 1.5s)")
}

func TestRemoteCallSpinnerKeepsCallError(t *testing.T) {
	m := newRemoteCallSpinnerModel(remoteCall{action: "Deleting partner", method: "unlink"}, config.TransportJSONRPC, time.Now(), nil)
	boom := errors.New("boom")

	next, cmd := m.Update(remoteCallDoneMsg{err: boom})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	done := next.(remoteCallSpinnerModel)
	assert.True(t, done.done)
	assert.ErrorIs(t, done.err, boom)
	assert.Empty(t, done.View())
}
