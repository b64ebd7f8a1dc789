package testutil

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/appshell/internal/ui/popup"
)

// PopupHarness drives a popup.Popup, keeping the popup each Update returns
// and recording the commands. Init's command is recorded on creation.
type PopupHarness struct {
	recorder
	popup popup.Popup
}

func NewPopupHarness(p popup.Popup) *PopupHarness {
	h := &PopupHarness{popup: p}
	h.send = h.SendMsg
	h.keep(p.Init())
	return h
}

// Popup returns the current popup for type assertions.
func (h *PopupHarness) Popup() popup.Popup { return h.popup }

func (h *PopupHarness) SetSize(width, height int) { h.popup.SetSize(width, height) }

func (h *PopupHarness) View() string { return h.popup.View() }

func (h *PopupHarness) SendMsg(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	h.popup, cmd = h.popup.Update(msg)
	return h.keep(cmd)
}

// ExecuteAndSend runs cmd and feeds its message back into the popup.
func (h *PopupHarness) ExecuteAndSend(cmd tea.Cmd) (tea.Msg, tea.Cmd) {
	msg := ExecuteCmd(cmd)
	if msg == nil {
		return nil, nil
	}
	return msg, h.SendMsg(msg)
}

// ViewContains reports whether one rendered line contains substr.
func (h *PopupHarness) ViewContains(substr string) bool {
	return ContainsLine(StripANSI(h.View()), substr)
}

func (h *PopupHarness) AssertViewContains(substr string) string {
	return AssertContains(h.View(), substr)
}

func (h *PopupHarness) AssertViewNotContains(substr string) string {
	return AssertNotContains(h.View(), substr)
}
