package popupctl

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/appshell/internal/ui/popup"
	"github.com/llehouerou/appshell/internal/ui/render"
	"github.com/llehouerou/appshell/internal/ui/styles"
)

// errorPopup shows a message until any key is pressed.
type errorPopup struct {
	theme     styles.Source
	message   string
	width     int
	dismissed bool
}

func (e *errorPopup) Init() tea.Cmd { return nil }

func (e *errorPopup) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		e.dismissed = true
	}
	return e, nil
}

func (e *errorPopup) SetSize(width, _ int) { e.width = width }

func (e *errorPopup) View() string {
	s := e.theme.Theme().S()
	width := max(min(e.width-10, 60), 10)
	return strings.Join([]string{
		s.Error.Bold(true).Render("Error"),
		"",
		render.Wrap(e.message, width),
		"",
		s.Subtle.Render("Press any key to dismiss"),
	}, "\n")
}
