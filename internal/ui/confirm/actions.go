package confirm

import "github.com/llehouerou/appshell/internal/ui/action"

// Source identifies messages emitted by the prompt.
const Source = "confirm"

// Result is the prompt's outcome. Context is returned unchanged so the
// owner can tell its own prompt apart from others on the page.
type Result struct {
	Confirmed      bool
	Context        any
	SelectedOption int // index into Options in multi-option mode
}

func (Result) ActionType() string { return "confirm.result" }

func ActionMsg(a action.Action) action.Msg {
	return action.New(Source, a)
}
