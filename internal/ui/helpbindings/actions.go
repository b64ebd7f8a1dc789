package helpbindings

import "github.com/llehouerou/appshell/internal/ui/action"

// Source identifies messages emitted by the help popup.
const Source = "helpbindings"

// Close asks the owner to hide the help popup.
type Close struct{}

func (Close) ActionType() string { return "helpbindings.close" }

func ActionMsg(a action.Action) action.Msg {
	return action.New(Source, a)
}
