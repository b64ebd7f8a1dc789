// Package action is how popups and prompts report user decisions to the
// component that owns them.
package action

// Action is a decision a component reports, such as a confirmation result.
// Type names it in logs.
type Action interface {
	ActionType() string
}

// Msg carries an Action together with the component that produced it.
type Msg struct {
	Source string // "confirm", "helpbindings"
	Action Action
}

// New wraps a under source.
func New(source string, a Action) Msg {
	return Msg{Source: source, Action: a}
}

// From returns the action carried by msg when msg is an action.Msg from
// source.
func From(msg any, source string) (Action, bool) {
	m, ok := msg.(Msg)
	if !ok || m.Source != source {
		return nil, false
	}
	return m.Action, true
}
