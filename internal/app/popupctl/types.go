package popupctl

// Type identifies an application-level popup.
type Type int

const (
	None Type = iota
	Help
	Error // config reload failures
)

func (t Type) String() string {
	switch t {
	case Help:
		return "help"
	case Error:
		return "error"
	}
	return "none"
}

// rank orders open popups: the highest rank receives keys and draws on top.
func (t Type) rank() int {
	switch t {
	case Error:
		return 2
	case Help:
		return 1
	}
	return 0
}
