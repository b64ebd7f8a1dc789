package app

import (
	"time"

	"github.com/llehouerou/appshell/internal/config"
)

// keySequenceTimeout is how long a "g" prefix waits for its second key.
const keySequenceTimeout = time.Second

// ConfigReloadedMsg carries a configuration reloaded after a file change.
// Err is set when the new file could not be loaded; the old one stays active.
type ConfigReloadedMsg struct {
	Config *config.Config
	Err    error
}

// keySequenceTimeoutMsg ends the key sequence number seq.
type keySequenceTimeoutMsg struct{ seq int }
