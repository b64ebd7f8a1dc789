package keymap

import "strings"

// Resolver maps key strings to actions.
type Resolver struct {
	bindings map[string]Action
}

// NewResolver creates a resolver from bindings. When two bindings share a
// key, the later one wins.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{bindings: make(map[string]Action)}
	for _, b := range bindings {
		for _, key := range b.Keys {
			r.bindings[key] = b.Action
		}
	}
	return r
}

// Global returns a resolver for the shell-wide shortcuts.
func Global() *Resolver {
	return NewResolver(ByContext("global"))
}

// Sequence returns a resolver for g-prefixed keys, keyed by the second key.
func Sequence() *Resolver {
	var bindings []Binding
	for _, b := range ByContext("sequence") {
		var keys []string
		for _, k := range b.Keys {
			if second, ok := strings.CutPrefix(k, "g "); ok && second != "" {
				keys = append(keys, second)
			}
		}
		b.Keys = keys
		bindings = append(bindings, b)
	}
	return NewResolver(bindings)
}

// Resolve returns the action bound to key, or "".
func (r *Resolver) Resolve(key string) Action {
	return r.bindings[key]
}
