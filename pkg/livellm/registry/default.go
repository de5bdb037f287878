package registry

import "sync"

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default returns the process-wide singleton registry with built-ins
// pre-registered. Callers needing an isolated registry should use New
// instead; both are supported side by side.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultReg = New(nil)
		RegisterBuiltIns(defaultReg)
	})
	return defaultReg
}
