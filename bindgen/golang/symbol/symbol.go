// Package symbol binds shared library functions for generated Go modules.
//
// Generated wrappers look their symbol up through a Func on every call:
//
//	var _ulCreateView symbol.Func[func(ULRenderer) ULView]
//
//	func ulCreateView(arg0 ULRenderer) ULView {
//		return _ulCreateView.Get(libHandle, purego.RegisterLibFunc, "ulCreateView")(arg0)
//	}
package symbol

import "sync"

// Loader returns the handle of the loaded library. It may panic while the
// library is not loaded.
type Loader func() uintptr

// Registrar binds the function pointed to by fptr to the named symbol of
// handle. purego.RegisterLibFunc satisfies it.
type Registrar func(fptr any, handle uintptr, name string)

// Func is a library function of type F bound on first use. The zero value
// is ready to use.
type Func[F any] struct {
	mu     sync.Mutex
	bound  bool
	handle uintptr
	fn     F
}

// Get returns the function registered for name in the library load
// returns. load runs on every call and the symbol is registered again
// whenever the handle changes, so a reloaded library is picked up. Nothing
// is recorded when load or register panics; the next call retries.
func (f *Func[F]) Get(load Loader, register Registrar, name string) F {
	handle := load()

	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.bound || f.handle != handle {
		var fn F
		register(&fn, handle, name)
		f.fn, f.handle, f.bound = fn, handle, true
	}
	return f.fn
}
