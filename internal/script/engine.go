package script

// The embedded script runtime is consumed through this narrow port:
// import a module by dotted name, look up an attribute, call it, and
// extract a typed result. The host never depends on runtime internals,
// so the Starlark implementation below could be swapped without
// touching the loader.

// Engine imports rule modules by dotted name, resolving them against
// its registered search paths.
type Engine interface {
	// AddSearchPath registers dir at the head of the module search
	// path, so later imports resolve under it first.
	AddSearchPath(dir string)
	// Import loads the module by dotted name. Parse and evaluation
	// errors of the module body surface here.
	Import(name string) (Module, error)
}

// Module is an imported script rule module.
type Module interface {
	// Callable looks up a function by name. Missing attributes and
	// non-callable values are errors.
	Callable(name string) (Callable, error)
}

// Callable is an invocable function inside a module.
type Callable interface {
	// Call invokes the function with string positional arguments.
	// An error raised inside the script surfaces here.
	Call(args ...string) (Value, error)
}

// Value is a result produced by a script call.
type Value interface {
	// Bool extracts a boolean; a non-boolean value is an error,
	// never coerced.
	Bool() (bool, error)
	// Str extracts a string; a non-string value is an error,
	// never coerced.
	Str() (string, error)
}
