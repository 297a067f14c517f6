package script

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/AliyaRazyapova/theshit/internal/types"
	"go.starlark.net/starlark"
)

// ruleExt is the file extension of script rule modules.
const ruleExt = ".star"

// starlarkEngine implements Engine on go.starlark.net. The search
// path and the imported-module cache are process-wide interpreter
// state guarded by one mutex; the engine itself is a singleton
// initialized at most once per process (see DefaultEngine).
type starlarkEngine struct {
	mu          sync.Mutex
	searchPaths []string
	modules     map[string]starlark.StringDict
}

var (
	engineOnce sync.Once
	engine     *starlarkEngine
)

// DefaultEngine returns the process-wide script engine. The first call
// initializes it; the instance is never reinitialized. Concurrent use
// is serialized internally, but batches are expected to run one at a
// time within a single short-lived invocation.
func DefaultEngine() Engine {
	engineOnce.Do(func() {
		engine = &starlarkEngine{modules: make(map[string]starlark.StringDict)}
	})
	return engine
}

// newEngine creates a fresh, non-shared engine. Tests use this to
// avoid cross-test interpreter state.
func newEngine() *starlarkEngine {
	return &starlarkEngine{modules: make(map[string]starlark.StringDict)}
}

func (e *starlarkEngine) AddSearchPath(dir string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.searchPaths = append([]string{dir}, e.searchPaths...)
}

// resolve maps a dotted module name to the first matching file under
// the search paths.
func (e *starlarkEngine) resolve(name string) (string, error) {
	rel := strings.ReplaceAll(name, ".", string(filepath.Separator)) + ruleExt
	for _, dir := range e.searchPaths {
		path := filepath.Join(dir, rel)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("module %q not found under %d search path(s)", name, len(e.searchPaths))
}

func (e *starlarkEngine) Import(name string) (Module, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if globals, ok := e.modules[name]; ok {
		return starlarkModule{name: name, globals: globals}, nil
	}

	path, err := e.resolve(name)
	if err != nil {
		return nil, types.WrapError(types.KindScript, err, "cannot import %s", name)
	}

	thread := &starlark.Thread{Name: "import " + name}
	globals, err := starlark.ExecFile(thread, path, nil, nil)
	if err != nil {
		return nil, types.WrapError(types.KindScript, err, "cannot import %s", name)
	}

	e.modules[name] = globals
	return starlarkModule{name: name, globals: globals}, nil
}

type starlarkModule struct {
	name    string
	globals starlark.StringDict
}

func (m starlarkModule) Callable(name string) (Callable, error) {
	v, ok := m.globals[name]
	if !ok {
		return nil, types.NewError(types.KindScript, "module %s has no attribute %q", m.name, name)
	}
	fn, ok := v.(starlark.Callable)
	if !ok {
		return nil, types.NewError(types.KindScript, "module %s attribute %q is not callable (got %s)", m.name, name, v.Type())
	}
	return starlarkCallable{fn: fn}, nil
}

type starlarkCallable struct {
	fn starlark.Callable
}

func (c starlarkCallable) Call(args ...string) (Value, error) {
	tuple := make(starlark.Tuple, len(args))
	for i, a := range args {
		tuple[i] = starlark.String(a)
	}

	thread := &starlark.Thread{Name: "call " + c.fn.Name()}
	v, err := starlark.Call(thread, c.fn, tuple, nil)
	if err != nil {
		return nil, types.WrapError(types.KindScript, err, "call to %s failed", c.fn.Name())
	}
	return starlarkValue{v: v}, nil
}

type starlarkValue struct {
	v starlark.Value
}

func (v starlarkValue) Bool() (bool, error) {
	b, ok := v.v.(starlark.Bool)
	if !ok {
		return false, types.NewError(types.KindScript, "expected bool, got %s", v.v.Type())
	}
	return bool(b), nil
}

func (v starlarkValue) Str() (string, error) {
	s, ok := v.v.(starlark.String)
	if !ok {
		return "", types.NewError(types.KindScript, "expected string, got %s", v.v.Type())
	}
	return string(s), nil
}
