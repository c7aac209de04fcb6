package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"sync/atomic"
)

const (
	MapperMonitoring  = "map_mod"     // Bytecode mapping
	VMMonitoring      = "vm_mod"      // Constraint VM execution
	HarnessMonitoring = "harness_mod" // Driver: extraction, encoding, proving
	StoreMonitoring   = "store_mod"   // Predicate and state store
)

var root atomic.Value

func init() {
	root.Store(NewLogger(DiscardHandler()))
}

// ParseLevel accepts the padded level names case-insensitively plus a few
// aliases.
func ParseLevel(lvl string) (slog.Level, error) {
	name := strings.ToUpper(strings.TrimSpace(lvl))
	switch name {
	case "MAX", "MAXVERBOSITY":
		return levelMaxVerbosity, nil
	case "WARNING":
		return LevelWarn, nil
	case "CRITICAL":
		return LevelCrit, nil
	}
	for _, n := range levelNames {
		if strings.TrimSpace(n.name) == name {
			return n.level, nil
		}
	}
	return 0, fmt.Errorf("invalid level: %s", lvl)
}

// InitLogger installs a root logger writing text, or JSON when asJSON is
// set, to w.
func InitLogger(w io.Writer, logLevel string, asJSON bool) error {
	logLvl, err := ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	if asJSON {
		SetDefault(NewLogger(NewJSONHandlerWithLevel(w, logLvl)))
	} else {
		SetDefault(NewLogger(NewTerminalHandlerWithLevel(w, logLvl, false)))
	}
	return nil
}

// SetDefault sets the default global logger
func SetDefault(l Logger) {
	root.Store(l)
	if lg, ok := l.(*logger); ok {
		slog.SetDefault(lg.inner)
	}
}

// Root returns the root logger
func Root() Logger {
	return root.Load().(Logger)
}

var defaultKnownModules = []string{MapperMonitoring, VMMonitoring, HarnessMonitoring, StoreMonitoring}

// --- Module management ---
// moduleEnabled keeps track of whether a module's Trace/Debug logging is enabled.
var (
	moduleMu      sync.RWMutex
	moduleEnabled = make(map[string]bool, len(defaultKnownModules))
)

// EnableModule enables logging for the specified module.
func EnableModule(module string) {
	moduleMu.Lock()
	defer moduleMu.Unlock()
	moduleEnabled[module] = true
}

// DisableModule disables logging for the specified module.
func DisableModule(module string) {
	moduleMu.Lock()
	defer moduleMu.Unlock()
	moduleEnabled[module] = false
}

// EnableModules enables a comma separated module list; "all" enables every known module.
func EnableModules(modules string) {
	for _, m := range strings.Split(modules, ",") {
		m = strings.TrimSpace(m)
		switch m {
		case "":
		case "all":
			for _, known := range defaultKnownModules {
				EnableModule(known)
			}
		default:
			EnableModule(m)
		}
	}
}

// isModuleEnabled checks if logging is enabled for the given module.
func isModuleEnabled(module string) bool {
	moduleMu.RLock()
	defer moduleMu.RUnlock()
	return moduleEnabled[module]
}

// --- Adjusted logging functions ---

// Trace logs a message at the trace level for a specific module.
func Trace(module string, msg string, ctx ...interface{}) {
	if !isModuleEnabled(module) {
		return
	}
	Root().Write(LevelTrace, module, msg, ctx...)
}

// Debug logs a message at the debug level for a specific module.
func Debug(module string, msg string, ctx ...interface{}) {
	if !isModuleEnabled(module) {
		return
	}
	Root().Write(slog.LevelDebug, module, msg, ctx...)
}

// The rest of the logging functions (Info, Warn, Error, Crit, New) dont filter on module
func Info(module string, msg string, ctx ...interface{}) {
	Root().Write(slog.LevelInfo, module, msg, ctx...)
}

func Warn(module string, msg string, ctx ...interface{}) {
	Root().Write(slog.LevelWarn, module, msg, ctx...)
}

func Error(module string, msg string, ctx ...interface{}) {
	Root().Write(slog.LevelError, module, msg, ctx...)
}

// Crit logs at the crit level and exits.
func Crit(module string, msg string, ctx ...interface{}) {
	Root().Write(LevelCrit, module, msg, ctx...)
	os.Exit(1)
}

func New(ctx ...interface{}) Logger {
	return Root().With(ctx...)
}
