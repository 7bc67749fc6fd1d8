package log

import (
	"io"
	"strings"
)

// Global vars related to the logger package
var (
	subLoggers = map[string]*SubLogger{}

	Global      *SubLogger
	ConfigMgr   *SubLogger
	RequestSys  *SubLogger
	ExchangeSys *SubLogger
	StrategySys *SubLogger
)

// SubLogger defines a named sub logger with its own levels and output
type SubLogger struct {
	name string
	Levels
	output io.Writer
}

// GetSubLogger returns a registered sub logger by its case insensitive name
func GetSubLogger(name string) (*SubLogger, bool) {
	mu.RLock()
	defer mu.RUnlock()
	sl, ok := subLoggers[strings.ToUpper(name)]
	return sl, ok
}

// Name returns the sub logger's registered name
func (sl *SubLogger) Name() string {
	if sl == nil {
		return ""
	}
	return sl.name
}

// SetOutput replaces the writer the sub logger emits to
func (sl *SubLogger) SetOutput(w io.Writer) {
	if sl == nil {
		return
	}
	mu.Lock()
	sl.output = w
	mu.Unlock()
}

// SetLevels replaces the enabled levels, e.g. "INFO|ERROR"
func (sl *SubLogger) SetLevels(levels string) {
	if sl == nil {
		return
	}
	mu.Lock()
	sl.Levels = splitLevel(levels)
	mu.Unlock()
}
