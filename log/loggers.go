package log

import (
	"fmt"
	"log"
	"strings"
	"time"
)

// Info takes a pointer subLogger struct and string and writes it if the info
// level is enabled
func Info(sl *SubLogger, data string) {
	write(sl, levelInfo, func() string { return data })
}

// Infoln takes a pointer subLogger struct and interface and writes it
func Infoln(sl *SubLogger, v ...interface{}) {
	write(sl, levelInfo, func() string { return fmt.Sprint(v...) })
}

// Infof takes a pointer subLogger struct, string and interface formats and
// writes it
func Infof(sl *SubLogger, data string, v ...interface{}) {
	write(sl, levelInfo, func() string { return fmt.Sprintf(data, v...) })
}

// Debugf takes a pointer subLogger struct, string and interface formats and
// writes it
func Debugf(sl *SubLogger, data string, v ...interface{}) {
	write(sl, levelDebug, func() string { return fmt.Sprintf(data, v...) })
}

// Warnf takes a pointer subLogger struct, string and interface formats and
// writes it
func Warnf(sl *SubLogger, data string, v ...interface{}) {
	write(sl, levelWarn, func() string { return fmt.Sprintf(data, v...) })
}

// Errorln takes a pointer subLogger struct & interface and writes it
func Errorln(sl *SubLogger, v ...interface{}) {
	write(sl, levelError, func() string { return fmt.Sprint(v...) })
}

// Errorf takes a pointer subLogger struct, string and interface formats and
// writes it
func Errorf(sl *SubLogger, data string, v ...interface{}) {
	write(sl, levelError, func() string { return fmt.Sprintf(data, v...) })
}

type level uint8

const (
	levelInfo level = iota
	levelWarn
	levelDebug
	levelError
)

func (l Levels) enabled(lvl level) bool {
	switch lvl {
	case levelInfo:
		return l.Info
	case levelWarn:
		return l.Warn
	case levelDebug:
		return l.Debug
	case levelError:
		return l.Error
	}
	return false
}

func (l *Logger) header(lvl level) string {
	switch lvl {
	case levelInfo:
		return l.InfoHeader
	case levelWarn:
		return l.WarnHeader
	case levelDebug:
		return l.DebugHeader
	default:
		return l.ErrorHeader
	}
}

// write formats and emits a log line; the message is only rendered when the
// level is enabled
func write(sl *SubLogger, lvl level, msg func() string) {
	if sl == nil {
		return
	}
	mu.RLock()
	defer mu.RUnlock()
	if !logger.Enabled || sl.output == nil || !sl.Levels.enabled(lvl) {
		return
	}
	var b strings.Builder
	b.WriteString(logger.header(lvl))
	b.WriteString(logger.Spacer)
	if logger.ShowLogSystemName {
		b.WriteString(sl.name)
		b.WriteString(logger.Spacer)
	}
	b.WriteString(time.Now().Format(logger.TimestampFormat))
	b.WriteString(logger.Spacer)
	b.WriteString(msg())
	b.WriteByte('\n')
	displayError(writeString(sl, b.String()))
}

func writeString(sl *SubLogger, s string) error {
	_, err := sl.output.Write([]byte(s))
	return err
}

func displayError(err error) {
	if err != nil {
		log.Printf("Logger write error: %v\n", err)
	}
}
