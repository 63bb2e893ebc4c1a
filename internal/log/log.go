// Package log provides the colored, namespaced console logger.
//
// Debug output is off by default. It is enabled per logger with the DEBUG
// field, or for every logger whose prefix matches the DEBUG environment
// variable, a glob such as "evbridge:*".
package log

import (
	_log "log"
	"os"
	"regexp"
	"strings"
	"sync"

	"github.com/gookit/color"
)

type Log struct {
	*_log.Logger

	DEBUG bool

	mu              sync.RWMutex // protects the following fields
	prefix          string
	namespaceRegexp *regexp.Regexp
}

func NewLog(prefix string) *Log {
	l := &Log{
		Logger: _log.New(os.Stderr, "", 0),
	}

	if prefix != "" {
		l.SetPrefix(prefix)
	}

	if debug := os.Getenv("DEBUG"); debug != "" {
		l.namespaceRegexp = regexp.MustCompile("^" + strings.ReplaceAll(regexp.QuoteMeta(strings.TrimSpace(debug)), `\*`, `.*`) + "$")
	}
	return l
}

func (d *Log) checkNamespace(namespace string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.namespaceRegexp != nil {
		return d.namespaceRegexp.MatchString(namespace)
	}
	return false
}

// DebugEnabled reports whether Debug writes anything.
func (d *Log) DebugEnabled() bool {
	return d.DEBUG || d.checkNamespace(d.Prefix())
}

// Info logs in the info color.
func (d *Log) Info(message string, args ...any) {
	d.Logger.Println(color.Info.Sprintf(message, args...))
}

// Debug logs only when debugging is enabled for this logger.
func (d *Log) Debug(message string, args ...any) {
	if d.DebugEnabled() {
		d.Logger.Println(color.Debug.Sprintf(message, args...))
	}
}

// Success logs in the success color.
func (d *Log) Success(message string, args ...any) {
	d.Logger.Println(color.Success.Sprintf(message, args...))
}

// Error logs in the danger color.
func (d *Log) Error(message string, args ...any) {
	d.Logger.Println(color.Danger.Sprintf(message, args...))
}

// Warning logs in the warning color.
func (d *Log) Warning(message string, args ...any) {
	d.Logger.Println(color.Warn.Sprintf(message, args...))
}

// Fatal logs in the error color and exits.
func (d *Log) Fatal(message string, args ...any) {
	d.Logger.Fatal(color.Error.Sprintf(message, args...))
}

// Prefix returns the output prefix for the logger.
func (d *Log) Prefix() string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.prefix
}

// SetPrefix sets the output prefix for the logger.
func (d *Log) SetPrefix(prefix string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.prefix = prefix

	d.Logger.SetPrefix(prefix + " ")
}
