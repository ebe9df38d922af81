// Package xlog wraps logrus with lumberjack-backed file rotation,
// giving the server and client packages a small Logger interface
// instead of a direct logrus dependency, so tests can inject a no-op
// implementation.
package xlog

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures a Logrus logger. The zero value logs to stderr
// at Info level.
type Options struct {
	Level          string // "debug", "info", "warn", "error"; default "info"
	Dir            string // rotation directory; empty means stderr only
	FileName       string // default "starry.log"
	FileMaxSizeMiB int    // default 100
	FileMaxCount   int    // default 7 backups
}

// Logger is the logging collaborator the server and client packages
// depend on.
type Logger interface {
	WithFields(fields logrus.Fields) *logrus.Entry
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// Logrus is the production Logger, backed by a *logrus.Logger with an
// optional lumberjack-rotated file output.
type Logrus struct {
	*logrus.Logger
}

// New builds a Logrus logger from opts.
func New(opts Options) *Logrus {
	l := logrus.New()
	l.SetFormatter(&logrus.JSONFormatter{})

	level, err := logrus.ParseLevel(orDefault(opts.Level, "info"))
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	var out io.Writer = os.Stderr
	if opts.Dir != "" {
		out = io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   opts.Dir + "/" + orDefault(opts.FileName, "starry.log"),
			MaxSize:    orDefaultInt(opts.FileMaxSizeMiB, 100),
			MaxBackups: orDefaultInt(opts.FileMaxCount, 7),
		})
	}
	l.SetOutput(out)

	return &Logrus{Logger: l}
}

func (l *Logrus) WithFields(fields logrus.Fields) *logrus.Entry {
	return l.Logger.WithFields(fields)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func orDefaultInt(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// noop discards everything; useful for tests that don't want log
// output interleaved with test output.
type noop struct{}

// NewNoop returns a Logger that discards all records.
func NewNoop() Logger { return noop{} }

func (noop) WithFields(logrus.Fields) *logrus.Entry {
	return logrus.NewEntry(silentLogger)
}
func (noop) Debugf(string, ...interface{}) {}
func (noop) Infof(string, ...interface{})  {}
func (noop) Warnf(string, ...interface{})  {}
func (noop) Errorf(string, ...interface{}) {}

var silentLogger = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}()
