package logging

import (
	"fmt"
	"strings"

	glog "github.com/goliatone/go-logger/glog"
)

// Config selects the level and output format of the go-logger root.
type Config struct {
	Level     string
	Format    string
	AddSource bool
}

// Levels lists the accepted level names.
var Levels = []string{"trace", "debug", "info", "warn", "error"}

// Formats lists the accepted output formats.
var Formats = []string{"console", "json", "pretty"}

var levels = map[string]string{
	"trace":   glog.Trace,
	"debug":   glog.Debug,
	"info":    glog.Info,
	"warn":    glog.Warn,
	"warning": glog.Warn,
	"error":   glog.Error,
}

func consoleOutput() glog.Option { return glog.WithLoggerTypeConsole() }

var formats = map[string]func() glog.Option{
	"":        consoleOutput,
	"console": consoleOutput,
	"json":    func() glog.Option { return glog.WithLoggerTypeJSON() },
	"pretty":  func() glog.Option { return glog.WithLoggerTypePretty() },
}

// Provider hands out named loggers sharing one go-logger root.
type Provider struct {
	root *glog.BaseLogger
}

// NewProvider builds the root logger. An empty level keeps the go-logger
// default; an empty format selects console output.
func NewProvider(cfg Config) (*Provider, error) {
	format, ok := formats[strings.ToLower(strings.TrimSpace(cfg.Format))]
	if !ok {
		return nil, fmt.Errorf("logging: unsupported format %q", cfg.Format)
	}
	options := []glog.Option{format()}

	if cfg.Level != "" {
		level, ok := levels[strings.ToLower(strings.TrimSpace(cfg.Level))]
		if !ok {
			return nil, fmt.Errorf("logging: unsupported level %q", cfg.Level)
		}
		options = append(options, glog.WithLevel(level))
	}
	if cfg.AddSource {
		options = append(options, glog.WithAddSource(true))
	}

	return &Provider{root: glog.NewLogger(options...)}, nil
}

// GetLogger returns the logger for a component. An empty name returns the
// root logger.
func (p *Provider) GetLogger(name string) Logger {
	if p == nil {
		return Nop()
	}
	if name = strings.TrimSpace(name); name == "" {
		return adapter{inner: p.root}
	}
	return adapter{inner: p.root.GetLogger(name)}
}

// adapter narrows a go-logger Logger to Logger.
type adapter struct {
	inner glog.Logger
}

func (l adapter) Debug(msg string, args ...any) { l.inner.Debug(msg, args...) }
func (l adapter) Info(msg string, args ...any)  { l.inner.Info(msg, args...) }
func (l adapter) Warn(msg string, args ...any)  { l.inner.Warn(msg, args...) }
func (l adapter) Error(msg string, args ...any) { l.inner.Error(msg, args...) }

// WithFields keeps l unchanged when the backend cannot carry fields.
func (l adapter) WithFields(fields map[string]any) Logger {
	if f, ok := l.inner.(glog.FieldsLogger); ok {
		return adapter{inner: f.WithFields(fields)}
	}
	return l
}
