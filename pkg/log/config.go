package log

import (
	"bytes"
	"fmt"
	"io"
	stdlog "log"
	"strings"
)

// Config declares how a process-wide logger is built.
type Config struct {
	Level  string // debug|info|warn|error
	Format string // text|json
	Output string // console|null

	// Writer replaces stderr as the console destination when set.
	Writer io.Writer
}

// ApplyConfig builds a Logger from cfg. Empty values fall back to info/text/console.
func ApplyConfig(cfg *Config) (Logger, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	var formatter Formatter
	switch strings.ToLower(cfg.Format) {
	case "", "text":
		formatter = &TextFormatter{}
	case "json":
		formatter = &JSONFormatter{}
	default:
		return nil, fmt.Errorf("log: unknown format %q", cfg.Format)
	}

	var output Output
	switch strings.ToLower(cfg.Output) {
	case "", "console":
		if cfg.Writer != nil {
			output = NewWriterOutput(cfg.Writer)
		} else {
			output = NewConsoleOutput()
		}
	case "null":
		output = NullOutput{}
	default:
		return nil, fmt.Errorf("log: unknown output %q", cfg.Output)
	}

	return NewLogger(WithLevel(level), WithFormatter(formatter), WithOutput(output)), nil
}

// stdWriter adapts a Logger to io.Writer for the standard library logger.
type stdWriter struct {
	logger Logger
}

func (w stdWriter) Write(p []byte) (int, error) {
	w.logger.Info(string(bytes.TrimRight(p, "\n")))
	return len(p), nil
}

// RedirectStdLog sends output of the standard library's default logger to l at info level.
func RedirectStdLog(l Logger) {
	stdlog.SetFlags(0)
	stdlog.SetPrefix("")
	stdlog.SetOutput(stdWriter{logger: l.WithComponent("stdlog")})
}
