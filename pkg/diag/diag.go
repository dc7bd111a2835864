// Package diag collects pipeline diagnostics so that callers and tests can
// inspect them, instead of scraping log output. Every diagnostic is also
// mirrored to the supplied slog.Logger.
package diag

import (
	"fmt"
	"log/slog"
)

type Severity int

const (
	SeverityDebug Severity = iota
	SeverityInfo
	SeverityWarn
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarn:
		return "warn"
	case SeverityError:
		return "error"
	}
	return fmt.Sprintf("severity(%d)", int(s))
}

// Diagnostic is a single recorded event.
type Diagnostic struct {
	Severity Severity
	Message  string
}

// Collector accumulates diagnostics for one pipeline run.
// It is not safe for concurrent use; the pipeline is single-threaded.
type Collector struct {
	log     *slog.Logger
	entries []Diagnostic
}

func NewCollector(log *slog.Logger) *Collector {
	if log == nil {
		log = slog.Default()
	}
	return &Collector{log: log}
}

func (c *Collector) add(sev Severity, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	c.entries = append(c.entries, Diagnostic{Severity: sev, Message: msg})
	switch sev {
	case SeverityDebug:
		c.log.Debug(msg)
	case SeverityInfo:
		c.log.Info(msg)
	case SeverityWarn:
		c.log.Warn(msg)
	case SeverityError:
		c.log.Error(msg)
	}
}

func (c *Collector) Debugf(format string, args ...any) { c.add(SeverityDebug, format, args...) }
func (c *Collector) Infof(format string, args ...any)  { c.add(SeverityInfo, format, args...) }
func (c *Collector) Warnf(format string, args ...any)  { c.add(SeverityWarn, format, args...) }
func (c *Collector) Errorf(format string, args ...any) { c.add(SeverityError, format, args...) }

// Entries returns all recorded diagnostics in order.
func (c *Collector) Entries() []Diagnostic {
	return c.entries
}

// Count returns the number of diagnostics with exactly the given severity.
func (c *Collector) Count(sev Severity) int {
	n := 0
	for _, d := range c.entries {
		if d.Severity == sev {
			n++
		}
	}
	return n
}

// Messages returns the messages recorded at the given severity.
func (c *Collector) Messages(sev Severity) []string {
	var out []string
	for _, d := range c.entries {
		if d.Severity == sev {
			out = append(out, d.Message)
		}
	}
	return out
}
