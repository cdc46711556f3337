package urlkit

import (
	"fmt"
	"log/slog"
	"slices"
)

// WarningKind classifies advisory warnings raised by mutation operations.
type WarningKind uint8

const (
	// WarnConflict signals that overlapping parameters were passed to a single
	// operation, e.g. both netloc and host. The operation still succeeds
	// deterministically, the narrower parameter wins.
	WarnConflict WarningKind = iota + 1
	// WarnEncoding signals that an improperly encoded string was received in
	// strict mode. The input is still accepted best-effort.
	WarnEncoding
)

// String returns the kind name.
func (k WarningKind) String() string {
	switch k {
	case WarnConflict:
		return "conflict"
	case WarnEncoding:
		return "encoding"
	default:
		return "unknown"
	}
}

// Warning is a non-fatal advisory signal emitted by mutation operations.
// Warnings never abort the operation that raised them.
type Warning struct {
	Kind WarningKind
	Text string
}

// String returns the warning as "kind: text".
func (w Warning) String() string {
	return w.Kind.String() + ": " + w.Text
}

// diagnostics collects warnings raised during a single top-level operation
// and mirrors them to the configured logger. A nil sink drops everything.
type diagnostics struct {
	logger   *slog.Logger
	warnings []Warning
}

func (d *diagnostics) warnf(kind WarningKind, format string, args ...any) {
	if d == nil {
		return
	}
	w := Warning{Kind: kind, Text: fmt.Sprintf(format, args...)}
	d.warnings = append(d.warnings, w)
	if d.logger != nil {
		d.logger.Warn(w.Text, "kind", w.Kind)
	}
}

func (d *diagnostics) reset() {
	if d == nil {
		return
	}
	d.warnings = d.warnings[:0]
}

func (d *diagnostics) list() []Warning {
	if d == nil {
		return nil
	}
	return slices.Clone(d.warnings)
}
