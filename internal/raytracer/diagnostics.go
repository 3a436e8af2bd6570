package raytracer

import (
	"fmt"

	"go.uber.org/zap"
)

// DiagnosticCode classifies a message reported while building or querying a
// scene.
type DiagnosticCode int

const (
	DiagnosticUnknown DiagnosticCode = iota
	DiagnosticInvalidArgument
	DiagnosticInvalidOperation
)

func (c DiagnosticCode) String() string {
	switch c {
	case DiagnosticUnknown:
		return "unknown"
	case DiagnosticInvalidArgument:
		return "invalid argument"
	case DiagnosticInvalidOperation:
		return "invalid operation"
	default:
		return fmt.Sprintf("DiagnosticCode(%d)", int(c))
	}
}

// DiagnosticFunc receives scene diagnostics. It is never called with
// DiagnosticUnknown.
type DiagnosticFunc func(code DiagnosticCode, message string)

// logDiagnostics is the default handler.
func logDiagnostics(log *zap.Logger) DiagnosticFunc {
	return func(code DiagnosticCode, message string) {
		log.Warn(message, zap.Stringer("code", code))
	}
}

// filtered drops DiagnosticUnknown before calling fn.
func filtered(fn DiagnosticFunc) DiagnosticFunc {
	return func(code DiagnosticCode, message string) {
		if code == DiagnosticUnknown || fn == nil {
			return
		}
		fn(code, message)
	}
}
