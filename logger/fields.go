package logger

import (
	"go.uber.org/zap"
)

// Standard field names for consistent structured logging across bindgen.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Declarations
	FieldDecl    = "decl"
	FieldKind    = "kind"
	FieldPrefix  = "prefix"
	FieldAliases = "aliases"
	FieldExpr    = "expr"

	// Generation
	FieldTarget  = "target"
	FieldWorkers = "workers"
	FieldCount   = "count"
	FieldSize    = "size"

	// Files and sources
	FieldPath   = "path"
	FieldSource = "source"
	FieldConfig = "config"

	// Timing
	FieldDurationMS = "duration_ms"

	// Errors
	FieldError = "error"
)

// ComponentLogger returns a named logger for a specific component.
//
// Example:
//
//	type Watcher struct {
//	    logger *zap.SugaredLogger
//	}
//
//	func NewWatcher() *Watcher {
//	    return &Watcher{
//	        logger: logger.ComponentLogger("watch"),
//	    }
//	}
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}
