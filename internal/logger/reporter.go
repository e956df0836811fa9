package logger

import "osmclean/internal/models"

// ChangeReporter logs tag changes at info level and validation warnings at
// warn level, counting both.
type ChangeReporter struct {
	log      *Logger
	changes  int
	warnings int
}

// NewChangeReporter creates a reporter logging to l.
func NewChangeReporter(l *Logger) *ChangeReporter {
	return &ChangeReporter{log: l}
}

// Change logs one tag rewrite.
func (r *ChangeReporter) Change(c models.Change) {
	r.changes++
	r.log.Info("tag changed",
		"stage", string(c.Stage),
		"element", c.Kind+"-"+c.ID,
		"old", c.OldKey+"="+c.OldVal,
		"new", c.NewKey+"="+c.NewVal,
	)
}

// Warn logs one validation warning.
func (r *ChangeReporter) Warn(w models.Warning) {
	r.warnings++
	r.log.Warn(w.Message,
		"element", w.Kind+"-"+w.ID,
		"key", w.Key,
	)
}

// Changes returns the number of changes seen.
func (r *ChangeReporter) Changes() int {
	return r.changes
}

// Warnings returns the number of warnings seen.
func (r *ChangeReporter) Warnings() int {
	return r.warnings
}
