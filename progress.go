package pixeltable

import "log/slog"

// Progress receives one notification per polygon reshaped. It is purely
// observational: implementations must not assume any effect on the output
// table or its ordering.
type Progress interface {
	Polygon(done, total int, id string)
}

// ProgressFunc adapts a function to the Progress interface.
type ProgressFunc func(done, total int, id string)

func (f ProgressFunc) Polygon(done, total int, id string) { f(done, total, id) }

// LogProgress reports each processed polygon at debug level on the given
// logger.
func LogProgress(logger *slog.Logger) Progress {
	return ProgressFunc(func(done, total int, id string) {
		logger.Debug("polygon reshaped", "done", done, "total", total, "polygon_id", id)
	})
}
