package panzoom

import (
	"log/slog"
	"time"
)

// episodeStats holds per-episode frame counts and timing.
// Only reported when debug mode is on.
type episodeStats struct {
	kind    string
	frames  int
	started time.Time
}

func (s *episodeStats) begin(kind string) {
	if s.kind != "" {
		// Already inside an episode; keep counting it.
		return
	}
	s.kind = kind
	s.frames = 0
	s.started = time.Now()
}

func (s *episodeStats) frame() {
	s.frames++
}

// debugLog reports the episode that just finished.
func (c *controller) debugLog() {
	if !c.debug || c.stats.kind == "" {
		return
	}
	c.logger.Debug("episode finished",
		slog.String("kind", c.stats.kind),
		slog.Int("frames", c.stats.frames),
		slog.Duration("wall", time.Since(c.stats.started)),
		slog.Float64("zoomLevel", c.base.ZoomLevel),
		slog.Float64("panX", c.base.Pan.X),
		slog.Float64("panY", c.base.Pan.Y),
	)
}

// SetDebugMode enables or disables debug mode. When enabled, every finished
// animation or kinetic episode is logged at debug level with its frame count
// and final state.
func (e *Engine) SetDebugMode(enabled bool) {
	e.c.debug = enabled
}

// loggerOrDefault falls back to slog.Default tagged with the component name.
func loggerOrDefault(l *slog.Logger) *slog.Logger {
	if l != nil {
		return l
	}
	return slog.Default().With(slog.String("component", "panzoom"))
}
