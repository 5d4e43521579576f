package annunciator

import (
	"context"

	"go.uber.org/zap"

	"github.com/oshokin/engine-supervisor/internal/logger"
)

// Console renders indicator changes as log lines. It stands in for the
// physical annunciator in simulate mode and headless development.
type Console struct {
	// log is the named logger lines are reported through.
	log *zap.SugaredLogger
}

// NewConsole creates a console annunciator logging through the context logger.
func NewConsole(ctx context.Context) *Console {
	return &Console{
		log: logger.FromContext(ctx).Named("annunciator"),
	}
}

// Info switches the info line.
func (c *Console) Info(on bool) {
	c.report("info", on)
}

// Warning switches the warning line.
func (c *Console) Warning(on bool) {
	c.report("warning", on)
}

// Critical switches the critical line.
func (c *Console) Critical(on bool) {
	c.report("critical", on)
}

// report logs a line change. Only activations are interesting at info level;
// the clear-then-set sequence would otherwise triple the noise.
func (c *Console) report(line string, on bool) {
	if on {
		c.log.Infow("Indicator on", "line", line)
		return
	}

	c.log.Debugw("Indicator off", "line", line)
}
