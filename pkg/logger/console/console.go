package console

import (
	"os"

	"github.com/charmbracelet/log"
)

// Console writes structured log lines to stderr.
type Console struct {
	logger *log.Logger
}

// Params configures a Console backend.
type Params struct {
	Debug bool
}

// New creates a console backend. Debug lowers the level threshold to DEBUG.
func New(params Params) *Console {
	level := log.InfoLevel
	if params.Debug {
		level = log.DebugLevel
	}
	return &Console{
		logger: log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Level:           level,
		}),
	}
}

func (c *Console) Log(message string, keyvals ...any) {
	c.logger.Print(message, keyvals...)
}

func (c *Console) Debug(message string, keyvals ...any) {
	c.logger.Debug(message, keyvals...)
}

func (c *Console) Info(message string, keyvals ...any) {
	c.logger.Info(message, keyvals...)
}

func (c *Console) Warn(message string, keyvals ...any) {
	c.logger.Warn(message, keyvals...)
}

func (c *Console) Error(message string, keyvals ...any) {
	c.logger.Error(message, keyvals...)
}

func (c *Console) Fatal(message string, keyvals ...any) {
	c.logger.Fatal(message, keyvals...)
}
