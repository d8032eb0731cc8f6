package utils

import (
	"io"

	"github.com/MrSnakeDoc/statuary/internal/logger"
)

// CloseLogged closes c and logs the outcome under the given name.
// Used on shutdown where a close error must not abort the sequence.
func CloseLogged(c io.Closer, name string, log logger.Logger) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		log.Warn("failed to close", logger.String("resource", name), logger.Error(err))
		return
	}
	log.Info("closed cleanly", logger.String("resource", name))
}
