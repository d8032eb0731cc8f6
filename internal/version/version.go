package version

import (
	"runtime"
	"time"

	"github.com/MrSnakeDoc/statuary/internal/logger"
)

// Set at build time with -ldflags "-X github.com/MrSnakeDoc/statuary/internal/version.Version=...".
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = time.Now().Format(time.RFC3339)
	GoVersion = runtime.Version()
)

// Fields returns the build metadata as log fields.
func Fields() []logger.Field {
	return []logger.Field{
		logger.String("version", Version),
		logger.String("commit", Commit),
		logger.String("built", BuildDate),
		logger.String("go", GoVersion),
	}
}
