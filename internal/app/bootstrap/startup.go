// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after the backends
// are built, but before the HTTP handler. It warms the catalog once so
// the first page view does not pay for the seed fetch, and starts the
// evaluation attempt sweeper for the life of the process.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	warm := deps.Catalog.Load(ctx)
	logger.Info("catalog warmed",
		zap.Int("resources", len(warm)),
		zap.Int("submissions", len(deps.Submissions.Load(ctx))))

	deps.Attempts.StartSweeper(context.Background())
	return nil
}
