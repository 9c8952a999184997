// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// EnsureSchema prepares the on-disk layout: the slot directory and the
// upload root must exist and be writable before the first request.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	slotDir := filepath.Dir(appCfg.SlotPath)
	if err := os.MkdirAll(slotDir, 0o755); err != nil {
		return fmt.Errorf("create slot directory %s: %w", slotDir, err)
	}
	if err := os.MkdirAll(appCfg.UploadDir, 0o755); err != nil {
		return fmt.Errorf("create upload directory %s: %w", appCfg.UploadDir, err)
	}
	return nil
}
