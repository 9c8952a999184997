// internal/app/bootstrap/connect.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	submitfeature "github.com/uniajc/educadigital/internal/app/features/submit"
	catalogstore "github.com/uniajc/educadigital/internal/app/store/catalog"
	submissionstore "github.com/uniajc/educadigital/internal/app/store/submissions"
	"github.com/uniajc/educadigital/internal/app/system/evalsessions"
	"github.com/uniajc/educadigital/internal/app/system/uploads"
	"go.uber.org/zap"
)

// ConnectDB builds the portal's backends. Nothing here opens a network
// connection at startup; the seed URL is only fetched on catalog loads,
// and a failed fetch falls back to the local file and built-in records.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	subs := submissionstore.New(appCfg.SlotPath, logger)
	seed := catalogstore.NewSeedSource(appCfg.SeedURL, appCfg.SeedPath, logger)

	return DBDeps{
		Submissions: subs,
		Catalog:     catalogstore.New(subs, seed, logger),
		Uploads:     uploads.New(appCfg.UploadDir, logger),
		Attempts:    evalsessions.New(appCfg.EvalSessionTTL, logger),
		Drafts:      submitfeature.NewDrafts(),
	}, nil
}
