// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for EducaDigital.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: seed_url, session_name, etc.
//   - Environment variables: EDUCADIGITAL_SEED_URL, EDUCADIGITAL_SESSION_NAME, etc.
//   - Command-line flags: --seed_url, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "seed_url", Default: "", Desc: "Remote seed catalog URL (blank skips the network fetch)"},
	{Name: "seed_path", Default: "./data/recursos.json", Desc: "Local seed catalog file"},
	{Name: "slot_path", Default: "./data/recursos_uniajc.json", Desc: "Local submission slot file"},
	{Name: "upload_dir", Default: "./uploads", Desc: "Root directory for uploaded resource files"},

	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "educadigital-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},

	{Name: "csrf_key", Default: "dev-only-32-byte-csrf-key-0123456", Desc: "32-byte CSRF signing key (must be strong in production)"},

	{Name: "eval_session_ttl", Default: "30m", Desc: "Idle expiry for evaluation attempts (e.g., 30m, 1h)"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "EDUCADIGITAL", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		SeedURL:  appValues.String("seed_url"),
		SeedPath: appValues.String("seed_path"),
		SlotPath: appValues.String("slot_path"),

		UploadDir: appValues.String("upload_dir"),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),

		CSRFKey: appValues.String("csrf_key"),

		EvalSessionTTL: appValues.Duration("eval_session_ttl", 30*time.Minute),
	}
	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// The dev defaults for the signing keys are rejected in production.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if appCfg.SlotPath == "" {
		return fmt.Errorf("slot_path must not be empty")
	}
	if appCfg.UploadDir == "" {
		return fmt.Errorf("upload_dir must not be empty")
	}
	if len(appCfg.CSRFKey) < 32 {
		return fmt.Errorf("csrf_key must be at least 32 bytes, got %d", len(appCfg.CSRFKey))
	}
	if coreCfg.Env == "prod" {
		if appCfg.SessionKey == "dev-only-change-me-please-0123456789ABCDEF" {
			return fmt.Errorf("session_key still has the dev default; set EDUCADIGITAL_SESSION_KEY")
		}
		if appCfg.CSRFKey == "dev-only-32-byte-csrf-key-0123456" {
			return fmt.Errorf("csrf_key still has the dev default; set EDUCADIGITAL_CSRF_KEY")
		}
	}
	if appCfg.EvalSessionTTL <= 0 {
		return fmt.Errorf("eval_session_ttl must be positive")
	}
	return nil
}
