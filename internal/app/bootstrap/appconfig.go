// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS,
// logging, request limits); AppConfig is everything specific to the
// portal: where the catalog seed lives, where submissions and uploads
// are stored, and the cookie/CSRF secrets.
type AppConfig struct {
	// Catalog seed configuration. The remote URL is tried first, then
	// the local file, then the built-in records.
	SeedURL  string // remote seed document URL (blank skips the network fetch)
	SeedPath string // local seed document path

	// Local submission slot (the user-submitted part of the catalog).
	SlotPath string

	// Upload storage.
	UploadDir string // root directory for uploaded resource files

	// Session management configuration
	SessionKey    string // secret key for signing session cookies (must be strong in production)
	SessionName   string // cookie name for sessions (default: educadigital-session)
	SessionDomain string // cookie domain (blank means current host)

	// CSRF protection
	CSRFKey string // 32-byte key for CSRF token signing

	// Evaluation attempts expire after this much inactivity.
	EvalSessionTTL time.Duration
}
