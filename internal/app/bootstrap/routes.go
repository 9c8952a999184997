// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"
	catalogfeature "github.com/uniajc/educadigital/internal/app/features/catalog"
	detailfeature "github.com/uniajc/educadigital/internal/app/features/detail"
	errorsfeature "github.com/uniajc/educadigital/internal/app/features/errors"
	evaluationfeature "github.com/uniajc/educadigital/internal/app/features/evaluation"
	healthfeature "github.com/uniajc/educadigital/internal/app/features/health"
	homefeature "github.com/uniajc/educadigital/internal/app/features/home"
	_ "github.com/uniajc/educadigital/internal/app/features/shared/views"
	submitfeature "github.com/uniajc/educadigital/internal/app/features/submit"
	"github.com/uniajc/educadigital/internal/app/system/sessions"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, backend construction, schema
// setup, and the Startup hook have completed. It initializes the cookie
// session store, boots the template engine, applies CSRF protection,
// and mounts the feature routers: home, catalog, detail, evaluation,
// submission, health, and the static/upload file servers.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	if err := sessions.Init(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger); err != nil {
		logger.Error("session store init failed", zap.Error(err))
		return nil, err
	}

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	errLog := errorsfeature.NewErrorLogger(logger)

	r := chi.NewRouter()

	// Every mutating route in the portal is a form POST; the token is
	// injected into each form via the shared view model.
	r.Use(csrf.Protect([]byte(appCfg.CSRFKey),
		csrf.Secure(secure),
		csrf.Path("/")))

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.Catalog, deps.Submissions, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Uploaded resource files
	r.Handle("/uploads/*", fileserver.Handler("/uploads", deps.Uploads.Root()))

	// Landing page
	homeHandler := homefeature.NewHandler(deps.Catalog, logger)
	r.Mount("/", homefeature.Routes(homeHandler))

	// Catalog: browse, filter, open
	catalogHandler := catalogfeature.NewHandler(deps.Catalog, errLog, logger)
	r.Mount("/recursos", catalogfeature.Routes(catalogHandler))

	// Resource detail
	detailHandler := detailfeature.NewHandler(deps.Catalog, errLog, logger)
	r.Mount("/recurso", detailfeature.Routes(detailHandler))

	// Evaluation attempts
	evalHandler := evaluationfeature.NewHandler(deps.Catalog, deps.Attempts, errLog, logger)
	r.Mount("/evaluacion", evaluationfeature.Routes(evalHandler))

	// Submission flow
	submitHandler := submitfeature.NewHandler(deps.Submissions, deps.Uploads, deps.Drafts, errLog, logger)
	r.Mount("/subir", submitfeature.Routes(submitHandler))

	// Friendly 404s for everything else
	errorsHandler := errorsfeature.NewHandler()
	r.NotFound(errorsHandler.NotFound)

	return r, nil
}
