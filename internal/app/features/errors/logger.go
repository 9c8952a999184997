// internal/app/features/errors/logger.go
package errors

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// ErrorLogger pairs structured logging with user-facing error pages, so
// handlers report failures in one call: the technical details go to the
// log, the visitor sees a friendly message with a way back.
type ErrorLogger struct {
	log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger over the app logger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: logger}
}

// LogServerError logs err at error level and renders a 500 page with
// userMsg. backURL may be empty; a safe back URL is resolved then.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg, backURL string) {
	e.log.Error(logMsg,
		zap.Error(err),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path))
	e.render(w, r, http.StatusInternalServerError, "Ha ocurrido un error", userMsg, backURL)
}

// LogBadRequest logs err at warn level and renders a 400 page.
func (e *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg, backURL string) {
	e.log.Warn(logMsg,
		zap.Error(err),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path))
	e.render(w, r, http.StatusBadRequest, "Solicitud inválida", userMsg, backURL)
}

// LogNotFound logs at info level and renders a 404 page.
func (e *ErrorLogger) LogNotFound(w http.ResponseWriter, r *http.Request, logMsg, userMsg, backURL string) {
	e.log.Info(logMsg,
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path))
	e.render(w, r, http.StatusNotFound, "No encontrado", userMsg, backURL)
}

func (e *ErrorLogger) render(w http.ResponseWriter, r *http.Request, status int, title, userMsg, backURL string) {
	if backURL == "" {
		backURL = httpnav.ResolveBackURL(r, "/recursos")
	}
	data := pageData{
		Title:   title,
		Message: userMsg,
		BackURL: backURL,
	}
	w.WriteHeader(status)
	templates.Render(w, r, "error_page", data)
}
