// Package sessions holds the per-browser state the portal keeps between
// pages: the resource selected from the catalog, the pending catalog
// update marker, the live evaluation attempt, and the submission draft.
// Everything lives in one cookie session; there are no users or logins.
package sessions

import (
	"fmt"
	"net/http"

	gorillasessions "github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const (
	selectedResourceKey = "recurso_seleccionado"
	catalogUpdatedKey   = "ultima_actualizacion"
	evalSessionKey      = "eval_session_id"
	draftKey            = "draft_id"
)

// Store is initialised once via Init.
var Store *gorillasessions.CookieStore

var sessionName = "educadigital-session"

// Init initializes the global session Store. The secure flag controls
// whether cookies are marked Secure and which SameSite mode is used:
// Secure + SameSite=None in production, Lax over http://localhost.
func Init(sessionKey, name, domain string, secure bool, logger *zap.Logger) error {
	if sessionKey == "" {
		return fmt.Errorf("session key is empty; provide ≥32 random chars")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}
	if name != "" {
		sessionName = name
	}

	store := gorillasessions.NewCookieStore([]byte(sessionKey))
	opts := &gorillasessions.Options{
		Domain:   domain,
		Path:     "/",
		Secure:   secure,
		HttpOnly: true,
	}
	if secure {
		opts.SameSite = http.SameSiteNoneMode
	} else {
		opts.SameSite = http.SameSiteLaxMode
	}
	store.Options = opts
	Store = store

	logger.Info("session store initialized",
		zap.Bool("secure", secure),
		zap.String("domain", domain))
	return nil
}

func get(r *http.Request) *gorillasessions.Session {
	sess, _ := Store.Get(r, sessionName)
	return sess
}

// SetSelectedResource remembers which catalog resource the visitor
// opened, for the detail page to pick up.
func SetSelectedResource(w http.ResponseWriter, r *http.Request, id string) error {
	sess := get(r)
	sess.Values[selectedResourceKey] = id
	return sess.Save(r, w)
}

// SelectedResource returns the resource ID remembered by
// SetSelectedResource, or "" when none is set.
func SelectedResource(r *http.Request) string {
	return getString(get(r), selectedResourceKey)
}

// ClearSelectedResource drops the remembered selection.
func ClearSelectedResource(w http.ResponseWriter, r *http.Request) error {
	sess := get(r)
	delete(sess.Values, selectedResourceKey)
	return sess.Save(r, w)
}

// MarkCatalogUpdated records that a submission just changed the catalog,
// so the next catalog view knows to show the fresh-data notice.
func MarkCatalogUpdated(w http.ResponseWriter, r *http.Request, when string) error {
	sess := get(r)
	sess.Values[catalogUpdatedKey] = when
	return sess.Save(r, w)
}

// ConsumeCatalogUpdate returns the pending update marker and clears it.
// ok is false when no update is pending.
func ConsumeCatalogUpdate(w http.ResponseWriter, r *http.Request) (when string, ok bool) {
	sess := get(r)
	when = getString(sess, catalogUpdatedKey)
	if when == "" {
		return "", false
	}
	delete(sess.Values, catalogUpdatedKey)
	_ = sess.Save(r, w)
	return when, true
}

// SetEvalSession binds the browser to a registered evaluation attempt.
func SetEvalSession(w http.ResponseWriter, r *http.Request, id string) error {
	sess := get(r)
	sess.Values[evalSessionKey] = id
	return sess.Save(r, w)
}

// EvalSession returns the bound evaluation attempt ID, or "".
func EvalSession(r *http.Request) string {
	return getString(get(r), evalSessionKey)
}

// ClearEvalSession unbinds the evaluation attempt.
func ClearEvalSession(w http.ResponseWriter, r *http.Request) error {
	sess := get(r)
	delete(sess.Values, evalSessionKey)
	return sess.Save(r, w)
}

// SetDraft binds the browser to a submission draft.
func SetDraft(w http.ResponseWriter, r *http.Request, id string) error {
	sess := get(r)
	sess.Values[draftKey] = id
	return sess.Save(r, w)
}

// Draft returns the bound submission draft ID, or "".
func Draft(r *http.Request) string {
	return getString(get(r), draftKey)
}

// ClearDraft unbinds the submission draft.
func ClearDraft(w http.ResponseWriter, r *http.Request) error {
	sess := get(r)
	delete(sess.Values, draftKey)
	return sess.Save(r, w)
}

// getString safely extracts a string from a session value.
func getString(s *gorillasessions.Session, key string) string {
	if v, ok := s.Values[key].(string); ok {
		return v
	}
	return ""
}
