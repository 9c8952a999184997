// internal/domain/models/contenttypes.go
package models

// Canonical content type identifiers.
//
// These values are stored in Resource.Content.Type and in the seed file,
// so they use the wire (Spanish) spellings. Human-facing labels for these
// types belong in the templates.
const (
	ContentTypeVideo        = "video"
	ContentTypePDF          = "pdf"
	ContentTypeInfographic  = "infografia"
	ContentTypeEmbed        = "genially" // embedded slide deck with its own iframe markup
	ContentTypeLink         = "enlace"
	ContentTypeDocument     = "documento"
	ContentTypeSimulation   = "simulacion"
	ContentTypePresentation = "presentacion"
	ContentTypeOther        = "otro"
)

// ContentTypes is the full set of allowed content type identifiers.
//
// This slice is the single source of truth for validation and for the
// type select menu on the submission form. Any new type must be added
// here to be considered valid.
var ContentTypes = []string{
	ContentTypeVideo,
	ContentTypePDF,
	ContentTypeInfographic,
	ContentTypeEmbed,
	ContentTypeLink,
	ContentTypeDocument,
	ContentTypeSimulation,
	ContentTypePresentation,
	ContentTypeOther,
}

// IsValidContentType reports whether t is one of ContentTypes.
func IsValidContentType(t string) bool {
	for _, v := range ContentTypes {
		if v == t {
			return true
		}
	}
	return false
}
