// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	submitfeature "github.com/uniajc/educadigital/internal/app/features/submit"
	catalogstore "github.com/uniajc/educadigital/internal/app/store/catalog"
	submissionstore "github.com/uniajc/educadigital/internal/app/store/submissions"
	"github.com/uniajc/educadigital/internal/app/system/evalsessions"
	"github.com/uniajc/educadigital/internal/app/system/uploads"
)

// DBDeps holds the portal's storage and state backends. There is no
// external database; everything is file-backed or in-memory.
type DBDeps struct {
	Submissions *submissionstore.Store
	Catalog     *catalogstore.Store
	Uploads     *uploads.Store
	Attempts    *evalsessions.Registry
	Drafts      *submitfeature.Drafts
}
