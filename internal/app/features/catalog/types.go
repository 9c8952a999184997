// internal/app/features/catalog/types.go
package catalog

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/query"
	catalogstore "github.com/uniajc/educadigital/internal/app/store/catalog"
	"github.com/uniajc/educadigital/internal/app/system/viewdata"
	"github.com/uniajc/educadigital/internal/domain/models"
)

// filtersVM echoes the active filters back into the filter bar.
type filtersVM struct {
	Search  string
	Faculty string
	Type    string
	Level   string
}

// listPageData is the view model for the catalog page and its grid
// partial.
type listPageData struct {
	viewdata.BaseVM
	Resources []models.Resource
	Count     int
	Filters   filtersVM

	// Select menu options.
	FacultyCodes []facultyOption
	ContentTypes []string
	Levels       []string
}

type facultyOption struct {
	Code string
	Name string
}

// facultyOptions pairs filter codes with display names for the faculty
// select menu.
func facultyOptions() []facultyOption {
	codes := []string{
		models.FacultyCodeEngineering,
		models.FacultyCodeHealth,
		models.FacultyCodeEducation,
	}
	opts := make([]facultyOption, 0, len(codes))
	for _, code := range codes {
		name, _ := models.FacultyName(code)
		opts = append(opts, facultyOption{Code: code, Name: name})
	}
	return opts
}

// parseQuery reads the filter parameters from the request.
func parseQuery(r *http.Request) (catalogstore.Query, filtersVM) {
	q := catalogstore.Query{
		Search:  query.Search(r, "q"),
		Faculty: query.Get(r, "facultad"),
		Type:    query.Get(r, "tipo"),
		Level:   query.Get(r, "nivel"),
	}
	vm := filtersVM{
		Search:  q.Search,
		Faculty: q.Faculty,
		Type:    q.Type,
		Level:   q.Level,
	}
	return q, vm
}
