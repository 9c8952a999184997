// internal/domain/models/faculties.go
package models

// Faculty filter codes used in catalog URLs, mapped to the canonical
// display names stored on resources. An unknown code matches nothing.
const (
	FacultyCodeEngineering = "ingenieria"
	FacultyCodeHealth      = "salud"
	FacultyCodeEducation   = "educacion"
)

// facultyNames maps filter codes to canonical faculty names.
var facultyNames = map[string]string{
	FacultyCodeEngineering: "Ingeniería",
	FacultyCodeHealth:      "Ciencias de la Salud",
	FacultyCodeEducation:   "Educación",
}

// FacultyName resolves a filter code to its canonical display name.
// ok is false for unknown codes.
func FacultyName(code string) (name string, ok bool) {
	name, ok = facultyNames[code]
	return name, ok
}

// Faculties lists the canonical faculty names in a stable order, for
// select menus.
var Faculties = []string{
	"Ingeniería",
	"Ciencias de la Salud",
	"Educación",
}

// Levels lists the education levels offered on the submission form and
// used by the catalog level filter.
var Levels = []string{
	"Pregrado",
	"Posgrado",
	"Educación Continua",
}
