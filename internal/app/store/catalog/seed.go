// internal/app/store/catalog/seed.go
package catalogstore

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/uniajc/educadigital/internal/domain/models"
	"go.uber.org/zap"
)

// seedDocument is the shape of the seed catalog file: a single object
// wrapping the resource array.
type seedDocument struct {
	Resources []models.Resource `json:"recursos"`
}

const seedFetchTimeout = 5 * time.Second

// SeedSource resolves the read-only portion of the catalog. It tries, in
// order: an HTTP(S) seed URL, a seed file on disk, and finally a small
// built-in list, so a catalog load always has seed data to merge.
type SeedSource struct {
	url    string
	path   string
	client *http.Client
	log    *zap.Logger
}

// NewSeedSource builds a seed source. url and path may each be empty;
// an empty tier is skipped.
func NewSeedSource(url, path string, logger *zap.Logger) *SeedSource {
	return &SeedSource{
		url:    url,
		path:   path,
		client: &http.Client{Timeout: seedFetchTimeout},
		log:    logger,
	}
}

// Fetch returns the seed resources. Failures at one tier fall through to
// the next with a warning; Fetch itself never fails.
func (s *SeedSource) Fetch(ctx context.Context) []models.Resource {
	if s.url != "" {
		if rs, err := s.fetchURL(ctx); err != nil {
			s.log.Warn("seed fetch from URL failed, falling back",
				zap.String("url", s.url), zap.Error(err))
		} else {
			return rs
		}
	}
	if s.path != "" {
		if rs, err := s.readFile(); err != nil {
			s.log.Warn("seed read from file failed, falling back",
				zap.String("path", s.path), zap.Error(err))
		} else {
			return rs
		}
	}
	return builtinSeed()
}

func (s *SeedSource) fetchURL(ctx context.Context) ([]models.Resource, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	var doc seedDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode seed document: %w", err)
	}
	return s.keepValid(doc.Resources), nil
}

func (s *SeedSource) readFile() ([]models.Resource, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	var doc seedDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode seed document: %w", err)
	}
	return s.keepValid(doc.Resources), nil
}

func (s *SeedSource) keepValid(all []models.Resource) []models.Resource {
	valid := all[:0]
	for _, r := range all {
		if err := r.Validate(); err != nil {
			s.log.Warn("quarantined malformed seed record",
				zap.String("id", r.ID), zap.Error(err))
			continue
		}
		valid = append(valid, r)
	}
	return valid
}

// builtinSeed is the last-resort seed catalog, used when neither the
// seed URL nor the seed file yields data.
func builtinSeed() []models.Resource {
	return []models.Resource{
		{
			ID:          "REC-001",
			Title:       "Introducción a la Programación en Java",
			Faculty:     "Ingeniería",
			Program:     "Ingeniería de Sistemas",
			Level:       "Pregrado",
			Author:      "Prof. Carlos Mendoza",
			CreatedDate: "2024-01-15",
			Objective: models.Objective{
				Description:  "Comprender los fundamentos de la programación orientada a objetos usando Java como lenguaje de programación",
				Competencies: []string{"Variables y tipos de datos", "Estructuras de control", "POO básica", "Métodos y clases"},
			},
			Content: models.Content{
				Type:      models.ContentTypeVideo,
				URL:       "assets/videos/java-intro.mp4",
				Duration:  "15:30",
				Format:    "MP4",
				Thumbnail: "assets/images/java-thumb.jpg",
			},
			Implementation: models.Implementation{
				TeacherGuide:      "Este recurso puede utilizarse en las primeras semanas del curso de Programación I. Se recomienda complementar con ejercicios prácticos en clase.",
				StudentGuide:      "Ver el video completo y luego realizar los ejercicios propuestos en la plataforma. Duración estimada: 2 horas.",
				EstimatedTime:     "2 horas",
				RequiredMaterials: []string{"Computador", "JDK 11+", "IDE (Eclipse o IntelliJ)"},
				Prerequisites:     models.StringList{"Conocimientos básicos de informática"},
			},
			Evaluation: models.Evaluation{
				Type: models.EvaluationTypeQuiz,
				Questions: []models.Question{
					{
						Prompt: "¿Qué es una clase en Java?",
						Options: []string{
							"Un tipo de dato primitivo",
							"Una plantilla para crear objetos",
							"Un método especial",
							"Una variable global",
						},
						CorrectOption: 1,
					},
				},
				PassingScore:      70,
				ImmediateFeedback: true,
			},
			Usage: models.Usage{
				Views:     150,
				Rating:    4.5,
				Downloads: 89,
				Tags:      []string{"programación", "java", "poo", "ingeniería"},
				Featured:  true,
			},
		},
		{
			ID:          "REC-002",
			Title:       "Anatomía del Sistema Cardiovascular",
			Faculty:     "Ciencias de la Salud",
			Program:     "Enfermería",
			Level:       "Pregrado",
			Author:      "Dra. María Rodríguez",
			CreatedDate: "2024-01-10",
			Objective: models.Objective{
				Description:  "Identificar las estructuras y funciones del sistema cardiovascular humano",
				Competencies: []string{"Anatomía cardíaca", "Vasos sanguíneos", "Fisiología cardiovascular", "Sistema de conducción"},
			},
			Content: models.Content{
				Type:      models.ContentTypeInfographic,
				URL:       "assets/docs/cardiovascular-infografia.pdf",
				Duration:  "25 minutos",
				Format:    "PDF",
				Thumbnail: "assets/images/cardio-thumb.jpg",
			},
			Implementation: models.Implementation{
				TeacherGuide:      "Utilizar como material de apoyo en clases de anatomía. Puede proyectarse y explicarse sección por sección.",
				StudentGuide:      "Estudiar la infografía y realizar el esquema propuesto. Repasar antes del examen práctico.",
				EstimatedTime:     "45 minutos",
				RequiredMaterials: []string{"Tablet o computador", "Software para PDF"},
				Prerequisites:     models.StringList{"Conocimientos básicos de biología"},
			},
			Evaluation: models.Evaluation{
				Type:         models.EvaluationTypeActivity,
				Description:  "Crear un esquema del sistema cardiovascular identificando al menos 10 estructuras principales",
				PassingScore: 80,
			},
			Usage: models.Usage{
				Views:     203,
				Rating:    4.8,
				Downloads: 145,
				Tags:      []string{"anatomía", "cardiovascular", "enfermería", "salud"},
				Featured:  true,
			},
		},
	}
}
