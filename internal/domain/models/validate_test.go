package models

import (
	"errors"
	"testing"
)

func validResource() Resource {
	return Resource{
		ID:      "REC-001",
		Title:   "Introducción a la Programación en Java",
		Faculty: "Ingeniería",
		Level:   "Pregrado",
		Author:  "Prof. Carlos Mendoza",
		Objective: Objective{
			Description:  "Comprender los fundamentos de la POO",
			Competencies: []string{"Variables", "Estructuras de control"},
		},
		Content: Content{Type: ContentTypeVideo, URL: "assets/videos/java-intro.mp4"},
		Evaluation: Evaluation{
			Type: EvaluationTypeQuiz,
			Questions: []Question{
				{Prompt: "¿Qué es una clase?", Options: []string{"Un tipo primitivo", "Una plantilla"}, CorrectOption: 1},
			},
			PassingScore: 70,
		},
		Usage: Usage{Tags: []string{"java", "poo"}},
	}
}

func TestValidate_OK(t *testing.T) {
	if err := validResource().Validate(); err != nil {
		t.Fatalf("Validate failed on valid resource: %v", err)
	}
}

func TestValidate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Resource)
	}{
		{"missing id", func(r *Resource) { r.ID = "  " }},
		{"missing title", func(r *Resource) { r.Title = "" }},
		{"no competencies", func(r *Resource) { r.Objective.Competencies = nil }},
		{"unknown content type", func(r *Resource) { r.Content.Type = "hologram" }},
		{"unknown evaluation type", func(r *Resource) { r.Evaluation.Type = "examen" }},
		{"question with one option", func(r *Resource) {
			r.Evaluation.Questions[0].Options = []string{"solo una"}
		}},
		{"answer index out of range", func(r *Resource) {
			r.Evaluation.Questions[0].CorrectOption = 5
		}},
		{"negative views", func(r *Resource) { r.Usage.Views = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validResource()
			tt.mutate(&r)
			err := r.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !errors.Is(err, ErrMalformedResource) {
				t.Errorf("expected ErrMalformedResource, got %v", err)
			}
		})
	}
}

func TestValidate_EmptyTypesAllowed(t *testing.T) {
	// Seed records may omit content/evaluation types entirely; the loaders
	// decide the defaults, not the validator.
	r := validResource()
	r.Content.Type = ""
	r.Evaluation = Evaluation{}
	if err := r.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
}

func TestFacultyName(t *testing.T) {
	tests := []struct {
		code string
		want string
		ok   bool
	}{
		{"ingenieria", "Ingeniería", true},
		{"salud", "Ciencias de la Salud", true},
		{"educacion", "Educación", true},
		{"derecho", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got, ok := FacultyName(tt.code)
			if ok != tt.ok || got != tt.want {
				t.Errorf("FacultyName(%q) = %q, %v; want %q, %v", tt.code, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestIsValidContentType(t *testing.T) {
	for _, v := range ContentTypes {
		if !IsValidContentType(v) {
			t.Errorf("IsValidContentType(%q) = false, want true", v)
		}
	}
	if IsValidContentType("podcast") {
		t.Error("IsValidContentType(\"podcast\") = true, want false")
	}
}
