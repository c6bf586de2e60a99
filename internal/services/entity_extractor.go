package services

import (
	"context"
	"fmt"
	"strings"

	"alfredoptarigan/resume-scorer/internal/models"
)

// NER labels the classifier understands. Comparison is case-insensitive.
const (
	LabelOrganization = "ORG"
	LabelPerson       = "PERSON"
	LabelTitle        = "TITLE"
	LabelEducation    = "EDUCATION"
	LabelDegree       = "DEGREE"
)

// Entity is one labelled span returned by a NER service.
type Entity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// EntityRecognizer is the NER collaborator.
type EntityRecognizer interface {
	Recognize(ctx context.Context, text string) ([]Entity, error)
}

type EntityExtractor interface {
	Extract(ctx context.Context, text string) (models.EntitySet, error)
}

type entityExtractor struct {
	recognizer EntityRecognizer
}

func NewEntityExtractor(recognizer EntityRecognizer) EntityExtractor {
	return &entityExtractor{recognizer: recognizer}
}

// Extract implements EntityExtractor.
func (e *entityExtractor) Extract(ctx context.Context, text string) (models.EntitySet, error) {
	entities, err := e.recognizer.Recognize(ctx, text)
	if err != nil {
		return models.EntitySet{}, fmt.Errorf("failed to recognize entities: %w", err)
	}

	return ClassifyEntities(entities), nil
}

// ClassifyEntities sorts spans into roles, organizations and degrees.
// Organizations count towards roles as well; order and duplicates are preserved.
func ClassifyEntities(entities []Entity) models.EntitySet {
	set := models.EntitySet{
		Roles:         []string{},
		Organizations: []string{},
		Degrees:       []string{},
	}

	for _, ent := range entities {
		switch strings.ToUpper(strings.TrimSpace(ent.Label)) {
		case LabelOrganization:
			set.Roles = append(set.Roles, ent.Text)
			set.Organizations = append(set.Organizations, ent.Text)
		case LabelPerson, LabelTitle:
			set.Roles = append(set.Roles, ent.Text)
		case LabelEducation, LabelDegree:
			set.Degrees = append(set.Degrees, ent.Text)
		}
	}

	return set
}
