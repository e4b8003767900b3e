package service

import (
	"context"

	"AstroCore/internal/domain/models"
)

// ChartBackend computes a chart from a normalized moment. Implementations
// must be safe for concurrent use and honor context cancellation.
type ChartBackend interface {
	// Name returns the method label recorded on results this backend
	// produced.
	Name() string
	// Accuracy classifies the backend's precision.
	Accuracy() models.Accuracy
	// Calculate produces positions, and for natal charts houses and
	// aspects, for the given moment.
	Calculate(ctx context.Context, moment models.BirthMoment, kind models.ChartKind) (*models.Chart, error)
}

// SynastryScorer turns cross-chart aspects into category ratings.
type SynastryScorer interface {
	Score(aspects []models.Aspect) models.CompatibilityResult
}
