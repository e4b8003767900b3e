// Package backends provides the chart calculation providers: an external
// Swiss Ephemeris process for precision and an in-process approximation
// that is always available.
package backends

import (
	"context"

	"AstroCore/internal/domain/models"
	"AstroCore/internal/services/astro"
	applogger "AstroCore/pkg/logger"
)

// Method labels recorded on results, kept stable for API consumers.
const (
	MethodExternal = "Python + Placidus Houses"
	MethodInternal = "SwissEphemerisShim Fallback"
)

// InternalBackend computes charts with the built-in series approximations.
// It never fails outside of house calculation edge cases, which makes it
// the terminal fallback of the backend chain.
type InternalBackend struct {
	log *applogger.Logger
}

// NewInternalBackend creates the in-process backend.
func NewInternalBackend(l *applogger.Logger) *InternalBackend {
	return &InternalBackend{log: l}
}

func (b *InternalBackend) Name() string { return MethodInternal }

func (b *InternalBackend) Accuracy() models.Accuracy { return models.AccuracyApproximate }

func (b *InternalBackend) Calculate(ctx context.Context, moment models.BirthMoment, kind models.ChartKind) (*models.Chart, error) {
	if err := ctx.Err(); err != nil {
		return nil, &models.EphemerisError{Backend: b.Name(), Err: err}
	}

	chart := &models.Chart{
		Version:   models.SchemaVersion,
		Kind:      kind,
		JulianDay: moment.JulianDay,
		Positions: astro.Positions(moment.JulianDay),
	}

	if kind == models.KindNatal {
		cusps, system, err := astro.Houses(moment.JulianDay, moment.Latitude, moment.Longitude)
		if err != nil {
			return nil, err
		}
		chart.Houses = cusps
		chart.HouseSystem = system
		chart.Angles = astro.ChartAngles(cusps)
		chart.Aspects = astro.ChartAspects(chart.Positions)
	}

	return chart, nil
}
