package astro

import (
	"math"

	"AstroCore/internal/domain/models"
)

// aspectDef is one recognized aspect angle with its allowed orb.
type aspectDef struct {
	kind  models.AspectType
	angle float64
	orb   float64
}

var aspectDefs = []aspectDef{
	{models.Conjunction, 0, 8},
	{models.Sextile, 60, 6},
	{models.Square, 90, 8},
	{models.Trine, 120, 8},
	{models.Opposition, 180, 8},
}

// separation returns the angular distance between two longitudes in [0, 180].
func separation(lon1, lon2 float64) float64 {
	d := math.Abs(lon1 - lon2)
	d = math.Mod(d, 360)
	if d > 180 {
		d = 360 - d
	}
	return d
}

// isApplying reports whether the separation between two moving bodies is
// shrinking: project both forward a short step and compare.
func isApplying(p1, p2 models.Position) bool {
	const dt = 1.0 / 1440 // one minute of a day
	now := separation(p1.Longitude, p2.Longitude)
	later := separation(p1.Longitude+p1.Speed*dt, p2.Longitude+p2.Speed*dt)
	return later < now
}

// aspectBetween finds the best matching aspect for a pair, if any. When
// more than one definition is within orb the tightest match wins.
func aspectBetween(p1, p2 models.Position) (models.Aspect, bool) {
	sep := separation(p1.Longitude, p2.Longitude)

	best := models.Aspect{}
	bestDelta := math.MaxFloat64
	found := false
	for _, def := range aspectDefs {
		delta := math.Abs(sep - def.angle)
		if delta <= def.orb && delta < bestDelta {
			best = models.Aspect{
				Body1:    p1.Body,
				Body2:    p2.Body,
				Type:     def.kind,
				Angle:    sep,
				Orb:      delta,
				Applying: isApplying(p1, p2),
			}
			bestDelta = delta
			found = true
		}
	}
	return best, found
}

// ChartAspects detects aspects within one chart over unordered body pairs.
func ChartAspects(positions []models.Position) []models.Aspect {
	var out []models.Aspect
	for i := 0; i < len(positions); i++ {
		for j := i + 1; j < len(positions); j++ {
			if a, ok := aspectBetween(positions[i], positions[j]); ok {
				out = append(out, a)
			}
		}
	}
	return out
}

// CrossAspects detects aspects between two charts over the full cartesian
// product of body pairs. Body1 always belongs to the first chart.
func CrossAspects(first, second []models.Position) []models.Aspect {
	var out []models.Aspect
	for _, p1 := range first {
		for _, p2 := range second {
			if a, ok := aspectBetween(p1, p2); ok {
				out = append(out, a)
			}
		}
	}
	return out
}
