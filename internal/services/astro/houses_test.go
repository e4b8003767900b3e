package astro

import (
	"math"
	"testing"
	"time"

	"AstroCore/internal/domain/models"
)

// Reference scenario: 1879-03-14 11:30 UT at 48.4N 10.0E. The known chart
// has the Ascendant in Gemini and the Midheaven in Pisces.
func referenceJD() float64 {
	return JulianDay(time.Date(1879, 3, 14, 11, 30, 0, 0, time.UTC))
}

func TestHousesReferenceChart(t *testing.T) {
	cusps, system, err := Houses(referenceJD(), 48.4, 10.0)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if system != models.Placidus {
		t.Fatalf("expected placidus, got %s", system)
	}
	if len(cusps) != 12 {
		t.Fatalf("expected 12 cusps, got %d", len(cusps))
	}
	if cusps[0].Sign != "Gemini" {
		t.Fatalf("ascendant sign: expected Gemini, got %s (%.2f)", cusps[0].Sign, cusps[0].Longitude)
	}
	if cusps[0].Longitude < 70 || cusps[0].Longitude > 85 {
		t.Fatalf("ascendant longitude %.2f outside expected 70..85", cusps[0].Longitude)
	}
	if cusps[9].Sign != "Pisces" {
		t.Fatalf("midheaven sign: expected Pisces, got %s (%.2f)", cusps[9].Sign, cusps[9].Longitude)
	}
	if cusps[9].Longitude < 335 || cusps[9].Longitude > 355 {
		t.Fatalf("midheaven longitude %.2f outside expected 335..355", cusps[9].Longitude)
	}
	for i, c := range cusps {
		if c.House != i+1 {
			t.Fatalf("cusp %d numbered %d", i, c.House)
		}
	}
}

func TestHousesMonotonicAroundZodiac(t *testing.T) {
	cusps, _, err := Houses(referenceJD(), 48.4, 10.0)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	total := 0.0
	for i := 0; i < 12; i++ {
		next := cusps[(i+1)%12].Longitude
		delta := models.NormalizeDegrees(next - cusps[i].Longitude)
		if delta <= 0 || delta >= 180 {
			t.Fatalf("cusp %d -> %d spans %.4f degrees", i+1, (i+1)%12+1, delta)
		}
		total += delta
	}
	if math.Abs(total-360) > 1e-6 {
		t.Fatalf("cusps do not close the circle: %v", total)
	}
}

func TestHousesOppositePairs(t *testing.T) {
	cusps, _, err := Houses(referenceJD(), 48.4, 10.0)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	for i := 0; i < 6; i++ {
		want := models.NormalizeDegrees(cusps[i].Longitude + 180)
		got := cusps[i+6].Longitude
		if math.Abs(models.NormalizeDegrees(got-want)) > 1e-6 {
			t.Fatalf("houses %d and %d not opposite: %.6f vs %.6f", i+1, i+7, cusps[i].Longitude, got)
		}
	}
}

// High non-polar latitudes can produce converged Placidus cusps whose
// ring is out of order. Those cases must fall back to equal houses, so
// every returned cusp set stays ordered through a full year.
func TestHousesHighLatitudeOrdering(t *testing.T) {
	for _, lat := range []float64{60, -60, 66, -66} {
		for day := 0; day < 365; day++ {
			jd := referenceJD() + float64(day)
			cusps, system, err := Houses(jd, lat, 10.0)
			if err != nil {
				t.Fatalf("lat %.0f jd %.2f: unexpected error %v", lat, jd, err)
			}
			for i := 0; i < 12; i++ {
				next := cusps[(i+1)%12].Longitude
				delta := models.NormalizeDegrees(next - cusps[i].Longitude)
				if delta <= 0 || delta >= 180 {
					t.Fatalf("lat %.0f jd %.2f system %s: cusp %d -> %d spans %.2f degrees",
						lat, jd, system, i+1, (i+1)%12+1, delta)
				}
			}
		}
	}
}

func TestHousesPolarFallback(t *testing.T) {
	cusps, system, err := Houses(referenceJD(), 85.0, 10.0)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if system != models.EqualHouse {
		t.Fatalf("expected equal house fallback, got %s", system)
	}
	for i := 1; i < 12; i++ {
		delta := models.NormalizeDegrees(cusps[i].Longitude - cusps[i-1].Longitude)
		if math.Abs(delta-30) > 1e-9 {
			t.Fatalf("equal cusps not 30 degrees apart: %v", delta)
		}
	}
}

func TestHousesRejectsBadLatitude(t *testing.T) {
	if _, _, err := Houses(referenceJD(), 91, 0); err == nil {
		t.Fatalf("expected error for latitude 91")
	}
	if _, _, err := Houses(referenceJD(), math.NaN(), 0); err == nil {
		t.Fatalf("expected error for NaN latitude")
	}
}

func TestChartAngles(t *testing.T) {
	cusps, _, err := Houses(referenceJD(), 48.4, 10.0)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	angles := ChartAngles(cusps)
	if angles == nil {
		t.Fatalf("expected angles")
	}
	if angles.Ascendant.Longitude != cusps[0].Longitude {
		t.Fatalf("ascendant must equal house 1")
	}
	if angles.Midheaven.Longitude != cusps[9].Longitude {
		t.Fatalf("midheaven must equal house 10")
	}
	wantDesc := models.NormalizeDegrees(angles.Ascendant.Longitude + 180)
	if math.Abs(angles.Descendant.Longitude-wantDesc) > 1e-9 {
		t.Fatalf("descendant not opposite ascendant")
	}

	if ChartAngles(cusps[:6]) != nil {
		t.Fatalf("expected nil angles for short cusp slice")
	}
}
