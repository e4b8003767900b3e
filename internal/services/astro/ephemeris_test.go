package astro

import (
	"testing"
	"time"

	"AstroCore/internal/domain/models"
)

func TestPositionsCoverAllBodies(t *testing.T) {
	jd := JulianDay(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	positions := Positions(jd)
	if len(positions) != len(models.Bodies) {
		t.Fatalf("expected %d positions, got %d", len(models.Bodies), len(positions))
	}
	for i, p := range positions {
		if p.Body != models.Bodies[i] {
			t.Fatalf("position %d: expected %s, got %s", i, models.Bodies[i], p.Body)
		}
		if p.Longitude < 0 || p.Longitude >= 360 {
			t.Fatalf("%s longitude out of range: %v", p.Body, p.Longitude)
		}
		if p.Sign == "" {
			t.Fatalf("%s has no sign", p.Body)
		}
		if p.Retrograde != (p.Speed < 0) {
			t.Fatalf("%s retrograde flag disagrees with speed %v", p.Body, p.Speed)
		}
	}
}

func TestPositionsDeterministic(t *testing.T) {
	jd := JulianDay(time.Date(1990, 6, 15, 8, 30, 0, 0, time.UTC))
	a := Positions(jd)
	b := Positions(jd)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("position %d differs between runs", i)
		}
	}
}

func TestSunNearVernalEquinox(t *testing.T) {
	// The Sun crosses 0 Aries around 2000-03-20 07:35 UT.
	jd := JulianDay(time.Date(2000, 3, 20, 8, 0, 0, 0, time.UTC))
	positions := Positions(jd)
	sun := positions[0]
	if sun.Body != models.Sun {
		t.Fatalf("expected sun first, got %s", sun.Body)
	}
	if sun.Longitude > 2 && sun.Longitude < 358 {
		t.Fatalf("sun longitude %v not near vernal point", sun.Longitude)
	}
}

func TestSunNeverRetrograde(t *testing.T) {
	for _, day := range []int{0, 100, 200, 300} {
		jd := JulianDay(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)) + float64(day)
		sun := Positions(jd)[0]
		if sun.Retrograde {
			t.Fatalf("sun retrograde at jd %v", jd)
		}
		if sun.Speed < 0.9 || sun.Speed > 1.1 {
			t.Fatalf("sun speed %v out of the expected daily range", sun.Speed)
		}
	}
}

func TestMoonFasterThanSun(t *testing.T) {
	jd := JulianDay(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	positions := Positions(jd)
	sun, moon := positions[0], positions[1]
	if moon.Speed <= sun.Speed {
		t.Fatalf("moon speed %v not above sun speed %v", moon.Speed, sun.Speed)
	}
}

func TestNorthNodeRetrograde(t *testing.T) {
	// the mean node regresses along the ecliptic
	jd := JulianDay(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	positions := Positions(jd)
	node := positions[len(positions)-1]
	if node.Body != models.NorthNode {
		t.Fatalf("expected north node last, got %s", node.Body)
	}
	if !node.Retrograde {
		t.Fatalf("expected the mean node to be retrograde")
	}
}
