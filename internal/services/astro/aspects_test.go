package astro

import (
	"testing"

	"AstroCore/internal/domain/models"
)

func pos(body models.Body, lon, speed float64) models.Position {
	p := models.Position{Body: body, Longitude: lon, Speed: speed}
	p.Normalize()
	return p
}

func TestAspectClassification(t *testing.T) {
	cases := []struct {
		lon1, lon2 float64
		want       models.AspectType
	}{
		{10, 10, models.Conjunction},
		{10, 17.5, models.Conjunction},
		{10, 70, models.Sextile},
		{10, 100, models.Square},
		{10, 130, models.Trine},
		{10, 190, models.Opposition},
		{350, 110, models.Trine}, // wraps through 0
	}
	for i, c := range cases {
		a, ok := aspectBetween(pos(models.Sun, c.lon1, 1), pos(models.Moon, c.lon2, 13))
		if !ok {
			t.Fatalf("case %d: expected aspect", i)
		}
		if a.Type != c.want {
			t.Fatalf("case %d: expected %s, got %s", i, c.want, a.Type)
		}
	}
}

func TestAspectOutsideOrb(t *testing.T) {
	// 40 degrees matches nothing in the table
	if _, ok := aspectBetween(pos(models.Sun, 0, 1), pos(models.Moon, 40, 13)); ok {
		t.Fatalf("expected no aspect at 40 degrees")
	}
	// 8.5 degrees exceeds the conjunction orb
	if _, ok := aspectBetween(pos(models.Sun, 0, 1), pos(models.Moon, 8.5, 13)); ok {
		t.Fatalf("expected no aspect at 8.5 degrees")
	}
}

func TestAspectOrbIsDistanceFromExact(t *testing.T) {
	a, ok := aspectBetween(pos(models.Sun, 10, 1), pos(models.Moon, 133, 13))
	if !ok {
		t.Fatalf("expected trine")
	}
	if a.Type != models.Trine {
		t.Fatalf("expected trine, got %s", a.Type)
	}
	if a.Orb < 2.99 || a.Orb > 3.01 {
		t.Fatalf("expected orb 3, got %v", a.Orb)
	}
}

func TestAspectApplying(t *testing.T) {
	// faster body behind the exact angle closes the gap
	a, ok := aspectBetween(pos(models.Moon, 5, 13), pos(models.Sun, 128, 1))
	if !ok || a.Type != models.Trine {
		t.Fatalf("expected trine, got %+v", a)
	}
	if !a.Applying {
		t.Fatalf("expected applying aspect")
	}

	// retrograde body widening the separation
	b, ok := aspectBetween(pos(models.Moon, 5, -13), pos(models.Sun, 122, 1))
	if !ok || b.Type != models.Trine {
		t.Fatalf("expected trine, got %+v", b)
	}
	if b.Applying {
		t.Fatalf("expected separating aspect")
	}
}

func TestChartAspectsUnorderedPairs(t *testing.T) {
	positions := []models.Position{
		pos(models.Sun, 0, 1),
		pos(models.Moon, 120, 13),
		pos(models.Mercury, 240, 1.5),
	}
	aspects := ChartAspects(positions)
	// every pair is an exact trine
	if len(aspects) != 3 {
		t.Fatalf("expected 3 aspects, got %d", len(aspects))
	}
	for _, a := range aspects {
		if a.Type != models.Trine {
			t.Fatalf("expected trine, got %s", a.Type)
		}
		if a.Orb > 1e-9 {
			t.Fatalf("expected exact aspect, orb %v", a.Orb)
		}
	}
}

func TestCrossAspectsKeepChartSides(t *testing.T) {
	first := []models.Position{pos(models.Sun, 0, 1), pos(models.Moon, 90, 13)}
	second := []models.Position{pos(models.Sun, 180, 1), pos(models.Venus, 0, 1.2)}

	aspects := CrossAspects(first, second)
	if len(aspects) != 4 {
		t.Fatalf("expected 4 cross aspects, got %d", len(aspects))
	}
	firstBodies := map[models.Body]bool{models.Sun: true, models.Moon: true}
	for _, a := range aspects {
		if !firstBodies[a.Body1] {
			t.Fatalf("body1 %s not from first chart", a.Body1)
		}
	}
}
