package models

import (
	"math"
	"testing"
)

func TestSignFromLongitude(t *testing.T) {
	cases := []struct {
		lon  float64
		want string
	}{
		{0, "Aries"},
		{29.99, "Aries"},
		{30, "Taurus"},
		{84.68, "Gemini"},
		{180, "Libra"},
		{353.7, "Pisces"},
		{359.999, "Pisces"},
	}
	for _, c := range cases {
		if got := SignFromLongitude(c.lon); got != c.want {
			t.Fatalf("%.3f: expected %s, got %s", c.lon, c.want, got)
		}
	}
}

func TestNormalizeDegrees(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{0, 0},
		{360, 0},
		{-30, 330},
		{725, 5},
		{-725, 355},
	}
	for _, c := range cases {
		if got := NormalizeDegrees(c.in); math.Abs(got-c.want) > 1e-9 {
			t.Fatalf("%v: expected %v, got %v", c.in, c.want, got)
		}
	}
}

func TestPositionNormalize(t *testing.T) {
	p := Position{Body: Mercury, Longitude: 390.5, Speed: -0.1}
	p.Normalize()

	if math.Abs(p.Longitude-30.5) > 1e-9 {
		t.Fatalf("unexpected longitude %v", p.Longitude)
	}
	if p.Sign != "Taurus" {
		t.Fatalf("unexpected sign %s", p.Sign)
	}
	if math.Abs(p.DegreeInSign-0.5) > 1e-9 {
		t.Fatalf("unexpected degree in sign %v", p.DegreeInSign)
	}
	if !p.Retrograde {
		t.Fatalf("negative speed must mark retrograde")
	}

	p.Speed = 1.2
	p.Normalize()
	if p.Retrograde {
		t.Fatalf("positive speed must clear retrograde")
	}
}

func TestBirthInputValidate(t *testing.T) {
	good := BirthInput{Date: "1990-06-15", Latitude: 40.7, Longitude: -74.0}
	if verr := good.Validate(); verr != nil {
		t.Fatalf("unexpected error %v", verr)
	}

	bad := BirthInput{Latitude: 95, Longitude: 200, TZOffsetMinutes: 1000}
	verr := bad.Validate()
	if verr == nil {
		t.Fatalf("expected error")
	}
	if len(verr.Fields) != 4 {
		t.Fatalf("expected 4 field errors, got %d: %v", len(verr.Fields), verr)
	}
}

func TestUnavailableChartResult(t *testing.T) {
	result := UnavailableChartResult(KindNatal, 0)
	if !result.IsUnavailable {
		t.Fatalf("expected unavailable marker")
	}
	if result.Chart != nil {
		t.Fatalf("expected no chart")
	}
	if result.Meta.Method != "unavailable" {
		t.Fatalf("unexpected method %s", result.Meta.Method)
	}
}
