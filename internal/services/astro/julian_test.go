package astro

import (
	"math"
	"testing"
	"time"

	"AstroCore/internal/domain/models"
)

func TestJulianDayAtJ2000(t *testing.T) {
	got := JulianDay(time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC))
	if math.Abs(got-J2000) > 1e-9 {
		t.Fatalf("expected %v, got %v", J2000, got)
	}
}

func TestJulianDayHistorical(t *testing.T) {
	// 1879-03-14 12:00 UT is JD 2407423.0
	got := JulianDay(time.Date(1879, 3, 14, 12, 0, 0, 0, time.UTC))
	if math.Abs(got-2407423.0) > 1e-9 {
		t.Fatalf("expected 2407423.0, got %v", got)
	}
}

func TestGreenwichSiderealTimeAtEpoch(t *testing.T) {
	got := GreenwichSiderealTime(J2000)
	if math.Abs(got-280.46061837) > 1e-6 {
		t.Fatalf("unexpected gmst %v", got)
	}
}

func TestObliquityNearEpoch(t *testing.T) {
	got := Obliquity(J2000)
	if got < 23.4 || got > 23.5 {
		t.Fatalf("unexpected obliquity %v", got)
	}
}

func TestNormalizeBirthFullTimestamp(t *testing.T) {
	moment, err := NormalizeBirth(models.BirthInput{
		Date:      "1990-06-15T08:30:00Z",
		Latitude:  40.7,
		Longitude: -74.0,
	})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if moment.UTC.Hour() != 8 || moment.UTC.Minute() != 30 {
		t.Fatalf("unexpected utc %v", moment.UTC)
	}
	if moment.JulianDay < 2448057 || moment.JulianDay > 2448059 {
		t.Fatalf("unexpected jd %v", moment.JulianDay)
	}
}

func TestNormalizeBirthCivilDateWithOffset(t *testing.T) {
	// local 11:30 at UTC+60min means 10:30 UTC
	moment, err := NormalizeBirth(models.BirthInput{
		Date:            "1879-03-14",
		Time:            "11:30",
		Latitude:        48.4,
		Longitude:       10.0,
		TZOffsetMinutes: 60,
	})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if moment.UTC.Hour() != 10 || moment.UTC.Minute() != 30 {
		t.Fatalf("unexpected utc %v", moment.UTC)
	}
}

func TestNormalizeBirthDefaultsToNoon(t *testing.T) {
	moment, err := NormalizeBirth(models.BirthInput{Date: "1990-06-15"})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if moment.UTC.Hour() != 12 {
		t.Fatalf("expected noon default, got %v", moment.UTC)
	}
}

func TestNormalizeBirthRejectsBadInput(t *testing.T) {
	cases := []models.BirthInput{
		{},                                      // missing date
		{Date: "1990-06-15", Latitude: 95},      // latitude out of range
		{Date: "1990-06-15", Longitude: -200},   // longitude out of range
		{Date: "not-a-date"},                    // unparseable
		{Date: "1990-06-15", TZOffsetMinutes: 900}, // offset out of range
	}
	for i, in := range cases {
		_, err := NormalizeBirth(in)
		if err == nil {
			t.Fatalf("case %d: expected error", i)
		}
		if _, ok := err.(*models.ValidationError); !ok {
			t.Fatalf("case %d: expected ValidationError, got %T", i, err)
		}
	}
}
