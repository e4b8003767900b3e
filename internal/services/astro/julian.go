// Package astro holds the pure calculation core: time conversion,
// planetary positions, house cusps and aspect detection. Everything here
// is a deterministic function of its inputs.
package astro

import (
	"math"
	"time"

	"AstroCore/internal/domain/models"
	"AstroCore/pkg/util"
)

const (
	// J2000 is the reference epoch 2000-01-01T12:00:00Z.
	J2000 = 2451545.0

	degToRad = math.Pi / 180
	radToDeg = 180 / math.Pi
)

// JulianDay converts a UTC instant to a Julian Day number using the
// Gregorian civil calendar formula.
func JulianDay(t time.Time) float64 {
	t = t.UTC()
	year, month, day := t.Year(), int(t.Month()), t.Day()

	a := (14 - month) / 12
	y := year + 4800 - a
	m := month + 12*a - 3

	jdn := day + (153*m+2)/5 + 365*y + y/4 - y/100 + y/400 - 32045

	hour := float64(t.Hour())
	minute := float64(t.Minute())
	second := float64(t.Second()) + float64(t.Nanosecond())/1e9

	return float64(jdn) + (hour-12)/24 + minute/1440 + second/86400
}

// JulianCenturies returns centuries elapsed since J2000.
func JulianCenturies(jd float64) float64 {
	return (jd - J2000) / 36525
}

// GreenwichSiderealTime returns the mean sidereal time at Greenwich in
// degrees for the given Julian Day.
func GreenwichSiderealTime(jd float64) float64 {
	d := jd - J2000
	t := JulianCenturies(jd)
	gmst := 280.46061837 + 360.98564736629*d + 0.000387933*t*t - t*t*t/38710000
	return models.NormalizeDegrees(gmst)
}

// LocalSiderealTime returns sidereal time in degrees at the given east
// longitude.
func LocalSiderealTime(jd, lonEast float64) float64 {
	return models.NormalizeDegrees(GreenwichSiderealTime(jd) + lonEast)
}

// Obliquity returns the mean obliquity of the ecliptic in degrees.
func Obliquity(jd float64) float64 {
	t := JulianCenturies(jd)
	return 23.4392911 - 0.0130042*t - 1.64e-7*t*t + 5.04e-7*t*t*t
}

// NormalizeBirth validates raw birth data and resolves it to a UTC moment
// with its Julian Day. No backend is consulted; failures are always
// *models.ValidationError.
func NormalizeBirth(in models.BirthInput) (models.BirthMoment, error) {
	if verr := in.Validate(); verr != nil {
		return models.BirthMoment{}, verr
	}

	// A full timestamp wins; otherwise combine civil date, wall clock and
	// the supplied UTC offset.
	utc, ok := util.ParseTime(in.Date)
	if !ok {
		utc, ok = util.ParseLocalDateTime(in.Date, in.Time, in.TZOffsetMinutes)
	}
	if !ok {
		return models.BirthMoment{}, models.NewValidationError(models.FieldError{
			Field:   "birthDate",
			Message: "must be RFC 3339 or a 2006-01-02 civil date",
		})
	}

	utc = utc.UTC()
	return models.BirthMoment{
		Name:      in.Name,
		UTC:       utc,
		JulianDay: JulianDay(utc),
		Latitude:  in.Latitude,
		Longitude: in.Longitude,
	}, nil
}
