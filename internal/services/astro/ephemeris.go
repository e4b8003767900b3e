package astro

import (
	"math"

	"AstroCore/internal/domain/models"
)

// orbitalElements are simplified J2000.0 mean elements. L0 is the mean
// longitude at epoch, n the mean daily motion, e eccentricity, a the
// semi-major axis in AU and w the longitude of perihelion.
type orbitalElements struct {
	L0, n, e, a, w float64
}

var planetElements = map[models.Body]orbitalElements{
	models.Mercury: {L0: 252.25084, n: 4.092317, e: 0.205635, a: 0.387098, w: 77.45645},
	models.Venus:   {L0: 181.97973, n: 1.602136, e: 0.006777, a: 0.723332, w: 131.53298},
	models.Mars:    {L0: 355.45332, n: 0.524071, e: 0.093412, a: 1.523688, w: 336.04084},
	models.Jupiter: {L0: 34.40438, n: 0.083056, e: 0.048775, a: 5.202561, w: 14.75385},
	models.Saturn:  {L0: 50.07571, n: 0.033371, e: 0.055723, a: 9.554747, w: 93.05723},
	models.Uranus:  {L0: 314.05500, n: 0.011698, e: 0.046321, a: 19.218446, w: 173.00529},
	models.Neptune: {L0: 304.34866, n: 0.006020, e: 0.008606, a: 30.110387, w: 48.12370},
	models.Pluto:   {L0: 238.92881, n: 0.003964, e: 0.248808, a: 39.482117, w: 224.06676},
	models.Chiron:  {L0: 217.070, n: 0.019446, e: 0.383150, a: 13.648100, w: 188.67000},
}

// sunPosition returns the Sun's geocentric ecliptic longitude (deg) and
// distance (AU) from the mean longitude, mean anomaly and equation of
// center.
func sunPosition(jd float64) (lon, dist float64) {
	t := JulianCenturies(jd)

	l := 280.4664567 + 36000.76982779*t + 0.0003032028*t*t
	m := models.NormalizeDegrees(357.5291092 + 35999.0502909*t - 0.0001536667*t*t)

	c := (1.9146 - 0.004817*t - 0.000014*t*t) * math.Sin(m*degToRad)
	c += (0.019993 - 0.000101*t) * math.Sin(2*m*degToRad)
	c += 0.000289 * math.Sin(3*m*degToRad)

	lon = models.NormalizeDegrees(l + c)
	dist = 1.000001018 * (1 - 0.01671123*math.Cos(m*degToRad) - 0.00014*math.Cos(2*m*degToRad))
	return lon, dist
}

// moonPosition evaluates the principal lunar series terms.
func moonPosition(jd float64) (lon, lat, dist float64) {
	t := JulianCenturies(jd)

	l := 218.3164477 + 481267.88123421*t - 0.0015786*t*t
	d := 297.8501921 + 445267.1114034*t - 0.0018819*t*t
	m := 357.5291092 + 35999.0502909*t - 0.0001536667*t*t
	m1 := 134.9633964 + 477198.8675055*t + 0.0087414*t*t

	lon = l
	lon += 6.288774 * math.Sin(m1*degToRad)
	lon += 1.274027 * math.Sin((2*d-m1)*degToRad)
	lon += 0.658314 * math.Sin(2*d*degToRad)
	lon += 0.213618 * math.Sin(2*m1*degToRad)
	lon -= 0.185116 * math.Sin(m*degToRad)
	lon -= 0.114332 * math.Sin(2*(d-m1)*degToRad)
	lon = models.NormalizeDegrees(lon)

	f := 93.2720950 + 483202.0175233*t - 0.0036539*t*t
	lat = 5.128122 * math.Sin(f*degToRad)
	lat += 0.280602 * math.Sin((m1+f)*degToRad)
	lat += 0.277693 * math.Sin((m1-f)*degToRad)

	distKm := 385000.56 + 20905.355*math.Cos(m1*degToRad)
	dist = distKm / 149597870.7
	return lon, lat, dist
}

// planetPosition solves the simplified Kepler problem for one body and
// converts the heliocentric longitude to a geocentric one.
func planetPosition(el orbitalElements, jd float64) (lon, dist float64) {
	l := models.NormalizeDegrees(el.L0 + el.n*(jd-J2000))
	m := models.NormalizeDegrees(l - el.w)

	// One Newton step is enough at these eccentricities.
	e := m + el.e*math.Sin(m*degToRad)*radToDeg

	nu := 2 * math.Atan2(
		math.Sqrt(1+el.e)*math.Sin(e/2*degToRad),
		math.Sqrt(1-el.e)*math.Cos(e/2*degToRad),
	) * radToDeg

	helio := models.NormalizeDegrees(nu + el.w)

	sunLon, _ := sunPosition(jd)
	lon = models.NormalizeDegrees(helio - sunLon + 180)
	return lon, el.a
}

// nodeLongitude returns the mean lunar node, which regresses along the
// ecliptic.
func nodeLongitude(jd float64) float64 {
	d := jd - J2000
	return models.NormalizeDegrees(125.0445479 - 0.0529539222*d)
}

// rawLongitude evaluates one body's ecliptic longitude at jd.
func rawLongitude(b models.Body, jd float64) float64 {
	switch b {
	case models.Sun:
		lon, _ := sunPosition(jd)
		return lon
	case models.Moon:
		lon, _, _ := moonPosition(jd)
		return lon
	case models.NorthNode:
		return nodeLongitude(jd)
	default:
		lon, _ := planetPosition(planetElements[b], jd)
		return lon
	}
}

// longitudeSpeed measures apparent daily motion by symmetric difference.
// The sign carries retrograde motion directly.
func longitudeSpeed(b models.Body, jd float64) float64 {
	before := rawLongitude(b, jd-0.5)
	after := rawLongitude(b, jd+0.5)
	delta := math.Mod(after-before, 360)
	if delta > 180 {
		delta -= 360
	}
	if delta < -180 {
		delta += 360
	}
	return delta
}

// BodyPosition computes a single body's position at the given Julian Day.
func BodyPosition(b models.Body, jd float64) models.Position {
	p := models.Position{Body: b}

	switch b {
	case models.Sun:
		p.Longitude, p.Distance = sunPosition(jd)
	case models.Moon:
		p.Longitude, p.Latitude, p.Distance = moonPosition(jd)
	case models.NorthNode:
		p.Longitude = nodeLongitude(jd)
	default:
		p.Longitude, p.Distance = planetPosition(planetElements[b], jd)
	}

	p.Speed = longitudeSpeed(b, jd)
	p.Normalize()
	return p
}

// Positions computes every tracked body in canonical order.
func Positions(jd float64) []models.Position {
	out := make([]models.Position, 0, len(models.Bodies))
	for _, b := range models.Bodies {
		out = append(out, BodyPosition(b, jd))
	}
	return out
}
