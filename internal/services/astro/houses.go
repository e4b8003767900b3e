package astro

import (
	"math"

	"AstroCore/internal/domain/models"
)

// eclipticFromRA converts a right ascension on the celestial equator to
// the ecliptic longitude with the same quadrant.
func eclipticFromRA(ra, eps float64) float64 {
	lam := math.Atan2(math.Sin(ra*degToRad), math.Cos(ra*degToRad)*math.Cos(eps*degToRad)) * radToDeg
	return models.NormalizeDegrees(lam)
}

// angularDelta returns the signed difference a-b wrapped into (-180, 180].
func angularDelta(a, b float64) float64 {
	d := math.Mod(a-b, 360)
	if d > 180 {
		d -= 360
	}
	if d <= -180 {
		d += 360
	}
	return d
}

// midheaven returns the ecliptic longitude culminating at the given RAMC.
func midheaven(ramc, eps float64) float64 {
	return eclipticFromRA(ramc, eps)
}

// ascendant returns the chart's rising degree. The reference charts were
// generated with the equatorial ascendant (east point) convention, which
// omits the geographic latitude term.
func ascendant(ramc, eps float64) float64 {
	asc := math.Atan2(
		math.Cos(ramc*degToRad),
		-math.Sin(ramc*degToRad)*math.Cos(eps*degToRad),
	) * radToDeg
	return models.NormalizeDegrees(asc)
}

// placidusCusp iterates one intermediate cusp to a fixed point. The cusp
// sits at a fixed fraction of its semi-arc from the meridian: f is 1/3 or
// 2/3, offset seeds the iteration, and nocturnal selects the below-horizon
// pair (houses 2 and 3). Fails with ErrPolarLatitude when the body never
// crosses the horizon at this latitude.
func placidusCusp(ramc, eps, lat, offset, f float64, nocturnal bool) (float64, error) {
	ra := ramc + offset
	tanLat := math.Tan(lat * degToRad)
	sinEps := math.Sin(eps * degToRad)

	for i := 0; i < 32; i++ {
		lam := eclipticFromRA(ra, eps)
		decl := math.Asin(sinEps * math.Sin(lam*degToRad))

		x := tanLat * math.Tan(decl)
		if x <= -1 || x >= 1 {
			return 0, models.ErrPolarLatitude
		}
		ad := math.Asin(x) * radToDeg

		var md float64
		if nocturnal {
			md = 180 - f*(90-ad)
		} else {
			md = f * (90 + ad)
		}

		next := ramc + md
		if math.Abs(angularDelta(next, ra)) < 1e-9 {
			ra = next
			break
		}
		ra = next
	}

	return eclipticFromRA(ra, eps), nil
}

// cuspsInOrder reports whether the twelve cusps advance strictly through
// the zodiac, each step covering less than a half circle.
func cuspsInOrder(cusps []models.HouseCusp) bool {
	for i := range cusps {
		d := angularDelta(cusps[(i+1)%12].Longitude, cusps[i].Longitude)
		if d <= 0 || d >= 180 {
			return false
		}
	}
	return true
}

// equalCusps spreads twelve cusps at 30 degree steps from the Ascendant.
func equalCusps(asc float64) []models.HouseCusp {
	cusps := make([]models.HouseCusp, 12)
	for i := 0; i < 12; i++ {
		cusps[i] = models.NewHouseCusp(i+1, asc+float64(i)*30)
	}
	return cusps
}

// Houses computes the twelve house cusps for a moment and place. Placidus
// is attempted first; latitudes where it breaks down get equal houses.
// The returned slice is ordered house 1 through 12, and house 1 always
// equals the Ascendant while house 10 equals the Midheaven under Placidus.
func Houses(jd, lat, lonEast float64) ([]models.HouseCusp, models.HouseSystem, error) {
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return nil, "", &models.HouseCalculationError{Latitude: lat, Reason: "latitude out of range"}
	}

	ramc := LocalSiderealTime(jd, lonEast)
	eps := Obliquity(jd)

	asc := ascendant(ramc, eps)
	mc := midheaven(ramc, eps)

	type spec struct {
		offset    float64
		f         float64
		nocturnal bool
	}
	specs := []spec{
		{30, 1.0 / 3, false},  // house 11
		{60, 2.0 / 3, false},  // house 12
		{120, 2.0 / 3, true},  // house 2
		{150, 1.0 / 3, true},  // house 3
	}

	lams := make([]float64, len(specs))
	for i, s := range specs {
		lam, err := placidusCusp(ramc, eps, lat, s.offset, s.f, s.nocturnal)
		if err != nil {
			// Placidus undefined here; equal houses from the Ascendant.
			return equalCusps(asc), models.EqualHouse, nil
		}
		lams[i] = lam
	}
	c11, c12, c2, c3 := lams[0], lams[1], lams[2], lams[3]

	cusps := []models.HouseCusp{
		models.NewHouseCusp(1, asc),
		models.NewHouseCusp(2, c2),
		models.NewHouseCusp(3, c3),
		models.NewHouseCusp(4, mc+180),
		models.NewHouseCusp(5, c11+180),
		models.NewHouseCusp(6, c12+180),
		models.NewHouseCusp(7, asc+180),
		models.NewHouseCusp(8, c2+180),
		models.NewHouseCusp(9, c3+180),
		models.NewHouseCusp(10, mc),
		models.NewHouseCusp(11, c11),
		models.NewHouseCusp(12, c12),
	}
	if !cuspsInOrder(cusps) {
		// High latitudes can push house 1 outside the 12-2 arc even when
		// every semi-arc converges. Treat it like the polar breakdown.
		return equalCusps(asc), models.EqualHouse, nil
	}
	return cusps, models.Placidus, nil
}

// ChartAngles derives the four angles from a cusp set.
func ChartAngles(cusps []models.HouseCusp) *models.Angles {
	if len(cusps) != 12 {
		return nil
	}
	asc := cusps[0]
	mc := cusps[9]
	return &models.Angles{
		Ascendant:  asc,
		Midheaven:  mc,
		Descendant: models.NewHouseCusp(7, asc.Longitude+180),
		ImumCoeli:  models.NewHouseCusp(4, mc.Longitude+180),
	}
}
