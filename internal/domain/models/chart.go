package models

import (
	"math"
	"time"
)

// SchemaVersion identifies the serialized chart layout.
const SchemaVersion = "1"

// Body identifies a tracked celestial body.
type Body string

const (
	Sun       Body = "Sun"
	Moon      Body = "Moon"
	Mercury   Body = "Mercury"
	Venus     Body = "Venus"
	Mars      Body = "Mars"
	Jupiter   Body = "Jupiter"
	Saturn    Body = "Saturn"
	Uranus    Body = "Uranus"
	Neptune   Body = "Neptune"
	Pluto     Body = "Pluto"
	Chiron    Body = "Chiron"
	NorthNode Body = "North Node"
)

// Bodies lists every tracked body in canonical order.
var Bodies = []Body{
	Sun, Moon, Mercury, Venus, Mars, Jupiter, Saturn,
	Uranus, Neptune, Pluto, Chiron, NorthNode,
}

// SignNames lists the twelve tropical zodiac signs in order.
var SignNames = []string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// SignFromLongitude maps an ecliptic longitude in [0, 360) to its sign name.
func SignFromLongitude(lon float64) string {
	idx := int(lon / 30)
	if idx < 0 {
		idx = 0
	}
	if idx > 11 {
		idx = 11
	}
	return SignNames[idx]
}

// Position is one body's place on the ecliptic at a moment.
type Position struct {
	Body         Body    `json:"body"`
	Longitude    float64 `json:"longitude"`
	Latitude     float64 `json:"latitude"`
	Distance     float64 `json:"distance"`
	Speed        float64 `json:"speed"`
	Sign         string  `json:"sign"`
	DegreeInSign float64 `json:"degreeInSign"`
	Retrograde   bool    `json:"retrograde"`
}

// Normalize fills the derived fields from the raw longitude and speed.
func (p *Position) Normalize() {
	p.Longitude = NormalizeDegrees(p.Longitude)
	p.Sign = SignFromLongitude(p.Longitude)
	p.DegreeInSign = p.Longitude - float64(int(p.Longitude/30))*30
	p.Retrograde = p.Speed < 0
}

// NormalizeDegrees wraps an angle into [0, 360).
func NormalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// HouseCusp is one house boundary.
type HouseCusp struct {
	House        int     `json:"house"`
	Longitude    float64 `json:"longitude"`
	Sign         string  `json:"sign"`
	DegreeInSign float64 `json:"degreeInSign"`
}

// NewHouseCusp builds a cusp with derived sign fields.
func NewHouseCusp(house int, lon float64) HouseCusp {
	lon = NormalizeDegrees(lon)
	return HouseCusp{
		House:        house,
		Longitude:    lon,
		Sign:         SignFromLongitude(lon),
		DegreeInSign: lon - float64(int(lon/30))*30,
	}
}

// Angles are the four chart angles derived from houses 1 and 10.
type Angles struct {
	Ascendant  HouseCusp `json:"ascendant"`
	Midheaven  HouseCusp `json:"midheaven"`
	Descendant HouseCusp `json:"descendant"`
	ImumCoeli  HouseCusp `json:"imumCoeli"`
}

// AspectType names a recognized angular relationship.
type AspectType string

const (
	Conjunction AspectType = "conjunction"
	Sextile     AspectType = "sextile"
	Square      AspectType = "square"
	Trine       AspectType = "trine"
	Opposition  AspectType = "opposition"
)

// Aspect is a detected angular relationship between two bodies.
type Aspect struct {
	Body1    Body       `json:"body1"`
	Body2    Body       `json:"body2"`
	Type     AspectType `json:"type"`
	Angle    float64    `json:"angle"`
	Orb      float64    `json:"orb"`
	Applying bool       `json:"applying"`
}

// HouseSystem names the algorithm that produced a set of cusps.
type HouseSystem string

const (
	Placidus   HouseSystem = "placidus"
	EqualHouse HouseSystem = "equal"
)

// Chart is a complete computed chart.
type Chart struct {
	Version     string      `json:"version"`
	Kind        ChartKind   `json:"kind"`
	JulianDay   float64     `json:"julianDay"`
	Positions   []Position  `json:"positions"`
	Houses      []HouseCusp `json:"houses,omitempty"`
	Angles      *Angles     `json:"angles,omitempty"`
	Aspects     []Aspect    `json:"aspects,omitempty"`
	HouseSystem HouseSystem `json:"houseSystem,omitempty"`
}

// ChartKind distinguishes cacheable result families.
type ChartKind string

const (
	KindNatal    ChartKind = "natal"
	KindTransits ChartKind = "transits"
)

// Accuracy classifies a backend's precision.
type Accuracy string

const (
	AccuracyHigh        Accuracy = "high"
	AccuracyApproximate Accuracy = "approximate"
)

// ResultMeta describes how a chart result was produced.
type ResultMeta struct {
	CalculatedAt            time.Time `json:"calculatedAt"`
	Method                  string    `json:"method"`
	ResponseTimeMs          int64     `json:"responseTimeMs"`
	SwissEphemerisAvailable bool      `json:"swissEphemerisAvailable"`
	Cached                  bool      `json:"cached"`
}

// ChartResult is a chart plus provenance, or a graceful-degradation marker
// when no backend could produce one.
type ChartResult struct {
	Chart         *Chart     `json:"chart,omitempty"`
	Meta          ResultMeta `json:"meta"`
	IsUnavailable bool       `json:"isUnavailable,omitempty"`
	Message       string     `json:"message,omitempty"`
}

// UnavailableChartResult builds the degraded result returned when every
// backend failed. Callers still get success with isUnavailable set.
func UnavailableChartResult(kind ChartKind, elapsed time.Duration) *ChartResult {
	return &ChartResult{
		IsUnavailable: true,
		Message:       "Astrology calculations temporarily unavailable. Please try again later.",
		Meta: ResultMeta{
			CalculatedAt:   time.Now().UTC(),
			Method:         "unavailable",
			ResponseTimeMs: elapsed.Milliseconds(),
		},
	}
}
