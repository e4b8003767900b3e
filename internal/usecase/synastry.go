package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"AstroCore/internal/domain/models"
	domsvc "AstroCore/internal/domain/service"
	"AstroCore/internal/services/astro"
	applogger "AstroCore/pkg/logger"
)

// SynastryScorer converts cross-chart aspects into category ratings. The
// scoring constants are part of the public behavior and stay fixed:
// harmonious aspects add 5 each, challenging ones subtract 3, and the raw
// category value is (base + modifier*weight)/20 clamped into [1, 5].
type SynastryScorer struct {
	base float64
}

// NewSynastryScorer creates a scorer with the default base score of 75.
func NewSynastryScorer() *SynastryScorer {
	return &SynastryScorer{base: 75}
}

const (
	loveWeight       = 1.0
	friendshipWeight = 0.8
	teamworkWeight   = 0.9
)

// Score is pure: the same aspect list always yields the same result.
func (s *SynastryScorer) Score(aspects []models.Aspect) models.CompatibilityResult {
	var harmonious, challenging int
	for _, a := range aspects {
		switch a.Type {
		case models.Conjunction, models.Trine, models.Sextile:
			harmonious++
		case models.Square, models.Opposition:
			challenging++
		}
	}
	modifier := float64(harmonious*5 - challenging*3)

	love := clampScore((s.base + modifier*loveWeight) / 20)
	friendship := clampScore((s.base + modifier*friendshipWeight) / 20)
	teamwork := clampScore((s.base + modifier*teamworkWeight) / 20)

	return models.CompatibilityResult{
		Love: models.CategoryRating{
			Rating:      rating(love),
			Description: loveDescription(love),
		},
		Friendship: models.CategoryRating{
			Rating:      rating(friendship),
			Description: friendshipDescription(friendship),
		},
		Teamwork: models.CategoryRating{
			Rating:      rating(teamwork),
			Description: teamworkDescription(teamwork),
		},
		Overall:    models.Overall{Summary: overallSummary(love, friendship, teamwork)},
		KeyAspects: keyAspects(aspects),
		Aspects:    aspects,
	}
}

func clampScore(v float64) float64 {
	return math.Max(1, math.Min(5, v))
}

func rating(score float64) int {
	r := int(math.Ceil(score))
	if r < 1 {
		r = 1
	}
	if r > 5 {
		r = 5
	}
	return r
}

func loveDescription(score float64) string {
	switch {
	case score >= 4.5:
		return "Incredible romantic chemistry! Your hearts beat in cosmic harmony, creating a passionate and deeply fulfilling connection."
	case score >= 3.5:
		return "Strong romantic potential with natural attraction and emotional understanding. Your love story has beautiful cosmic support."
	case score >= 2.5:
		return "Good romantic compatibility with some areas of growth. Communication and patience will strengthen your bond over time."
	case score >= 1.5:
		return "Moderate romantic connection that requires effort and understanding. Different approaches to love can create both challenges and growth."
	default:
		return "Romantic compatibility may require significant work and compromise. Focus on building friendship and understanding first."
	}
}

func friendshipDescription(score float64) string {
	switch {
	case score >= 4.5:
		return "Exceptional friendship potential! You understand each other intuitively and bring out the best in one another."
	case score >= 3.5:
		return "Strong friendship compatibility with shared values and mutual respect. You'll create lasting memories together."
	case score >= 2.5:
		return "Good friendship foundation with complementary qualities. Your differences can create interesting and enriching exchanges."
	case score >= 1.5:
		return "Moderate friendship compatibility. Building trust and finding common ground will strengthen your connection over time."
	default:
		return "Friendship may require patience and understanding. Focus on respecting differences and finding shared interests."
	}
}

func teamworkDescription(score float64) string {
	switch {
	case score >= 4.5:
		return "Outstanding teamwork potential! You complement each other's strengths and work toward goals with unified energy."
	case score >= 3.5:
		return "Strong collaborative compatibility with shared work ethics and complementary skills. Projects together will flourish."
	case score >= 2.5:
		return "Good teamwork potential with some areas to navigate. Clear communication about roles and expectations will help."
	case score >= 1.5:
		return "Moderate teamwork compatibility. Success will come through patience, compromise, and leveraging individual strengths."
	default:
		return "Teamwork may face challenges. Focus on clear communication, defined roles, and respecting different working styles."
	}
}

func overallSummary(love, friendship, teamwork float64) string {
	average := (love + friendship + teamwork) / 3
	switch {
	case average >= 4.5:
		return "Your cosmic connection is truly exceptional! The stars have aligned to create a harmonious and supportive relationship across all areas of life. This is a rare and precious bond that can weather any storm and celebrate every joy together."
	case average >= 3.5:
		return "You share a wonderful cosmic connection with strong potential for lasting happiness. While every relationship has its seasons, your charts suggest natural harmony and mutual support that will help you grow together."
	case average >= 2.5:
		return "Your relationship has solid cosmic foundations with room for growth and discovery. The challenges you face together will strengthen your bond and help you both evolve as individuals and as a partnership."
	case average >= 1.5:
		return "Your cosmic connection offers opportunities for learning and growth. While it may require more effort and understanding, the rewards of working through differences can lead to a deeply meaningful relationship."
	default:
		return "Your relationship will require patience, communication, and mutual respect to flourish. The cosmos encourages you to approach this connection with open hearts and realistic expectations, focusing on building understanding over time."
	}
}

func keyAspects(aspects []models.Aspect) []string {
	out := make([]string, 0, 5)
	for _, a := range aspects {
		pair := fmt.Sprintf("%s-%s", a.Body1, a.Body2)
		switch a.Type {
		case models.Conjunction:
			out = append(out, pair+" conjunction creating powerful unified energy")
		case models.Trine:
			out = append(out, pair+" trine bringing natural harmony and flow")
		case models.Sextile:
			out = append(out, pair+" sextile offering opportunities for growth and cooperation")
		case models.Square:
			out = append(out, pair+" square providing dynamic tension that catalyzes growth")
		case models.Opposition:
			out = append(out, pair+" opposition creating complementary yet challenging dynamics")
		}
	}
	if len(out) < 3 {
		out = append(out,
			"Unique cosmic patterns creating opportunities for mutual growth and discovery",
			"Planetary positions suggesting the importance of patience and open communication",
			"Astrological indicators pointing toward building trust through shared experiences",
		)
	}
	if len(out) > 5 {
		out = out[:5]
	}
	return out
}

// Synastry computes compatibility between two people by running both
// charts through the calculator and scoring the cross aspects.
type Synastry struct {
	calc   *ChartCalculator
	scorer domsvc.SynastryScorer
	log    *applogger.Logger
}

// NewSynastry creates the compatibility usecase.
func NewSynastry(calc *ChartCalculator, scorer domsvc.SynastryScorer, l *applogger.Logger) *Synastry {
	return &Synastry{calc: calc, scorer: scorer, log: l}
}

// Compare validates both inputs, computes both charts, and scores their
// cross aspects. When either chart is unavailable the caller still gets a
// successful degraded result.
func (s *Synastry) Compare(ctx context.Context, person1, person2 models.BirthInput) (*models.CompatibilityResult, error) {
	start := time.Now()

	first, err := s.calc.CalculateNatal(ctx, person1)
	if err != nil {
		return nil, err
	}
	second, err := s.calc.CalculateNatal(ctx, person2)
	if err != nil {
		return nil, err
	}

	if first.IsUnavailable || second.IsUnavailable {
		if s.log != nil {
			s.log.Warn("synastry degraded: chart unavailable")
		}
		return unavailableCompatibility(time.Since(start)), nil
	}

	aspects := astro.CrossAspects(first.Chart.Positions, second.Chart.Positions)
	result := s.scorer.Score(aspects)
	result.Meta = models.ResultMeta{
		CalculatedAt:            time.Now().UTC(),
		Method:                  first.Meta.Method,
		ResponseTimeMs:          time.Since(start).Milliseconds(),
		SwissEphemerisAvailable: first.Meta.SwissEphemerisAvailable && second.Meta.SwissEphemerisAvailable,
	}
	return &result, nil
}

func unavailableCompatibility(elapsed time.Duration) *models.CompatibilityResult {
	const msg = "Compatibility data temporarily unavailable. Please try again later."
	return &models.CompatibilityResult{
		Love:       models.CategoryRating{Description: msg},
		Friendship: models.CategoryRating{Description: msg},
		Teamwork:   models.CategoryRating{Description: msg},
		Overall: models.Overall{
			Summary: "We're currently unable to access the astronomical calculation service. Please try again in a few moments.",
		},
		KeyAspects:    []string{"Service temporarily unavailable"},
		IsUnavailable: true,
		Message:       "Astrology calculations temporarily unavailable. Please try again later.",
		Meta: models.ResultMeta{
			CalculatedAt:   time.Now().UTC(),
			Method:         "unavailable",
			ResponseTimeMs: elapsed.Milliseconds(),
		},
	}
}

var _ domsvc.SynastryScorer = (*SynastryScorer)(nil)
