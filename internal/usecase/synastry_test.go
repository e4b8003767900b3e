package usecase

import (
	"context"
	"strings"
	"testing"

	"AstroCore/internal/domain/models"
)

func aspectsOf(types ...models.AspectType) []models.Aspect {
	out := make([]models.Aspect, len(types))
	for i, typ := range types {
		out[i] = models.Aspect{Body1: models.Sun, Body2: models.Moon, Type: typ}
	}
	return out
}

func TestScoreNeutralChart(t *testing.T) {
	result := NewSynastryScorer().Score(nil)

	// base 75 alone: 75/20 = 3.75 rounds up to 4 in every category
	if result.Love.Rating != 4 || result.Friendship.Rating != 4 || result.Teamwork.Rating != 4 {
		t.Fatalf("expected 4/4/4, got %d/%d/%d",
			result.Love.Rating, result.Friendship.Rating, result.Teamwork.Rating)
	}
	if len(result.KeyAspects) != 3 {
		t.Fatalf("expected 3 filler key aspects, got %d", len(result.KeyAspects))
	}
}

func TestScoreHarmoniousChart(t *testing.T) {
	// 3 harmonious and 1 challenging: modifier 3*5 - 1*3 = 12.
	// love (75+12)/20 = 4.35, friendship (75+9.6)/20 = 4.23, teamwork 4.29.
	aspects := aspectsOf(models.Trine, models.Sextile, models.Conjunction, models.Square)
	result := NewSynastryScorer().Score(aspects)

	if result.Love.Rating != 5 {
		t.Fatalf("expected love 5, got %d", result.Love.Rating)
	}
	if result.Friendship.Rating != 5 {
		t.Fatalf("expected friendship 5, got %d", result.Friendship.Rating)
	}
	if result.Teamwork.Rating != 5 {
		t.Fatalf("expected teamwork 5, got %d", result.Teamwork.Rating)
	}
	if !strings.HasPrefix(result.Love.Description, "Strong romantic potential") {
		t.Fatalf("unexpected love description: %s", result.Love.Description)
	}
}

func TestScoreClampsToRange(t *testing.T) {
	many := make([]models.AspectType, 20)
	for i := range many {
		many[i] = models.Trine
	}
	high := NewSynastryScorer().Score(aspectsOf(many...))
	if high.Love.Rating != 5 {
		t.Fatalf("expected clamp to 5, got %d", high.Love.Rating)
	}
	if !strings.HasPrefix(high.Love.Description, "Incredible romantic chemistry") {
		t.Fatalf("unexpected top tier description: %s", high.Love.Description)
	}

	for i := range many {
		many[i] = models.Square
	}
	low := NewSynastryScorer().Score(aspectsOf(many...))
	if low.Love.Rating != 1 {
		t.Fatalf("expected clamp to 1, got %d", low.Love.Rating)
	}
	if !strings.Contains(low.Overall.Summary, "patience") {
		t.Fatalf("unexpected bottom tier summary: %s", low.Overall.Summary)
	}
}

func TestScoreWeightsOrderCategories(t *testing.T) {
	// with a negative modifier the heavier weight drags love lowest
	aspects := aspectsOf(models.Square, models.Square, models.Square,
		models.Square, models.Square, models.Square, models.Square, models.Square)
	result := NewSynastryScorer().Score(aspects)

	// modifier -24: love 2.55, friendship 2.79, teamwork 2.67
	if result.Love.Rating != 3 || result.Friendship.Rating != 3 || result.Teamwork.Rating != 3 {
		t.Fatalf("expected 3/3/3, got %d/%d/%d",
			result.Love.Rating, result.Friendship.Rating, result.Teamwork.Rating)
	}
	if !strings.HasPrefix(result.Love.Description, "Good romantic compatibility") {
		t.Fatalf("unexpected love description: %s", result.Love.Description)
	}
}

func TestKeyAspectsCappedAtFive(t *testing.T) {
	many := make([]models.AspectType, 9)
	for i := range many {
		many[i] = models.Trine
	}
	result := NewSynastryScorer().Score(aspectsOf(many...))
	if len(result.KeyAspects) != 5 {
		t.Fatalf("expected 5 key aspects, got %d", len(result.KeyAspects))
	}
	for _, ka := range result.KeyAspects {
		if !strings.Contains(ka, "trine") {
			t.Fatalf("unexpected key aspect: %s", ka)
		}
	}
}

func TestCompareScoresTwoCharts(t *testing.T) {
	backend := &fakeBackend{name: "primary", accuracy: models.AccuracyHigh}
	syn := NewSynastry(newTestCalculator(backend), NewSynastryScorer(), nil)

	person2 := validInput()
	person2.Date = "1992-01-20T14:00:00Z"
	result, err := syn.Compare(context.Background(), validInput(), person2)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if result.IsUnavailable {
		t.Fatalf("expected available result")
	}
	for _, r := range []int{result.Love.Rating, result.Friendship.Rating, result.Teamwork.Rating} {
		if r < 1 || r > 5 {
			t.Fatalf("rating %d out of range", r)
		}
	}
	if result.Meta.Method != "primary" {
		t.Fatalf("expected method from the chart backend, got %s", result.Meta.Method)
	}
	if !result.Meta.SwissEphemerisAvailable {
		t.Fatalf("both charts from a high accuracy backend")
	}
}

func TestCompareRejectsInvalidInput(t *testing.T) {
	backend := &fakeBackend{name: "primary", accuracy: models.AccuracyHigh}
	syn := NewSynastry(newTestCalculator(backend), NewSynastryScorer(), nil)

	_, err := syn.Compare(context.Background(), models.BirthInput{}, validInput())
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if _, ok := err.(*models.ValidationError); !ok {
		t.Fatalf("expected ValidationError, got %T", err)
	}
}

func TestCompareDegradesWhenChartsUnavailable(t *testing.T) {
	backend := &fakeBackend{name: "primary", accuracy: models.AccuracyHigh, failures: 100}
	syn := NewSynastry(newTestCalculator(backend), NewSynastryScorer(), nil)

	result, err := syn.Compare(context.Background(), validInput(), validInput())
	if err != nil {
		t.Fatalf("degraded path must not error, got %v", err)
	}
	if !result.IsUnavailable {
		t.Fatalf("expected unavailable result")
	}
	if result.Love.Rating != 0 || result.Friendship.Rating != 0 || result.Teamwork.Rating != 0 {
		t.Fatalf("expected zero ratings, got %d/%d/%d",
			result.Love.Rating, result.Friendship.Rating, result.Teamwork.Rating)
	}
	if !strings.Contains(result.Love.Description, "temporarily unavailable") {
		t.Fatalf("unexpected description: %s", result.Love.Description)
	}
	if len(result.KeyAspects) != 1 || result.KeyAspects[0] != "Service temporarily unavailable" {
		t.Fatalf("unexpected key aspects: %v", result.KeyAspects)
	}
}

func TestKeyAspectPhrasesByType(t *testing.T) {
	cases := map[models.AspectType]string{
		models.Conjunction: "conjunction creating powerful unified energy",
		models.Trine:       "trine bringing natural harmony and flow",
		models.Sextile:     "sextile offering opportunities for growth and cooperation",
		models.Square:      "square providing dynamic tension that catalyzes growth",
		models.Opposition:  "opposition creating complementary yet challenging dynamics",
	}
	for typ, phrase := range cases {
		result := NewSynastryScorer().Score(aspectsOf(typ))
		if !strings.Contains(result.KeyAspects[0], phrase) {
			t.Fatalf("%s: expected %q in %q", typ, phrase, result.KeyAspects[0])
		}
		if !strings.HasPrefix(result.KeyAspects[0], "Sun-Moon") {
			t.Fatalf("%s: expected body pair prefix, got %q", typ, result.KeyAspects[0])
		}
	}
}
