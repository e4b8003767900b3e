package backends

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"AstroCore/internal/domain/models"
	"AstroCore/internal/services/astro"
	applogger "AstroCore/pkg/logger"
)

// ExternalOption configures ExternalBackend.
type ExternalOption func(*ExternalBackend)

// ExternalBackend shells out to a Swiss Ephemeris helper process. The
// request travels as a JSON argument, the response comes back on stdout.
// A hung or slow process is killed when the attempt budget expires.
type ExternalBackend struct {
	command string
	args    []string
	timeout time.Duration
	log     *applogger.Logger
}

// NewExternalBackend creates the subprocess-backed provider.
func NewExternalBackend(command string, opts ...ExternalOption) *ExternalBackend {
	b := &ExternalBackend{
		command: command,
		timeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// WithExternalArgs sets fixed arguments placed before the JSON request.
func WithExternalArgs(args []string) ExternalOption {
	return func(b *ExternalBackend) { b.args = args }
}

// WithExternalTimeout sets the per-attempt budget.
func WithExternalTimeout(d time.Duration) ExternalOption {
	return func(b *ExternalBackend) {
		if d > 0 {
			b.timeout = d
		}
	}
}

// WithExternalLogger sets the logger.
func WithExternalLogger(l *applogger.Logger) ExternalOption {
	return func(b *ExternalBackend) { b.log = l }
}

func (b *ExternalBackend) Name() string { return MethodExternal }

func (b *ExternalBackend) Accuracy() models.Accuracy { return models.AccuracyHigh }

// Wire format of the helper process.
type externalRequest struct {
	JulianDay float64 `json:"julian_day"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Kind      string  `json:"kind"`
}

type externalResponse struct {
	Success bool             `json:"success"`
	Error   string           `json:"error,omitempty"`
	Data    *externalPayload `json:"data,omitempty"`
}

type externalPayload struct {
	Positions []externalPosition `json:"positions"`
	Houses    *externalHouses    `json:"houses,omitempty"`
}

type externalPosition struct {
	Body      string  `json:"body"`
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
	Distance  float64 `json:"distance"`
	Speed     float64 `json:"speed"`
}

type externalHouses struct {
	Cusps     []float64 `json:"cusps"`
	Ascendant float64   `json:"ascendant"`
	Midheaven float64   `json:"midheaven"`
}

func (b *ExternalBackend) Calculate(ctx context.Context, moment models.BirthMoment, kind models.ChartKind) (*models.Chart, error) {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	req, err := json.Marshal(externalRequest{
		JulianDay: moment.JulianDay,
		Latitude:  moment.Latitude,
		Longitude: moment.Longitude,
		Kind:      string(kind),
	})
	if err != nil {
		return nil, &models.EphemerisError{Backend: b.Name(), Err: err}
	}

	args := append(append([]string{}, b.args...), string(req))
	cmd := exec.CommandContext(ctx, b.command, args...)

	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			err = fmt.Errorf("%w: %s", err, exitErr.Stderr)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = fmt.Errorf("process killed after %s: %w", b.timeout, ctxErr)
		}
		return nil, &models.EphemerisError{Backend: b.Name(), Err: err}
	}

	var resp externalResponse
	if err := json.Unmarshal(out, &resp); err != nil {
		return nil, &models.EphemerisError{Backend: b.Name(), Err: fmt.Errorf("malformed output: %w", err)}
	}
	if !resp.Success || resp.Data == nil {
		return nil, &models.EphemerisError{Backend: b.Name(), Err: fmt.Errorf("helper reported failure: %s", resp.Error)}
	}

	return b.toChart(resp.Data, moment, kind)
}

func (b *ExternalBackend) toChart(data *externalPayload, moment models.BirthMoment, kind models.ChartKind) (*models.Chart, error) {
	if len(data.Positions) == 0 {
		return nil, &models.EphemerisError{Backend: b.Name(), Err: errors.New("no positions in output")}
	}

	chart := &models.Chart{
		Version:   models.SchemaVersion,
		Kind:      kind,
		JulianDay: moment.JulianDay,
		Positions: make([]models.Position, 0, len(data.Positions)),
	}
	for _, p := range data.Positions {
		pos := models.Position{
			Body:      models.Body(p.Body),
			Longitude: p.Longitude,
			Latitude:  p.Latitude,
			Distance:  p.Distance,
			Speed:     p.Speed,
		}
		pos.Normalize()
		chart.Positions = append(chart.Positions, pos)
	}

	if kind == models.KindNatal {
		if data.Houses == nil || len(data.Houses.Cusps) != 12 {
			return nil, &models.EphemerisError{Backend: b.Name(), Err: errors.New("expected 12 house cusps")}
		}
		chart.Houses = make([]models.HouseCusp, 0, 12)
		for i, cusp := range data.Houses.Cusps {
			chart.Houses = append(chart.Houses, models.NewHouseCusp(i+1, cusp))
		}
		chart.HouseSystem = models.Placidus
		chart.Angles = astro.ChartAngles(chart.Houses)
		chart.Aspects = astro.ChartAspects(chart.Positions)
	}

	return chart, nil
}
