package usecase

import (
	"context"
	"encoding/json"

	"AstroCore/internal/domain/models"
	pkgkafka "AstroCore/pkg/kafka"
	applogger "AstroCore/pkg/logger"
)

// PrecomputeHandler consumes birth data messages and warms the chart cache
// ahead of user requests. A bad message is logged and dropped rather than
// retried, the payload will not get better on redelivery.
type PrecomputeHandler struct {
	topic string
	calc  *ChartCalculator
	log   *applogger.Logger
}

func NewPrecomputeHandler(topic string, calc *ChartCalculator, l *applogger.Logger) *PrecomputeHandler {
	return &PrecomputeHandler{topic: topic, calc: calc, log: l}
}

func (h *PrecomputeHandler) Topic() string { return h.topic }

// incoming message schema: {name, date, time, latitude, longitude, tz_offset_minutes}
func (h *PrecomputeHandler) Handle(ctx context.Context, b []byte) error {
	var m struct {
		Name            string  `json:"name"`
		Date            string  `json:"date"`
		Time            string  `json:"time"`
		Latitude        float64 `json:"latitude"`
		Longitude       float64 `json:"longitude"`
		TZOffsetMinutes int     `json:"tz_offset_minutes"`
	}
	if err := json.Unmarshal(b, &m); err != nil {
		if h.log != nil {
			h.log.Warn("precompute unmarshal failed", applogger.Error(err))
		}
		return nil
	}

	input := models.BirthInput{
		Name:            m.Name,
		Date:            m.Date,
		Time:            m.Time,
		Latitude:        m.Latitude,
		Longitude:       m.Longitude,
		TZOffsetMinutes: m.TZOffsetMinutes,
	}

	result, err := h.calc.CalculateNatal(ctx, input)
	if err != nil {
		if _, ok := err.(*models.ValidationError); ok {
			if h.log != nil {
				h.log.Warn("precompute invalid birth data", applogger.Error(err))
			}
			return nil
		}
		return err
	}
	if h.log != nil && !result.IsUnavailable {
		h.log.Debug("chart precomputed",
			applogger.String("method", result.Meta.Method),
			applogger.Float64("julian_day", result.Chart.JulianDay))
	}
	return nil
}

var _ pkgkafka.MessageHandler = (*PrecomputeHandler)(nil)
