package models

import (
	"fmt"
	"time"
)

// BirthInput is raw, untrusted birth data as supplied by a caller.
type BirthInput struct {
	Name string `json:"name,omitempty"`
	// Date is either a full RFC 3339 timestamp or a civil date "2006-01-02".
	Date string `json:"birthDate"`
	// Time is the wall clock "15:04" when Date carries no time component.
	Time            string  `json:"birthTime,omitempty"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	TZOffsetMinutes int     `json:"tzOffsetMinutes,omitempty"`
}

// Validate checks field ranges without touching any backend. A nil return
// means the input is structurally sound; timestamp parsing happens later.
func (in BirthInput) Validate() *ValidationError {
	var fields []FieldError
	if in.Date == "" {
		fields = append(fields, FieldError{Field: "birthDate", Message: "is required"})
	}
	if in.Latitude < -90 || in.Latitude > 90 {
		fields = append(fields, FieldError{
			Field:   "latitude",
			Message: fmt.Sprintf("must be between -90 and 90, got %v", in.Latitude),
		})
	}
	if in.Longitude < -180 || in.Longitude > 180 {
		fields = append(fields, FieldError{
			Field:   "longitude",
			Message: fmt.Sprintf("must be between -180 and 180, got %v", in.Longitude),
		})
	}
	if in.TZOffsetMinutes < -840 || in.TZOffsetMinutes > 840 {
		fields = append(fields, FieldError{
			Field:   "tzOffsetMinutes",
			Message: fmt.Sprintf("must be between -840 and 840, got %d", in.TZOffsetMinutes),
		})
	}
	if len(fields) == 0 {
		return nil
	}
	return NewValidationError(fields...)
}

// BirthMoment is normalized birth data: a UTC instant plus coordinates.
// It is the only input the calculation backends accept.
type BirthMoment struct {
	Name      string    `json:"name,omitempty"`
	UTC       time.Time `json:"utc"`
	JulianDay float64   `json:"julianDay"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
}
