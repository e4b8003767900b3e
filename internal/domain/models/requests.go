package models

// Requests for astrology HTTP endpoints. Defined in domain for consistency and reuse.

type BirthDataRequest struct {
	Name            string  `json:"name" validate:"omitempty,max=120"`
	BirthDate       string  `json:"birthDate" validate:"required"`
	BirthTime       string  `json:"birthTime" validate:"omitempty"`
	Latitude        float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude       float64 `json:"longitude" validate:"gte=-180,lte=180"`
	TZOffsetMinutes int     `json:"tzOffsetMinutes" validate:"gte=-840,lte=840"`
}

// Input converts the request into the domain form.
func (r BirthDataRequest) Input() BirthInput {
	return BirthInput{
		Name:            r.Name,
		Date:            r.BirthDate,
		Time:            r.BirthTime,
		Latitude:        r.Latitude,
		Longitude:       r.Longitude,
		TZOffsetMinutes: r.TZOffsetMinutes,
	}
}

type ChartRequest struct {
	BirthDataRequest
}

type CompatibilityRequest struct {
	Person1 BirthDataRequest `json:"person1" validate:"required"`
	Person2 BirthDataRequest `json:"person2" validate:"required"`
}

type HistoryRequest struct {
	Limit int    `query:"limit" json:"limit" default:"50" validate:"gte=1,lte=500"`
	Kind  string `query:"kind" json:"kind" default:"" validate:"omitempty,oneof=natal transits"`
}
