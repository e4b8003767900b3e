package models

// CategoryRating is one synastry category: a 1..5 rating plus prose.
type CategoryRating struct {
	Rating      int    `json:"rating"`
	Description string `json:"description"`
}

// Overall wraps the combined synastry summary.
type Overall struct {
	Summary string `json:"summary"`
}

// CompatibilityResult is the full synastry outcome for two charts.
// When both charts could not be computed the result keeps IsUnavailable
// set with neutral ratings instead of failing the request.
type CompatibilityResult struct {
	Love          CategoryRating `json:"love"`
	Friendship    CategoryRating `json:"friendship"`
	Teamwork      CategoryRating `json:"teamwork"`
	Overall       Overall        `json:"overall"`
	KeyAspects    []string       `json:"keyAspects"`
	Aspects       []Aspect       `json:"aspects,omitempty"`
	IsUnavailable bool           `json:"isUnavailable,omitempty"`
	Message       string         `json:"message,omitempty"`
	Meta          ResultMeta     `json:"metadata"`
}
