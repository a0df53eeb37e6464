package models

// ShukuCount is the size of the 27-mansion catalog served by the detail API.
const ShukuCount = 27

// ShukuDetail is one record of the 27-mansion catalog
type ShukuDetail struct {
	ID          int     `json:"id" db:"id" yaml:"id"`
	Name        string  `json:"name" db:"name" yaml:"name"`
	Reading     string  `json:"reading" db:"reading" yaml:"reading"`
	RangeStart  float64 `json:"range_start" db:"range_start" yaml:"range_start"`
	RangeEnd    float64 `json:"range_end" db:"range_end" yaml:"range_end"`
	Personality string  `json:"personality,omitempty" db:"personality" yaml:"personality"`
	Fortune     string  `json:"fortune,omitempty" db:"fortune" yaml:"fortune"`
	Vocation    string  `json:"vocation,omitempty" db:"vocation" yaml:"vocation"`
	Traits      string  `json:"traits,omitempty" db:"traits" yaml:"traits"`
	Category    string  `json:"category,omitempty" db:"category" yaml:"category"`
	StarShape   string  `json:"star_shape,omitempty" db:"star_shape" yaml:"star_shape"`
}

// ValidShukuID reports whether id addresses a catalog record
func ValidShukuID(id int) bool {
	return id >= 1 && id <= ShukuCount
}
