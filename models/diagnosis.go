package models

import (
	"time"

	"sukuyo/domain/core"
	"sukuyo/domain/mansion"
	"sukuyo/domain/tenmon"
)

// Output formats for a rendered diagnosis
const (
	FormatText = "text"
	FormatHTML = "html"
)

// Diagnosis is the full result of one diagnose request. Nothing here is stored.
type Diagnosis struct {
	ID        core.DiagnosisID `json:"id"`
	Name      string           `json:"name,omitempty"`
	Birthdate string           `json:"birthdate"`
	BornAt    time.Time        `json:"born_at"`
	Ephemeris string           `json:"ephemeris"`

	Triple  mansion.Triple  `json:"triple"`
	Primary mansion.Mansion `json:"primary"`
	Karma   mansion.Mansion `json:"karma"`
	Origin  mansion.Mansion `json:"origin"`

	Kanagi   string         `json:"kanagi"`
	Kotodama string         `json:"kotodama"`
	Core     tenmon.Reading `json:"core"`

	// Detail is the catalog record matching the primary mansion by name.
	// 牛宿 has no record in the 27-mansion catalog.
	Detail *ShukuDetail `json:"detail,omitempty"`

	Text string `json:"text"`
	HTML string `json:"html,omitempty"`
}
