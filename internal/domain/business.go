package domain

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// DefaultImage is used when a listing is created without an image.
const DefaultImage = "https://via.placeholder.com/400x300?text=Business"

// Business is a directory listing. The JSON shape is consumed by the web
// client as-is, including the "_id" key.
type Business struct {
	ID          string    `gorm:"primaryKey;size:36" json:"_id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Email       string    `gorm:"size:255;not null" json:"email"`
	Phone       string    `gorm:"size:32;not null" json:"phone"`
	Category    string    `gorm:"size:32;not null;index" json:"category"`
	Address     string    `gorm:"size:255;not null" json:"address"`
	City        string    `gorm:"size:128;not null;index" json:"city"`
	Postcode    string    `gorm:"size:16;not null" json:"postcode"`
	Description string    `gorm:"type:text" json:"description"`
	Website     string    `gorm:"size:255" json:"website"`
	Rating      float64   `gorm:"not null;default:0" json:"rating"`
	Reviews     int       `gorm:"not null;default:0" json:"reviews"`
	IsVerified  bool      `gorm:"not null;default:false" json:"isVerified"`
	Image       string    `gorm:"size:512" json:"image"`
	CreatedAt   time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Lower-cased copies that substring search runs against. Database LOWER()
	// is ASCII-only on sqlite, so folding happens here.
	NameFold        string `gorm:"size:255;not null;default:''" json:"-"`
	DescriptionFold string `gorm:"type:text" json:"-"`
	CityFold        string `gorm:"size:128;not null;default:''" json:"-"`
}

func (Business) TableName() string { return "businesses" }

// Fold is the case folding shared by stored search columns and search terms.
func Fold(s string) string { return strings.ToLower(s) }

// Refold recomputes the search columns from the visible fields.
func (b *Business) Refold() {
	b.NameFold = Fold(b.Name)
	b.DescriptionFold = Fold(b.Description)
	b.CityFold = Fold(b.City)
}

// BusinessInput is a create or update request. A nil field was not supplied.
type BusinessInput struct {
	Name        *string  `json:"name"`
	Email       *string  `json:"email"`
	Phone       *string  `json:"phone"`
	Category    *string  `json:"category"`
	Address     *string  `json:"address"`
	City        *string  `json:"city"`
	Postcode    *string  `json:"postcode"`
	Description *string  `json:"description"`
	Website     *string  `json:"website"`
	Rating      *float64 `json:"rating"`
	Reviews     *int     `json:"reviews"`
	IsVerified  *bool    `json:"isVerified"`
	Image       *string  `json:"image"`

	nulls map[string]bool // lower-cased JSON keys sent as an explicit null
}

// UnmarshalJSON decodes the input and remembers which keys were sent as an
// explicit null, so an update can tell a cleared field from a missing one.
func (in *BusinessInput) UnmarshalJSON(b []byte) error {
	type plain BusinessInput
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*in = BusinessInput(p)
	for k, v := range raw {
		if bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			in.MarkNull(k)
		}
	}
	return nil
}

// MarkNull records that field was sent as an explicit null.
func (in *BusinessInput) MarkNull(field string) {
	if in.nulls == nil {
		in.nulls = map[string]bool{}
	}
	in.nulls[strings.ToLower(field)] = true
}

// IsNull reports whether field (its JSON key) was sent as an explicit null.
func (in *BusinessInput) IsNull(field string) bool { return in.nulls[strings.ToLower(field)] }
