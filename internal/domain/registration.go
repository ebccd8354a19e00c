package domain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Amenity is the lodging option chosen for a registration.
type Amenity string

const (
	AmenityStandard Amenity = "standard"
	AmenityDeluxe   Amenity = "deluxe"
	AmenityBunk     Amenity = "bunk"
	AmenityRV       Amenity = "rv"
)

// amenityPrices is the balance due per amenity, in cents.
var amenityPrices = map[Amenity]int64{
	AmenityStandard: 32500,
	AmenityDeluxe:   42500,
	AmenityBunk:     22500,
	AmenityRV:       17500,
}

// ParseAmenity returns the Amenity for s, or ErrInvalidInput.
func ParseAmenity(s string) (Amenity, error) {
	a := Amenity(strings.TrimSpace(s))
	if _, ok := amenityPrices[a]; !ok {
		return "", fmt.Errorf("%w: amenity must be one of standard, deluxe, bunk, rv", ErrInvalidInput)
	}
	return a, nil
}

// Price returns the balance due for the amenity in cents.
func (a Amenity) Price() (int64, bool) {
	p, ok := amenityPrices[a]
	return p, ok
}

// RoommateRequest is a requested roommate name. It encodes to JSON false when
// empty and to the name otherwise. It decodes from a string, false or null;
// true names nobody and is rejected.
type RoommateRequest string

func (r RoommateRequest) MarshalJSON() ([]byte, error) {
	if r == "" {
		return []byte("false"), nil
	}
	return json.Marshal(string(r))
}

func (r *RoommateRequest) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch string(b) {
	case "null", "false":
		*r = ""
		return nil
	case "true":
		return fmt.Errorf("%w: roommateRequest must be a name or false", ErrInvalidInput)
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("roommateRequest must be a string or boolean: %w", err)
	}
	*r = RoommateRequest(strings.TrimSpace(s))
	return nil
}

// Registration is a registrant's enrollment in one event.
// swagger:model Registration
type Registration struct {
	ID              string          `json:"id"`
	RegistrantID    string          `json:"registrantId"`
	EventID         string          `json:"eventId"`
	Amenity         Amenity         `json:"amenity"`
	RoommateRequest RoommateRequest `json:"roommateRequest"`
	SundayLunch     bool            `json:"sundayLunch"`
	BalanceDue      int64           `json:"balanceDue"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
	DeletedAt       *time.Time      `json:"deletedAt"`
}

// RegistrationRepository defines the interface for registration storage.
type RegistrationRepository interface {
	// Create enforces one registration per (registrant, event) and derives
	// BalanceDue from the amenity.
	Create(ctx context.Context, registration *Registration) error
	GetByID(ctx context.Context, id string) (*Registration, error)
	GetMany(ctx context.Context) ([]*Registration, error)
	Delete(ctx context.Context, id string) error
}
