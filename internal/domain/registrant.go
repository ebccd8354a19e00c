package domain

import (
	"context"
	"strings"
	"time"
)

// Address is a registrant's postal address. PostalCode is kept as a string so
// leading zeros survive.
type Address struct {
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2"`
	City         string `json:"city"`
	State        string `json:"state"`
	Country      string `json:"country"`
	PostalCode   string `json:"postalCode"`
}

// Registrant is a person registering for an event. EmailAddress is unique.
// swagger:model Registrant
type Registrant struct {
	ID           string     `json:"id"`
	EmailAddress string     `json:"emailAddress"`
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	Church       string     `json:"church"`
	PhoneNumber  string     `json:"phoneNumber"`
	Address      Address    `json:"address"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	DeletedAt    *time.Time `json:"deletedAt"`
}

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Merge copies every non-empty profile field of update over r. Identity and
// timestamps are left alone.
func (r *Registrant) Merge(update *Registrant) {
	mergeString(&r.EmailAddress, update.EmailAddress)
	mergeString(&r.FirstName, update.FirstName)
	mergeString(&r.LastName, update.LastName)
	mergeString(&r.Church, update.Church)
	mergeString(&r.PhoneNumber, update.PhoneNumber)
	mergeString(&r.Address.AddressLine1, update.Address.AddressLine1)
	mergeString(&r.Address.AddressLine2, update.Address.AddressLine2)
	mergeString(&r.Address.City, update.Address.City)
	mergeString(&r.Address.State, update.Address.State)
	mergeString(&r.Address.Country, update.Address.Country)
	mergeString(&r.Address.PostalCode, update.Address.PostalCode)
}

func mergeString(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

// RegistrantRepository defines the interface for registrant storage.
type RegistrantRepository interface {
	Create(ctx context.Context, registrant *Registrant) error
	GetByID(ctx context.Context, id string) (*Registrant, error)
	GetByEmail(ctx context.Context, email string) (*Registrant, error)
	GetMany(ctx context.Context) ([]*Registrant, error)
	// Upsert creates the registrant or, when the email is taken, merges the
	// payload over the stored record and returns it under its original ID.
	Upsert(ctx context.Context, registrant *Registrant) (*Registrant, error)
}
