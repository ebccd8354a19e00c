package controllers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"eventregistration/internal/delivery/http/helpers"
	"eventregistration/internal/domain"
)

// emailRegex matches a simple email format (local@domain with at least one dot in domain).
var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// phoneRegex matches US numbers like (559) 555-0100, 559.555.0100 or 5595550100.
var phoneRegex = regexp.MustCompile(`^\(?([0-9]{3})\)?[ .-]?([0-9]{3})[ .-]?([0-9]{4})$`)

var postalCodeRegex = regexp.MustCompile(`^[0-9]{5}$`)

const maxStatementDescriptor = 20

// PostalCode accepts a JSON string or number and keeps it as a string.
type PostalCode string

func (p *PostalCode) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*p = PostalCode(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("postalCode must be a string or number")
	}
	if _, err := strconv.ParseUint(n.String(), 10, 64); err != nil {
		return fmt.Errorf("postalCode must be a positive integer")
	}
	// Numeric codes lose leading zeros on the wire.
	code := n.String()
	if len(code) < 5 {
		code = strings.Repeat("0", 5-len(code)) + code
	}
	*p = PostalCode(code)
	return nil
}

// AddressRequest is the address part of a registrant payload.
type AddressRequest struct {
	AddressLine1 string     `json:"addressLine1"`
	AddressLine2 string     `json:"addressLine2"`
	City         string     `json:"city"`
	State        string     `json:"state"`
	Country      string     `json:"country"`
	PostalCode   PostalCode `json:"postalCode" swaggertype:"string"`
}

func (a AddressRequest) validate() []string {
	var errs []string
	if strings.TrimSpace(a.AddressLine1) == "" {
		errs = append(errs, "address.addressLine1 is required")
	}
	if strings.TrimSpace(a.City) == "" {
		errs = append(errs, "address.city is required")
	}
	switch state := strings.TrimSpace(a.State); {
	case state == "":
		errs = append(errs, "address.state is required")
	case len(state) > 2:
		errs = append(errs, "address.state must be at most 2 characters")
	}
	if strings.TrimSpace(a.Country) == "" {
		errs = append(errs, "address.country is required")
	}
	if !postalCodeRegex.MatchString(string(a.PostalCode)) {
		errs = append(errs, "address.postalCode must be 5 digits")
	}
	return errs
}

func (a AddressRequest) toDomain() domain.Address {
	return domain.Address{
		AddressLine1: strings.TrimSpace(a.AddressLine1),
		AddressLine2: strings.TrimSpace(a.AddressLine2),
		City:         strings.TrimSpace(a.City),
		State:        strings.ToUpper(strings.TrimSpace(a.State)),
		Country:      strings.TrimSpace(a.Country),
		PostalCode:   string(a.PostalCode),
	}
}

func isUUIDv4(s string) bool {
	id, err := uuid.Parse(s)
	return err == nil && id.Version() == 4
}

// writeList parses sort params, sorts items and writes them, or writes a 400.
func writeList[T any](w http.ResponseWriter, r *http.Request, items []T, fields []string, defSort, defDir string, cmp func(sort string) func(a, b T) int) {
	params, err := helpers.ParseListParams(r, fields, defSort, defDir)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrNameValidation, err.Error())
		return
	}
	helpers.SortList(items, params, cmp(params.Sort))
	helpers.WriteJSON(w, http.StatusOK, items)
}

func defaultLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
