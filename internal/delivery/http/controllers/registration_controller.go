package controllers

import (
	"cmp"
	"log/slog"
	"net/http"
	"strings"

	"eventregistration/internal/delivery/http/helpers"
	"eventregistration/internal/domain"
)

// RegistrationChoices are the enrollment options a registrant picks.
type RegistrationChoices struct {
	Amenity         string                 `json:"amenity" enums:"standard,deluxe,bunk,rv"`
	RoommateRequest domain.RoommateRequest `json:"roommateRequest" swaggertype:"string"`
	SundayLunch     *bool                  `json:"sundayLunch"`
}

func (c RegistrationChoices) validate() []string {
	var errs []string
	if _, err := domain.ParseAmenity(c.Amenity); err != nil {
		errs = append(errs, "amenity must be one of standard, deluxe, bunk, rv")
	}
	if c.SundayLunch == nil {
		errs = append(errs, "sundayLunch is required")
	}
	return errs
}

func (c RegistrationChoices) toDomain() domain.Registration {
	amenity, _ := domain.ParseAmenity(c.Amenity)
	return domain.Registration{
		Amenity:         amenity,
		RoommateRequest: c.RoommateRequest,
		SundayLunch:     c.SundayLunch != nil && *c.SundayLunch,
	}
}

// CreateRegistrationRequest is the request body for POST /registrations.
type CreateRegistrationRequest struct {
	RegistrantID string `json:"registrantId"`
	EventID      string `json:"eventId"`
	RegistrationChoices
}

// Validate implements Validator.
func (c CreateRegistrationRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.RegistrantID) == "" {
		errs = append(errs, "registrantId is required")
	}
	if strings.TrimSpace(c.EventID) == "" {
		errs = append(errs, "eventId is required")
	}
	return append(errs, c.RegistrationChoices.validate()...)
}

// NewPaymentRequest is the payment part of POST /registrations/new. An
// omitted amount charges the registration's balance due; an omitted
// idempotency key is generated.
type NewPaymentRequest struct {
	SourceID                       string `json:"sourceId"`
	Amount                         int64  `json:"amount"`
	Currency                       string `json:"currency" default:"USD"`
	LocationID                     string `json:"locationId"`
	IdempotencyKey                 string `json:"idempotencyKey"`
	StatementDescriptionIdentifier string `json:"statementDescriptionIdentifier"`
}

func (c NewPaymentRequest) validate() []string {
	var errs []string
	if strings.TrimSpace(c.SourceID) == "" {
		errs = append(errs, "payment.sourceId is required")
	}
	if c.Amount < 0 {
		errs = append(errs, "payment.amount must be a positive integer")
	}
	if c.Currency != "" && c.Currency != "USD" {
		errs = append(errs, "payment.currency must be USD")
	}
	if c.IdempotencyKey != "" && !isUUIDv4(c.IdempotencyKey) {
		errs = append(errs, "payment.idempotencyKey must be a UUIDv4")
	}
	if len(c.StatementDescriptionIdentifier) > maxStatementDescriptor {
		errs = append(errs, "payment.statementDescriptionIdentifier must be at most 20 characters")
	}
	return errs
}

func (c NewPaymentRequest) toDomain() domain.Payment {
	return domain.Payment{
		SourceID:            strings.TrimSpace(c.SourceID),
		Amount:              c.Amount,
		Currency:            c.Currency,
		LocationID:          strings.TrimSpace(c.LocationID),
		IdempotencyKey:      c.IdempotencyKey,
		StatementDescriptor: c.StatementDescriptionIdentifier,
	}
}

// NewRegistrationRequest is the request body for POST /registrations/new.
type NewRegistrationRequest struct {
	Registrant   RegistrantRequest   `json:"registrant"`
	Registration RegistrationChoices `json:"registration"`
	Payment      NewPaymentRequest   `json:"payment"`
}

// Validate implements Validator.
func (c NewRegistrationRequest) Validate() []string {
	var errs []string
	for _, e := range c.Registrant.Validate() {
		errs = append(errs, "registrant."+e)
	}
	for _, e := range c.Registration.validate() {
		errs = append(errs, "registration."+e)
	}
	return append(errs, c.Payment.validate()...)
}

type RegistrationController struct {
	Logger        *slog.Logger
	Registrations domain.RegistrationRepository
	Events        domain.EventRepository
	Service       domain.RegistrationService
}

func NewRegistrationController(logger *slog.Logger, registrations domain.RegistrationRepository, events domain.EventRepository, svc domain.RegistrationService) *RegistrationController {
	return &RegistrationController{
		Logger:        defaultLogger(logger),
		Registrations: registrations,
		Events:        events,
		Service:       svc,
	}
}

// ListRegistrations godoc
// @Summary List registrations
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param sort query string false "Sort field" Enums(eventYear, balanceDue) default(eventYear)
// @Param direction query string false "Sort direction" Enums(asc, desc) default(desc)
// @Success 200 {array} domain.Registration
// @Failure 400 {object} helpers.ErrorBody "name: ValidationError"
// @Failure 401 {object} helpers.ErrorBody "name: UnauthorizedError"
// @Router /registrations [get]
func (c *RegistrationController) ListRegistrations(w http.ResponseWriter, r *http.Request) {
	registrations, err := c.Registrations.GetMany(r.Context())
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	events, err := c.Events.GetMany(r.Context())
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	years := make(map[string]int, len(events))
	for _, e := range events {
		years[e.ID] = e.Year
	}
	writeList(w, r, registrations, []string{"eventYear", "balanceDue"}, "eventYear", helpers.SortDesc,
		func(sort string) func(a, b *domain.Registration) int {
			if sort == "balanceDue" {
				return func(a, b *domain.Registration) int { return cmp.Compare(a.BalanceDue, b.BalanceDue) }
			}
			return func(a, b *domain.Registration) int { return cmp.Compare(years[a.EventID], years[b.EventID]) }
		})
}

// GetRegistration godoc
// @Summary Get a registration by ID
// @Tags registrations
// @Produce json
// @Param registrationID path string true "Registration ID"
// @Success 200 {object} domain.Registration
// @Failure 404 {object} helpers.ErrorBody "name: RegistrationNotFoundError"
// @Router /registrations/{registrationID} [get]
func (c *RegistrationController) GetRegistration(w http.ResponseWriter, r *http.Request) {
	registration, err := c.Registrations.GetByID(r.Context(), r.PathValue("registrationID"))
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, registration)
}

// CreateRegistration godoc
// @Summary Create a registration
// @Description Enrolls an existing registrant in an event. The balance due is derived from the amenity.
// @Tags registrations
// @Accept json
// @Produce json
// @Param registration body CreateRegistrationRequest true "Registration"
// @Success 200 {object} domain.Registration
// @Failure 400 {object} helpers.ErrorBody "name: ValidationError"
// @Failure 404 {object} helpers.ErrorBody "name: RegistrantNotFoundError"
// @Failure 409 {object} helpers.ErrorBody "name: RegistrantAlreadyRegisteredError"
// @Router /registrations [post]
func (c *RegistrationController) CreateRegistration(w http.ResponseWriter, r *http.Request) {
	var req CreateRegistrationRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	registration := req.RegistrationChoices.toDomain()
	registration.RegistrantID = strings.TrimSpace(req.RegistrantID)
	registration.EventID = strings.TrimSpace(req.EventID)
	if err := c.Registrations.Create(r.Context(), &registration); err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, registration)
}

// NewRegistration godoc
// @Summary Register and pay
// @Description Upserts the registrant, enrolls them in the most recent event, records the payment, charges it and emails a receipt. A declined charge removes the registration and payment.
// @Tags registrations
// @Accept json
// @Produce json
// @Param registration body NewRegistrationRequest true "Registrant, registration and payment"
// @Success 200 {object} domain.RegistrationResult
// @Failure 400 {object} helpers.ErrorBody "name: ValidationError"
// @Failure 402 {object} helpers.ErrorBody "name: PaymentGatewayError"
// @Failure 404 {object} helpers.ErrorBody "name: EventNotFoundError"
// @Failure 409 {object} helpers.ErrorBody "name: RegistrantAlreadyRegisteredError or PaymentAlreadyExistsError"
// @Failure 504 {object} helpers.ErrorBody "name: ChargeOutcomeUnknownError"
// @Router /registrations/new [post]
func (c *RegistrationController) NewRegistration(w http.ResponseWriter, r *http.Request) {
	var req NewRegistrationRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	result, err := c.Service.Register(r.Context(), &domain.RegistrationRequest{
		Registrant:   *req.Registrant.toDomain(),
		Registration: req.Registration.toDomain(),
		Payment:      req.Payment.toDomain(),
	})
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, result)
}
