package controllers

import (
	"cmp"
	"log/slog"
	"net/http"
	"strings"

	"eventregistration/internal/delivery/http/helpers"
	"eventregistration/internal/domain"
)

// CreatePaymentRequest is the request body for POST /payments. It records a
// pending payment; no charge is made.
type CreatePaymentRequest struct {
	RegistrantID   string `json:"registrantId"`
	RegistrationID string `json:"registrationId"`
	NewPaymentRequest
}

// Validate implements Validator.
func (c CreatePaymentRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.RegistrantID) == "" {
		errs = append(errs, "registrantId is required")
	}
	if strings.TrimSpace(c.RegistrationID) == "" {
		errs = append(errs, "registrationId is required")
	}
	if c.Amount == 0 {
		errs = append(errs, "amount must be a positive integer")
	}
	if strings.TrimSpace(c.LocationID) == "" {
		errs = append(errs, "locationId is required")
	}
	if c.IdempotencyKey == "" {
		errs = append(errs, "idempotencyKey is required")
	}
	if c.StatementDescriptionIdentifier == "" {
		errs = append(errs, "statementDescriptionIdentifier is required")
	}
	for _, e := range c.NewPaymentRequest.validate() {
		errs = append(errs, strings.TrimPrefix(e, "payment."))
	}
	return errs
}

type PaymentController struct {
	Logger   *slog.Logger
	Payments domain.PaymentRepository
}

func NewPaymentController(logger *slog.Logger, payments domain.PaymentRepository) *PaymentController {
	return &PaymentController{Logger: defaultLogger(logger), Payments: payments}
}

// ListPayments godoc
// @Summary List payments
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param sort query string false "Sort field" Enums(amount, createdAt) default(createdAt)
// @Param direction query string false "Sort direction" Enums(asc, desc) default(asc)
// @Success 200 {array} domain.Payment
// @Failure 400 {object} helpers.ErrorBody "name: ValidationError"
// @Failure 401 {object} helpers.ErrorBody "name: UnauthorizedError"
// @Router /payments [get]
func (c *PaymentController) ListPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := c.Payments.GetMany(r.Context())
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	writeList(w, r, payments, []string{"amount", "createdAt"}, "createdAt", helpers.SortAsc,
		func(sort string) func(a, b *domain.Payment) int {
			if sort == "amount" {
				return func(a, b *domain.Payment) int { return cmp.Compare(a.Amount, b.Amount) }
			}
			return func(a, b *domain.Payment) int { return a.CreatedAt.Compare(b.CreatedAt) }
		})
}

// GetPayment godoc
// @Summary Get a payment by ID
// @Tags payments
// @Produce json
// @Param paymentID path string true "Payment ID"
// @Success 200 {object} domain.Payment
// @Failure 404 {object} helpers.ErrorBody "name: PaymentNotFoundError"
// @Router /payments/{paymentID} [get]
func (c *PaymentController) GetPayment(w http.ResponseWriter, r *http.Request) {
	payment, err := c.Payments.GetByID(r.Context(), r.PathValue("paymentID"))
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, payment)
}

// CreatePayment godoc
// @Summary Record a payment
// @Tags payments
// @Accept json
// @Produce json
// @Param payment body CreatePaymentRequest true "Payment"
// @Success 200 {object} domain.Payment
// @Failure 400 {object} helpers.ErrorBody "name: ValidationError"
// @Failure 404 {object} helpers.ErrorBody "name: RegistrantNotFoundError or RegistrationNotFoundError"
// @Failure 409 {object} helpers.ErrorBody "name: PaymentAlreadyExistsError"
// @Router /payments [post]
func (c *PaymentController) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var req CreatePaymentRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	payment := req.NewPaymentRequest.toDomain()
	payment.RegistrantID = strings.TrimSpace(req.RegistrantID)
	payment.RegistrationID = strings.TrimSpace(req.RegistrationID)
	if err := c.Payments.Create(r.Context(), &payment); err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, payment)
}
