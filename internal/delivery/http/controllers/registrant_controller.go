package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"eventregistration/internal/delivery/http/helpers"
	"eventregistration/internal/domain"
)

// RegistrantRequest is the registrant payload of POST /registrants and POST /registrations/new.
type RegistrantRequest struct {
	EmailAddress string         `json:"emailAddress"`
	FirstName    string         `json:"firstName"`
	LastName     string         `json:"lastName"`
	Church       string         `json:"church"`
	PhoneNumber  string         `json:"phoneNumber"`
	Address      AddressRequest `json:"address"`
}

// Validate implements Validator.
func (c RegistrantRequest) Validate() []string {
	var errs []string
	if !emailRegex.MatchString(strings.TrimSpace(c.EmailAddress)) {
		errs = append(errs, "emailAddress must be a valid email")
	}
	if strings.TrimSpace(c.FirstName) == "" {
		errs = append(errs, "firstName is required")
	}
	if strings.TrimSpace(c.LastName) == "" {
		errs = append(errs, "lastName is required")
	}
	if strings.TrimSpace(c.Church) == "" {
		errs = append(errs, "church is required")
	}
	if phone := strings.TrimSpace(c.PhoneNumber); phone != "" && !phoneRegex.MatchString(phone) {
		errs = append(errs, "phoneNumber must be a 10 digit phone number")
	}
	return append(errs, c.Address.validate()...)
}

func (c RegistrantRequest) toDomain() *domain.Registrant {
	return &domain.Registrant{
		EmailAddress: domain.NormalizeEmail(c.EmailAddress),
		FirstName:    strings.TrimSpace(c.FirstName),
		LastName:     strings.TrimSpace(c.LastName),
		Church:       strings.TrimSpace(c.Church),
		PhoneNumber:  strings.TrimSpace(c.PhoneNumber),
		Address:      c.Address.toDomain(),
	}
}

type RegistrantController struct {
	Logger      *slog.Logger
	Registrants domain.RegistrantRepository
}

func NewRegistrantController(logger *slog.Logger, registrants domain.RegistrantRepository) *RegistrantController {
	return &RegistrantController{Logger: defaultLogger(logger), Registrants: registrants}
}

// ListRegistrants godoc
// @Summary List registrants
// @Tags registrants
// @Produce json
// @Security BearerAuth
// @Param sort query string false "Sort field" Enums(emailAddress, createdAt) default(emailAddress)
// @Param direction query string false "Sort direction" Enums(asc, desc) default(asc)
// @Success 200 {array} domain.Registrant
// @Failure 400 {object} helpers.ErrorBody "name: ValidationError"
// @Failure 401 {object} helpers.ErrorBody "name: UnauthorizedError"
// @Router /registrants [get]
func (c *RegistrantController) ListRegistrants(w http.ResponseWriter, r *http.Request) {
	registrants, err := c.Registrants.GetMany(r.Context())
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	writeList(w, r, registrants, []string{"emailAddress", "createdAt"}, "emailAddress", helpers.SortAsc,
		func(sort string) func(a, b *domain.Registrant) int {
			if sort == "createdAt" {
				return func(a, b *domain.Registrant) int { return a.CreatedAt.Compare(b.CreatedAt) }
			}
			return func(a, b *domain.Registrant) int { return strings.Compare(a.EmailAddress, b.EmailAddress) }
		})
}

// GetRegistrant godoc
// @Summary Get a registrant by ID
// @Tags registrants
// @Produce json
// @Param registrantID path string true "Registrant ID"
// @Success 200 {object} domain.Registrant
// @Failure 404 {object} helpers.ErrorBody "name: RegistrantNotFoundError"
// @Router /registrants/{registrantID} [get]
func (c *RegistrantController) GetRegistrant(w http.ResponseWriter, r *http.Request) {
	registrant, err := c.Registrants.GetByID(r.Context(), r.PathValue("registrantID"))
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, registrant)
}

// CreateRegistrant godoc
// @Summary Create a registrant
// @Tags registrants
// @Accept json
// @Produce json
// @Param registrant body RegistrantRequest true "Registrant profile"
// @Success 200 {object} domain.Registrant
// @Failure 400 {object} helpers.ErrorBody "name: ValidationError"
// @Failure 409 {object} helpers.ErrorBody "name: RegistrantAlreadyExistsError"
// @Router /registrants [post]
func (c *RegistrantController) CreateRegistrant(w http.ResponseWriter, r *http.Request) {
	var req RegistrantRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	registrant := req.toDomain()
	if err := c.Registrants.Create(r.Context(), registrant); err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, registrant)
}
