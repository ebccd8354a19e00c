package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventregistration/internal/delivery/http/controllers"
	"eventregistration/internal/delivery/http/helpers"
)

// Controllers groups the handlers mounted by NewRouter.
type Controllers struct {
	Events        *controllers.EventController
	Registrants   *controllers.RegistrantController
	Registrations *controllers.RegistrationController
	Payments      *controllers.PaymentController
}

// NewRouter initializes the HTTP router with all application routes.
// requireAdmin wraps the listing endpoints and event creation; nil leaves
// them open.
func NewRouter(c Controllers, requireAdmin func(http.HandlerFunc) http.HandlerFunc) *http.ServeMux {
	if requireAdmin == nil {
		requireAdmin = func(next http.HandlerFunc) http.HandlerFunc { return next }
	}
	mux := http.NewServeMux()

	// Events
	mux.HandleFunc("GET /events", c.Events.ListEvents)
	mux.HandleFunc("POST /events", requireAdmin(c.Events.CreateEvent))
	mux.HandleFunc("GET /events/{eventID}", c.Events.GetEvent)

	// Registrants
	mux.HandleFunc("GET /registrants", requireAdmin(c.Registrants.ListRegistrants))
	mux.HandleFunc("POST /registrants", c.Registrants.CreateRegistrant)
	mux.HandleFunc("GET /registrants/{registrantID}", c.Registrants.GetRegistrant)

	// Registrations
	mux.HandleFunc("GET /registrations", requireAdmin(c.Registrations.ListRegistrations))
	mux.HandleFunc("POST /registrations", c.Registrations.CreateRegistration)
	mux.HandleFunc("POST /registrations/new", c.Registrations.NewRegistration)
	mux.HandleFunc("GET /registrations/{registrationID}", c.Registrations.GetRegistration)

	// Payments
	mux.HandleFunc("GET /payments", requireAdmin(c.Payments.ListPayments))
	mux.HandleFunc("POST /payments", c.Payments.CreatePayment)
	mux.HandleFunc("GET /payments/{paymentID}", c.Payments.GetPayment)

	for _, resource := range []string{"/events", "/registrants", "/registrations", "/payments"} {
		mux.HandleFunc(resource, helpers.MethodNotImplemented)
		mux.HandleFunc(resource+"/", helpers.MethodNotImplemented)
	}

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	mux.HandleFunc("/", helpers.ResourceNotExists)

	return mux
}
