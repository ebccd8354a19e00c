package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventregistration/internal/delivery/http/helpers"
	"eventregistration/internal/domain"
	"eventregistration/internal/repository"
	"eventregistration/internal/repository/memory"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeRegistrationService implements domain.RegistrationService for handler tests.
type fakeRegistrationService struct {
	err     error
	result  *domain.RegistrationResult
	lastReq *domain.RegistrationRequest
}

func (f *fakeRegistrationService) Register(_ context.Context, req *domain.RegistrationRequest) (*domain.RegistrationResult, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type repos struct {
	events        domain.EventRepository
	registrants   domain.RegistrantRepository
	registrations domain.RegistrationRepository
	payments      domain.PaymentRepository
}

func newRepos() repos {
	store := memory.NewStore()
	events := repository.NewEventRepository(store)
	registrants := repository.NewRegistrantRepository(store)
	registrations := repository.NewRegistrationRepository(store, registrants, events)
	return repos{
		events:        events,
		registrants:   registrants,
		registrations: registrations,
		payments:      repository.NewPaymentRepository(store, registrants, registrations),
	}
}

func jsonBody(t *testing.T, v any) *bytes.Reader {
	t.Helper()
	if s, ok := v.(string); ok {
		return bytes.NewReader([]byte(s))
	}
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) helpers.ErrorBody {
	t.Helper()
	var body helpers.ErrorBody
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	return body
}

var nextYear = time.Now().Year() + 1

func validRegistrant(email string) map[string]any {
	return map[string]any{
		"emailAddress": email,
		"firstName":    "Ada",
		"lastName":     "Lovelace",
		"church":       "Grace Fellowship",
		"phoneNumber":  "(559) 555-0100",
		"address": map[string]any{
			"addressLine1": "1 Main St",
			"city":         "Fresno",
			"state":        "ca",
			"country":      "US",
			"postalCode":   93650,
		},
	}
}

func TestEventController_CreateEvent(t *testing.T) {
	tests := []struct {
		name       string
		body       any
		wantStatus int
		wantName   string
	}{
		{"valid year", map[string]any{"year": nextYear}, http.StatusOK, ""},
		{"past year", map[string]any{"year": 1999}, http.StatusBadRequest, helpers.ErrNameValidation},
		{"missing year", map[string]any{}, http.StatusBadRequest, helpers.ErrNameValidation},
		{"unknown field", map[string]any{"year": nextYear, "name": "x"}, http.StatusBadRequest, helpers.ErrNameValidation},
		{"invalid json", `{"year":`, http.StatusBadRequest, helpers.ErrNameValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewEventController(testLogger, newRepos().events)
			req := httptest.NewRequest(http.MethodPost, "/events", jsonBody(t, tt.body))
			rr := httptest.NewRecorder()

			c.CreateEvent(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantName != "" {
				assert.Equal(t, tt.wantName, decodeError(t, rr).Name)
				return
			}
			var got domain.Event
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
			assert.NotEmpty(t, got.ID)
			assert.Equal(t, nextYear, got.Year)
		})
	}
}

func TestEventController_DuplicateYearConflicts(t *testing.T) {
	c := NewEventController(testLogger, newRepos().events)
	for i, want := range []int{http.StatusOK, http.StatusConflict} {
		req := httptest.NewRequest(http.MethodPost, "/events", jsonBody(t, map[string]any{"year": nextYear}))
		rr := httptest.NewRecorder()
		c.CreateEvent(rr, req)
		require.Equal(t, want, rr.Code, "attempt %d", i+1)
		if want == http.StatusConflict {
			body := decodeError(t, rr)
			assert.Equal(t, "EventAlreadyExistsError", body.Name)
			assert.Equal(t, http.StatusConflict, body.Code)
			assert.Equal(t, fmt.Sprintf("Event already exists for the year %d", nextYear), body.Message)
		}
	}
}

func TestEventController_ListAndGet(t *testing.T) {
	r := newRepos()
	for _, y := range []int{nextYear + 1, nextYear, nextYear + 2} {
		require.NoError(t, r.events.Create(context.Background(), domain.NewEvent(y)))
	}
	c := NewEventController(testLogger, r.events)

	t.Run("sort by year ascending", func(t *testing.T) {
		rr := httptest.NewRecorder()
		c.ListEvents(rr, httptest.NewRequest(http.MethodGet, "/events?sort=year&direction=asc", nil))
		require.Equal(t, http.StatusOK, rr.Code)
		var got []domain.Event
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
		require.Len(t, got, 3)
		assert.Equal(t, []int{nextYear, nextYear + 1, nextYear + 2}, []int{got[0].Year, got[1].Year, got[2].Year})
	})

	t.Run("bad sort field", func(t *testing.T) {
		rr := httptest.NewRecorder()
		c.ListEvents(rr, httptest.NewRequest(http.MethodGet, "/events?sort=name", nil))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("unknown query parameter", func(t *testing.T) {
		rr := httptest.NewRecorder()
		c.ListEvents(rr, httptest.NewRequest(http.MethodGet, "/events?limit=1", nil))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("get missing event", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/events/nope", nil)
		req.SetPathValue("eventID", "nope")
		rr := httptest.NewRecorder()
		c.GetEvent(rr, req)
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "EventNotFoundError", decodeError(t, rr).Name)
	})
}

func TestRegistrantController_Create(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(body map[string]any)
		wantStatus int
	}{
		{"valid with numeric postal code", func(map[string]any) {}, http.StatusOK},
		{"string postal code", func(b map[string]any) { b["address"].(map[string]any)["postalCode"] = "01234" }, http.StatusOK},
		{"bad email", func(b map[string]any) { b["emailAddress"] = "nope" }, http.StatusBadRequest},
		{"missing church", func(b map[string]any) { delete(b, "church") }, http.StatusBadRequest},
		{"bad phone", func(b map[string]any) { b["phoneNumber"] = "12345" }, http.StatusBadRequest},
		{"long state", func(b map[string]any) { b["address"].(map[string]any)["state"] = "Cal" }, http.StatusBadRequest},
		{"short postal code", func(b map[string]any) { b["address"].(map[string]any)["postalCode"] = "9365" }, http.StatusBadRequest},
		{"fractional postal code", func(b map[string]any) { b["address"].(map[string]any)["postalCode"] = 93650.5 }, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRepos()
			c := NewRegistrantController(testLogger, r.registrants)
			body := validRegistrant("Ada@Example.com ")
			tt.mutate(body)
			rr := httptest.NewRecorder()

			c.CreateRegistrant(rr, httptest.NewRequest(http.MethodPost, "/registrants", jsonBody(t, body)))

			require.Equal(t, tt.wantStatus, rr.Code, rr.Body.String())
			if tt.wantStatus != http.StatusOK {
				assert.Equal(t, helpers.ErrNameValidation, decodeError(t, rr).Name)
				return
			}
			var got domain.Registrant
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
			assert.Equal(t, "ada@example.com", got.EmailAddress)
			assert.Equal(t, "CA", got.Address.State)
			assert.Len(t, got.Address.PostalCode, 5)
		})
	}
}

func TestRegistrantController_DuplicateEmailAndList(t *testing.T) {
	r := newRepos()
	c := NewRegistrantController(testLogger, r.registrants)
	for _, email := range []string{"b@example.com", "a@example.com"} {
		rr := httptest.NewRecorder()
		c.CreateRegistrant(rr, httptest.NewRequest(http.MethodPost, "/registrants", jsonBody(t, validRegistrant(email))))
		require.Equal(t, http.StatusOK, rr.Code)
	}

	rr := httptest.NewRecorder()
	c.CreateRegistrant(rr, httptest.NewRequest(http.MethodPost, "/registrants", jsonBody(t, validRegistrant("A@example.com"))))
	require.Equal(t, http.StatusConflict, rr.Code)
	body := decodeError(t, rr)
	assert.Equal(t, "RegistrantAlreadyExistsError", body.Name)
	assert.Equal(t, "Email address already belongs to a Registrant", body.Message)

	rr = httptest.NewRecorder()
	c.ListRegistrants(rr, httptest.NewRequest(http.MethodGet, "/registrants", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	var list []domain.Registrant
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&list))
	require.Len(t, list, 2)
	assert.Equal(t, "a@example.com", list[0].EmailAddress)

	req := httptest.NewRequest(http.MethodGet, "/registrants/"+list[1].ID, nil)
	req.SetPathValue("registrantID", list[1].ID)
	rr = httptest.NewRecorder()
	c.GetRegistrant(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
}

func TestRegistrationController_Create(t *testing.T) {
	ctx := context.Background()
	r := newRepos()
	event := domain.NewEvent(nextYear)
	require.NoError(t, r.events.Create(ctx, event))
	registrant := &domain.Registrant{EmailAddress: "a@example.com", FirstName: "A", LastName: "B"}
	require.NoError(t, r.registrants.Create(ctx, registrant))
	c := NewRegistrationController(testLogger, r.registrations, r.events, &fakeRegistrationService{})

	post := func(body any) *httptest.ResponseRecorder {
		rr := httptest.NewRecorder()
		c.CreateRegistration(rr, httptest.NewRequest(http.MethodPost, "/registrations", jsonBody(t, body)))
		return rr
	}

	rr := post(map[string]any{"registrantId": registrant.ID, "eventId": event.ID, "amenity": "deluxe", "sundayLunch": false, "balanceDue": 1})
	assert.Equal(t, http.StatusBadRequest, rr.Code, "balanceDue is not client settable")

	rr = post(map[string]any{"registrantId": registrant.ID, "eventId": event.ID, "amenity": "suite", "sundayLunch": false})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = post(map[string]any{"registrantId": registrant.ID, "eventId": event.ID, "amenity": "DELUXE", "sundayLunch": false})
	assert.Equal(t, http.StatusBadRequest, rr.Code, "amenity is case sensitive")

	rr = post(map[string]any{"registrantId": registrant.ID, "eventId": event.ID, "amenity": "deluxe", "roommateRequest": true, "sundayLunch": false})
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, decodeError(t, rr).Message, "roommateRequest")

	rr = post(map[string]any{"registrantId": registrant.ID, "eventId": event.ID, "amenity": "deluxe"})
	assert.Equal(t, http.StatusBadRequest, rr.Code, "sundayLunch is required")

	rr = post(map[string]any{"registrantId": "ghost", "eventId": event.ID, "amenity": "deluxe", "sundayLunch": true})
	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "RegistrantNotFoundError", decodeError(t, rr).Name)

	body := map[string]any{"registrantId": registrant.ID, "eventId": event.ID, "amenity": "deluxe", "roommateRequest": false, "sundayLunch": true}
	rr = post(body)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var got domain.Registration
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	price, _ := domain.AmenityDeluxe.Price()
	assert.Equal(t, price, got.BalanceDue)

	rr = post(body)
	require.Equal(t, http.StatusConflict, rr.Code)
	errBody := decodeError(t, rr)
	assert.Equal(t, helpers.ErrNameAlreadyRegistered, errBody.Name)
	assert.Equal(t, fmt.Sprintf("Registrant is already registered for %d", nextYear), errBody.Message)
}

func TestRegistrationController_ListSortsByEventYear(t *testing.T) {
	ctx := context.Background()
	r := newRepos()
	registrant := &domain.Registrant{EmailAddress: "a@example.com"}
	require.NoError(t, r.registrants.Create(ctx, registrant))
	for _, y := range []int{nextYear, nextYear + 2, nextYear + 1} {
		e := domain.NewEvent(y)
		require.NoError(t, r.events.Create(ctx, e))
		require.NoError(t, r.registrations.Create(ctx, &domain.Registration{RegistrantID: registrant.ID, EventID: e.ID, Amenity: domain.AmenityRV}))
	}
	c := NewRegistrationController(testLogger, r.registrations, r.events, &fakeRegistrationService{})

	rr := httptest.NewRecorder()
	c.ListRegistrations(rr, httptest.NewRequest(http.MethodGet, "/registrations", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	var list []domain.Registration
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&list))
	require.Len(t, list, 3)

	years := map[string]int{}
	events, err := r.events.GetMany(ctx)
	require.NoError(t, err)
	for _, e := range events {
		years[e.ID] = e.Year
	}
	assert.Equal(t, []int{nextYear + 2, nextYear + 1, nextYear},
		[]int{years[list[0].EventID], years[list[1].EventID], years[list[2].EventID]})
}

func newRegistrationBody() map[string]any {
	return map[string]any{
		"registrant":   validRegistrant("a@b.com"),
		"registration": map[string]any{"amenity": "bunk", "sundayLunch": true, "roommateRequest": nil},
		"payment":      map[string]any{"sourceId": "tok_1", "amount": 5000, "currency": "USD"},
	}
}

func TestRegistrationController_NewRegistration(t *testing.T) {
	t.Run("success maps the request", func(t *testing.T) {
		svc := &fakeRegistrationService{result: &domain.RegistrationResult{
			Registration: &domain.Registration{ID: "reg-1", BalanceDue: 22500},
			Payment:      &domain.Payment{ID: "pay-1", ReceiptURL: "https://receipt"},
		}}
		c := NewRegistrationController(testLogger, nil, nil, svc)
		rr := httptest.NewRecorder()

		c.NewRegistration(rr, httptest.NewRequest(http.MethodPost, "/registrations/new", jsonBody(t, newRegistrationBody())))

		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		require.NotNil(t, svc.lastReq)
		assert.Equal(t, "a@b.com", svc.lastReq.Registrant.EmailAddress)
		assert.Equal(t, "93650", svc.lastReq.Registrant.Address.PostalCode)
		assert.Equal(t, domain.AmenityBunk, svc.lastReq.Registration.Amenity)
		assert.True(t, svc.lastReq.Registration.SundayLunch)
		assert.Empty(t, svc.lastReq.Registration.RoommateRequest)
		assert.Equal(t, int64(5000), svc.lastReq.Payment.Amount)
		assert.Equal(t, "tok_1", svc.lastReq.Payment.SourceID)

		var got domain.RegistrationResult
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
		assert.Equal(t, "https://receipt", got.Payment.ReceiptURL)
	})

	t.Run("validation errors are prefixed", func(t *testing.T) {
		body := newRegistrationBody()
		body["registration"].(map[string]any)["amenity"] = "palace"
		delete(body["payment"].(map[string]any), "sourceId")
		svc := &fakeRegistrationService{}
		c := NewRegistrationController(testLogger, nil, nil, svc)
		rr := httptest.NewRecorder()

		c.NewRegistration(rr, httptest.NewRequest(http.MethodPost, "/registrations/new", jsonBody(t, body)))

		require.Equal(t, http.StatusBadRequest, rr.Code)
		msg := decodeError(t, rr).Message
		assert.Contains(t, msg, "registration.amenity")
		assert.Contains(t, msg, "payment.sourceId is required")
		assert.Nil(t, svc.lastReq)
	})

	errorCases := []struct {
		name       string
		err        error
		wantStatus int
		wantName   string
	}{
		{
			name:       "already registered",
			err:        &domain.StepError{State: domain.StateRegistrationCreated, Err: &domain.AlreadyRegisteredError{Year: 2026}},
			wantStatus: http.StatusConflict,
			wantName:   helpers.ErrNameAlreadyRegistered,
		},
		{
			name:       "duplicate charge source",
			err:        &domain.StepError{State: domain.StatePaymentRecorded, Err: &domain.AlreadyExistsError{Kind: domain.KindPayment, Key: "tok_1"}},
			wantStatus: http.StatusConflict,
			wantName:   "PaymentAlreadyExistsError",
		},
		{
			name: "gateway decline passes status through",
			err: &domain.StepError{State: domain.StateCharged, Err: &domain.GatewayError{
				StatusCode: http.StatusPaymentRequired,
				Errors:     []domain.GatewayErrorDetail{{Category: "PAYMENT_METHOD_ERROR", Code: "CARD_DECLINED"}},
			}},
			wantStatus: http.StatusPaymentRequired,
			wantName:   helpers.ErrNamePaymentGateway,
		},
		{
			name:       "unknown charge outcome",
			err:        &domain.StepError{State: domain.StateCharged, Err: fmt.Errorf("%w: timeout", domain.ErrChargeOutcomeUnknown)},
			wantStatus: http.StatusGatewayTimeout,
			wantName:   helpers.ErrNameChargeOutcomeUnknown,
		},
		{
			name:       "no event",
			err:        &domain.StepError{State: domain.StateEventSelected, Err: &domain.NotFoundError{Kind: domain.KindEvent}},
			wantStatus: http.StatusNotFound,
			wantName:   "EventNotFoundError",
		},
		{
			name:       "store failure",
			err:        &domain.StepError{State: domain.StateRegistrantResolved, Err: fmt.Errorf("connection reset")},
			wantStatus: http.StatusInternalServerError,
			wantName:   helpers.ErrNameInternal,
		},
	}
	for _, tt := range errorCases {
		t.Run(tt.name, func(t *testing.T) {
			c := NewRegistrationController(testLogger, nil, nil, &fakeRegistrationService{err: tt.err})
			rr := httptest.NewRecorder()

			c.NewRegistration(rr, httptest.NewRequest(http.MethodPost, "/registrations/new", jsonBody(t, newRegistrationBody())))

			require.Equal(t, tt.wantStatus, rr.Code)
			body := decodeError(t, rr)
			assert.Equal(t, tt.wantName, body.Name)
			assert.Equal(t, tt.wantStatus, body.Code)
		})
	}
}

func TestPaymentController_Create(t *testing.T) {
	ctx := context.Background()
	r := newRepos()
	event := domain.NewEvent(nextYear)
	require.NoError(t, r.events.Create(ctx, event))
	registrant := &domain.Registrant{EmailAddress: "a@example.com"}
	require.NoError(t, r.registrants.Create(ctx, registrant))
	registration := &domain.Registration{RegistrantID: registrant.ID, EventID: event.ID, Amenity: domain.AmenityStandard}
	require.NoError(t, r.registrations.Create(ctx, registration))
	c := NewPaymentController(testLogger, r.payments)

	valid := func() map[string]any {
		return map[string]any{
			"registrantId":                   registrant.ID,
			"registrationId":                 registration.ID,
			"sourceId":                       "cnon:card-1",
			"amount":                         32500,
			"locationId":                     "LOC1",
			"idempotencyKey":                 "7b4f2c1e-9d3a-4e8b-a6f5-2c1d0e9b8a7f",
			"statementDescriptionIdentifier": "RETREAT",
		}
	}
	tests := []struct {
		name       string
		mutate     func(map[string]any)
		wantStatus int
		wantName   string
	}{
		{"zero amount", func(b map[string]any) { b["amount"] = 0 }, http.StatusBadRequest, helpers.ErrNameValidation},
		{"non usd", func(b map[string]any) { b["currency"] = "EUR" }, http.StatusBadRequest, helpers.ErrNameValidation},
		{"uuid v1 key", func(b map[string]any) { b["idempotencyKey"] = "c232ab00-9414-11ec-b3c8-9e6bdeced846" }, http.StatusBadRequest, helpers.ErrNameValidation},
		{"long descriptor", func(b map[string]any) { b["statementDescriptionIdentifier"] = "THIS IS FAR TOO LONG FOR A CARD" }, http.StatusBadRequest, helpers.ErrNameValidation},
		{"missing location", func(b map[string]any) { delete(b, "locationId") }, http.StatusBadRequest, helpers.ErrNameValidation},
		{"missing registration", func(b map[string]any) { b["registrationId"] = "ghost" }, http.StatusNotFound, "RegistrationNotFoundError"},
		{"valid", func(map[string]any) {}, http.StatusOK, ""},
		{"duplicate source", func(map[string]any) {}, http.StatusConflict, "PaymentAlreadyExistsError"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := valid()
			tt.mutate(body)
			rr := httptest.NewRecorder()

			c.CreatePayment(rr, httptest.NewRequest(http.MethodPost, "/payments", jsonBody(t, body)))

			require.Equal(t, tt.wantStatus, rr.Code, rr.Body.String())
			if tt.wantName != "" {
				assert.Equal(t, tt.wantName, decodeError(t, rr).Name)
				return
			}
			var got domain.Payment
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
			assert.Equal(t, domain.PaymentStatusPending, got.Status)
			assert.Equal(t, "USD", got.Currency)
			assert.Empty(t, got.ReceiptURL)
		})
	}

	rr := httptest.NewRecorder()
	c.ListPayments(rr, httptest.NewRequest(http.MethodGet, "/payments?sort=amount&direction=desc", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	var list []domain.Payment
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&list))
	assert.Len(t, list, 1)
}

func TestPostalCode_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in      string
		want    PostalCode
		wantErr bool
	}{
		{`"93650"`, "93650", false},
		{`" 02134 "`, "02134", false},
		{`2134`, "02134", false},
		{`93650`, "93650", false},
		{`-1`, "", true},
		{`true`, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var p PostalCode
			err := json.Unmarshal([]byte(tt.in), &p)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, p)
		})
	}
}
