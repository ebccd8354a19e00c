package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"eventregistration/internal/domain"
	"eventregistration/internal/repository"
	"eventregistration/internal/repository/memory"
)

var errAmbiguous = fmt.Errorf("%w: read timeout", domain.ErrChargeOutcomeUnknown)

// fakeGateway is an in-memory PaymentGateway. chargeErrs is consumed one
// entry per Charge call; a nil entry (or an exhausted list) succeeds.
type fakeGateway struct {
	mu          sync.Mutex
	customers   map[string]*domain.Customer
	findErr     error
	createCalls int
	charges     []domain.ChargeRequest
	chargeErrs  []error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{customers: map[string]*domain.Customer{}}
}

func (g *fakeGateway) Charge(_ context.Context, req domain.ChargeRequest) (*domain.Receipt, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := len(g.charges)
	g.charges = append(g.charges, req)
	if n < len(g.chargeErrs) && g.chargeErrs[n] != nil {
		return nil, g.chargeErrs[n]
	}
	id := fmt.Sprintf("sq-pay-%d", n+1)
	return &domain.Receipt{ID: id, ReceiptURL: "https://squareup.com/receipt/preview/" + id, Status: "COMPLETED"}, nil
}

func (g *fakeGateway) FindCustomerByEmail(_ context.Context, email string) (*domain.Customer, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.findErr != nil {
		return nil, g.findErr
	}
	return g.customers[email], nil
}

func (g *fakeGateway) CreateCustomer(_ context.Context, profile *domain.Registrant) (*domain.Customer, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.createCalls++
	c := &domain.Customer{ID: fmt.Sprintf("cust-%d", g.createCalls), EmailAddress: profile.EmailAddress}
	g.customers[profile.EmailAddress] = c
	return c, nil
}

func (g *fakeGateway) chargeCalls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.charges)
}

type sentMessage struct {
	templateID string
	recipient  string
	vars       map[string]any
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []sentMessage
	err  error
}

func (n *fakeNotifier) Send(_ context.Context, templateID, recipient string, vars map[string]any) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentMessage{templateID: templateID, recipient: recipient, vars: vars})
	return n.err
}

// flakyPayments fails AttachReceipt with attachErr.
type flakyPayments struct {
	domain.PaymentRepository
	attachErr   error
	attachCalls int
}

func (f *flakyPayments) AttachReceipt(ctx context.Context, id string, receipt *domain.Receipt) error {
	f.attachCalls++
	if f.attachErr != nil {
		return f.attachErr
	}
	return f.PaymentRepository.AttachReceipt(ctx, id, receipt)
}

// failingDeletes counts deletes and always fails them.
type failingDeletes struct {
	domain.RegistrationRepository
	calls int
}

func (f *failingDeletes) Delete(context.Context, string) error {
	f.calls++
	return errors.New("store unavailable")
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// harness wires real repositories over the memory store with fake
// collaborators.
type harness struct {
	store         *memory.Store
	events        domain.EventRepository
	registrants   domain.RegistrantRepository
	registrations domain.RegistrationRepository
	payments      domain.PaymentRepository
	gateway       *fakeGateway
	notifier      *fakeNotifier
	spans         *tracetest.SpanRecorder
	processorCfg  ProcessorConfig
	sagaCfg       SagaConfig
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	store := memory.NewStore()
	events := repository.NewEventRepository(store)
	registrants := repository.NewRegistrantRepository(store)
	registrations := repository.NewRegistrationRepository(store, registrants, events)
	h := &harness{
		store:         store,
		events:        events,
		registrants:   registrants,
		registrations: registrations,
		payments:      repository.NewPaymentRepository(store, registrants, registrations),
		gateway:       newFakeGateway(),
		notifier:      &fakeNotifier{},
		spans:         tracetest.NewSpanRecorder(),
		processorCfg: ProcessorConfig{
			LocationID:      "LOC-DEFAULT",
			ChargeAttempts:  3,
			ReceiptAttempts: 2,
			RetryInterval:   time.Millisecond,
		},
	}
	return h
}

func (h *harness) saga() *RegistrationSaga {
	logger := discardLogger()
	cfg := h.sagaCfg
	cfg.Registrants = h.registrants
	cfg.Customers = NewCustomerResolver(h.gateway)
	cfg.Events = h.events
	cfg.Registrations = h.registrations
	cfg.Payments = h.payments
	cfg.Processor = NewPaymentProcessor(h.gateway, h.payments, h.registrations, h.processorCfg, logger)
	cfg.Notifications = NewNotificationService(h.notifier, "", logger)
	cfg.Logger = logger
	cfg.TracerProvider = sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(h.spans))
	return NewRegistrationSaga(cfg)
}

func (h *harness) createEvents(t *testing.T, years ...int) []*domain.Event {
	t.Helper()
	out := make([]*domain.Event, 0, len(years))
	for _, y := range years {
		e := domain.NewEvent(y)
		require.NoError(t, h.events.Create(context.Background(), e))
		out = append(out, e)
	}
	return out
}

func baseRequest(email, sourceID string) *domain.RegistrationRequest {
	return &domain.RegistrationRequest{
		Registrant: domain.Registrant{
			EmailAddress: email,
			FirstName:    "A",
			LastName:     "B",
			Church:       "Grace Fellowship",
			PhoneNumber:  "559-555-0100",
			Address: domain.Address{
				AddressLine1: "1 Main St",
				City:         "Fresno",
				State:        "CA",
				Country:      "US",
				PostalCode:   "93650",
			},
		},
		Registration: domain.Registration{
			Amenity:     domain.AmenityBunk,
			SundayLunch: true,
		},
		Payment: domain.Payment{
			SourceID: sourceID,
			Amount:   5000,
			Currency: "USD",
		},
	}
}
