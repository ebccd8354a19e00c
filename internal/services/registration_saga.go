package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"eventregistration/internal/domain"
)

const tracerName = "eventregistration/internal/services"

// SagaConfig holds the registration saga's dependencies.
type SagaConfig struct {
	Registrants   domain.RegistrantRepository
	Customers     CustomerResolver
	Events        domain.EventRepository
	Registrations domain.RegistrationRepository
	Payments      domain.PaymentRepository
	Processor     domain.PaymentProcessor
	Notifications domain.NotificationService
	Logger        *slog.Logger
	// TracerProvider defaults to the global provider.
	TracerProvider trace.TracerProvider
	// CleanupOnDuplicateCharge removes the new registration when the payment
	// is rejected for a reused charge source.
	CleanupOnDuplicateCharge bool
}

// sagaRun carries what each step produced for the next.
type sagaRun struct {
	req          *domain.RegistrationRequest
	registrant   *domain.Registrant
	customer     *domain.Customer
	event        *domain.Event
	registration *domain.Registration
	payment      *domain.Payment
	receipt      *domain.Receipt
}

type step func(ctx context.Context, run *sagaRun) error

type transition struct {
	to   domain.SagaState
	step step
}

// RegistrationSaga drives a registration from START to NOTIFIED. Each
// transition owns its failure handling; a failed transition ends the run
// with a *domain.StepError.
type RegistrationSaga struct {
	cfg         SagaConfig
	tracer      trace.Tracer
	transitions map[domain.SagaState]transition
}

func NewRegistrationSaga(cfg SagaConfig) *RegistrationSaga {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	tp := cfg.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	s := &RegistrationSaga{cfg: cfg, tracer: tp.Tracer(tracerName)}
	s.transitions = map[domain.SagaState]transition{
		domain.StateStart:               {domain.StateRegistrantResolved, s.resolveRegistrant},
		domain.StateRegistrantResolved:  {domain.StateCustomerResolved, s.resolveCustomer},
		domain.StateCustomerResolved:    {domain.StateEventSelected, s.selectEvent},
		domain.StateEventSelected:       {domain.StateRegistrationCreated, s.createRegistration},
		domain.StateRegistrationCreated: {domain.StatePaymentRecorded, s.recordPayment},
		domain.StatePaymentRecorded:     {domain.StateCharged, s.charge},
		domain.StateCharged:             {domain.StateNotified, s.notify},
	}
	return s
}

var _ domain.RegistrationService = (*RegistrationSaga)(nil)

// Register runs every transition in order. On success the result holds the
// registrant, registration, payment with receipt, and the selected event.
func (s *RegistrationSaga) Register(ctx context.Context, req *domain.RegistrationRequest) (*domain.RegistrationResult, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: registration request is nil", domain.ErrInvalidInput)
	}
	ctx, span := s.tracer.Start(ctx, "registration.saga")
	defer span.End()

	run := &sagaRun{req: req}
	state := domain.StateStart
	for state != domain.StateNotified {
		t, ok := s.transitions[state]
		if !ok {
			err := &domain.StepError{State: state, Err: errors.New("no transition")}
			recordSpanError(span, err)
			return nil, err
		}
		if err := s.advance(ctx, state, t, run); err != nil {
			stepErr := &domain.StepError{State: t.to, Err: err}
			span.SetAttributes(attribute.String("saga.failed_state", string(t.to)))
			recordSpanError(span, stepErr)
			return nil, stepErr
		}
		state = t.to
	}

	span.SetAttributes(
		attribute.String("registration.id", run.registration.ID),
		attribute.String("payment.id", run.payment.ID),
	)
	return &domain.RegistrationResult{
		Registrant:   run.registrant,
		Registration: run.registration,
		Payment:      run.payment,
		Event:        run.event,
	}, nil
}

func (s *RegistrationSaga) advance(ctx context.Context, from domain.SagaState, t transition, run *sagaRun) error {
	ctx, span := s.tracer.Start(ctx, "registration.saga."+string(t.to),
		trace.WithAttributes(
			attribute.String("saga.from", string(from)),
			attribute.String("saga.to", string(t.to)),
		))
	defer span.End()

	if err := t.step(ctx, run); err != nil {
		recordSpanError(span, err)
		return err
	}
	s.cfg.Logger.DebugContext(ctx, "registration saga transition", "from", from, "to", t.to)
	return nil
}

func recordSpanError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

func (s *RegistrationSaga) resolveRegistrant(ctx context.Context, run *sagaRun) error {
	profile := run.req.Registrant
	profile.ID = ""
	registrant, err := s.cfg.Registrants.Upsert(ctx, &profile)
	if err != nil {
		return err
	}
	run.registrant = registrant
	return nil
}

func (s *RegistrationSaga) resolveCustomer(ctx context.Context, run *sagaRun) error {
	customer, err := s.cfg.Customers.Resolve(ctx, run.registrant)
	if err != nil {
		return err
	}
	run.customer = customer
	return nil
}

func (s *RegistrationSaga) selectEvent(ctx context.Context, run *sagaRun) error {
	event, err := s.cfg.Events.MostRecent(ctx)
	if err != nil {
		return err
	}
	run.event = event
	return nil
}

// createRegistration needs no compensation on failure: only the registrant
// upsert has been persisted and it is safe to keep.
func (s *RegistrationSaga) createRegistration(ctx context.Context, run *sagaRun) error {
	reg := run.req.Registration
	reg.ID = ""
	reg.RegistrantID = run.registrant.ID
	reg.EventID = run.event.ID
	if err := s.cfg.Registrations.Create(ctx, &reg); err != nil {
		return err
	}
	run.registration = &reg
	return nil
}

func (s *RegistrationSaga) recordPayment(ctx context.Context, run *sagaRun) error {
	p := run.req.Payment
	p.ID = ""
	p.RegistrantID = run.registrant.ID
	p.RegistrationID = run.registration.ID
	p.CustomerID = run.customer.ID
	if p.Amount <= 0 {
		p.Amount = run.registration.BalanceDue
	}
	err := s.cfg.Payments.Create(ctx, &p)
	if err == nil {
		run.payment = &p
		return nil
	}
	if errors.Is(err, domain.ErrAlreadyExists) && s.cfg.CleanupOnDuplicateCharge {
		cleanupCtx := context.WithoutCancel(ctx)
		if delErr := s.cfg.Registrations.Delete(cleanupCtx, run.registration.ID); delErr != nil {
			s.cfg.Logger.ErrorContext(ctx, "duplicate charge: delete registration failed", "registration_id", run.registration.ID, "err", delErr)
		} else {
			s.cfg.Logger.WarnContext(ctx, "duplicate charge: registration removed", "registration_id", run.registration.ID)
		}
	}
	return err
}

// charge delegates compensation to the payment processor.
func (s *RegistrationSaga) charge(ctx context.Context, run *sagaRun) error {
	receipt, err := s.cfg.Processor.Charge(ctx, run.payment)
	if err != nil {
		return err
	}
	run.receipt = receipt
	run.payment.GatewayPaymentID = receipt.ID
	run.payment.ReceiptURL = receipt.ReceiptURL
	run.payment.Status = domain.PaymentStatusCompleted
	return nil
}

// notify never fails the saga; delivery errors are only logged.
func (s *RegistrationSaga) notify(ctx context.Context, run *sagaRun) error {
	err := s.cfg.Notifications.SendRegistrationReceipt(ctx, &domain.RegistrationReceiptData{
		Email:           run.registrant.EmailAddress,
		FirstName:       run.registrant.FirstName,
		LastName:        run.registrant.LastName,
		Amenity:         run.registration.Amenity,
		RoommateRequest: run.registration.RoommateRequest,
		SundayLunch:     run.registration.SundayLunch,
		EventYear:       run.event.Year,
		ReceiptURL:      run.receipt.ReceiptURL,
	})
	if err != nil {
		s.cfg.Logger.ErrorContext(ctx, "registration receipt not sent", "registration_id", run.registration.ID, "err", err)
	}
	return nil
}
