package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v5"

	"eventregistration/internal/domain"
)

// ProcessorConfig tunes gateway retries.
type ProcessorConfig struct {
	// LocationID is used when a payment carries none.
	LocationID string
	// ChargeAttempts bounds calls to the gateway while the outcome stays unknown.
	ChargeAttempts uint
	// ReceiptAttempts bounds writes of the receipt onto the payment record.
	ReceiptAttempts uint
	// RetryInterval is the first backoff delay.
	RetryInterval time.Duration
}

// DefaultProcessorConfig returns the settings used when none are configured.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		ChargeAttempts:  3,
		ReceiptAttempts: 3,
		RetryInterval:   200 * time.Millisecond,
	}
}

type paymentProcessor struct {
	gateway       domain.PaymentGateway
	payments      domain.PaymentRepository
	registrations domain.RegistrationRepository
	cfg           ProcessorConfig
	logger        *slog.Logger
}

func NewPaymentProcessor(gateway domain.PaymentGateway, payments domain.PaymentRepository, registrations domain.RegistrationRepository, cfg ProcessorConfig, logger *slog.Logger) domain.PaymentProcessor {
	if cfg.ChargeAttempts == 0 {
		cfg.ChargeAttempts = 1
	}
	if cfg.ReceiptAttempts == 0 {
		cfg.ReceiptAttempts = 1
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = DefaultProcessorConfig().RetryInterval
	}
	return &paymentProcessor{
		gateway:       gateway,
		payments:      payments,
		registrations: registrations,
		cfg:           cfg,
		logger:        logger,
	}
}

// Charge sends the pending payment to the gateway. A definite gateway error
// removes the payment and its registration before being returned unchanged.
// An unknown outcome is retried with the same idempotency key and, if it
// stays unknown, returned wrapping ErrChargeOutcomeUnknown with all records
// left pending.
func (p *paymentProcessor) Charge(ctx context.Context, payment *domain.Payment) (*domain.Receipt, error) {
	req := p.chargeRequest(payment)
	log := p.logger.With("payment_id", payment.ID, "registration_id", payment.RegistrationID)

	attempt := 0
	receipt, err := backoff.Retry(ctx, func() (*domain.Receipt, error) {
		attempt++
		r, err := p.gateway.Charge(ctx, req)
		if err == nil {
			return r, nil
		}
		if isDefiniteDecline(err) {
			return nil, backoff.Permanent(err)
		}
		log.WarnContext(ctx, "charge outcome unknown", "attempt", attempt, "err", err)
		return nil, err
	}, backoff.WithBackOff(p.newBackOff()), backoff.WithMaxTries(p.cfg.ChargeAttempts))

	if err != nil {
		var gwErr *domain.GatewayError
		if isDefiniteDecline(err) && errors.As(err, &gwErr) {
			log.WarnContext(ctx, "charge declined, compensating", "code", gwErr.Code(), "status", gwErr.StatusCode)
			p.compensate(ctx, payment)
			return nil, gwErr
		}
		switch {
		case errors.Is(err, domain.ErrChargeOutcomeUnknown):
		case errors.Is(err, domain.ErrGateway):
			// A gateway timeout is not a decline; keep it out of the decline path.
			err = fmt.Errorf("%w: %v", domain.ErrChargeOutcomeUnknown, err)
		default:
			err = fmt.Errorf("%w: %w", domain.ErrChargeOutcomeUnknown, err)
		}
		log.ErrorContext(ctx, "charge outcome unknown after retries; payment left pending", "attempts", attempt, "err", err)
		return nil, err
	}

	p.attachReceipt(ctx, payment.ID, receipt)
	return receipt, nil
}

// isDefiniteDecline reports whether err is a gateway answer that the charge
// did not happen. Gateway timeouts are not.
func isDefiniteDecline(err error) bool {
	var gwErr *domain.GatewayError
	return errors.As(err, &gwErr) && !gwErr.Timeout()
}

func (p *paymentProcessor) chargeRequest(payment *domain.Payment) domain.ChargeRequest {
	locationID := payment.LocationID
	if locationID == "" {
		locationID = p.cfg.LocationID
	}
	return domain.ChargeRequest{
		SourceID:            payment.SourceID,
		Amount:              payment.Amount,
		Currency:            payment.Currency,
		IdempotencyKey:      payment.IdempotencyKey,
		StatementDescriptor: payment.StatementDescriptor,
		LocationID:          locationID,
		CustomerID:          payment.CustomerID,
	}
}

// compensate physically removes the payment and its registration. The
// registrant is kept. It runs even if the caller's context is done.
func (p *paymentProcessor) compensate(ctx context.Context, payment *domain.Payment) {
	ctx = context.WithoutCancel(ctx)
	if err := p.payments.Delete(ctx, payment.ID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		p.logger.ErrorContext(ctx, "compensation: delete payment failed", "payment_id", payment.ID, "err", err)
	}
	if err := p.registrations.Delete(ctx, payment.RegistrationID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		p.logger.ErrorContext(ctx, "compensation: delete registration failed", "registration_id", payment.RegistrationID, "err", err)
	}
}

// attachReceipt records a successful charge. A failure here does not undo
// the charge: it is retried, then logged for manual reconciliation.
func (p *paymentProcessor) attachReceipt(ctx context.Context, paymentID string, receipt *domain.Receipt) {
	ctx = context.WithoutCancel(ctx)
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		err := p.payments.AttachReceipt(ctx, paymentID, receipt)
		if errors.Is(err, domain.ErrNotFound) {
			return struct{}{}, backoff.Permanent(err)
		}
		return struct{}{}, err
	}, backoff.WithBackOff(p.newBackOff()), backoff.WithMaxTries(p.cfg.ReceiptAttempts))
	if err != nil {
		p.logger.ErrorContext(ctx, "charge succeeded but receipt was not recorded",
			"payment_id", paymentID,
			"gateway_payment_id", receipt.ID,
			"receipt_url", receipt.ReceiptURL,
			"err", err,
		)
	}
}

func (p *paymentProcessor) newBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.cfg.RetryInterval
	b.MaxInterval = 10 * p.cfg.RetryInterval
	return b
}
