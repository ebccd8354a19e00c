package services

import (
	"context"
	"fmt"

	"eventregistration/internal/domain"
)

// CustomerResolver finds or creates the gateway customer for a registrant.
type CustomerResolver interface {
	Resolve(ctx context.Context, registrant *domain.Registrant) (*domain.Customer, error)
}

type customerResolver struct {
	gateway domain.PaymentGateway
}

func NewCustomerResolver(gateway domain.PaymentGateway) CustomerResolver {
	return &customerResolver{gateway: gateway}
}

// Resolve reuses the gateway customer holding the registrant's email, or
// creates one from the registrant profile.
func (r *customerResolver) Resolve(ctx context.Context, registrant *domain.Registrant) (*domain.Customer, error) {
	existing, err := r.gateway.FindCustomerByEmail(ctx, registrant.EmailAddress)
	if err != nil {
		return nil, fmt.Errorf("find customer: %w", err)
	}
	if existing != nil {
		return existing, nil
	}
	created, err := r.gateway.CreateCustomer(ctx, registrant)
	if err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	return created, nil
}
