// Package square implements domain.PaymentGateway against the Square
// Payments and Customers REST APIs.
package square

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"eventregistration/internal/domain"
)

const (
	ProductionBaseURL = "https://connect.squareup.com"
	SandboxBaseURL    = "https://connect.squareupsandbox.com"

	apiVersion = "2025-01-23"
)

// Config holds the Square client settings.
type Config struct {
	Environment string // "production" or "sandbox"
	BaseURL     string // overrides Environment when set
	AccessToken string
	Timeout     time.Duration
}

type client struct {
	http    *http.Client
	baseURL string
	token   string
}

// NewClient returns a PaymentGateway that calls Square. A nil httpClient
// gets one with cfg.Timeout.
func NewClient(cfg Config, httpClient *http.Client) domain.PaymentGateway {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = SandboxBaseURL
		if cfg.Environment == "production" {
			baseURL = ProductionBaseURL
		}
	}
	return &client{
		http:    httpClient,
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   cfg.AccessToken,
	}
}

type money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type createPaymentRequest struct {
	SourceID                       string `json:"source_id"`
	IdempotencyKey                 string `json:"idempotency_key"`
	AmountMoney                    money  `json:"amount_money"`
	CustomerID                     string `json:"customer_id,omitempty"`
	LocationID                     string `json:"location_id,omitempty"`
	StatementDescriptionIdentifier string `json:"statement_description_identifier,omitempty"`
	Autocomplete                   bool   `json:"autocomplete"`
}

type paymentObject struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	ReceiptURL string `json:"receipt_url"`
}

type createPaymentResponse struct {
	Payment *paymentObject `json:"payment"`
}

type errorResponse struct {
	Errors []domain.GatewayErrorDetail `json:"errors"`
}

func (c *client) Charge(ctx context.Context, req domain.ChargeRequest) (*domain.Receipt, error) {
	body := createPaymentRequest{
		SourceID:                       req.SourceID,
		IdempotencyKey:                 req.IdempotencyKey,
		AmountMoney:                    money{Amount: req.Amount, Currency: req.Currency},
		CustomerID:                     req.CustomerID,
		LocationID:                     req.LocationID,
		StatementDescriptionIdentifier: req.StatementDescriptor,
		Autocomplete:                   true,
	}
	var out createPaymentResponse
	if err := c.do(ctx, "/v2/payments", body, &out); err != nil {
		var gwErr *domain.GatewayError
		if errors.As(err, &gwErr) && gwErr.StatusCode < http.StatusInternalServerError && !gwErr.Timeout() {
			return nil, gwErr
		}
		return nil, fmt.Errorf("%w: create payment: %v", domain.ErrChargeOutcomeUnknown, err)
	}
	if out.Payment == nil || out.Payment.ID == "" {
		return nil, fmt.Errorf("%w: create payment: response has no payment", domain.ErrChargeOutcomeUnknown)
	}
	return &domain.Receipt{
		ID:         out.Payment.ID,
		ReceiptURL: out.Payment.ReceiptURL,
		Status:     out.Payment.Status,
	}, nil
}

type customerObject struct {
	ID           string `json:"id"`
	EmailAddress string `json:"email_address"`
}

type searchCustomersRequest struct {
	Query struct {
		Filter struct {
			EmailAddress struct {
				Exact string `json:"exact"`
			} `json:"email_address"`
		} `json:"filter"`
	} `json:"query"`
	Limit int `json:"limit"`
}

type searchCustomersResponse struct {
	Customers []customerObject `json:"customers"`
}

func (c *client) FindCustomerByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	var body searchCustomersRequest
	body.Query.Filter.EmailAddress.Exact = email
	body.Limit = 1

	var out searchCustomersResponse
	if err := c.do(ctx, "/v2/customers/search", body, &out); err != nil {
		return nil, fmt.Errorf("search customers: %w", err)
	}
	if len(out.Customers) == 0 {
		return nil, nil
	}
	return &domain.Customer{ID: out.Customers[0].ID, EmailAddress: out.Customers[0].EmailAddress}, nil
}

type address struct {
	AddressLine1                 string `json:"address_line_1,omitempty"`
	AddressLine2                 string `json:"address_line_2,omitempty"`
	Locality                     string `json:"locality,omitempty"`
	AdministrativeDistrictLevel1 string `json:"administrative_district_level_1,omitempty"`
	PostalCode                   string `json:"postal_code,omitempty"`
	Country                      string `json:"country,omitempty"`
}

type createCustomerRequest struct {
	IdempotencyKey string   `json:"idempotency_key"`
	GivenName      string   `json:"given_name,omitempty"`
	FamilyName     string   `json:"family_name,omitempty"`
	EmailAddress   string   `json:"email_address"`
	CompanyName    string   `json:"company_name,omitempty"`
	PhoneNumber    string   `json:"phone_number,omitempty"`
	Address        *address `json:"address,omitempty"`
}

type createCustomerResponse struct {
	Customer *customerObject `json:"customer"`
}

func (c *client) CreateCustomer(ctx context.Context, profile *domain.Registrant) (*domain.Customer, error) {
	body := createCustomerRequest{
		IdempotencyKey: uuid.NewString(),
		GivenName:      profile.FirstName,
		FamilyName:     profile.LastName,
		EmailAddress:   profile.EmailAddress,
		CompanyName:    profile.Church,
		PhoneNumber:    profile.PhoneNumber,
		Address:        toAddress(profile.Address),
	}
	var out createCustomerResponse
	if err := c.do(ctx, "/v2/customers", body, &out); err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	if out.Customer == nil || out.Customer.ID == "" {
		return nil, fmt.Errorf("create customer: response has no customer")
	}
	return &domain.Customer{ID: out.Customer.ID, EmailAddress: out.Customer.EmailAddress}, nil
}

func toAddress(a domain.Address) *address {
	if a == (domain.Address{}) {
		return nil
	}
	out := &address{
		AddressLine1:                 a.AddressLine1,
		AddressLine2:                 a.AddressLine2,
		Locality:                     a.City,
		AdministrativeDistrictLevel1: a.State,
		PostalCode:                   a.PostalCode,
	}
	// Square only accepts ISO 3166-1 alpha-2 country codes.
	if country := strings.TrimSpace(a.Country); len(country) == 2 {
		out.Country = strings.ToUpper(country)
	}
	return out
}

// do posts body as JSON and decodes a 2xx response into out. Error
// responses come back as *domain.GatewayError.
func (c *client) do(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Square-Version", apiVersion)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call square: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read square response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		gwErr := &domain.GatewayError{StatusCode: resp.StatusCode}
		var parsed errorResponse
		if json.Unmarshal(raw, &parsed) == nil {
			gwErr.Errors = parsed.Errors
		}
		return gwErr
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode square response: %w", err)
	}
	return nil
}
