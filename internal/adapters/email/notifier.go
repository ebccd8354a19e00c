package email

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"eventregistration/internal/domain"
)

// SESConfig holds configuration for AWS SES.
type SESConfig struct {
	Region             string
	AccessKeyID        string
	SecretAccessKey    string
	InsecureSkipVerify bool
}

// NotifierConfig holds configuration for creating a notifier.
type NotifierConfig struct {
	Provider    string
	FromAddress string
	FromName    string
	SES         SESConfig
}

// templatedSender is the part of the SES client the notifier uses.
type templatedSender interface {
	SendTemplatedEmail(ctx context.Context, params *ses.SendTemplatedEmailInput, optFns ...func(*ses.Options)) (*ses.SendTemplatedEmailOutput, error)
}

// NewNotifier creates a notifier from config. Provider "ses" sends SES
// templated email; "noop" or unknown only logs.
func NewNotifier(config NotifierConfig, logger *slog.Logger) (domain.Notifier, error) {
	if logger == nil {
		logger = slog.Default()
	}
	switch config.Provider {
	case "ses":
		if config.FromAddress == "" {
			return nil, fmt.Errorf("ses notifier: from address is required")
		}
		sesConfig := config.SES
		if sesConfig.InsecureSkipVerify {
			logger.Warn("TLS certificate verification is disabled for SES; use only in development")
		}
		httpClient := &http.Client{
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					InsecureSkipVerify: sesConfig.InsecureSkipVerify,
					MinVersion:         tls.VersionTLS12,
				},
			},
		}
		awsCfg := aws.Config{
			Region: sesConfig.Region,
			Credentials: aws.NewCredentialsCache(
				credentials.NewStaticCredentialsProvider(
					sesConfig.AccessKeyID,
					sesConfig.SecretAccessKey,
					"",
				),
			),
			HTTPClient: httpClient,
		}
		return newSESNotifier(ses.NewFromConfig(awsCfg), config, logger), nil
	case "noop", "":
		return &noopNotifier{logger: logger}, nil
	default:
		logger.Warn("unknown notifier provider, using noop", "provider", config.Provider)
		return &noopNotifier{logger: logger}, nil
	}
}

type sesNotifier struct {
	client templatedSender
	source string
	logger *slog.Logger
}

func newSESNotifier(client templatedSender, config NotifierConfig, logger *slog.Logger) *sesNotifier {
	source := config.FromAddress
	if config.FromName != "" {
		source = fmt.Sprintf("%s <%s>", config.FromName, config.FromAddress)
	}
	return &sesNotifier{client: client, source: source, logger: logger}
}

func (s *sesNotifier) Send(ctx context.Context, templateID, recipient string, vars map[string]any) error {
	if templateID == "" {
		return fmt.Errorf("send templated email: template id is empty")
	}
	data, err := json.Marshal(vars)
	if err != nil {
		return fmt.Errorf("encode template data: %w", err)
	}
	input := &ses.SendTemplatedEmailInput{
		Source: aws.String(s.source),
		Destination: &types.Destination{
			ToAddresses: []string{recipient},
		},
		Template:     aws.String(templateID),
		TemplateData: aws.String(string(data)),
	}
	result, err := s.client.SendTemplatedEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to send templated email via SES: %w", err)
	}
	s.logger.Info("templated email sent via SES", "template", templateID, "message_id", aws.ToString(result.MessageId))
	return nil
}

type noopNotifier struct {
	logger *slog.Logger
}

func (n *noopNotifier) Send(_ context.Context, templateID, recipient string, _ map[string]any) error {
	n.logger.Info("email would be sent (noop)", "template", templateID, "to", recipient)
	return nil
}
