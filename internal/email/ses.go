package email

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

const charset = "UTF-8"

// SESClient is the subset of the SES API the mailer uses
type SESClient interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SESMailer sends email through Amazon SES
type SESMailer struct {
	client           SESClient
	from             string
	configurationSet string
}

// SESMailerConfig holds configuration for the SES mailer
type SESMailerConfig struct {
	Client           SESClient
	From             string
	ConfigurationSet string // optional
}

// NewSESMailer creates a mailer around an existing client
func NewSESMailer(cfg SESMailerConfig) *SESMailer {
	return &SESMailer{
		client:           cfg.Client,
		from:             cfg.From,
		configurationSet: cfg.ConfigurationSet,
	}
}

// NewSESClient builds an SES client from the default AWS credential chain
func NewSESClient(ctx context.Context, region string) (*ses.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return ses.NewFromConfig(cfg), nil
}

// Send delivers msg with both HTML and text parts
func (m *SESMailer) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	body := &types.Body{}
	if msg.HTML != "" {
		body.Html = &types.Content{Data: aws.String(msg.HTML), Charset: aws.String(charset)}
	}
	if msg.Text != "" {
		body.Text = &types.Content{Data: aws.String(msg.Text), Charset: aws.String(charset)}
	}

	input := &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{msg.To},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(msg.Subject), Charset: aws.String(charset)},
			Body:    body,
		},
		Source: aws.String(m.from),
	}
	if m.configurationSet != "" {
		input.ConfigurationSetName = aws.String(m.configurationSet)
	}

	out, err := m.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("ses send: %w", err)
	}

	slog.Info("email sent",
		slog.String("provider", "ses"),
		slog.String("message_id", aws.ToString(out.MessageId)),
		slog.String("subject", msg.Subject),
	)
	return nil
}
