package service

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"go.uber.org/zap"
)

// NotifyService sends save-failure warnings via Amazon SES. The user's
// action has already succeeded in memory by the time this runs, so every
// path here is best-effort.
type NotifyService struct {
	client    *sesv2.Client
	fromEmail string
	fromName  string
	toEmail   string
	enabled   bool
	logger    *zap.Logger
}

// NewNotifyService creates a new notify service. Without a configured
// sender and recipient it comes up disabled and silently drops
// notifications.
func NewNotifyService(ctx context.Context, region, fromEmail, fromName, toEmail string, logger *zap.Logger) (*NotifyService, error) {
	if fromEmail == "" || toEmail == "" {
		logger.Info("save-failure notifications disabled: SES sender or recipient not configured")
		return &NotifyService{enabled: false, logger: logger}, nil
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	logger.Info("save-failure notifications enabled",
		zap.String("from", fromEmail),
		zap.String("region", region))

	return &NotifyService{
		client:    sesv2.NewFromConfig(cfg),
		fromEmail: fromEmail,
		fromName:  fromName,
		toEmail:   toEmail,
		enabled:   true,
		logger:    logger,
	}, nil
}

// NotifySaveFailure emails a warning that a state save failed.
func (n *NotifyService) NotifySaveFailure(ctx context.Context, cause error) {
	if !n.enabled {
		return
	}

	subject := "AlgoPulse: failed to save progress"
	body := fmt.Sprintf(
		"A progress save failed at %s.\n\nCause: %v\n\nThe running session kept its state in memory; the next successful mutation will retry the save.",
		time.Now().Format(time.RFC1123), cause,
	)

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fmt.Sprintf("%s <%s>", n.fromName, n.fromEmail)),
		Destination: &types.Destination{
			ToAddresses: []string{n.toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject)},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(body)},
				},
			},
		},
	}

	if _, err := n.client.SendEmail(ctx, input); err != nil {
		n.logger.Warn("failed to send save-failure notification", zap.Error(err))
	}
}
