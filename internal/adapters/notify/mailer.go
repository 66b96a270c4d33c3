// Package notify delivers invitation notices by email. Accounts carry only a
// name, so recipient addresses are formed as name@domain with the domain
// taken from configuration.
package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"sharedcalendar/config"
	"sharedcalendar/internal/domain"
)

// NewNotifier builds a notifier from config. Provider "ses" sends through
// AWS SES; "noop" or anything else only logs.
func NewNotifier(cfg config.MailConfig, logger *slog.Logger) (domain.Notifier, error) {
	switch cfg.Provider {
	case "ses":
		awsCfg := aws.Config{
			Region: cfg.AWSRegion,
			Credentials: aws.NewCredentialsCache(
				credentials.NewStaticCredentialsProvider(cfg.AWSKeyID, cfg.AWSSecret, ""),
			),
		}
		return &sesNotifier{
			client:      ses.NewFromConfig(awsCfg),
			domain:      cfg.Domain,
			fromAddress: cfg.FromAddress,
			fromName:    cfg.FromName,
			logger:      logger,
		}, nil
	case "noop":
		return &noopNotifier{logger: logger}, nil
	default:
		logger.Warn("unknown mail provider, using noop", "provider", cfg.Provider)
		return &noopNotifier{logger: logger}, nil
	}
}

type sesNotifier struct {
	client      *ses.Client
	domain      string
	fromAddress string
	fromName    string
	logger      *slog.Logger
}

func (n *sesNotifier) NotifyInvited(ctx context.Context, invitee string, ev *domain.Event) error {
	subject, htmlBody, textBody, err := renderInvitation(invitee, ev)
	if err != nil {
		return fmt.Errorf("render invitation notice: %w", err)
	}
	source := n.fromAddress
	if n.fromName != "" {
		source = fmt.Sprintf("%s <%s>", n.fromName, n.fromAddress)
	}
	input := &ses.SendEmailInput{
		Source: aws.String(source),
		Destination: &types.Destination{
			ToAddresses: []string{invitee + "@" + n.domain},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data:    aws.String(subject),
				Charset: aws.String("UTF-8"),
			},
			Body: &types.Body{
				Html: &types.Content{Data: aws.String(htmlBody), Charset: aws.String("UTF-8")},
				Text: &types.Content{Data: aws.String(textBody), Charset: aws.String("UTF-8")},
			},
		},
	}
	result, err := n.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("send invitation notice via SES: %w", err)
	}
	n.logger.InfoContext(ctx, "invitation notice sent",
		"invitee", invitee, "event", ev.Name(), "message_id", aws.ToString(result.MessageId))
	return nil
}

type noopNotifier struct {
	logger *slog.Logger
}

func (n *noopNotifier) NotifyInvited(ctx context.Context, invitee string, ev *domain.Event) error {
	n.logger.DebugContext(ctx, "invitation notice suppressed (noop mailer)",
		"invitee", invitee, "event", ev.Name())
	return nil
}
