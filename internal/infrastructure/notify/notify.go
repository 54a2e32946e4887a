// Package notify envía los avisos de revisión a las organizaciones.
package notify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/ports"
	"github.com/roboticsteamraoatech-creator/datacapture-api/pkg/logger"
)

var (
	_ ports.Notifier = (*SESNotifier)(nil)
	_ ports.Notifier = (*LogNotifier)(nil)
)

// sesAPI subconjunto del cliente SES que se usa.
type sesAPI interface {
	SendEmail(ctx context.Context, in *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SESNotifier correo de texto plano vía Amazon SES.
type SESNotifier struct {
	client sesAPI
	sender string
	log    *logger.Logger
}

// NewSESNotifier credenciales por la cadena por defecto de AWS (env, perfil, rol).
func NewSESNotifier(ctx context.Context, region, sender string, log *logger.Logger) (*SESNotifier, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("notify: cargar config aws: %w", err)
	}
	return newSESNotifier(ses.NewFromConfig(cfg), sender, log), nil
}

func newSESNotifier(client sesAPI, sender string, log *logger.Logger) *SESNotifier {
	if log == nil {
		log = logger.Nop()
	}
	return &SESNotifier{client: client, sender: sender, log: log.Named("notify")}
}

func (n *SESNotifier) Notify(ctx context.Context, msg ports.Notification) error {
	if msg.To == "" {
		n.log.Warn().Str("subject", msg.Subject).Msg("notification without recipient skipped")
		return nil
	}
	out, err := n.client.SendEmail(ctx, &ses.SendEmailInput{
		Source:      aws.String(n.sender),
		Destination: &types.Destination{ToAddresses: []string{msg.To}},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(msg.Subject), Charset: aws.String("UTF-8")},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(msg.Body), Charset: aws.String("UTF-8")},
			},
		},
	})
	if err != nil {
		n.log.Error().Err(err).Str("to", msg.To).Msg("ses send failed")
		return fmt.Errorf("notify: ses: %w", err)
	}
	n.log.Info().Str("to", msg.To).Str("message_id", aws.ToString(out.MessageId)).Msg("notification sent")
	return nil
}

// LogNotifier solo registra el aviso; se usa cuando el correo está deshabilitado.
type LogNotifier struct {
	log *logger.Logger
}

func NewLogNotifier(log *logger.Logger) *LogNotifier {
	if log == nil {
		log = logger.Nop()
	}
	return &LogNotifier{log: log.Named("notify")}
}

func (n *LogNotifier) Notify(_ context.Context, msg ports.Notification) error {
	n.log.Info().Str("to", msg.To).Str("subject", msg.Subject).Msg("notification")
	return nil
}
