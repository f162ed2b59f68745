package collab

import (
	"context"
	"net/mail"
	"strings"

	"go.uber.org/zap"

	"github.com/kairowan/gatehouse/internal/domain"
)

// Mailer 只接收已校验的收件人与内容；不经过任何 shell
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// LogMailer records outgoing mail through zap, for environments without an
// SMTP relay. Validation still happens here so every implementation gets
// pre-checked input.
type LogMailer struct {
	Log    *zap.Logger
	Sender string
}

func (m *LogMailer) Send(ctx context.Context, to, subject, body string) error {
	if err := ValidateRecipient(to); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return domain.External("mail cancelled", err)
	}
	m.Log.Info("mail queued",
		zap.String("from", m.Sender),
		zap.String("to", to),
		zap.String("subject", subject),
		zap.Int("body_len", len(body)),
	)
	return nil
}

// ValidateRecipient accepts a single plain address; header injection via
// CR/LF is rejected.
func ValidateRecipient(to string) error {
	if strings.ContainsAny(to, "\r\n") {
		return domain.Validation("invalid recipient")
	}
	addr, err := mail.ParseAddress(to)
	if err != nil || addr.Address != to {
		return domain.Validation("invalid recipient")
	}
	return nil
}
