package collab

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kairowan/gatehouse/internal/domain"
)

func TestValidateRecipient(t *testing.T) {
	require.NoError(t, ValidateRecipient("user@example.com"))

	bad := []string{
		"",
		"not-an-address",
		"a@b.com\r\nBcc: everyone@example.com", // header 注入
		"Alice <a@b.com>",
		"a@b.com; rm -rf /",
	}
	for _, to := range bad {
		err := ValidateRecipient(to)
		require.Error(t, err, "recipient %q", to)
		assert.True(t, domain.IsKind(err, domain.KindValidation), "recipient %q", to)
	}
}

func TestLogMailerSend(t *testing.T) {
	m := &LogMailer{Log: zap.NewNop(), Sender: "noreply@example.com"}

	require.NoError(t, m.Send(context.Background(), "user@example.com", "hi", "body"))
	assert.Error(t, m.Send(context.Background(), "bad\r\n", "hi", "body"))
}
