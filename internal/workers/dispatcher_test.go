package workers

import (
	"context"
	"errors"
	"testing"

	"jobportal_backend/internal/email"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolDispatcher_DeliversQueuedMessages(t *testing.T) {
	provider := &email.MemoryProvider{}
	d := NewPoolDispatcher(provider, 2, 10)

	for i := 0; i < 5; i++ {
		d.Dispatch(context.Background(), EmailMessage{To: []string{"a@b.c"}, Subject: "s", Template: email.TemplateNewApplication})
	}
	require.NoError(t, d.Close())

	assert.Len(t, provider.Sent(), 5)
}

func TestPoolDispatcher_ProviderFailureIsSwallowed(t *testing.T) {
	provider := &email.MemoryProvider{Err: errors.New("smtp down")}
	d := NewPoolDispatcher(provider, 1, 1)

	assert.NotPanics(t, func() {
		d.Dispatch(context.Background(), EmailMessage{To: []string{"a@b.c"}, Template: email.TemplateCompanyApproved})
	})
	require.NoError(t, d.Close())
	assert.Empty(t, provider.Sent())
}

func TestPoolDispatcher_DispatchAfterClose(t *testing.T) {
	d := NewPoolDispatcher(&email.MemoryProvider{}, 1, 1)
	require.NoError(t, d.Close())
	require.NoError(t, d.Close())

	assert.NotPanics(t, func() {
		d.Dispatch(context.Background(), EmailMessage{To: []string{"a@b.c"}, Template: email.TemplateCompanyApproved})
	})
}

func TestDecodeEmailMessage(t *testing.T) {
	msg, err := DecodeEmailMessage([]byte(`{"to":["x@y.z"],"subject":"Hi","template":"company_approved","data":{"CompanyName":"GuardPro"}}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"x@y.z"}, msg.To)
	assert.Equal(t, "GuardPro", msg.Data["CompanyName"])

	_, err = DecodeEmailMessage([]byte(`{"to":["x@y.z"]}`))
	assert.Error(t, err)

	_, err = DecodeEmailMessage([]byte(`not json`))
	assert.Error(t, err)
}
