package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCtxInfo_AddsContextFields(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("production", &buf)
	t.Cleanup(func() { Init("test") })

	ctx := WithUserID(WithRequestID(context.Background(), "req-42"), "user-7")
	CtxInfo(ctx, "application submitted", "job_id", "job-1")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "application submitted", entry["msg"])
	assert.Equal(t, "req-42", entry["request_id"])
	assert.Equal(t, "user-7", entry["user_id"])
	assert.Equal(t, "job-1", entry["job_id"])
}

func TestCtxSideEffect_LogsWarning(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("production", &buf)
	t.Cleanup(func() { Init("test") })

	CtxSideEffect(context.Background(), "send_email", errors.New("smtp timeout"), "to", "hr@example.com")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "send_email", entry["effect"])
	assert.Equal(t, "smtp timeout", entry["error"])
}

func TestInit_TestEnvSuppressesInfo(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("test", &buf)
	t.Cleanup(func() { Init("test") })

	Info("noise")
	assert.Empty(t, buf.String())

	Warn("visible")
	assert.Contains(t, buf.String(), "visible")
}
