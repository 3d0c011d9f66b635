package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	JobType  string `json:"job_type" validate:"omitempty,is-job-type"`
	Status   string `json:"status" validate:"required,is-application-status"`
	Level    string `form:"experience" validate:"omitempty,is-experience"`
}

func TestValidate_CustomRules(t *testing.T) {
	v := New()

	err := v.Validate(&sampleRequest{Username: "john_doe", JobType: "full-time", Status: "interview_scheduled", Level: "5+"})
	assert.NoError(t, err)

	err = v.Validate(&sampleRequest{Username: "jo", JobType: "freelance", Status: "hired", Level: "10+"})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Contains(t, vErr.Errors, "username")
	assert.Contains(t, vErr.Errors, "job_type")
	assert.Contains(t, vErr.Errors, "status")
	assert.Contains(t, vErr.Errors, "experience")
	assert.Equal(t, "Must be one of: full-time, part-time, contract, internship", vErr.Errors["job_type"])
}
