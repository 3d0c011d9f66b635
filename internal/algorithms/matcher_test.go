package algorithms

import (
	"testing"

	"jobportal_backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCalculateMatchScore(t *testing.T) {
	job := &models.Job{
		Title:        "CCTV Operator",
		City:         "London",
		Category:     "CCTV Operator",
		Requirements: "- CCTV operation experience\n- SIA CCTV License",
	}

	t.Run("strong candidate", func(t *testing.T) {
		seeker := &models.JobSeeker{
			City:       "london",
			Skills:     "CCTV monitoring, First Aid",
			Experience: "CCTV Operator at Mall Security (2020-2023), operation of control room, SIA license holder",
			ResumeKey:  "resumes/cv.pdf",
		}
		score, reasons := CalculateMatchScore(job, seeker)
		assert.InDelta(t, 100.0, score, 0.01)
		assert.Contains(t, reasons, "Same city")
		assert.Contains(t, reasons, "Resume on file")
		assert.Contains(t, reasons, "Experience in CCTV Operator")
	})

	t.Run("unrelated candidate", func(t *testing.T) {
		seeker := &models.JobSeeker{City: "Birmingham", Skills: "Cooking, baking"}
		score, reasons := CalculateMatchScore(job, seeker)
		assert.Equal(t, 0.0, score)
		assert.Empty(t, reasons)
	})

	t.Run("no requirements gives half keyword points", func(t *testing.T) {
		score, _ := CalculateMatchScore(&models.Job{}, &models.JobSeeker{})
		assert.InDelta(t, 20.0, score, 0.01)
	})

	t.Run("nil input", func(t *testing.T) {
		score, reasons := CalculateMatchScore(nil, &models.JobSeeker{})
		assert.Zero(t, score)
		assert.Nil(t, reasons)
	})
}

func TestKeywords_SkipsShortAndStopWords(t *testing.T) {
	words := keywords("SIA License required, with CCTV-operation skills")
	assert.True(t, words["license"])
	assert.True(t, words["cctv"])
	assert.True(t, words["operation"])
	assert.False(t, words["sia"])
	assert.False(t, words["required"])
	assert.False(t, words["with"])
}
