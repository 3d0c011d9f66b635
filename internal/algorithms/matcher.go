package algorithms

import (
	"strings"
	"unicode"

	"jobportal_backend/internal/models"
)

const (
	cityPoints     = 30.0
	keywordPoints  = 40.0
	categoryPoints = 20.0
	resumePoints   = 10.0
	maxScore       = cityPoints + keywordPoints + categoryPoints + resumePoints

	minKeywordLength = 4
)

var stopWords = map[string]bool{
	"with": true, "and": true, "the": true, "for": true, "from": true, "that": true,
	"this": true, "have": true, "will": true, "must": true, "your": true, "years": true,
	"ability": true, "required": true, "preferred": true, "minimum": true, "good": true,
	"excellent": true, "skills": true, "experience": true,
}

// CalculateMatchScore оценивает, насколько соискатель подходит под вакансию (0-100)
func CalculateMatchScore(job *models.Job, seeker *models.JobSeeker) (float64, []string) {
	if job == nil || seeker == nil {
		return 0, nil
	}
	score := 0.0
	reasons := []string{}

	// Город (30)
	if job.City != "" && strings.EqualFold(strings.TrimSpace(job.City), strings.TrimSpace(seeker.City)) {
		score += cityPoints
		reasons = append(reasons, "Same city")
	}

	profile := strings.ToLower(strings.Join([]string{
		seeker.Skills, seeker.Experience, seeker.Education, seeker.ResumeText,
	}, " "))
	profileWords := keywords(profile)

	// Ключевые слова требований (40)
	keywordScore := calculateKeywordOverlap(
		keywords(strings.Join([]string{job.Title, job.Category, job.Requirements}, " ")),
		profileWords,
	)
	score += keywordScore
	if keywordScore >= keywordPoints/2 {
		reasons = append(reasons, "Skills match job requirements")
	}

	// Категория вакансии в профиле (20)
	if job.Category != "" && strings.Contains(profile, strings.ToLower(job.Category)) {
		score += categoryPoints
		reasons = append(reasons, "Experience in "+job.Category)
	}

	// Резюме в профиле (10)
	if seeker.ResumeKey != "" {
		score += resumePoints
		reasons = append(reasons, "Resume on file")
	}

	normalizedScore := score / maxScore * 100.0
	if normalizedScore > 100 {
		normalizedScore = 100
	}
	return normalizedScore, reasons
}

// calculateKeywordOverlap - доля ключевых слов вакансии, найденных в профиле (0-40)
func calculateKeywordOverlap(jobWords, profileWords map[string]bool) float64 {
	if len(jobWords) == 0 {
		return keywordPoints / 2 // Требований нет, половина баллов
	}

	matches := 0
	for w := range jobWords {
		if profileWords[w] {
			matches++
		}
	}
	return float64(matches) / float64(len(jobWords)) * keywordPoints
}

func keywords(text string) map[string]bool {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	result := make(map[string]bool, len(words))
	for _, w := range words {
		if len([]rune(w)) < minKeywordLength || stopWords[w] {
			continue
		}
		result[w] = true
	}
	return result
}
