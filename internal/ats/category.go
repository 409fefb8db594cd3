package ats

import "strings"

const (
	CategoryTechnical    = "Technical"
	CategoryNonTechnical = "Non-Technical"
)

var technicalKeywords = []string{
	"developer", "engineer", "software", "backend", "frontend", "fullstack", "devops",
	"data", "qa", "sde", "programmer", "machine", "ml", "ai",
}

// Category classifies a job title as technical when it contains any technical keyword.
// Matching is by substring, so "email marketer" is technical because of "ai".
func Category(jobTitle string) string {
	lower := strings.ToLower(jobTitle)
	for _, keyword := range technicalKeywords {
		if strings.Contains(lower, keyword) {
			return CategoryTechnical
		}
	}
	return CategoryNonTechnical
}

// IsTechnical reports whether the job title falls into the technical category.
func IsTechnical(jobTitle string) bool {
	return Category(jobTitle) == CategoryTechnical
}
