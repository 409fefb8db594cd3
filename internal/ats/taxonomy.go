package ats

import (
	"strings"
	"unicode"
)

var defaultSkills = map[string][]string{
	"frontend developer":   {"react", "javascript", "html", "css", "redux", "typescript", "angular", "vue"},
	"backend developer":    {"node", "express", "mongodb", "java", "spring", "python", "django", "postgresql"},
	"data scientist":       {"python", "pandas", "numpy", "ml", "tensorflow", "sklearn", "sql", "tableau"},
	"devops engineer":      {"docker", "kubernetes", "terraform", "jenkins", "aws", "gcp", "cicd", "linux"},
	"full stack developer": {"react", "javascript", "node", "express", "mongodb", "sql", "html", "css"},
}

// Taxonomy maps job titles to the skill keywords expected for them.
// It is read-only once constructed and safe for concurrent use.
type Taxonomy struct {
	skills map[string][]string
}

// DefaultTaxonomy returns the built-in job title taxonomy.
func DefaultTaxonomy() *Taxonomy {
	return NewTaxonomy(nil)
}

// NewTaxonomy builds a taxonomy from the defaults with extra titles merged on top.
// Titles and keywords are lower-cased, blank keywords are dropped. An extra title
// with no usable keywords is ignored.
func NewTaxonomy(extra map[string][]string) *Taxonomy {
	skills := make(map[string][]string, len(defaultSkills)+len(extra))
	for title, keywords := range defaultSkills {
		skills[title] = keywords
	}

	for title, keywords := range extra {
		normalized := normalizeKeywords(keywords)
		if len(normalized) == 0 {
			continue
		}
		skills[strings.ToLower(title)] = normalized
	}

	return &Taxonomy{skills: skills}
}

// Skills returns the skill set for the job title. Unknown titles fall back to
// the title's own alphanumeric tokens. The returned slice is a copy.
func (t *Taxonomy) Skills(jobTitle string) []string {
	lower := strings.ToLower(jobTitle)
	if t != nil {
		if keywords, ok := t.skills[lower]; ok {
			return append([]string(nil), keywords...)
		}
	}
	return Tokenize(lower)
}

// Len returns the number of titles known to the taxonomy.
func (t *Taxonomy) Len() int {
	if t == nil {
		return 0
	}
	return len(t.skills)
}

// Tokenize lower-cases s and splits it on non-alphanumeric boundaries.
func Tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func normalizeKeywords(keywords []string) []string {
	result := make([]string, 0, len(keywords))
	for _, keyword := range keywords {
		keyword = strings.ToLower(strings.TrimSpace(keyword))
		if keyword == "" {
			continue
		}
		result = append(result, keyword)
	}
	return result
}
