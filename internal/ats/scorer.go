package ats

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

const (
	skillWeight        = 60
	maxYears           = 10
	pointsPerYear      = 2
	pointsPerCert      = 3
	pointsPerProject   = 2
	maxProjectBonus    = 10
	educationBonus     = 5
	maxScore           = 100
	normalizedDivision = 10
)

const (
	SuggestSkills         = "Add more relevant skills to match job requirements."
	SuggestExperience     = "Mention years of experience or project durations."
	SuggestEducation      = "Highlight educational qualifications."
	SuggestCertifications = "Industry certifications can improve your ATS score."
)

var (
	experienceRe = regexp.MustCompile(`(\d+)\s*(?:\+\s*)?years?`)
	projectRe    = regexp.MustCompile(`project|developed|built|created|designed|implemented`)
	educationRe  = regexp.MustCompile(`bachelor|master|b\.?s\.|m\.?s\.|degree|phd|b\.?tech|m\.?tech`)

	certKeywords = []string{"certified", "aws", "gcp", "azure", "scrum", "pmp", "cissp"}
)

// Breakdown is the contribution of every heuristic to the total score.
type Breakdown struct {
	Skill         int `json:"skill"`
	Experience    int `json:"experience"`
	Certification int `json:"certification"`
	Project       int `json:"project"`
	Education     int `json:"education"`
	Years         int `json:"years"`
}

// Result is the outcome of scoring one resume against one job title.
type Result struct {
	Score         int       `json:"score"`
	MatchPercent  int       `json:"match_percent"`
	Suggestions   []string  `json:"suggestions"`
	MatchCount    int       `json:"match_count"`
	MatchedSkills []string  `json:"matched_skills"`
	SkillsChecked []string  `json:"skills_checked"`
	Breakdown     Breakdown `json:"breakdown"`
}

// Normalized returns the score on a 0-10 scale.
func (r *Result) Normalized() int {
	return int(math.Round(float64(r.Score) / normalizedDivision))
}

// Suggestion joins all suggestions into a single line.
func (r *Result) Suggestion() string {
	return strings.Join(r.Suggestions, "; ")
}

// Scorer computes keyword based ATS scores. It holds no mutable state.
type Scorer struct {
	taxonomy *Taxonomy
}

func NewScorer(taxonomy *Taxonomy) *Scorer {
	if taxonomy == nil {
		taxonomy = DefaultTaxonomy()
	}
	return &Scorer{taxonomy: taxonomy}
}

// Score rates text against the job title. Identical inputs always produce identical results.
func (s *Scorer) Score(text, jobTitle string) *Result {
	lower := strings.ToLower(text)
	skills := s.taxonomy.Skills(jobTitle)

	matched := make([]string, 0, len(skills))
	for _, skill := range skills {
		if strings.Contains(lower, skill) {
			matched = append(matched, skill)
		}
	}

	skillCount := max(1, len(skills))
	skillScore := int(math.Round(float64(len(matched)) / float64(skillCount) * skillWeight))

	years := min(experienceYears(lower), maxYears)
	expScore := years * pointsPerYear

	certMatches := 0
	for _, keyword := range certKeywords {
		if strings.Contains(lower, keyword) {
			certMatches++
		}
	}
	certBonus := certMatches * pointsPerCert

	projectBonus := min(len(projectRe.FindAllStringIndex(lower, -1))*pointsPerProject, maxProjectBonus)

	eduBonus := 0
	if educationRe.MatchString(lower) {
		eduBonus = educationBonus
	}

	total := min(maxScore, skillScore+expScore+certBonus+projectBonus+eduBonus)

	suggestions := make([]string, 0, 4)
	if len(matched) < max(1, len(skills)/3) {
		suggestions = append(suggestions, SuggestSkills)
	}
	if years < 1 {
		suggestions = append(suggestions, SuggestExperience)
	}
	if eduBonus == 0 {
		suggestions = append(suggestions, SuggestEducation)
	}
	if certBonus == 0 {
		suggestions = append(suggestions, SuggestCertifications)
	}

	return &Result{
		Score:         total,
		MatchPercent:  total,
		Suggestions:   suggestions,
		MatchCount:    len(matched),
		MatchedSkills: matched,
		SkillsChecked: skills,
		Breakdown: Breakdown{
			Skill:         skillScore,
			Experience:    expScore,
			Certification: certBonus,
			Project:       projectBonus,
			Education:     eduBonus,
			Years:         years,
		},
	}
}

// experienceYears returns the number from the first "N years" mention, 0 when absent.
// Numbers too large to parse count as the maximum.
func experienceYears(lower string) int {
	match := experienceRe.FindStringSubmatch(lower)
	if match == nil {
		return 0
	}
	years, err := strconv.Atoi(match[1])
	if err != nil {
		return maxYears
	}
	return years
}
