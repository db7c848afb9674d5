package usecase

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/resumehq/resume-analyzer/internal/core/domain"
)

var (
	emailRegex    = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	linkedinRegex = regexp.MustCompile(`(?i)linkedin\.com/in/[\w-]+`)
	githubRegex   = regexp.MustCompile(`(?i)github\.com/[\w-]+`)

	phoneRegexes = []*regexp.Regexp{
		regexp.MustCompile(`\b\d{3}-\d{3}-\d{4}\b`),
		regexp.MustCompile(`\(\d{3}\)\s*\d{3}-\d{4}`),
		regexp.MustCompile(`\b\d{10}\b`),
		regexp.MustCompile(`\b\d{3}\.\d{3}\.\d{4}\b`),
	}

	sentenceRegex = regexp.MustCompile(`[.!?]+`)

	experienceRegexes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+)\+?\s*years?\s+(?:of\s+)?experience`),
		regexp.MustCompile(`(?i)experience.*?(\d+)\+?\s*years?`),
		regexp.MustCompile(`(?i)(\d+)\+?\s*yrs?\s+experience`),
	}
)

// ExtractContactInfo scrapes contact fields from the raw extracted text.
// Missing fields stay empty.
func ExtractContactInfo(text string) domain.ContactInfo {
	info := domain.ContactInfo{
		Email:    emailRegex.FindString(text),
		LinkedIn: linkedinRegex.FindString(text),
		GitHub:   githubRegex.FindString(text),
	}
	for _, re := range phoneRegexes {
		if match := re.FindString(text); match != "" {
			info.Phone = match
			break
		}
	}
	return info
}

// CalculateReadability approximates a Flesch reading-ease score from
// sentence length and characters-per-word, clamped to [0,100].
func CalculateReadability(text string) domain.Readability {
	if strings.TrimSpace(text) == "" {
		return domain.Readability{Level: "Poor"}
	}

	sentences := len(sentenceRegex.FindAllString(text, -1))
	words := len(strings.Fields(text))
	characters := len([]rune(strings.ReplaceAll(text, " ", "")))

	if sentences == 0 || words == 0 {
		return domain.Readability{Level: "Poor"}
	}

	avgSentenceLength := float64(words) / float64(sentences)
	avgCharsPerWord := float64(characters) / float64(words)

	score := 206.835 - 1.015*avgSentenceLength - 84.6*avgCharsPerWord
	score = math.Max(0, math.Min(100, score))

	return domain.Readability{
		Score:             int(math.Round(score)),
		Level:             readabilityLevel(score),
		WordCount:         words,
		SentenceCount:     sentences,
		AvgSentenceLength: math.Round(avgSentenceLength*10) / 10,
	}
}

func readabilityLevel(score float64) string {
	switch {
	case score >= 80:
		return "Excellent"
	case score >= 60:
		return "Good"
	case score >= 40:
		return "Average"
	default:
		return "Needs Improvement"
	}
}

// ExtractExperienceYears returns the first years-of-experience figure found
// in the text, or 0 when none is stated.
func ExtractExperienceYears(text string) int {
	for _, re := range experienceRegexes {
		match := re.FindStringSubmatch(text)
		if len(match) < 2 {
			continue
		}
		years, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		return years
	}
	return 0
}
