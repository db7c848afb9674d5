package usecase

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/resumehq/resume-analyzer/internal/core/domain"
	"github.com/resumehq/resume-analyzer/internal/core/ports"
)

var (
	quantifiableRegex = regexp.MustCompile(`\d+%|\$\d+|\d+\s*(years?|months?)`)

	actionVerbs = []string{"achieved", "developed", "managed", "created", "improved", "led", "implemented"}

	improvementCategories = []string{"formatting", "content", "keywords", "achievements", "skills"}
)

const maxSuggestions = 5

// ImproveResumeUseCase produces rule-based improvement suggestions for the
// resume's actual extracted text.
type ImproveResumeUseCase struct {
	extractor ports.TextExtractor
}

func NewImproveResumeUseCase(extractor ports.TextExtractor) *ImproveResumeUseCase {
	return &ImproveResumeUseCase{extractor: extractor}
}

func (uc *ImproveResumeUseCase) Improve(ctx context.Context, data []byte, filename, domainLabel string) (domain.ImprovementResult, error) {
	text, err := uc.extractor.Extract(ctx, data, filename)
	if err != nil {
		return domain.ImprovementResult{}, err
	}
	if strings.TrimSpace(text) == "" {
		return domain.ImprovementResult{}, domain.WrapError(domain.ErrEmptyExtractedText, "extract text", errors.New(filename))
	}

	if domainLabel == "" {
		domainLabel = "Software Engineering"
	}

	suggestions := baseSuggestions(text)
	suggestions = append(suggestions, domainSuggestions(domainLabel, text)...)
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}

	score := 100 - len(suggestions)*15
	if score < 60 {
		score = 60
	}

	return domain.ImprovementResult{
		OverallScore:       score,
		Suggestions:        suggestions,
		CategoriesAnalyzed: improvementCategories,
	}, nil
}

func baseSuggestions(text string) []domain.Suggestion {
	var suggestions []domain.Suggestion

	if !quantifiableRegex.MatchString(text) {
		suggestions = append(suggestions, domain.Suggestion{
			Category:    "achievements",
			Title:       "Add Quantifiable Achievements",
			Description: "Include specific numbers, percentages, or metrics to demonstrate your impact.",
			Example:     "Increased sales by 25% over 6 months",
			Priority:    "high",
		})
	}

	lower := strings.ToLower(text)
	hasActionVerb := false
	for _, verb := range actionVerbs {
		if strings.Contains(lower, verb) {
			hasActionVerb = true
			break
		}
	}
	if !hasActionVerb {
		suggestions = append(suggestions, domain.Suggestion{
			Category:    "content",
			Title:       "Use Strong Action Verbs",
			Description: "Start bullet points with powerful action verbs to show initiative.",
			Example:     "Led a team of 5 developers to deliver project ahead of schedule",
			Priority:    "high",
		})
	}

	return suggestions
}

func domainSuggestions(domainLabel, text string) []domain.Suggestion {
	lower := strings.ToLower(text)

	switch domainLabel {
	case "Software Engineering":
		if !strings.Contains(lower, "github") {
			return []domain.Suggestion{{
				Category:    "skills",
				Title:       "Add GitHub Profile",
				Description: "Include your GitHub profile to showcase your coding projects.",
				Priority:    "medium",
			}}
		}
	case "Data Science":
		if !containsWord(lower, "python") && !containsWord(lower, "r") {
			return []domain.Suggestion{{
				Category:    "skills",
				Title:       "Highlight Programming Languages",
				Description: "Mention key programming languages like Python or R for data science roles.",
				Priority:    "high",
			}}
		}
	}
	return nil
}

func containsWord(lower, word string) bool {
	for _, field := range strings.Fields(lower) {
		if strings.Trim(field, ".,;:()") == word {
			return true
		}
	}
	return false
}
