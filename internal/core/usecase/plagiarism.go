package usecase

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/resumehq/resume-analyzer/internal/core/domain"
	"github.com/resumehq/resume-analyzer/internal/core/ports"
)

// overusedPhrases is the static catalogue of resume boilerplate the
// uniqueness check scans for.
var overusedPhrases = []string{
	"results-driven professional",
	"detail-oriented individual",
	"proven track record",
	"excellent communication skills",
	"team player",
	"self-motivated",
	"work well under pressure",
}

// CheckUniquenessUseCase flags overused boilerplate phrases in the resume's
// actual extracted text and scores how generic it reads.
type CheckUniquenessUseCase struct {
	extractor ports.TextExtractor
}

func NewCheckUniquenessUseCase(extractor ports.TextExtractor) *CheckUniquenessUseCase {
	return &CheckUniquenessUseCase{extractor: extractor}
}

func (uc *CheckUniquenessUseCase) Check(ctx context.Context, data []byte, filename string) (domain.PlagiarismResult, error) {
	text, err := uc.extractor.Extract(ctx, data, filename)
	if err != nil {
		return domain.PlagiarismResult{}, err
	}
	if strings.TrimSpace(text) == "" {
		return domain.PlagiarismResult{}, domain.WrapError(domain.ErrEmptyExtractedText, "extract text", errors.New(filename))
	}

	lower := strings.ToLower(text)
	matches := make([]domain.PhraseMatch, 0, len(overusedPhrases))
	for _, phrase := range overusedPhrases {
		if strings.Contains(lower, phrase) {
			matches = append(matches, domain.PhraseMatch{
				Phrase:   phrase,
				Category: "overused",
				Severity: "medium",
			})
		}
	}

	score := float64(len(matches)) / float64(len(overusedPhrases)) * 100
	if score > 100 {
		score = 100
	}
	score = math.Round(score*10) / 10

	return domain.PlagiarismResult{
		OverallScore:    score,
		Matches:         matches,
		TotalMatches:    len(matches),
		Recommendations: uniquenessRecommendations(score),
	}, nil
}

func uniquenessRecommendations(score float64) []string {
	switch {
	case score < 20:
		return []string{
			"Great! Your resume has unique content.",
			"Keep using specific achievements and metrics.",
		}
	case score < 50:
		return []string{
			"Consider replacing some common phrases with more specific achievements.",
			"Use concrete examples and numbers to stand out.",
		}
	default:
		return []string{
			"High similarity detected. Rewrite using specific accomplishments.",
			"Replace generic phrases with quantifiable achievements.",
			"Focus on unique experiences and skills.",
		}
	}
}
