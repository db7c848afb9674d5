package model

import (
	"strings"

	"github.com/resumehq/resume-analyzer/internal/core/domain"
)

// KeywordFallback classifies by filename keywords when no trained artifacts
// are available. Rules are checked in fixed priority order and the catch-all
// "General" rule means classification never fails.
type KeywordFallback struct{}

func NewKeywordFallback() *KeywordFallback {
	return &KeywordFallback{}
}

type fallbackRule struct {
	keywords []string
	label    string
	skills   []string
}

var fallbackRules = []fallbackRule{
	{
		keywords: []string{"data", "analyst", "science"},
		label:    "Data Science",
		skills:   []string{"Python", "Machine Learning", "SQL", "Statistics", "Pandas", "NumPy"},
	},
	{
		keywords: []string{"software", "developer", "engineer"},
		label:    "Software Engineering",
		skills:   []string{"Programming", "Software Development", "Algorithms", "Problem Solving"},
	},
	{
		keywords: []string{"marketing", "digital"},
		label:    "Marketing",
		skills:   []string{"Digital Marketing", "SEO", "Content Creation", "Analytics"},
	},
}

const (
	fallbackMatchConfidence   = 75.0
	fallbackDefaultConfidence = 65.0
)

// Classify matches filename substrings case-insensitively against the rule
// table; the first matching rule wins.
func (f *KeywordFallback) Classify(filename string) domain.Analysis {
	name := strings.ToLower(filename)

	for _, rule := range fallbackRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(name, keyword) {
				return domain.Analysis{
					Domain:     rule.label,
					Confidence: fallbackMatchConfidence,
					Skills:     append([]string(nil), rule.skills...),
					Fallback:   true,
				}
			}
		}
	}

	return domain.Analysis{
		Domain:     domain.DomainGeneral,
		Confidence: fallbackDefaultConfidence,
		Skills:     []string{"Communication", "Problem Solving", "Team Work", "Leadership"},
		Fallback:   true,
	}
}
