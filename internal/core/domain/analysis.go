package domain

import "time"

type JobStatus string

const (
	StatusQueued     JobStatus = "queued"
	StatusProcessing JobStatus = "processing"
	StatusDone       JobStatus = "done"
	StatusFailed     JobStatus = "failed"
)

// Sentinel domain labels produced outside the trained label set.
const (
	DomainGeneral = "General"
)

// Prediction is the raw classifier output before it is shaped into an
// Analysis. HasProbability is false for artifacts that expose no posterior
// estimate; callers substitute DefaultConfidence in that case.
type Prediction struct {
	Label          string
	Probability    float64
	HasProbability bool
}

// DefaultConfidence is reported when the loaded classifier exposes no
// probability estimate.
const DefaultConfidence = 85.0

// Analysis is the result of one classification run. It is all-or-nothing:
// a failed run yields an error, never a partially filled Analysis.
type Analysis struct {
	Domain              string   `json:"domain"`
	Confidence          float64  `json:"confidence"`
	Skills              []string `json:"skills"`
	ExtractedTextLength int      `json:"extracted_text_length"`
	ProcessedTextLength int      `json:"processed_text_length"`
	Fallback            bool     `json:"fallback,omitempty"`
}

// ContactInfo holds contact fields scraped from the extracted resume text.
type ContactInfo struct {
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
}

// Readability summarizes a Flesch-style readability approximation of the
// extracted text, clamped to [0,100].
type Readability struct {
	Score             int     `json:"score"`
	Level             string  `json:"level"`
	WordCount         int     `json:"word_count"`
	SentenceCount     int     `json:"sentence_count"`
	AvgSentenceLength float64 `json:"avg_sentence_length"`
}

// Report bundles the classification with the text-derived extras returned by
// the synchronous analyze endpoint.
type Report struct {
	Analysis
	ContactInfo     *ContactInfo `json:"contact_info,omitempty"`
	Readability     *Readability `json:"readability,omitempty"`
	ExperienceYears int          `json:"experience_years,omitempty"`
}

// Suggestion is one resume improvement recommendation.
type Suggestion struct {
	Category    string `json:"category"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Example     string `json:"example,omitempty"`
	Priority    string `json:"priority"`
}

type ImprovementResult struct {
	OverallScore       int          `json:"overall_score"`
	Suggestions        []Suggestion `json:"suggestions"`
	CategoriesAnalyzed []string     `json:"categories_analyzed"`
}

// PhraseMatch is one boilerplate phrase found by the uniqueness check.
type PhraseMatch struct {
	Phrase   string `json:"phrase"`
	Category string `json:"category"`
	Severity string `json:"severity"`
}

type PlagiarismResult struct {
	OverallScore    float64       `json:"overall_score"`
	Matches         []PhraseMatch `json:"matches"`
	TotalMatches    int           `json:"total_matches"`
	Recommendations []string      `json:"recommendations"`
}

// Company is one entry of the static hiring directory.
type Company struct {
	Name           string   `json:"name"`
	Location       string   `json:"location"`
	Size           string   `json:"size"`
	Industry       string   `json:"industry"`
	HiringFocus    []string `json:"hiring_focus"`
	ApplicationURL string   `json:"application_url"`

	SkillMatchScore int      `json:"skill_match_score,omitempty"`
	MatchingSkills  []string `json:"matching_skills,omitempty"`
}

// AnalysisJob is the persisted state of an asynchronous analysis request.
// Only metadata and the final result are stored; the uploaded bytes live in
// transient staging storage and are removed once the job finishes.
type AnalysisJob struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	MimeType   string    `json:"mime_type"`
	StagingKey string    `json:"-"`
	Status     JobStatus `json:"status"`
	Result     *Analysis `json:"result,omitempty"`
	Error      string    `json:"error,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
