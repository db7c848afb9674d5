package usecase

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/resumehq/resume-analyzer/internal/core/domain"
	"github.com/resumehq/resume-analyzer/internal/core/ports"
)

// AnalyzeResumeUseCase runs the document-to-domain classification pipeline:
// extract -> normalize -> vectorize -> predict -> skill lookup. When the
// model artifacts failed to load at startup the use case is constructed
// without transformer/classifier and every request takes the filename
// keyword fallback instead; that choice is made once, not per request.
type AnalyzeResumeUseCase struct {
	extractor   ports.TextExtractor
	normalizer  ports.TextNormalizer
	transformer ports.FeatureTransformer
	classifier  ports.LabelPredictor
	fallback    ports.FallbackClassifier
}

func NewAnalyzeResumeUseCase(
	extractor ports.TextExtractor,
	normalizer ports.TextNormalizer,
	transformer ports.FeatureTransformer,
	classifier ports.LabelPredictor,
	fallback ports.FallbackClassifier,
) *AnalyzeResumeUseCase {
	return &AnalyzeResumeUseCase{
		extractor:   extractor,
		normalizer:  normalizer,
		transformer: transformer,
		classifier:  classifier,
		fallback:    fallback,
	}
}

// ModelBacked reports whether the trained artifacts are in use.
func (uc *AnalyzeResumeUseCase) ModelBacked() bool {
	return uc.transformer != nil && uc.classifier != nil
}

func (uc *AnalyzeResumeUseCase) Analyze(ctx context.Context, data []byte, filename string) (domain.Analysis, error) {
	analysis, _, err := uc.analyze(ctx, data, filename)
	return analysis, err
}

// Report runs the classification and enriches a successful result with
// contact info, readability, and experience signals scraped from the
// extracted text. The fallback path never extracts text, so fallback
// reports carry the classification only.
func (uc *AnalyzeResumeUseCase) Report(ctx context.Context, data []byte, filename string) (domain.Report, error) {
	analysis, text, err := uc.analyze(ctx, data, filename)
	if err != nil {
		return domain.Report{}, err
	}

	report := domain.Report{Analysis: analysis}
	if text != "" {
		contact := ExtractContactInfo(text)
		readability := CalculateReadability(text)
		report.ContactInfo = &contact
		report.Readability = &readability
		report.ExperienceYears = ExtractExperienceYears(text)
	}
	return report, nil
}

func (uc *AnalyzeResumeUseCase) analyze(ctx context.Context, data []byte, filename string) (domain.Analysis, string, error) {
	if !uc.ModelBacked() {
		return uc.fallback.Classify(filename), "", nil
	}

	text, err := uc.extractText(ctx, data, filename)
	if err != nil {
		return domain.Analysis{}, "", err
	}

	cleaned, err := uc.normalizeText(text)
	if err != nil {
		return domain.Analysis{}, "", err
	}

	prediction, err := uc.predict(cleaned)
	if err != nil {
		return domain.Analysis{}, "", err
	}

	return domain.Analysis{
		Domain:              prediction.Label,
		Confidence:          confidenceOf(prediction),
		Skills:              domain.SkillsFor(prediction.Label),
		ExtractedTextLength: len(text),
		ProcessedTextLength: len(cleaned),
	}, text, nil
}

func (uc *AnalyzeResumeUseCase) extractText(ctx context.Context, data []byte, filename string) (string, error) {
	text, err := uc.extractor.Extract(ctx, data, filename)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", domain.WrapError(domain.ErrEmptyExtractedText, "extract text", errors.New(filename))
	}
	return text, nil
}

func (uc *AnalyzeResumeUseCase) normalizeText(text string) (string, error) {
	cleaned := uc.normalizer.Normalize(text)
	if strings.TrimSpace(cleaned) == "" {
		return "", domain.WrapError(domain.ErrNoValidText, "normalize text", errors.New("normalization stripped all tokens"))
	}
	return cleaned, nil
}

func (uc *AnalyzeResumeUseCase) predict(cleaned string) (domain.Prediction, error) {
	vector, err := uc.transformer.Transform(cleaned)
	if err != nil {
		if domain.IsKind(err, domain.ErrNoValidText) {
			return domain.Prediction{}, err
		}
		return domain.Prediction{}, domain.WrapError(domain.ErrPredictionFailed, "vectorize text", err)
	}

	prediction, err := uc.classifier.Predict(vector)
	if err != nil {
		if domain.IsKind(err, domain.ErrPredictionFailed) {
			return domain.Prediction{}, err
		}
		return domain.Prediction{}, domain.WrapError(domain.ErrPredictionFailed, "predict domain", err)
	}
	return prediction, nil
}

func confidenceOf(prediction domain.Prediction) float64 {
	if !prediction.HasProbability {
		return domain.DefaultConfidence
	}
	return math.Round(prediction.Probability*100*100) / 100
}
