package model

import (
	"errors"
	"math"

	"github.com/resumehq/resume-analyzer/internal/core/domain"
)

// LinearClassifier is a pre-fitted multinomial linear model over the
// vectorizer's feature space. When the artifact was exported with
// probability support the posterior is computed via softmax; otherwise the
// prediction carries no probability and callers fall back to the documented
// default confidence.
type LinearClassifier struct {
	classes      []string
	coefficients [][]float64
	intercepts   []float64
	probability  bool
}

func NewLinearClassifier(classes []string, coefficients [][]float64, intercepts []float64, probability bool) (*LinearClassifier, error) {
	if len(classes) < 2 {
		return nil, errors.New("classifier needs at least two classes")
	}
	if len(coefficients) != len(classes) || len(intercepts) != len(classes) {
		return nil, errors.New("coefficient/intercept rows do not match class count")
	}
	width := len(coefficients[0])
	for _, row := range coefficients {
		if len(row) != width {
			return nil, errors.New("ragged coefficient matrix")
		}
	}
	return &LinearClassifier{
		classes:      classes,
		coefficients: coefficients,
		intercepts:   intercepts,
		probability:  probability,
	}, nil
}

// Dimension returns the expected feature-vector length.
func (c *LinearClassifier) Dimension() int {
	return len(c.coefficients[0])
}

// Predict returns the highest-scoring class for the vector. The probability
// is the softmax posterior of the winning class when the artifact supports
// probabilities.
func (c *LinearClassifier) Predict(vector []float64) (domain.Prediction, error) {
	if len(vector) != c.Dimension() {
		return domain.Prediction{}, domain.WrapError(
			domain.ErrPredictionFailed,
			"predict",
			errors.New("feature vector dimension mismatch"),
		)
	}

	scores := make([]float64, len(c.classes))
	best := 0
	for classIdx, row := range c.coefficients {
		score := c.intercepts[classIdx]
		for featureIdx, value := range vector {
			if value != 0 {
				score += row[featureIdx] * value
			}
		}
		scores[classIdx] = score
		if score > scores[best] {
			best = classIdx
		}
	}

	prediction := domain.Prediction{Label: c.classes[best]}
	if c.probability {
		prediction.Probability = softmaxMax(scores, best)
		prediction.HasProbability = true
	}
	return prediction, nil
}

// softmaxMax computes the softmax probability of the entry at argmax,
// shifted by the max score for numeric stability.
func softmaxMax(scores []float64, best int) float64 {
	maxScore := scores[best]
	var sum float64
	for _, score := range scores {
		sum += math.Exp(score - maxScore)
	}
	if sum == 0 || math.IsNaN(sum) || math.IsInf(sum, 0) {
		return 0
	}
	return 1.0 / sum
}
