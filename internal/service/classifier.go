package service

import (
	"errors"
	"fmt"

	"github.com/credalab/credence/internal/domain"
	"go.uber.org/zap"
)

var (
	ErrNoClasses  = errors.New("at least one class with training instances is required")
	ErrNoInstance = errors.New("an instance to classify is required")
)

// Classification is the outcome of classifying one instance: the winning
// label (empty when no label cleared the cutoff) and the posterior
// probability per class.
type Classification struct {
	Label      string             `json:"label"`
	Classified bool               `json:"classified"`
	Posterior  map[string]float64 `json:"posterior"`
}

// ClassifierService runs the naive classifiers for callers that want
// validation, logging and a posterior report around the core functions.
type ClassifierService struct {
	logger *zap.Logger

	// Cutoff is the minimum posterior probability the winning label must
	// strictly exceed. Zero accepts any winner.
	Cutoff float64
}

func NewClassifierService(logger *zap.Logger) *ClassifierService {
	return &ClassifierService{logger: logger}
}

// ClassifyEvents classifies a discrete-event instance (text, by default
// whitespace-tokenized) against labeled training instances.
func (s *ClassifierService) ClassifyEvents(instance string, classes map[string][]string) (*Classification, error) {
	if instance == "" {
		return nil, ErrNoInstance
	}
	if len(classes) == 0 {
		return nil, ErrNoClasses
	}

	belief, err := domain.EventPosterior(instance, classes, nil)
	if err != nil {
		return nil, fmt.Errorf("update belief: %w", err)
	}

	result := s.report(belief)
	s.logger.Debug("classified by events",
		zap.String("label", result.Label),
		zap.Bool("classified", result.Classified),
		zap.Int("classes", len(classes)))
	return result, nil
}

// ClassifyGaussian classifies a feature record against per-class Gaussian
// distributions fitted from the training populations.
func (s *ClassifierService) ClassifyGaussian(instance domain.Features, classes map[string][]domain.Features) (*Classification, error) {
	if len(instance) == 0 {
		return nil, ErrNoInstance
	}
	if len(classes) == 0 {
		return nil, ErrNoClasses
	}

	belief, err := domain.GaussianPosterior(instance, classes)
	if err != nil {
		if errors.Is(err, domain.ErrDegenerateDistribution) {
			s.logger.Debug("gaussian belief collapsed", zap.Int("features", len(instance)))
			return &Classification{Posterior: map[string]float64{}}, nil
		}
		return nil, err
	}

	result := s.report(belief)
	s.logger.Debug("classified by gaussian features",
		zap.String("label", result.Label),
		zap.Int("features", len(instance)),
		zap.Int("classes", len(classes)))
	return result, nil
}

// EvaluateBelief applies a sequence of observed events to a caller-supplied
// prior, using the caller's event odds table, and reports the posterior.
func (s *ClassifierService) EvaluateBelief(prior domain.Table, events []string, odds domain.EventOdds) (*Classification, error) {
	if len(prior) == 0 {
		return nil, ErrNoClasses
	}

	belief := domain.NewBeliefFromMap(prior)
	if err := belief.UpdateFromEvents(events, odds); err != nil {
		return nil, fmt.Errorf("update belief: %w", err)
	}

	result := s.report(belief)
	s.logger.Debug("evaluated belief",
		zap.String("label", result.Label),
		zap.Int("events", len(events)))
	return result, nil
}

// report renders the belief as a Classification against the service cutoff.
func (s *ClassifierService) report(belief *domain.BeliefVector) *Classification {
	result := &Classification{Posterior: make(map[string]float64, belief.Len())}

	normalized, err := belief.Normalized()
	if err != nil {
		// All-zero odds: no posterior, no winner.
		for _, label := range belief.Labels() {
			result.Posterior[label] = 0
		}
		return result
	}
	for _, label := range normalized.Labels() {
		p, _ := normalized.AtLabel(label)
		result.Posterior[label] = p
	}
	result.Label, result.Classified = belief.MostLikely(s.Cutoff)
	return result
}
