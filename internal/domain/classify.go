package domain

import (
	"errors"
	"fmt"
	"sort"
)

// ClassLabels returns the class names of a training set in sorted order,
// the label order every classifier prior uses.
func ClassLabels[T any](classes map[string][]T) []string {
	labels := make([]string, 0, len(classes))
	for class := range classes {
		labels = append(labels, class)
	}
	sort.Strings(labels)
	return labels
}

// NewUniformBelief builds a prior with weight 1 for every label.
func NewUniformBelief(labels []string) (*BeliefVector, error) {
	odds := make([]float64, len(labels))
	for i := range odds {
		odds[i] = 1
	}
	return NewLabeledBelief(labels, odds)
}

// EventPosterior learns event odds from classInstances, starts from a
// uniform prior over the (sorted) classes and updates it with the events
// extracted from instance. A nil extractor means Tokenize.
func EventPosterior(instance string, classInstances map[string][]string, extractor Extractor) (*BeliefVector, error) {
	if extractor == nil {
		extractor = Tokenize
	}
	table := ExtractEventOdds(classInstances, extractor)
	belief, err := NewUniformBelief(ClassLabels(classInstances))
	if err != nil {
		return nil, err
	}
	if err := belief.UpdateFromEvents(extractor(instance), table); err != nil {
		return nil, err
	}
	return belief, nil
}

// ClassifyByEvents classifies instance into one of the classes of
// classInstances, learning event odds from the instances already in each
// class. A nil extractor means Tokenize. The second return is false only
// when no class can be told apart, which with smoothed odds requires the
// belief to collapse entirely.
func ClassifyByEvents(instance string, classInstances map[string][]string, extractor Extractor) (string, bool) {
	belief, err := EventPosterior(instance, classInstances, extractor)
	if err != nil {
		return "", false
	}
	return belief.MostLikely(0)
}

// GaussianPosterior fits per-class Gaussian distributions from
// classPopulations and updates a uniform prior with the per-class densities
// of each instance feature, in sorted feature order. Features with no fitted
// distribution carry no information and are skipped. A belief collapsed by a
// zero-density feature is returned as ErrDegenerateDistribution.
func GaussianPosterior(instance Features, classPopulations map[string][]Features) (*BeliefVector, error) {
	distributions, err := FeatureDistributions(classPopulations)
	if err != nil {
		return nil, err
	}
	belief, err := NewUniformBelief(ClassLabels(classPopulations))
	if err != nil {
		return nil, err
	}

	features := make([]string, 0, len(instance))
	for feature := range instance {
		features = append(features, feature)
	}
	sort.Strings(features)

	for _, feature := range features {
		classDists, ok := distributions[feature]
		if !ok {
			continue
		}
		row := make(Table, len(classDists))
		for class, dist := range classDists {
			row[class] = dist.Likelihood(instance[feature])
		}
		if err := belief.Update(row); err != nil {
			return nil, fmt.Errorf("feature %q: %w", feature, err)
		}
	}
	return belief, nil
}

// ClassifyByGaussianFeatures classifies instance against the per-class
// Gaussian distributions fitted from classPopulations. The boolean return is
// false when every class's likelihood vanished.
func ClassifyByGaussianFeatures(instance Features, classPopulations map[string][]Features) (string, bool, error) {
	belief, err := GaussianPosterior(instance, classPopulations)
	if err != nil {
		if errors.Is(err, ErrDegenerateDistribution) {
			return "", false, nil
		}
		return "", false, err
	}
	label, ok := belief.MostLikely(0)
	return label, ok, nil
}
