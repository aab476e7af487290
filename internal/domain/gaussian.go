package domain

import (
	"errors"
	"fmt"
	"math"
)

var ErrInsufficientSamples = errors.New("at least two samples are required")

// Distribution is a Gaussian (normal) distribution estimated from samples.
type Distribution struct {
	Mean     float64
	Variance float64
}

// Features is one training or query record: feature name to observed value.
type Features map[string]float64

// EstimateDistribution fits a Distribution to the given samples using the
// unbiased (n-1) variance estimator. Fewer than two samples leave the
// variance undefined and return ErrInsufficientSamples.
func EstimateDistribution(values []float64) (Distribution, error) {
	if len(values) < 2 {
		return Distribution{}, fmt.Errorf("%d samples: %w", len(values), ErrInsufficientSamples)
	}
	n := float64(len(values))
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / n
	var ss float64
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	return Distribution{Mean: mean, Variance: ss / (n - 1)}, nil
}

// Likelihood returns the Gaussian density of sample under the distribution.
// A zero variance means the distribution collapsed to a single observed
// value: the likelihood is 1 exactly at the mean and 0 everywhere else.
func (d Distribution) Likelihood(sample float64) float64 {
	if d.Variance == 0 {
		if sample == d.Mean {
			return 1
		}
		return 0
	}
	diff := sample - d.Mean
	return math.Exp(diff*diff/(-2*d.Variance)) / math.Sqrt(2*math.Pi*d.Variance)
}

// FeatureDistributions groups every observed value of each feature within
// each class and fits a Distribution per (feature, class) pair:
// {class: [{feature: value}]} becomes {feature: {class: distribution}}.
func FeatureDistributions(classPopulations map[string][]Features) (map[string]map[string]Distribution, error) {
	out := make(map[string]map[string]Distribution)
	for class, population := range classPopulations {
		values := make(map[string][]float64)
		for _, record := range population {
			for feature, value := range record {
				values[feature] = append(values[feature], value)
			}
		}
		for feature, samples := range values {
			dist, err := EstimateDistribution(samples)
			if err != nil {
				return nil, fmt.Errorf("feature %q of class %q: %w", feature, class, err)
			}
			if out[feature] == nil {
				out[feature] = make(map[string]Distribution)
			}
			out[feature][class] = dist
		}
	}
	return out, nil
}
