package domain

import "testing"

func TestClassifyByEvents(t *testing.T) {
	classInstances := map[string][]string{
		"genuine": {"meeting tomorrow morning", "schedule the meeting", "notes from the meeting"},
		"spam":    {"buy viagra", "buy cheap pills", "viagra discount buy now"},
	}

	tests := []struct {
		instance string
		want     string
	}{
		{"let's schedule a meeting", "genuine"},
		{"buy viagra today", "spam"},
		{"meeting notes", "genuine"},
	}

	for _, tt := range tests {
		t.Run(tt.instance, func(t *testing.T) {
			label, ok := ClassifyByEvents(tt.instance, classInstances, nil)
			if !ok || label != tt.want {
				t.Errorf("ClassifyByEvents = %q, %v, want %q", label, ok, tt.want)
			}
		})
	}
}

func TestClassifyByEvents_OnlyUnknownEvents(t *testing.T) {
	classInstances := map[string][]string{
		"a": {"left"},
		"b": {"right"},
	}

	// Nothing in the instance was ever seen in training; the uniform prior
	// survives and the tie resolves to the earliest (sorted) class.
	label, ok := ClassifyByEvents("unrelated words entirely", classInstances, nil)
	if !ok || label != "a" {
		t.Errorf("ClassifyByEvents = %q, %v, want \"a\" on untouched prior", label, ok)
	}
}

func TestClassifyByGaussianFeatures(t *testing.T) {
	classPopulations := map[string][]Features{
		"adult": {
			{"height": 180, "weight": 80},
			{"height": 175, "weight": 70},
			{"height": 185, "weight": 90},
		},
		"child": {
			{"height": 100, "weight": 20},
			{"height": 110, "weight": 25},
			{"height": 105, "weight": 22},
		},
	}

	tests := []struct {
		name     string
		instance Features
		want     string
	}{
		{"tall and heavy", Features{"height": 178, "weight": 82}, "adult"},
		{"short and light", Features{"height": 102, "weight": 21}, "child"},
		{"single feature", Features{"height": 108}, "child"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			label, ok, err := ClassifyByGaussianFeatures(tt.instance, classPopulations)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !ok || label != tt.want {
				t.Errorf("ClassifyByGaussianFeatures = %q, %v, want %q", label, ok, tt.want)
			}
		})
	}
}

func TestClassifyByGaussianFeatures_UnknownFeatureSkipped(t *testing.T) {
	classPopulations := map[string][]Features{
		"adult": {{"height": 180}, {"height": 175}},
		"child": {{"height": 100}, {"height": 110}},
	}

	label, ok, err := ClassifyByGaussianFeatures(Features{"height": 178, "shoe": 44}, classPopulations)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok || label != "adult" {
		t.Errorf("ClassifyByGaussianFeatures = %q, %v, want \"adult\"", label, ok)
	}
}

func TestClassifyByGaussianFeatures_DegenerateCollapse(t *testing.T) {
	// Both classes collapse to single-point distributions away from the
	// sample, so every likelihood is zero and no label can be returned.
	classPopulations := map[string][]Features{
		"a": {{"x": 1}, {"x": 1}},
		"b": {{"x": 2}, {"x": 2}},
	}

	label, ok, err := ClassifyByGaussianFeatures(Features{"x": 3}, classPopulations)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok || label != "" {
		t.Errorf("ClassifyByGaussianFeatures = %q, %v, want none", label, ok)
	}
}

func TestClassifyByGaussianFeatures_PropagatesEstimationError(t *testing.T) {
	classPopulations := map[string][]Features{
		"a": {{"x": 1}},
		"b": {{"x": 2}, {"x": 3}},
	}

	_, _, err := ClassifyByGaussianFeatures(Features{"x": 2}, classPopulations)
	if err == nil {
		t.Fatal("expected error for single-sample class, got nil")
	}
}
