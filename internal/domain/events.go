package domain

import "strings"

// SmoothingWeight is the default weight for an (event, class) pair that was
// never observed during training. It keeps unseen combinations from zeroing a
// class's odds outright.
const SmoothingWeight = 1e-6

// Extractor turns a raw instance into the ordered sequence of events it
// contains.
type Extractor func(instance string) []string

// Tokenize is the default extractor: whitespace-separated tokens.
func Tokenize(instance string) []string {
	return strings.Fields(instance)
}

// EventOdds maps each observed event to its per-class odds row. Rows produced
// by ExtractEventOdds always carry a positive weight for every known class.
type EventOdds map[string]Table

// ExtractEventOdds counts, per class, how often each event occurs across the
// class's training instances. Every (event, class) pair starts from
// SmoothingWeight so that an event unseen for some class still leaves that
// class possible. A nil extractor means Tokenize.
//
// The resulting table feeds BeliefVector.UpdateFromEvents.
func ExtractEventOdds(classInstances map[string][]string, extractor Extractor) EventOdds {
	if extractor == nil {
		extractor = Tokenize
	}
	classes := make([]string, 0, len(classInstances))
	for class := range classInstances {
		classes = append(classes, class)
	}

	table := make(EventOdds)
	for class, instances := range classInstances {
		for _, instance := range instances {
			for _, event := range extractor(instance) {
				row, ok := table[event]
				if !ok {
					row = make(Table, len(classes))
					for _, c := range classes {
						row[c] = SmoothingWeight
					}
					table[event] = row
				}
				row[class]++
			}
		}
	}
	return table
}
