package domain

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

var (
	ErrInvalidShape           = errors.New("labels and odds have different shapes")
	ErrUnknownLabel           = errors.New("unknown label")
	ErrIndexOutOfRange        = errors.New("position out of range")
	ErrDegenerateDistribution = errors.New("odds sum to zero")
	ErrLengthMismatch         = errors.New("sequence lengths do not match")
)

// LabelOdds is a single (label, odds) entry used by NewBeliefFromPairs.
type LabelOdds struct {
	Label string
	Odds  float64
}

// BeliefVector holds relative odds for a fixed, ordered set of labels.
// Odds are non-negative and need not sum to 1; Normalized turns them into
// proper probabilities. The label order is fixed at construction and drives
// positional alignment everywhere, including Cast.
type BeliefVector struct {
	labels []string
	index  map[string]int
	odds   []float64
}

// Odds is any value a belief vector can align to its own label order:
// Row (positional), Table (by label) or another *BeliefVector (positional).
type Odds interface {
	alignTo(b *BeliefVector) ([]float64, error)
}

// Row is a bare odds sequence, aligned positionally.
type Row []float64

func (r Row) alignTo(b *BeliefVector) ([]float64, error) {
	if len(r) != len(b.odds) {
		return nil, fmt.Errorf("row of %d odds against %d labels: %w", len(r), len(b.odds), ErrLengthMismatch)
	}
	out := make([]float64, len(r))
	copy(out, r)
	return out, nil
}

// Table maps labels to odds, aligned by the target vector's labels.
type Table map[string]float64

func (t Table) alignTo(b *BeliefVector) ([]float64, error) {
	out := make([]float64, len(b.labels))
	for i, label := range b.labels {
		v, ok := t[label]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownLabel, label)
		}
		out[i] = v
	}
	return out, nil
}

func (o *BeliefVector) alignTo(b *BeliefVector) ([]float64, error) {
	if len(o.odds) != len(b.odds) {
		return nil, fmt.Errorf("vector of %d odds against %d labels: %w", len(o.odds), len(b.odds), ErrLengthMismatch)
	}
	out := make([]float64, len(o.odds))
	copy(out, o.odds)
	return out, nil
}

// NewBelief creates a vector over the given odds. Labels default to the
// stringified positions "0", "1", ...
func NewBelief(odds []float64) *BeliefVector {
	labels := make([]string, len(odds))
	for i := range odds {
		labels[i] = strconv.Itoa(i)
	}
	b, _ := NewLabeledBelief(labels, odds)
	return b
}

// NewLabeledBelief creates a vector pairing labels[i] with odds[i].
// Returns ErrInvalidShape when the lengths differ or a label repeats.
func NewLabeledBelief(labels []string, odds []float64) (*BeliefVector, error) {
	if len(labels) != len(odds) {
		return nil, fmt.Errorf("%d labels for %d odds: %w", len(labels), len(odds), ErrInvalidShape)
	}
	index := make(map[string]int, len(labels))
	for i, label := range labels {
		if _, dup := index[label]; dup {
			return nil, fmt.Errorf("duplicate label %q: %w", label, ErrInvalidShape)
		}
		index[label] = i
	}
	b := &BeliefVector{
		labels: append([]string(nil), labels...),
		index:  index,
		odds:   append([]float64(nil), odds...),
	}
	return b, nil
}

// NewBeliefFromPairs creates a vector from ordered (label, odds) pairs.
func NewBeliefFromPairs(pairs []LabelOdds) (*BeliefVector, error) {
	labels := make([]string, len(pairs))
	odds := make([]float64, len(pairs))
	for i, p := range pairs {
		labels[i] = p.Label
		odds[i] = p.Odds
	}
	return NewLabeledBelief(labels, odds)
}

// NewBeliefFromMap creates a vector from a label-to-odds table. Labels are
// ordered by sorting the keys, the only deterministic order a Go map admits.
func NewBeliefFromMap(t Table) *BeliefVector {
	labels := make([]string, 0, len(t))
	for label := range t {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	odds := make([]float64, len(labels))
	for i, label := range labels {
		odds[i] = t[label]
	}
	b, _ := NewLabeledBelief(labels, odds)
	return b
}

// Clone returns an independent copy.
func (b *BeliefVector) Clone() *BeliefVector {
	c, _ := NewLabeledBelief(b.labels, b.odds)
	return c
}

// Len returns the number of labels.
func (b *BeliefVector) Len() int { return len(b.odds) }

// Labels returns the labels in insertion order.
func (b *BeliefVector) Labels() []string {
	return append([]string(nil), b.labels...)
}

// At returns the odds at position i.
func (b *BeliefVector) At(i int) (float64, error) {
	if i < 0 || i >= len(b.odds) {
		return 0, fmt.Errorf("position %d of %d: %w", i, len(b.odds), ErrIndexOutOfRange)
	}
	return b.odds[i], nil
}

// AtLabel returns the odds for the given label.
func (b *BeliefVector) AtLabel(label string) (float64, error) {
	i, ok := b.index[label]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownLabel, label)
	}
	return b.odds[i], nil
}

// Set replaces the odds at position i.
func (b *BeliefVector) Set(i int, odds float64) error {
	if i < 0 || i >= len(b.odds) {
		return fmt.Errorf("position %d of %d: %w", i, len(b.odds), ErrIndexOutOfRange)
	}
	b.odds[i] = odds
	return nil
}

// SetLabel replaces the odds for the given label.
func (b *BeliefVector) SetLabel(label string, odds float64) error {
	i, ok := b.index[label]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownLabel, label)
	}
	b.odds[i] = odds
	return nil
}

// Cast aligns o to this vector's labels and returns it as a new vector.
// Rows and foreign vectors align purely by position; callers must supply
// inputs already ordered like this vector's labels.
func (b *BeliefVector) Cast(o Odds) (*BeliefVector, error) {
	odds, err := o.alignTo(b)
	if err != nil {
		return nil, err
	}
	return &BeliefVector{labels: b.labels, index: b.index, odds: odds}, nil
}

// Opposite returns the complementary odds as a new vector: the reciprocal of
// every entry, unless any entry is exactly zero, in which case every zero
// becomes 1 and every non-zero becomes 0 (the whole vector flips at the
// boundary of certainty).
func (b *BeliefVector) Opposite() *BeliefVector {
	degenerate := false
	for _, v := range b.odds {
		if v == 0 {
			degenerate = true
			break
		}
	}
	odds := make([]float64, len(b.odds))
	for i, v := range b.odds {
		if degenerate {
			if v == 0 {
				odds[i] = 1
			}
		} else {
			odds[i] = 1 / v
		}
	}
	return &BeliefVector{labels: b.labels, index: b.index, odds: odds}
}

// Normalized returns a new vector whose odds sum to 1.
func (b *BeliefVector) Normalized() (*BeliefVector, error) {
	var sum float64
	for _, v := range b.odds {
		sum += v
	}
	if sum == 0 {
		return nil, ErrDegenerateDistribution
	}
	odds := make([]float64, len(b.odds))
	for i, v := range b.odds {
		odds[i] = v / sum
	}
	return &BeliefVector{labels: b.labels, index: b.index, odds: odds}, nil
}

// Multiply returns the elementwise product of this vector and o as a new,
// unnormalized vector keeping this vector's labels.
func (b *BeliefVector) Multiply(o Odds) (*BeliefVector, error) {
	other, err := o.alignTo(b)
	if err != nil {
		return nil, err
	}
	odds := make([]float64, len(b.odds))
	for i, v := range b.odds {
		odds[i] = v * other[i]
	}
	return &BeliefVector{labels: b.labels, index: b.index, odds: odds}, nil
}

// Divide multiplies this vector by the opposite of o, undoing a prior update.
func (b *BeliefVector) Divide(o Odds) (*BeliefVector, error) {
	other, err := b.Cast(o)
	if err != nil {
		return nil, err
	}
	return b.Multiply(other.Opposite())
}

// Update multiplies the vector by the event odds and renormalizes, in place.
// The vector is unchanged when an error is returned.
func (b *BeliefVector) Update(event Odds) error {
	product, err := b.Multiply(event)
	if err != nil {
		return err
	}
	normalized, err := product.Normalized()
	if err != nil {
		return err
	}
	b.odds = normalized.odds
	return nil
}

// UpdateRaw multiplies the vector by the event odds in place without
// normalizing, for callers that track raw odds magnitudes across updates.
func (b *BeliefVector) UpdateRaw(event Odds) error {
	product, err := b.Multiply(event)
	if err != nil {
		return err
	}
	b.odds = product.odds
	return nil
}

// UpdateFromEvents applies one normalizing Update per event, taking each
// event's odds row from table. Events missing from the table carry no
// information and are skipped.
func (b *BeliefVector) UpdateFromEvents(events []string, table EventOdds) error {
	for _, event := range events {
		row, ok := table[event]
		if !ok {
			continue
		}
		if err := b.Update(row); err != nil {
			return err
		}
	}
	return nil
}

// UpdateFromTests applies one update per binary test outcome: the odds row as
// given for a positive result, its opposite for a negative one. The two
// sequences must have equal lengths; mismatches fail rather than truncate.
func (b *BeliefVector) UpdateFromTests(results []bool, odds []Odds) error {
	if len(results) != len(odds) {
		return fmt.Errorf("%d results for %d odds rows: %w", len(results), len(odds), ErrLengthMismatch)
	}
	for i, result := range results {
		if result {
			if err := b.Update(odds[i]); err != nil {
				return err
			}
			continue
		}
		row, err := b.Cast(odds[i])
		if err != nil {
			return err
		}
		if err := b.Update(row.Opposite()); err != nil {
			return err
		}
	}
	return nil
}

// MostLikely returns the label with the highest normalized probability,
// breaking ties toward the earliest label. The second return is false when
// that probability does not exceed cutoff, or when every odd is zero.
func (b *BeliefVector) MostLikely(cutoff float64) (string, bool) {
	normalized, err := b.Normalized()
	if err != nil {
		return "", false
	}
	best := 0
	for i, v := range normalized.odds {
		if v > normalized.odds[best] {
			best = i
		}
	}
	if normalized.odds[best] <= cutoff {
		return "", false
	}
	return b.labels[best], true
}

// IsLikely reports whether label's normalized probability exceeds
// minimumProbability.
func (b *BeliefVector) IsLikely(label string, minimumProbability float64) (bool, error) {
	if _, ok := b.index[label]; !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownLabel, label)
	}
	normalized, err := b.Normalized()
	if err != nil {
		return false, err
	}
	p, _ := normalized.AtLabel(label)
	return p > minimumProbability, nil
}

// String renders the normalized probabilities as percentages, for diagnostics.
func (b *BeliefVector) String() string {
	normalized, err := b.Normalized()
	if err != nil {
		normalized = b
	}
	items := make([]string, len(b.labels))
	for i, label := range b.labels {
		items[i] = fmt.Sprintf("%s: %.2f%%", label, normalized.odds[i]*100)
	}
	return "Belief(" + strings.Join(items, ", ") + ")"
}
