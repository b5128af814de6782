// Package dataset derives the geometry a dataset configuration implies:
// operand digit lists, concept groups, concept and task counts, and the
// intervention schedule. It is pure config arithmetic; no data is loaded.
package dataset

import (
	"fmt"

	"github.com/conceptlab/cemctl/internal/experiment"
)

// Geometry is everything the trainer derives from a dataset config before
// touching data.
type Geometry struct {
	// NumOperands is the number of digit operands per sample.
	NumOperands int

	// SelectedDigits holds the allowed digit list per operand.
	SelectedDigits [][]int

	// NumConcepts is the total concept count across operands.
	NumConcepts int

	// NumTasks is the label cardinality of the downstream task.
	NumTasks int

	// ConceptGroups maps each operand index to its concept indices.
	ConceptGroups map[int][]int
}

// Derive computes the geometry for a dataset configuration.
//
// Each operand contributes one concept group. An operand allowing more than
// two digits contributes a one-hot concept per digit; otherwise a single
// binary concept. even_concepts collapses every operand to one parity
// concept. The task count is one plus the sum of per-operand max digits
// (zero is always a possible sum), forced to a single binary task by
// even_labels or threshold_labels.
func Derive(ds experiment.DatasetConfig) (*Geometry, error) {
	numOperands := ds.NumOperands
	if numOperands == 0 {
		numOperands = experiment.DefaultNumOperands
	}

	digits, err := ds.SelectedDigits.Normalize(numOperands)
	if err != nil {
		return nil, err
	}

	g := &Geometry{
		NumOperands:    numOperands,
		SelectedDigits: digits,
		ConceptGroups:  make(map[int][]int, numOperands),
	}

	if ds.EvenConcepts {
		g.NumConcepts = numOperands
		for i := 0; i < numOperands; i++ {
			g.ConceptGroups[i] = []int{i}
		}
	} else {
		next := 0
		for operand, operandDigits := range digits {
			if len(operandDigits) == 0 {
				return nil, fmt.Errorf("operand %d has an empty digit list", operand)
			}
			count := 1
			if len(operandDigits) > 2 {
				count = len(operandDigits)
			}
			group := make([]int, count)
			for j := range group {
				group[j] = next + j
			}
			g.ConceptGroups[operand] = group
			next += count
		}
		g.NumConcepts = next
	}

	// Zero is always included as a possible sum.
	tasks := 1
	for _, operandDigits := range digits {
		tasks += maxDigit(operandDigits)
	}
	if ds.EvenLabels || ds.ThresholdLabels != nil {
		tasks = 1
	}
	g.NumTasks = tasks

	return g, nil
}

func maxDigit(digits []int) int {
	max := 0
	for _, d := range digits {
		if d > max {
			max = d
		}
	}
	return max
}

// NumGroups returns the number of concept groups.
func (g *Geometry) NumGroups() int {
	return len(g.ConceptGroups)
}

// InterventionSchedule returns the intervened-group counts 0..NumGroups
// stepped by freq. With no group structure the schedule falls back to
// concept granularity.
func (g *Geometry) InterventionSchedule(freq int) []int {
	if freq < 1 {
		freq = experiment.DefaultInterventionFreq
	}

	limit := g.NumGroups()
	if limit == 0 {
		limit = g.NumConcepts
	}

	var schedule []int
	for n := 0; n <= limit; n += freq {
		schedule = append(schedule, n)
	}
	return schedule
}
