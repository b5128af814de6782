package dataset

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strconv"
)

// Subsample is a deterministic concept subset of a geometry, with concept
// indices remapped to a dense space and group membership preserved.
type Subsample struct {
	// SelectedConcepts are the surviving original concept indices, sorted.
	SelectedConcepts []int

	// NumConcepts is the subsampled concept count.
	NumConcepts int

	// ConceptGroups maps surviving operand indices to remapped concept
	// indices.
	ConceptGroups map[int][]int
}

// SubsampleOptions controls concept subsampling.
type SubsampleOptions struct {
	// Percent is the fraction of groups or concepts to keep (0, 1].
	Percent float64

	// Groups selects at group granularity instead of concept granularity.
	Groups bool

	// Seed drives the selection permutation.
	Seed int64

	// RootDir, when set, persists the selection so re-runs reuse it.
	RootDir string

	// Rerun forces a fresh selection even when a persisted one exists.
	Rerun bool
}

// Subsample selects a deterministic subset of the geometry's concepts.
// The selection is persisted under RootDir and reused on later calls with
// the same parameters unless Rerun is set.
func (g *Geometry) Subsample(opts SubsampleOptions) (*Subsample, error) {
	if opts.Percent <= 0 || opts.Percent > 1 {
		return nil, fmt.Errorf("sampling_percent must be in (0, 1], got %v", opts.Percent)
	}
	if opts.Percent == 1 {
		return g.fullSelection(), nil
	}

	var selected []int
	var err error
	if opts.Groups {
		selected, err = g.selectByGroup(opts)
	} else {
		selected, err = g.selectByConcept(opts)
	}
	if err != nil {
		return nil, err
	}

	return g.remap(selected), nil
}

// fullSelection keeps every concept with identity remapping.
func (g *Geometry) fullSelection() *Subsample {
	selected := make([]int, g.NumConcepts)
	for i := range selected {
		selected[i] = i
	}
	return g.remap(selected)
}

func (g *Geometry) selectByGroup(opts SubsampleOptions) ([]int, error) {
	numGroups := g.NumGroups()
	keep := int(math.Ceil(float64(numGroups) * opts.Percent))

	file := selectionFile(opts.RootDir, "selected_groups", opts.Percent, g.NumOperands)
	groups, err := loadOrPick(file, opts.Rerun, numGroups, keep, opts.Seed)
	if err != nil {
		return nil, err
	}

	// Expand the chosen groups to their concepts, in sorted group order.
	set := map[int]bool{}
	for _, groupIdx := range groups {
		for _, c := range g.ConceptGroups[groupIdx] {
			set[c] = true
		}
	}
	return sortedKeys(set), nil
}

func (g *Geometry) selectByConcept(opts SubsampleOptions) ([]int, error) {
	keep := int(math.Ceil(float64(g.NumConcepts) * opts.Percent))

	file := selectionFile(opts.RootDir, "selected_concepts", opts.Percent, g.NumOperands)
	return loadOrPick(file, opts.Rerun, g.NumConcepts, keep, opts.Seed)
}

// remap builds the dense remapping of a sorted concept selection,
// keeping surviving concepts of one group together.
func (g *Geometry) remap(selected []int) *Subsample {
	remap := make(map[int]int, len(selected))
	for dense, orig := range selected {
		remap[orig] = dense
	}

	groups := make(map[int][]int)
	for operand, concepts := range g.ConceptGroups {
		var kept []int
		for _, c := range concepts {
			if dense, ok := remap[c]; ok {
				kept = append(kept, dense)
			}
		}
		if len(kept) > 0 {
			groups[operand] = kept
		}
	}

	return &Subsample{
		SelectedConcepts: selected,
		NumConcepts:      len(selected),
		ConceptGroups:    groups,
	}
}

// loadOrPick returns the persisted selection when present, otherwise draws
// a fresh seeded permutation prefix and persists it.
func loadOrPick(file string, rerun bool, population, keep int, seed int64) ([]int, error) {
	if file != "" && !rerun {
		if selected, err := readSelection(file); err == nil {
			return selected, nil
		} else if !os.IsNotExist(err) {
			return nil, err
		}
	}

	rng := rand.New(rand.NewSource(seed))
	perm := rng.Perm(population)
	selected := append([]int(nil), perm[:keep]...)
	sort.Ints(selected)

	if file != "" {
		if err := writeSelection(file, selected); err != nil {
			return nil, err
		}
	}
	return selected, nil
}

func selectionFile(rootDir, kind string, percent float64, numOperands int) string {
	if rootDir == "" {
		return ""
	}
	name := fmt.Sprintf("%s_sampling_%s_operands_%d.json",
		kind, strconv.FormatFloat(percent, 'g', -1, 64), numOperands)
	return filepath.Join(rootDir, name)
}

func readSelection(file string) ([]int, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	var selected []int
	if err := json.Unmarshal(data, &selected); err != nil {
		return nil, fmt.Errorf("parsing selection file %s: %w", file, err)
	}
	return selected, nil
}

func writeSelection(file string, selected []int) error {
	data, err := json.Marshal(selected)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return err
	}
	return os.WriteFile(file, data, 0o644)
}

func sortedKeys(set map[int]bool) []int {
	out := make([]int, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}
