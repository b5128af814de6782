package intervention

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conceptlab/cemctl/internal/experiment"
)

func TestLookup(t *testing.T) {
	p, ok := Lookup("random")
	require.True(t, ok)
	assert.Equal(t, "random", p.Name)
	assert.True(t, p.GroupLevelDefault)
	assert.False(t, p.UsePriorDefault)

	_, ok = Lookup("made_up")
	assert.False(t, ok)
}

func TestKnownIsSorted(t *testing.T) {
	names := Known()
	assert.True(t, sort.StringsAreSorted(names))
	assert.Contains(t, names, "coop")
	assert.Contains(t, names, "behavioural_cloning")
	assert.Contains(t, names, "intcem_policy")
	assert.Len(t, names, 7)
}

func TestGlobalPoliciesDefaultToPrior(t *testing.T) {
	for _, name := range []string{"global_val_error", "global_val_improvement"} {
		p, ok := Lookup(name)
		require.True(t, ok, name)
		assert.True(t, p.UsePriorDefault, name)
	}
}

func TestApplyDefaults(t *testing.T) {
	desc := ApplyDefaults(experiment.PolicyDescriptor{Policy: "global_val_error"})
	require.NotNil(t, desc.GroupLevel)
	require.NotNil(t, desc.UsePrior)
	assert.True(t, *desc.GroupLevel)
	assert.True(t, *desc.UsePrior)
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	f := false
	desc := ApplyDefaults(experiment.PolicyDescriptor{
		Policy:     "random",
		GroupLevel: &f,
	})
	assert.False(t, *desc.GroupLevel)
	assert.False(t, *desc.UsePrior)
}

func TestApplyDefaultsUnknownPolicy(t *testing.T) {
	desc := ApplyDefaults(experiment.PolicyDescriptor{Policy: "mystery"})
	require.NotNil(t, desc.GroupLevel)
	assert.True(t, *desc.GroupLevel)
	assert.False(t, *desc.UsePrior)
}

func TestValidateDescriptorsUnknownPolicy(t *testing.T) {
	f := false
	ic := experiment.InterventionConfig{
		Policies: []experiment.PolicyDescriptor{
			{Policy: "made_up", GroupLevel: &f, UsePrior: &f},
		},
	}

	errs, warnings := ValidateDescriptors(ic)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "made_up")
	assert.Empty(t, warnings)
}

func TestValidateDescriptorsCompetenceWarning(t *testing.T) {
	f := false
	ic := experiment.InterventionConfig{
		Policies: []experiment.PolicyDescriptor{
			{Policy: "coop", GroupLevel: &f, UsePrior: &f},
		},
	}

	errs, warnings := ValidateDescriptors(ic)
	assert.Empty(t, errs)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "competence")
}

func TestValidateDescriptorsCompetencePresent(t *testing.T) {
	f := false
	ic := experiment.InterventionConfig{
		CompetenceLevels: []float64{1, 0.5},
		Policies: []experiment.PolicyDescriptor{
			{Policy: "coop", GroupLevel: &f, UsePrior: &f},
		},
	}

	errs, warnings := ValidateDescriptors(ic)
	assert.Empty(t, errs)
	assert.Empty(t, warnings)
}

func TestValidateDescriptorsSkipsEmptyName(t *testing.T) {
	ic := experiment.InterventionConfig{
		Policies: []experiment.PolicyDescriptor{{Policy: ""}},
	}

	errs, warnings := ValidateDescriptors(ic)
	assert.Empty(t, errs)
	assert.Empty(t, warnings)
}
