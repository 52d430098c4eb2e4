package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func dualSelections(first, second Finish) Selections {
	return Selections{
		WeightGrams: 500,
		Weight:      "500g",
		Arrangement: ArrangementDual,
		Shells: []ShellConfig{
			{Shell: "Ao Leite", Finish: first},
			{Shell: "Branco", Finish: second},
		},
	}
}

func TestTotalStepsAllCombinations(t *testing.T) {
	tests := []struct {
		name string
		sel  Selections
		want int
	}{
		{"no finish chosen yet", Selections{}, 6},
		{"only pieces", dualSelections(FinishPieces, FinishPieces), 7},
		{"only filling", dualSelections(FinishFilled, FinishFilled), 7},
		{"pieces and filling", dualSelections(FinishPieces, FinishFilled), 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TotalSteps(tt.sel))
		})
	}
}

func TestResolveStepMixedDualSequence(t *testing.T) {
	// Half 1 with pieces, half 2 filled: the full eight-step path.
	sel := dualSelections(FinishPieces, FinishFilled)

	want := []StepKind{
		StepWeight,
		StepArrangement,
		StepShells,
		StepFinish,
		StepPieces,
		StepFilling,
		StepPayment,
		StepSummary,
	}
	for i, kind := range want {
		assert.Equalf(t, kind, ResolveStep(i+1, sel), "step %d", i+1)
	}
	assert.Equal(t, StepNone, ResolveStep(9, sel))
	assert.Equal(t, StepNone, ResolveStep(0, sel))
}

func TestResolveStepSkipsPiecesWhenAllFilled(t *testing.T) {
	sel := dualSelections(FinishFilled, FinishFilled)

	assert.Equal(t, StepFilling, ResolveStep(5, sel))
	assert.Equal(t, StepPayment, ResolveStep(6, sel))
	assert.Equal(t, StepSummary, ResolveStep(7, sel))
	assert.Equal(t, StepNone, ResolveStep(8, sel))
}

func TestResolveStepSkipsFillingWhenAllPieces(t *testing.T) {
	sel := dualSelections(FinishPieces, FinishPieces)

	assert.Equal(t, StepPieces, ResolveStep(5, sel))
	assert.Equal(t, StepPayment, ResolveStep(6, sel))
	assert.Equal(t, StepSummary, ResolveStep(7, sel))
}

func TestResolveStepConsistentWithTotalSteps(t *testing.T) {
	combos := []Selections{
		dualSelections(FinishPieces, FinishPieces),
		dualSelections(FinishFilled, FinishFilled),
		dualSelections(FinishPieces, FinishFilled),
		{WeightGrams: 350, Arrangement: ArrangementSingle, Shells: []ShellConfig{{Shell: "Ao Leite", Finish: FinishFilled}}},
	}
	for _, sel := range combos {
		total := TotalSteps(sel)
		assert.Equal(t, StepSummary, ResolveStep(total, sel))
		assert.Equal(t, StepPayment, ResolveStep(total-1, sel))
		assert.Equal(t, StepNone, ResolveStep(total+1, sel))
	}
}
