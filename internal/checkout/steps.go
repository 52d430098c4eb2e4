package checkout

// StepKind names the content of one builder step. The set is closed; step
// indexes are resolved against it at runtime.
type StepKind string

const (
	StepWeight      StepKind = "weight"
	StepArrangement StepKind = "arrangement"
	StepShells      StepKind = "shells"
	StepFinish      StepKind = "finish"
	StepPieces      StepKind = "pieces"
	StepFilling     StepKind = "filling"
	StepPayment     StepKind = "payment"
	StepSummary     StepKind = "summary"
	StepNone        StepKind = ""
)

// Arrangement is whether an egg has one uniform shell or two independently
// configured halves.
type Arrangement string

const (
	ArrangementSingle Arrangement = "single"
	ArrangementDual   Arrangement = "dual"
)

// Finish is how a shell half is completed.
type Finish string

const (
	FinishPieces Finish = "pieces"
	FinishFilled Finish = "filled"
)

// ShellConfig is the configuration of one shell half. Topping applies when
// Finish is pieces, Filling when it is filled.
type ShellConfig struct {
	Shell   string `json:"shell"`
	Finish  Finish `json:"finish"`
	Topping string `json:"topping,omitempty"`
	Filling string `json:"filling,omitempty"`
}

// Selections is everything the builder has accumulated so far. Shells holds
// exactly one entry for a single arrangement and two for dual.
type Selections struct {
	WeightGrams int           `json:"weightGrams"`
	Weight      string        `json:"weight"`
	Arrangement Arrangement   `json:"arrangement"`
	Shells      []ShellConfig `json:"shells"`
}

func (s Selections) needsPieces() bool {
	for _, sh := range s.Shells {
		if sh.Finish == FinishPieces {
			return true
		}
	}
	return false
}

func (s Selections) needsFilling() bool {
	for _, sh := range s.Shells {
		if sh.Finish == FinishFilled {
			return true
		}
	}
	return false
}

// TotalSteps computes how many steps the builder currently has: the six
// fixed ones plus a pieces step and a filling step when any half calls for
// them.
func TotalSteps(s Selections) int {
	n := 6
	if s.needsPieces() {
		n++
	}
	if s.needsFilling() {
		n++
	}
	return n
}

// ResolveStep maps a 1-based step index onto its content given the current
// selections. Indexes outside the live range resolve to StepNone.
func ResolveStep(index int, s Selections) StepKind {
	switch index {
	case 1:
		return StepWeight
	case 2:
		return StepArrangement
	case 3:
		return StepShells
	case 4:
		return StepFinish
	}

	next := 5
	if s.needsPieces() {
		if index == next {
			return StepPieces
		}
		next++
	}
	if s.needsFilling() {
		if index == next {
			return StepFilling
		}
		next++
	}
	if index == next {
		return StepPayment
	}
	if index == next+1 {
		return StepSummary
	}
	return StepNone
}
