package game

// Outcome is the variable state after evaluating rules for one answer.
type Outcome struct {
	Vars  map[string]float64 `json:"vars"`
	Lost  bool               `json:"lost"`
	Fired []string           `json:"fired,omitempty"`
}

// InitialVars returns the starting value of every declared variable.
func InitialVars(vars []Variable) map[string]float64 {
	out := make(map[string]float64, len(vars))
	for _, v := range vars {
		out[v.ID] = v.Initial
	}
	return out
}

// Evaluate applies rules matching trigger in declaration order. A rule fires
// when all of its conditions hold against the state left by earlier rules.
// A LOSE effect ends evaluation. vars is not modified.
func Evaluate(rules []Rule, trigger Trigger, vars map[string]float64) Outcome {
	state := make(map[string]float64, len(vars))
	for k, v := range vars {
		state[k] = v
	}
	out := Outcome{Vars: state}
	for _, r := range rules {
		if r.On != trigger || !r.holds(state) {
			continue
		}
		out.Fired = append(out.Fired, r.ID)
		for _, e := range r.Then {
			switch e.Type {
			case EffectIncVar:
				state[e.VariableID] += e.Amount
			case EffectDecVar:
				state[e.VariableID] -= e.Amount
			case EffectLose:
				out.Lost = true
				return out
			}
		}
	}
	return out
}

func (r Rule) holds(vars map[string]float64) bool {
	for _, c := range r.If {
		if !c.Holds(vars) {
			return false
		}
	}
	return true
}

// Holds reports whether the condition is true for vars. Unknown operators
// never hold.
func (c Condition) Holds(vars map[string]float64) bool {
	v := vars[c.VariableID]
	switch c.Op {
	case OpEq:
		return v == c.Value
	case OpNeq:
		return v != c.Value
	case OpLt:
		return v < c.Value
	case OpLte:
		return v <= c.Value
	case OpGt:
		return v > c.Value
	case OpGte:
		return v >= c.Value
	}
	return false
}

func (o Op) valid() bool {
	switch o {
	case OpEq, OpNeq, OpLt, OpLte, OpGt, OpGte:
		return true
	}
	return false
}
