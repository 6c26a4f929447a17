package nbr

// Combination represents an ultimate limit state load combination
type Combination struct {
	ID          string
	Description string
	// Partial factors for each action type
	Permanent float64 // G - permanent actions (self-weight, finishes)
	Variable  float64 // Q - variable imposed actions
	Wind      float64 // W - wind
}

// Normal ultimate combinations: γg·G + γq·(Q1 + Σψ0·Qj)
var Combinations = []Combination{
	{
		ID:          "1",
		Description: "1.4G + 1.4Q",
		Permanent:   1.4,
		Variable:    1.4,
	},
	{
		ID:          "2",
		Description: "1.4G + 1.4Q + 1.4(0.6W)",
		Permanent:   1.4,
		Variable:    1.4,
		Wind:        0.84,
	},
	{
		ID:          "3",
		Description: "1.4G + 1.4W + 1.4(0.5Q)",
		Permanent:   1.4,
		Variable:    0.7,
		Wind:        1.4,
	},
	{
		ID:          "4",
		Description: "1.0G + 1.4W",
		Permanent:   1.0,
		Wind:        1.4,
	},
}

// GravityCombinations covers members with no lateral action
var GravityCombinations = []Combination{
	{
		ID:          "1",
		Description: "1.4G + 1.4Q",
		Permanent:   1.4,
		Variable:    1.4,
	},
}

// Actions holds characteristic (unfactored) values of one effect by action type
type Actions struct {
	Permanent float64
	Variable  float64
	Wind      float64
}

// Total returns the unfactored sum
func (a Actions) Total() float64 {
	return a.Permanent + a.Variable + a.Wind
}

// Factored returns the design value of the effect for this combination
func (c Combination) Factored(a Actions) float64 {
	return c.Permanent*a.Permanent +
		c.Variable*a.Variable +
		c.Wind*a.Wind
}

// Governing finds the largest factored effect among the combinations.
// The returned factor is design/characteristic, usable as a single load factor.
func Governing(a Actions, combinations []Combination) (design float64, governing Combination, factor float64) {
	for i, combo := range combinations {
		v := combo.Factored(a)
		if i == 0 || v > design {
			design = v
			governing = combo
		}
	}
	if total := a.Total(); total != 0 {
		factor = design / total
	}
	return design, governing, factor
}
