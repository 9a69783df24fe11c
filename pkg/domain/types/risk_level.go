package types

// RiskLevel is a bounded numeric risk level. The catalog uses a closed
// 1.0-10.0 scale; multiplier application clamps to the bounds and never
// produces a value outside them.
type RiskLevel float64

const (
	// MinRiskLevel is the lower bound of the risk level scale
	MinRiskLevel RiskLevel = 1.0
	// MaxRiskLevel is the upper bound of the risk level scale
	MaxRiskLevel RiskLevel = 10.0
)

// Clamp pins the level to the [MinRiskLevel, MaxRiskLevel] scale
func (l RiskLevel) Clamp() RiskLevel {
	if l < MinRiskLevel {
		return MinRiskLevel
	}
	if l > MaxRiskLevel {
		return MaxRiskLevel
	}
	return l
}

// Valid reports whether the level is already inside the scale bounds
func (l RiskLevel) Valid() bool {
	return l >= MinRiskLevel && l <= MaxRiskLevel
}
