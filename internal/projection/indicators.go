package projection

// Indicator is the discrete visual bucket a parameter value falls into.
type Indicator string

// Weight indicators.
const (
	WeightHigh        Indicator = "high"
	WeightAboveNormal Indicator = "above-normal"
	WeightNormal      Indicator = "normal"
	WeightBelowNormal Indicator = "below-normal"
	WeightLow         Indicator = "low"
)

// Bias indicators.
const (
	BiasStrongPositive Indicator = "strong-positive"
	BiasSlightPositive Indicator = "slight-positive"
	BiasNeutral        Indicator = "neutral"
	BiasSlightNegative Indicator = "slight-negative"
	BiasStrongNegative Indicator = "strong-negative"
)

// WeightIndicator buckets a weight value for parameter display.
func WeightIndicator(weight float64) Indicator {
	switch {
	case weight > 1.2:
		return WeightHigh
	case weight > 1.0:
		return WeightAboveNormal
	case weight == 1.0:
		return WeightNormal
	case weight > 0.5:
		return WeightBelowNormal
	default:
		return WeightLow
	}
}

// BiasIndicator buckets a bias value for parameter display.
func BiasIndicator(bias float64) Indicator {
	switch {
	case bias > 0.5:
		return BiasStrongPositive
	case bias > 0:
		return BiasSlightPositive
	case bias == 0:
		return BiasNeutral
	case bias > -0.5:
		return BiasSlightNegative
	default:
		return BiasStrongNegative
	}
}
