package rating

// LegacyThresholds configures the superseded counting-based classification.
type LegacyThresholds struct {
	Optimal      int
	GoodDirect   int
	GoodCombined int
}

// DefaultLegacyThresholds returns the thresholds the old dashboards shipped
// with.
func DefaultLegacyThresholds() LegacyThresholds {
	return LegacyThresholds{Optimal: 8, GoodDirect: 5, GoodCombined: 8}
}

// LegacyBucket recomputes the legacy three-tier classification from raw
// Direct Play and Remux counters. Callers must pass current thresholds;
// stored classifications are never trusted.
func LegacyBucket(directPlayCount, remuxCount int, thresholds LegacyThresholds) Classification {
	switch {
	case directPlayCount >= thresholds.Optimal:
		return ClassificationOptimal
	case directPlayCount >= thresholds.GoodDirect:
		return ClassificationGood
	case directPlayCount+remuxCount >= thresholds.GoodCombined:
		return ClassificationGood
	default:
		return ClassificationPoor
	}
}
