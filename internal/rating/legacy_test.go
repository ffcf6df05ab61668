package rating

import "testing"

func TestLegacyBucket(t *testing.T) {
	defaults := DefaultLegacyThresholds()
	cases := []struct {
		name       string
		direct     int
		remux      int
		thresholds LegacyThresholds
		want       Classification
	}{
		{"optimal on direct count", 8, 0, LegacyThresholds{Optimal: 8, GoodDirect: 5, GoodCombined: 8}, ClassificationOptimal},
		{"good on combined count", 5, 3, LegacyThresholds{Optimal: 10, GoodDirect: 5, GoodCombined: 8}, ClassificationGood},
		{"good on direct alone", 6, 0, LegacyThresholds{Optimal: 10, GoodDirect: 5, GoodCombined: 20}, ClassificationGood},
		{"poor with defaults", 0, 0, defaults, ClassificationPoor},
		{"remux only reaching combined", 0, 8, LegacyThresholds{Optimal: 10, GoodDirect: 5, GoodCombined: 8}, ClassificationGood},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := LegacyBucket(tc.direct, tc.remux, tc.thresholds); got != tc.want {
				t.Fatalf("LegacyBucket(%d, %d) = %s, want %s", tc.direct, tc.remux, got, tc.want)
			}
		})
	}
}

func TestLegacyBucketPure(t *testing.T) {
	thresholds := DefaultLegacyThresholds()
	first := LegacyBucket(7, 1, thresholds)
	second := LegacyBucket(7, 1, thresholds)
	if first != second {
		t.Fatalf("LegacyBucket not deterministic: %s vs %s", first, second)
	}
}
