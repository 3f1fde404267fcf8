// Package risk maps dropout probabilities to risk buckets.
package risk

import (
	"fmt"
	"math"
	"strings"
)

// Bucket thresholds. A probability below LowUpper is Low, one at or above
// HighLower is High, everything in between is Medium.
const (
	LowUpper  = 0.3
	HighLower = 0.7
)

// Bucket is a coarse risk level derived from a dropout probability.
type Bucket int

const (
	Low Bucket = iota
	Medium
	High
)

// Buckets lists every bucket from highest to lowest risk.
var Buckets = []Bucket{High, Medium, Low}

func (b Bucket) String() string {
	switch b {
	case Low:
		return "low"
	case Medium:
		return "medium"
	case High:
		return "high"
	default:
		return fmt.Sprintf("bucket(%d)", int(b))
	}
}

// DisplayName returns the label shown in the dashboard.
func (b Bucket) DisplayName() string {
	switch b {
	case Low:
		return "Low Risk"
	case Medium:
		return "Medium Risk"
	case High:
		return "High Risk"
	default:
		return "Unknown Risk"
	}
}

// ParseBucket parses "low", "medium" or "high" (case-insensitive).
func ParseBucket(s string) (Bucket, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return Low, nil
	case "medium":
		return Medium, nil
	case "high":
		return High, nil
	}
	return 0, fmt.Errorf("unknown risk bucket %q", s)
}

// BucketFor returns the bucket of probability p.
func BucketFor(p float64) Bucket {
	switch {
	case p >= HighLower:
		return High
	case p >= LowUpper:
		return Medium
	default:
		return Low
	}
}

// Assessment is a dropout probability together with its bucket.
type Assessment struct {
	Probability float64
	Bucket      Bucket
}

// Assess clamps p into [0, 1] and buckets it. NaN is treated as 0.
func Assess(p float64) Assessment {
	if math.IsNaN(p) {
		p = 0
	}
	p = math.Max(0, math.Min(1, p))
	return Assessment{Probability: p, Bucket: BucketFor(p)}
}
