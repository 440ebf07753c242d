// Package scoring turns validated kernel throughputs into composite
// suite scores and the final weighted device score.
package scoring

import (
	"fmt"
	"math"

	"github.com/corebench/corebench/internal/calibration"
	"github.com/corebench/corebench/internal/models"
)

// Suite weighting: multi-core dominates because sustained all-core
// throughput is what separates device classes.
const (
	SingleCoreWeight = 0.35
	MultiCoreWeight  = 0.65
)

// Scorer computes one suite's composite score from its kernel results.
type Scorer interface {
	Method() calibration.Method
	Composite(mode models.ExecutionMode, results []models.KernelResult) float64
}

// New builds the scorer selected by the calibration table.
func New(table *calibration.Table) (Scorer, error) {
	switch table.Method {
	case calibration.MethodFactor:
		return &FactorScorer{table: table}, nil
	case calibration.MethodRatio:
		return &RatioScorer{table: table}, nil
	default:
		return nil, fmt.Errorf("unknown scoring method %q", table.Method)
	}
}

// FinalScore combines the two suite composites with the fixed weights.
func FinalScore(single, multi float64) float64 {
	return single*SingleCoreWeight + multi*MultiCoreWeight
}

// FactorScorer sums ops-per-second times a fixed per-kernel factor.
// Invalid results and kernels without a factor contribute zero.
type FactorScorer struct {
	table *calibration.Table
}

func (s *FactorScorer) Method() calibration.Method { return calibration.MethodFactor }

func (s *FactorScorer) Composite(mode models.ExecutionMode, results []models.KernelResult) float64 {
	multi := mode == models.ModeMultiCore
	sum := 0.0
	for _, r := range results {
		if !r.IsValid {
			continue
		}
		part := r.OpsPerSecond * s.table.ValueFor(multi, r.ID)
		if math.IsNaN(part) || math.IsInf(part, 0) {
			continue
		}
		sum += part
	}
	return sum
}

// RatioScorer scores 100 times the geometric mean of each kernel's
// throughput over the reference device's. Kernels without a reference
// entry are excluded from the mean; an invalid kernel zeroes the whole
// composite, since a geometric mean with a zero member is zero.
type RatioScorer struct {
	table *calibration.Table
}

func (s *RatioScorer) Method() calibration.Method { return calibration.MethodRatio }

func (s *RatioScorer) Composite(mode models.ExecutionMode, results []models.KernelResult) float64 {
	multi := mode == models.ModeMultiCore
	logSum := 0.0
	count := 0
	for _, r := range results {
		ref := s.table.ValueFor(multi, r.ID)
		if ref <= 0 {
			continue
		}
		if !r.IsValid {
			return 0
		}
		ratio := r.OpsPerSecond / ref
		if ratio <= 0 || math.IsNaN(ratio) || math.IsInf(ratio, 0) {
			return 0
		}
		logSum += math.Log(ratio)
		count++
	}
	if count == 0 {
		return 0
	}
	return 100 * math.Exp(logSum/float64(count))
}

// Rating thresholds for factor-method scores. Ratio scores center on
// 100 rather than the factor scale, so their ladder is the same shape
// scaled down tenfold.
var ratingThresholds = []struct {
	min    float64
	rating models.Rating
}{
	{1800, models.RatingExceptional},
	{1500, models.RatingHigh},
	{1000, models.RatingGood},
	{600, models.RatingModerate},
	{300, models.RatingBasic},
}

// RatingFor maps a final score to its tier. The mapping is total: any
// finite score below the lowest threshold lands in the bottom tier.
func RatingFor(method calibration.Method, finalScore float64) models.Rating {
	scale := 1.0
	if method == calibration.MethodRatio {
		scale = 0.1
	}
	for _, th := range ratingThresholds {
		if finalScore >= th.min*scale {
			return th.rating
		}
	}
	return models.RatingLow
}
