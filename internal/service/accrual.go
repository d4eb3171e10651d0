package service

import (
	"fmt"

	"github.com/fidelio-loyalty/internal/constants"

	"github.com/shopspring/decimal"
)

// ProgramType is the closed set of loyalty program mechanics.
type ProgramType int

const (
	// ProgramPoints accrues floor(amount * ratio) points per visit.
	ProgramPoints ProgramType = iota
	// ProgramStamps accrues one stamp per visit.
	ProgramStamps
	// ProgramSpending tracks spending toward a goal, points mirror it.
	ProgramSpending
	// ProgramMissions grants a flat reward per completed visit.
	ProgramMissions
)

// ParseProgramType maps the stored string to the enum.
func ParseProgramType(raw string) (ProgramType, error) {
	switch raw {
	case constants.ProgramTypePoints:
		return ProgramPoints, nil
	case constants.ProgramTypeStamps:
		return ProgramStamps, nil
	case constants.ProgramTypeSpending:
		return ProgramSpending, nil
	case constants.ProgramTypeMissions:
		return ProgramMissions, nil
	default:
		return 0, fmt.Errorf("unknown program type: %q", raw)
	}
}

// String returns the stored representation.
func (t ProgramType) String() string {
	switch t {
	case ProgramPoints:
		return constants.ProgramTypePoints
	case ProgramStamps:
		return constants.ProgramTypeStamps
	case ProgramSpending:
		return constants.ProgramTypeSpending
	case ProgramMissions:
		return constants.ProgramTypeMissions
	default:
		return "unknown"
	}
}

const (
	// Accrual defaults when the visit carries no positive amount.
	defaultPointsNoAmount = 50
	missionFlatReward     = 10

	// Ratio applied when the restaurant runs no program at all.
	noProgramRatio = 1.5
)

// AccrualInput is what the calculator needs to price one visit.
type AccrualInput struct {
	HasProgram    bool
	Type          ProgramType
	SpendingRatio float64
	Amount        *decimal.Decimal // nil when the bill amount was not provided
}

// AccrualResult is the outcome of one visit accrual.
type AccrualResult struct {
	PointsEarned int
	StampsEarned int
}

// ComputeAccrual prices one validated visit. Pure; results are never
// negative.
func ComputeAccrual(in AccrualInput) AccrualResult {
	if !in.HasProgram {
		if amount, ok := positiveAmount(in.Amount); ok {
			return AccrualResult{PointsEarned: floorMul(amount, noProgramRatio)}
		}
		return AccrualResult{PointsEarned: defaultPointsNoAmount}
	}

	switch in.Type {
	case ProgramPoints:
		// Both the amount and a positive ratio are needed to price the
		// visit; otherwise the flat default applies.
		if amount, ok := positiveAmount(in.Amount); ok && in.SpendingRatio > 0 {
			return AccrualResult{PointsEarned: floorMul(amount, in.SpendingRatio)}
		}
		return AccrualResult{PointsEarned: defaultPointsNoAmount}
	case ProgramStamps:
		return AccrualResult{StampsEarned: 1}
	case ProgramSpending:
		if amount, ok := positiveAmount(in.Amount); ok {
			return AccrualResult{PointsEarned: floorMul(amount, in.SpendingRatio)}
		}
		return AccrualResult{}
	case ProgramMissions:
		return AccrualResult{PointsEarned: missionFlatReward}
	default:
		return AccrualResult{}
	}
}

func positiveAmount(amount *decimal.Decimal) (decimal.Decimal, bool) {
	if amount == nil || !amount.IsPositive() {
		return decimal.Zero, false
	}
	return *amount, true
}

func floorMul(amount decimal.Decimal, ratio float64) int {
	earned := amount.Mul(decimal.NewFromFloat(ratio)).Floor().IntPart()
	if earned < 0 {
		return 0
	}
	return int(earned)
}
