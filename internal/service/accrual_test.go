package service

import (
	"testing"

	"github.com/shopspring/decimal"
)

func amountOf(value string) *decimal.Decimal {
	amount := decimal.RequireFromString(value)
	return &amount
}

func TestComputeAccrualNoProgram(t *testing.T) {
	got := ComputeAccrual(AccrualInput{Amount: amountOf("40")})
	if got.PointsEarned != 60 {
		t.Fatalf("points want 60 got %d", got.PointsEarned)
	}
	if got.StampsEarned != 0 {
		t.Fatalf("stamps want 0 got %d", got.StampsEarned)
	}

	got = ComputeAccrual(AccrualInput{})
	if got.PointsEarned != defaultPointsNoAmount {
		t.Fatalf("points without amount want %d got %d", defaultPointsNoAmount, got.PointsEarned)
	}
}

func TestComputeAccrualPoints(t *testing.T) {
	got := ComputeAccrual(AccrualInput{
		HasProgram:    true,
		Type:          ProgramPoints,
		SpendingRatio: 2,
		Amount:        amountOf("10.50"),
	})
	if got.PointsEarned != 21 {
		t.Fatalf("points want 21 got %d", got.PointsEarned)
	}

	got = ComputeAccrual(AccrualInput{
		HasProgram:    true,
		Type:          ProgramPoints,
		SpendingRatio: 1.5,
		Amount:        amountOf("33.33"),
	})
	if got.PointsEarned != 49 {
		t.Fatalf("points should floor, want 49 got %d", got.PointsEarned)
	}

	got = ComputeAccrual(AccrualInput{HasProgram: true, Type: ProgramPoints, SpendingRatio: 2})
	if got.PointsEarned != defaultPointsNoAmount {
		t.Fatalf("points without amount want %d got %d", defaultPointsNoAmount, got.PointsEarned)
	}

	got = ComputeAccrual(AccrualInput{HasProgram: true, Type: ProgramPoints, Amount: amountOf("40")})
	if got.PointsEarned != defaultPointsNoAmount {
		t.Fatalf("points without ratio want flat %d got %d", defaultPointsNoAmount, got.PointsEarned)
	}
}

func TestComputeAccrualStamps(t *testing.T) {
	got := ComputeAccrual(AccrualInput{
		HasProgram: true,
		Type:       ProgramStamps,
		Amount:     amountOf("120"),
	})
	if got.StampsEarned != 1 {
		t.Fatalf("stamps want 1 got %d", got.StampsEarned)
	}
	if got.PointsEarned != 0 {
		t.Fatalf("stamps program should not grant points, got %d", got.PointsEarned)
	}
}

func TestComputeAccrualSpending(t *testing.T) {
	got := ComputeAccrual(AccrualInput{
		HasProgram:    true,
		Type:          ProgramSpending,
		SpendingRatio: 1,
		Amount:        amountOf("25.90"),
	})
	if got.PointsEarned != 25 {
		t.Fatalf("points want 25 got %d", got.PointsEarned)
	}

	got = ComputeAccrual(AccrualInput{HasProgram: true, Type: ProgramSpending, SpendingRatio: 1})
	if got.PointsEarned != 0 || got.StampsEarned != 0 {
		t.Fatalf("spending without amount should accrue nothing, got %+v", got)
	}
}

func TestComputeAccrualMissions(t *testing.T) {
	got := ComputeAccrual(AccrualInput{HasProgram: true, Type: ProgramMissions})
	if got.PointsEarned != missionFlatReward {
		t.Fatalf("points want %d got %d", missionFlatReward, got.PointsEarned)
	}
}

func TestParseProgramType(t *testing.T) {
	for _, raw := range []string{"points", "stamps", "spending", "missions"} {
		programType, err := ParseProgramType(raw)
		if err != nil {
			t.Fatalf("parse %q failed: %v", raw, err)
		}
		if programType.String() != raw {
			t.Fatalf("round trip want %q got %q", raw, programType.String())
		}
	}
	if _, err := ParseProgramType("cashback"); err == nil {
		t.Fatalf("unknown type should fail")
	}
}
