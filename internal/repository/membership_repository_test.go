package repository

import (
	"testing"
	"time"

	"github.com/fidelio-loyalty/internal/constants"
	"github.com/fidelio-loyalty/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func openRepositoryTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("open test db failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Membership{}, &models.Visit{}); err != nil {
		t.Fatalf("migrate test db failed: %v", err)
	}
	return db
}

func TestMembershipCreateAndGetByPair(t *testing.T) {
	repo := NewMembershipRepository(openRepositoryTestDB(t))

	membership := &models.Membership{
		UserID:       501,
		RestaurantID: 8001,
		Tier:         constants.TierBronze,
		JoinedAt:     time.Now(),
	}
	if err := repo.Create(membership); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	loaded, err := repo.GetByPair(501, 8001)
	if err != nil {
		t.Fatalf("get by pair failed: %v", err)
	}
	if loaded == nil || loaded.ID != membership.ID {
		t.Fatalf("pair lookup want id %d got %+v", membership.ID, loaded)
	}

	missing, err := repo.GetByPair(501, 8002)
	if err != nil {
		t.Fatalf("get by pair failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("unknown pair should return nil, got %+v", missing)
	}
}

func TestMembershipIncrementCounters(t *testing.T) {
	repo := NewMembershipRepository(openRepositoryTestDB(t))

	membership := &models.Membership{
		UserID:       502,
		RestaurantID: 8003,
		Tier:         constants.TierBronze,
		JoinedAt:     time.Now(),
	}
	if err := repo.Create(membership); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := repo.IncrementCounters(membership.ID, 30, 2); err != nil {
		t.Fatalf("increment failed: %v", err)
	}
	if err := repo.IncrementCounters(membership.ID, 0, 0); err != nil {
		t.Fatalf("no-op increment failed: %v", err)
	}

	loaded, err := repo.GetByID(membership.ID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if loaded.Points != 30 || loaded.Stamps != 2 {
		t.Fatalf("counters want 30/2 got %d/%d", loaded.Points, loaded.Stamps)
	}
}

func TestMembershipUpdateTier(t *testing.T) {
	repo := NewMembershipRepository(openRepositoryTestDB(t))

	membership := &models.Membership{
		UserID:       503,
		RestaurantID: 8004,
		Tier:         constants.TierBronze,
		JoinedAt:     time.Now(),
	}
	if err := repo.Create(membership); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := repo.UpdateTier(membership.ID, constants.TierArgent, 1500); err != nil {
		t.Fatalf("update tier failed: %v", err)
	}

	loaded, err := repo.GetByID(membership.ID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if loaded.Tier != constants.TierArgent || loaded.NextTierThreshold != 1500 {
		t.Fatalf("tier want Argent/1500 got %s/%d", loaded.Tier, loaded.NextTierThreshold)
	}
}

func TestMembershipListFiltersByTier(t *testing.T) {
	repo := NewMembershipRepository(openRepositoryTestDB(t))
	restaurantID := uint(8005)

	rows := []*models.Membership{
		{UserID: 504, RestaurantID: restaurantID, Tier: constants.TierBronze, JoinedAt: time.Now()},
		{UserID: 505, RestaurantID: restaurantID, Tier: constants.TierOr, JoinedAt: time.Now()},
	}
	for _, row := range rows {
		if err := repo.Create(row); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	memberships, total, err := repo.List(MembershipListFilter{
		RestaurantID: restaurantID,
		Tier:         constants.TierOr,
	})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(memberships) != 1 {
		t.Fatalf("want one Or membership, got %d", total)
	}
	if memberships[0].UserID != 505 {
		t.Fatalf("want user 505 got %d", memberships[0].UserID)
	}
}
