package auth

import (
	"os"
	"sync"
	"testing"
	"time"

	"curryleaf-backend/internal/invite"
	"curryleaf-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set, skipping integration test")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("could not connect to test database: %v", err)
	}
	if err := db.AutoMigrate(&models.InviteCode{}); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}
	return db
}

func newTestInvite(t *testing.T, db *gorm.DB, maxUses int) models.InviteCode {
	t.Helper()
	ic := models.InviteCode{
		ID:        uuid.NewString(),
		Code:      invite.NewCode(),
		CreatedBy: 1,
		MaxUses:   maxUses,
		ExpiresAt: time.Now().Add(time.Hour),
		CreatedAt: time.Now(),
	}
	if err := db.Create(&ic).Error; err != nil {
		t.Fatalf("could not create invite: %v", err)
	}
	t.Cleanup(func() { db.Delete(&models.InviteCode{}, "id = ?", ic.ID) })
	return ic
}

// A single-use code can only be redeemed once, even by a caller holding a
// stale row that still passed validation.
func TestRedeemInviteGuardsLastUse(t *testing.T) {
	db := testDB(t)
	ic := newTestInvite(t, db, 1)

	// Both callers read the row before either redeems, as two concurrent
	// registrations would.
	stale := ic
	if err := invite.ValidateForRedemption(stale, time.Now()); err != nil {
		t.Fatalf("fresh invite should validate: %v", err)
	}

	if err := redeemInvite(db, ic.ID, 10, time.Now()); err != nil {
		t.Fatalf("first redemption: %v", err)
	}
	if err := redeemInvite(db, stale.ID, 11, time.Now()); err == nil {
		t.Fatal("second redemption of a single-use code should fail")
	}

	var got models.InviteCode
	if err := db.First(&got, "id = ?", ic.ID).Error; err != nil {
		t.Fatal(err)
	}
	if got.UsedCount != 1 {
		t.Errorf("used_count = %d, want 1", got.UsedCount)
	}
	if got.UsedBy == nil || *got.UsedBy != 10 {
		t.Errorf("used_by = %v, want the first redeemer", got.UsedBy)
	}
}

// Racing redemptions of the last use: exactly one wins.
func TestRedeemInviteConcurrent(t *testing.T) {
	db := testDB(t)
	ic := newTestInvite(t, db, 1)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = redeemInvite(db, ic.ID, uint(20+i), time.Now())
		}(i)
	}
	wg.Wait()

	failures := 0
	for _, err := range errs {
		if err != nil {
			failures++
		}
	}
	if failures != 1 {
		t.Errorf("%d of 2 racing redemptions failed, want exactly 1", failures)
	}

	var got models.InviteCode
	if err := db.First(&got, "id = ?", ic.ID).Error; err != nil {
		t.Fatal(err)
	}
	if got.UsedCount != 1 {
		t.Errorf("used_count = %d, want 1", got.UsedCount)
	}
}
