package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/pizzeria-next/internal/constants"
	"github.com/pizzeria-next/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupPromotionRepositoryTest(t *testing.T) (*GormPromotionRepository, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:promotion_repo_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Promotion{}, &models.Product{}, &models.Category{}); err != nil {
		t.Fatalf("migrate promotions failed: %v", err)
	}
	return NewPromotionRepository(db), db
}

func TestGetByCodeIsCaseInsensitive(t *testing.T) {
	repo, db := setupPromotionRepositoryTest(t)
	if err := db.Create(&models.Promotion{
		Code:         "WELCOME10",
		DiscountType: constants.DiscountTypePercentage,
		IsActive:     true,
	}).Error; err != nil {
		t.Fatalf("create promotion failed: %v", err)
	}

	found, err := repo.GetByCode(" welcome10 ")
	if err != nil {
		t.Fatalf("get by code failed: %v", err)
	}
	if found == nil {
		t.Fatalf("lowercase lookup should resolve the code")
	}

	missing, err := repo.GetByCode("NOPE")
	if err != nil {
		t.Fatalf("get missing failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("unknown code should return nil")
	}
}

func TestIncrementUsage(t *testing.T) {
	repo, db := setupPromotionRepositoryTest(t)
	promotion := models.Promotion{Code: "TENOFF", DiscountType: constants.DiscountTypeFixed, IsActive: true}
	if err := db.Create(&promotion).Error; err != nil {
		t.Fatalf("create promotion failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := repo.IncrementUsage(promotion.ID); err != nil {
			t.Fatalf("increment usage failed: %v", err)
		}
	}

	var reloaded models.Promotion
	if err := db.First(&reloaded, promotion.ID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.TimesUsed != 3 {
		t.Fatalf("times used want 3, got %d", reloaded.TimesUsed)
	}
}

func TestCreatePersistsFalseFlags(t *testing.T) {
	repo, db := setupPromotionRepositoryTest(t)
	promotion := models.Promotion{
		Code:               "DORMANT",
		DiscountType:       constants.DiscountTypePercentage,
		IsActive:           false,
		ApplyToEntireOrder: false,
		ApplyToBasePrice:   true,
	}
	if err := repo.Create(&promotion); err != nil {
		t.Fatalf("create promotion failed: %v", err)
	}

	var reloaded models.Promotion
	if err := db.First(&reloaded, promotion.ID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.IsActive {
		t.Fatalf("promotion created inactive should stay inactive")
	}
	if reloaded.ApplyToEntireOrder {
		t.Fatalf("product-restricted promotion should not widen to the entire order")
	}
	if !reloaded.ApplyToBasePrice {
		t.Fatalf("base price flag should persist as set")
	}
}

func TestListFiltersActiveAndSearch(t *testing.T) {
	repo, db := setupPromotionRepositoryTest(t)
	seed := []models.Promotion{
		{Code: "WELCOME10", Description: "first order treat", DiscountType: constants.DiscountTypePercentage, IsActive: true},
		{Code: "FREESHIP", Description: "free delivery", DiscountType: constants.DiscountTypeFreeDelivery, IsActive: true},
		{Code: "RETIRED", Description: "old campaign", DiscountType: constants.DiscountTypeFixed, IsActive: false},
	}
	for i := range seed {
		if err := db.Create(&seed[i]).Error; err != nil {
			t.Fatalf("seed promotion failed: %v", err)
		}
	}

	active, total, err := repo.List(PromotionListFilter{OnlyActive: true})
	if err != nil {
		t.Fatalf("list active failed: %v", err)
	}
	if total != 2 || len(active) != 2 {
		t.Fatalf("want 2 active promotions, got total=%d len=%d", total, len(active))
	}

	byCode, _, err := repo.List(PromotionListFilter{Search: "ship"})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(byCode) != 1 || byCode[0].Code != "FREESHIP" {
		t.Fatalf("search should match code fragment, got %+v", byCode)
	}
}
