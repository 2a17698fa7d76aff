package service

import (
	"testing"

	"github.com/pizzeria-next/internal/constants"
	"github.com/pizzeria-next/internal/models"
	"github.com/pizzeria-next/internal/repository"

	"gorm.io/gorm"
)

func setupPromotionAdminTest(t *testing.T) (*PromotionAdminService, *gorm.DB) {
	t.Helper()

	db := newServiceTestDB(t, "promotion_admin")
	return NewPromotionAdminService(repository.NewPromotionRepository(db), repository.NewProductRepository(db)), db
}

func TestCreatePromotionNormalizesAndRejectsDuplicates(t *testing.T) {
	svc, _ := setupPromotionAdminTest(t)
	admin := adminTestActor()

	created, err := svc.Create(admin, PromotionInput{
		Code:               "  welcome10 ",
		DiscountType:       constants.DiscountTypePercentage,
		DiscountValue:      testMoney(t, "10"),
		IsActive:           true,
		ApplyToEntireOrder: true,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Code != "WELCOME10" {
		t.Fatalf("code should normalize to upper case, got %q", created.Code)
	}

	_, err = svc.Create(admin, PromotionInput{
		Code:          "Welcome10",
		DiscountType:  constants.DiscountTypeFixed,
		DiscountValue: testMoney(t, "5.00"),
	})
	if err != ErrPromotionConflict {
		t.Fatalf("duplicate code want ErrPromotionConflict, got %v", err)
	}

	if _, err := svc.Create(admin, PromotionInput{Code: "X", DiscountType: "raffle"}); err != ErrInvalidDiscount {
		t.Fatalf("bad discount type want ErrInvalidDiscount, got %v", err)
	}
	if _, err := svc.Create(admin, PromotionInput{Code: "   ", DiscountType: constants.DiscountTypeFixed}); err != ErrInvalidDiscount {
		t.Fatalf("blank code want ErrInvalidDiscount, got %v", err)
	}
}

func TestUpdatePromotionSyncsApplicableProducts(t *testing.T) {
	svc, db := setupPromotionAdminTest(t)
	admin := adminTestActor()

	category := createTestCategory(t, db, "pizzas")
	pizza := createTestProduct(t, db, category.ID, "margherita", testProductOptions{})

	created, err := svc.Create(admin, PromotionInput{
		Code:                 "PIZZAONLY",
		DiscountType:         constants.DiscountTypePercentage,
		DiscountValue:        testMoney(t, "20"),
		IsActive:             true,
		ApplyToBasePrice:     true,
		ApplicableProductIDs: []uint{pizza.ID},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if len(created.ApplicableProducts) != 1 || created.ApplicableProducts[0].ID != pizza.ID {
		t.Fatalf("applicable products not synced: %+v", created.ApplicableProducts)
	}

	updated, err := svc.Update(admin, created.ID, PromotionInput{
		Code:               "PIZZAONLY",
		DiscountType:       constants.DiscountTypePercentage,
		DiscountValue:      testMoney(t, "20"),
		IsActive:           true,
		ApplyToEntireOrder: true,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if len(updated.ApplicableProducts) != 0 {
		t.Fatalf("empty id list should clear product restriction, got %d", len(updated.ApplicableProducts))
	}
}

func TestUpdatePromotionCodeCollision(t *testing.T) {
	svc, _ := setupPromotionAdminTest(t)
	admin := adminTestActor()

	first, err := svc.Create(admin, PromotionInput{
		Code: "FIRST", DiscountType: constants.DiscountTypeFixed, DiscountValue: testMoney(t, "5.00"),
	})
	if err != nil {
		t.Fatalf("create first failed: %v", err)
	}
	if _, err := svc.Create(admin, PromotionInput{
		Code: "SECOND", DiscountType: constants.DiscountTypeFixed, DiscountValue: testMoney(t, "5.00"),
	}); err != nil {
		t.Fatalf("create second failed: %v", err)
	}

	_, err = svc.Update(admin, first.ID, PromotionInput{
		Code: "second", DiscountType: constants.DiscountTypeFixed, DiscountValue: testMoney(t, "5.00"),
	})
	if err != ErrPromotionConflict {
		t.Fatalf("renaming onto existing code want ErrPromotionConflict, got %v", err)
	}
}

func TestDeletePromotionAndPermissions(t *testing.T) {
	svc, db := setupPromotionAdminTest(t)
	admin := adminTestActor()

	created, err := svc.Create(admin, PromotionInput{
		Code: "BYE", DiscountType: constants.DiscountTypeFixed, DiscountValue: testMoney(t, "5.00"),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := svc.Delete(admin, created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.Delete(admin, created.ID); err != ErrPromotionNotFound {
		t.Fatalf("double delete want ErrPromotionNotFound, got %v", err)
	}

	var count int64
	if err := db.Model(&models.Promotion{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("deleted promotion should not list, got %d", count)
	}

	viewer := Actor{ID: 2, Name: "viewer"}
	if _, err := svc.Get(viewer, created.ID); err != ErrPermissionDenied {
		t.Fatalf("actor without capability want ErrPermissionDenied, got %v", err)
	}
	if _, _, err := svc.List(viewer, repository.PromotionListFilter{}); err != ErrPermissionDenied {
		t.Fatalf("list without capability want ErrPermissionDenied, got %v", err)
	}
}
