package service

import (
	"fmt"
	"testing"

	"github.com/pizzeria-next/internal/repository"

	"gorm.io/gorm"
)

func setupBarcodeServiceTest(t *testing.T) (*BarcodeService, *gorm.DB) {
	t.Helper()

	db := newServiceTestDB(t, "barcode_service")
	return NewBarcodeService(repository.NewProductRepository(db)), db
}

func TestEAN13CheckDigit(t *testing.T) {
	cases := []struct {
		body string
		want int
	}{
		{"123456789012", 0},
		{"400638133393", 7},
		{"000000000000", 0},
	}
	for _, tc := range cases {
		if got := ean13CheckDigit(tc.body); got != tc.want {
			t.Fatalf("check digit for %s want %d, got %d", tc.body, tc.want, got)
		}
	}

	code := GenerateEAN13()
	if len(code) != 13 {
		t.Fatalf("generated barcode should span 13 digits, got %q", code)
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			t.Fatalf("generated barcode should be numeric, got %q", code)
		}
	}
	if want := fmt.Sprintf("%d", ean13CheckDigit(code[:12])); code[12:] != want {
		t.Fatalf("generated barcode carries wrong check digit: %q", code)
	}
}

func TestBuildSKU(t *testing.T) {
	if got := BuildSKU("Pizzas", "Margherita", 7); got != "PIZZ-MARG-0007" {
		t.Fatalf("sku want PIZZ-MARG-0007, got %q", got)
	}
	if got := BuildSKU("Side Orders", "P-40 Wings", 120); got != "SIDE-P40-0120" {
		t.Fatalf("sku should strip spaces and punctuation, got %q", got)
	}
}

func TestAssignBarcodeExplicitAndGenerated(t *testing.T) {
	svc, db := setupBarcodeServiceTest(t)
	admin := adminTestActor()

	category := createTestCategory(t, db, "pizzas")
	first := createTestProduct(t, db, category.ID, "margherita", testProductOptions{})
	second := createTestProduct(t, db, category.ID, "pepperoni", testProductOptions{})

	assigned, err := svc.AssignBarcode(admin, first.ID, "4006381333931")
	if err != nil {
		t.Fatalf("assign explicit barcode failed: %v", err)
	}
	if assigned.Barcode == nil || *assigned.Barcode != "4006381333931" {
		t.Fatalf("explicit barcode not persisted: %+v", assigned.Barcode)
	}

	if _, err := svc.AssignBarcode(admin, second.ID, "4006381333931"); err != ErrBarcodeConflict {
		t.Fatalf("duplicate barcode want ErrBarcodeConflict, got %v", err)
	}

	generated, err := svc.AssignBarcode(admin, second.ID, "")
	if err != nil {
		t.Fatalf("generate barcode failed: %v", err)
	}
	if generated.Barcode == nil || len(*generated.Barcode) != 13 {
		t.Fatalf("generated barcode should span 13 digits: %+v", generated.Barcode)
	}
	if *generated.Barcode == *assigned.Barcode {
		t.Fatalf("generated barcode should not collide with an assigned one")
	}

	if _, err := svc.AssignBarcode(admin, 9999, ""); err != ErrProductNotFound {
		t.Fatalf("missing product want ErrProductNotFound, got %v", err)
	}
	viewer := Actor{ID: 2, Name: "viewer"}
	if _, err := svc.AssignBarcode(viewer, first.ID, ""); err != ErrPermissionDenied {
		t.Fatalf("actor without capability want ErrPermissionDenied, got %v", err)
	}
}

func TestAssignSKUGeneratedAndUniquified(t *testing.T) {
	svc, db := setupBarcodeServiceTest(t)
	admin := adminTestActor()

	category := createTestCategory(t, db, "pizzas")
	first := createTestProduct(t, db, category.ID, "margherita", testProductOptions{})
	second := createTestProduct(t, db, category.ID, "meatlovers", testProductOptions{})

	// 先把 second 的默认 SKU 占掉，迫使生成器追加序号
	base := BuildSKU(category.Name, second.Name, second.ID)
	if _, err := svc.AssignSKU(admin, first.ID, base); err != nil {
		t.Fatalf("assign explicit sku failed: %v", err)
	}

	generated, err := svc.AssignSKU(admin, second.ID, "")
	if err != nil {
		t.Fatalf("generate sku failed: %v", err)
	}
	if generated.SKU == nil || *generated.SKU != base+"-1" {
		t.Fatalf("occupied base sku should get a numeric suffix, got %+v", generated.SKU)
	}

	if _, err := svc.AssignSKU(admin, second.ID, base); err != ErrSKUConflict {
		t.Fatalf("duplicate sku want ErrSKUConflict, got %v", err)
	}
}

func TestLookupByCodeMatchesBarcodeAndSKU(t *testing.T) {
	svc, db := setupBarcodeServiceTest(t)
	admin := adminTestActor()

	category := createTestCategory(t, db, "pizzas")
	product := createTestProduct(t, db, category.ID, "margherita", testProductOptions{})
	hidden := createTestProduct(t, db, category.ID, "retired", testProductOptions{Unavailable: true})

	if _, err := svc.AssignBarcode(admin, product.ID, "1234567890120"); err != nil {
		t.Fatalf("assign barcode failed: %v", err)
	}
	if _, err := svc.AssignSKU(admin, product.ID, "PIZZ-MARG-0001"); err != nil {
		t.Fatalf("assign sku failed: %v", err)
	}
	if _, err := svc.AssignBarcode(admin, hidden.ID, "1111111111116"); err != nil {
		t.Fatalf("assign barcode to hidden failed: %v", err)
	}

	byBarcode, err := svc.LookupByCode(admin, " 1234567890120 ")
	if err != nil {
		t.Fatalf("lookup by barcode failed: %v", err)
	}
	if byBarcode.ID != product.ID {
		t.Fatalf("barcode lookup resolved wrong product: %d", byBarcode.ID)
	}

	bySKU, err := svc.LookupByCode(admin, "PIZZ-MARG-0001")
	if err != nil {
		t.Fatalf("lookup by sku failed: %v", err)
	}
	if bySKU.ID != product.ID {
		t.Fatalf("sku lookup resolved wrong product: %d", bySKU.ID)
	}

	if _, err := svc.LookupByCode(admin, "1111111111116"); err != ErrProductNotFound {
		t.Fatalf("unavailable product should not resolve, got %v", err)
	}
	if _, err := svc.LookupByCode(admin, "0000000000000"); err != ErrProductNotFound {
		t.Fatalf("unknown code want ErrProductNotFound, got %v", err)
	}
	viewer := Actor{ID: 2, Name: "viewer"}
	if _, err := svc.LookupByCode(viewer, "1234567890120"); err != ErrPermissionDenied {
		t.Fatalf("actor without capability want ErrPermissionDenied, got %v", err)
	}
}

func TestBackfillAssignsMissingCodes(t *testing.T) {
	svc, db := setupBarcodeServiceTest(t)
	admin := adminTestActor()

	category := createTestCategory(t, db, "pizzas")
	partial := createTestProduct(t, db, category.ID, "margherita", testProductOptions{})
	bare := createTestProduct(t, db, category.ID, "pepperoni", testProductOptions{})
	if _, err := svc.AssignBarcode(admin, partial.ID, "1234567890120"); err != nil {
		t.Fatalf("assign barcode failed: %v", err)
	}

	result, err := svc.Backfill(admin)
	if err != nil {
		t.Fatalf("backfill failed: %v", err)
	}
	if result.BarcodesAssigned != 1 || result.SKUsAssigned != 2 {
		t.Fatalf("backfill want 1 barcode and 2 skus, got %+v", result)
	}
	if len(result.Errors) != 0 {
		t.Fatalf("backfill should report no errors, got %v", result.Errors)
	}

	repo := repository.NewProductRepository(db)
	for _, id := range []uint{partial.ID, bare.ID} {
		reloaded, err := repo.GetByID(id, false)
		if err != nil {
			t.Fatalf("reload product failed: %v", err)
		}
		if reloaded.Barcode == nil || *reloaded.Barcode == "" || reloaded.SKU == nil || *reloaded.SKU == "" {
			t.Fatalf("product %d should carry barcode and sku after backfill", id)
		}
	}
}
