package service

import (
	"testing"
	"time"

	"github.com/pizzeria-next/internal/models"
)

func TestUnitPriceUsesSaleWindow(t *testing.T) {
	svc := NewPricingService()
	now := time.Now()
	saleStart := now.Add(-time.Hour)
	saleEnd := now.Add(time.Hour)
	sale := testMoney(t, "8.00")

	product := &models.Product{
		BasePrice:   testMoney(t, "12.00"),
		SalePrice:   &sale,
		SaleStartAt: &saleStart,
		SaleEndAt:   &saleEnd,
	}

	price, err := svc.UnitPrice(product, nil, now)
	if err != nil {
		t.Fatalf("unit price failed: %v", err)
	}
	if price.String() != "8.00" {
		t.Fatalf("within sale window want 8.00, got %s", price.String())
	}

	afterSale, err := svc.UnitPrice(product, nil, saleEnd.Add(time.Minute))
	if err != nil {
		t.Fatalf("unit price failed: %v", err)
	}
	if afterSale.String() != "12.00" {
		t.Fatalf("after sale window want base 12.00, got %s", afterSale.String())
	}
}

func TestUnitPriceAddsSizeModifier(t *testing.T) {
	svc := NewPricingService()
	size := models.Size{Name: "Large", PriceModifier: testMoney(t, "6.00")}
	size.ID = 7

	product := &models.Product{
		BasePrice:      testMoney(t, "14.00"),
		AvailableSizes: []models.Size{size},
	}

	price, err := svc.UnitPrice(product, &size, time.Now())
	if err != nil {
		t.Fatalf("unit price failed: %v", err)
	}
	if price.String() != "20.00" {
		t.Fatalf("base plus modifier want 20.00, got %s", price.String())
	}

	foreign := models.Size{Name: "Can", PriceModifier: testMoney(t, "0.00")}
	foreign.ID = 8
	if _, err := svc.UnitPrice(product, &foreign, time.Now()); err != ErrInvalidSizeForProduct {
		t.Fatalf("foreign size want ErrInvalidSizeForProduct, got %v", err)
	}
}

func TestValidateToppingsSnapshots(t *testing.T) {
	svc := NewPricingService()
	cheese := models.Topping{Name: "Extra Cheese", Price: testMoney(t, "2.00")}
	cheese.ID = 1
	olive := models.Topping{Name: "Olives", Price: testMoney(t, "1.00")}
	olive.ID = 2

	product := &models.Product{AvailableToppings: []models.Topping{cheese}}

	snapshots, err := svc.ValidateToppings(product, []models.Topping{cheese})
	if err != nil {
		t.Fatalf("validate toppings failed: %v", err)
	}
	if len(snapshots) != 1 || snapshots[0].Name != "Extra Cheese" || snapshots[0].Price.String() != "2.00" {
		t.Fatalf("snapshot mismatch: %+v", snapshots)
	}

	if _, err := svc.ValidateToppings(product, []models.Topping{olive}); err != ErrInvalidToppingForProduct {
		t.Fatalf("foreign topping want ErrInvalidToppingForProduct, got %v", err)
	}
}

func TestLineSubtotal(t *testing.T) {
	svc := NewPricingService()
	toppings := models.ToppingSnapshots{
		{ID: 1, Name: "Extra Cheese", Price: testMoney(t, "2.00")},
		{ID: 2, Name: "Olives", Price: testMoney(t, "1.50")},
	}

	subtotal := svc.LineSubtotal(testMoney(t, "14.00"), toppings, 3)
	if subtotal.String() != "52.50" {
		t.Fatalf("(14 + 3.5) x 3 want 52.50, got %s", subtotal.String())
	}
}
