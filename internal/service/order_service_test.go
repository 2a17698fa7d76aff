package service

import (
	"errors"
	"regexp"
	"testing"

	"github.com/pizzeria-next/internal/constants"
	"github.com/pizzeria-next/internal/models"
	"github.com/pizzeria-next/internal/repository"

	"gorm.io/gorm"
)

func adminTestActor() Actor {
	return Actor{
		ID:                 1,
		Name:               "tester",
		Role:               constants.StaffRoleAdmin,
		CanManageOrders:    true,
		CanManageInventory: true,
		CanManagePromos:    true,
		CanManageSettings:  true,
	}
}

type orderServiceFixture struct {
	db        *gorm.DB
	carts     *CartService
	orders    *OrderService
	settings  *StoreSettingsService
	inventory *InventoryService
}

func setupOrderServiceTest(t *testing.T) *orderServiceFixture {
	t.Helper()

	db := newServiceTestDB(t, "order_service")
	cartRepo := repository.NewCartRepository(db)
	productRepo := repository.NewProductRepository(db)
	promotionRepo := repository.NewPromotionRepository(db)

	settings := NewStoreSettingsService(repository.NewSettingRepository(db))
	inventory := NewInventoryService(repository.NewStockRepository(db), productRepo, nil)
	promotions := NewPromotionService(promotionRepo)
	carts := NewCartService(cartRepo, productRepo, repository.NewCatalogRepository(db), NewPricingService())
	orders := NewOrderService(repository.NewOrderRepository(db), cartRepo, promotionRepo, promotions, settings, inventory, nil)

	return &orderServiceFixture{db: db, carts: carts, orders: orders, settings: settings, inventory: inventory}
}

func (f *orderServiceFixture) fillCart(t *testing.T, sessionKey, productName, basePrice string, quantity int) models.Product {
	t.Helper()

	category := createTestCategory(t, f.db, "cat-"+productName)
	product := createTestProduct(t, f.db, category.ID, productName, testProductOptions{BasePrice: basePrice})
	if _, err := f.carts.AddLine(sessionKey, AddLineInput{ProductID: product.ID, Quantity: quantity}); err != nil {
		t.Fatalf("fill cart failed: %v", err)
	}
	return product
}

var orderNoPattern = regexp.MustCompile(`^ORD-\d{8}-[A-Z2-9]{4}$`)

func TestCheckoutPickupHappyPath(t *testing.T) {
	f := setupOrderServiceTest(t)
	f.fillCart(t, "sess-pickup", "margherita", "20.00", 1)

	order, err := f.orders.Checkout(CheckoutInput{
		SessionKey:    "sess-pickup",
		CustomerName:  "  Dana  ",
		CustomerEmail: "Dana@Example.COM",
		CustomerPhone: "0400000000",
		OrderType:     constants.OrderTypePickup,
	})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if !orderNoPattern.MatchString(order.OrderNo) {
		t.Fatalf("unexpected order number format: %s", order.OrderNo)
	}
	if order.Status != constants.OrderStatusPending {
		t.Fatalf("new order status want pending, got %s", order.Status)
	}
	if order.CustomerName != "Dana" || order.CustomerEmail != "dana@example.com" {
		t.Fatalf("customer fields not normalized: %q %q", order.CustomerName, order.CustomerEmail)
	}
	if order.DeliveryFee.String() != "0.00" {
		t.Fatalf("pickup should have zero delivery fee, got %s", order.DeliveryFee.String())
	}
	if order.Total.String() != "20.00" {
		t.Fatalf("total want 20.00, got %s", order.Total.String())
	}
	if len(order.Items) != 1 || order.Items[0].ProductName != "margherita" {
		t.Fatalf("order items not snapshotted: %+v", order.Items)
	}

	cart, err := f.carts.Get("sess-pickup")
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if len(cart.Lines) != 0 {
		t.Fatalf("cart should be cleared after checkout, got %d lines", len(cart.Lines))
	}
}

func TestCheckoutValidationFailures(t *testing.T) {
	f := setupOrderServiceTest(t)

	if _, err := f.orders.Checkout(CheckoutInput{SessionKey: "sess-empty", OrderType: constants.OrderTypePickup}); err != ErrEmptyCart {
		t.Fatalf("empty cart want ErrEmptyCart, got %v", err)
	}

	f.fillCart(t, "sess-validate", "pepperoni", "20.00", 1)
	if _, err := f.orders.Checkout(CheckoutInput{SessionKey: "sess-validate", OrderType: "drone"}); err != ErrInvalidOrderType {
		t.Fatalf("bad order type want ErrInvalidOrderType, got %v", err)
	}
	if _, err := f.orders.Checkout(CheckoutInput{SessionKey: "sess-validate", OrderType: constants.OrderTypeDelivery}); err != ErrMissingDeliveryAddress {
		t.Fatalf("delivery without address want ErrMissingDeliveryAddress, got %v", err)
	}
}

func TestCheckoutDeliveryBelowMinimum(t *testing.T) {
	f := setupOrderServiceTest(t)
	// 门店默认最低配送消费 15.00
	f.fillCart(t, "sess-low", "chips", "4.50", 2)

	_, err := f.orders.Checkout(CheckoutInput{
		SessionKey:      "sess-low",
		OrderType:       constants.OrderTypeDelivery,
		DeliveryAddress: "1 Pizza Lane",
	})
	if err != ErrBelowMinimumOrder {
		t.Fatalf("want ErrBelowMinimumOrder, got %v", err)
	}
}

func TestCheckoutDeliveryFeeAndFreeThreshold(t *testing.T) {
	f := setupOrderServiceTest(t)

	// 默认配送费 5.00，小计未达免配送门槛
	f.fillCart(t, "sess-fee", "margherita", "20.00", 1)
	order, err := f.orders.Checkout(CheckoutInput{
		SessionKey:      "sess-fee",
		OrderType:       constants.OrderTypeDelivery,
		DeliveryAddress: "1 Pizza Lane",
	})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if order.DeliveryFee.String() != "5.00" || order.Total.String() != "25.00" {
		t.Fatalf("want fee 5.00 total 25.00, got %s / %s", order.DeliveryFee.String(), order.Total.String())
	}

	// 小计达到 50.00 免配送
	f.fillCart(t, "sess-free", "family-deal", "52.00", 1)
	free, err := f.orders.Checkout(CheckoutInput{
		SessionKey:      "sess-free",
		OrderType:       constants.OrderTypeDelivery,
		DeliveryAddress: "1 Pizza Lane",
	})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if free.DeliveryFee.String() != "0.00" {
		t.Fatalf("above threshold should waive fee, got %s", free.DeliveryFee.String())
	}
}

func TestCheckoutRejectedPromotionAbortsOrder(t *testing.T) {
	f := setupOrderServiceTest(t)
	f.fillCart(t, "sess-reject", "margherita", "20.00", 1)
	createTestPromotion(t, f.db, models.Promotion{
		Code: "DORMANT", DiscountType: constants.DiscountTypePercentage,
		DiscountValue: testMoney(t, "10"), IsActive: false, ApplyToEntireOrder: true,
	})

	_, err := f.orders.Checkout(CheckoutInput{
		SessionKey:    "sess-reject",
		OrderType:     constants.OrderTypePickup,
		PromotionCode: "DORMANT",
	})
	var rejected *PromotionRejectedError
	if !errors.As(err, &rejected) {
		t.Fatalf("want PromotionRejectedError, got %v", err)
	}
	if rejected.Reason != PromotionReasonInactive {
		t.Fatalf("reason want inactive, got %s", rejected.Reason)
	}
	if !errors.Is(err, ErrPromotionInvalid) {
		t.Fatalf("rejection should unwrap to ErrPromotionInvalid")
	}

	// 整单中止：无订单写入，购物车保持原样
	var orderCount int64
	if err := f.db.Model(&models.Order{}).Count(&orderCount).Error; err != nil {
		t.Fatalf("count orders failed: %v", err)
	}
	if orderCount != 0 {
		t.Fatalf("rejected promotion must not create orders, found %d", orderCount)
	}
	cart, err := f.carts.Get("sess-reject")
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if len(cart.Lines) != 1 {
		t.Fatalf("cart should survive rejected checkout, got %d lines", len(cart.Lines))
	}
}

func TestCheckoutAppliesPromotionAndIncrementsUsage(t *testing.T) {
	f := setupOrderServiceTest(t)
	f.fillCart(t, "sess-promo", "margherita", "20.00", 1)
	promotion := createTestPromotion(t, f.db, models.Promotion{
		Code: "TENOFF", DiscountType: constants.DiscountTypePercentage,
		DiscountValue: testMoney(t, "10"), IsActive: true, ApplyToEntireOrder: true,
	})

	order, err := f.orders.Checkout(CheckoutInput{
		SessionKey:    "sess-promo",
		OrderType:     constants.OrderTypePickup,
		PromotionCode: "tenoff",
	})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if order.DiscountAmount.String() != "2.00" || order.Total.String() != "18.00" {
		t.Fatalf("want discount 2.00 total 18.00, got %s / %s", order.DiscountAmount.String(), order.Total.String())
	}
	if order.DiscountCode == nil || *order.DiscountCode != "TENOFF" {
		t.Fatalf("discount code not recorded: %v", order.DiscountCode)
	}

	var reloaded models.Promotion
	if err := f.db.First(&reloaded, promotion.ID).Error; err != nil {
		t.Fatalf("reload promotion failed: %v", err)
	}
	if reloaded.TimesUsed != 1 {
		t.Fatalf("usage should increment once, got %d", reloaded.TimesUsed)
	}
}

func TestCheckoutWhenOrderingClosed(t *testing.T) {
	f := setupOrderServiceTest(t)
	f.fillCart(t, "sess-closed", "margherita", "20.00", 1)

	config, err := f.settings.Load()
	if err != nil {
		t.Fatalf("load settings failed: %v", err)
	}
	config.AcceptingOrders = false
	if err := f.settings.Save(adminTestActor(), config); err != nil {
		t.Fatalf("save settings failed: %v", err)
	}

	if _, err := f.orders.Checkout(CheckoutInput{SessionKey: "sess-closed", OrderType: constants.OrderTypePickup}); err != ErrOrderingClosed {
		t.Fatalf("want ErrOrderingClosed, got %v", err)
	}
}

func TestCheckoutDeductsTrackedStock(t *testing.T) {
	f := setupOrderServiceTest(t)

	category := createTestCategory(t, f.db, "drinks")
	cola := createTestProduct(t, f.db, category.ID, "cola", testProductOptions{BasePrice: "16.00", TrackStock: true})
	if err := f.db.Create(&models.StockItem{ProductID: cola.ID, Quantity: 10, ReorderLevel: 2}).Error; err != nil {
		t.Fatalf("create stock item failed: %v", err)
	}
	if _, err := f.carts.AddLine("sess-stock", AddLineInput{ProductID: cola.ID, Quantity: 2}); err != nil {
		t.Fatalf("add line failed: %v", err)
	}

	order, err := f.orders.Checkout(CheckoutInput{SessionKey: "sess-stock", OrderType: constants.OrderTypePickup})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	var item models.StockItem
	if err := f.db.Where("product_id = ?", cola.ID).First(&item).Error; err != nil {
		t.Fatalf("reload stock failed: %v", err)
	}
	if item.Quantity != 8 {
		t.Fatalf("stock want 8 after sale, got %d", item.Quantity)
	}
	var movement models.StockMovement
	if err := f.db.Where("stock_item_id = ?", item.ID).First(&movement).Error; err != nil {
		t.Fatalf("load movement failed: %v", err)
	}
	if movement.MovementType != constants.MovementTypeSale || movement.Reference != order.OrderNo {
		t.Fatalf("sale movement not recorded: %+v", movement)
	}
}

func TestUpdateStatusLifecycle(t *testing.T) {
	f := setupOrderServiceTest(t)
	f.fillCart(t, "sess-status", "margherita", "20.00", 1)
	order, err := f.orders.Checkout(CheckoutInput{SessionKey: "sess-status", OrderType: constants.OrderTypePickup})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	admin := adminTestActor()

	updated, err := f.orders.UpdateStatus(admin, order.ID, constants.OrderStatusPickedUp)
	if err != nil {
		t.Fatalf("update to picked_up failed: %v", err)
	}
	if updated.CompletedAt == nil {
		t.Fatalf("completion time should be set on picked_up")
	}

	// 完成态不可取消
	if _, err := f.orders.UpdateStatus(admin, order.ID, constants.OrderStatusCancelled); err != ErrInvalidOrderStatus {
		t.Fatalf("cancelling completed order want ErrInvalidOrderStatus, got %v", err)
	}

	// 移出完成态清除完成时间
	updated, err = f.orders.UpdateStatus(admin, order.ID, constants.OrderStatusPreparing)
	if err != nil {
		t.Fatalf("update back to preparing failed: %v", err)
	}
	if updated.CompletedAt != nil {
		t.Fatalf("completion time should clear when leaving completed state")
	}

	if _, err := f.orders.UpdateStatus(admin, order.ID, "vaporized"); err != ErrInvalidOrderStatus {
		t.Fatalf("unknown status want ErrInvalidOrderStatus, got %v", err)
	}

	// cancelled 为终态
	if _, err := f.orders.UpdateStatus(admin, order.ID, constants.OrderStatusCancelled); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if _, err := f.orders.UpdateStatus(admin, order.ID, constants.OrderStatusPending); err != ErrOrderStatusTerminal {
		t.Fatalf("cancelled order is terminal, got %v", err)
	}

	viewer := Actor{ID: 2, Name: "viewer"}
	if _, err := f.orders.UpdateStatus(viewer, order.ID, constants.OrderStatusConfirmed); err != ErrPermissionDenied {
		t.Fatalf("actor without capability want ErrPermissionDenied, got %v", err)
	}
}

func TestLookupRequiresMatchingEmail(t *testing.T) {
	f := setupOrderServiceTest(t)
	f.fillCart(t, "sess-lookup", "margherita", "20.00", 1)
	order, err := f.orders.Checkout(CheckoutInput{
		SessionKey:    "sess-lookup",
		CustomerEmail: "dana@example.com",
		OrderType:     constants.OrderTypePickup,
	})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	found, err := f.orders.Lookup(order.OrderNo, "Dana@Example.com")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if found.ID != order.ID {
		t.Fatalf("lookup returned wrong order")
	}

	if _, err := f.orders.Lookup(order.OrderNo, "other@example.com"); err != ErrOrderNotFound {
		t.Fatalf("email mismatch want ErrOrderNotFound, got %v", err)
	}
	if _, err := f.orders.Lookup("ORD-00000000-ZZZZ", "dana@example.com"); err != ErrOrderNotFound {
		t.Fatalf("unknown order want ErrOrderNotFound, got %v", err)
	}
}
