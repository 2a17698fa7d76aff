package public

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pizzeria-next/internal/config"
	"github.com/pizzeria-next/internal/models"
	"github.com/pizzeria-next/internal/provider"
	"github.com/pizzeria-next/internal/repository"
	"github.com/pizzeria-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func newTestHandler(t *testing.T) (*Handler, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:public_handler_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Category{},
		&models.Size{},
		&models.Topping{},
		&models.Tag{},
		&models.Ingredient{},
		&models.IncludedItem{},
		&models.Product{},
		&models.Cart{},
		&models.CartLine{},
		&models.Order{},
		&models.OrderItem{},
		&models.Promotion{},
		&models.StockItem{},
		&models.StockMovement{},
		&models.StockAlert{},
		&models.Setting{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	cartRepo := repository.NewCartRepository(db)
	productRepo := repository.NewProductRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	promotionRepo := repository.NewPromotionRepository(db)

	c := &provider.Container{Config: &config.Config{}}
	c.CartRepo = cartRepo
	c.ProductRepo = productRepo
	c.CatalogRepo = catalogRepo
	c.PromotionRepo = promotionRepo
	c.OrderRepo = repository.NewOrderRepository(db)
	c.SettingRepo = repository.NewSettingRepository(db)
	c.StockRepo = repository.NewStockRepository(db)

	c.PricingService = service.NewPricingService()
	c.CatalogService = service.NewCatalogService(productRepo, catalogRepo)
	c.CartService = service.NewCartService(cartRepo, productRepo, catalogRepo, c.PricingService)
	c.PromotionService = service.NewPromotionService(promotionRepo)
	c.StoreSettingsService = service.NewStoreSettingsService(c.SettingRepo)
	c.InventoryService = service.NewInventoryService(c.StockRepo, productRepo, nil)
	c.OrderService = service.NewOrderService(
		c.OrderRepo, cartRepo, promotionRepo,
		c.PromotionService, c.StoreSettingsService, c.InventoryService, nil,
	)

	return New(c), db
}

// decodeEnvelope 解析统一响应结构
func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) (int, string, map[string]interface{}) {
	t.Helper()

	var body struct {
		StatusCode int             `json:"status_code"`
		Msg        string          `json:"msg"`
		Data       json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode envelope failed: %v (body %s)", err, w.Body.String())
	}
	data := map[string]interface{}{}
	if len(body.Data) > 0 && string(body.Data) != "null" {
		if err := json.Unmarshal(body.Data, &data); err != nil {
			// 数组等非对象数据按空 map 返回
			data = map[string]interface{}{}
		}
	}
	return body.StatusCode, body.Msg, data
}
