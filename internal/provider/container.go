package provider

import (
	"github.com/pizzeria-next/internal/cache"
	"github.com/pizzeria-next/internal/config"
	"github.com/pizzeria-next/internal/logger"
	"github.com/pizzeria-next/internal/models"
	"github.com/pizzeria-next/internal/queue"
	"github.com/pizzeria-next/internal/repository"
	"github.com/pizzeria-next/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client
	Notifier    *queue.Notifier

	// Repositories
	StaffRepo     repository.StaffRepository
	ProductRepo   repository.ProductRepository
	CatalogRepo   repository.CatalogRepository
	CartRepo      repository.CartRepository
	OrderRepo     repository.OrderRepository
	PromotionRepo repository.PromotionRepository
	StockRepo     repository.StockRepository
	SettingRepo   repository.SettingRepository

	// Services
	StaffAuthService      *service.StaffAuthService
	CatalogService        *service.CatalogService
	PricingService        *service.PricingService
	CartService           *service.CartService
	PromotionService      *service.PromotionService
	PromotionAdminService *service.PromotionAdminService
	StoreSettingsService  *service.StoreSettingsService
	InventoryService      *service.InventoryService
	BarcodeService        *service.BarcodeService
	OrderService          *service.OrderService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
		Notifier:    queue.NewNotifier(queueClient),
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.StaffRepo = repository.NewStaffRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CatalogRepo = repository.NewCatalogRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.PromotionRepo = repository.NewPromotionRepository(db)
	c.StockRepo = repository.NewStockRepository(db)
	c.SettingRepo = repository.NewSettingRepository(db)
}

func (c *Container) initServices() {
	c.StaffAuthService = service.NewStaffAuthService(c.Config, c.StaffRepo)
	c.CatalogService = service.NewCatalogService(c.ProductRepo, c.CatalogRepo)
	c.PricingService = service.NewPricingService()
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo, c.CatalogRepo, c.PricingService)
	c.PromotionService = service.NewPromotionService(c.PromotionRepo)
	c.PromotionAdminService = service.NewPromotionAdminService(c.PromotionRepo, c.ProductRepo)
	c.StoreSettingsService = service.NewStoreSettingsService(c.SettingRepo)
	c.InventoryService = service.NewInventoryService(c.StockRepo, c.ProductRepo, c.Notifier)
	c.BarcodeService = service.NewBarcodeService(c.ProductRepo)
	c.OrderService = service.NewOrderService(
		c.OrderRepo,
		c.CartRepo,
		c.PromotionRepo,
		c.PromotionService,
		c.StoreSettingsService,
		c.InventoryService,
		c.Notifier,
	)
}
