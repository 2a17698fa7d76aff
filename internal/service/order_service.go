package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/pizzeria-next/internal/constants"
	"github.com/pizzeria-next/internal/logger"
	"github.com/pizzeria-next/internal/models"
	"github.com/pizzeria-next/internal/repository"

	"gorm.io/gorm"
)

// OrderNotifier 下单成功后的异步通知（可为 nil）
type OrderNotifier interface {
	NotifyOrderPlaced(orderID uint)
}

// PromotionRejectedError 结算中优惠码校验失败，整单回滚。
type PromotionRejectedError struct {
	Reason  string
	Message string
}

func (e *PromotionRejectedError) Error() string {
	return e.Message
}

// Unwrap 归类为优惠码无效错误
func (e *PromotionRejectedError) Unwrap() error {
	return ErrPromotionInvalid
}

// CheckoutInput 结算输入
type CheckoutInput struct {
	SessionKey           string
	CustomerName         string
	CustomerEmail        string
	CustomerPhone        string
	OrderType            string
	DeliveryAddress      string
	DeliveryInstructions string
	OrderNotes           string
	DeliveryFee          *models.Money // 调用方覆盖配送费，nil 取门店默认
	PromotionCode        string
}

// OrderService 订单服务
type OrderService struct {
	orderRepo     repository.OrderRepository
	cartRepo      repository.CartRepository
	promotionRepo repository.PromotionRepository
	promotions    *PromotionService
	settings      *StoreSettingsService
	inventory     *InventoryService
	notifier      OrderNotifier
}

// NewOrderService 创建订单服务
func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	promotionRepo repository.PromotionRepository,
	promotions *PromotionService,
	settings *StoreSettingsService,
	inventory *InventoryService,
	notifier OrderNotifier,
) *OrderService {
	return &OrderService{
		orderRepo:     orderRepo,
		cartRepo:      cartRepo,
		promotionRepo: promotionRepo,
		promotions:    promotions,
		settings:      settings,
		inventory:     inventory,
		notifier:      notifier,
	}
}

// Checkout 结算：单事务内建单、校验优惠码、清空购物车；库存扣减在事务外尽力而为。
func (s *OrderService) Checkout(input CheckoutInput) (*models.Order, error) {
	config, err := s.settings.Load()
	if err != nil {
		return nil, err
	}
	if !config.AcceptingOrders {
		return nil, ErrOrderingClosed
	}

	if input.OrderType != constants.OrderTypeDelivery && input.OrderType != constants.OrderTypePickup {
		return nil, ErrInvalidOrderType
	}
	if input.OrderType == constants.OrderTypeDelivery && strings.TrimSpace(input.DeliveryAddress) == "" {
		return nil, ErrMissingDeliveryAddress
	}

	cart, err := s.cartRepo.GetBySessionKey(input.SessionKey)
	if err != nil {
		return nil, err
	}
	if cart == nil || len(cart.Lines) == 0 {
		return nil, ErrEmptyCart
	}

	// 小计以冻结单价为准，逐行重算
	subtotal := models.ZeroMoney()
	for i := range cart.Lines {
		subtotal = subtotal.AddMoney(cart.Lines[i].Subtotal())
	}

	deliveryFee := s.resolveDeliveryFee(input, subtotal, config)
	if input.OrderType == constants.OrderTypeDelivery && subtotal.LessThan(config.MinimumOrderAmount) {
		return nil, ErrBelowMinimumOrder
	}

	now := time.Now()
	var order *models.Order
	err = s.orderRepo.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		cartRepo := s.cartRepo.WithTx(tx)
		promotionRepo := s.promotionRepo.WithTx(tx)

		orderNo, err := s.generateOrderNo(orderRepo, now)
		if err != nil {
			return err
		}

		items := snapshotCartLines(cart)
		order = &models.Order{
			OrderNo:              orderNo,
			CustomerName:         strings.TrimSpace(input.CustomerName),
			CustomerEmail:        strings.ToLower(strings.TrimSpace(input.CustomerEmail)),
			CustomerPhone:        strings.TrimSpace(input.CustomerPhone),
			OrderType:            input.OrderType,
			Status:               constants.OrderStatusPending,
			OrderNotes:           input.OrderNotes,
			DeliveryAddress:      strings.TrimSpace(input.DeliveryAddress),
			DeliveryInstructions: input.DeliveryInstructions,
			Subtotal:             subtotal,
			DeliveryFee:          deliveryFee,
			DiscountAmount:       models.ZeroMoney(),
			CartSessionKey:       cart.SessionKey,
			Items:                items,
		}

		if code := strings.TrimSpace(input.PromotionCode); code != "" {
			validation, err := s.promotions.ValidateForCheckout(promotionRepo, code, subtotal, deliveryFee, items, now)
			if err != nil {
				return err
			}
			if !validation.Valid {
				// 全单中止：优惠码无效时不产生任何写入
				return &PromotionRejectedError{Reason: validation.Reason, Message: validation.Message}
			}
			if err := promotionRepo.IncrementUsage(validation.Promotion.ID); err != nil {
				return err
			}
			order.DiscountAmount = validation.DiscountAmount
			order.DiscountCode = &validation.Promotion.Code
		}

		// 折扣不得超过小计加配送费
		gross := subtotal.AddMoney(deliveryFee)
		if order.DiscountAmount.GreaterThan(gross) {
			order.DiscountAmount = gross
		}
		order.Total = gross.SubMoney(order.DiscountAmount)

		if err := orderRepo.Create(order); err != nil {
			return err
		}
		// 只删除建单时快照到的行，事务期间并发加入的行保留在购物车里
		lineIDs := make([]uint, 0, len(cart.Lines))
		for i := range cart.Lines {
			lineIDs = append(lineIDs, cart.Lines[i].ID)
		}
		return cartRepo.DeleteLinesByID(cart.ID, lineIDs)
	})
	if err != nil {
		return nil, err
	}

	s.recordSales(cart, order.OrderNo)

	if s.notifier != nil {
		s.notifier.NotifyOrderPlaced(order.ID)
	}
	logger.Infow("order_placed", "order_no", order.OrderNo, "order_type", order.OrderType, "total", order.Total.String())
	return order, nil
}

// resolveDeliveryFee 自取为零；配送取调用方覆盖或门店默认，达免配送门槛归零。
func (s *OrderService) resolveDeliveryFee(input CheckoutInput, subtotal models.Money, config StoreConfig) models.Money {
	if input.OrderType != constants.OrderTypeDelivery {
		return models.ZeroMoney()
	}
	fee := config.DeliveryFee
	if input.DeliveryFee != nil {
		fee = *input.DeliveryFee
	}
	if fee.IsNegative() {
		fee = models.ZeroMoney()
	}
	threshold := config.FreeDeliveryThreshold
	if threshold.GreaterThan(models.ZeroMoney()) && !subtotal.LessThan(threshold) {
		return models.ZeroMoney()
	}
	return fee
}

// snapshotCartLines 将购物车行深快照为订单项
func snapshotCartLines(cart *models.Cart) []models.OrderItem {
	items := make([]models.OrderItem, 0, len(cart.Lines))
	for i := range cart.Lines {
		line := &cart.Lines[i]
		item := models.OrderItem{
			ProductID:        line.ProductID,
			SizeID:           line.SizeID,
			SelectedToppings: line.SelectedToppings,
			IncludedItems:    line.IncludedItems,
			UnitPrice:        line.UnitPrice,
			Quantity:         line.Quantity,
			Subtotal:         line.Subtotal(),
		}
		if line.Product != nil {
			item.ProductName = line.Product.Name
			item.IsCombo = line.Product.IsCombo
		}
		if line.Size != nil {
			name := line.Size.Name
			item.SizeName = &name
		}
		items = append(items, item)
	}
	return items
}

// recordSales 事务外扣减库存：失败只记日志，不回滚已落订单。
func (s *OrderService) recordSales(cart *models.Cart, orderNo string) {
	if s.inventory == nil {
		return
	}
	for i := range cart.Lines {
		line := &cart.Lines[i]
		if line.Product == nil || !line.Product.TrackInventory {
			continue
		}
		if _, err := s.inventory.RecordSale(line.ProductID, line.Quantity, orderNo); err != nil {
			logger.Errorw("stock_sale_record_failed", "order_no", orderNo, "product_id", line.ProductID, "quantity", line.Quantity, "error", err)
		}
	}
}

// generateOrderNo 生成 ORD-日期-4位随机后缀 的订单编号，碰撞则重试。
func (s *OrderService) generateOrderNo(repo repository.OrderRepository, now time.Time) (string, error) {
	for attempt := 0; attempt < 10; attempt++ {
		orderNo := fmt.Sprintf("ORD-%s-%s", now.Format("20060102"), randAlnum(4))
		exists, err := repo.ExistsOrderNo(orderNo)
		if err != nil {
			return "", err
		}
		if !exists {
			return orderNo, nil
		}
	}
	return "", fmt.Errorf("order number generation exhausted retries")
}

const alnumChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func randAlnum(length int) string {
	var b strings.Builder
	max := big.NewInt(int64(len(alnumChars)))
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			b.WriteByte(alnumChars[0])
			continue
		}
		b.WriteByte(alnumChars[n.Int64()])
	}
	return b.String()
}

// GetByID 管理端按 ID 获取订单
func (s *OrderService) GetByID(actor Actor, id uint) (*models.Order, error) {
	if !actor.CanManageOrders {
		return nil, ErrPermissionDenied
	}
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// Lookup 公开的订单查询：订单号必填，邮箱不匹配视为不存在。
func (s *OrderService) Lookup(orderNo, email string) (*models.Order, error) {
	orderNo = strings.TrimSpace(orderNo)
	if orderNo == "" {
		return nil, ErrOrderNotFound
	}
	order, err := s.orderRepo.GetByOrderNo(orderNo)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if email != "" && order.CustomerEmail != strings.ToLower(strings.TrimSpace(email)) {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// List 管理端订单列表
func (s *OrderService) List(actor Actor, filter repository.OrderListFilter) ([]models.Order, int64, error) {
	if !actor.CanManageOrders {
		return nil, 0, ErrPermissionDenied
	}
	return s.orderRepo.List(filter)
}

// Stats 订单统计
func (s *OrderService) Stats(actor Actor) (*repository.OrderStats, error) {
	if !actor.CanManageOrders {
		return nil, ErrPermissionDenied
	}
	return s.orderRepo.Stats(time.Now())
}

// UpdateStatus 订单状态流转：cancelled 为终态，完成态不可再取消；
// 进入 delivered/picked_up 记完成时间，移出则清除。
func (s *OrderService) UpdateStatus(actor Actor, orderID uint, status string) (*models.Order, error) {
	if !actor.CanManageOrders {
		return nil, ErrPermissionDenied
	}
	if !constants.IsValidOrderStatus(status) {
		return nil, ErrInvalidOrderStatus
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status == constants.OrderStatusCancelled {
		return nil, ErrOrderStatusTerminal
	}
	if status == constants.OrderStatusCancelled && constants.IsCompletedOrderStatus(order.Status) {
		return nil, ErrInvalidOrderStatus
	}

	previous := order.Status
	order.Status = status
	if constants.IsCompletedOrderStatus(status) {
		now := time.Now()
		order.CompletedAt = &now
	} else {
		order.CompletedAt = nil
	}
	if err := s.orderRepo.Update(order); err != nil {
		return nil, err
	}
	logger.Infow("order_status_changed", "order_no", order.OrderNo, "from", previous, "to", status, "actor", actor.Name)
	return order, nil
}
