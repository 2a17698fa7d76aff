package service

import (
	"time"

	"github.com/pizzeria-next/internal/constants"
	"github.com/pizzeria-next/internal/logger"
	"github.com/pizzeria-next/internal/models"
	"github.com/pizzeria-next/internal/repository"

	"gorm.io/gorm"
)

// SystemActorName 系统内部操作（结算扣减）记录的操作者名称
const SystemActorName = "system"

// StockAlertNotifier 低库存告警触发后的异步通知（可为 nil）
type StockAlertNotifier interface {
	NotifyStockAlert(alertID uint)
}

// AdjustInput 库存调整输入
type AdjustInput struct {
	ProductID uint
	Delta     int
	Kind      string
	Reference string
	Note      string
	ActorID   *uint
	ActorName string
}

// InventoryService 库存台账服务
type InventoryService struct {
	stockRepo   repository.StockRepository
	productRepo repository.ProductRepository
	notifier    StockAlertNotifier
}

// NewInventoryService 创建库存服务
func NewInventoryService(stockRepo repository.StockRepository, productRepo repository.ProductRepository, notifier StockAlertNotifier) *InventoryService {
	return &InventoryService{
		stockRepo:   stockRepo,
		productRepo: productRepo,
		notifier:    notifier,
	}
}

// Adjust 管理端库存调整（需库存管理能力）
func (s *InventoryService) Adjust(actor Actor, productID uint, delta int, kind, reference, note string) (*models.StockMovement, error) {
	if !actor.CanManageInventory {
		return nil, ErrPermissionDenied
	}
	if !constants.IsValidMovementType(kind) {
		return nil, ErrInvalidMovementType
	}
	actorID := actor.ID
	return s.adjust(AdjustInput{
		ProductID: productID,
		Delta:     delta,
		Kind:      kind,
		Reference: reference,
		Note:      note,
		ActorID:   &actorID,
		ActorName: actor.Name,
	})
}

// Receive 入库（需库存管理能力）
func (s *InventoryService) Receive(actor Actor, productID uint, quantity int, reference, note string) (*models.StockMovement, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	return s.Adjust(actor, productID, quantity, constants.MovementTypeReceipt, reference, note)
}

// ReturnStock 退货入库（需库存管理能力）
func (s *InventoryService) ReturnStock(actor Actor, productID uint, quantity int, reference, note string) (*models.StockMovement, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	return s.Adjust(actor, productID, quantity, constants.MovementTypeReturn, reference, note)
}

// RecordSale 结算后的系统扣减（不做能力校验，失败由调用方记录日志）
func (s *InventoryService) RecordSale(productID uint, quantity int, orderNo string) (*models.StockMovement, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	return s.adjust(AdjustInput{
		ProductID: productID,
		Delta:     -quantity,
		Kind:      constants.MovementTypeSale,
		Reference: orderNo,
		ActorName: SystemActorName,
	})
}

// adjust 执行一次原子库存调整：加行锁、钳制下限、记录流水、评估告警。
// 商品不追踪库存时返回 (nil, nil)。
func (s *InventoryService) adjust(input AdjustInput) (*models.StockMovement, error) {
	product, err := s.productRepo.GetByID(input.ProductID, false)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if !product.TrackInventory {
		return nil, nil
	}

	var movement *models.StockMovement
	var raisedAlertID uint
	err = s.stockRepo.Transaction(func(tx *gorm.DB) error {
		txRepo := s.stockRepo.WithTx(tx)

		item, err := txRepo.GetItemByProductIDForUpdate(input.ProductID)
		if err != nil {
			return err
		}
		if item == nil {
			item = &models.StockItem{
				ProductID:    input.ProductID,
				Quantity:     0,
				ReorderLevel: product.ReorderLevel,
			}
			if err := txRepo.CreateItem(item); err != nil {
				return err
			}
			// 重新加锁保证后续读改写串行
			item, err = txRepo.GetItemByProductIDForUpdate(input.ProductID)
			if err != nil {
				return err
			}
		}

		before := item.Quantity
		after := before + input.Delta
		if after < 0 {
			// 库存不允许为负：超卖钳制到零而不是拒绝
			after = 0
		}
		item.Quantity = after
		if input.Kind == constants.MovementTypeReceipt {
			now := time.Now()
			item.LastRestockedAt = &now
		}
		if err := txRepo.UpdateItem(item); err != nil {
			return err
		}

		movement = &models.StockMovement{
			StockItemID:    item.ID,
			MovementType:   input.Kind,
			QuantityDelta:  input.Delta,
			QuantityBefore: before,
			QuantityAfter:  after,
			Reference:      input.Reference,
			Notes:          input.Note,
			ActorID:        input.ActorID,
			ActorName:      input.ActorName,
		}
		if err := txRepo.CreateMovement(movement); err != nil {
			return err
		}

		alertID, err := s.reconcileAlert(txRepo, item)
		if err != nil {
			return err
		}
		raisedAlertID = alertID
		return nil
	})
	if err != nil {
		return nil, err
	}

	if raisedAlertID != 0 && s.notifier != nil {
		s.notifier.NotifyStockAlert(raisedAlertID)
	}
	return movement, nil
}

// reconcileAlert 调整后的告警滞回：阈值之下保证恰有一条活跃告警，回升则解除。
// 返回新建告警的 ID（未新建为 0）。
func (s *InventoryService) reconcileAlert(repo repository.StockRepository, item *models.StockItem) (uint, error) {
	active, err := repo.GetActiveAlert(item.ID)
	if err != nil {
		return 0, err
	}
	if item.IsLow() {
		if active != nil {
			return 0, nil
		}
		alert := &models.StockAlert{
			StockItemID:     item.ID,
			Status:          constants.AlertStatusActive,
			QuantityAtRaise: item.Quantity,
		}
		if err := repo.CreateAlert(alert); err != nil {
			return 0, err
		}
		logger.Warnw("stock_alert_raised", "stock_item_id", item.ID, "product_id", item.ProductID, "quantity", item.Quantity, "reorder_level", item.ReorderLevel)
		return alert.ID, nil
	}
	if active != nil {
		now := time.Now()
		active.Status = constants.AlertStatusResolved
		active.ResolvedAt = &now
		if err := repo.UpdateAlert(active); err != nil {
			return 0, err
		}
		logger.Infow("stock_alert_resolved", "stock_item_id", item.ID, "quantity", item.Quantity)
	}
	return 0, nil
}

// ListStock 库存列表（可只看低库存）
func (s *InventoryService) ListStock(actor Actor, onlyLow bool) ([]models.StockItem, error) {
	if !actor.CanManageInventory {
		return nil, ErrPermissionDenied
	}
	return s.stockRepo.ListItems(onlyLow)
}

// ListMovements 库存流水列表
func (s *InventoryService) ListMovements(actor Actor, filter repository.StockMovementListFilter) ([]models.StockMovement, int64, error) {
	if !actor.CanManageInventory {
		return nil, 0, ErrPermissionDenied
	}
	return s.stockRepo.ListMovements(filter)
}

// ListAlerts 告警列表
func (s *InventoryService) ListAlerts(actor Actor, filter repository.StockAlertListFilter) ([]models.StockAlert, int64, error) {
	if !actor.CanManageInventory {
		return nil, 0, ErrPermissionDenied
	}
	return s.stockRepo.ListAlerts(filter)
}

// AcknowledgeAlert 确认告警（活跃告警转为已确认，仍算未解除）
func (s *InventoryService) AcknowledgeAlert(actor Actor, alertID uint) (*models.StockAlert, error) {
	if !actor.CanManageInventory {
		return nil, ErrPermissionDenied
	}
	alert, err := s.stockRepo.GetAlertByID(alertID)
	if err != nil {
		return nil, err
	}
	if alert == nil {
		return nil, ErrStockAlertNotFound
	}
	if alert.Status != constants.AlertStatusActive {
		return alert, nil
	}
	now := time.Now()
	actorID := actor.ID
	alert.Status = constants.AlertStatusAcknowledged
	alert.AcknowledgedBy = &actorID
	alert.AcknowledgedAt = &now
	if err := s.stockRepo.UpdateAlert(alert); err != nil {
		return nil, err
	}
	return alert, nil
}
