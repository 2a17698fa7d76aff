package service

import (
	"time"

	"github.com/pizzeria-next/internal/models"
)

// PricingService 定价服务，购物车与结算共用同一套计算。
type PricingService struct{}

// NewPricingService 创建定价服务
func NewPricingService() *PricingService {
	return &PricingService{}
}

// UnitPrice 计算单价：促销期内取促销价，叠加规格加价。配料单独累加，不进入单价。
func (s *PricingService) UnitPrice(product *models.Product, size *models.Size, now time.Time) (models.Money, error) {
	if product == nil {
		return models.ZeroMoney(), ErrProductNotFound
	}
	price := product.CurrentBasePrice(now)
	if size != nil {
		if !product.AllowsSize(size.ID) {
			return models.ZeroMoney(), ErrInvalidSizeForProduct
		}
		price = price.AddMoney(size.PriceModifier)
	}
	return price, nil
}

// ValidateToppings 校验配料均在商品允许集合内并生成快照
func (s *PricingService) ValidateToppings(product *models.Product, toppings []models.Topping) (models.ToppingSnapshots, error) {
	if product == nil {
		return nil, ErrProductNotFound
	}
	snapshots := make(models.ToppingSnapshots, 0, len(toppings))
	for _, topping := range toppings {
		if !product.AllowsTopping(topping.ID) {
			return nil, ErrInvalidToppingForProduct
		}
		snapshots = append(snapshots, models.ToppingSnapshot{
			ID:    topping.ID,
			Name:  topping.Name,
			Price: topping.Price,
		})
	}
	return snapshots, nil
}

// LineSubtotal 行小计：(单价 + 配料合计) × 数量
func (s *PricingService) LineSubtotal(unitPrice models.Money, toppings models.ToppingSnapshots, quantity int) models.Money {
	return unitPrice.AddMoney(toppings.Total()).MulInt(quantity)
}
