package service

import (
	"time"

	"github.com/pizzeria-next/internal/constants"
	"github.com/pizzeria-next/internal/models"
	"github.com/pizzeria-next/internal/repository"
)

// 优惠码校验失败原因（公开返回给前端展示）
const (
	PromotionReasonValid         = "valid"
	PromotionReasonNotFound      = "not_found"
	PromotionReasonInactive      = "inactive"
	PromotionReasonNotYetStarted = "not_yet_started"
	PromotionReasonExpired       = "expired"
	PromotionReasonExhausted     = "usage_exhausted"
	PromotionReasonBelowMinimum  = "below_minimum"
)

var promotionReasonMessages = map[string]string{
	PromotionReasonNotFound:      "Promotion code not found",
	PromotionReasonInactive:      "This promotion is no longer active",
	PromotionReasonNotYetStarted: "This promotion has not started yet",
	PromotionReasonExpired:       "This promotion has expired",
	PromotionReasonExhausted:     "This promotion has reached its usage limit",
	PromotionReasonBelowMinimum:  "Order does not meet the minimum amount for this promotion",
}

// DiscountRule 折扣规则（按类型标签分派）
type DiscountRule struct {
	Kind    string
	Percent models.Money  // percentage 类型的百分比值
	Cap     *models.Money // percentage 类型的封顶金额
	Amount  models.Money  // fixed 类型的固定减免
}

// RuleFromPromotion 从优惠码记录构造折扣规则
func RuleFromPromotion(promotion *models.Promotion) (DiscountRule, error) {
	if promotion == nil {
		return DiscountRule{}, ErrPromotionNotFound
	}
	switch promotion.DiscountType {
	case constants.DiscountTypePercentage:
		return DiscountRule{
			Kind:    constants.DiscountTypePercentage,
			Percent: promotion.DiscountValue,
			Cap:     promotion.MaximumDiscount,
		}, nil
	case constants.DiscountTypeFixed:
		return DiscountRule{
			Kind:   constants.DiscountTypeFixed,
			Amount: promotion.DiscountValue,
		}, nil
	case constants.DiscountTypeFreeDelivery:
		return DiscountRule{Kind: constants.DiscountTypeFreeDelivery}, nil
	default:
		return DiscountRule{}, ErrInvalidDiscount
	}
}

// Apply 在给定折扣基数与配送费上计算减免金额
func (r DiscountRule) Apply(base, deliveryFee models.Money) models.Money {
	var discount models.Money
	switch r.Kind {
	case constants.DiscountTypeFreeDelivery:
		return deliveryFee
	case constants.DiscountTypePercentage:
		discount = base.Percent(r.Percent.Decimal)
		if r.Cap != nil && discount.GreaterThan(*r.Cap) {
			discount = *r.Cap
		}
	case constants.DiscountTypeFixed:
		discount = models.MinMoney(r.Amount, base)
	default:
		return models.ZeroMoney()
	}
	if discount.IsNegative() {
		return models.ZeroMoney()
	}
	return models.MinMoney(discount, base)
}

// PromotionValidation 优惠码校验结果（校验失败不视为错误）
type PromotionValidation struct {
	Valid          bool              `json:"valid"`
	Reason         string            `json:"reason"`
	Message        string            `json:"message"`
	DiscountAmount models.Money      `json:"discount_amount"`
	Promotion      *models.Promotion `json:"promotion,omitempty"`
}

// PromotionService 优惠码评估服务
type PromotionService struct {
	promotionRepo repository.PromotionRepository
}

// NewPromotionService 创建优惠码服务
func NewPromotionService(promotionRepo repository.PromotionRepository) *PromotionService {
	return &PromotionService{promotionRepo: promotionRepo}
}

// evaluateState 按固定顺序评估优惠码状态，返回失败原因（空串表示可用）
func evaluateState(promotion *models.Promotion, subtotal models.Money, now time.Time) string {
	if promotion == nil {
		return PromotionReasonNotFound
	}
	if !promotion.IsActive {
		return PromotionReasonInactive
	}
	if promotion.ValidFrom != nil && now.Before(*promotion.ValidFrom) {
		return PromotionReasonNotYetStarted
	}
	if promotion.ValidUntil != nil && now.After(*promotion.ValidUntil) {
		return PromotionReasonExpired
	}
	if promotion.IsExhausted() {
		return PromotionReasonExhausted
	}
	if promotion.MinimumOrderAmount != nil && subtotal.LessThan(*promotion.MinimumOrderAmount) {
		return PromotionReasonBelowMinimum
	}
	return ""
}

// Validate 公开的预结算校验，任何状态下都返回结果而不报错。
func (s *PromotionService) Validate(code string, subtotal, deliveryFee models.Money, now time.Time) (*PromotionValidation, error) {
	promotion, err := s.promotionRepo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	return s.evaluate(promotion, subtotal, deliveryFee, nil, now), nil
}

// evaluate 组装校验结果（items 为空时按全单基数估算折扣）
func (s *PromotionService) evaluate(promotion *models.Promotion, subtotal, deliveryFee models.Money, items []models.OrderItem, now time.Time) *PromotionValidation {
	if reason := evaluateState(promotion, subtotal, now); reason != "" {
		return &PromotionValidation{
			Valid:          false,
			Reason:         reason,
			Message:        promotionReasonMessages[reason],
			DiscountAmount: models.ZeroMoney(),
		}
	}
	discount := s.CalculateDiscount(promotion, subtotal, deliveryFee, items)
	return &PromotionValidation{
		Valid:          true,
		Reason:         PromotionReasonValid,
		Message:        "Promotion applied",
		DiscountAmount: discount,
		Promotion:      promotion,
	}
}

// CalculateDiscount 计算减免金额：全单基数或按限定商品逐项累积基数。
// 套餐内含项无独立价格，不参与基数（即使 apply_to_included_items 打开）。
func (s *PromotionService) CalculateDiscount(promotion *models.Promotion, subtotal, deliveryFee models.Money, items []models.OrderItem) models.Money {
	rule, err := RuleFromPromotion(promotion)
	if err != nil {
		return models.ZeroMoney()
	}
	if rule.Kind == constants.DiscountTypeFreeDelivery {
		return rule.Apply(models.ZeroMoney(), deliveryFee)
	}

	base := subtotal
	if promotion.RestrictsProducts() && len(items) > 0 {
		base = models.ZeroMoney()
		for _, item := range items {
			if !promotion.AppliesToProduct(item.ProductID) {
				continue
			}
			if promotion.ApplyToBasePrice {
				base = base.AddMoney(item.UnitPrice.MulInt(item.Quantity))
			}
			if promotion.ApplyToToppings {
				base = base.AddMoney(item.SelectedToppings.Total().MulInt(item.Quantity))
			}
		}
	}
	return rule.Apply(base, deliveryFee)
}

// ValidateForCheckout 结算事务内的加锁校验（调用方需处于事务上下文）
func (s *PromotionService) ValidateForCheckout(repo repository.PromotionRepository, code string, subtotal, deliveryFee models.Money, items []models.OrderItem, now time.Time) (*PromotionValidation, error) {
	promotion, err := repo.GetByCodeForUpdate(code)
	if err != nil {
		return nil, err
	}
	return s.evaluate(promotion, subtotal, deliveryFee, items, now), nil
}
