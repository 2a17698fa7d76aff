package service

import (
	"time"

	"github.com/pizzeria-next/internal/constants"
	"github.com/pizzeria-next/internal/models"
	"github.com/pizzeria-next/internal/repository"
)

// PromotionInput 优惠码创建/更新输入
type PromotionInput struct {
	Code                 string
	Description          string
	DiscountType         string
	DiscountValue        models.Money
	MinimumOrderAmount   *models.Money
	MaximumDiscount      *models.Money
	UsageLimit           int
	ValidFrom            *time.Time
	ValidUntil           *time.Time
	IsActive             bool
	ApplyToBasePrice     bool
	ApplyToToppings      bool
	ApplyToIncluded      bool
	ApplyToEntireOrder   bool
	ApplicableProductIDs []uint
}

// PromotionAdminService 优惠码管理服务
type PromotionAdminService struct {
	promotionRepo repository.PromotionRepository
	productRepo   repository.ProductRepository
}

// NewPromotionAdminService 创建优惠码管理服务
func NewPromotionAdminService(promotionRepo repository.PromotionRepository, productRepo repository.ProductRepository) *PromotionAdminService {
	return &PromotionAdminService{
		promotionRepo: promotionRepo,
		productRepo:   productRepo,
	}
}

func validDiscountType(discountType string) bool {
	switch discountType {
	case constants.DiscountTypePercentage, constants.DiscountTypeFixed, constants.DiscountTypeFreeDelivery:
		return true
	}
	return false
}

// List 优惠码列表
func (s *PromotionAdminService) List(actor Actor, filter repository.PromotionListFilter) ([]models.Promotion, int64, error) {
	if !actor.CanManagePromos {
		return nil, 0, ErrPermissionDenied
	}
	return s.promotionRepo.List(filter)
}

// Get 获取优惠码
func (s *PromotionAdminService) Get(actor Actor, id uint) (*models.Promotion, error) {
	if !actor.CanManagePromos {
		return nil, ErrPermissionDenied
	}
	promotion, err := s.promotionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if promotion == nil {
		return nil, ErrPromotionNotFound
	}
	return promotion, nil
}

// Create 创建优惠码（重复码返回冲突）
func (s *PromotionAdminService) Create(actor Actor, input PromotionInput) (*models.Promotion, error) {
	if !actor.CanManagePromos {
		return nil, ErrPermissionDenied
	}
	if !validDiscountType(input.DiscountType) {
		return nil, ErrInvalidDiscount
	}
	code := models.NormalizeCode(input.Code)
	if code == "" {
		return nil, ErrInvalidDiscount
	}
	existing, err := s.promotionRepo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrPromotionConflict
	}

	promotion := &models.Promotion{
		Code:               code,
		Description:        input.Description,
		DiscountType:       input.DiscountType,
		DiscountValue:      input.DiscountValue,
		MinimumOrderAmount: input.MinimumOrderAmount,
		MaximumDiscount:    input.MaximumDiscount,
		UsageLimit:         input.UsageLimit,
		ValidFrom:          input.ValidFrom,
		ValidUntil:         input.ValidUntil,
		IsActive:           input.IsActive,
		ApplyToBasePrice:   input.ApplyToBasePrice,
		ApplyToToppings:    input.ApplyToToppings,
		ApplyToIncluded:    input.ApplyToIncluded,
		ApplyToEntireOrder: input.ApplyToEntireOrder,
	}
	if err := s.promotionRepo.Create(promotion); err != nil {
		return nil, err
	}
	if err := s.syncApplicableProducts(promotion, input.ApplicableProductIDs); err != nil {
		return nil, err
	}
	return s.promotionRepo.GetByID(promotion.ID)
}

// Update 更新优惠码
func (s *PromotionAdminService) Update(actor Actor, id uint, input PromotionInput) (*models.Promotion, error) {
	if !actor.CanManagePromos {
		return nil, ErrPermissionDenied
	}
	if !validDiscountType(input.DiscountType) {
		return nil, ErrInvalidDiscount
	}
	promotion, err := s.promotionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if promotion == nil {
		return nil, ErrPromotionNotFound
	}

	code := models.NormalizeCode(input.Code)
	if code == "" {
		return nil, ErrInvalidDiscount
	}
	if code != promotion.Code {
		existing, err := s.promotionRepo.GetByCode(code)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != promotion.ID {
			return nil, ErrPromotionConflict
		}
	}

	promotion.Code = code
	promotion.Description = input.Description
	promotion.DiscountType = input.DiscountType
	promotion.DiscountValue = input.DiscountValue
	promotion.MinimumOrderAmount = input.MinimumOrderAmount
	promotion.MaximumDiscount = input.MaximumDiscount
	promotion.UsageLimit = input.UsageLimit
	promotion.ValidFrom = input.ValidFrom
	promotion.ValidUntil = input.ValidUntil
	promotion.IsActive = input.IsActive
	promotion.ApplyToBasePrice = input.ApplyToBasePrice
	promotion.ApplyToToppings = input.ApplyToToppings
	promotion.ApplyToIncluded = input.ApplyToIncluded
	promotion.ApplyToEntireOrder = input.ApplyToEntireOrder

	if err := s.promotionRepo.Update(promotion); err != nil {
		return nil, err
	}
	if err := s.syncApplicableProducts(promotion, input.ApplicableProductIDs); err != nil {
		return nil, err
	}
	return s.promotionRepo.GetByID(promotion.ID)
}

// Delete 删除优惠码
func (s *PromotionAdminService) Delete(actor Actor, id uint) error {
	if !actor.CanManagePromos {
		return ErrPermissionDenied
	}
	promotion, err := s.promotionRepo.GetByID(id)
	if err != nil {
		return err
	}
	if promotion == nil {
		return ErrPromotionNotFound
	}
	return s.promotionRepo.Delete(id)
}

func (s *PromotionAdminService) syncApplicableProducts(promotion *models.Promotion, productIDs []uint) error {
	products, err := s.productRepo.ListByIDs(productIDs)
	if err != nil {
		return err
	}
	return s.promotionRepo.ReplaceApplicableProducts(promotion, products)
}
