package service

import (
	"sort"
	"time"

	"github.com/pizzeria-next/internal/models"
	"github.com/pizzeria-next/internal/repository"
)

// CartLineDetail 购物车行详情（用于响应）
type CartLineDetail struct {
	ID                uint                         `json:"id"`
	ProductID         uint                         `json:"product_id"`
	ProductName       string                       `json:"product_name"`
	IsCombo           bool                         `json:"is_combo"`
	SizeID            *uint                        `json:"size_id,omitempty"`
	SizeName          *string                      `json:"size_name,omitempty"`
	SelectedToppings  models.ToppingSnapshots      `json:"selected_toppings"`
	IncludeComboItems bool                         `json:"include_combo_items"`
	IncludedItems     models.IncludedItemSnapshots `json:"included_items"`
	UnitPrice         models.Money                 `json:"unit_price"`
	Quantity          int                          `json:"quantity"`
	Subtotal          models.Money                 `json:"subtotal"`
}

// CartDetail 购物车详情（用于响应）
type CartDetail struct {
	SessionKey string           `json:"session_key"`
	Lines      []CartLineDetail `json:"lines"`
	ItemCount  int              `json:"item_count"`
	Total      models.Money     `json:"total"`
}

// AddLineInput 添加购物车行输入
type AddLineInput struct {
	ProductID         uint
	SizeID            *uint
	ToppingIDs        []uint
	Quantity          int
	IncludeComboItems bool
}

// UpdateLineInput 更新购物车行输入（nil 表示保留原值）
type UpdateLineInput struct {
	Quantity          *int
	SizeID            *uint
	ClearSize         bool
	ToppingIDs        *[]uint
	IncludeComboItems *bool
}

// CartService 购物车服务
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	catalogRepo repository.CatalogRepository
	pricing     *PricingService
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository, catalogRepo repository.CatalogRepository, pricing *PricingService) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		catalogRepo: catalogRepo,
		pricing:     pricing,
	}
}

// Get 获取购物车详情（不存在视为空车）
func (s *CartService) Get(sessionKey string) (*CartDetail, error) {
	cart, err := s.cartRepo.GetBySessionKey(sessionKey)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return &CartDetail{SessionKey: sessionKey, Lines: []CartLineDetail{}, Total: models.ZeroMoney()}, nil
	}
	return s.buildDetail(cart), nil
}

func (s *CartService) buildDetail(cart *models.Cart) *CartDetail {
	detail := &CartDetail{
		SessionKey: cart.SessionKey,
		Lines:      make([]CartLineDetail, 0, len(cart.Lines)),
		Total:      models.ZeroMoney(),
	}
	for i := range cart.Lines {
		line := &cart.Lines[i]
		lineDetail := CartLineDetail{
			ID:                line.ID,
			ProductID:         line.ProductID,
			SizeID:            line.SizeID,
			SelectedToppings:  line.SelectedToppings,
			IncludeComboItems: line.IncludeComboItems,
			IncludedItems:     line.IncludedItems,
			UnitPrice:         line.UnitPrice,
			Quantity:          line.Quantity,
			Subtotal:          line.Subtotal(),
		}
		if line.Product != nil {
			lineDetail.ProductName = line.Product.Name
			lineDetail.IsCombo = line.Product.IsCombo
		}
		if line.Size != nil {
			name := line.Size.Name
			lineDetail.SizeName = &name
		}
		detail.Lines = append(detail.Lines, lineDetail)
		detail.ItemCount += line.Quantity
		detail.Total = detail.Total.AddMoney(lineDetail.Subtotal)
	}
	return detail
}

// AddLine 添加商品到购物车（同配置行合并加量并刷新单价）
func (s *CartService) AddLine(sessionKey string, input AddLineInput) (*CartDetail, error) {
	if input.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	product, err := s.productRepo.GetByID(input.ProductID, true)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if !product.IsAvailable {
		return nil, ErrProductUnavailable
	}

	var size *models.Size
	if input.SizeID != nil {
		size, err = s.catalogRepo.GetSizeByID(*input.SizeID)
		if err != nil {
			return nil, err
		}
		if size == nil {
			return nil, ErrSizeNotFound
		}
	}

	toppings, err := s.resolveToppings(input.ToppingIDs)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	unitPrice, err := s.pricing.UnitPrice(product, size, now)
	if err != nil {
		return nil, err
	}
	toppingSnapshots, err := s.pricing.ValidateToppings(product, toppings)
	if err != nil {
		return nil, err
	}

	// 非套餐商品静默忽略套餐标记
	includeCombo := input.IncludeComboItems && product.IsCombo

	cart, err := s.cartRepo.GetOrCreateBySessionKey(sessionKey)
	if err != nil {
		return nil, err
	}

	if existing := findMatchingLine(cart, product.ID, input.SizeID, toppingSnapshots, includeCombo); existing != nil {
		existing.Quantity += input.Quantity
		existing.UnitPrice = unitPrice
		if err := s.cartRepo.UpdateLine(existing); err != nil {
			return nil, err
		}
		return s.Get(sessionKey)
	}

	line := &models.CartLine{
		CartID:            cart.ID,
		ProductID:         product.ID,
		SizeID:            input.SizeID,
		SelectedToppings:  toppingSnapshots,
		UnitPrice:         unitPrice,
		Quantity:          input.Quantity,
		IncludeComboItems: includeCombo,
	}
	if includeCombo {
		line.IncludedItems = product.IncludedItemSnapshots()
	}
	if err := s.cartRepo.CreateLine(line); err != nil {
		return nil, err
	}
	return s.Get(sessionKey)
}

// UpdateLine 更新购物车行（改规格或配料会重算价格）
func (s *CartService) UpdateLine(sessionKey string, lineID uint, input UpdateLineInput) (*CartDetail, error) {
	cart, err := s.cartRepo.GetBySessionKey(sessionKey)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartLineNotFound
	}
	line, err := s.cartRepo.GetLineByID(cart.ID, lineID)
	if err != nil {
		return nil, err
	}
	if line == nil {
		return nil, ErrCartLineNotFound
	}

	if input.Quantity != nil {
		if *input.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		line.Quantity = *input.Quantity
	}

	product, err := s.productRepo.GetByID(line.ProductID, true)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	repriceNeeded := false
	if input.ClearSize {
		line.SizeID = nil
		line.Size = nil
		repriceNeeded = true
	} else if input.SizeID != nil {
		line.SizeID = input.SizeID
		line.Size = nil
		repriceNeeded = true
	}
	if input.ToppingIDs != nil {
		toppings, err := s.resolveToppings(*input.ToppingIDs)
		if err != nil {
			return nil, err
		}
		snapshots, err := s.pricing.ValidateToppings(product, toppings)
		if err != nil {
			return nil, err
		}
		line.SelectedToppings = snapshots
		repriceNeeded = true
	}
	if input.IncludeComboItems != nil {
		includeCombo := *input.IncludeComboItems && product.IsCombo
		line.IncludeComboItems = includeCombo
		if includeCombo {
			line.IncludedItems = product.IncludedItemSnapshots()
		} else {
			line.IncludedItems = nil
		}
	}

	if repriceNeeded {
		var size *models.Size
		if line.SizeID != nil {
			size, err = s.catalogRepo.GetSizeByID(*line.SizeID)
			if err != nil {
				return nil, err
			}
			if size == nil {
				return nil, ErrSizeNotFound
			}
		}
		unitPrice, err := s.pricing.UnitPrice(product, size, time.Now())
		if err != nil {
			return nil, err
		}
		line.UnitPrice = unitPrice
	}

	if err := s.cartRepo.UpdateLine(line); err != nil {
		return nil, err
	}
	return s.Get(sessionKey)
}

// RemoveLine 删除购物车行
func (s *CartService) RemoveLine(sessionKey string, lineID uint) (*CartDetail, error) {
	cart, err := s.cartRepo.GetBySessionKey(sessionKey)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartLineNotFound
	}
	line, err := s.cartRepo.GetLineByID(cart.ID, lineID)
	if err != nil {
		return nil, err
	}
	if line == nil {
		return nil, ErrCartLineNotFound
	}
	if err := s.cartRepo.DeleteLine(cart.ID, lineID); err != nil {
		return nil, err
	}
	return s.Get(sessionKey)
}

// Clear 清空购物车
func (s *CartService) Clear(sessionKey string) error {
	cart, err := s.cartRepo.GetBySessionKey(sessionKey)
	if err != nil {
		return err
	}
	if cart == nil {
		return nil
	}
	return s.cartRepo.ClearLines(cart.ID)
}

func (s *CartService) resolveToppings(ids []uint) ([]models.Topping, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	toppings, err := s.catalogRepo.ListToppingsByIDs(ids)
	if err != nil {
		return nil, err
	}
	found := make(map[uint]bool, len(toppings))
	for _, topping := range toppings {
		found[topping.ID] = true
	}
	for _, id := range ids {
		if !found[id] {
			return nil, ErrToppingNotFound
		}
	}
	return toppings, nil
}

// findMatchingLine 在购物车中查找同配置行（商品、规格、配料集合、套餐标记全同）
func findMatchingLine(cart *models.Cart, productID uint, sizeID *uint, toppings models.ToppingSnapshots, includeCombo bool) *models.CartLine {
	want := toppingIDSet(toppings)
	for i := range cart.Lines {
		line := &cart.Lines[i]
		if line.ProductID != productID {
			continue
		}
		if !uintPtrEqual(line.SizeID, sizeID) {
			continue
		}
		if line.IncludeComboItems != includeCombo {
			continue
		}
		if !uintSliceEqual(toppingIDSet(line.SelectedToppings), want) {
			continue
		}
		return line
	}
	return nil
}

func toppingIDSet(toppings models.ToppingSnapshots) []uint {
	ids := make([]uint, 0, len(toppings))
	for _, topping := range toppings {
		ids = append(ids, topping.ID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func uintPtrEqual(a, b *uint) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func uintSliceEqual(a, b []uint) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
