package main

import (
	"strings"

	"github.com/pizzeria-next/internal/config"
	"github.com/pizzeria-next/internal/constants"
	"github.com/pizzeria-next/internal/logger"
	"github.com/pizzeria-next/internal/models"

	"github.com/shopspring/decimal"
)

var stdLog = logger.StdLogger()

func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.ReplaceAll(slug, "'", "")
	slug = strings.ReplaceAll(slug, "&", "and")
	fields := strings.FieldsFunc(slug, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
	return strings.Join(fields, "-")
}

func money(value float64) models.Money {
	return models.NewMoneyFromDecimal(decimal.NewFromFloat(value))
}

func ensureCategory(name, description string, displayOrder int) models.Category {
	slug := slugify(name)
	var existing models.Category
	if err := models.DB.Where("slug = ?", slug).First(&existing).Error; err == nil {
		return existing
	}
	category := models.Category{Name: name, Slug: slug, Description: description, DisplayOrder: displayOrder}
	if err := models.DB.Create(&category).Error; err != nil {
		stdLog.Printf("Failed to create category %s: %v", name, err)
	} else {
		stdLog.Printf("Created category: %s", name)
	}
	return category
}

func ensureSize(categoryID uint, name string, modifier float64, displayOrder int) models.Size {
	var existing models.Size
	if err := models.DB.Where("category_id = ? AND name = ?", categoryID, name).First(&existing).Error; err == nil {
		return existing
	}
	size := models.Size{Name: name, CategoryID: categoryID, PriceModifier: money(modifier), DisplayOrder: displayOrder}
	if err := models.DB.Create(&size).Error; err != nil {
		stdLog.Printf("Failed to create size %s: %v", name, err)
	}
	return size
}

func ensureTopping(name string, price float64) models.Topping {
	var existing models.Topping
	if err := models.DB.Where("name = ?", name).First(&existing).Error; err == nil {
		return existing
	}
	topping := models.Topping{Name: name, Price: money(price)}
	if err := models.DB.Create(&topping).Error; err != nil {
		stdLog.Printf("Failed to create topping %s: %v", name, err)
	}
	return topping
}

func ensureTag(name, color string) models.Tag {
	slug := slugify(name)
	var existing models.Tag
	if err := models.DB.Where("slug = ?", slug).First(&existing).Error; err == nil {
		return existing
	}
	tag := models.Tag{Name: name, Slug: slug, Color: color}
	if err := models.DB.Create(&tag).Error; err != nil {
		stdLog.Printf("Failed to create tag %s: %v", name, err)
	}
	return tag
}

func ensureIncludedItem(name string) models.IncludedItem {
	var existing models.IncludedItem
	if err := models.DB.Where("name = ?", name).First(&existing).Error; err == nil {
		return existing
	}
	item := models.IncludedItem{Name: name}
	if err := models.DB.Create(&item).Error; err != nil {
		stdLog.Printf("Failed to create included item %s: %v", name, err)
	}
	return item
}

// productSpec 菜单条目定义
type productSpec struct {
	Name          string
	Description   string
	BasePrice     float64
	Sizes         []models.Size
	Toppings      []models.Topping
	Tags          []models.Tag
	IncludedItems []models.IncludedItem
	IsCombo       bool
	IsFeatured    bool
	TrackStock    bool
	InitialStock  int
}

func ensureProduct(category models.Category, spec productSpec) {
	slug := slugify(spec.Name)
	var existing models.Product
	if err := models.DB.Where("slug = ?", slug).First(&existing).Error; err == nil {
		stdLog.Printf("Product already exists: %s", spec.Name)
		return
	}

	product := models.Product{
		CategoryID:        category.ID,
		Name:              spec.Name,
		Slug:              slug,
		Description:       spec.Description,
		BasePrice:         money(spec.BasePrice),
		IsAvailable:       true,
		IsFeatured:        spec.IsFeatured,
		IsCombo:           spec.IsCombo,
		TrackInventory:    spec.TrackStock,
		AvailableSizes:    spec.Sizes,
		AvailableToppings: spec.Toppings,
		Tags:              spec.Tags,
		IncludedItems:     spec.IncludedItems,
	}
	if err := models.DB.Create(&product).Error; err != nil {
		stdLog.Printf("Failed to create product %s: %v", spec.Name, err)
		return
	}
	stdLog.Printf("Created product: %s ($%s)", spec.Name, product.BasePrice.String())

	if spec.TrackStock {
		stock := models.StockItem{
			ProductID:       product.ID,
			Quantity:        spec.InitialStock,
			ReorderLevel:    10,
			ReorderQuantity: 20,
		}
		if err := models.DB.Create(&stock).Error; err != nil {
			stdLog.Printf("Failed to create stock item for %s: %v", spec.Name, err)
		}
	}
}

func ensurePromotion(promotion models.Promotion) {
	promotion.Code = models.NormalizeCode(promotion.Code)
	var existing models.Promotion
	if err := models.DB.Where("code = ?", promotion.Code).First(&existing).Error; err == nil {
		stdLog.Printf("Promotion already exists: %s", promotion.Code)
		return
	}
	if err := models.DB.Create(&promotion).Error; err != nil {
		stdLog.Printf("Failed to create promotion %s: %v", promotion.Code, err)
		return
	}
	stdLog.Printf("Created promotion: %s", promotion.Code)
}

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog = logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 标签
	meatTag := ensureTag("Meat", "#b91c1c")
	vegTag := ensureTag("Vegetarian", "#15803d")
	chickenTag := ensureTag("Chicken", "#d97706")
	seafoodTag := ensureTag("Seafood", "#0369a1")
	comboTag := ensureTag("Combo", "#7c3aed")

	// 披萨可选配料
	pizzaToppings := []models.Topping{
		ensureTopping("Extra Cheese", 2),
		ensureTopping("Hot Salami", 2.5),
		ensureTopping("Mushroom", 1.5),
		ensureTopping("Spanish Onion", 1),
		ensureTopping("Roasted Capsicum", 1.5),
		ensureTopping("Olives", 1.5),
		ensureTopping("Anchovies", 2),
		ensureTopping("Pineapple", 1.5),
		ensureTopping("Chicken Breast", 3),
		ensureTopping("Prawns", 4),
	}

	// 分类与规格（规格差价相对分类内最小规格）
	meatCat := ensureCategory("Meat Pizzas", "Premium meat pizzas", 1)
	vegCat := ensureCategory("Vegetarian Pizzas", "Vegetarian options", 2)
	chickenCat := ensureCategory("Chicken Pizzas", "Chicken pizzas", 3)
	seafoodCat := ensureCategory("Seafood Pizzas", "Seafood pizzas", 4)
	traditionalCat := ensureCategory("Traditional Pizzas", "Classic pizzas", 5)
	pastaCat := ensureCategory("Pasta", "Pasta dishes", 6)
	saladCat := ensureCategory("Salads", "Fresh salads", 7)
	sidesCat := ensureCategory("Sides", "Side dishes", 8)
	dessertCat := ensureCategory("Dessert", "Desserts", 9)
	beverageCat := ensureCategory("Beverages", "Drinks", 10)
	comboCat := ensureCategory("Combos", "Meal deals", 11)

	premiumSizes := func(cat models.Category) []models.Size {
		return []models.Size{
			ensureSize(cat.ID, "Small", 0, 1),
			ensureSize(cat.ID, "Large", 6, 2),
			ensureSize(cat.ID, "Family", 9, 3),
		}
	}
	meatSizes := premiumSizes(meatCat)
	vegSizes := premiumSizes(vegCat)
	chickenSizes := premiumSizes(chickenCat)
	seafoodSizes := premiumSizes(seafoodCat)
	traditionalSizes := []models.Size{
		ensureSize(traditionalCat.ID, "Small", 0, 1),
		ensureSize(traditionalCat.ID, "Large", 6, 2),
		ensureSize(traditionalCat.ID, "Family", 11, 3),
	}
	dessertSizes := []models.Size{
		ensureSize(dessertCat.ID, "Small", 0, 1),
		ensureSize(dessertCat.ID, "Large", 5, 2),
	}

	// 肉类披萨
	for _, p := range []productSpec{
		{Name: "Sundried Heat", Description: "Hot salami, capsicum, Spanish onion, olives, sundried tomato, eggplant and cherry tomato", BasePrice: 14},
		{Name: "Aurora", Description: "Hot salami, homemade meatballs, Spanish onion, cherry tomato and lemon wedge", BasePrice: 14, IsFeatured: true},
		{Name: "Salami Supreme", Description: "Hot Calabrese salami, pepperoni salami and olives", BasePrice: 14},
		{Name: "Prosciutto", Description: "Prosciutto, bocconcini, cherry tomato, rocket, parmesan and Demi-glace", BasePrice: 14},
		{Name: "Lamb", Description: "Marinated lamb, spinach, Spanish onion, roasted capsicum topped with tzatziki", BasePrice: 14},
	} {
		p.Sizes = meatSizes
		p.Toppings = pizzaToppings
		p.Tags = []models.Tag{meatTag}
		ensureProduct(meatCat, p)
	}

	// 素食披萨
	for _, p := range []productSpec{
		{Name: "Queen Margherita", Description: "Double cheese, cherry tomato, bocconcini topped with oregano", BasePrice: 14, IsFeatured: true},
		{Name: "Wild Mushroom", Description: "White sauce base, sauteed mushroom, Spanish onion, cherry tomato and topped with rocket", BasePrice: 14},
		{Name: "Mediterranean", Description: "Spinach, mushroom, Spanish onion, olives, sundried tomato, cherry tomato and feta", BasePrice: 14},
		{Name: "Truffle", Description: "Truffle base, mushroom, rosemary, bocconcini topped with rocket and truffle oil", BasePrice: 14},
	} {
		p.Sizes = vegSizes
		p.Toppings = pizzaToppings
		p.Tags = []models.Tag{vegTag}
		ensureProduct(vegCat, p)
	}

	// 鸡肉披萨
	for _, p := range []productSpec{
		{Name: "Avocado Al Apollo", Description: "Chicken breast, avocado, Spanish onion and cherry tomato", BasePrice: 14},
		{Name: "Tandoori Chicken", Description: "Tandoori marinated chicken, roasted capsicum, Spanish onion topped with seasoned yogurt", BasePrice: 14},
		{Name: "Peri Peri Chicken", Description: "Chicken breast, Spanish onion, roasted capsicum topped with peri-peri sauce", BasePrice: 14},
	} {
		p.Sizes = chickenSizes
		p.Toppings = pizzaToppings
		p.Tags = []models.Tag{chickenTag}
		ensureProduct(chickenCat, p)
	}

	// 海鲜披萨
	for _, p := range []productSpec{
		{Name: "Seafood Deluxe", Description: "Mix of fresh seafood, anchovies, garlic and lemon wedge", BasePrice: 14},
		{Name: "Honey Glazed Prawn", Description: "Marinated king prawns, bocconcini, garlic, herbs, cherry tomato and lemon wedge", BasePrice: 14},
	} {
		p.Sizes = seafoodSizes
		p.Toppings = pizzaToppings
		p.Tags = []models.Tag{seafoodTag}
		ensureProduct(seafoodCat, p)
	}

	// 传统披萨
	for _, p := range []productSpec{
		{Name: "Margherita", Description: "Tomato, mozzarella and oregano", BasePrice: 10},
		{Name: "Hawaiian", Description: "Ham and pineapple with traditional pizza sauce", BasePrice: 10},
		{Name: "Pepperoni", Description: "Mild salami with traditional pizza sauce and oregano", BasePrice: 10, IsFeatured: true},
		{Name: "Aussie", Description: "Ham, bacon, Spanish onion and egg", BasePrice: 10},
		{Name: "Capricciosa", Description: "Ham, mushroom and olives", BasePrice: 10},
		{Name: "BBQ Chicken", Description: "Chicken breast, pineapple and BBQ sauce", BasePrice: 10},
		{Name: "Meat Lovers", Description: "Ham, hot salami, bacon and meatballs with BBQ sauce", BasePrice: 10},
		{Name: "Supreme", Description: "Ham, salami, mushroom, Spanish onion, capsicum, pineapple, olives and oregano", BasePrice: 10},
	} {
		p.Sizes = traditionalSizes
		p.Toppings = pizzaToppings
		ensureProduct(traditionalCat, p)
	}

	// 意面（单一价格，无规格）
	for _, p := range []productSpec{
		{Name: "Bolognese", Description: "Traditional rich Napoli meat sauce and oregano", BasePrice: 15},
		{Name: "Carbonara", Description: "Bacon, garlic, egg and parsley in creamy white sauce", BasePrice: 15},
		{Name: "Pesto Chicken", Description: "Chicken, cherry tomato, olives, feta and pesto", BasePrice: 15},
		{Name: "Vegetarian Pasta", Description: "Onion, roasted capsicum, mushroom and eggplant in Napoli sauce", BasePrice: 15, Tags: []models.Tag{vegTag}},
	} {
		ensureProduct(pastaCat, p)
	}

	// 沙拉
	for _, p := range []productSpec{
		{Name: "Garden Salad", Description: "Mixed leaf salad with roasted capsicum, Spanish onion, cucumber and cherry tomato with French dressing", BasePrice: 11, Tags: []models.Tag{vegTag}},
		{Name: "Greek Salad", Description: "Mixed leaves, roasted capsicum, Spanish onion, cucumber, cherry tomato, olives, feta and oregano with Greek dressing", BasePrice: 11, Tags: []models.Tag{vegTag}},
		{Name: "Chicken Salad", Description: "Marinated chicken, mixed leaves, Spanish onion, cucumber, cherry tomato and avocado with Italian dressing", BasePrice: 15, Tags: []models.Tag{chickenTag}},
	} {
		ensureProduct(saladCat, p)
	}

	// 小食
	for _, p := range []productSpec{
		{Name: "Chips", Description: "Chips with tomato sauce", BasePrice: 7},
		{Name: "Garlic Bread", Description: "Garlic bread", BasePrice: 5},
		{Name: "Potato Wedges", Description: "Potato wedges with sour cream and sweet chilli sauce", BasePrice: 10},
		{Name: "Calamari", Description: "Calamari with tartare sauce, chips and lemon wedges", BasePrice: 15},
	} {
		ensureProduct(sidesCat, p)
	}

	// 甜品
	ensureProduct(dessertCat, productSpec{
		Name:        "Nutella Pizza",
		Description: "Nutella, fresh strawberries and icing sugar",
		BasePrice:   10,
		Sizes:       dessertSizes,
	})

	// 饮料（跟踪库存）
	for _, p := range []productSpec{
		{Name: "Soft Drink Can", Description: "Soft drink can", BasePrice: 2.5, TrackStock: true, InitialStock: 120},
		{Name: "Soft Drink Bottle 1.25L", Description: "Soft drink bottle 1.25L", BasePrice: 5, TrackStock: true, InitialStock: 48},
		{Name: "Sparkling Water", Description: "Sparkling mineral water", BasePrice: 4, TrackStock: true, InitialStock: 36},
	} {
		ensureProduct(beverageCat, p)
	}

	// 套餐（附带项随餐）
	ensureProduct(comboCat, productSpec{
		Name:          "Parma Combo",
		Description:   "Chicken breast schnitzel topped with Napoli sauce, shaved ham and mozzarella cheese",
		BasePrice:     25,
		IsCombo:       true,
		IsFeatured:    true,
		Tags:          []models.Tag{comboTag, chickenTag},
		IncludedItems: []models.IncludedItem{ensureIncludedItem("Chips"), ensureIncludedItem("Garden Salad")},
	})
	ensureProduct(comboCat, productSpec{
		Name:          "Family Pizza Deal",
		Description:   "Any family pizza with garlic bread and a 1.25L soft drink",
		BasePrice:     32,
		IsCombo:       true,
		Tags:          []models.Tag{comboTag},
		IncludedItems: []models.IncludedItem{ensureIncludedItem("Garlic Bread"), ensureIncludedItem("Soft Drink Bottle 1.25L")},
	})

	// 默认优惠码
	ensurePromotion(models.Promotion{
		Code:               "WELCOME10",
		Description:        "10% off your first order",
		DiscountType:       constants.DiscountTypePercentage,
		DiscountValue:      money(10),
		MaximumDiscount:    func() *models.Money { m := money(8); return &m }(),
		IsActive:           true,
		ApplyToEntireOrder: true,
		ApplyToBasePrice:   true,
		ApplyToToppings:    true,
	})
	ensurePromotion(models.Promotion{
		Code:               "FREESHIP",
		Description:        "Free delivery on any order",
		DiscountType:       constants.DiscountTypeFreeDelivery,
		DiscountValue:      money(0),
		IsActive:           true,
		ApplyToEntireOrder: true,
	})

	stdLog.Printf("Seed complete")
}
