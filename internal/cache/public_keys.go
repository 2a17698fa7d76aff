package cache

// 面向前端的公共缓存键
const (
	// KeyPublicStoreConfig 门店配置公开投影
	KeyPublicStoreConfig = "public:store_config"
	// KeyPublicCategories 分类列表
	KeyPublicCategories = "public:categories"
	// KeyPublicToppings 配料列表
	KeyPublicToppings = "public:toppings"
)
