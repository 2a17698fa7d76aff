package service

import (
	"github.com/pizzeria-next/internal/models"
	"github.com/pizzeria-next/internal/repository"
)

// CatalogService 菜单只读服务
type CatalogService struct {
	productRepo repository.ProductRepository
	catalogRepo repository.CatalogRepository
}

// NewCatalogService 创建菜单服务
func NewCatalogService(productRepo repository.ProductRepository, catalogRepo repository.CatalogRepository) *CatalogService {
	return &CatalogService{
		productRepo: productRepo,
		catalogRepo: catalogRepo,
	}
}

// ListCategories 分类列表（含规格）
func (s *CatalogService) ListCategories() ([]models.Category, error) {
	return s.catalogRepo.ListCategories()
}

// ListProducts 商品列表
func (s *CatalogService) ListProducts(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.productRepo.List(filter)
}

// GetProduct 根据 ID 获取商品
func (s *CatalogService) GetProduct(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id, true)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// GetProductBySlug 根据 slug 获取在售商品
func (s *CatalogService) GetProductBySlug(slug string) (*models.Product, error) {
	product, err := s.productRepo.GetBySlug(slug, true)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// ListFeatured 推荐商品
func (s *CatalogService) ListFeatured(limit int) ([]models.Product, error) {
	return s.productRepo.ListFeatured(limit)
}

// ListToppings 配料列表
func (s *CatalogService) ListToppings() ([]models.Topping, error) {
	return s.catalogRepo.ListToppings()
}

// ListTags 标签列表
func (s *CatalogService) ListTags() ([]models.Tag, error) {
	return s.catalogRepo.ListTags()
}
