package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/pizzeria-next/internal/models"
	"github.com/pizzeria-next/internal/repository"
)

// BarcodeService 商品条码与 SKU 管理服务，支撑收银端扫码找货。
type BarcodeService struct {
	productRepo repository.ProductRepository
}

// NewBarcodeService 创建条码服务
func NewBarcodeService(productRepo repository.ProductRepository) *BarcodeService {
	return &BarcodeService{productRepo: productRepo}
}

// BackfillResult 批量补码结果
type BackfillResult struct {
	BarcodesAssigned int      `json:"barcodes_assigned"`
	SKUsAssigned     int      `json:"skus_assigned"`
	Errors           []string `json:"errors"`
}

// LookupByCode 根据条码或 SKU 查找在售商品
func (s *BarcodeService) LookupByCode(actor Actor, code string) (*models.Product, error) {
	if !actor.CanManageInventory {
		return nil, ErrPermissionDenied
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrProductNotFound
	}
	product, err := s.productRepo.GetByBarcodeOrSKU(code, true)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// AssignBarcode 为商品写入条码。barcode 为空时生成不冲突的 EAN-13。
func (s *BarcodeService) AssignBarcode(actor Actor, productID uint, barcode string) (*models.Product, error) {
	if !actor.CanManageInventory {
		return nil, ErrPermissionDenied
	}
	product, err := s.productRepo.GetByID(productID, false)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	barcode = strings.TrimSpace(barcode)
	if barcode != "" {
		taken, err := s.productRepo.ExistsBarcode(barcode, product.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrBarcodeConflict
		}
	} else {
		barcode, err = s.generateUniqueBarcode()
		if err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.SetBarcode(product.ID, barcode); err != nil {
		return nil, err
	}
	return s.productRepo.GetByID(product.ID, false)
}

// AssignSKU 为商品写入 SKU。sku 为空时按 分类-商品-编号 生成。
func (s *BarcodeService) AssignSKU(actor Actor, productID uint, sku string) (*models.Product, error) {
	if !actor.CanManageInventory {
		return nil, ErrPermissionDenied
	}
	product, err := s.productRepo.GetByID(productID, true)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	sku = strings.TrimSpace(sku)
	if sku != "" {
		taken, err := s.productRepo.ExistsSKU(sku, product.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrSKUConflict
		}
	} else {
		sku, err = s.generateUniqueSKU(product)
		if err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.SetSKU(product.ID, sku); err != nil {
		return nil, err
	}
	return s.productRepo.GetByID(product.ID, false)
}

// Backfill 为所有缺码商品批量补条码与 SKU
func (s *BarcodeService) Backfill(actor Actor) (*BackfillResult, error) {
	if !actor.CanManageInventory {
		return nil, ErrPermissionDenied
	}
	products, err := s.productRepo.ListMissingCodes()
	if err != nil {
		return nil, err
	}

	result := &BackfillResult{Errors: []string{}}
	for i := range products {
		product := &products[i]
		if product.Barcode == nil || *product.Barcode == "" {
			barcode, err := s.generateUniqueBarcode()
			if err == nil {
				err = s.productRepo.SetBarcode(product.ID, barcode)
			}
			if err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("product %d (%s): %v", product.ID, product.Name, err))
			} else {
				result.BarcodesAssigned++
			}
		}
		if product.SKU == nil || *product.SKU == "" {
			sku, err := s.generateUniqueSKU(product)
			if err == nil {
				err = s.productRepo.SetSKU(product.ID, sku)
			}
			if err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("product %d (%s): %v", product.ID, product.Name, err))
			} else {
				result.SKUsAssigned++
			}
		}
	}
	return result, nil
}

func (s *BarcodeService) generateUniqueBarcode() (string, error) {
	for attempt := 0; attempt < 100; attempt++ {
		barcode := GenerateEAN13()
		taken, err := s.productRepo.ExistsBarcode(barcode, 0)
		if err != nil {
			return "", err
		}
		if !taken {
			return barcode, nil
		}
	}
	return "", fmt.Errorf("barcode generation exhausted retries")
}

func (s *BarcodeService) generateUniqueSKU(product *models.Product) (string, error) {
	base := BuildSKU(product.Category.Name, product.Name, product.ID)
	sku := base
	for counter := 1; ; counter++ {
		taken, err := s.productRepo.ExistsSKU(sku, product.ID)
		if err != nil {
			return "", err
		}
		if !taken {
			return sku, nil
		}
		sku = fmt.Sprintf("%s-%d", base, counter)
	}
}

// GenerateEAN13 生成带校验位的 13 位条码
func GenerateEAN13() string {
	body := randDigits(12)
	return fmt.Sprintf("%s%d", body, ean13CheckDigit(body))
}

// ean13CheckDigit 计算 12 位主体的校验位（首位起奇数位权重 3）
func ean13CheckDigit(body string) int {
	sum := 0
	for i := 0; i < len(body); i++ {
		digit := int(body[i] - '0')
		if i%2 == 0 {
			sum += digit * 3
		} else {
			sum += digit
		}
	}
	return (10 - sum%10) % 10
}

// BuildSKU 按 分类前缀-商品前缀-商品编号 生成 SKU
func BuildSKU(categoryName, productName string, productID uint) string {
	categoryPrefix := strings.ToUpper(strings.ReplaceAll(truncate(categoryName, 4), " ", ""))
	var productPrefix strings.Builder
	for _, r := range truncate(productName, 4) {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			productPrefix.WriteRune(r)
		}
	}
	return fmt.Sprintf("%s-%s-%04d", categoryPrefix, strings.ToUpper(productPrefix.String()), productID)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) > n {
		return string(runes[:n])
	}
	return s
}

func randDigits(length int) string {
	var b strings.Builder
	ten := big.NewInt(10)
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, ten)
		if err != nil {
			b.WriteByte('0')
			continue
		}
		b.WriteByte(byte('0' + n.Int64()))
	}
	return b.String()
}
