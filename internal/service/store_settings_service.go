package service

import (
	"encoding/json"
	"sync"

	"github.com/pizzeria-next/internal/constants"
	"github.com/pizzeria-next/internal/models"
	"github.com/pizzeria-next/internal/repository"
)

// StoreConfig 门店配置（整体序列化存入配置表单键）
type StoreConfig struct {
	StoreName                string          `json:"store_name"`
	StorePhone               string          `json:"store_phone"`
	StoreEmail               string          `json:"store_email"`
	StoreAddress             string          `json:"store_address"`
	BusinessHours            json.RawMessage `json:"business_hours,omitempty"`
	DeliveryEnabled          bool            `json:"delivery_enabled"`
	PickupEnabled            bool            `json:"pickup_enabled"`
	DeliveryFee              models.Money    `json:"delivery_fee"`
	FreeDeliveryThreshold    models.Money    `json:"free_delivery_threshold"`
	MinimumOrderAmount       models.Money    `json:"minimum_order_amount"`
	DeliveryRadiusKM         float64         `json:"delivery_radius_km"`
	EstimatedDeliveryMinutes int             `json:"estimated_delivery_minutes"`
	EstimatedPickupMinutes   int             `json:"estimated_pickup_minutes"`
	TaxRatePercent           models.Money    `json:"tax_rate_percent"`
	AcceptingOrders          bool            `json:"accepting_orders"`
}

// DefaultStoreConfig 内置默认门店配置
func DefaultStoreConfig() StoreConfig {
	return StoreConfig{
		StoreName:                constants.DefaultStoreName,
		DeliveryEnabled:          true,
		PickupEnabled:            true,
		DeliveryFee:              models.NewMoneyFromString(constants.DefaultDeliveryFee),
		FreeDeliveryThreshold:    models.NewMoneyFromString(constants.DefaultFreeDeliveryThreshold),
		MinimumOrderAmount:       models.NewMoneyFromString(constants.DefaultMinimumOrderAmount),
		DeliveryRadiusKM:         constants.DefaultDeliveryRadiusKM,
		EstimatedDeliveryMinutes: constants.DefaultDeliveryMinutes,
		EstimatedPickupMinutes:   constants.DefaultPickupMinutes,
		TaxRatePercent:           models.ZeroMoney(),
		AcceptingOrders:          true,
	}
}

// PublicStoreConfig 面向前端的门店配置投影
type PublicStoreConfig struct {
	StoreName                string          `json:"store_name"`
	StorePhone               string          `json:"store_phone"`
	StoreAddress             string          `json:"store_address"`
	BusinessHours            json.RawMessage `json:"business_hours,omitempty"`
	DeliveryEnabled          bool            `json:"delivery_enabled"`
	PickupEnabled            bool            `json:"pickup_enabled"`
	DeliveryFee              models.Money    `json:"delivery_fee"`
	FreeDeliveryThreshold    models.Money    `json:"free_delivery_threshold"`
	MinimumOrderAmount       models.Money    `json:"minimum_order_amount"`
	EstimatedDeliveryMinutes int             `json:"estimated_delivery_minutes"`
	EstimatedPickupMinutes   int             `json:"estimated_pickup_minutes"`
	AcceptingOrders          bool            `json:"accepting_orders"`
}

// StoreSettingsService 门店配置服务（进程内缓存，写入后失效）
type StoreSettingsService struct {
	settingRepo repository.SettingRepository

	mu     sync.RWMutex
	cached *StoreConfig
}

// NewStoreSettingsService 创建门店配置服务
func NewStoreSettingsService(settingRepo repository.SettingRepository) *StoreSettingsService {
	return &StoreSettingsService{settingRepo: settingRepo}
}

// Load 读取门店配置（缺省回退内置默认值）
func (s *StoreSettingsService) Load() (StoreConfig, error) {
	s.mu.RLock()
	if s.cached != nil {
		config := *s.cached
		s.mu.RUnlock()
		return config, nil
	}
	s.mu.RUnlock()

	setting, err := s.settingRepo.Get(constants.SettingKeyStoreConfig)
	if err != nil {
		return StoreConfig{}, err
	}
	config := DefaultStoreConfig()
	if setting != nil && setting.Value != "" {
		if err := json.Unmarshal([]byte(setting.Value), &config); err != nil {
			return StoreConfig{}, err
		}
	}

	s.mu.Lock()
	s.cached = &config
	s.mu.Unlock()
	return config, nil
}

// Save 保存门店配置（需配置管理能力）
func (s *StoreSettingsService) Save(actor Actor, config StoreConfig) error {
	if !actor.CanManageSettings {
		return ErrPermissionDenied
	}
	raw, err := json.Marshal(config)
	if err != nil {
		return err
	}
	if err := s.settingRepo.Set(constants.SettingKeyStoreConfig, string(raw)); err != nil {
		return err
	}
	s.mu.Lock()
	s.cached = &config
	s.mu.Unlock()
	return nil
}

// Invalidate 清除进程内缓存
func (s *StoreSettingsService) Invalidate() {
	s.mu.Lock()
	s.cached = nil
	s.mu.Unlock()
}

// Public 门店配置公开投影
func (s *StoreSettingsService) Public() (PublicStoreConfig, error) {
	config, err := s.Load()
	if err != nil {
		return PublicStoreConfig{}, err
	}
	return PublicStoreConfig{
		StoreName:                config.StoreName,
		StorePhone:               config.StorePhone,
		StoreAddress:             config.StoreAddress,
		BusinessHours:            config.BusinessHours,
		DeliveryEnabled:          config.DeliveryEnabled,
		PickupEnabled:            config.PickupEnabled,
		DeliveryFee:              config.DeliveryFee,
		FreeDeliveryThreshold:    config.FreeDeliveryThreshold,
		MinimumOrderAmount:       config.MinimumOrderAmount,
		EstimatedDeliveryMinutes: config.EstimatedDeliveryMinutes,
		EstimatedPickupMinutes:   config.EstimatedPickupMinutes,
		AcceptingOrders:          config.AcceptingOrders,
	}, nil
}
