package service

import (
	"testing"

	"github.com/pizzeria-next/internal/constants"
	"github.com/pizzeria-next/internal/repository"
)

func setupStoreSettingsTest(t *testing.T) *StoreSettingsService {
	t.Helper()

	db := newServiceTestDB(t, "store_settings")
	return NewStoreSettingsService(repository.NewSettingRepository(db))
}

func TestLoadReturnsDefaultsWhenUnset(t *testing.T) {
	svc := setupStoreSettingsTest(t)

	config, err := svc.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if config.StoreName != constants.DefaultStoreName {
		t.Fatalf("store name want default, got %q", config.StoreName)
	}
	if !config.AcceptingOrders || !config.DeliveryEnabled || !config.PickupEnabled {
		t.Fatalf("defaults should accept orders on both channels: %+v", config)
	}
	if config.DeliveryFee.String() != constants.DefaultDeliveryFee {
		t.Fatalf("delivery fee want %s, got %s", constants.DefaultDeliveryFee, config.DeliveryFee.String())
	}
	if config.DeliveryRadiusKM != constants.DefaultDeliveryRadiusKM {
		t.Fatalf("delivery radius want %v, got %v", constants.DefaultDeliveryRadiusKM, config.DeliveryRadiusKM)
	}
}

func TestSaveRoundtripSurvivesCacheInvalidation(t *testing.T) {
	svc := setupStoreSettingsTest(t)
	admin := adminTestActor()

	config, err := svc.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	config.StoreName = "Nonna's Woodfired"
	config.DeliveryFee = testMoney(t, "7.50")
	config.AcceptingOrders = false
	if err := svc.Save(admin, config); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	// 清掉进程内缓存，强制回源配置表
	svc.Invalidate()
	reloaded, err := svc.Load()
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.StoreName != "Nonna's Woodfired" || reloaded.DeliveryFee.String() != "7.50" || reloaded.AcceptingOrders {
		t.Fatalf("saved config did not survive reload: %+v", reloaded)
	}
}

func TestSaveRequiresSettingsCapability(t *testing.T) {
	svc := setupStoreSettingsTest(t)

	viewer := Actor{ID: 2, Name: "viewer"}
	if err := svc.Save(viewer, DefaultStoreConfig()); err != ErrPermissionDenied {
		t.Fatalf("actor without capability want ErrPermissionDenied, got %v", err)
	}
}

func TestPublicProjectionHidesContactEmail(t *testing.T) {
	svc := setupStoreSettingsTest(t)
	admin := adminTestActor()

	config, err := svc.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	config.StoreEmail = "owner@example.com"
	config.StorePhone = "0299998888"
	if err := svc.Save(admin, config); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	public, err := svc.Public()
	if err != nil {
		t.Fatalf("public projection failed: %v", err)
	}
	if public.StorePhone != "0299998888" {
		t.Fatalf("public projection should expose phone, got %q", public.StorePhone)
	}
	if public.StoreName != config.StoreName || public.AcceptingOrders != config.AcceptingOrders {
		t.Fatalf("public projection out of sync: %+v", public)
	}
}
