package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/pizzeria-next/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupCartRepositoryTest(t *testing.T) (*GormCartRepository, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:cart_repo_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Cart{}, &models.CartLine{}); err != nil {
		t.Fatalf("migrate carts failed: %v", err)
	}
	return NewCartRepository(db), db
}

func TestDeleteLinesByIDLeavesOtherLines(t *testing.T) {
	repo, db := setupCartRepositoryTest(t)

	cart := models.Cart{SessionKey: "session-abc"}
	if err := db.Create(&cart).Error; err != nil {
		t.Fatalf("create cart failed: %v", err)
	}
	lines := make([]models.CartLine, 3)
	for i := range lines {
		lines[i] = models.CartLine{CartID: cart.ID, ProductID: uint(i + 1), Quantity: 1}
		if err := db.Create(&lines[i]).Error; err != nil {
			t.Fatalf("create line failed: %v", err)
		}
	}

	// 第三行模拟结算快照之后才加入的行
	if err := repo.DeleteLinesByID(cart.ID, []uint{lines[0].ID, lines[1].ID}); err != nil {
		t.Fatalf("delete lines failed: %v", err)
	}

	var remaining []models.CartLine
	if err := db.Where("cart_id = ?", cart.ID).Find(&remaining).Error; err != nil {
		t.Fatalf("load remaining lines failed: %v", err)
	}
	if len(remaining) != 1 || remaining[0].ID != lines[2].ID {
		t.Fatalf("late line should survive checkout cleanup, got %+v", remaining)
	}

	// 空 ID 集合不应误删
	if err := repo.DeleteLinesByID(cart.ID, nil); err != nil {
		t.Fatalf("delete with empty set failed: %v", err)
	}
	if err := db.Where("cart_id = ?", cart.ID).Find(&remaining).Error; err != nil {
		t.Fatalf("reload remaining lines failed: %v", err)
	}
	if len(remaining) != 1 {
		t.Fatalf("empty id set should delete nothing, got %d lines", len(remaining))
	}
}
