package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type seedUser struct {
	firstName, lastName, username, password string
}

type seedItem struct {
	owner       int // индекс в списке demoUsers
	itemName    string
	description string
	quantity    int
}

var demoUsers = []seedUser{
	{"Alice", "Smith", "alice123", "password123"},
	{"Bob", "Johnson", "bobbyJ", "securepassword"},
	{"Charlie", "Brown", "charlie_b", "mypassword"},
	{"Diana", "Miller", "diana_m", "password789"},
}

var demoItems = []seedItem{
	{0, "Laptop", "A powerful gaming laptop", 10},
	{1, "Notebook", "A lined notebook for notes", 5},
	{2, "Smartphone", "A latest-gen smartphone", 2},
	{3, "Headphones", "Noise-canceling headphones", 1},
	{0, "Tablet", "A lightweight tablet for reading and browsing", 3},
	{1, "Desk Chair", "Ergonomic desk chair for office work", 1},
	{2, "Keyboard", "Mechanical keyboard with RGB lighting", 1},
	{3, "Water Bottle", "Reusable stainless steel water bottle", 4},
	{0, "Backpack", "Spacious backpack for travel and daily use", 2},
	{1, "Monitor", "4K Ultra HD monitor for productivity", 1},
}

// SeedDemo заполняет пустую БД демонстрационными пользователями и позициями.
// Пользователи заводятся через Register, чтобы пароли прошли штатное хеширование.
// Повторный запуск — no-op: сид узнаёт себя по первому demo-username.
func SeedDemo(ctx context.Context, users *UserService, items *ItemService, logger *zap.SugaredLogger) error {
	if _, err := users.repo.GetUserByUsername(ctx, demoUsers[0].username); err == nil {
		logger.Infow("seed: demo data already present, skipping")
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	ownerIDs := make([]int64, len(demoUsers))
	for i, su := range demoUsers {
		u, err := users.Register(ctx, su.firstName, su.lastName, su.username, su.password)
		if err != nil {
			return err
		}
		ownerIDs[i] = u.ID
	}
	logger.Infow("seed: users created", "count", len(demoUsers))

	for _, si := range demoItems {
		if _, err := items.Create(ctx, ownerIDs[si.owner], si.itemName, si.description, si.quantity); err != nil {
			return err
		}
	}
	logger.Infow("seed: items created", "count", len(demoItems))
	return nil
}
