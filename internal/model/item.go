package model

import "time"

// Item — серверная модель позиции инвентаря.
type Item struct {
	ID     int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID int64 `gorm:"not null;index" json:"userId"` // ссылка на users.id, владелец записи

	// Связи
	User *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	ItemName    string `gorm:"not null" json:"itemName"`
	Description string `json:"description"`
	Quantity    int    `gorm:"not null;default:1" json:"quantity"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
