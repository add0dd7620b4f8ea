package model

import "time"

// User — учётная запись пользователя сервиса.
// Password хранит bcrypt-хеш, никогда не исходный пароль.
type User struct {
	ID        int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Username  string `gorm:"uniqueIndex;not null" json:"username"`
	Password  string `gorm:"not null" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`
}
