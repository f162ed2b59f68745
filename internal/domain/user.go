package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string `gorm:"uniqueIndex;size:64;not null" json:"username"`
	Email        string `gorm:"size:255;not null" json:"email"`
	PasswordHash string `gorm:"size:100;not null" json:"-"`

	// 敏感字段：只入库，任何对外投影都不包含
	NationalID  string `gorm:"size:32" json:"-"`
	PaymentCard string `gorm:"size:32" json:"-"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"-"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }

// PublicProfile 是 User 的对外投影（白名单字段）
type PublicProfile struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// ProjectPublic builds the outward view by constructing a new struct from the
// three allowed fields. Columns added to User later stay internal unless they
// are copied here explicitly.
func ProjectPublic(u *User) PublicProfile {
	return PublicProfile{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
	}
}

type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByID(ctx context.Context, id int64) (*User, error)
	List(ctx context.Context, offset, limit int) ([]User, int64, error)
	SoftDelete(ctx context.Context, id int64) error
}
