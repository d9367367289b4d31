package domain

import (
	"context"
	"time"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;size:191;not null" json:"email"`
	PasswordHash string    `gorm:"size:100;not null" json:"-"`
	Name         string    `gorm:"size:64" json:"name"`
	LastName     string    `gorm:"size:64" json:"lastName"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (User) TableName() string { return "users" }

// UserPatch 部分更新，nil 或空字符串的字段保持不变
type UserPatch struct {
	Email    *string
	Password *string
	Name     *string
	LastName *string
}

// Set 字段非 nil 且非空
func Set(v *string) bool { return v != nil && *v != "" }

func (p UserPatch) Empty() bool {
	return !Set(p.Email) && !Set(p.Password) && !Set(p.Name) && !Set(p.LastName)
}

// UserRepository 查询不到时返回 (nil, nil)
type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, u *User) error
	// Delete 解除参赛记录的关联后删除用户；用户不存在返回 false
	Delete(ctx context.Context, id uint) (bool, error)
	Count(ctx context.Context) (int64, error)
}
