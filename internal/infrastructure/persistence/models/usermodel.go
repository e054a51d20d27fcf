package models

type UserModel struct {
	ID           uint   `gorm:"primaryKey"`
	Email        string `gorm:"uniqueIndex;size:254;not null"`
	Name         string `gorm:"size:100;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Role         string `gorm:"size:20;not null;index"`
	Active       bool   `gorm:"not null;default:true;index"`
	Version      int    `gorm:"not null;default:1"`
	CreatedAt    int64  `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt    int64  `gorm:"autoUpdateTime:milli;not null"`
	LastLoginAt  *int64
}

func (UserModel) TableName() string {
	return "users"
}

// UserBaseModel is the membership join row between users and bases.
type UserBaseModel struct {
	ID        uint  `gorm:"primaryKey"`
	UserID    uint  `gorm:"not null;index;uniqueIndex:idx_user_base"`
	BaseID    uint  `gorm:"not null;index;uniqueIndex:idx_user_base"`
	CreatedAt int64 `gorm:"autoCreateTime:milli;not null"`
}

func (UserBaseModel) TableName() string {
	return "user_bases"
}

type SessionModel struct {
	ID               string `gorm:"primaryKey;size:64"`
	UserID           uint   `gorm:"not null;index"`
	IPAddress        string `gorm:"size:45"`
	UserAgent        string `gorm:"size:500"`
	RefreshTokenHash string `gorm:"size:128;index"`
	ExpiresAt        int64  `gorm:"not null;index"`
	LastActivityAt   int64  `gorm:"not null"`
	CreatedAt        int64  `gorm:"autoCreateTime:milli;not null"`
}

func (SessionModel) TableName() string {
	return "sessions"
}
