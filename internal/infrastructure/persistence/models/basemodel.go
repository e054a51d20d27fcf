package models

type BaseModel struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:100;not null"`
	Code        string `gorm:"uniqueIndex;size:20;not null"`
	Description string `gorm:"type:text"`
	Active      bool   `gorm:"not null;default:true;index"`
	Version     int    `gorm:"not null;default:1"`
	CreatedAt   int64  `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt   int64  `gorm:"autoUpdateTime:milli;not null"`
}

func (BaseModel) TableName() string {
	return "bases"
}
