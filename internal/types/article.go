package types

import (
  "time"
  "github.com/google/uuid"
  "gorm.io/datatypes"
)

// Article is community content surfaced on the Test Square page.
type Article struct {
  ID           uuid.UUID                    `gorm:"type:uuid;primaryKey" json:"id"`
  Title        string                       `gorm:"not null;column:title" json:"title"`
  Content      string                       `gorm:"column:content" json:"content"`
  Summary      string                       `gorm:"column:summary" json:"summary"`
  CoverImage   string                       `gorm:"column:cover_image" json:"cover_image,omitempty"`
  Tags         datatypes.JSONSlice[string]  `gorm:"column:tags" json:"tags"`
  AuthorName   string                       `gorm:"column:author_name" json:"author_name"`
  AuthorAvatar string                       `gorm:"column:author_avatar" json:"author_avatar"`
  CreatedAt    time.Time                    `gorm:"not null" json:"created_at"`
}

func (Article) TableName() string {
  return "article"
}
