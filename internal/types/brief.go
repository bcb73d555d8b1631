package types

import (
  "time"
  "github.com/google/uuid"
  "gorm.io/datatypes"
  "gorm.io/gorm"
)

type BriefVersion struct {
  ID        string `json:"id"`
  Label     string `json:"label"`
  Content   string `json:"content"`
  CreatedAt int64  `json:"createdAt"`
}

// MasterBrief is a reusable content asset. It stays mutable over time; runs
// never read it directly after launch, they read the frozen snapshot taken
// at launch time.
type MasterBrief struct {
  ID          uuid.UUID                          `gorm:"type:uuid;primaryKey" json:"id"`
  OwnerUserID uuid.UUID                          `gorm:"type:uuid;not null;index;column:owner_user_id" json:"owner_user_id"`
  Title       string                             `gorm:"not null;column:title" json:"title"`
  Content     string                             `gorm:"column:content" json:"content"`
  Type        string                             `gorm:"column:type" json:"type"`
  Folder      string                             `gorm:"column:folder" json:"folder"`
  SubFolder   string                             `gorm:"column:sub_folder" json:"sub_folder"`
  Tags        datatypes.JSONSlice[string]        `gorm:"column:tags" json:"tags"`
  Images      datatypes.JSONSlice[string]        `gorm:"column:images" json:"images"`
  Versions    datatypes.JSONSlice[BriefVersion]  `gorm:"column:versions" json:"versions"`
  CreatedAt   time.Time                          `gorm:"not null" json:"created_at"`
  UpdatedAt   time.Time                          `gorm:"not null" json:"updated_at"`
  DeletedAt   gorm.DeletedAt                     `gorm:"index" json:"-"`
}

func (MasterBrief) TableName() string {
  return "master_brief"
}
