package types

import (
  "encoding/json"
  "time"
  "github.com/google/uuid"
  "gorm.io/datatypes"
  "gorm.io/gorm"
)

type ExperimentMode string

const (
  ModeValidation ExperimentMode = "VALIDATION"
  ModePreference ExperimentMode = "PREFERENCE"
)

type ExperimentOption struct {
  ID          string `json:"id"`
  Title       string `json:"title"`
  Description string `json:"description"`
  Image       string `json:"image,omitempty"`
}

type LandingPageMetrics struct {
  Bounced     bool    `json:"bounced"`
  ScrollDepth float64 `json:"scrollDepth"`
  TimeOnPage  float64 `json:"timeOnPage"`
  ClickedCTA  bool    `json:"clickedCTA"`
  Converted   bool    `json:"converted"`
}

type AnalysisResult struct {
  PersonaID          string              `json:"personaId"`
  Sentiment          string              `json:"sentiment"`
  Score              float64             `json:"score"`
  SelectedOptionID   string              `json:"selectedOptionId,omitempty"`
  Reaction           string              `json:"reaction"`
  KeyConcernOrPraise string              `json:"keyConcernOrPraise"`
  PurchaseIntent     string              `json:"purchaseIntent"`
  LandingPageMetrics *LandingPageMetrics `json:"landingPageMetrics,omitempty"`
}

// AnalysisRecord is immutable once written. The directive, options and
// images are the frozen snapshot fields that were actually sent, not live
// references to the source brief.
type AnalysisRecord struct {
  ID                 string             `json:"id"`
  Timestamp          int64              `json:"timestamp"`
  Type               ExperimentMode     `json:"type"`
  Directive          string             `json:"directive"`
  Options            []ExperimentOption `json:"options,omitempty"`
  Images             []string           `json:"images,omitempty"`
  Results            []AnalysisResult   `json:"results"`
  ConfidenceScore    float64            `json:"confidenceScore"`
  Summary            string             `json:"summary"`
  ShortTitle         string             `json:"shortTitle,omitempty"`
  StructuredInsights json.RawMessage    `json:"structuredInsights,omitempty"`
  ActionItems        []string           `json:"actionItems,omitempty"`
}

// Session is the durable envelope of one simulation run. Cohort fields are
// copied at creation time so later cohort edits do not rewrite history. In
// the current design Analyses holds exactly zero (charged but failed run)
// or one record.
type Session struct {
  ID             uuid.UUID                            `gorm:"type:uuid;primaryKey" json:"id"`
  OwnerUserID    uuid.UUID                            `gorm:"type:uuid;not null;index;column:owner_user_id" json:"owner_user_id"`
  Timestamp      int64                                `gorm:"not null;column:timestamp" json:"timestamp"`
  CohortID       uuid.UUID                            `gorm:"type:uuid;not null;column:cohort_id" json:"cohort_id"`
  CohortName     string                               `gorm:"column:cohort_name" json:"cohort_name"`
  CohortLanguage string                               `gorm:"column:cohort_language" json:"cohort_language"`
  Personas       datatypes.JSONSlice[Persona]         `gorm:"column:personas" json:"personas"`
  Analyses       datatypes.JSONSlice[AnalysisRecord]  `gorm:"column:analyses" json:"analyses"`
  TemplateID     string                               `gorm:"not null;column:template_id" json:"template_id"`
  TopicID        string                               `gorm:"column:topic_id" json:"topic_id"`
  TopicTitle     string                               `gorm:"column:topic_title" json:"topic_title"`
  ShortTitle     string                               `gorm:"column:short_title" json:"short_title,omitempty"`
  CreatedAt      time.Time                            `gorm:"not null" json:"created_at"`
  UpdatedAt      time.Time                            `gorm:"not null" json:"updated_at"`
  DeletedAt      gorm.DeletedAt                       `gorm:"index" json:"-"`
}

func (Session) TableName() string {
  return "session"
}
