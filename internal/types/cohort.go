package types

import (
  "time"
  "github.com/google/uuid"
  "gorm.io/datatypes"
  "gorm.io/gorm"
)

type TraitFingerprint struct {
  Skepticism       int `json:"skepticism"`
  Innovation       int `json:"innovation"`
  PriceSensitivity int `json:"priceSensitivity"`
  SocialProof      int `json:"socialProof"`
  BrandLoyalty     int `json:"brandLoyalty"`
}

// PersonaRadar holds the 0-100 behavioral axes produced by the persona
// generator: patience, logic, impulse, budget sensitivity.
type PersonaRadar struct {
  PAT int `json:"PAT"`
  LOG int `json:"LOG"`
  IMP int `json:"IMP"`
  BUD int `json:"BUD"`
}

type Persona struct {
  ID                  string            `json:"id"`
  Name                string            `json:"name"`
  Age                 int               `json:"age"`
  Gender              string            `json:"gender"`
  Location            string            `json:"location"`
  Occupation          string            `json:"occupation"`
  Education           string            `json:"education"`
  SocioeconomicStatus string            `json:"socioeconomicStatus"`
  FamilyStatus        string            `json:"familyStatus"`
  IncomeLevel         string            `json:"incomeLevel"`
  Personality         string            `json:"personality"`
  CoreValues          string            `json:"coreValues"`
  PainPoints          string            `json:"painPoints"`
  TraitFingerprint    TraitFingerprint  `json:"traitFingerprint"`
  Radar               *PersonaRadar     `json:"radar,omitempty"`
  Mindset             string            `json:"mindset,omitempty"`
  ActionFormula       string            `json:"actionFormula,omitempty"`
  InnerMonologue      string            `json:"innerMonologue,omitempty"`
}

type ArchetypeKind string

const (
  ArchetypeHappyPath  ArchetypeKind = "HAPPY_PATH"
  ArchetypeBaseline   ArchetypeKind = "BASELINE"
  ArchetypeStressTest ArchetypeKind = "STRESS_TEST"
)

type CohortArchetype struct {
  ID                       string        `json:"id"`
  Kind                     ArchetypeKind `json:"type"`
  Name                     string        `json:"name"`
  Role                     string        `json:"role"`
  Age                      int           `json:"age"`
  Tags                     []string      `json:"tags"`
  Context                  string        `json:"context"`
  AdResistance             string        `json:"adResistance"`
  AdResistanceReason       string        `json:"adResistanceReason"`
  CognitiveLoadPreference  string        `json:"cognitiveLoadPreference"`
  Triggers                 []string      `json:"triggers"`
  Frictions                []string      `json:"frictions"`
  SwitchingCost            string        `json:"switchingCost"`
  DifficultyRating         string        `json:"difficultyRating"`
  DifficultyReason         string        `json:"difficultyReason"`
  DecisionPath             string        `json:"decisionPath"`
  StrategyTip              string        `json:"strategyTip"`
}

// GroupOverview summarizes a cohort; the archetype distribution is expressed
// in percent and is expected to sum to roughly 100.
type GroupOverview struct {
  TotalUsers      int     `json:"totalUsers"`
  Characteristics string  `json:"characteristics"`
  Distribution    struct {
    HappyPath  int `json:"happyPath"`
    Baseline   int `json:"baseline"`
    StressTest int `json:"stressTest"`
  } `json:"distribution"`
  VisualHint string `json:"visualHint"`
}

type MarketStat struct {
  Label string `json:"label"`
  Value string `json:"value"`
  Trend string `json:"trend"`
}

type AudienceCohort struct {
  ID            uuid.UUID                              `gorm:"type:uuid;primaryKey" json:"id"`
  OwnerUserID   uuid.UUID                              `gorm:"type:uuid;not null;index;column:owner_user_id" json:"owner_user_id"`
  Category      string                                 `gorm:"column:category" json:"category"`
  Name          string                                 `gorm:"not null;column:name" json:"name"`
  Description   string                                 `gorm:"column:description" json:"description"`
  Language      string                                 `gorm:"not null;default:'en';column:language" json:"language"`
  IsOfficial    bool                                   `gorm:"not null;default:false;column:is_official" json:"is_official"`
  Tags          datatypes.JSONSlice[string]            `gorm:"column:tags" json:"tags"`
  MarketStats   datatypes.JSONSlice[MarketStat]        `gorm:"column:market_stats" json:"market_stats"`
  Personas      datatypes.JSONSlice[Persona]           `gorm:"column:personas" json:"personas"`
  Archetypes    datatypes.JSONSlice[CohortArchetype]   `gorm:"column:archetypes" json:"archetypes"`
  GroupOverview datatypes.JSONType[GroupOverview]      `gorm:"column:group_overview" json:"group_overview"`
  CreatedAt     time.Time                              `gorm:"not null" json:"created_at"`
  UpdatedAt     time.Time                              `gorm:"not null" json:"updated_at"`
  DeletedAt     gorm.DeletedAt                         `gorm:"index" json:"-"`
}

func (AudienceCohort) TableName() string {
  return "audience_cohort"
}
