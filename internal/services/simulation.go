package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/sashabaranov/go-openai"

	"github.com/simucrowd/simucrowd-backend/internal/experiment"
	"github.com/simucrowd/simucrowd-backend/internal/platform/logger"
	"github.com/simucrowd/simucrowd-backend/internal/types"
)

// RunInput is everything the focus-group simulation needs. The snapshot is
// the only content source: the model never sees the live brief.
type RunInput struct {
	Personas    []types.Persona
	Mode        types.ExperimentMode
	Snapshot    experiment.Snapshot
	TemplateID  string
	Language    string
	CustomInput string
}

type SimulationOutput struct {
	Results            []types.AnalysisResult `json:"results"`
	ConfidenceScore    float64                `json:"confidenceScore"`
	Summary            string                 `json:"summary"`
	ShortTitle         string                 `json:"shortTitle"`
	StructuredInsights json.RawMessage        `json:"structuredInsights,omitempty"`
	ActionItems        []string               `json:"actionItems,omitempty"`
}

type CohortSeed struct {
	Category    string
	Name        string
	Description string
	Language    string
}

// CohortContent is the generated body of an audience cohort: the persona
// roster plus the archetype and market framing around it.
type CohortContent struct {
	Personas      []types.Persona         `json:"personas"`
	Archetypes    []types.CohortArchetype `json:"archetypes"`
	GroupOverview types.GroupOverview     `json:"groupOverview"`
	MarketStats   []types.MarketStat      `json:"marketStats"`
	Tags          []string                `json:"tags"`
}

type SimulationClient interface {
	RunFocusGroup(ctx context.Context, in RunInput, onProgress func(progress int, stage string)) (*SimulationOutput, error)
	GenerateCohort(ctx context.Context, seed CohortSeed) (*CohortContent, error)
}

type openAISimulation struct {
	log    *logger.Logger
	client *openai.Client
	model  string

	// complete defaults to completeJSON; tests swap in a canned response.
	complete func(ctx context.Context, system, user string) (string, error)
}

func NewOpenAISimulation(log *logger.Logger) (SimulationClient, error) {
	apiKey := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
	}
	model := strings.TrimSpace(os.Getenv("OPENAI_MODEL"))
	if model == "" {
		model = "gpt-4o-mini"
	}
	serviceLog := log.With("service", "SimulationClient")
	serviceLog.Info("Initializing OpenAI simulation client", "model", model)
	s := &openAISimulation{
		log:    serviceLog,
		client: openai.NewClient(apiKey),
		model:  model,
	}
	s.complete = s.completeJSON
	return s, nil
}

func (s *openAISimulation) RunFocusGroup(ctx context.Context, in RunInput, onProgress func(progress int, stage string)) (*SimulationOutput, error) {
	if len(in.Personas) == 0 {
		return nil, fmt.Errorf("no personas to simulate")
	}
	report := func(p int, stage string) {
		if onProgress != nil {
			onProgress(p, stage)
		}
	}

	report(10, "briefing panel")

	userPrompt, err := buildFocusGroupPrompt(in)
	if err != nil {
		return nil, err
	}

	report(30, "collecting reactions")

	raw, err := s.complete(ctx, focusGroupSystemPrompt(in.Mode, in.Language), userPrompt)
	if err != nil {
		return nil, fmt.Errorf("focus group completion: %w", err)
	}

	report(80, "scoring responses")

	var out SimulationOutput
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		s.log.Warn("simulation returned malformed JSON", "error", err)
		return nil, fmt.Errorf("decode simulation output: %w", err)
	}
	if len(out.Results) == 0 {
		return nil, fmt.Errorf("simulation produced no per-persona results")
	}
	for i := range out.Results {
		if out.Results[i].PersonaID == "" && i < len(in.Personas) {
			out.Results[i].PersonaID = in.Personas[i].ID
		}
	}
	if out.ShortTitle == "" {
		out.ShortTitle = in.Snapshot.FrozenTitle
	}

	report(95, "writing summary")
	report(100, "done")
	return &out, nil
}

func (s *openAISimulation) GenerateCohort(ctx context.Context, seed CohortSeed) (*CohortContent, error) {
	raw, err := s.complete(ctx, cohortSystemPrompt(seed.Language), buildCohortPrompt(seed))
	if err != nil {
		return nil, fmt.Errorf("cohort completion: %w", err)
	}

	var out CohortContent
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("decode cohort content: %w", err)
	}
	if len(out.Personas) == 0 {
		return nil, fmt.Errorf("cohort generation produced no personas")
	}
	for i := range out.Personas {
		if out.Personas[i].ID == "" {
			out.Personas[i].ID = uuid.NewString()
		}
	}
	return &out, nil
}

func (s *openAISimulation) completeJSON(ctx context.Context, system, user string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}
	resp, err := s.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("OpenAI API call failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("OpenAI returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func focusGroupSystemPrompt(mode types.ExperimentMode, language string) string {
	var b strings.Builder
	b.WriteString("You are a synthetic focus-group moderator. Each panelist is described by a persona profile; answer AS the panel, staying in character per persona. ")
	if mode == types.ModePreference {
		b.WriteString("The panel compares the given options head to head; every result must carry a selectedOptionId. ")
	} else {
		b.WriteString("The panel reacts to a single asset. ")
	}
	if language != "" && language != "en" {
		fmt.Fprintf(&b, "Write all free-text fields in language %q. ", language)
	}
	b.WriteString(`Respond with a single JSON object: {"results": [{"personaId", "sentiment" (POSITIVE|NEUTRAL|NEGATIVE), "score" (0-100), "selectedOptionId", "reaction", "keyConcernOrPraise", "purchaseIntent" (High|Medium|Low)}], "confidenceScore" (0-100), "summary", "shortTitle", "actionItems": [string]}.`)
	return b.String()
}

func buildFocusGroupPrompt(in RunInput) (string, error) {
	personas, err := json.Marshal(in.Personas)
	if err != nil {
		return "", fmt.Errorf("marshal personas: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Methodology: %s\nMode: %s\n\n", in.TemplateID, in.Mode)
	if in.Mode == types.ModePreference {
		opts, oerr := json.Marshal(in.Snapshot.Options)
		if oerr != nil {
			return "", fmt.Errorf("marshal options: %w", oerr)
		}
		fmt.Fprintf(&b, "Options under comparison:\n%s\n\n", opts)
	} else {
		fmt.Fprintf(&b, "Asset title: %s\nAsset content:\n%s\n\n", in.Snapshot.FrozenTitle, in.Snapshot.FrozenContent)
		if len(in.Snapshot.FrozenImages) > 0 {
			fmt.Fprintf(&b, "Attached image count: %d\n\n", len(in.Snapshot.FrozenImages))
		}
	}
	if strings.TrimSpace(in.CustomInput) != "" {
		fmt.Fprintf(&b, "Additional researcher notes:\n%s\n\n", in.CustomInput)
	}
	fmt.Fprintf(&b, "Panel personas:\n%s\n", personas)
	return b.String(), nil
}

func cohortSystemPrompt(language string) string {
	var b strings.Builder
	b.WriteString("You are an audience researcher building a synthetic cohort. Generate 5 distinct personas with realistic demographics, trait fingerprints (0-100 integers for skepticism, innovation, priceSensitivity, socialProof, brandLoyalty) and behavioral radar axes PAT, LOG, IMP, BUD. ")
	b.WriteString("Also generate 3 archetypes (types HAPPY_PATH, BASELINE, STRESS_TEST), a groupOverview whose distribution percentages sum to 100, marketStats and tags. ")
	if language != "" && language != "en" {
		fmt.Fprintf(&b, "Write all free-text fields in language %q. ", language)
	}
	b.WriteString(`Respond with a single JSON object: {"personas": [...], "archetypes": [...], "groupOverview": {...}, "marketStats": [...], "tags": [...]}.`)
	return b.String()
}

func buildCohortPrompt(seed CohortSeed) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Cohort name: %s\n", seed.Name)
	if seed.Category != "" {
		fmt.Fprintf(&b, "Category: %s\n", seed.Category)
	}
	if seed.Description != "" {
		fmt.Fprintf(&b, "Description:\n%s\n", seed.Description)
	}
	return b.String()
}
