package services

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/google/uuid"

	"github.com/simucrowd/simucrowd-backend/internal/experiment"
	"github.com/simucrowd/simucrowd-backend/internal/platform/apierr"
	"github.com/simucrowd/simucrowd-backend/internal/platform/logger"
	"github.com/simucrowd/simucrowd-backend/internal/repos"
	"github.com/simucrowd/simucrowd-backend/internal/types"
)

// DraftView is the wizard state returned to the client after every draft
// mutation: the current step, what is selected so far and whether the
// launch control should be enabled.
type DraftView struct {
	Step            experiment.Step           `json:"step"`
	Template        *types.TemplateDefinition `json:"template,omitempty"`
	Mode            types.ExperimentMode      `json:"mode,omitempty"`
	Cohort          *types.AudienceCohort     `json:"cohort,omitempty"`
	Snapshot        *experiment.Snapshot      `json:"snapshot,omitempty"`
	CompareBriefIDs []string                  `json:"compare_brief_ids"`
	CustomInput     string                    `json:"custom_input,omitempty"`
	CanLaunch       bool                      `json:"can_launch"`
}

// DraftService keeps one in-progress experiment configuration per user.
// Drafts are deliberately in-memory only: abandoning the wizard costs
// nothing and a restart simply starts a fresh draft.
type DraftService interface {
	Get(ctx context.Context, userID uuid.UUID) DraftView
	SelectTemplate(ctx context.Context, userID uuid.UUID, templateID string, mode types.ExperimentMode) (DraftView, error)
	SelectCohort(ctx context.Context, userID, cohortID uuid.UUID) (DraftView, error)
	SelectBrief(ctx context.Context, userID, briefID uuid.UUID) (DraftView, bool, error)
	SetCustomInput(ctx context.Context, userID uuid.UUID, input string) (DraftView, error)
	GoTo(ctx context.Context, userID uuid.UUID, step experiment.Step) (DraftView, error)
	Reset(ctx context.Context, userID uuid.UUID)

	// Take hands the finished configuration to the run orchestrator. The
	// draft is left in place so a failed launch can be retried; callers
	// Reset after a successful run.
	Take(ctx context.Context, userID uuid.UUID) (experiment.Config, error)
}

type draftService struct {
	mu         sync.Mutex
	drafts     map[uuid.UUID]*experiment.Configurator
	log        *logger.Logger
	templates  TemplateService
	cohortRepo repos.CohortRepo
	briefRepo  repos.BriefRepo
}

func NewDraftService(log *logger.Logger, templates TemplateService, cohortRepo repos.CohortRepo, briefRepo repos.BriefRepo) DraftService {
	return &draftService{
		drafts:     make(map[uuid.UUID]*experiment.Configurator),
		log:        log.With("service", "DraftService"),
		templates:  templates,
		cohortRepo: cohortRepo,
		briefRepo:  briefRepo,
	}
}

func (ds *draftService) configurator(userID uuid.UUID) *experiment.Configurator {
	c, ok := ds.drafts[userID]
	if !ok {
		c = experiment.NewConfigurator(experiment.Config{})
		ds.drafts[userID] = c
	}
	return c
}

func (ds *draftService) Get(ctx context.Context, userID uuid.UUID) DraftView {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	return viewOf(ds.configurator(userID))
}

func (ds *draftService) SelectTemplate(ctx context.Context, userID uuid.UUID, templateID string, mode types.ExperimentMode) (DraftView, error) {
	tpl, err := ds.templates.Get(templateID)
	if err != nil {
		return DraftView{}, apierr.New(http.StatusBadRequest, apierr.CodeValidation, err)
	}

	ds.mu.Lock()
	defer ds.mu.Unlock()

	c := ds.configurator(userID)
	if err := c.SelectTemplate(tpl, mode); err != nil {
		return viewOf(c), apierr.New(http.StatusBadRequest, apierr.CodeValidation, err)
	}
	return viewOf(c), nil
}

func (ds *draftService) SelectCohort(ctx context.Context, userID, cohortID uuid.UUID) (DraftView, error) {
	cohort, err := ds.cohortRepo.GetByID(ctx, nil, cohortID)
	if err != nil {
		return DraftView{}, fmt.Errorf("failed to load cohort: %w", err)
	}
	if cohort.OwnerUserID != userID && !cohort.IsOfficial {
		return DraftView{}, apierr.New(http.StatusNotFound, "", fmt.Errorf("cohort not found"))
	}

	ds.mu.Lock()
	defer ds.mu.Unlock()

	c := ds.configurator(userID)
	if err := c.SelectCohort(*cohort); err != nil {
		return viewOf(c), apierr.New(http.StatusBadRequest, apierr.CodeValidation, err)
	}
	return viewOf(c), nil
}

// SelectBrief reports launch=true when the selection completes a
// validation-mode draft; the handler turns that straight into a run.
func (ds *draftService) SelectBrief(ctx context.Context, userID, briefID uuid.UUID) (DraftView, bool, error) {
	brief, err := ds.briefRepo.GetByID(ctx, nil, briefID)
	if err != nil {
		return DraftView{}, false, fmt.Errorf("failed to load brief: %w", err)
	}
	if brief.OwnerUserID != userID {
		return DraftView{}, false, apierr.New(http.StatusNotFound, "", fmt.Errorf("brief not found"))
	}

	ds.mu.Lock()
	defer ds.mu.Unlock()

	c := ds.configurator(userID)
	launch, err := c.SelectBrief(*brief)
	if err != nil {
		return viewOf(c), false, apierr.New(http.StatusBadRequest, apierr.CodeValidation, err)
	}
	return viewOf(c), launch, nil
}

func (ds *draftService) SetCustomInput(ctx context.Context, userID uuid.UUID, input string) (DraftView, error) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	c := ds.configurator(userID)
	c.SetCustomInput(input)
	return viewOf(c), nil
}

func (ds *draftService) GoTo(ctx context.Context, userID uuid.UUID, step experiment.Step) (DraftView, error) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	c := ds.configurator(userID)
	if err := c.GoTo(step); err != nil {
		return viewOf(c), apierr.New(http.StatusBadRequest, apierr.CodeValidation, err)
	}
	return viewOf(c), nil
}

func (ds *draftService) Reset(ctx context.Context, userID uuid.UUID) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	delete(ds.drafts, userID)
}

func (ds *draftService) Take(ctx context.Context, userID uuid.UUID) (experiment.Config, error) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	c, ok := ds.drafts[userID]
	if !ok || !c.CanLaunch() {
		return experiment.Config{}, apierr.New(http.StatusBadRequest, apierr.CodeValidation,
			fmt.Errorf("No Brief Snapshot selected."))
	}
	return c.Config(), nil
}

func viewOf(c *experiment.Configurator) DraftView {
	cfg := c.Config()
	ids := make([]string, 0, len(cfg.CompareBriefs))
	for _, b := range cfg.CompareBriefs {
		ids = append(ids, b.ID.String())
	}
	return DraftView{
		Step:            c.Step(),
		Template:        cfg.Template,
		Mode:            cfg.Mode,
		Cohort:          cfg.Cohort,
		Snapshot:        cfg.ActiveSnapshot,
		CompareBriefIDs: ids,
		CustomInput:     cfg.CustomInput,
		CanLaunch:       c.CanLaunch(),
	}
}
