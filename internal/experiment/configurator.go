package experiment

import (
	"errors"

	"github.com/google/uuid"

	"github.com/simucrowd/simucrowd-backend/internal/types"
)

type Step string

const (
	StepTemplate Step = "TEMPLATE"
	StepAudience Step = "AUDIENCE"
	StepContent  Step = "CONTENT"
)

var (
	ErrCompareFull      = errors.New("Maximum 3 items for comparison.")
	ErrModeUnsupported  = errors.New("template does not support the requested mode")
	ErrTemplateRequired = errors.New("no template selected")
	ErrCohortRequired   = errors.New("no cohort selected")
	ErrStepLocked       = errors.New("step prerequisite not met")
)

// Config is the in-progress wizard state. It is transient and UI-local:
// never persisted, only read by the run orchestrator at launch time.
type Config struct {
	Template       *types.TemplateDefinition
	Mode           types.ExperimentMode
	Cohort         *types.AudienceCohort
	ActiveSnapshot *Snapshot
	CompareBriefs  []types.MasterBrief
	CustomInput    string
}

// Configurator is the three-step wizard (method, audience, asset) as an
// explicit state machine. All mutation goes through the Select* methods;
// nothing mutates when a transition is rejected.
type Configurator struct {
	cfg  Config
	step Step
}

func NewConfigurator(cfg Config) *Configurator {
	return &Configurator{cfg: cfg, step: resumeStep(cfg)}
}

// resumeStep lands on the first step whose prerequisite is unmet, so a
// partially built configuration resumes where it left off instead of
// restarting.
func resumeStep(cfg Config) Step {
	if cfg.Template == nil {
		return StepTemplate
	}
	if cfg.Cohort == nil {
		return StepAudience
	}
	return StepContent
}

func (c *Configurator) Step() Step {
	return c.step
}

func (c *Configurator) Config() Config {
	return c.cfg
}

// SelectTemplate fixes the methodology and mode and advances to the
// audience step. A template change invalidates the comparison tray and any
// frozen snapshot, since both are only meaningful for the previous mode.
func (c *Configurator) SelectTemplate(tpl types.TemplateDefinition, mode types.ExperimentMode) error {
	if !tpl.SupportsMode(mode) {
		return ErrModeUnsupported
	}
	c.cfg.Template = &tpl
	c.cfg.Mode = mode
	c.cfg.CompareBriefs = nil
	c.cfg.ActiveSnapshot = nil
	c.step = StepAudience
	return nil
}

func (c *Configurator) SelectCohort(cohort types.AudienceCohort) error {
	if c.cfg.Template == nil {
		return ErrTemplateRequired
	}
	c.cfg.Cohort = &cohort
	c.step = StepContent
	return nil
}

// SelectBrief handles the asset step. In validation mode it freezes a
// single-brief snapshot and reports launch=true: the step does not wait for
// a separate confirm action. In preference mode it toggles tray membership
// (capped at 3) and rebuilds the comparison snapshot from the full current
// list after every toggle, so the snapshot always reflects exactly what is
// in the tray.
func (c *Configurator) SelectBrief(b types.MasterBrief) (launch bool, err error) {
	if c.cfg.Template == nil {
		return false, ErrTemplateRequired
	}
	if c.cfg.Cohort == nil {
		return false, ErrCohortRequired
	}

	if c.cfg.Mode == types.ModeValidation {
		snap := SnapshotFromBrief(b)
		c.cfg.ActiveSnapshot = &snap
		return true, nil
	}

	list := c.cfg.CompareBriefs
	if idx := indexOfBrief(list, b.ID); idx >= 0 {
		list = append(list[:idx:idx], list[idx+1:]...)
	} else {
		if len(list) >= maxCompareBriefs {
			return false, ErrCompareFull
		}
		list = append(list, b)
	}
	c.cfg.CompareBriefs = list

	if len(list) >= minCompareBriefs {
		snap, serr := ComparisonSnapshot(list)
		if serr != nil {
			return false, serr
		}
		c.cfg.ActiveSnapshot = &snap
	} else {
		c.cfg.ActiveSnapshot = nil
	}
	return false, nil
}

// SetCustomInput records free-form context text. It touches nothing else, in
// particular the current step stays where the user navigated to.
func (c *Configurator) SetCustomInput(s string) {
	c.cfg.CustomInput = s
}

// CanLaunch reports whether the launch control is enabled. Preference mode
// needs 2 or 3 tray items; validation mode needs a frozen snapshot.
func (c *Configurator) CanLaunch() bool {
	if c.cfg.Mode == types.ModePreference {
		n := len(c.cfg.CompareBriefs)
		return n >= minCompareBriefs && n <= maxCompareBriefs && c.cfg.ActiveSnapshot != nil
	}
	return c.cfg.ActiveSnapshot != nil
}

// GoTo jumps back through the step indicator. The template step is always
// reachable (restart); audience and content only once their prerequisite is
// satisfied. Jumping back never clears downstream selections.
func (c *Configurator) GoTo(step Step) error {
	switch step {
	case StepTemplate:
	case StepAudience:
		if c.cfg.Template == nil {
			return ErrStepLocked
		}
	case StepContent:
		if c.cfg.Template == nil || c.cfg.Cohort == nil {
			return ErrStepLocked
		}
	default:
		return ErrStepLocked
	}
	c.step = step
	return nil
}

func indexOfBrief(list []types.MasterBrief, id uuid.UUID) int {
	for i, b := range list {
		if b.ID == id {
			return i
		}
	}
	return -1
}
