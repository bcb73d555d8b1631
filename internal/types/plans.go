package types

// Costs are charged in credits ("points") and debited server-side when the
// corresponding record is created, never by the client.
const (
  CostRunSimulation   = 10
  CostCreateCohort    = 5
  CostFollowUpFive    = 1
)

type PlanLimit struct {
  Name            string
  MaxBriefs       int
  MonthlyCredits  int
  PriceUSD        int
}

var PlanLimits = map[PlanLevel]PlanLimit{
  PlanFree:    {Name: "Free", MaxBriefs: 1, MonthlyCredits: 20, PriceUSD: 0},
  PlanPro:     {Name: "Pro", MaxBriefs: 20, MonthlyCredits: 2000, PriceUSD: 99},
  PlanProPlus: {Name: "Pro Plus", MaxBriefs: 100, MonthlyCredits: 6000, PriceUSD: 199},
}

// LimitsFor falls back to the FREE tier for unknown plan values.
func LimitsFor(plan PlanLevel) PlanLimit {
  if pl, ok := PlanLimits[plan]; ok {
    return pl
  }
  return PlanLimits[PlanFree]
}
