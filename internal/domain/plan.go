package domain

// Plan is the subscription tier gating tenant resource quotas.
type Plan string

const (
	PlanBasic        Plan = "basic"
	PlanProfessional Plan = "professional"
	PlanPremium      Plan = "premium"
)

// Valid reports whether the plan is one of the enumerated tiers.
func (p Plan) Valid() bool {
	switch p {
	case PlanBasic, PlanProfessional, PlanPremium:
		return true
	}
	return false
}

// MonthlyPrice is what a billing-history entry records when the plan is
// charged.
func (p Plan) MonthlyPrice() float64 {
	switch p {
	case PlanBasic:
		return 99.90
	case PlanProfessional:
		return 199.90
	case PlanPremium:
		return 299.90
	}
	return 0
}

// ProfessionalLimit returns the active-staff ceiling for the plan.
// limited is false for the premium tier, which is unbounded.
func (p Plan) ProfessionalLimit() (limit int, limited bool) {
	switch p {
	case PlanBasic:
		return 3, true
	case PlanProfessional:
		return 7, true
	default:
		return 0, false
	}
}

// CanAddProfessional is the quota check applied at staff-creation time:
// given the tenant's plan and its current active staff count, may one more
// professional be added.
func (p Plan) CanAddProfessional(currentActive int) bool {
	limit, limited := p.ProfessionalLimit()
	if !limited {
		return true
	}
	return currentActive < limit
}

// AllowsProfessionalCount is the quota check applied at plan-downgrade time:
// a downgrade is refused when the existing active staff count already exceeds
// the target plan's ceiling. It never deactivates staff.
func (p Plan) AllowsProfessionalCount(activeCount int) bool {
	limit, limited := p.ProfessionalLimit()
	if !limited {
		return true
	}
	return activeCount <= limit
}

// ServiceCatalogCap is the plan's informational catalog-size cap.
// It guides bulk provisioning only; interactive service creation is not
// quota-enforced.
func (p Plan) ServiceCatalogCap() int {
	switch p {
	case PlanBasic:
		return 10
	case PlanProfessional:
		return 30
	default:
		return 100
	}
}
