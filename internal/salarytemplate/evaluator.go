package salarytemplate

import "math"

// EvalContext carries the per-employee figures a rule can reference.
// GrossSalary holds basic pay plus the allowances evaluated so far, so a
// percentage-of-grossSalary field sees only allowances that precede it in the
// template order.
type EvalContext struct {
	BasicPay      float64
	MonthlySalary float64
	PresentDays   float64
	BasicDuty     float64
	GrossSalary   float64
}

func (c EvalContext) valueOf(basedOn string) float64 {
	switch basedOn {
	case "basicPay":
		return c.BasicPay
	case "monthlySalary":
		return c.MonthlySalary
	case "grossSalary":
		return c.GrossSalary
	default:
		return 0
	}
}

// Statutory rates baked into the legacy formulas.
const (
	legacyPFRate   = 0.12
	legacyESICRate = 0.0075
	legacyLWF      = 10.0
)

// Evaluate computes one field's numeric value. Pure: same field, context and
// admin value always produce the same result.
func Evaluate(field SalaryField, ctx EvalContext, adminValue *float64) float64 {
	rule := ruleFor(field, adminValue != nil)

	switch rule.Kind {
	case RuleAdminSupplied:
		return Round2(*adminValue)
	case RuleFixed:
		return Round2(rule.Amount)
	case RulePercentage:
		return Round2(ctx.valueOf(rule.BasedOn) * rule.Percentage / 100)
	case RuleLegacyFormula:
		return Round2(legacyFormula(rule.Key, ctx))
	default:
		return 0
	}
}

func legacyFormula(key string, ctx EvalContext) float64 {
	switch key {
	case "pf":
		return ctx.BasicPay * legacyPFRate
	case "esic":
		return ctx.GrossSalary * legacyESICRate
	case "lwf":
		return legacyLWF
	default:
		return 0
	}
}

// Round2 rounds to the cent, halves away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
