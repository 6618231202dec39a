package salarytemplate

type RuleKind int

const (
	RuleFixed RuleKind = iota
	RulePercentage
	RuleAdminSupplied
	RuleLegacyFormula
)

// Rule is the tagged variant a field's configuration resolves to. Keeping the
// resolution in one place makes the evaluator exhaustive over four cases
// instead of scattering conditionals per field kind.
type Rule struct {
	Kind       RuleKind
	Amount     float64 // RuleFixed
	BasedOn    string  // RulePercentage
	Percentage float64 // RulePercentage
	Key        string  // RuleLegacyFormula
}

// ruleFor resolves a field to its computation rule. Priority: an admin-
// supplied value when one was provided, the configured default, percentage,
// fixed amount, then the built-in legacy formulas keyed by field name.
func ruleFor(field SalaryField, adminValueProvided bool) Rule {
	if field.RequiresAdminInput && adminValueProvided {
		return Rule{Kind: RuleAdminSupplied}
	}

	if field.Rules != nil {
		if field.Rules.DefaultValue != nil {
			return Rule{Kind: RuleFixed, Amount: *field.Rules.DefaultValue}
		}
		switch field.Rules.CalculationType {
		case "percentage":
			return Rule{
				Kind:       RulePercentage,
				BasedOn:    field.Rules.BasedOn,
				Percentage: field.Rules.Percentage,
			}
		case "fixed":
			return Rule{Kind: RuleFixed, Amount: field.Rules.Amount}
		}
	}

	return Rule{Kind: RuleLegacyFormula, Key: field.Key}
}
