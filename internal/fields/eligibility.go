package fields

import "strconv"

// MinTurnover is the eligibility threshold over the summed turnover amounts,
// in the extraction's currency-agnostic units.
const MinTurnover = 1_000_000

// EligibilityResult reports the pre-qualification turnover rule.
type EligibilityResult struct {
	IsEligible *bool
	Reason     string
}

// CheckEligibility sums the turnover amounts, counting unparseable amounts as
// zero, against the minimum-turnover threshold. With no turnover data both
// fields stay at their zero values.
func CheckEligibility(turnover []TurnoverEntry) EligibilityResult {
	var result EligibilityResult
	if len(turnover) == 0 {
		return result
	}

	var total float64
	for _, t := range turnover {
		if f, err := strconv.ParseFloat(t.Amount, 64); err == nil {
			total += f
		}
	}

	eligible := total >= MinTurnover
	result.IsEligible = &eligible
	if eligible {
		result.Reason = "Meets minimum turnover requirement"
	} else {
		result.Reason = "Below minimum turnover threshold"
	}
	return result
}
