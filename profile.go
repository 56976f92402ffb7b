package advisor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// RiskLevel is the risk tolerance declared by a user.
type RiskLevel string

const (
	Low      RiskLevel = "Low"
	Moderate RiskLevel = "Moderate"
	High     RiskLevel = "High"
)

// RiskLevels lists the valid risk levels, from the most conservative.
var RiskLevels = []RiskLevel{Low, Moderate, High}

// ParseRiskLevel parses a risk level, ignoring case.
func ParseRiskLevel(s string) (RiskLevel, error) {
	for _, r := range RiskLevels {
		if strings.EqualFold(strings.TrimSpace(s), string(r)) {
			return r, nil
		}
	}
	return "", Errorf(InvalidInput, "", "invalid risk level %q, want one of %v", s, RiskLevels)
}

// Profile bounds.
const (
	MinAge     = 18
	MaxAge     = 100
	MinHorizon = 1
	MaxHorizon = 50
)

// DefaultCurrency is the currency of the monthly investment when none is given.
const DefaultCurrency = "INR"

// Profile describes a user asking for an allocation plan.
type Profile struct {
	Name              string          `json:"name"`
	Age               int             `json:"age"`
	MonthlyInvestment decimal.Decimal `json:"monthly_investment"`
	Horizon           int             `json:"horizon"` // in years
	Goal              string          `json:"goal"`
	Risk              RiskLevel       `json:"risk_level"`
	Currency          string          `json:"currency,omitempty"`
}

// Validate checks the profile's bounds and returns an InvalidInput error listing every failure.
func (p Profile) Validate() error {
	var errs []error
	if p.Age < MinAge || p.Age > MaxAge {
		errs = append(errs, fmt.Errorf("age %d is not in [%d, %d]", p.Age, MinAge, MaxAge))
	}
	if !p.MonthlyInvestment.IsPositive() {
		errs = append(errs, fmt.Errorf("monthly investment %s must be positive", p.MonthlyInvestment))
	}
	if p.Horizon < MinHorizon || p.Horizon > MaxHorizon {
		errs = append(errs, fmt.Errorf("horizon %d is not in [%d, %d] years", p.Horizon, MinHorizon, MaxHorizon))
	}
	if _, err := ParseRiskLevel(string(p.Risk)); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return &Error{Kind: InvalidInput, Op: "profile", Err: errors.Join(errs...)}
	}
	return nil
}

// InvestmentCurrency returns the profile's currency, or DefaultCurrency.
func (p Profile) InvestmentCurrency() string {
	if p.Currency == "" {
		return DefaultCurrency
	}
	return strings.ToUpper(p.Currency)
}
