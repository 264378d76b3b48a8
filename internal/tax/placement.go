package tax

// AccountType is where a strategy's trades are held.
type AccountType string

const (
	AccountTaxable       AccountType = "taxable"
	AccountTaxAdvantaged AccountType = "tax_advantaged"
)

// StrategyProfile describes the tax character of a trading strategy.
type StrategyProfile struct {
	Name string `json:"name"`
	// HighTurnover strategies generate frequent taxable events.
	HighTurnover bool `json:"high_turnover"`
	// ShortTermGains strategies realize income taxed at ordinary rates.
	ShortTermGains bool `json:"short_term_gains"`
	// DividendFocused strategies throw off recurring dividend income.
	DividendFocused bool `json:"dividend_focused"`
	// LongTermGains strategies hold for preferential rates.
	LongTermGains bool `json:"long_term_gains"`
	// TaxLossHarvesting strategies rely on deducting realized losses.
	TaxLossHarvesting bool `json:"tax_loss_harvesting"`
}

// Placement is the recommended account for one strategy.
type Placement struct {
	Strategy string      `json:"strategy"`
	Account  AccountType `json:"account"`
	// Score is a 0-100 confidence in the recommendation.
	Score   float64  `json:"score"`
	Reasons []string `json:"reasons"`
}

// Flag point weights toward each account type.
const (
	turnoverPoints   = 20 // tax_advantaged: shelter frequent events
	shortTermPoints  = 20 // tax_advantaged: ordinary rates hurt most
	dividendPoints   = 10 // tax_advantaged: shelter recurring income
	longTermPoints   = 20 // taxable: preferential rates already apply
	harvestingPoints = 15 // taxable: losses are only deductible there
)

// RecommendPlacement scores each strategy profile against the account
// types the caller actually has and returns one placement per strategy.
// Both scores start even at 50; each flag moves points toward the
// account it favors.
func RecommendPlacement(profiles []StrategyProfile, available []AccountType) []Placement {
	hasTaxable := containsAccount(available, AccountTaxable)
	hasAdvantaged := containsAccount(available, AccountTaxAdvantaged)

	placements := make([]Placement, 0, len(profiles))
	for _, p := range profiles {
		advantaged, taxable := 50.0, 50.0
		var advantagedReasons, taxableReasons []string

		if p.HighTurnover {
			advantaged += turnoverPoints
			advantagedReasons = append(advantagedReasons, "high turnover generates frequent taxable events")
		}
		if p.ShortTermGains {
			advantaged += shortTermPoints
			advantagedReasons = append(advantagedReasons, "short-term gains are taxed at ordinary rates")
		}
		if p.DividendFocused {
			advantaged += dividendPoints
			advantagedReasons = append(advantagedReasons, "dividend income is sheltered in a tax-advantaged account")
		}
		if p.LongTermGains {
			taxable += longTermPoints
			taxableReasons = append(taxableReasons, "long-term gains already get preferential rates")
		}
		if p.TaxLossHarvesting {
			taxable += harvestingPoints
			taxableReasons = append(taxableReasons, "losses are only deductible in a taxable account")
		}

		account := AccountTaxable
		score := taxable
		reasons := taxableReasons
		if advantaged > taxable {
			account = AccountTaxAdvantaged
			score = advantaged
			reasons = advantagedReasons
		}

		// Fall back to whatever account the caller actually has.
		if account == AccountTaxAdvantaged && !hasAdvantaged && hasTaxable {
			account = AccountTaxable
			score = taxable
			reasons = taxableReasons
		} else if account == AccountTaxable && !hasTaxable && hasAdvantaged {
			account = AccountTaxAdvantaged
			score = advantaged
			reasons = advantagedReasons
		}

		if score > 100 {
			score = 100
		}

		placements = append(placements, Placement{
			Strategy: p.Name,
			Account:  account,
			Score:    score,
			Reasons:  reasons,
		})
	}
	return placements
}

func containsAccount(list []AccountType, a AccountType) bool {
	for _, x := range list {
		if x == a {
			return true
		}
	}
	return false
}
