// Package tax computes realized tax on wheel positions: bracket-based
// ordinary income tax, capital-gains tax, wash-sale detection, and
// account-placement heuristics.
package tax

import (
	"math"

	"github.com/adamdoherty-arc/magnus/internal/core"
)

// Bracket is one marginal rate band. Max is +Inf for the top band.
type Bracket struct {
	Min  float64
	Max  float64
	Rate float64
}

// bracketTable holds the two progressive tables for one filing status.
type bracketTable struct {
	ordinary     []Bracket
	capitalGains []Bracket
}

var inf = math.Inf(1)

// Federal brackets by tax year and filing status. Unknown filing
// statuses fall back to single; unknown years fall back to the latest
// table present.
var bracketsByYear = map[int]map[core.FilingStatus]bracketTable{
	2024: {
		core.FilingSingle: {
			ordinary: []Bracket{
				{0, 11600, 0.10}, {11600, 47150, 0.12}, {47150, 100525, 0.22},
				{100525, 191950, 0.24}, {191950, 243725, 0.32}, {243725, 609350, 0.35},
				{609350, inf, 0.37},
			},
			capitalGains: []Bracket{
				{0, 47025, 0.0}, {47025, 518900, 0.15}, {518900, inf, 0.20},
			},
		},
		core.FilingMarriedJoint: {
			ordinary: []Bracket{
				{0, 23200, 0.10}, {23200, 94300, 0.12}, {94300, 201050, 0.22},
				{201050, 383900, 0.24}, {383900, 487450, 0.32}, {487450, 731200, 0.35},
				{731200, inf, 0.37},
			},
			capitalGains: []Bracket{
				{0, 94050, 0.0}, {94050, 583750, 0.15}, {583750, inf, 0.20},
			},
		},
		core.FilingMarriedSeparate: {
			ordinary: []Bracket{
				{0, 11600, 0.10}, {11600, 47150, 0.12}, {47150, 100525, 0.22},
				{100525, 191950, 0.24}, {191950, 243725, 0.32}, {243725, 365600, 0.35},
				{365600, inf, 0.37},
			},
			capitalGains: []Bracket{
				{0, 47025, 0.0}, {47025, 291850, 0.15}, {291850, inf, 0.20},
			},
		},
		core.FilingHeadOfHousehold: {
			ordinary: []Bracket{
				{0, 16550, 0.10}, {16550, 63100, 0.12}, {63100, 100500, 0.22},
				{100500, 191950, 0.24}, {191950, 243700, 0.32}, {243700, 609350, 0.35},
				{609350, inf, 0.37},
			},
			capitalGains: []Bracket{
				{0, 63000, 0.0}, {63000, 551350, 0.15}, {551350, inf, 0.20},
			},
		},
	},
	2025: {
		core.FilingSingle: {
			ordinary: []Bracket{
				{0, 11925, 0.10}, {11925, 48475, 0.12}, {48475, 103350, 0.22},
				{103350, 197300, 0.24}, {197300, 250525, 0.32}, {250525, 626350, 0.35},
				{626350, inf, 0.37},
			},
			capitalGains: []Bracket{
				{0, 48350, 0.0}, {48350, 533400, 0.15}, {533400, inf, 0.20},
			},
		},
		core.FilingMarriedJoint: {
			ordinary: []Bracket{
				{0, 23850, 0.10}, {23850, 96950, 0.12}, {96950, 206700, 0.22},
				{206700, 394600, 0.24}, {394600, 501050, 0.32}, {501050, 751600, 0.35},
				{751600, inf, 0.37},
			},
			capitalGains: []Bracket{
				{0, 96700, 0.0}, {96700, 600050, 0.15}, {600050, inf, 0.20},
			},
		},
		core.FilingMarriedSeparate: {
			ordinary: []Bracket{
				{0, 11925, 0.10}, {11925, 48475, 0.12}, {48475, 103350, 0.22},
				{103350, 197300, 0.24}, {197300, 250525, 0.32}, {250525, 375800, 0.35},
				{375800, inf, 0.37},
			},
			capitalGains: []Bracket{
				{0, 48350, 0.0}, {48350, 300000, 0.15}, {300000, inf, 0.20},
			},
		},
		core.FilingHeadOfHousehold: {
			ordinary: []Bracket{
				{0, 17000, 0.10}, {17000, 64850, 0.12}, {64850, 103350, 0.22},
				{103350, 197300, 0.24}, {197300, 250500, 0.32}, {250500, 626350, 0.35},
				{626350, inf, 0.37},
			},
			capitalGains: []Bracket{
				{0, 64750, 0.0}, {64750, 566700, 0.15}, {566700, inf, 0.20},
			},
		},
	},
}

// latestYear is the newest bracket table we ship.
const latestYear = 2025

// lookupBrackets resolves the table for a year and filing status with
// the documented fallbacks.
func lookupBrackets(year int, status core.FilingStatus) bracketTable {
	byStatus, ok := bracketsByYear[year]
	if !ok {
		byStatus = bracketsByYear[latestYear]
	}
	table, ok := byStatus[status]
	if !ok {
		table = byStatus[core.FilingSingle]
	}
	return table
}
