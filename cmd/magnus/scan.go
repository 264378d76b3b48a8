package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/adamdoherty-arc/magnus/internal/logger"
	"github.com/adamdoherty-arc/magnus/internal/strategy/coveredcall"
	"github.com/spf13/cobra"
)

var (
	scanHoldingsFile string
	scanMaxResults   int
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan stock holdings for covered call candidates",
	Long: `Scan reads a JSON file of holdings and ranks synthetic covered call
candidates across a ladder of out-of-the-money strikes.

The holdings file is a JSON array:
  [{"Stock": {"symbol": "AAPL", "current_price": 180,
              "implied_volatility": 0.3, "meets_criteria": true},
    "Shares": 200}]`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVar(&scanHoldingsFile, "holdings", "", "Path to holdings JSON file (required)")
	scanCmd.Flags().IntVar(&scanMaxResults, "max-results", 0, "Cap on candidates returned (0 = config default)")

	scanCmd.MarkFlagRequired("holdings")

	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	log := logger.Must(debug)
	defer log.Sync()

	a, err := newApp(log)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(scanHoldingsFile)
	if err != nil {
		return fmt.Errorf("reading holdings file: %w", err)
	}

	var holdings []coveredcall.Holding
	if err := json.Unmarshal(data, &holdings); err != nil {
		return fmt.Errorf("parsing holdings file: %w", err)
	}

	cfg := a.Config()
	scanCfg := coveredcall.ScanConfig{
		Rungs:    cfg.Scan.Rungs,
		BandLow:  cfg.Scan.BandLow,
		BandHigh: cfg.Scan.BandHigh,
		DTE:      cfg.Scan.DTE,
	}
	maxResults := scanMaxResults
	if maxResults < 1 {
		maxResults = cfg.Scan.MaxResults
	}

	scanner := coveredcall.New()
	results := scanner.ScanHoldings(holdings, scanCfg, maxResults, time.Now().UTC())
	if a.Metrics != nil {
		a.Metrics.RecordScan(len(results))
	}

	if len(results) == 0 {
		fmt.Println("No covered call candidates found")
		return nil
	}

	fmt.Printf("=== Covered Call Candidates (%d) ===\n\n", len(results))
	for i, r := range results {
		fmt.Printf("%2d. %-6s strike $%.2f  premium $%.2f  %d DTE  score %.0f  %s\n",
			i+1, r.Symbol, r.Strike, r.Premium, r.DaysToExpiration, r.QualityScore, r.Recommendation)
	}
	return nil
}
