package main

import (
	"context"
	"fmt"
	"time"

	"github.com/adamdoherty-arc/magnus/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	taxYear        int
	taxOtherIncome float64
	taxArchive     bool
)

var taxCmd = &cobra.Command{
	Use:   "tax",
	Short: "Generate a tax report for the position ledger",
	Long: `Generate a tax report over the configured position ledger: premium
income, capital gains from assignments, wash sale flags, and
year-end recommendations.`,
	RunE: runTax,
}

func init() {
	taxCmd.Flags().IntVar(&taxYear, "year", 0, "Tax year (default: current year)")
	taxCmd.Flags().Float64Var(&taxOtherIncome, "other-income", 0, "Ordinary income outside the options book")
	taxCmd.Flags().BoolVar(&taxArchive, "archive", false, "Write the report to the archive backend")

	rootCmd.AddCommand(taxCmd)
}

func runTax(cmd *cobra.Command, args []string) error {
	log := logger.Must(debug)
	defer log.Sync()

	a, err := newApp(log)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	year := taxYear
	if year == 0 {
		year = now.Year()
	}

	report := a.Tax.GenerateReport(a.Portfolio.Positions(), taxOtherIncome, year, now, nil)
	if a.Metrics != nil {
		a.Metrics.RecordTaxReport(len(report.WashSales))
	}

	fmt.Printf("=== Tax Report %d (%s) ===\n\n", report.Year, report.FilingStatus)
	fmt.Printf("Premium income:       $%.2f\n", report.PremiumIncome)
	fmt.Printf("Long-term gains:      $%.2f\n", report.LongTermCapitalGains)
	fmt.Printf("Deferred basis adj.:  $%.2f\n", report.DeferredBasisReduction)
	fmt.Println()
	fmt.Printf("Ordinary tax:         $%.2f\n", report.OrdinaryTax)
	fmt.Printf("Capital gains tax:    $%.2f\n", report.CapitalGainsTax)
	fmt.Printf("State tax:            $%.2f\n", report.StateTax)
	fmt.Printf("Total tax:            $%.2f\n", report.TotalTax)
	fmt.Printf("Effective rate:       %.1f%%\n", report.EffectiveRate*100)

	if len(report.ByStrategy) > 0 {
		fmt.Println("\nBy strategy:")
		for st, b := range report.ByStrategy {
			fmt.Printf("  %-18s %d positions, premium $%.2f, P&L $%.2f, %d assigned\n",
				st, b.Positions, b.TotalPremium, b.TotalPL, b.Assignments)
		}
	}

	if len(report.WashSales) > 0 {
		fmt.Println("\nWash sales:")
		for _, ws := range report.WashSales {
			fmt.Printf("  %s: $%.2f disallowed (%s repurchased %d days after loss)\n",
				ws.Symbol, ws.DisallowedLoss, ws.RepurchaseID, ws.DaysBetween)
		}
	}

	if len(report.Recommendations) > 0 {
		fmt.Println("\nRecommendations:")
		for _, rec := range report.Recommendations {
			fmt.Printf("  - %s\n", rec)
		}
	}

	if taxArchive {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		path, err := a.Archiver.SaveTaxReport(ctx, report)
		if err != nil {
			return err
		}
		log.Info("report archived", zap.String("path", path))
		fmt.Printf("\nArchived to %s\n", path)
	}

	return nil
}
