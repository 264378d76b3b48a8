package main

import (
	"fmt"
	"time"

	"github.com/adamdoherty-arc/magnus/internal/core"
	"github.com/adamdoherty-arc/magnus/internal/logger"
	"github.com/adamdoherty-arc/magnus/internal/strategy"
	"github.com/spf13/cobra"
)

var (
	analyzeSymbol   string
	analyzePrice    float64
	analyzeIV       float64
	analyzeBeta     float64
	analyzeDivYield float64
	analyzeStrike   float64
	analyzePremium  float64
	analyzeDTE      int
	analyzeQty      int
	analyzeScreened bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [strategy]",
	Short: "Score a single contract",
	Long: `Score one candidate contract for a strategy (cash-secured-put or
covered-call). For a cash-secured put, --quantity is the number of
contracts; for a covered call, it is the shares held.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeSymbol, "symbol", "", "Underlying symbol (required)")
	analyzeCmd.Flags().Float64Var(&analyzePrice, "price", 0, "Current stock price (required)")
	analyzeCmd.Flags().Float64Var(&analyzeIV, "iv", 0.30, "Implied volatility as a fraction")
	analyzeCmd.Flags().Float64Var(&analyzeBeta, "beta", 1.0, "Stock beta")
	analyzeCmd.Flags().Float64Var(&analyzeDivYield, "dividend-yield", 0, "Annual dividend yield as a fraction")
	analyzeCmd.Flags().Float64Var(&analyzeStrike, "strike", 0, "Option strike (required)")
	analyzeCmd.Flags().Float64Var(&analyzePremium, "premium", 0, "Option premium per share (required)")
	analyzeCmd.Flags().IntVar(&analyzeDTE, "dte", 35, "Days to expiration")
	analyzeCmd.Flags().IntVar(&analyzeQty, "quantity", 1, "Contracts (put) or shares held (call)")
	analyzeCmd.Flags().BoolVar(&analyzeScreened, "screened", true, "Stock passed your screening criteria")

	analyzeCmd.MarkFlagRequired("symbol")
	analyzeCmd.MarkFlagRequired("price")
	analyzeCmd.MarkFlagRequired("strike")
	analyzeCmd.MarkFlagRequired("premium")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	log := logger.Must(debug)
	defer log.Sync()

	st := core.StrategyType(args[0])
	if !st.IsValid() {
		return fmt.Errorf("unknown strategy %q (want %s or %s)",
			args[0], core.StrategyCashSecuredPut, core.StrategyCoveredCall)
	}

	a, err := newApp(log)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	analysis, err := a.Engine.Analyze(st, strategy.Request{
		Stock: core.Stock{
			Symbol:            analyzeSymbol,
			CurrentPrice:      analyzePrice,
			ImpliedVolatility: analyzeIV,
			Beta:              analyzeBeta,
			DividendYield:     analyzeDivYield,
			MeetsCriteria:     analyzeScreened,
			QuotedAt:          now,
		},
		Quantity:   analyzeQty,
		Strike:     analyzeStrike,
		Premium:    analyzePremium,
		Expiration: now.AddDate(0, 0, analyzeDTE),
		Now:        now,
	})
	if err != nil {
		return err
	}

	printAnalysis(analysis)
	return nil
}

func printAnalysis(a *strategy.Analysis) {
	fmt.Printf("=== %s %s ===\n", a.Symbol, a.Strategy)
	fmt.Printf("Strike:            $%.2f\n", a.Strike)
	fmt.Printf("Premium:           $%.2f\n", a.Premium)
	fmt.Printf("Expiration:        %s (%d DTE)\n", a.Expiration.Format("2006-01-02"), a.DaysToExpiration)
	fmt.Printf("Contracts:         %d\n", a.Contracts)
	fmt.Println()
	fmt.Printf("Period return:     %.2f%%\n", a.PeriodReturn)
	fmt.Printf("Annualized:        %.2f%%\n", a.AnnualizedReturn)
	fmt.Printf("Max profit:        $%.2f\n", a.MaxProfit)
	fmt.Printf("Max loss:          $%.2f\n", a.MaxLoss)
	fmt.Printf("Breakeven:         $%.2f\n", a.Breakeven)
	if a.Put != nil {
		fmt.Printf("Capital at risk:   $%.2f\n", a.Put.CapitalAtRisk)
		fmt.Printf("Downside buffer:   %.2f%%\n", a.Put.DownsideProtection)
	}
	if a.Call != nil {
		fmt.Printf("Upside cap:        %.2f%%\n", a.Call.UpsideCap)
		fmt.Printf("Downside buffer:   %.2f%%\n", a.Call.DownsideProtection)
		fmt.Printf("Est. dividends:    $%.2f\n", a.Call.EstimatedDividends)
		fmt.Printf("If-called return:  %.2f%% (%.2f%% annualized)\n",
			a.Call.IfCalledReturn, a.Call.IfCalledAnnualized)
	}
	fmt.Println()
	fmt.Printf("Quality score:     %.0f/100\n", a.QualityScore)
	fmt.Printf("Recommendation:    %s\n", a.Recommendation)
}
