// Package main provides the entry point for the cash-advisor CLI application.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"fjacquet/cash-advisor/internal/analytics"
	"fjacquet/cash-advisor/internal/budget"
	"fjacquet/cash-advisor/internal/config"
	"fjacquet/cash-advisor/internal/currencyutils"
	"fjacquet/cash-advisor/internal/ingest"
	"fjacquet/cash-advisor/internal/models"
	"fjacquet/cash-advisor/internal/moneyutils"
	"fjacquet/cash-advisor/internal/narrative"
	"fjacquet/cash-advisor/internal/normalizer"
	"fjacquet/cash-advisor/internal/parsererror"
	"fjacquet/cash-advisor/internal/payoff"
	"fjacquet/cash-advisor/internal/recurring"
	"fjacquet/cash-advisor/internal/report"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	log = logrus.New()
	cfg *config.Config

	inputFile  string
	outputFile string
	mapFile    string
	debtsFile  string
	rulesFile  string
	extraFlag  string
	methodFlag string
	formatFlag string
)

var rootCmd = &cobra.Command{
	Use:   "cash-advisor",
	Short: "A CLI tool to normalize transaction exports and derive financial plans.",
	Long: `cash-advisor ingests personal financial transaction exports, normalizes
them into a canonical schema, and derives spending summaries, recurring
charge detection, budget proposals and deterministic debt payoff plans.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Welcome to cash-advisor!")
		fmt.Println("Use --help to see available commands")
	},
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.LoadEnv()

		var err error
		cfg, err = config.InitializeConfig()
		if err != nil {
			log.Fatalf("Failed to initialize configuration: %v", err)
		}
		log = config.ConfigureLoggingFromConfig(cfg)

		// Push the configured logger down to every package
		moneyutils.SetLogger(log)
		currencyutils.SetLogger(log)
		normalizer.SetLogger(log)
		analytics.SetLogger(log)
		recurring.SetLogger(log)
		payoff.SetLogger(log)
		budget.SetLogger(log)
		narrative.SetLogger(log)
		report.SetLogger(log)
		ingest.SetLogger(log)

		ingest.SetDelimiter([]rune(cfg.CSV.Delimiter)[0])
	},
}

var normalizeCmd = &cobra.Command{
	Use:   "normalize",
	Short: "Normalize a raw transaction CSV into the canonical format",
	Long: `Normalize reads a raw transaction CSV export, maps heterogeneous field
names and date formats into the canonical transaction schema, and writes the
result as CSV.`,
	Run: normalizeFunc,
}

var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Compute income, expense and category totals",
	Run:   summarizeFunc,
}

var recurringCmd = &cobra.Command{
	Use:   "recurring",
	Short: "Detect recurring monthly charges",
	Run:   recurringFunc,
}

var payoffCmd = &cobra.Command{
	Use:   "payoff",
	Short: "Simulate a multi-account debt payoff plan",
	Long: `Payoff runs a deterministic month-by-month amortization simulation over
a set of debt accounts using the avalanche (highest APR first) or snowball
(lowest balance first) strategy.`,
	Run: payoffFunc,
}

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Propose a rule-based budget allocation",
	Run:   budgetFunc,
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a full financial report",
	Long: `Report combines the summary, recurring charges, budget proposal and an
optional payoff plan into a single report with a narrative, rendered as JSON
or plain text.`,
	Run: reportFunc,
}

func normalizeFunc(cmd *cobra.Command, args []string) {
	transactions := loadTransactions()

	if err := ingest.WriteTransactionsCSV(transactions, outputFile); err != nil {
		log.Fatalf("Error writing canonical CSV: %v", err)
	}
	log.WithField("file", outputFile).Info("Normalization completed successfully")
}

func summarizeFunc(cmd *cobra.Command, args []string) {
	transactions := loadTransactions()
	emitJSON(analytics.Summarize(transactions))
}

func recurringFunc(cmd *cobra.Command, args []string) {
	transactions := loadTransactions()

	charges := recurring.Detect(transactions)
	if charges == nil {
		charges = []models.RecurringCharge{}
	}
	emitJSON(charges)
}

func payoffFunc(cmd *cobra.Command, args []string) {
	result := runPayoff()
	emitJSON(result)
}

func budgetFunc(cmd *cobra.Command, args []string) {
	transactions := loadTransactions()
	summary := analytics.Summarize(transactions)
	emitJSON(proposeBudget(summary))
}

func reportFunc(cmd *cobra.Command, args []string) {
	transactions := loadTransactions()
	summary := analytics.Summarize(transactions)

	var payoffResult *models.PayoffResult
	if debtsFile != "" {
		result := runPayoff()
		payoffResult = &result
	}

	ctx := context.Background()
	builder := report.NewBuilder(buildNarrator(ctx))
	rep := builder.Build(ctx, summary, recurring.Detect(transactions), proposeBudget(summary), payoffResult)

	out, err := report.NewGenerator().Generate(rep, formatFlag)
	if err != nil {
		log.Fatalf("Error generating report: %v", err)
	}
	emitBytes(out)
}

// loadTransactions reads the raw input CSV and normalizes it, applying the
// column map from the flag or config when present.
func loadTransactions() []models.Transaction {
	columnMap := map[string]string{}
	mapPath := mapFile
	if mapPath == "" {
		mapPath = cfg.CSV.ColumnMap
	}
	if mapPath != "" {
		var err error
		columnMap, err = ingest.LoadColumnMap(mapPath)
		if err != nil {
			log.Fatalf("Error loading column map: %v", err)
		}
	}

	raws, err := ingest.ReadRawCSVFile(inputFile, columnMap)
	if err != nil {
		log.Fatalf("Error reading input CSV: %v", err)
	}

	transactions, err := normalizer.NormalizeAll(raws)
	if err != nil {
		log.Fatalf("Error normalizing transactions: %v", err)
	}
	return transactions
}

// runPayoff loads the debts file and runs the simulation with the flag (or
// config default) method and extra payment.
func runPayoff() models.PayoffResult {
	method := methodFlag
	if method == "" {
		method = cfg.Payoff.DefaultMethod
	}
	if !payoff.IsValidMethod(method) {
		log.Fatal(&parsererror.UnknownMethodError{Method: method})
	}

	extraStr := extraFlag
	if extraStr == "" {
		extraStr = cfg.Payoff.DefaultExtra
	}
	extra, err := moneyutils.ToDecimalField("extra_payment", extraStr)
	if err != nil {
		log.Fatalf("Error parsing extra payment: %v", err)
	}

	debts, err := ingest.ReadDebtsCSV(debtsFile)
	if err != nil {
		log.Fatalf("Error reading debts CSV: %v", err)
	}

	return payoff.Plan(debts, extra, method)
}

// proposeBudget derives the allocation from the summary's income and
// category totals, using custom YAML rules when configured.
func proposeBudget(summary models.Summary) []models.Allocation {
	rulesPath := rulesFile
	if rulesPath == "" {
		rulesPath = cfg.Budget.RulesFile
	}

	rules := []budget.Rule{}
	if rulesPath != "" {
		var err error
		rules, err = budget.LoadRules(rulesPath)
		if err != nil {
			log.Fatalf("Error loading budget rules: %v", err)
		}
	}

	income, err := moneyutils.ToDecimalField("total_income", summary.TotalIncome)
	if err != nil {
		log.Fatalf("Error parsing total income: %v", err)
	}

	return budget.Propose(income, summary.CategoryTotals, rules)
}

// buildNarrator returns the Gemini narrator when enabled in config, the
// deterministic plain narrator otherwise.
func buildNarrator(ctx context.Context) narrative.Narrator {
	if !cfg.Narrative.Enabled {
		return narrative.NewPlainNarrator()
	}

	narrator, err := narrative.NewGeminiNarrator(ctx, cfg.Narrative.APIKey, cfg.Narrative.Model)
	if err != nil {
		log.Warnf("Falling back to plain narrative: %v", err)
		return narrative.NewPlainNarrator()
	}
	return narrator
}

func emitJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("Error marshaling output: %v", err)
	}
	emitBytes(out)
}

func emitBytes(out []byte) {
	if outputFile == "" {
		fmt.Println(string(out))
		return
	}
	if err := os.WriteFile(outputFile, out, 0600); err != nil {
		log.Fatalf("Error writing output file: %v", err)
	}
	log.WithField("file", outputFile).Info("Output written")
}

func init() {
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	rootCmd.AddCommand(normalizeCmd)
	rootCmd.AddCommand(summarizeCmd)
	rootCmd.AddCommand(recurringCmd)
	rootCmd.AddCommand(payoffCmd)
	rootCmd.AddCommand(budgetCmd)
	rootCmd.AddCommand(reportCmd)

	for _, c := range []*cobra.Command{normalizeCmd, summarizeCmd, recurringCmd, budgetCmd, reportCmd} {
		c.Flags().StringVarP(&inputFile, "input", "i", "", "Input raw transaction CSV file (required)")
		c.Flags().StringVarP(&mapFile, "map", "m", "", "YAML column map for input headers")
		c.MarkFlagRequired("input")
	}

	normalizeCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output canonical CSV file (required)")
	normalizeCmd.MarkFlagRequired("output")

	summarizeCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default stdout)")
	recurringCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default stdout)")

	payoffCmd.Flags().StringVarP(&debtsFile, "debts", "d", "", "Debt accounts CSV file (required)")
	payoffCmd.Flags().StringVarP(&extraFlag, "extra", "e", "", "Extra monthly payment beyond minimums")
	payoffCmd.Flags().StringVarP(&methodFlag, "method", "s", "", "Payoff strategy: avalanche or snowball")
	payoffCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default stdout)")
	payoffCmd.MarkFlagRequired("debts")

	budgetCmd.Flags().StringVarP(&rulesFile, "rules", "r", "", "YAML budget rules file")
	budgetCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default stdout)")

	reportCmd.Flags().StringVarP(&debtsFile, "debts", "d", "", "Debt accounts CSV file")
	reportCmd.Flags().StringVarP(&extraFlag, "extra", "e", "", "Extra monthly payment beyond minimums")
	reportCmd.Flags().StringVarP(&methodFlag, "method", "s", "", "Payoff strategy: avalanche or snowball")
	reportCmd.Flags().StringVarP(&rulesFile, "rules", "r", "", "YAML budget rules file")
	reportCmd.Flags().StringVarP(&formatFlag, "format", "f", "json", "Report format: json or text")
	reportCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default stdout)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
