package narrative

import (
	"context"
	"fmt"
	"strings"

	"fjacquet/cash-advisor/internal/models"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiNarrator generates the narrative with the Google Gemini API.
// Construct it explicitly when an API key is configured; there is no
// ambient detection and no silent fallback — callers that want a fallback
// use a PlainNarrator themselves when construction or narration fails.
type GeminiNarrator struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiNarrator creates a Gemini-backed narrator using the given API
// key and model name.
func NewGeminiNarrator(ctx context.Context, apiKey, modelName string) (*GeminiNarrator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini narrator requires an API key")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiNarrator{
		client: client,
		model:  client.GenerativeModel(modelName),
	}, nil
}

// Close releases the underlying API client.
func (n *GeminiNarrator) Close() error {
	return n.client.Close()
}

// Narrate asks the model for a concise narrative over the report figures.
// The prompt forbids inventing numbers; all figures are supplied verbatim.
func (n *GeminiNarrator) Narrate(ctx context.Context, report models.Report) (string, error) {
	prompt := buildPrompt(report)

	resp, err := n.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from Gemini API")
	}

	narrative := strings.TrimSpace(fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]))
	log.WithField("length", len(narrative)).Debug("Received narrative from Gemini")
	return narrative, nil
}

func buildPrompt(report models.Report) string {
	var b strings.Builder
	b.WriteString("You are a financial analyst assistant. Based on the following summary, ")
	b.WriteString("write a concise narrative explaining the user's cash flow, spending patterns, ")
	b.WriteString("and any notable insights. Do not make up numbers; reference only the provided figures.\n")

	fmt.Fprintf(&b, "total_income: %s\n", report.Summary.TotalIncome)
	fmt.Fprintf(&b, "total_expense: %s\n", report.Summary.TotalExpense)
	fmt.Fprintf(&b, "net_cash_flow: %s\n", report.Summary.NetCashFlow)
	for _, ct := range report.Summary.CategoryTotals {
		fmt.Fprintf(&b, "category %s: %s\n", ct.Category, ct.Total)
	}
	for _, rc := range report.Recurring {
		fmt.Fprintf(&b, "recurring charge %s: %s\n", rc.Merchant, rc.AverageAmount)
	}
	if report.Payoff != nil {
		fmt.Fprintf(&b, "payoff method: %s, months: %d, done: %t\n",
			report.Payoff.Method, report.Payoff.Months, report.Payoff.Done)
	}

	return b.String()
}
