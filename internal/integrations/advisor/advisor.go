package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/budgetwise/budget-service/internal/config"
	"github.com/budgetwise/budget-service/internal/models"
	"github.com/budgetwise/budget-service/internal/report"
	"github.com/sirupsen/logrus"
)

// Client handles integration with an Ollama-compatible text generation API
type Client struct {
	url    string
	model  string
	client *http.Client
	log    *logrus.Logger
}

// NewClient initializes a new advisory client
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		url:   cfg.OllamaURL,
		model: cfg.OllamaModel,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log,
	}
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

const systemPrompt = `You are a concise financial advisor named BudgetWise AI. ` +
	`Analyze the user's data in the FINANCIAL CONTEXT and answer directly and accurately. ` +
	`If the user explicitly asks for a budget suggestion or allocation plan, output a single JSON object ` +
	`with keys budgetFood, budgetTransportation, budgetEntertainment, budgetShopping, budgetUtilities ` +
	`whose values sum exactly to the available amount, with Utilities absorbing any remainder. ` +
	`For all other questions respond with plain text only.`

// formatFinancialContext flattens the monthly view into a text block the
// model can reason over
func formatFinancialContext(view *models.MonthlyView, profile *models.Profile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Month: %d-%02d\n", view.Year, view.Month)
	fmt.Fprintf(&b, "Starting Balance: %s\n", view.StartingBalance.StringFixed(2))
	fmt.Fprintf(&b, "Total Credits: %s\n", view.TotalCredits.StringFixed(2))
	fmt.Fprintf(&b, "Total Expenses: %s\n", view.TotalExpenses.StringFixed(2))
	fmt.Fprintf(&b, "Remaining Balance: %s\n", view.RemainingBalance.StringFixed(2))
	if profile != nil {
		fmt.Fprintf(&b, "Declared Monthly Income: %s\n", profile.Income.StringFixed(2))
		fmt.Fprintf(&b, "Savings Goal: %s\n", profile.SavingsGoal.StringFixed(2))
	}
	for _, line := range report.Build("", view).Lines {
		fmt.Fprintf(&b, "%s: budget %s, actual spent %s\n", line.Category, line.Budget.StringFixed(2), line.Spent.StringFixed(2))
	}
	return b.String()
}

// GetFinancialAdvice sends the user's question plus their financial
// context to the model and returns the generated reply
func (c *Client) GetFinancialAdvice(ctx context.Context, userPrompt string, view *models.MonthlyView, profile *models.Profile) (string, error) {
	prompt := systemPrompt +
		"\n\n--- FINANCIAL CONTEXT START ---\n" +
		formatFinancialContext(view, profile) +
		"--- FINANCIAL CONTEXT END ---\n\n" +
		"User Question: " + userPrompt

	payload, err := json.Marshal(generateRequest{Model: c.model, Prompt: prompt, Stream: false})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.log.Debugf("Advisor API error response: %s", string(body))
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	c.log.Debugf("Advisor reply generated (%d characters)", len(out.Response))
	return out.Response, nil
}
