package repository

import (
	"context"
	"fmt"
	"strings"

	"convictiontrader/internal/domain"

	"github.com/ayush6624/go-chatgpt"
)

type GptRepository interface {
	ExplainTradePlan(ctx context.Context, plan domain.TradePlan) (string, error)
}

type gptRepositoryHandler struct {
	GptClient *chatgpt.Client
}

func NewGptRepository(apiKey string) (GptRepository, error) {
	client, err := chatgpt.NewClient(apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to construct gpt client: %w", err)
	}

	return gptRepositoryHandler{
		GptClient: client,
	}, nil
}

const explainPrompt = `
You are summarizing a proposed set of stock purchases for a human reviewer. The orders below were generated automatically from institutional-holdings signals under position, sector and cash-buffer limits. Write a short plain-English summary (3-5 sentences) of what is being bought and roughly how the money is spread. Do not give investment advice or speculate about performance.

Orders:
%s
`

// ExplainTradePlan asks the model for a reviewer-facing summary of the
// plan. Callers treat failures as non-fatal - the plan stands on its
// own without the commentary.
func (h gptRepositoryHandler) ExplainTradePlan(ctx context.Context, plan domain.TradePlan) (string, error) {
	lines := []string{}
	for _, order := range plan.Orders {
		lines = append(lines, fmt.Sprintf(
			"%s %s x %s @ limit $%s (notional $%s)",
			order.Side, order.Symbol, order.Quantity.String(),
			order.LimitPrice.StringFixed(2), order.Notional.StringFixed(2),
		))
	}
	if len(lines) == 0 {
		return "No trades proposed.", nil
	}

	response, err := h.GptClient.SimpleSend(ctx, fmt.Sprintf(explainPrompt, strings.Join(lines, "\n")))
	if err != nil {
		return "", fmt.Errorf("failed to get plan explanation: %w", err)
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("gpt returned no choices")
	}

	return response.Choices[0].Message.Content, nil
}
