package api

import (
	"fmt"
	"time"

	"convictiontrader/internal/domain"

	"github.com/gin-gonic/gin"
)

type tradePlanRequest struct {
	Explain bool `json:"explain"`
}

type tradePlanResponse struct {
	ConvictionRows []domain.ConvictionRow    `json:"convictionRows"`
	Allocation     []domain.AllocationRow    `json:"allocation"`
	Targets        []domain.AllocationTarget `json:"targets"`
	Plan           domain.TradePlan          `json:"plan"`
	Explanation    *string                   `json:"explanation,omitempty"`
}

func (m ApiHandler) tradePlan(ctx *gin.Context) {
	var requestBody tradePlanRequest
	if err := ctx.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to read request body: %w", err), ctx, 400)
		return
	}

	result, err := m.PlanningService.GeneratePlan(ctx, time.Now().UTC())
	if err != nil {
		returnErrorJson(fmt.Errorf("failed to generate trade plan: %w", err), ctx)
		return
	}

	out := tradePlanResponse{
		ConvictionRows: result.ConvictionRows,
		Allocation:     result.Allocation,
		Targets:        result.Targets,
		Plan:           result.Plan,
	}

	if requestBody.Explain && m.GptRepository != nil {
		explanation, err := m.GptRepository.ExplainTradePlan(ctx, result.Plan)
		if err != nil {
			fmt.Println(fmt.Errorf("failed to explain trade plan: %w", err))
		} else {
			out.Explanation = &explanation
		}
	}

	ctx.JSON(200, out)
}
