package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

type rebalanceRequest struct {
	DryRun bool `json:"dryRun"`
}

func (m ApiHandler) rebalance(ctx *gin.Context) {
	var requestBody rebalanceRequest
	if err := ctx.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to read request body: %w", err), ctx, 400)
		return
	}

	result, err := m.RebalancerHandler.Rebalance(ctx, requestBody.DryRun)
	if err != nil {
		// partial results matter here: some orders may already be live
		if result != nil {
			ctx.AbortWithStatusJSON(500, gin.H{
				"error":  err.Error(),
				"orders": result.Orders,
			})
			return
		}
		returnErrorJson(fmt.Errorf("failed to rebalance: %w", err), ctx)
		return
	}

	ctx.JSON(200, result)
}
