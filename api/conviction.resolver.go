package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
)

func (m ApiHandler) convictions(ctx *gin.Context) {
	asOfDate := time.Now().UTC()
	if dateStr := ctx.Query("date"); dateStr != "" {
		parsed, err := time.Parse(time.DateOnly, dateStr)
		if err != nil {
			returnErrorJsonCode(fmt.Errorf("invalid date %q: %w", dateStr, err), ctx, 400)
			return
		}
		asOfDate = parsed
	}

	rows, err := m.ConvictionService.GetConvictionRows(ctx, asOfDate)
	if err != nil {
		returnErrorJson(fmt.Errorf("failed to compute convictions: %w", err), ctx)
		return
	}

	ctx.JSON(200, rows)
}
