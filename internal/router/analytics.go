package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spoilme-vintage/store-api/pkg/ai"
	"github.com/spoilme-vintage/store-api/pkg/global"
	"github.com/spoilme-vintage/store-api/pkg/mongo"
)

func GetLoyaltySegmentsReport(c *gin.Context) {
	segments, err := mongo.GetLoyaltySegments(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to fetch loyalty segments", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(segments))
}

func GetVaultUsageReport(c *gin.Context) {
	usage, err := mongo.GetVaultUsageByMonth(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to fetch vault usage", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(usage))
}

func GetTierBreakdownReport(c *gin.Context) {
	breakdown, err := mongo.GetMembershipTierBreakdown(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to fetch tier breakdown", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(breakdown))
}

func GenerateAILoyaltyReport(c *gin.Context) {
	report, err := ai.GenerateLoyaltyReport(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to generate loyalty report", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(report))
}

func GenerateAIVaultReport(c *gin.Context) {
	report, err := ai.GenerateVaultReport(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to generate vault report", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(report))
}

func GenerateAIMembershipReport(c *gin.Context) {
	report, err := ai.GenerateMembershipReport(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to generate membership report", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(report))
}
