package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spoilme-vintage/store-api/pkg/mongo"
)

// AIReportResponse represents the structure of AI-generated reports
type AIReportResponse struct {
	Status      string     `json:"status"`
	Data        ReportData `json:"data"`
	GeneratedAt time.Time  `json:"generated_at"`
	AIEnabled   bool       `json:"ai_enabled"`
}

type ReportData struct {
	RawData    interface{} `json:"raw_data"`
	AIInsights string      `json:"ai_insights,omitempty"`
	Summary    string      `json:"summary"`
	Error      string      `json:"error,omitempty"`
}

// GenerateLoyaltyReport generates AI-powered insights from loyalty balance segments
func GenerateLoyaltyReport(ctx context.Context) (*AIReportResponse, error) {
	segments, err := mongo.GetLoyaltySegments(ctx)
	if err != nil {
		return &AIReportResponse{
			Status:      "error",
			Data:        ReportData{Error: "Failed to fetch loyalty data: " + err.Error()},
			GeneratedAt: time.Now(),
			AIEnabled:   IsEnabled(),
		}, err
	}

	response := &AIReportResponse{
		Status:      "success",
		GeneratedAt: time.Now(),
		AIEnabled:   IsEnabled(),
		Data: ReportData{
			RawData: segments,
			Summary: "Loyalty segment data retrieved successfully",
		},
	}

	if IsEnabled() {
		userPrompt := formatLoyaltyDataPrompt(segments)
		aiInsights, err := generateCompletion(ctx, LoyaltyReportSystemPrompt, userPrompt)
		if err != nil {
			response.Data.Error = "AI analysis failed: " + err.Error()
		} else {
			response.Data.AIInsights = aiInsights
			response.Data.Summary = "AI-generated loyalty insights and recommendations"
		}
	} else {
		response.Data.Summary = "Raw loyalty data (AI insights unavailable)"
	}

	return response, nil
}

// GenerateVaultReport generates AI-powered vault usage analysis
func GenerateVaultReport(ctx context.Context) (*AIReportResponse, error) {
	usage, err := mongo.GetVaultUsageByMonth(ctx)
	if err != nil {
		return &AIReportResponse{
			Status:      "error",
			Data:        ReportData{Error: "Failed to fetch vault usage data: " + err.Error()},
			GeneratedAt: time.Now(),
			AIEnabled:   IsEnabled(),
		}, err
	}

	response := &AIReportResponse{
		Status:      "success",
		GeneratedAt: time.Now(),
		AIEnabled:   IsEnabled(),
		Data: ReportData{
			RawData: usage,
			Summary: "Vault usage data retrieved successfully",
		},
	}

	if IsEnabled() {
		userPrompt := formatVaultDataPrompt(usage)
		aiInsights, err := generateCompletion(ctx, VaultReportSystemPrompt, userPrompt)
		if err != nil {
			response.Data.Error = "AI analysis failed: " + err.Error()
		} else {
			response.Data.AIInsights = aiInsights
			response.Data.Summary = "AI-generated vault insights and recommendations"
		}
	} else {
		response.Data.Summary = "Raw vault usage data (AI insights unavailable)"
	}

	return response, nil
}

// GenerateMembershipReport generates AI-powered membership tier analysis
func GenerateMembershipReport(ctx context.Context) (*AIReportResponse, error) {
	breakdown, err := mongo.GetMembershipTierBreakdown(ctx)
	if err != nil {
		return &AIReportResponse{
			Status:      "error",
			Data:        ReportData{Error: "Failed to fetch membership data: " + err.Error()},
			GeneratedAt: time.Now(),
			AIEnabled:   IsEnabled(),
		}, err
	}

	response := &AIReportResponse{
		Status:      "success",
		GeneratedAt: time.Now(),
		AIEnabled:   IsEnabled(),
		Data: ReportData{
			RawData: breakdown,
			Summary: "Membership tier data retrieved successfully",
		},
	}

	if IsEnabled() {
		userPrompt := formatMembershipDataPrompt(breakdown)
		aiInsights, err := generateCompletion(ctx, MembershipReportSystemPrompt, userPrompt)
		if err != nil {
			response.Data.Error = "AI analysis failed: " + err.Error()
		} else {
			response.Data.AIInsights = aiInsights
			response.Data.Summary = "AI-generated membership insights and recommendations"
		}
	} else {
		response.Data.Summary = "Raw membership data (AI insights unavailable)"
	}

	return response, nil
}

// Helper functions to format data for AI prompts

func formatLoyaltyDataPrompt(segments *mongo.LoyaltySegmentsResult) string {
	jsonData, _ := json.MarshalIndent(segments, "", "  ")
	return fmt.Sprintf(`Analyze the following loyalty balance segments and provide insights:

%s

Please provide:
1. Outstanding points liability and what it means for margins
2. Segments worth nudging toward a first redemption
3. Earn-rate versus burn-rate observations
4. Retention recommendations per segment`, string(jsonData))
}

func formatVaultDataPrompt(usage []mongo.VaultMonthUsage) string {
	jsonData, _ := json.MarshalIndent(usage, "", "  ")
	return fmt.Sprintf(`Analyze the following per-month vault usage data and provide insights:

%s

Please provide:
1. How close buyers run to their monthly caps
2. Months with unusual buying pressure and likely causes
3. Whether the cap ladder appears to drive upgrades
4. Vault catalog sizing recommendations`, string(jsonData))
}

func formatMembershipDataPrompt(breakdown []mongo.TierBreakdown) string {
	jsonData, _ := json.MarshalIndent(breakdown, "", "  ")
	return fmt.Sprintf(`Analyze the following membership tier breakdown and provide insights:

%s

Please provide:
1. Tier distribution observations and upgrade opportunities
2. Tenure patterns per tier
3. Loyalty engagement differences across tiers
4. Perk and pricing recommendations per tier`, string(jsonData))
}
