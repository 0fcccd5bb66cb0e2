// Package plans holds the subscription plan limit table. Limits are
// compile-time constants, not rows, so enforcement never needs a query.
package plans

type PlanType string

const (
	PlanFree    PlanType = "free"
	PlanBasic   PlanType = "basic"
	PlanPremium PlanType = "premium"
)

// PlanLimits describes what a plan allows. Nil pointer fields mean unlimited.
type PlanLimits struct {
	MaxGroups          *int    `json:"max_groups"`
	MaxMembersPerGroup *int    `json:"max_members_per_group"`
	MaxUploadSizeMB    int     `json:"max_upload_size_mb"`
	HistoryDays        *int    `json:"history_days"`
	HasAds             bool    `json:"has_ads"`
	HasAITests         bool    `json:"has_ai_tests"`
	HasPremiumBadge    bool    `json:"has_premium_badge"`
	HasCustomThemes    bool    `json:"has_custom_themes"`
	HasAdvancedStats   bool    `json:"has_advanced_stats"`
	HasPrioritySupport bool    `json:"has_priority_support"`
	CanUploadFiles     bool    `json:"can_upload_files"`
	MonthlyPrice       float64 `json:"monthly_price"`
	YearlyPrice        float64 `json:"yearly_price"`
	DisplayName        string  `json:"display_name"`
}

func intPtr(v int) *int { return &v }

var planLimits = map[PlanType]PlanLimits{
	PlanFree: {
		MaxGroups:          intPtr(1),
		MaxMembersPerGroup: intPtr(5),
		MaxUploadSizeMB:    5,
		HistoryDays:        intPtr(30),
		HasAds:             true,
		DisplayName:        "Free",
	},
	PlanBasic: {
		MaxGroups:          intPtr(5),
		MaxMembersPerGroup: intPtr(20),
		MaxUploadSizeMB:    100,
		HasAdvancedStats:   true,
		CanUploadFiles:     true,
		MonthlyPrice:       4.99,
		YearlyPrice:        49.99,
		DisplayName:        "Basic",
	},
	PlanPremium: {
		MaxUploadSizeMB:    1024,
		HasAITests:         true,
		HasPremiumBadge:    true,
		HasCustomThemes:    true,
		HasAdvancedStats:   true,
		HasPrioritySupport: true,
		CanUploadFiles:     true,
		MonthlyPrice:       9.99,
		YearlyPrice:        99.99,
		DisplayName:        "Premium",
	},
}

// GetPlanLimits returns the limits for plan, falling back to free for
// unknown values so a bad profiles.plan row never unlocks anything.
func GetPlanLimits(plan string) PlanLimits {
	if limits, ok := planLimits[PlanType(plan)]; ok {
		return limits
	}
	return planLimits[PlanFree]
}

// All returns every plan keyed by type, for the public plan listing.
func All() map[PlanType]PlanLimits {
	out := make(map[PlanType]PlanLimits, len(planLimits))
	for k, v := range planLimits {
		out[k] = v
	}
	return out
}
