package repositories

import (
	"time"

	"leadflow/internal/models"
)

// DemoLeads returns the leads a fresh dashboard starts with.
func DemoLeads(now time.Time) []*models.Lead {
	notStarted := func() *models.GroupRiskStatus {
		s := models.GroupRiskNotStarted
		return &s
	}
	return []*models.Lead{
		{
			ID:              "L001",
			CompanyName:     "Apex Mining Solutions",
			CurrentClass:    "Class V",
			TargetClass:     "Class XIII",
			WageBill:        45000000,
			Status:          models.StatusNew,
			BrokerOwner:     models.Unallocated,
			GroupRiskStatus: notStarted(),
			CreatedAt:       now,
		},
		{
			ID:              "L002",
			CompanyName:     "Blue Sky Logistics",
			CurrentClass:    "Class VIII",
			TargetClass:     "Other",
			WageBill:        12500000,
			Status:          models.StatusSentToRMA,
			BrokerOwner:     models.Unallocated,
			GroupRiskStatus: notStarted(),
			CreatedAt:       now,
		},
		{
			ID:           "L003",
			CompanyName:  "ConstructCo Ltd",
			CurrentClass: "Class IV",
			TargetClass:  "Class XIII",
			WageBill:     85000000,
			Status:       models.StatusRMAVerified,
			BrokerOwner:  "Elton Whitten",
			RMAData: &models.RMAData{
				IsExistingClient: models.Yes,
				Products:         []string{models.ProductFuneralCover, models.ProductGroupRisk},
				ActiveTransfer:   false,
				ContactName:      "Sarah Jenkins",
				ContactPhone:     "082 555 1234",
				ContactEmail:     "sarah.j@constructco.sa",
			},
			GroupRiskStatus: notStarted(),
			CreatedAt:       now,
		},
	}
}

// DemoActivity returns the initial feed, oldest first.
func DemoActivity(now time.Time) []models.Activity {
	return []models.Activity{
		{ID: "a4", Type: models.ActivityUpload, Description: "Lead List Upload: Manufacturing Sector", CreatedAt: now.Add(-5 * time.Hour), Status: models.ActivityCompleted},
		{ID: "a3", Type: models.ActivityVerification, Description: "RMA Data Enrichment Batch #204", CreatedAt: now.Add(-3 * time.Hour), Status: models.ActivityPending},
		{ID: "a2", Type: models.ActivityAllocation, Description: "Allocated 50 leads to Sub-Broker A", CreatedAt: now.Add(-time.Hour), Status: models.ActivityCompleted},
		{ID: "a1", Type: models.ActivityCompliance, Description: "Generated CF-2A for Mining Corp", CreatedAt: now.Add(-10 * time.Minute), Status: models.ActivityCompleted},
	}
}

// Seed loads the demo leads and activity feed.
func Seed(leads *LeadRepository, activity *ActivityLog, now time.Time) error {
	demo := DemoLeads(now)
	if err := leads.CreateMany(demo); err != nil {
		return err
	}
	for _, a := range DemoActivity(now) {
		activity.Seed(a)
	}
	return nil
}
