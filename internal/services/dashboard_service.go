package services

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"leadflow/internal/authz"
	"leadflow/internal/models"
	"leadflow/internal/repositories"
)

// View is one list page of the dashboard.
type View string

const (
	ViewUpload     View = "upload"
	ViewAllocation View = "allocation"
	ViewEnrichment View = "enrichment"
	ViewApproval   View = "approval"
	ViewSubmission View = "submission"
)

// viewDefaults is the status each view lists when no filter is given.
var viewDefaults = map[View]models.LeadStatus{
	ViewUpload:     models.StatusNew,
	ViewAllocation: models.StatusRMAVerified,
	ViewEnrichment: models.StatusSentToRMA,
	ViewApproval:   models.StatusAwaitingRMAReview,
	ViewSubmission: models.StatusPendingCFSubmission,
}

// BoardColumns are the broker pipeline columns, left to right.
var BoardColumns = []models.LeadStatus{
	models.StatusAllocated,
	models.StatusPendingNOA,
	models.StatusPreparingDocs,
	models.StatusAwaitingRMAReview,
	models.StatusPendingClientSignature,
	models.StatusAwaitingSignedDocuments,
	models.StatusPendingCFSubmission,
	models.StatusCFSubmitted,
}

// allocatedStages count as "allocated" on the admin dashboard.
var allocatedStages = []models.LeadStatus{
	models.StatusAllocated,
	models.StatusPendingNOA,
	models.StatusPreparingDocs,
	models.StatusAwaitingRMAReview,
	models.StatusPendingClientSignature,
}

type BoardColumn struct {
	Status models.LeadStatus `json:"status"`
	Leads  []*models.Lead    `json:"leads"`
}

type ActivityView struct {
	models.Activity
	Timestamp string `json:"timestamp"`
}

type AdminSummary struct {
	TotalLeads     int `json:"total_leads"`
	Uploaded       int `json:"uploaded"`
	Archived       int `json:"archived"`
	SentToRMA      int `json:"sent_to_rma"`
	RMAVerified    int `json:"rma_verified"`
	Allocated      int `json:"allocated"`
	Converted      int `json:"converted"`
	AwaitingReview int `json:"awaiting_review"`
}

type BrokerSummary struct {
	Allocated        int `json:"allocated"`
	PendingNOA       int `json:"pending_noa"`
	PreparingDocs    int `json:"preparing_docs"`
	AwaitingRMA      int `json:"awaiting_rma"`
	PendingSignature int `json:"pending_signature"`
}

type Dashboard struct {
	User           string         `json:"user"`
	Role           authz.Role     `json:"role"`
	Admin          *AdminSummary  `json:"admin,omitempty"`
	Broker         *BrokerSummary `json:"broker,omitempty"`
	RecentActivity []ActivityView `json:"recent_activity"`
}

type DashboardService struct {
	Repo     *repositories.LeadRepository
	Activity *repositories.ActivityLog
	now      func() time.Time
}

func NewDashboardService(repo *repositories.LeadRepository, activity *repositories.ActivityLog, now func() time.Time) *DashboardService {
	if now == nil {
		now = time.Now
	}
	return &DashboardService{Repo: repo, Activity: activity, now: now}
}

// ParseView accepts a view name; unknown names are an error.
func ParseView(name string) (View, error) {
	v := View(name)
	if _, ok := viewDefaults[v]; !ok {
		return "", fmt.Errorf("%w: unknown view %q", ErrValidation, name)
	}
	return v, nil
}

// ListView returns the leads shown on a view. A non-empty filter replaces the
// view's default status and is matched exactly against the status name.
func (s *DashboardService) ListView(view View, filter string) []*models.Lead {
	status := viewDefaults[view]
	if filter != "" {
		status = models.LeadStatus(filter)
	}
	return s.Repo.ListByStatus(status)
}

// VisibleLeads applies the role selector: admin sees everything, a broker
// sees only the leads they own.
func (s *DashboardService) VisibleLeads(user string) []*models.Lead {
	if authz.IsAdmin(user) {
		return s.Repo.List()
	}
	return s.Repo.ListByOwner(user)
}

func (s *DashboardService) Board(user string) []BoardColumn {
	leads := s.VisibleLeads(user)
	cols := make([]BoardColumn, 0, len(BoardColumns))
	for _, st := range BoardColumns {
		col := BoardColumn{Status: st, Leads: []*models.Lead{}}
		for _, l := range leads {
			if l.Status == st {
				col.Leads = append(col.Leads, l)
			}
		}
		cols = append(cols, col)
	}
	return cols
}

// StatusCounts counts leads per status across the whole store.
func (s *DashboardService) StatusCounts() map[models.LeadStatus]int {
	return countByStatus(s.Repo.List())
}

// StatusCountsFor counts only the leads user can see.
func (s *DashboardService) StatusCountsFor(user string) map[models.LeadStatus]int {
	return countByStatus(s.VisibleLeads(user))
}

func countByStatus(leads []*models.Lead) map[models.LeadStatus]int {
	counts := make(map[models.LeadStatus]int)
	for _, l := range leads {
		counts[l.Status]++
	}
	return counts
}

func (s *DashboardService) Summary(user string) Dashboard {
	d := Dashboard{User: user, Role: authz.RoleOf(user), RecentActivity: s.RecentActivity()}
	if authz.IsAdmin(user) {
		counts := s.StatusCounts()
		sum := &AdminSummary{
			TotalLeads:     s.Repo.CountLeads(),
			Uploaded:       counts[models.StatusNew],
			Archived:       counts[models.StatusArchived],
			SentToRMA:      counts[models.StatusSentToRMA],
			RMAVerified:    counts[models.StatusRMAVerified],
			Converted:      counts[models.StatusPendingCFSubmission],
			AwaitingReview: counts[models.StatusAwaitingRMAReview],
		}
		for _, st := range allocatedStages {
			sum.Allocated += counts[st]
		}
		d.Admin = sum
		return d
	}

	sum := &BrokerSummary{}
	for _, l := range s.Repo.ListByOwner(user) {
		switch l.Status {
		case models.StatusAllocated:
			sum.Allocated++
		case models.StatusPendingNOA:
			sum.PendingNOA++
		case models.StatusPreparingDocs:
			sum.PreparingDocs++
		case models.StatusAwaitingRMAReview:
			sum.AwaitingRMA++
		case models.StatusPendingClientSignature:
			sum.PendingSignature++
		}
	}
	d.Broker = sum
	return d
}

// RecentActivity returns the feed with relative timestamp labels.
func (s *DashboardService) RecentActivity() []ActivityView {
	entries := s.Activity.Recent()
	now := s.now()
	out := make([]ActivityView, len(entries))
	for i, e := range entries {
		out[i] = ActivityView{Activity: e, Timestamp: humanize.RelTime(e.CreatedAt, now, "ago", "from now")}
	}
	return out
}
