// internal/models/lead.go
package models

import "time"

// LeadStatus is a stage of the reclassification workflow.
type LeadStatus string

const (
	StatusNew                     LeadStatus = "New"
	StatusSentToRMA               LeadStatus = "Sent to RMA"
	StatusRMAVerified             LeadStatus = "RMA Verified"
	StatusAllocated               LeadStatus = "Allocated"
	StatusPendingNOA              LeadStatus = "Pending NOA"
	StatusPreparingDocs           LeadStatus = "Preparing Docs"
	StatusAwaitingRMAReview       LeadStatus = "Awaiting RMA Review"
	StatusPendingClientSignature  LeadStatus = "Pending Client Signature"
	StatusAwaitingSignedDocuments LeadStatus = "Awaiting Signed Documents"
	StatusPendingCFSubmission     LeadStatus = "Pending CF Submission"
	StatusCFSubmitted             LeadStatus = "CF Submitted"
	StatusApprovedClosed          LeadStatus = "Approved & Closed"
	StatusArchived                LeadStatus = "Archived"
)

var allStatuses = []LeadStatus{
	StatusNew,
	StatusSentToRMA,
	StatusRMAVerified,
	StatusAllocated,
	StatusPendingNOA,
	StatusPreparingDocs,
	StatusAwaitingRMAReview,
	StatusPendingClientSignature,
	StatusAwaitingSignedDocuments,
	StatusPendingCFSubmission,
	StatusCFSubmitted,
	StatusApprovedClosed,
	StatusArchived,
}

// AllStatuses returns the workflow states in typical progression order.
// Archived comes last since it is out of band.
func AllStatuses() []LeadStatus {
	out := make([]LeadStatus, len(allStatuses))
	copy(out, allStatuses)
	return out
}

func (s LeadStatus) IsValid() bool {
	for _, v := range allStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// GroupRiskStatus tracks the group risk upsell, independent of Status.
type GroupRiskStatus string

const (
	GroupRiskNotStarted   GroupRiskStatus = "Not Started"
	GroupRiskInterested   GroupRiskStatus = "Interested"
	GroupRiskQuoteStarted GroupRiskStatus = "Quote Started"
	GroupRiskRejected     GroupRiskStatus = "Rejected"
	GroupRiskNA           GroupRiskStatus = "N/A"
)

func (s GroupRiskStatus) IsValid() bool {
	switch s {
	case GroupRiskNotStarted, GroupRiskInterested, GroupRiskQuoteStarted, GroupRiskRejected, GroupRiskNA:
		return true
	}
	return false
}

type RecommendationType string

const (
	RecommendationReclassification RecommendationType = "Reclassification"
	RecommendationTransfer         RecommendationType = "Transfer"
	RecommendationConsolidation    RecommendationType = "Consolidation"
)

func (t RecommendationType) IsValid() bool {
	switch t {
	case RecommendationReclassification, RecommendationTransfer, RecommendationConsolidation:
		return true
	}
	return false
}

// Unallocated is the BrokerOwner of a lead nobody owns yet.
const Unallocated = "Unallocated"

// Lead is an employer record moving through the workflow.
type Lead struct {
	ID                 string              `json:"id"`
	CompanyName        string              `json:"company_name"`
	CurrentClass       string              `json:"current_class"`
	TargetClass        string              `json:"target_class"`
	WageBill           float64             `json:"wage_bill"`
	Status             LeadStatus          `json:"status"`
	BrokerOwner        string              `json:"broker_owner"`
	RMAData            *RMAData            `json:"rma_data,omitempty"`
	GroupRiskStatus    *GroupRiskStatus    `json:"group_risk_status,omitempty"`
	RecommendationType *RecommendationType `json:"recommendation_type"`
	Industry           string              `json:"industry,omitempty"`
	PotentialSaving    *float64            `json:"potential_saving,omitempty"`
	HeuristicData      *HeuristicData      `json:"heuristic_data,omitempty"`
	CreatedAt          time.Time           `json:"created_at"`
}

// HeuristicData keeps the raw class values read from a bulk import.
type HeuristicData struct {
	OriginalCurrentClass  string `json:"original_current_class"`
	OriginalProposedClass string `json:"original_proposed_class"`
}

// Clone returns a deep copy so callers never share pointers with the store.
func (l *Lead) Clone() *Lead {
	if l == nil {
		return nil
	}
	out := *l
	if l.RMAData != nil {
		out.RMAData = l.RMAData.Clone()
	}
	if l.GroupRiskStatus != nil {
		v := *l.GroupRiskStatus
		out.GroupRiskStatus = &v
	}
	if l.RecommendationType != nil {
		v := *l.RecommendationType
		out.RecommendationType = &v
	}
	if l.PotentialSaving != nil {
		v := *l.PotentialSaving
		out.PotentialSaving = &v
	}
	if l.HeuristicData != nil {
		v := *l.HeuristicData
		out.HeuristicData = &v
	}
	return &out
}

// LeadDraft is a partial lead produced by a bulk import.
type LeadDraft struct {
	CompanyName     string         `json:"company_name"`
	Industry        string         `json:"industry"`
	CurrentClass    string         `json:"current_class"`
	TargetClass     string         `json:"target_class"`
	WageBill        float64        `json:"wage_bill"`
	PotentialSaving float64        `json:"potential_saving"`
	HeuristicData   *HeuristicData `json:"heuristic_data,omitempty"`
}
