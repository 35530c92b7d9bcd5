package services

import (
	"errors"
	"fmt"

	"leadflow/internal/models"
)

var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidStatus     = errors.New("invalid status")
)

// Trigger is a named workflow action that moves a lead to a new status.
type Trigger string

const (
	TriggerArchive               Trigger = "archive"
	TriggerSendToRMA             Trigger = "send_to_rma"
	TriggerSaveEnrichment        Trigger = "save_enrichment"
	TriggerAssignBroker          Trigger = "assign_broker"
	TriggerRequestNOA            Trigger = "request_noa"
	TriggerUploadNOA             Trigger = "upload_noa"
	TriggerSkipNOA               Trigger = "skip_noa"
	TriggerUploadRecommendation  Trigger = "upload_recommendation"
	TriggerApproveDocuments      Trigger = "approve_documents"
	TriggerRejectDocuments       Trigger = "reject_documents"
	TriggerDownloadSignaturePack Trigger = "download_signature_pack"
	TriggerUploadSignedDocs      Trigger = "upload_signed_docs"
	TriggerSubmitToCF            Trigger = "submit_to_cf"
	TriggerCloseLead             Trigger = "close_lead"
)

// Transition is one row of the workflow table. Empty From means any status.
type Transition struct {
	From []models.LeadStatus
	To   models.LeadStatus
}

var LeadTransitions = map[Trigger]Transition{
	TriggerArchive:               {From: []models.LeadStatus{models.StatusNew}, To: models.StatusArchived},
	TriggerSendToRMA:             {From: []models.LeadStatus{models.StatusNew}, To: models.StatusSentToRMA},
	TriggerSaveEnrichment:        {To: models.StatusRMAVerified}, // always, whatever the prior status
	TriggerAssignBroker:          {From: []models.LeadStatus{models.StatusRMAVerified, models.StatusAllocated}, To: models.StatusAllocated},
	TriggerRequestNOA:            {From: []models.LeadStatus{models.StatusAllocated}, To: models.StatusPendingNOA},
	TriggerUploadNOA:             {From: []models.LeadStatus{models.StatusPendingNOA}, To: models.StatusPreparingDocs},
	TriggerSkipNOA:               {From: []models.LeadStatus{models.StatusPendingNOA}, To: models.StatusPreparingDocs},
	TriggerUploadRecommendation:  {From: []models.LeadStatus{models.StatusPreparingDocs}, To: models.StatusAwaitingRMAReview},
	TriggerApproveDocuments:      {From: []models.LeadStatus{models.StatusAwaitingRMAReview}, To: models.StatusPendingClientSignature},
	TriggerRejectDocuments:       {From: []models.LeadStatus{models.StatusAwaitingRMAReview}, To: models.StatusPreparingDocs},
	TriggerDownloadSignaturePack: {From: []models.LeadStatus{models.StatusPendingClientSignature}, To: models.StatusAwaitingSignedDocuments},
	TriggerUploadSignedDocs:      {From: []models.LeadStatus{models.StatusAwaitingSignedDocuments}, To: models.StatusPendingCFSubmission},
	TriggerSubmitToCF:            {From: []models.LeadStatus{models.StatusPendingCFSubmission}, To: models.StatusCFSubmitted},
	TriggerCloseLead:             {From: []models.LeadStatus{models.StatusCFSubmitted}, To: models.StatusApprovedClosed},
}

// TransitionPolicy decides whether a trigger may fire from the current status.
// With Enforce off every trigger is accepted and simply overwrites the status.
type TransitionPolicy struct {
	Enforce bool
}

func (p TransitionPolicy) Target(t Trigger) (models.LeadStatus, error) {
	tr, ok := LeadTransitions[t]
	if !ok {
		return "", fmt.Errorf("unknown trigger %q", t)
	}
	return tr.To, nil
}

func (p TransitionPolicy) Check(t Trigger, current models.LeadStatus) error {
	if !p.Enforce {
		return nil
	}
	tr, ok := LeadTransitions[t]
	if !ok {
		return fmt.Errorf("unknown trigger %q", t)
	}
	if canTransition(current, tr.From) {
		return nil
	}
	return fmt.Errorf("%w: %s from %q", ErrInvalidTransition, t, current)
}

func canTransition(current models.LeadStatus, from []models.LeadStatus) bool {
	if len(from) == 0 {
		return true
	}
	for _, s := range from {
		if s == current {
			return true
		}
	}
	return false
}

// ParseStatus validates a free-text status name against the status set.
func ParseStatus(s string) (models.LeadStatus, error) {
	st := models.LeadStatus(s)
	if !st.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return st, nil
}
