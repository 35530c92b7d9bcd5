package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"leadflow/internal/models"
	"leadflow/internal/repositories"
)

var ErrNotFound = errors.New("lead not found")

// Outcome describes what a mutator did. Applied is false when no lead had the
// requested id; in that case nothing was recorded or announced.
type Outcome struct {
	LeadID   string           `json:"lead_id"`
	Applied  bool             `json:"applied"`
	Message  string           `json:"message,omitempty"`
	Lead     *models.Lead     `json:"lead,omitempty"`
	Activity *models.Activity `json:"activity,omitempty"`
}

// BulkOutcome is the result of AddBulkLeads.
type BulkOutcome struct {
	Added    int              `json:"added"`
	Leads    []*models.Lead   `json:"leads"`
	Message  string           `json:"message,omitempty"`
	Activity *models.Activity `json:"activity,omitempty"`
}

// LeadService is the only writer of the lead store. Every successful mutation
// records one activity entry and fires one notification.
type LeadService struct {
	Repo     *repositories.LeadRepository
	Activity *repositories.ActivityLog
	Notifier Notifier
	Policy   TransitionPolicy
	Docs     *DocumentService

	log   *logrus.Logger
	now   func() time.Time
	newID func() string
}

type LeadServiceOption func(*LeadService)

func WithClock(now func() time.Time) LeadServiceOption {
	return func(s *LeadService) { s.now = now }
}

func WithIDGenerator(gen func() string) LeadServiceOption {
	return func(s *LeadService) { s.newID = gen }
}

func WithLogger(log *logrus.Logger) LeadServiceOption {
	return func(s *LeadService) { s.log = log }
}

func NewLeadService(
	repo *repositories.LeadRepository,
	activity *repositories.ActivityLog,
	notifier Notifier,
	policy TransitionPolicy,
	docs *DocumentService,
	opts ...LeadServiceOption,
) *LeadService {
	s := &LeadService{
		Repo:     repo,
		Activity: activity,
		Notifier: notifier,
		Policy:   policy,
		Docs:     docs,
		log:      logrus.StandardLogger(),
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, o := range opts {
		o(s)
	}
	if s.Notifier == nil {
		s.Notifier = noopNotifier{}
	}
	if s.Docs == nil {
		s.Docs = NewDocumentService(nil, s.now)
	}
	return s
}

type noopNotifier struct{}

func (noopNotifier) Notify(string, models.NotificationKind) {}

// ===== reads =====

func (s *LeadService) GetByID(id string) (*models.Lead, bool) {
	return s.Repo.GetByID(id)
}

// Get is GetByID for callers that want an error for a missing lead.
func (s *LeadService) Get(id string) (*models.Lead, error) {
	l, ok := s.Repo.GetByID(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return l, nil
}

func (s *LeadService) List() []*models.Lead {
	return s.Repo.List()
}

// PreviewDocuments renders the pack for a lead without changing it.
func (s *LeadService) PreviewDocuments(id string) (models.DocumentPack, error) {
	l, err := s.Get(id)
	if err != nil {
		return models.DocumentPack{}, err
	}
	return s.Docs.Generate(*l), nil
}

// ===== creation =====

func (s *LeadService) AddLead(lead *models.Lead) (Outcome, error) {
	if lead == nil {
		return Outcome{}, fmt.Errorf("%w: empty lead", ErrValidation)
	}
	l := lead.Clone()
	l.CompanyName = strings.TrimSpace(l.CompanyName)
	if l.CompanyName == "" {
		return Outcome{}, fmt.Errorf("%w: company_name is required", ErrValidation)
	}
	if l.WageBill < 0 {
		return Outcome{}, fmt.Errorf("%w: wage_bill must not be negative", ErrValidation)
	}
	if strings.TrimSpace(l.ID) == "" {
		l.ID = "L-" + s.newID()
	}
	if l.Status == "" {
		l.Status = models.StatusNew
	}
	if !l.Status.IsValid() {
		return Outcome{}, fmt.Errorf("%w: %q", ErrInvalidStatus, l.Status)
	}
	if strings.TrimSpace(l.BrokerOwner) == "" {
		l.BrokerOwner = models.Unallocated
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = s.now()
	}
	if err := s.Repo.Create(l); err != nil {
		return Outcome{}, err
	}
	return s.record(l, models.ActivityUpload, fmt.Sprintf("Uploaded new lead: %s", l.CompanyName)), nil
}

// AddBulkLeads materializes drafts into new leads with generated ids. An empty
// batch leaves the store untouched.
func (s *LeadService) AddBulkLeads(drafts []models.LeadDraft) (BulkOutcome, error) {
	if len(drafts) == 0 {
		return BulkOutcome{Leads: []*models.Lead{}}, nil
	}
	now := s.now()
	leads := make([]*models.Lead, 0, len(drafts))
	for _, d := range drafts {
		saving := d.PotentialSaving
		l := &models.Lead{
			ID:              "L-BULK-" + s.newID(),
			CompanyName:     orDefault(d.CompanyName, "Unknown Company"),
			CurrentClass:    orDefault(d.CurrentClass, "Unknown"),
			TargetClass:     orDefault(d.TargetClass, "Unknown"),
			WageBill:        d.WageBill,
			Status:          models.StatusNew,
			BrokerOwner:     models.Unallocated,
			Industry:        d.Industry,
			PotentialSaving: &saving,
			CreatedAt:       now,
		}
		if d.HeuristicData != nil {
			h := *d.HeuristicData
			l.HeuristicData = &h
		}
		leads = append(leads, l)
	}
	if err := s.Repo.CreateMany(leads); err != nil {
		return BulkOutcome{}, err
	}

	msg := fmt.Sprintf("Bulk user import: %d leads added.", len(leads))
	entry := s.Activity.Append(models.ActivityUpload, msg)
	s.Notifier.Notify(fmt.Sprintf("Successfully imported %d leads", len(leads)), models.NotifySuccess)
	s.log.WithFields(logrus.Fields{"count": len(leads)}).Info("bulk import")

	out := make([]*models.Lead, len(leads))
	for i, l := range leads {
		out[i] = l.Clone()
	}
	return BulkOutcome{Added: len(leads), Leads: out, Message: msg, Activity: &entry}, nil
}

// ===== workflow triggers =====

func (s *LeadService) Archive(id string) (Outcome, error) {
	return s.fire(id, TriggerArchive, nil, models.ActivityUpdate, statusMessage)
}

func (s *LeadService) SendToRMA(id string) (Outcome, error) {
	return s.fire(id, TriggerSendToRMA, nil, models.ActivityUpdate, statusMessage)
}

// SaveEnrichment replaces the lead's RMA data wholesale and marks it verified,
// whatever its previous status.
func (s *LeadService) SaveEnrichment(id string, data models.RMAData) (Outcome, error) {
	d := data.Clone()
	d.Products = NormalizeProducts(d.Products)
	return s.fire(id, TriggerSaveEnrichment,
		func(l *models.Lead) { l.RMAData = d.Clone() },
		models.ActivityVerification,
		func(l *models.Lead) string { return fmt.Sprintf("Enriched RMA data for lead %s", l.ID) })
}

// AssignBroker overwrites the owner; a lead has exactly one.
func (s *LeadService) AssignBroker(id, broker string) (Outcome, error) {
	broker = strings.TrimSpace(broker)
	if broker == "" {
		return Outcome{}, fmt.Errorf("%w: broker is required", ErrValidation)
	}
	return s.fire(id, TriggerAssignBroker,
		func(l *models.Lead) { l.BrokerOwner = broker },
		models.ActivityAllocation,
		func(l *models.Lead) string { return fmt.Sprintf("Allocated lead %s to %s", l.ID, broker) })
}

func (s *LeadService) RequestNOA(id string) (Outcome, error) {
	return s.fire(id, TriggerRequestNOA, nil, models.ActivityUpdate,
		func(l *models.Lead) string { return fmt.Sprintf("NOA requested for %s", l.CompanyName) })
}

func (s *LeadService) UploadNOA(id string) (Outcome, error) {
	return s.fire(id, TriggerUploadNOA, nil, models.ActivityUpdate,
		func(l *models.Lead) string {
			return fmt.Sprintf("NOA uploaded for %s. Ready for Doc Gen.", l.CompanyName)
		})
}

func (s *LeadService) SkipNOA(id string) (Outcome, error) {
	return s.fire(id, TriggerSkipNOA, nil, models.ActivityUpdate, statusMessage)
}

// UploadRecommendation records the remediation approach and sends the final
// pack to the RMA for review, as a single mutation.
func (s *LeadService) UploadRecommendation(id string, typ models.RecommendationType) (Outcome, error) {
	if !typ.IsValid() {
		return Outcome{}, fmt.Errorf("%w: unknown recommendation type %q", ErrValidation, typ)
	}
	return s.fire(id, TriggerUploadRecommendation,
		func(l *models.Lead) {
			t := typ
			l.RecommendationType = &t
		},
		models.ActivityCompliance,
		func(l *models.Lead) string {
			return fmt.Sprintf("Recommendation Pack (%s) uploaded for %s", typ, l.CompanyName)
		})
}

func (s *LeadService) ApproveDocuments(id string) (Outcome, error) {
	return s.fire(id, TriggerApproveDocuments, nil, models.ActivityCompliance,
		func(l *models.Lead) string { return fmt.Sprintf("Documents approved for %s", l.CompanyName) })
}

func (s *LeadService) RejectDocuments(id string) (Outcome, error) {
	return s.fire(id, TriggerRejectDocuments, nil, models.ActivityCompliance,
		func(l *models.Lead) string {
			return fmt.Sprintf("Documents rejected for %s. Returned to broker.", l.CompanyName)
		})
}

// DownloadSignaturePack generates the client signature pack and moves the
// lead to Awaiting Signed Documents.
func (s *LeadService) DownloadSignaturePack(id string) (Outcome, *models.DocumentPack, error) {
	out, err := s.fire(id, TriggerDownloadSignaturePack, nil, models.ActivityCompliance,
		func(l *models.Lead) string { return fmt.Sprintf("Signature pack downloaded for %s", l.CompanyName) })
	if err != nil || !out.Applied {
		return out, nil, err
	}
	pack := s.Docs.Generate(*out.Lead)
	return out, &pack, nil
}

func (s *LeadService) UploadSignedDocs(id string) (Outcome, error) {
	return s.fire(id, TriggerUploadSignedDocs, nil, models.ActivityCompliance,
		func(l *models.Lead) string { return fmt.Sprintf("Signed Docs uploaded for %s", l.CompanyName) })
}

func (s *LeadService) SubmitToCF(id string) (Outcome, error) {
	return s.fire(id, TriggerSubmitToCF, nil, models.ActivityCompliance, statusMessage)
}

func (s *LeadService) CloseLead(id string) (Outcome, error) {
	return s.fire(id, TriggerCloseLead, nil, models.ActivityCompliance, statusMessage)
}

// ===== direct updates =====

// UpdateStatus sets any valid status without consulting the transition table.
func (s *LeadService) UpdateStatus(id string, status models.LeadStatus) (Outcome, error) {
	if !status.IsValid() {
		return Outcome{}, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return s.apply(id, nil,
		func(l *models.Lead) { l.Status = status },
		models.ActivityUpdate, statusMessage)
}

// UpdateContactDetails merges contact fields into the RMA data, starting from
// a blank Pending record when the lead has none. Status is not touched.
func (s *LeadService) UpdateContactDetails(id, name, phone, email string) (Outcome, error) {
	return s.apply(id, nil,
		func(l *models.Lead) {
			if l.RMAData == nil {
				l.RMAData = &models.RMAData{IsExistingClient: models.Pending, Products: []string{}}
			}
			l.RMAData.ContactName = name
			l.RMAData.ContactPhone = phone
			l.RMAData.ContactEmail = email
		},
		models.ActivityUpdate,
		func(l *models.Lead) string { return fmt.Sprintf("Updated contact info for lead %s", l.ID) })
}

func (s *LeadService) UpdateGroupRiskStatus(id string, status models.GroupRiskStatus) (Outcome, error) {
	if !status.IsValid() {
		return Outcome{}, fmt.Errorf("%w: unknown group risk status %q", ErrValidation, status)
	}
	return s.apply(id, nil,
		func(l *models.Lead) {
			st := status
			l.GroupRiskStatus = &st
		},
		models.ActivityUpdate,
		func(l *models.Lead) string {
			return fmt.Sprintf("Updated Group Risk status for lead %s to %s", l.ID, status)
		})
}

func (s *LeadService) UpdateRecommendation(id string, typ models.RecommendationType) (Outcome, error) {
	if !typ.IsValid() {
		return Outcome{}, fmt.Errorf("%w: unknown recommendation type %q", ErrValidation, typ)
	}
	return s.apply(id, nil,
		func(l *models.Lead) {
			t := typ
			l.RecommendationType = &t
		},
		models.ActivityUpdate,
		func(l *models.Lead) string {
			return fmt.Sprintf("Updated Recommendation Type for lead %s to %s", l.ID, typ)
		})
}

// ===== internals =====

func statusMessage(l *models.Lead) string {
	return fmt.Sprintf("Updated status for lead %s to %s", l.ID, l.Status)
}

// fire runs a workflow trigger: checks the policy, sets the target status and
// applies the extra mutation, if any.
func (s *LeadService) fire(id string, t Trigger, mutate func(*models.Lead), typ models.ActivityType, describe func(*models.Lead) string) (Outcome, error) {
	target, err := s.Policy.Target(t)
	if err != nil {
		return Outcome{}, err
	}
	check := func(l *models.Lead) error { return s.Policy.Check(t, l.Status) }
	return s.apply(id, check, func(l *models.Lead) {
		l.Status = target
		if mutate != nil {
			mutate(l)
		}
	}, typ, describe)
}

func (s *LeadService) apply(id string, check func(*models.Lead) error, mutate func(*models.Lead), typ models.ActivityType, describe func(*models.Lead) string) (Outcome, error) {
	updated, found, err := s.Repo.UpdateIf(id, check, mutate)
	if !found {
		s.log.WithField("lead_id", id).Debug("mutation on unknown lead ignored")
		return Outcome{LeadID: id}, nil
	}
	if err != nil {
		s.Notifier.Notify(err.Error(), models.NotifyError)
		s.log.WithFields(logrus.Fields{"lead_id": id, "error": err}).Warn("mutation rejected")
		return Outcome{LeadID: id}, err
	}
	return s.record(updated, typ, describe(updated)), nil
}

func (s *LeadService) record(l *models.Lead, typ models.ActivityType, msg string) Outcome {
	entry := s.Activity.Append(typ, msg)
	s.Notifier.Notify(msg, models.NotifySuccess)
	s.log.WithFields(logrus.Fields{
		"lead_id": l.ID,
		"status":  l.Status,
		"type":    typ,
	}).Info(msg)
	return Outcome{LeadID: l.ID, Applied: true, Message: msg, Lead: l, Activity: &entry}
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// IsClientError reports whether err was caused by bad input rather than by
// the service itself.
func IsClientError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidStatus) ||
		errors.Is(err, ErrInvalidTransition) ||
		errors.Is(err, repositories.ErrDuplicateID) ||
		errors.Is(err, ErrNoValidLeads)
}
