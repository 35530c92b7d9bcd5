package repositories

import (
	"errors"
	"sync"

	"leadflow/internal/models"
)

var ErrDuplicateID = errors.New("lead id already exists")

// LeadRepository is the in-memory lead collection. Leads are kept newest
// first. Every method works on copies; callers never see internal pointers.
type LeadRepository struct {
	mu    sync.RWMutex
	leads []*models.Lead
	index map[string]*models.Lead
}

func NewLeadRepository() *LeadRepository {
	return &LeadRepository{index: make(map[string]*models.Lead)}
}

func (r *LeadRepository) Create(lead *models.Lead) error {
	if lead == nil {
		return errors.New("nil lead")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.index[lead.ID]; ok {
		return ErrDuplicateID
	}
	stored := lead.Clone()
	r.leads = append([]*models.Lead{stored}, r.leads...)
	r.index[stored.ID] = stored
	return nil
}

// CreateMany prepends a batch in its given order. Either all leads are added
// or none are.
func (r *LeadRepository) CreateMany(leads []*models.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]struct{}, len(leads))
	for _, l := range leads {
		if l == nil {
			return errors.New("nil lead")
		}
		if _, ok := r.index[l.ID]; ok {
			return ErrDuplicateID
		}
		if _, ok := seen[l.ID]; ok {
			return ErrDuplicateID
		}
		seen[l.ID] = struct{}{}
	}

	batch := make([]*models.Lead, 0, len(leads)+len(r.leads))
	for _, l := range leads {
		stored := l.Clone()
		batch = append(batch, stored)
		r.index[stored.ID] = stored
	}
	r.leads = append(batch, r.leads...)
	return nil
}

func (r *LeadRepository) GetByID(id string) (*models.Lead, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.index[id]
	if !ok {
		return nil, false
	}
	return l.Clone(), true
}

// UpdateIf applies fn to the lead with the given id and returns a copy of the
// result. check, if set, sees the current lead under the same lock; a failing
// check leaves the lead untouched. Unknown ids are a silent no-op: found is
// false and neither function is called.
func (r *LeadRepository) UpdateIf(id string, check func(*models.Lead) error, fn func(*models.Lead)) (*models.Lead, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.index[id]
	if !ok {
		return nil, false, nil
	}
	if check != nil {
		if err := check(l.Clone()); err != nil {
			return nil, true, err
		}
	}
	fn(l)
	l.ID = id
	return l.Clone(), true, nil
}

func (r *LeadRepository) List() []*models.Lead {
	return r.FilterLeads(func(*models.Lead) bool { return true })
}

func (r *LeadRepository) ListByOwner(owner string) []*models.Lead {
	return r.FilterLeads(func(l *models.Lead) bool { return l.BrokerOwner == owner })
}

func (r *LeadRepository) ListByStatus(status models.LeadStatus) []*models.Lead {
	return r.FilterLeads(func(l *models.Lead) bool { return l.Status == status })
}

// FilterLeads returns copies of the leads matching keep, newest first.
func (r *LeadRepository) FilterLeads(keep func(*models.Lead) bool) []*models.Lead {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*models.Lead, 0, len(r.leads))
	for _, l := range r.leads {
		if keep(l) {
			out = append(out, l.Clone())
		}
	}
	return out
}

func (r *LeadRepository) CountLeads() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.leads)
}
