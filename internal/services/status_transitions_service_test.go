package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadflow/internal/models"
)

func TestTransitionPolicy_Lenient(t *testing.T) {
	p := TransitionPolicy{}
	for trig := range LeadTransitions {
		assert.NoError(t, p.Check(trig, models.StatusArchived), trig)
	}
}

func TestTransitionPolicy_Strict(t *testing.T) {
	p := TransitionPolicy{Enforce: true}

	require.NoError(t, p.Check(TriggerSendToRMA, models.StatusNew))
	assert.ErrorIs(t, p.Check(TriggerSendToRMA, models.StatusArchived), ErrInvalidTransition)

	// enrichment can be saved from anywhere
	for _, st := range models.AllStatuses() {
		assert.NoError(t, p.Check(TriggerSaveEnrichment, st), st)
	}

	assert.NoError(t, p.Check(TriggerAssignBroker, models.StatusAllocated))
	assert.ErrorIs(t, p.Check(TriggerAssignBroker, models.StatusNew), ErrInvalidTransition)

	err := p.Check("teleport", models.StatusNew)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidTransition)
}

func TestTransitionPolicy_Target(t *testing.T) {
	p := TransitionPolicy{}
	to, err := p.Target(TriggerRejectDocuments)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPreparingDocs, to)

	_, err = p.Target("teleport")
	assert.Error(t, err)
}

func TestTransitionTable_TargetsAreValid(t *testing.T) {
	for trig, tr := range LeadTransitions {
		assert.True(t, tr.To.IsValid(), trig)
		for _, from := range tr.From {
			assert.True(t, from.IsValid(), trig)
		}
	}
}

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus("Pending NOA")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPendingNOA, st)

	_, err = ParseStatus("pending noa")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
