package app

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadflow/internal/authz"
	"leadflow/internal/config"
	"leadflow/internal/handlers"
	"leadflow/internal/logging"
	"leadflow/internal/middleware"
	"leadflow/internal/models"
	"leadflow/internal/services"
)

var testNow = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

func newTestApp(t *testing.T, enforce bool) *App {
	t.Helper()
	cfg := config.Default()
	cfg.Dashboard.SeedDemoData = true
	cfg.Workflow.EnforceTransitions = enforce
	a, err := New(cfg, logging.Discard(), func() time.Time { return testNow })
	require.NoError(t, err)
	return a
}

func call(t *testing.T, a *App, method, path, user string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set(middleware.CurrentUserHeader, user)
	}
	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealthz(t *testing.T) {
	w := call(t, newTestApp(t, false), http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestDashboard_ByRole(t *testing.T) {
	a := newTestApp(t, false)

	admin := decode[services.Dashboard](t, call(t, a, http.MethodGet, "/dashboard", "", nil))
	assert.Equal(t, authz.AdminUser, admin.User)
	require.NotNil(t, admin.Admin)
	assert.Equal(t, 3, admin.Admin.TotalLeads)
	assert.Equal(t, 1, admin.Admin.Uploaded)
	assert.Equal(t, 1, admin.Admin.SentToRMA)
	assert.Equal(t, 1, admin.Admin.RMAVerified)
	require.Len(t, admin.RecentActivity, 4)
	assert.Equal(t, "Generated CF-2A for Mining Corp", admin.RecentActivity[0].Description)
	assert.Equal(t, "10 minutes ago", admin.RecentActivity[0].Timestamp)

	broker := decode[services.Dashboard](t, call(t, a, http.MethodGet, "/dashboard", "Elton Whitten", nil))
	assert.Nil(t, broker.Admin)
	require.NotNil(t, broker.Broker)
	assert.Equal(t, services.BrokerSummary{}, *broker.Broker)
}

func TestFullWorkflowOverHTTP(t *testing.T) {
	a := newTestApp(t, true)
	const broker = "Elton Whitten"

	w := call(t, a, http.MethodPost, "/leads/L003/assign", broker, handlers.AssignRequest{Broker: broker})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = call(t, a, http.MethodPost, "/leads/L003/assign", "", handlers.AssignRequest{Broker: broker})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	out := decode[services.Outcome](t, w)
	assert.True(t, out.Applied)
	assert.Equal(t, "Allocated lead L003 to Elton Whitten", out.Message)

	steps := []struct {
		path string
		body any
		want models.LeadStatus
	}{
		{"/leads/L003/request-noa", nil, models.StatusPendingNOA},
		{"/leads/L003/noa", nil, models.StatusPreparingDocs},
		{"/leads/L003/recommendation", handlers.RecommendationRequest{Type: models.RecommendationReclassification, Upload: true}, models.StatusAwaitingRMAReview},
		{"/leads/L003/reject", nil, models.StatusPreparingDocs},
		{"/leads/L003/recommendation", handlers.RecommendationRequest{Type: models.RecommendationTransfer, Upload: true}, models.StatusAwaitingRMAReview},
		{"/leads/L003/approve", nil, models.StatusPendingClientSignature},
	}
	for _, s := range steps {
		w := call(t, a, http.MethodPost, s.path, broker, s.body)
		require.Equal(t, http.StatusOK, w.Code, s.path+": "+w.Body.String())
		out := decode[services.Outcome](t, w)
		require.True(t, out.Applied, s.path)
		assert.Equal(t, s.want, out.Lead.Status, s.path)
	}

	board := decode[[]services.BoardColumn](t, call(t, a, http.MethodGet, "/leads/board", broker, nil))
	require.Len(t, board, len(services.BoardColumns))
	assert.Len(t, board[4].Leads, 1)

	w = call(t, a, http.MethodPost, "/leads/L003/signature-pack", broker, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	sig := decode[handlers.SignaturePackResponse](t, w)
	assert.Equal(t, models.StatusAwaitingSignedDocuments, sig.Lead.Status)
	require.NotNil(t, sig.Pack)
	require.Len(t, sig.Pack.Documents, 4)
	assert.Equal(t, "L003", sig.Pack.LeadID)
	reg := sig.Pack.Find(models.DocRMAReg)
	require.NotNil(t, reg)
	assert.Contains(t, reg.Content, "Sarah Jenkins")

	for _, p := range []string{"/leads/L003/signed-docs", "/leads/L003/submit", "/leads/L003/close"} {
		w := call(t, a, http.MethodPost, p, broker, nil)
		require.Equal(t, http.StatusOK, w.Code, p)
	}
	l, ok := a.Leads.GetByID("L003")
	require.True(t, ok)
	assert.Equal(t, models.StatusApprovedClosed, l.Status)
	require.NotNil(t, l.RecommendationType)
	assert.Equal(t, models.RecommendationTransfer, *l.RecommendationType)

	feed := decode[[]services.ActivityView](t, call(t, a, http.MethodGet, "/activity", "", nil))
	require.Len(t, feed, 5)
	assert.Equal(t, "Updated status for lead L003 to Approved & Closed", feed[0].Description)
}

func TestStrictModeRejectsOutOfOrderTrigger(t *testing.T) {
	a := newTestApp(t, true)
	w := call(t, a, http.MethodPost, "/leads/L001/approve", "", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	l, _ := a.Leads.GetByID("L001")
	assert.Equal(t, models.StatusNew, l.Status)

	notes := decode[[]models.Notification](t, call(t, a, http.MethodGet, "/notifications", "", nil))
	require.Len(t, notes, 1)
	assert.Equal(t, models.NotifyError, notes[0].Kind)
}

func TestLenientModeAllowsAnyTrigger(t *testing.T) {
	a := newTestApp(t, false)
	w := call(t, a, http.MethodPost, "/leads/L001/approve", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.StatusPendingClientSignature, decode[services.Outcome](t, w).Lead.Status)
}

func TestUnknownLead(t *testing.T) {
	a := newTestApp(t, false)

	w := call(t, a, http.MethodPost, "/leads/NOPE/archive", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	out := decode[services.Outcome](t, w)
	assert.False(t, out.Applied)
	assert.Equal(t, "NOPE", out.LeadID)
	assert.Empty(t, decode[[]models.Notification](t, call(t, a, http.MethodGet, "/notifications", "", nil)))

	assert.Equal(t, http.StatusNotFound, call(t, a, http.MethodGet, "/leads/NOPE", "", nil).Code)
	assert.Equal(t, http.StatusNotFound, call(t, a, http.MethodGet, "/leads/NOPE/documents", "", nil).Code)
}

func TestLeadVisibility(t *testing.T) {
	a := newTestApp(t, false)

	assert.Equal(t, http.StatusOK, call(t, a, http.MethodGet, "/leads/L003", "Elton Whitten", nil).Code)
	assert.Equal(t, http.StatusForbidden, call(t, a, http.MethodGet, "/leads/L001", "Elton Whitten", nil).Code)

	all := decode[[]models.Lead](t, call(t, a, http.MethodGet, "/leads", "", nil))
	assert.Len(t, all, 3)
	mine := decode[[]models.Lead](t, call(t, a, http.MethodGet, "/leads", "Elton Whitten", nil))
	require.Len(t, mine, 1)
	assert.Equal(t, "L003", mine[0].ID)

	alloc := decode[[]models.Lead](t, call(t, a, http.MethodGet, "/leads?view=allocation", "", nil))
	require.Len(t, alloc, 1)
	assert.Equal(t, "L003", alloc[0].ID)

	filtered := decode[[]models.Lead](t, call(t, a, http.MethodGet, "/leads?view=upload&status=Sent+to+RMA", "", nil))
	require.Len(t, filtered, 1)
	assert.Equal(t, "L002", filtered[0].ID)

	assert.Equal(t, http.StatusBadRequest, call(t, a, http.MethodGet, "/leads?view=kanban", "", nil).Code)

	counts := decode[map[models.LeadStatus]int](t, call(t, a, http.MethodGet, "/leads/counts", "", nil))
	assert.Equal(t, 1, counts[models.StatusSentToRMA])

	brokerCounts := decode[map[models.LeadStatus]int](t, call(t, a, http.MethodGet, "/leads/counts", "Elton Whitten", nil))
	assert.Equal(t, map[models.LeadStatus]int{models.StatusRMAVerified: 1}, brokerCounts)
}

func TestDocumentsRespectOwnership(t *testing.T) {
	a := newTestApp(t, false)

	w := call(t, a, http.MethodGet, "/leads/L001/documents", "Elton Whitten", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), `"error"`)

	pack := decode[models.DocumentPack](t, call(t, a, http.MethodGet, "/leads/L003/documents", "Elton Whitten", nil))
	assert.Equal(t, "L003", pack.LeadID)

	assert.Equal(t, http.StatusOK, call(t, a, http.MethodGet, "/leads/L001/documents", "", nil).Code)
}

func TestCreateAndEditLead(t *testing.T) {
	a := newTestApp(t, false)

	w := call(t, a, http.MethodPost, "/leads", "", handlers.CreateLeadRequest{CompanyName: "Delta Foods", WageBill: 1000})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[services.Outcome](t, w)
	assert.Equal(t, "Uploaded new lead: Delta Foods", created.Message)
	assert.Equal(t, models.StatusNew, created.Lead.Status)
	assert.Equal(t, "Unknown", created.Lead.TargetClass)

	assert.Equal(t, http.StatusBadRequest, call(t, a, http.MethodPost, "/leads", "", map[string]any{"wage_bill": 5}).Code)

	id := created.LeadID
	w = call(t, a, http.MethodPut, "/leads/"+id+"/contact", "", handlers.ContactRequest{ContactName: "Thabo", ContactEmail: "thabo@delta.co.za"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	contact := decode[services.Outcome](t, w)
	require.NotNil(t, contact.Lead.RMAData)
	assert.Equal(t, models.Pending, contact.Lead.RMAData.IsExistingClient)
	assert.Equal(t, models.StatusNew, contact.Lead.Status)

	w = call(t, a, http.MethodPut, "/leads/"+id+"/group-risk", "", handlers.GroupRiskRequest{Status: models.GroupRiskInterested})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.GroupRiskInterested, *decode[services.Outcome](t, w).Lead.GroupRiskStatus)
	assert.Equal(t, http.StatusBadRequest, call(t, a, http.MethodPut, "/leads/"+id+"/group-risk", "", handlers.GroupRiskRequest{Status: "Maybe"}).Code)

	w = call(t, a, http.MethodPost, "/leads/"+id+"/recommendation", "", handlers.RecommendationRequest{Type: models.RecommendationConsolidation})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.StatusNew, decode[services.Outcome](t, w).Lead.Status)

	w = call(t, a, http.MethodPost, "/leads/"+id+"/status", "", handlers.StatusRequest{Status: "Pending NOA"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.StatusPendingNOA, decode[services.Outcome](t, w).Lead.Status)
	assert.Equal(t, http.StatusBadRequest, call(t, a, http.MethodPost, "/leads/"+id+"/status", "", handlers.StatusRequest{Status: "Done"}).Code)
}

func TestSaveEnrichment(t *testing.T) {
	a := newTestApp(t, false)

	bad := models.RMAData{IsExistingClient: models.Yes}
	w := call(t, a, http.MethodPut, "/leads/L002/rma", "", bad)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	good := models.RMAData{IsExistingClient: models.No, Products: []string{}}
	w = call(t, a, http.MethodPut, "/leads/L002/rma", "", good)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	out := decode[services.Outcome](t, w)
	assert.Equal(t, models.StatusRMAVerified, out.Lead.Status)
	assert.Equal(t, "Enriched RMA data for lead L002", out.Message)

	state := decode[services.FormState](t, call(t, a, http.MethodPost, "/rma/form-state", "", models.RMAData{IsExistingClient: models.Yes, AlreadyAllocatedToRMA: models.Yes}))
	assert.Equal(t, services.FormState{ShowProducts: true, ShowIncumbentName: true, ContactRequired: true}, state)
}

func csvRequest(t *testing.T, path, user, body string, multipartUpload bool) *http.Request {
	t.Helper()
	if !multipartUpload {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "text/csv")
		if user != "" {
			req.Header.Set(middleware.CurrentUserHeader, user)
		}
		return req
	}
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "leads.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte(body))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if user != "" {
		req.Header.Set(middleware.CurrentUserHeader, user)
	}
	return req
}

const importCSV = "EMPLOYER NAME,FUND NAME,Current Class,Proposed Class,Est. Annual Saving (R)\n" +
	"Acme Co,FundX,Class I,Class V,R 10,000\n" +
	"broken row\n" +
	"Beta Ltd,FundY,Class II,To Determine,2500\n"

func TestImport(t *testing.T) {
	a := newTestApp(t, false)

	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, csvRequest(t, "/leads/import", "Elton Whitten", importCSV, false))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	a.Router.ServeHTTP(w, csvRequest(t, "/leads/import/preview", "", importCSV, true))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	preview := decode[handlers.ImportPreview](t, w)
	assert.Equal(t, 2, preview.Count)
	assert.Equal(t, 3, a.Leads.Repo.CountLeads())

	w = httptest.NewRecorder()
	a.Router.ServeHTTP(w, csvRequest(t, "/leads/import", "", importCSV, false))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	out := decode[services.BulkOutcome](t, w)
	assert.Equal(t, 2, out.Added)
	require.Len(t, out.Leads, 2)
	assert.True(t, strings.HasPrefix(out.Leads[0].ID, "L-BULK-"))
	assert.Equal(t, "Acme Co", out.Leads[0].CompanyName)
	assert.Equal(t, models.Unallocated, out.Leads[0].BrokerOwner)
	assert.Equal(t, 10000.0, *out.Leads[0].PotentialSaving)
	assert.Equal(t, 5, a.Leads.Repo.CountLeads())

	notes := a.Notifications.Active()
	require.NotEmpty(t, notes)
	assert.Equal(t, "Successfully imported 2 leads", notes[len(notes)-1].Message)

	w = httptest.NewRecorder()
	a.Router.ServeHTTP(w, csvRequest(t, "/leads/import", "", "header only\n", false))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	notes = a.Notifications.Active()
	assert.Equal(t, models.NotifyError, notes[len(notes)-1].Kind)
	assert.Equal(t, 5, a.Leads.Repo.CountLeads())

	pack := decode[models.DocumentPack](t, call(t, a, http.MethodGet, "/leads/"+out.Leads[1].ID+"/documents", "", nil))
	cf2a := pack.Find(models.DocCF2A)
	require.NotNil(t, cf2a)
	assert.Equal(t, models.DocReviewRequired, cf2a.Status)
}

func TestNotificationsDismiss(t *testing.T) {
	a := newTestApp(t, false)
	call(t, a, http.MethodPost, "/leads/L001/send-to-rma", "", nil)

	notes := decode[[]models.Notification](t, call(t, a, http.MethodGet, "/notifications", "", nil))
	require.Len(t, notes, 1)
	assert.Equal(t, "Updated status for lead L001 to Sent to RMA", notes[0].Message)

	assert.Equal(t, http.StatusNoContent, call(t, a, http.MethodDelete, "/notifications/"+notes[0].ID, "", nil).Code)
	assert.Equal(t, http.StatusNotFound, call(t, a, http.MethodDelete, "/notifications/"+notes[0].ID, "", nil).Code)
}
