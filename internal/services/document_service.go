package services

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"text/template"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"leadflow/internal/models"
)

const (
	flagManualClass    = "Target Class is undefined. Manual modification required."
	flagMissingRMAData = "Missing RMA Data"
)

// Generator builds a document pack from a lead snapshot.
type Generator interface {
	GeneratePack(lead models.Lead, at time.Time) models.DocumentPack
}

// TemplateGenerator fills the fixed document templates. It keeps no state
// between calls.
type TemplateGenerator struct{}

// DocumentService produces packs stamped with the current time.
type DocumentService struct {
	Gen Generator
	now func() time.Time
}

func NewDocumentService(gen Generator, now func() time.Time) *DocumentService {
	if gen == nil {
		gen = TemplateGenerator{}
	}
	if now == nil {
		now = time.Now
	}
	return &DocumentService{Gen: gen, now: now}
}

func (s *DocumentService) Generate(lead models.Lead) models.DocumentPack {
	return s.Gen.GeneratePack(lead, s.now())
}

// RenderText joins a pack into one plain-text bundle.
func (s *DocumentService) RenderText(pack models.DocumentPack) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Document pack for %s (generated %s)\n", pack.LeadID, pack.GeneratedAt.Format(time.RFC3339))
	for _, d := range pack.Documents {
		fmt.Fprintf(&b, "\n===== %s [%s] =====\n", d.Title, d.Status)
		for _, f := range d.Flags {
			fmt.Fprintf(&b, "! %s\n", f)
		}
		b.WriteString(d.Content)
		b.WriteString("\n")
	}
	return b.String()
}

// NeedsManualClassReview reports whether the target class still has to be
// decided by hand.
func NeedsManualClassReview(targetClass string) bool {
	return targetClass == "To Determine" || targetClass == "Class Unknown"
}

func (TemplateGenerator) GeneratePack(lead models.Lead, at time.Time) models.DocumentPack {
	manual := NeedsManualClassReview(lead.TargetClass)
	data := docData{Lead: lead, Date: at.Format("2006-01-02"), ManualReview: manual}
	if lead.RMAData != nil {
		data.Contact = lead.RMAData.ContactName
		data.Email = lead.RMAData.ContactEmail
		data.Products = lead.RMAData.Products
	}

	cf2a := models.Document{
		ID:      "DOC-CF2A-" + lead.ID,
		Type:    models.DocCF2A,
		Title:   "CF-2A Return of Earnings",
		Content: render(cf2aTmpl, data),
		Status:  models.DocReady,
		Flags:   []string{},
	}
	if manual {
		cf2a.Status = models.DocReviewRequired
		cf2a.Flags = []string{flagManualClass}
	}

	reg := models.Document{
		ID:      "DOC-REG-" + lead.ID,
		Type:    models.DocRMAReg,
		Title:   "RMA Registration",
		Content: render(rmaRegTmpl, data),
		Status:  models.DocReady,
		Flags:   []string{},
	}
	if lead.RMAData == nil {
		reg.Flags = []string{flagMissingRMAData}
	}

	return models.DocumentPack{
		LeadID:      lead.ID,
		GeneratedAt: at,
		Documents: []models.Document{
			{
				ID:      "DOC-LOA-" + lead.ID,
				Type:    models.DocLOA,
				Title:   "Letter of Appointment",
				Content: render(loaTmpl, data),
				Status:  models.DocReady,
				Flags:   []string{},
			},
			{
				ID:      "DOC-CF1B-" + lead.ID,
				Type:    models.DocCF1B,
				Title:   "CF-1B Reclassification",
				Content: render(cf1bTmpl, data),
				Status:  models.DocReady,
				Flags:   []string{},
			},
			cf2a,
			reg,
		},
	}
}

type docData struct {
	Lead         models.Lead
	Date         string
	ManualReview bool
	Contact      string
	Email        string
	Products     []string
}

var printer = message.NewPrinter(language.English)

// formatRand formats an amount the way the dashboard shows it: "R 45,000,000".
func formatRand(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return printer.Sprintf("R %d", int64(v))
	}
	return printer.Sprintf("R %.2f", v)
}

// previousEarningsEstimate is 90% of the wage bill, rounded to cents.
func previousEarningsEstimate(wageBill float64) float64 {
	return math.Round(wageBill*0.9*100) / 100
}

func orPlaceholder(v, placeholder string) string {
	if strings.TrimSpace(v) == "" {
		return placeholder
	}
	return v
}

var docFuncs = template.FuncMap{
	"rand":          formatRand,
	"estimate":      previousEarningsEstimate,
	"orPlaceholder": orPlaceholder,
}

func render(t *template.Template, data docData) string {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		// templates are fixed and parsed at init; an error here is a bug
		panic(fmt.Sprintf("render %s: %v", t.Name(), err))
	}
	return strings.TrimSpace(buf.String())
}

var loaTmpl = template.Must(template.New("loa").Funcs(docFuncs).Parse(`
**LETTER OF APPOINTMENT**

**Date:** {{.Date}}

**To:** The Compensation Commissioner
**Subject:** Appointment of {{.Lead.BrokerOwner}} as Broker of Record

Dear Commissioner,

We, **{{.Lead.CompanyName}}**, hereby appoint **{{.Lead.BrokerOwner}}** as our exclusive intermediary for all COID-related matters.

This appointment authorizes them to:
1. Access our records via the CompEasy system.
2. Submit Return of Earnings (W.As.8) on our behalf.
3. Handle all assessment queries and reclassifications.

**Current Wage Bill:** {{rand .Lead.WageBill}}
**Current Class:** {{.Lead.CurrentClass}}

Signed,
__________________________
Authorized Signatory
{{.Lead.CompanyName}}
`))

var cf2aTmpl = template.Must(template.New("cf2a").Funcs(docFuncs).Parse(`
**CF-2A: RETURN OF EARNINGS**

**Employer:** {{.Lead.CompanyName}}
**Registration No:** [Pending Lookup]

**Section A: Earnings Declaration**
------------------------------------------------
1. Total Earnings (Provisional):  {{rand .Lead.WageBill}}
2. Actual Earnings (Previous):    {{rand (estimate .Lead.WageBill)}} (Est.)
3. Directors/Members Earnings:    R 0.00

**Section B: Classification**
------------------------------------------------
**Current Nature of Business:** [ derived from {{.Lead.CurrentClass}} ]
**Proposed Classification:** {{.Lead.TargetClass}}{{if .ManualReview}} (MANUAL REVIEW){{end}}

**Declaration:**
I, the undersigned, confirm that the particulars furnished in this return are true and correct.

Signed: __________________________
`))

var cf1bTmpl = template.Must(template.New("cf1b").Funcs(docFuncs).Parse(`
**CF-1B: APPLICATION FOR RECLASSIFICATION**

**Entity:** {{.Lead.CompanyName}}

**Motivation for Change:**
The entity's nature of business has shifted from the operations defined under **{{.Lead.CurrentClass}}** to those better described by **{{.Lead.TargetClass}}**.

**Operational Evidence:**
- [To be attached: Site Photos]
- [To be attached: Process Flowchart]

We request the Commissioner to review this classification effective from the current financial year.
`))

var rmaRegTmpl = template.Must(template.New("rma-reg").Funcs(docFuncs).Parse(`
**RMA EMPLOYER REGISTRATION APPLICATION**

**Applicant:** {{.Lead.CompanyName}}
**Trading As:** {{.Lead.CompanyName}}

**Contact:** {{orPlaceholder .Contact "[MISSING CONTACT]"}}
**Email:** {{orPlaceholder .Email "[MISSING EMAIL]"}}

**Selected Products:**
{{- if .Products}}
{{- range .Products}}
- [x] {{.}}
{{- end}}
{{- else}}
- [ ] No Products Selected
{{- end}}

**Banking Details for Debit Order:**
Bank: ____________________
Acc No: __________________
`))
