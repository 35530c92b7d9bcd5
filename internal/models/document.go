package models

import "time"

type DocumentType string

const (
	DocLOA    DocumentType = "LOA"
	DocCF1B   DocumentType = "CF-1B"
	DocCF2A   DocumentType = "CF-2A"
	DocRMAReg DocumentType = "RMA-REG"
)

type DocumentStatus string

const (
	DocReady          DocumentStatus = "Ready"
	DocReviewRequired DocumentStatus = "Review Required"
)

// Document is one templated text document of a pack.
type Document struct {
	ID      string         `json:"id"`
	Type    DocumentType   `json:"type"`
	Title   string         `json:"title"`
	Content string         `json:"content"`
	Status  DocumentStatus `json:"status"`
	Flags   []string       `json:"flags"`
}

// DocumentPack is a snapshot generated from a lead; it is never stored.
type DocumentPack struct {
	LeadID      string     `json:"lead_id"`
	GeneratedAt time.Time  `json:"generated_at"`
	Documents   []Document `json:"documents"`
}

// Find returns the document of the given type, or nil.
func (p DocumentPack) Find(t DocumentType) *Document {
	for i := range p.Documents {
		if p.Documents[i].Type == t {
			return &p.Documents[i]
		}
	}
	return nil
}
