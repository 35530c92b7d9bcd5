package services

import (
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"

	"leadflow/internal/models"
)

var ErrNoValidLeads = errors.New("no valid leads found in CSV. Check format")

// Expected columns: company name, industry/fund name, current class,
// proposed class, estimated annual saving. Quoting is not supported; the
// saving is the last column and keeps any thousands separators after it.
const minImportColumns = 5

var (
	lineSplit       = regexp.MustCompile(`\r?\n`)
	nonNumericRe    = regexp.MustCompile(`[^0-9.-]+`)
	leadingNumberRe = regexp.MustCompile(`^-?[0-9]*(\.[0-9]*)?`)
)

// ParseLeadCSV turns raw CSV text into lead drafts. The first line is always
// treated as a header. Rows with fewer than five columns or a blank company
// name are skipped silently.
func ParseLeadCSV(r io.Reader) ([]models.LeadDraft, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	drafts := ParseLeadLines(string(raw))
	if len(drafts) == 0 {
		return nil, ErrNoValidLeads
	}
	return drafts, nil
}

// ParseLeadLines is ParseLeadCSV without the empty-result error.
func ParseLeadLines(text string) []models.LeadDraft {
	lines := lineSplit.Split(text, -1)
	drafts := make([]models.LeadDraft, 0, len(lines))
	for i, line := range lines {
		if i == 0 || strings.TrimSpace(line) == "" {
			continue
		}
		if d, ok := parseLeadLine(line); ok {
			drafts = append(drafts, d)
		}
	}
	return drafts
}

func parseLeadLine(line string) (models.LeadDraft, bool) {
	cols := strings.Split(line, ",")
	if len(cols) < minImportColumns {
		return models.LeadDraft{}, false
	}
	company := strings.TrimSpace(cols[0])
	if company == "" {
		return models.LeadDraft{}, false
	}
	current := strings.TrimSpace(cols[2])
	target := strings.TrimSpace(cols[3])

	d := models.LeadDraft{
		CompanyName:     company,
		Industry:        strings.TrimSpace(cols[1]),
		CurrentClass:    orUnknown(current),
		TargetClass:     orUnknown(target),
		PotentialSaving: parseSaving(strings.Join(cols[4:], ",")),
		HeuristicData: &models.HeuristicData{
			OriginalCurrentClass:  current,
			OriginalProposedClass: target,
		},
	}
	return d, true
}

// parseSaving strips currency symbols and separators and reads the leading
// number, so "10.5.3" reads as 10.5. Anything unparseable, and numbers too
// large for a float64, are 0.
func parseSaving(s string) float64 {
	cleaned := nonNumericRe.ReplaceAllString(s, "")
	prefix := leadingNumberRe.FindString(cleaned)
	v, err := strconv.ParseFloat(prefix, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0
	}
	return v
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
