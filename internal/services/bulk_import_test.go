package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const csvHeader = "EMPLOYER NAME,FUND NAME,Current Class,Proposed Class,Est. Annual Saving (R)\n"

func TestParseLeadCSV_Example(t *testing.T) {
	drafts, err := ParseLeadCSV(strings.NewReader(csvHeader + "Acme Co,FundX,Class I,Class V,R 10,000\n"))
	require.NoError(t, err)
	require.Len(t, drafts, 1)

	d := drafts[0]
	assert.Equal(t, "Acme Co", d.CompanyName)
	assert.Equal(t, "FundX", d.Industry)
	assert.Equal(t, "Class I", d.CurrentClass)
	assert.Equal(t, "Class V", d.TargetClass)
	assert.Equal(t, 10000.0, d.PotentialSaving)
	require.NotNil(t, d.HeuristicData)
	assert.Equal(t, "Class I", d.HeuristicData.OriginalCurrentClass)
	assert.Equal(t, "Class V", d.HeuristicData.OriginalProposedClass)
}

func TestParseLeadCSV_SkipsBadRows(t *testing.T) {
	input := csvHeader +
		"Good One,F,Class I,Class II,100\r\n" +
		"\n" +
		"Too,Few,Cols\n" +
		"   ,F,Class I,Class II,100\n" +
		"  Trimmed  , Fund , , ,abc\n"
	drafts, err := ParseLeadCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, drafts, 2)

	assert.Equal(t, "Good One", drafts[0].CompanyName)
	assert.Equal(t, 100.0, drafts[0].PotentialSaving)

	trimmed := drafts[1]
	assert.Equal(t, "Trimmed", trimmed.CompanyName)
	assert.Equal(t, "Fund", trimmed.Industry)
	assert.Equal(t, "Unknown", trimmed.CurrentClass)
	assert.Equal(t, "Unknown", trimmed.TargetClass)
	assert.Equal(t, "", trimmed.HeuristicData.OriginalCurrentClass)
	assert.Zero(t, trimmed.PotentialSaving)
}

func TestParseLeadCSV_HeaderAlwaysSkipped(t *testing.T) {
	_, err := ParseLeadCSV(strings.NewReader("Acme Co,FundX,Class I,Class V,R 10,000"))
	assert.ErrorIs(t, err, ErrNoValidLeads)
}

func TestParseLeadCSV_NoValidRows(t *testing.T) {
	_, err := ParseLeadCSV(strings.NewReader(csvHeader + "a,b\n,x,y,z,1\n"))
	assert.ErrorIs(t, err, ErrNoValidLeads)

	_, err = ParseLeadCSV(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrNoValidLeads)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk gone") }

func TestParseLeadCSV_ReadError(t *testing.T) {
	_, err := ParseLeadCSV(failingReader{})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoValidLeads)
}

func TestParseSaving(t *testing.T) {
	cases := map[string]float64{
		"R 10,000":    10000,
		"1234.56":     1234.56,
		"-50":         -50,
		"R":           0,
		"":            0,
		"12.5.7":      12.5,
		" R 1 000 ":   1000,
		"ZAR 2,500.5": 2500.5,
	}
	for in, want := range cases {
		assert.Equal(t, want, parseSaving(in), in)
	}
}

func TestParseLeadLines_SavingKeepsThousandsSeparators(t *testing.T) {
	drafts := ParseLeadLines(csvHeader + "Big Corp,Fund,Class I,Class II,R 1,234,567\n")
	require.Len(t, drafts, 1)
	assert.Equal(t, 1234567.0, drafts[0].PotentialSaving)
}

func TestParseSaving_LongAndOverflowingNumbers(t *testing.T) {
	huge := strings.Repeat("1", 20000) + strings.Repeat("-", 20000)
	assert.Zero(t, parseSaving(huge))
	assert.Zero(t, parseSaving("R "+strings.Repeat("9", 400)))

	long := "R " + strings.Repeat("0", 50000) + "42.5" + strings.Repeat("x", 50000)
	assert.Equal(t, 42.5, parseSaving(long))

	drafts := ParseLeadLines(csvHeader + "Acme,FundX,I,V," + huge + "\n")
	require.Len(t, drafts, 1)
	assert.Zero(t, drafts[0].PotentialSaving)
}
