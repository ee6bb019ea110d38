package source

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTable_PreservesHeadersVerbatim(t *testing.T) {
	csvData := "Eligible  Credit-Cards,Offer Title\nHDFC Regalia,B1G1\n"

	rows, err := ParseTable(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	// Case and punctuation stay untouched; normalization is the column
	// resolver's job
	assert.Equal(t, "HDFC Regalia", rows[0]["Eligible  Credit-Cards"])
	assert.Equal(t, "B1G1", rows[0]["Offer Title"])
}

func TestParseTable_PadsShortRecords(t *testing.T) {
	csvData := "A,B,C\n1,2\n"

	rows, err := ParseTable(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "1", rows[0]["A"])
	assert.Equal(t, "2", rows[0]["B"])
	assert.Equal(t, "", rows[0]["C"])
}

func TestParseTable_SkipsEmptyRowsAndBlankHeaders(t *testing.T) {
	csvData := "A,,B\n1,ignored,2\n,,\n"

	rows, err := ParseTable(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "1", rows[0]["A"])
	assert.Equal(t, "2", rows[0]["B"])
	_, hasBlank := rows[0][""]
	assert.False(t, hasBlank)
}

func TestParseTable_StripsBOM(t *testing.T) {
	csvData := "\ufeffName,Value\nx,y\n"

	rows, err := ParseTable(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "x", rows[0]["Name"])
}

func TestParseTable_QuotedCells(t *testing.T) {
	csvData := "Eligible Credit Cards,Offer Title\n\"HDFC Regalia (Visa), ICICI Coral\",\"Buy 1, Get 1\"\n"

	rows, err := ParseTable(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "HDFC Regalia (Visa), ICICI Coral", rows[0]["Eligible Credit Cards"])
	assert.Equal(t, "Buy 1, Get 1", rows[0]["Offer Title"])
}

func TestParseTable_EmptyInput(t *testing.T) {
	rows, err := ParseTable(strings.NewReader(""))
	require.NoError(t, err)
	assert.Nil(t, rows)
}

func TestParseTable_MalformedCSV(t *testing.T) {
	// Unclosed quote
	_, err := ParseTable(strings.NewReader("A,B\n\"oops,1\n2,3"))
	assert.Error(t, err)
}
