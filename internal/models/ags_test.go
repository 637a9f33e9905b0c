package models_test

import (
	"testing"

	"github.com/localnerve/agsdb/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableRows(t *testing.T) {
	var table models.Table

	rows, err := table.DecodeRows()
	require.NoError(t, err)
	assert.Empty(t, rows)

	require.NoError(t, table.SetRows([][]string{{"BH01", "1.50"}, {"BH02", "2.00"}}))
	assert.Equal(t, 2, table.RowCount)

	rows, err = table.DecodeRows()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"BH01", "1.50"}, {"BH02", "2.00"}}, rows)
}

func TestTableHeadings(t *testing.T) {
	var table models.Table
	want := []models.TableHeading{{Name: "SAMP_TOP", Type: "2DP", Unit: "m"}}

	require.NoError(t, table.SetHeadings(want))
	got, err := table.DecodeHeadings()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestJSONScanNull(t *testing.T) {
	j, err := models.EncodeJSON([]int{1})
	require.NoError(t, err)

	require.NoError(t, j.Scan(nil))
	assert.Empty(t, j.JSON)

	var out []int
	require.NoError(t, j.Decode(&out))
	assert.Nil(t, out)
}
