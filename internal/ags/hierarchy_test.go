package ags_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/localnerve/agsdb/data"
	"github.com/localnerve/agsdb/internal/ags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParentGroup(t *testing.T) {
	raw, err := ags.Parse(bytes.NewReader(data.SampleAGS))
	require.NoError(t, err)

	want := map[string]string{
		"PROJ": "",
		"TRAN": "",
		"LOCA": "",
		"GEOL": "LOCA",
		"SAMP": "LOCA",
		"LLPL": "SAMP",
		"NONE": "",
	}
	for name, parent := range want {
		assert.Equal(t, parent, ags.ParentGroup(raw, name), name)
	}

	assert.Equal(t, 2, ags.Depth(raw, "LLPL"))
	assert.Equal(t, 1, ags.Depth(raw, "GEOL"))
	assert.Equal(t, 0, ags.Depth(raw, "PROJ"))
}

func TestParentGroupMissingParent(t *testing.T) {
	input := strings.Join([]string{
		`"GROUP","GEOL"`,
		`"HEADING","LOCA_ID","GEOL_TOP"`,
		`"DATA","BH01","0.00"`,
	}, "\n")

	raw, err := ags.Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Empty(t, ags.ParentGroup(raw, "GEOL"))
}

func TestTopologicalNames(t *testing.T) {
	input := strings.Join([]string{
		`"GROUP","LLPL"`,
		`"HEADING","LOCA_ID","SAMP_ID"`,
		`"GROUP","SAMP"`,
		`"HEADING","LOCA_ID","SAMP_ID"`,
		`"GROUP","GEOL"`,
		`"HEADING","LOCA_ID"`,
		`"GROUP","LOCA"`,
		`"HEADING","LOCA_ID"`,
		`"GROUP","PROJ"`,
		`"HEADING","PROJ_ID"`,
	}, "\n")

	raw, err := ags.Parse(strings.NewReader(input))
	require.NoError(t, err)

	want := []string{"LOCA", "PROJ", "SAMP", "GEOL", "LLPL"}
	if diff := cmp.Diff(want, ags.TopologicalNames(raw)); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}
