package ags_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/localnerve/agsdb/data"
	"github.com/localnerve/agsdb/internal/ags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestParseSample(t *testing.T) {
	raw, err := ags.Parse(bytes.NewReader(data.SampleAGS))
	require.NoError(t, err)

	assert.Equal(t, []string{"PROJ", "TRAN", "LOCA", "GEOL", "SAMP", "LLPL"}, raw.GroupNames())

	loca := raw["LOCA"]
	require.NotNil(t, loca)
	assert.Equal(t, "LOCA", loca.Name)
	assert.Equal(t, 2, loca.Len())
	assert.Equal(t, []string{"BH01", "BH02"}, loca.Columns["LOCA_ID"].Data)

	want := ags.Heading{Name: "LOCA_NATE", Type: "2DP", Unit: "m"}
	if diff := cmp.Diff(want, loca.Columns["LOCA_NATE"].Heading); diff != "" {
		t.Errorf("LOCA_NATE heading mismatch (-want +got):\n%s", diff)
	}

	geol := raw["GEOL"]
	assert.Equal(t, `Soft brown sandy CLAY with "rootlets"`, geol.Value("GEOL_DESC", 0))
	assert.Equal(t, "", geol.Value("GEOL_DESC", 10))
	assert.Equal(t, "", geol.Value("NOPE", 0))
}

func TestParseRows(t *testing.T) {
	input := strings.Join([]string{
		`"GROUP","ISPT"`,
		`"HEADING","LOCA_ID","ISPT_TOP","ISPT_NVAL"`,
		`"UNIT","","m",""`,
		`"TYPE","ID","2DP","0DP"`,
		`"DATA","BH01","1.00","12"`,
		`"DATA","BH01","2.50","18"`,
	}, "\n")

	raw, err := ags.Parse(strings.NewReader(input))
	require.NoError(t, err)

	g := raw["ISPT"]
	wantRows := [][]string{
		{"BH01", "1.00", "12"},
		{"BH01", "2.50", "18"},
	}
	if diff := cmp.Diff(wantRows, g.Rows()); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}

	wantHeadings := []ags.Heading{
		{Name: "LOCA_ID", Type: ags.TypeID},
		{Name: "ISPT_TOP", Type: "2DP", Unit: "m"},
		{Name: "ISPT_NVAL", Type: "0DP"},
	}
	if diff := cmp.Diff(wantHeadings, g.Headings()); diff != "" {
		t.Errorf("headings mismatch (-want +got):\n%s", diff)
	}
}

func TestParseByteOrderMark(t *testing.T) {
	input := "\xEF\xBB\xBF\"GROUP\",\"PROJ\"\r\n\"HEADING\",\"PROJ_ID\"\r\n\"DATA\",\"P1\"\r\n"

	raw, err := ags.Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"P1"}, raw["PROJ"].Columns["PROJ_ID"].Data)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  int
		err   error
	}{
		{
			name:  "data before group",
			input: `"DATA","x"`,
			line:  1,
			err:   ags.ErrNoGroup,
		},
		{
			name:  "data before heading",
			input: "\"GROUP\",\"PROJ\"\n\"DATA\",\"x\"",
			line:  2,
			err:   ags.ErrNoHeading,
		},
		{
			name:  "width mismatch",
			input: "\"GROUP\",\"PROJ\"\n\"HEADING\",\"A\",\"B\"\n\"DATA\",\"x\"",
			line:  3,
			err:   ags.ErrWidth,
		},
		{
			name:  "duplicate group",
			input: "\"GROUP\",\"PROJ\"\n\"HEADING\",\"A\"\n\n\"GROUP\",\"PROJ\"",
			line:  4,
			err:   ags.ErrDuplicateGroup,
		},
		{
			name:  "duplicate heading",
			input: "\"GROUP\",\"PROJ\"\n\"HEADING\",\"A\",\"A\"",
			line:  2,
			err:   ags.ErrDuplicateColumn,
		},
		{
			name:  "unknown descriptor",
			input: "\"GROUP\",\"PROJ\"\n\"**PROJ\"",
			line:  2,
			err:   ags.ErrDescriptor,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ags.Parse(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.err)

			var perr *ags.ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tt.line, perr.Line)
		})
	}
}

func TestParseUnknownType(t *testing.T) {
	input := "\"GROUP\",\"PROJ\"\n\"HEADING\",\"A\"\n\"TYPE\",\"BOGUS\""

	_, err := ags.Parse(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BOGUS")
}

func TestParseEmpty(t *testing.T) {
	_, err := ags.Parse(strings.NewReader("\n\n"))
	assert.ErrorIs(t, err, ags.ErrEmpty)
}

func TestParseType(t *testing.T) {
	for _, code := range []string{"ID", "PA", "X", "XN", "DT", "RL", "RECORD LINK", "0DP", "2DP", "3SF", "2SCI"} {
		_, err := ags.ParseType(code)
		assert.NoError(t, err, code)
	}
	for _, code := range []string{"", "DP", "0SF", "0SCI", "xDP", "-1DP", "FOO"} {
		_, err := ags.ParseType(code)
		assert.Error(t, err, code)
	}
}
