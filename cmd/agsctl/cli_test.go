package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/localnerve/agsdb/data"
	"github.com/localnerve/agsdb/internal/models"
	"github.com/localnerve/agsdb/internal/services"
	"github.com/localnerve/agsdb/internal/storage"
	"github.com/localnerve/agsdb/internal/testhelpers"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func TestParseCmd(t *testing.T) {
	logger = zap.NewNop()
	path := writeFile(t, "site.ags", data.SampleAGS)

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	require.NoError(t, runParse(cmd, []string{path}))

	var groups map[string]struct {
		Name    string                     `json:"name"`
		Columns map[string]json.RawMessage `json:"columns"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &groups))
	assert.Len(t, groups, 6)
	assert.Equal(t, "LOCA", groups["LOCA"].Name)
	assert.Contains(t, groups["LOCA"].Columns, "LOCA_NATE")
	assert.NotContains(t, out.String(), "TABLE")
}

func TestParseCmdDryRun(t *testing.T) {
	logger = zap.NewNop()
	dryRun = true
	defer func() { dryRun = false }()
	path := writeFile(t, "site.ags", data.SampleAGS)

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	require.NoError(t, runParse(cmd, []string{path}))
	assert.Contains(t, out.String(), "upload COMPLETED")
	assert.Contains(t, out.String(), "PROJ     -        1")
	assert.Contains(t, out.String(), "GEOL     LOCA     3")
	assert.Contains(t, out.String(), "LLPL     SAMP     1")
}

func TestParseCmdMalformed(t *testing.T) {
	logger = zap.NewNop()
	path := writeFile(t, "bad.ags", []byte("\"GROUP\",\"PROJ\"\n\"DATA\",\"x\"\n"))

	cmd := &cobra.Command{}
	cmd.SetOut(&bytes.Buffer{})

	err := runParse(cmd, []string{path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestImportFile(t *testing.T) {
	logger = zap.NewNop()
	db := testhelpers.NewTestDB(t)
	owner := testhelpers.CreateUser(t, db, "owner@example.com")
	membership := testhelpers.CreateProject(t, db, owner, "Riverside Quay")
	testhelpers.CreateUser(t, db, "outsider@example.com")

	files, err := storage.NewDiskStore(t.TempDir())
	require.NoError(t, err)
	path := writeFile(t, "site.ags", data.SampleAGS)
	ctx := context.Background()

	var out bytes.Buffer
	require.NoError(t, importFile(ctx, &out, db, files, "Owner@Example.com", membership.ProjectID, path))
	assert.Contains(t, out.String(), string(models.UploadCompleted))

	tables, err := services.GetTables(db, membership.ProjectID)
	require.NoError(t, err)
	assert.Len(t, tables, 6)

	err = importFile(ctx, &out, db, files, "outsider@example.com", membership.ProjectID, path)
	assert.ErrorIs(t, err, services.ErrNotFound)
	assert.Contains(t, err.Error(), "not a member")

	err = importFile(ctx, &out, db, files, "nobody@example.com", membership.ProjectID, path)
	assert.ErrorIs(t, err, services.ErrNotFound)
}
