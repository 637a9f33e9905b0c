package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"
	"github.com/glebarez/sqlite"
	"github.com/localnerve/agsdb/internal/ags"
	"github.com/localnerve/agsdb/internal/database"
	"github.com/localnerve/agsdb/internal/services"
	"github.com/localnerve/agsdb/internal/storage"
	"github.com/spf13/cobra"
)

var dryRun bool

var parseCmd = &cobra.Command{
	Use:   "parse FILE",
	Short: "Parse an AGS file and print its groups as JSON",
	Long: `Parses an AGS4 file and prints every group with its headings and column data.
With --dry-run the file is also ingested into a throwaway in-memory database and
the stored tables are listed with their parent group and row count.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().BoolVar(&dryRun, "dry-run", false, "ingest into an in-memory database and list the stored tables")
}

func runParse(cmd *cobra.Command, args []string) error {
	content, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	raw, err := ags.Parse(bytes.NewReader(content))
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	// ConfigStd sorts map keys
	out, err := sonic.ConfigStd.MarshalIndent(raw, "", "  ")
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	fmt.Fprintln(w, string(out))

	if !dryRun {
		return nil
	}
	return dryRunIngest(cmd, w, filepath.Base(args[0]), content)
}

func dryRunIngest(cmd *cobra.Command, w io.Writer, name string, content []byte) error {
	db, err := database.Open(sqlite.Open("file::memory:"), "error", 1)
	if err != nil {
		return err
	}
	defer database.Close(db)
	if err := database.AutoMigrate(db); err != nil {
		return err
	}

	dir, err := os.MkdirTemp("", "agsctl-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)
	files, err := storage.NewDiskStore(dir)
	if err != nil {
		return err
	}

	user, err := services.UpsertUserByEmail(db, "agsctl@localhost", "agsctl")
	if err != nil {
		return err
	}
	project, err := services.CreateProject(db, user.ID, "dry run", "")
	if err != nil {
		return err
	}
	membership, err := services.GetUserProject(db, user.ID, project.ID)
	if err != nil {
		return err
	}

	upload, err := services.IngestFile(commandContext(cmd), db, files, membership, name, bytes.NewReader(content))
	if upload == nil {
		return err
	}
	if err != nil {
		return fmt.Errorf("upload %s: %w", upload.Status, err)
	}

	tables, err := services.GetTables(db, project.ID)
	if err != nil {
		return err
	}
	names := make(map[string]string, len(tables))
	for _, t := range tables {
		names[t.ID] = t.Name
	}

	fmt.Fprintf(w, "\nupload %s\n", upload.Status)
	fmt.Fprintf(w, "%-8s %-8s %s\n", "TABLE", "PARENT", "ROWS")
	for _, t := range tables {
		parent := "-"
		if t.ParentID != nil {
			parent = names[*t.ParentID]
		}
		fmt.Fprintf(w, "%-8s %-8s %d\n", t.Name, parent, t.RowCount)
	}
	return nil
}
