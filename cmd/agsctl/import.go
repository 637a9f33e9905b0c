package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/localnerve/agsdb/internal/config"
	"github.com/localnerve/agsdb/internal/database"
	"github.com/localnerve/agsdb/internal/services"
	"github.com/localnerve/agsdb/internal/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	importEmail   string
	importProject string
)

var importCmd = &cobra.Command{
	Use:   "import --email EMAIL --project ID FILE",
	Short: "Import an AGS file into a project",
	Long: `Stores and ingests an AGS file into an existing project on behalf of one of its
members, the same way an upload through the project page does.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importEmail, "email", "", "email of a project member")
	importCmd.Flags().StringVar(&importProject, "project", "", "project id")
	_ = importCmd.MarkFlagRequired("email")
	_ = importCmd.MarkFlagRequired("project")
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadDatabase()
	if err != nil {
		return err
	}

	db, err := database.Connect(cfg, logger)
	if err != nil {
		return err
	}
	defer database.Close(db)

	files, err := storage.NewDiskStore(cfg.UploadDir)
	if err != nil {
		return err
	}

	return importFile(commandContext(cmd), cmd.OutOrStdout(), db, files, importEmail, importProject, args[0])
}

func importFile(ctx context.Context, w io.Writer, db *gorm.DB, files services.FileStore, email, projectID, path string) error {
	user, err := services.GetUserByEmail(db, email)
	if err != nil {
		return fmt.Errorf("user %s: %w", email, err)
	}
	membership, err := services.GetUserProject(db, user.ID, projectID)
	if err != nil {
		return fmt.Errorf("%s is not a member of project %s: %w", email, projectID, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	upload, err := services.IngestFile(ctx, db, files, membership, filepath.Base(path), f)
	if upload == nil {
		return err
	}

	logger.Info("AGS import finished",
		zap.String("upload_id", upload.ID),
		zap.String("project_id", projectID),
		zap.String("status", string(upload.Status)))
	fmt.Fprintf(w, "upload %s %s\n", upload.ID, upload.Status)
	return err
}
