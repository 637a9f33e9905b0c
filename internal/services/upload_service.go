// upload_service.go
//
// A project and AGS field data service for geotechnical site investigations
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of agsdb.
// agsdb is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// agsdb is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with agsdb.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package services

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/localnerve/agsdb/internal/ags"
	"github.com/localnerve/agsdb/internal/models"
	"gorm.io/gorm"
)

// FileOpener reads back a stored upload
type FileOpener interface {
	Open(fileURL string) (io.ReadCloser, error)
}

// FileStore keeps uploaded files
type FileStore interface {
	FileOpener
	Save(projectID, name string, r io.Reader) (string, error)
}

// CreateUpload records a new upload in the STARTED state
func CreateUpload(db *gorm.DB, userProjectID, fileURL, fileName string) (*models.AgsUpload, error) {
	upload := &models.AgsUpload{
		UserProjectID: userProjectID,
		FileURL:       fileURL,
		FileName:      fileName,
		Status:        models.UploadStarted,
	}
	if err := db.Create(upload).Error; err != nil {
		return nil, fmt.Errorf("failed to create upload: %w", err)
	}
	return upload, nil
}

// GetUpload retrieves an upload by id
func GetUpload(db *gorm.DB, uploadID string) (*models.AgsUpload, error) {
	var upload models.AgsUpload
	if err := db.Where("id = ?", uploadID).First(&upload).Error; err != nil {
		return nil, notFound(err, "upload")
	}
	return &upload, nil
}

// ListUploads returns every upload made to a project, newest first, with the uploader loaded
func ListUploads(db *gorm.DB, projectID string) ([]models.AgsUpload, error) {
	var uploads []models.AgsUpload
	err := db.Preload("UserProject.User").
		Joins("JOIN user_projects ON user_projects.id = ags_uploads.user_project_id").
		Where("user_projects.project_id = ?", projectID).
		Order("ags_uploads.created_at DESC").
		Find(&uploads).Error
	if err != nil {
		return nil, err
	}
	return uploads, nil
}

// IngestFile stores r, records the upload and processes it. The returned upload
// carries the final status; the error is the processing failure, if any.
func IngestFile(ctx context.Context, db *gorm.DB, files FileStore, membership *models.UserProject, name string, r io.Reader) (*models.AgsUpload, error) {
	fileURL, err := files.Save(membership.ProjectID, name, r)
	if err != nil {
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}

	upload, err := CreateUpload(db.WithContext(ctx), membership.ID, fileURL, name)
	if err != nil {
		return nil, err
	}

	return upload, ProcessUpload(ctx, db, files, upload)
}

// ProcessUpload parses the stored file and replaces the project's tables, and
// its locations when the file has a LOCA group, in one transaction.
// The upload ends COMPLETED, or FAILED with the error recorded.
func ProcessUpload(ctx context.Context, db *gorm.DB, files FileOpener, upload *models.AgsUpload) error {
	db = db.WithContext(ctx)

	if err := setUploadStatus(db, upload, models.UploadProcessing, ""); err != nil {
		return err
	}

	if err := processUpload(db, files, upload); err != nil {
		if serr := setUploadStatus(db.WithContext(context.WithoutCancel(ctx)), upload, models.UploadFailed, err.Error()); serr != nil {
			return fmt.Errorf("%w (status not saved: %v)", err, serr)
		}
		return err
	}

	return setUploadStatus(db, upload, models.UploadCompleted, "")
}

func processUpload(db *gorm.DB, files FileOpener, upload *models.AgsUpload) error {
	var membership models.UserProject
	if err := db.Where("id = ?", upload.UserProjectID).First(&membership).Error; err != nil {
		return notFound(err, "project membership")
	}

	rc, err := files.Open(upload.FileURL)
	if err != nil {
		return fmt.Errorf("failed to open upload: %w", err)
	}
	defer rc.Close()

	raw, err := ags.Parse(rc)
	if err != nil {
		return err
	}

	tables, err := buildTables(membership.ProjectID, upload.ID, raw)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", membership.ProjectID).Delete(&models.Table{}).Error; err != nil {
			return err
		}
		if err := tx.CreateInBatches(&tables, 20).Error; err != nil {
			return err
		}

		if loca, ok := raw[ags.GroupLocation]; ok {
			return replaceLocations(tx, membership.ProjectID, locationsFromGroup(membership.ProjectID, loca))
		}
		return nil
	})
}

// buildTables converts parsed groups into rows, parents first, linking each
// child to its parent group's table
func buildTables(projectID, uploadID string, raw ags.RawData) ([]models.Table, error) {
	ids := make(map[string]string, len(raw))
	tables := make([]models.Table, 0, len(raw))

	for _, name := range ags.TopologicalNames(raw) {
		group := raw[name]
		table := models.Table{
			ID:          uuid.NewString(),
			ProjectID:   projectID,
			AgsUploadID: uploadID,
			Name:        name,
			Position:    group.Index,
		}
		ids[name] = table.ID

		if parent := ags.ParentGroup(raw, name); parent != "" {
			parentID := ids[parent]
			table.ParentID = &parentID
		}

		headings := make([]models.TableHeading, 0, len(group.Order))
		for _, h := range group.Headings() {
			headings = append(headings, models.TableHeading{Name: h.Name, Type: string(h.Type), Unit: h.Unit})
		}
		if err := table.SetHeadings(headings); err != nil {
			return nil, fmt.Errorf("group %s: %w", name, err)
		}
		if err := table.SetRows(group.Rows()); err != nil {
			return nil, fmt.Errorf("group %s: %w", name, err)
		}

		tables = append(tables, table)
	}

	return tables, nil
}

func setUploadStatus(db *gorm.DB, upload *models.AgsUpload, status models.UploadStatus, message string) error {
	err := db.Model(upload).Updates(map[string]any{
		"status": status,
		"error":  message,
	}).Error
	if err != nil {
		return fmt.Errorf("failed to set upload status %s: %w", status, err)
	}
	upload.Status = status
	upload.Error = message
	return nil
}
