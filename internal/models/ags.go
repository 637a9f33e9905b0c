package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UploadStatus tracks an AGS file through ingestion
type UploadStatus string

const (
	UploadStarted    UploadStatus = "STARTED"
	UploadProcessing UploadStatus = "PROCESSING"
	UploadCompleted  UploadStatus = "COMPLETED"
	UploadFailed     UploadStatus = "FAILED"
)

// AgsUpload is an ingestion job for one uploaded AGS file
type AgsUpload struct {
	ID            string       `gorm:"type:char(36);primaryKey" json:"id"`
	UserProjectID string       `gorm:"type:char(36);not null;index" json:"userProjectId"`
	FileURL       string       `gorm:"size:1024;not null" json:"fileUrl"`
	FileName      string       `gorm:"size:255" json:"fileName"`
	Status        UploadStatus `gorm:"size:16;not null;default:STARTED" json:"status"`
	Error         string       `gorm:"type:text" json:"error,omitempty"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
	UserProject   UserProject  `gorm:"foreignKey:UserProjectID" json:"-"`
}

// TableHeading describes one column of a stored AGS group
type TableHeading struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Unit string `json:"unit"`
}

// Table is one AGS group of a project, stored with its data rows.
// ParentID points at the group this one hangs under in the sidebar and
// Position is the group's place in the uploaded file.
type Table struct {
	ID          string  `gorm:"type:char(36);primaryKey"`
	ProjectID   string  `gorm:"type:char(36);not null;index:idx_project_table,unique"`
	AgsUploadID string  `gorm:"type:char(36);not null;index"`
	Name        string  `gorm:"size:64;not null;index:idx_project_table,unique"`
	ParentID    *string `gorm:"type:char(36);index"`
	Position    int     `gorm:"not null;default:0"`
	Headings    JSON
	Rows        JSON `gorm:"column:data_rows"`
	RowCount    int  `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName overrides the table name for AgsUpload
func (AgsUpload) TableName() string {
	return "ags_uploads"
}

// TableName overrides the table name for Table
func (Table) TableName() string {
	return "ags_tables"
}

// BeforeCreate assigns a UUID when none was given
func (u *AgsUpload) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// BeforeCreate assigns a UUID when none was given
func (t *Table) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// SetHeadings encodes the column descriptions
func (t *Table) SetHeadings(headings []TableHeading) error {
	encoded, err := EncodeJSON(headings)
	if err != nil {
		return err
	}
	t.Headings = encoded
	return nil
}

// DecodeHeadings returns the column descriptions
func (t *Table) DecodeHeadings() ([]TableHeading, error) {
	var headings []TableHeading
	err := t.Headings.Decode(&headings)
	return headings, err
}

// SetRows encodes the data rows and keeps RowCount in step
func (t *Table) SetRows(rows [][]string) error {
	encoded, err := EncodeJSON(rows)
	if err != nil {
		return err
	}
	t.Rows = encoded
	t.RowCount = len(rows)
	return nil
}

// DecodeRows returns the data rows in heading order
func (t *Table) DecodeRows() ([][]string, error) {
	var rows [][]string
	err := t.Rows.Decode(&rows)
	return rows, err
}
