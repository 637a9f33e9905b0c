package services

import (
	"github.com/localnerve/agsdb/internal/models"
	"gorm.io/gorm"
	"gorm.io/hints"
)

// GetTables returns the project's tables in upload order, without their data rows
func GetTables(db *gorm.DB, projectID string) ([]models.Table, error) {
	var tables []models.Table
	err := db.Clauses(hints.Comment("select", "agsdb:GetTables")).
		Omit("data_rows").
		Where("project_id = ?", projectID).
		Order("position, created_at").
		Find(&tables).Error
	if err != nil {
		return nil, err
	}
	return tables, nil
}

// GetTable returns one table with its rows. A table of another project is not found.
func GetTable(db *gorm.DB, projectID, tableID string) (*models.Table, error) {
	var table models.Table
	err := quiet(db).Clauses(hints.Comment("select", "agsdb:GetTable")).
		Where("id = ? AND project_id = ?", tableID, projectID).
		First(&table).Error
	if err != nil {
		return nil, notFound(err, "table")
	}
	return &table, nil
}
