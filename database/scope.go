package database

import (
	"voiceleads-backend/models"

	"gorm.io/gorm"
)

// WorkspaceScope restricts a query to one workspace. Every query against
// workspace-owned tables must go through it; there is no cross-workspace
// query path.
func WorkspaceScope(workspaceID string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("workspace_id = ?", workspaceID)
	}
}

// IncContactCount bumps the workspace's denormalized contact counter by
// delta (use -1 on deletion). A single atomic column update, so concurrent
// requests need no lock.
func IncContactCount(db *gorm.DB, workspaceID string, delta int) error {
	return db.Model(&models.Workspace{}).
		Where("id = ?", workspaceID).
		UpdateColumn("contact_count", gorm.Expr("contact_count + ?", delta)).Error
}
