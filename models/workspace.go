package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Workspace is the tenant boundary: every persisted contact and usage record
// belongs to exactly one workspace.
type Workspace struct {
	Id   string `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"not null"`
	// ContactCount is denormalized; it is only ever changed through a single
	// atomic column update (see database.IncContactCount).
	ContactCount int64     `json:"contact_count" gorm:"not null;default:0"`
	CreatedAt    time.Time `json:"created_at"`
}

func (w *Workspace) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	w.Id = uuid.NewString()
	return
}

// Membership roles, strongest first.
const (
	RoleOwner  = "OWNER"
	RoleAdmin  = "ADMIN"
	RoleMember = "MEMBER"
	RoleViewer = "VIEWER"
)

// Actions a role can be checked against.
const (
	ActionRead   = "read"
	ActionWrite  = "write"
	ActionAdmin  = "admin"
	ActionDelete = "delete"
)

// rolePermissions is the fixed role → allowed-actions table. There is no
// per-workspace customization.
var rolePermissions = map[string]map[string]bool{
	RoleOwner:  {ActionRead: true, ActionWrite: true, ActionAdmin: true, ActionDelete: true},
	RoleAdmin:  {ActionRead: true, ActionWrite: true, ActionAdmin: true, ActionDelete: true},
	RoleMember: {ActionRead: true, ActionWrite: true},
	RoleViewer: {ActionRead: true},
}

// RoleAllows reports whether the given role may perform the action.
func RoleAllows(role, action string) bool {
	return rolePermissions[role][action]
}

// ValidRole reports whether role is one of the four static roles.
func ValidRole(role string) bool {
	_, ok := rolePermissions[role]
	return ok
}

// UserWorkspace is a membership record linking a user to a workspace with a
// role.
type UserWorkspace struct {
	Id          uint      `json:"id" gorm:"primaryKey"`
	UserId      string    `json:"user_id" gorm:"not null;uniqueIndex:idx_user_workspace"`
	WorkspaceId string    `json:"workspace_id" gorm:"not null;uniqueIndex:idx_user_workspace"`
	User        User      `json:"user" gorm:"foreignKey:UserId;references:Id"`
	Workspace   Workspace `json:"-" gorm:"foreignKey:WorkspaceId;references:Id"`
	Role        string    `json:"role" gorm:"type:VARCHAR(10);not null"`
	CreatedAt   time.Time `json:"created_at"`
}
