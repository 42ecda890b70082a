package controllers

import (
	"errors"
	"strings"

	"voiceleads-backend/database"
	"voiceleads-backend/middlewares"
	"voiceleads-backend/models"
	"voiceleads-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetWorkspace returns the active workspace with its contact counter.
func GetWorkspace(c *fiber.Ctx) error {
	workspaceID, _ := c.Locals("workspaceID").(string)

	var workspace models.Workspace
	if err := database.DB.First(&workspace, "id = ?", workspaceID).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "workspace not found")
	}
	return c.JSON(workspace)
}

// ListWorkspaces returns every workspace the caller belongs to, for the
// workspace switcher.
func ListWorkspaces(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)

	var memberships []models.UserWorkspace
	err := database.DB.Preload("Workspace").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&memberships).Error
	if err != nil {
		return err
	}

	out := make([]fiber.Map, 0, len(memberships))
	for _, m := range memberships {
		out = append(out, fiber.Map{
			"id":   m.WorkspaceId,
			"name": m.Workspace.Name,
			"role": m.Role,
		})
	}
	return c.JSON(fiber.Map{"workspaces": out})
}

type workspacePatch struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=100"`
}

// UpdateWorkspace renames the workspace (admin action).
func UpdateWorkspace(c *fiber.Ctx) error {
	workspaceID, _ := c.Locals("workspaceID").(string)

	var patch workspacePatch
	if err := middlewares.BindAndValidate(c, &patch); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&patch)

	updates := utils.UpdatesFromPtrDTO(&patch, nil)
	if len(updates) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no fields to update")
	}

	if err := database.DB.Model(&models.Workspace{}).
		Where("id = ?", workspaceID).
		Updates(updates).Error; err != nil {
		return err
	}

	var workspace models.Workspace
	if err := database.DB.First(&workspace, "id = ?", workspaceID).Error; err != nil {
		return err
	}
	return c.JSON(workspace)
}

// ListMembers returns the workspace's memberships with user info.
func ListMembers(c *fiber.Ctx) error {
	workspaceID, _ := c.Locals("workspaceID").(string)

	var memberships []models.UserWorkspace
	err := database.DB.Preload("User").
		Where("workspace_id = ?", workspaceID).
		Order("created_at ASC").
		Find(&memberships).Error
	if err != nil {
		return err
	}

	out := make([]fiber.Map, 0, len(memberships))
	for _, m := range memberships {
		out = append(out, fiber.Map{
			"userId": m.UserId,
			"name":   m.User.FirstName + " " + m.User.LastName,
			"email":  m.User.Email,
			"role":   m.Role,
			"since":  m.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"members": out})
}

type inviteMemberRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required"`
}

// InviteMember adds an existing user to the workspace by email. There is no
// email delivery; the account must already exist.
func InviteMember(c *fiber.Ctx) error {
	workspaceID, _ := c.Locals("workspaceID").(string)

	var req inviteMemberRequest
	if err := middlewares.BindAndValidate(c, &req); err != nil {
		return err
	}
	utils.NormalizeDTO(&req)
	if !models.ValidRole(req.Role) {
		return fiber.NewError(fiber.StatusBadRequest, "unknown role: "+req.Role)
	}
	if req.Role == models.RoleOwner {
		return fiber.NewError(fiber.StatusBadRequest, "a workspace has exactly one owner")
	}

	var user models.User
	err := database.DB.Where("email = ?", strings.ToLower(req.Email)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "no account with that email")
		}
		return err
	}

	var existing models.UserWorkspace
	err = database.DB.Where("user_id = ? AND workspace_id = ?", user.Id, workspaceID).First(&existing).Error
	if err == nil {
		return fiber.NewError(fiber.StatusConflict, "already a member")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	membership := models.UserWorkspace{
		UserId:      user.Id,
		WorkspaceId: workspaceID,
		Role:        req.Role,
	}
	if err := database.DB.Create(&membership).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"userId": user.Id,
		"email":  user.Email,
		"role":   membership.Role,
	})
}

type changeRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

// ChangeMemberRole updates a member's role. The owner's role is immutable.
func ChangeMemberRole(c *fiber.Ctx) error {
	workspaceID, _ := c.Locals("workspaceID").(string)
	memberID := c.Params("userId")

	var req changeRoleRequest
	if err := middlewares.BindAndValidate(c, &req); err != nil {
		return err
	}
	utils.NormalizeDTO(&req)
	if !models.ValidRole(req.Role) {
		return fiber.NewError(fiber.StatusBadRequest, "unknown role: "+req.Role)
	}
	if req.Role == models.RoleOwner {
		return fiber.NewError(fiber.StatusBadRequest, "ownership cannot be granted here")
	}

	var membership models.UserWorkspace
	err := database.DB.Where("user_id = ? AND workspace_id = ?", memberID, workspaceID).First(&membership).Error
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "member not found")
	}
	if membership.Role == models.RoleOwner {
		return fiber.NewError(fiber.StatusForbidden, "the owner's role cannot be changed")
	}

	if err := database.DB.Model(&membership).Update("role", req.Role).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{"userId": memberID, "role": req.Role})
}

// RemoveMember removes a member from the workspace. The owner cannot be
// removed.
func RemoveMember(c *fiber.Ctx) error {
	workspaceID, _ := c.Locals("workspaceID").(string)
	memberID := c.Params("userId")

	var membership models.UserWorkspace
	err := database.DB.Where("user_id = ? AND workspace_id = ?", memberID, workspaceID).First(&membership).Error
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "member not found")
	}
	if membership.Role == models.RoleOwner {
		return fiber.NewError(fiber.StatusForbidden, "the owner cannot be removed")
	}

	if err := database.DB.Delete(&membership).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "success"})
}
