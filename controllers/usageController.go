package controllers

import (
	"voiceleads-backend/database"
	"voiceleads-backend/models"
	"voiceleads-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// ListUsage returns the workspace's usage records, newest first, optionally
// filtered with ?kind=transcription|delivery. Admin-gated at the route level.
func ListUsage(c *fiber.Ctx) error {
	workspaceID, _ := c.Locals("workspaceID").(string)

	page := utils.ParseIntDefault(c.Query("page"), 1)
	limit := utils.ParseIntDefault(c.Query("limit"), 50)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}

	q := database.DB.Model(&models.UsageLog{}).Scopes(database.WorkspaceScope(workspaceID))
	switch kind := c.Query("kind"); kind {
	case "":
	case models.UsageTranscription, models.UsageDelivery:
		q = q.Where("kind = ?", kind)
	default:
		return fiber.NewError(fiber.StatusBadRequest, "unknown kind: "+kind)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return err
	}

	var logs []models.UsageLog
	if err := q.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&logs).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"usage": logs,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}
