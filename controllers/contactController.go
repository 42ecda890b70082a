package controllers

import (
	"encoding/json"
	"log"
	"strconv"
	"strings"

	"voiceleads-backend/crm"
	"voiceleads-backend/database"
	"voiceleads-backend/extract"
	"voiceleads-backend/middlewares"
	"voiceleads-backend/models"
	"voiceleads-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// ContactController handles confirmed-contact submission and lifecycle.
type ContactController struct {
	Forwarder *crm.Forwarder
}

func NewContactController(f *crm.Forwarder) *ContactController {
	return &ContactController{Forwarder: f}
}

type submitContactRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=100"`
	Phone   string `json:"phone" validate:"required,loose_phone"`
	Email   string `json:"email" validate:"omitempty,email"`
	Company string `json:"company" validate:"omitempty,max=100"`
	Notes   string `json:"notes" validate:"omitempty,max=10000"`
}

// SubmitContact validates the reviewed contact, forwards it to the CRM
// webhook, then records the outcome. Validation happens before any network
// call; the three follow-up writes (contact row, counter, usage log) are
// deliberately independent, non-transactional best-effort steps.
func (cc *ContactController) SubmitContact(c *fiber.Ctx) error {
	workspaceID, _ := c.Locals("workspaceID").(string)
	userID, _ := c.Locals("userID").(string)

	var req submitContactRequest
	if err := middlewares.BindAndValidate(c, &req); err != nil {
		return err
	}

	lead := crm.Lead{
		Name:    extract.Sanitize(req.Name),
		Phone:   extract.Sanitize(req.Phone),
		Email:   extract.SanitizeKeepEmail(req.Email),
		Company: extract.Sanitize(req.Company),
		Notes:   extract.Sanitize(req.Notes),
	}

	result, err := cc.Forwarder.Deliver(c.Context(), lead)
	if err != nil {
		middlewares.RecordIntegrationError("crm_webhook")
		if de, ok := err.(*crm.DeliveryError); ok {
			middlewares.RecordDelivery("none", strconv.Itoa(de.Status))
			cc.logDelivery(workspaceID, userID, de.Status, "")
		}
		return err
	}
	middlewares.RecordDelivery(result.Variant, strconv.Itoa(result.Status))

	// Best-effort persistence: the CRM already has the lead, so a local
	// write failure is logged and the client still gets a success.
	contact := models.Contact{
		WorkspaceId:     workspaceID,
		Name:            lead.Name,
		Phone:           lead.Phone,
		Email:           lead.Email,
		Company:         lead.Company,
		Notes:           lead.Notes,
		Status:          models.ContactProcessed,
		DeliveryStatus:  result.Status,
		DeliveryVariant: result.Variant,
	}
	if err := database.DB.Create(&contact).Error; err != nil {
		log.Printf("contact persist failed: %v", err)
	}
	if err := database.IncContactCount(database.DB, workspaceID, 1); err != nil {
		log.Printf("contact count increment failed: %v", err)
	}
	cc.logDelivery(workspaceID, userID, result.Status, result.Variant)

	return c.JSON(fiber.Map{
		"success":   true,
		"contactId": contact.Id,
		"status":    contact.Status,
		"delivery": fiber.Map{
			"variant": result.Variant,
			"status":  result.Status,
		},
	})
}

func (cc *ContactController) logDelivery(workspaceID, userID string, status int, variant string) {
	details, _ := json.Marshal(fiber.Map{"variant": variant})
	usage := models.UsageLog{
		WorkspaceId:    workspaceID,
		UserId:         userID,
		Kind:           models.UsageDelivery,
		DeliveryStatus: status,
		Details:        datatypes.JSON(details),
	}
	if err := database.DB.Create(&usage).Error; err != nil {
		log.Printf("usage log write failed: %v", err)
	}
}

// ListContacts returns the workspace's contacts, newest first, with optional
// ?search= substring filter over name/phone/email/company and
// page/page_size pagination.
func (cc *ContactController) ListContacts(c *fiber.Ctx) error {
	workspaceID, _ := c.Locals("workspaceID").(string)

	page := utils.ParseIntDefault(c.Query("page"), 1)
	pageSize := utils.ParseIntDefault(c.Query("page_size"), 25)
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 25
	}

	q := database.DB.Model(&models.Contact{}).Scopes(database.WorkspaceScope(workspaceID))
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + search + "%"
		q = q.Where("name ILIKE ? OR phone ILIKE ? OR email ILIKE ? OR company ILIKE ?", like, like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return err
	}

	var contacts []models.Contact
	if err := q.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&contacts).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"contacts":  contacts,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetContact returns a single contact by id, workspace-scoped.
func (cc *ContactController) GetContact(c *fiber.Ctx) error {
	workspaceID, _ := c.Locals("workspaceID").(string)

	var contact models.Contact
	err := database.DB.Scopes(database.WorkspaceScope(workspaceID)).
		Where("id = ?", c.Params("id")).
		First(&contact).Error
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "contact not found")
	}
	return c.JSON(contact)
}

// DeleteContact removes a contact and decrements the workspace counter.
// Requires the delete action (route-level guard).
func (cc *ContactController) DeleteContact(c *fiber.Ctx) error {
	workspaceID, _ := c.Locals("workspaceID").(string)

	res := database.DB.Scopes(database.WorkspaceScope(workspaceID)).
		Where("id = ?", c.Params("id")).
		Delete(&models.Contact{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "contact not found")
	}
	if err := database.IncContactCount(database.DB, workspaceID, -1); err != nil {
		log.Printf("contact count decrement failed: %v", err)
	}
	return c.JSON(fiber.Map{"message": "success"})
}
