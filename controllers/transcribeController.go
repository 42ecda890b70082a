package controllers

import (
	"encoding/json"
	"io"
	"log"
	"strings"

	"voiceleads-backend/database"
	"voiceleads-backend/extract"
	"voiceleads-backend/middlewares"
	"voiceleads-backend/models"
	"voiceleads-backend/transcribe"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// MaxAudioBytes bounds a single uploaded recording.
const MaxAudioBytes = 10 << 20 // 10 MiB

// TranscribeController handles audio upload → transcript → extracted draft.
type TranscribeController struct {
	STT *transcribe.Client
}

func NewTranscribeController(stt *transcribe.Client) *TranscribeController {
	return &TranscribeController{STT: stt}
}

// Transcribe accepts a multipart "audio" file, sends it to the speech-to-text
// service, runs the field extractor over the transcript, and returns the
// draft for human review. Nothing is persisted except the usage record.
func (tc *TranscribeController) Transcribe(c *fiber.Ctx) error {
	workspaceID, _ := c.Locals("workspaceID").(string)
	userID, _ := c.Locals("userID").(string)

	fileHeader, err := c.FormFile("audio")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "missing audio file")
	}
	if fileHeader.Size == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "audio file is empty")
	}
	if fileHeader.Size > MaxAudioBytes {
		return fiber.NewError(fiber.StatusBadRequest, "audio file exceeds 10MB limit")
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if contentType != "" && !strings.HasPrefix(contentType, "audio/") && contentType != "video/webm" {
		return fiber.NewError(fiber.StatusBadRequest, "unsupported content type: "+contentType)
	}

	f, err := fileHeader.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not read audio file")
	}
	defer f.Close()
	audio, err := io.ReadAll(io.LimitReader(f, MaxAudioBytes+1))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not read audio file")
	}
	if len(audio) > MaxAudioBytes {
		return fiber.NewError(fiber.StatusBadRequest, "audio file exceeds 10MB limit")
	}

	text, err := tc.STT.Transcribe(c.Context(), fileHeader.Filename, audio)
	if err != nil {
		middlewares.RecordTranscription("error")
		middlewares.RecordIntegrationError("speech_to_text")
		return err
	}
	middlewares.RecordTranscription("ok")

	draft := extract.FromTranscript(text)

	// Usage record is best-effort; a logging failure must not fail the request.
	details, _ := json.Marshal(fiber.Map{"filename": fileHeader.Filename, "bytes": len(audio)})
	usage := models.UsageLog{
		WorkspaceId:           workspaceID,
		UserId:                userID,
		Kind:                  models.UsageTranscription,
		TranscriptChars:       len(text),
		ExtractedNameAndPhone: draft.Name != "" && draft.Phone != "",
		Details:               datatypes.JSON(details),
	}
	if err := database.DB.Create(&usage).Error; err != nil {
		log.Printf("usage log write failed: %v", err)
	}

	return c.JSON(fiber.Map{
		"transcription": text,
		"contactData":   draft,
		"success":       true,
	})
}
