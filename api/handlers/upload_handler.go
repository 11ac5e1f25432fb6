package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/2Lynk/DeathLogger-server/api/apierr"
	"github.com/2Lynk/DeathLogger-server/internal/intake"
	"github.com/2Lynk/DeathLogger-server/internal/models"
	"github.com/2Lynk/DeathLogger-server/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// UploadHandler handles death report uploads from the addon
type UploadHandler struct {
	service  service.Service
	intake   *intake.Intake
	log      *logrus.Logger
	maxBytes int64
}

// NewUploadHandler creates a new UploadHandler instance
func NewUploadHandler(svc service.Service, in *intake.Intake, log *logrus.Logger, maxBytes int64) *UploadHandler {
	return &UploadHandler{
		service:  svc,
		intake:   in,
		log:      log,
		maxBytes: maxBytes,
	}
}

// UploadDeath handles a multipart death report: a required "death" JSON
// field plus an optional "screenshot" file.
func (h *UploadHandler) UploadDeath(c *gin.Context) {
	// MaxBytesReader enforces the configured upload cap; the form parser's
	// own argument only tunes its in-memory buffering.
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes)
	if err := c.Request.ParseMultipartForm(h.maxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.log.WithField("limit_bytes", h.maxBytes).Warn("Rejected oversized upload")
			apierr.Respond(c, h.log, apierr.ErrPayloadTooLarge)
			return
		}
		h.log.WithError(err).Warn("Failed to parse multipart form")
		apierr.Respond(c, h.log, apierr.NewBadRequest("Failed to parse form data"))
		return
	}

	deathField := c.PostForm("death")
	if deathField == "" {
		apierr.Respond(c, h.log, apierr.NewBadRequest("Death payload is required"))
		return
	}

	var payload models.DeathPayload
	if err := json.Unmarshal([]byte(deathField), &payload); err != nil {
		h.log.WithError(err).Warn("Failed to parse death payload")
		apierr.Respond(c, h.log, apierr.NewBadRequest("Invalid death payload"))
		return
	}

	// Run image intake before anything is persisted so an unsupported
	// upload rejects the whole request.
	screenshotURL := ""
	file, header, err := c.Request.FormFile("screenshot")
	switch err {
	case nil:
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			h.log.WithError(err).Error("Failed to read screenshot upload")
			apierr.Respond(c, h.log, apierr.ErrInternalServer)
			return
		}
		screenshotURL, err = h.intake.Store(data, header.Header.Get("Content-Type"), header.Filename)
		if err != nil {
			if errors.Is(err, intake.ErrUnsupportedType) {
				h.log.WithFields(logrus.Fields{
					"filename":     header.Filename,
					"content_type": header.Header.Get("Content-Type"),
				}).Warn("Rejected screenshot upload")
				apierr.Respond(c, h.log, apierr.ErrUnsupportedMedia)
				return
			}
			h.log.WithError(err).Error("Failed to store screenshot")
			apierr.Respond(c, h.log, apierr.ErrInternalServer)
			return
		}
	case http.ErrMissingFile:
		// No screenshot attached
	default:
		h.log.WithError(err).Warn("Failed to read screenshot field")
		apierr.Respond(c, h.log, apierr.NewBadRequest("Invalid screenshot field"))
		return
	}

	record, err := h.service.ReportDeath(&payload, screenshotURL)
	if err != nil {
		h.log.WithError(err).Error("Failed to record death")
		apierr.Respond(c, h.log, apierr.ErrInternalServer)
		return
	}

	var screenshot any
	if record.Screenshot != "" {
		screenshot = record.Screenshot
	}
	c.JSON(http.StatusCreated, gin.H{
		"ok":         true,
		"id":         record.ID,
		"screenshot": screenshot,
	})
}
