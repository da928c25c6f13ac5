package handler

import (
	"io"

	"github.com/bitfantasy/parttrack/internal/service"
	"github.com/gin-gonic/gin"
)

// AttachmentHandler part attachment endpoints
type AttachmentHandler struct {
	svc *service.AttachmentService
}

func NewAttachmentHandler(svc *service.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{svc: svc}
}

// List lists a part's attachments.
func (h *AttachmentHandler) List(c *gin.Context) {
	attachments, err := h.svc.ListFor(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, attachments)
}

// Upload attaches an uploaded file to a part.
func (h *AttachmentHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		BadRequest(c, "File is required: "+err.Error())
		return
	}
	defer file.Close()

	attachment, err := h.svc.Upload(
		c.Request.Context(),
		c.Param("id"),
		GetUserID(c),
		file,
		header.Filename,
		header.Size,
		header.Header.Get("Content-Type"),
		c.PostForm("comment"),
	)
	if err != nil {
		RespondError(c, err)
		return
	}
	Created(c, attachment)
}

// Download streams an attachment's file.
func (h *AttachmentHandler) Download(c *gin.Context) {
	object, attachment, err := h.svc.Download(c.Request.Context(), c.Param("attachmentId"))
	if err != nil {
		RespondError(c, err)
		return
	}
	defer object.Close()

	contentType := attachment.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	c.Header("Content-Disposition", "attachment; filename=\""+attachment.FileName+"\"")
	c.Header("Content-Type", contentType)
	if _, err := io.Copy(c.Writer, object); err != nil {
		InternalError(c, "stream file: "+err.Error())
	}
}

// Delete removes an attachment record.
func (h *AttachmentHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("attachmentId")); err != nil {
		RespondError(c, err)
		return
	}
	Success(c, nil)
}
