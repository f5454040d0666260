package controllers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"

	"courses-api/internal/logging"
)

const qrCodeSize = 256

type QRCodeController struct {
	frontendURL string
}

func NewQRCodeController(frontendURL string) *QRCodeController {
	return &QRCodeController{
		frontendURL: strings.TrimRight(frontendURL, "/"),
	}
}

// GenerateCourseQRCode handles GET /api/courses/:id/qrcode - a PNG linking to
// the course page on the frontend
func (qc *QRCodeController) GenerateCourseQRCode(c *gin.Context) {
	id, ok := parseCourseID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Course id must be numeric",
		})
		return
	}

	courseURL := fmt.Sprintf("%s/courses/%d", qc.frontendURL, id)

	qrCode, err := qrcode.New(courseURL, qrcode.Medium)
	if err != nil {
		_ = c.Error(fmt.Errorf("failed to generate QR code: %w", err))
		return
	}

	pngData, err := qrCode.PNG(qrCodeSize)
	if err != nil {
		_ = c.Error(fmt.Errorf("failed to encode QR code: %w", err))
		return
	}

	logging.Ctx(c.Request.Context()).Debug().Int64("course_id", id).Msg("QR code generated")

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=course-%d.png", id))
	c.Data(http.StatusOK, "image/png", pngData)
}
