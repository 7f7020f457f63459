package controllers

import (
	"net/http"

	"snaplink/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"
)

type QRCodeController struct {
	aliasService service.AliasService
	baseURL      string
}

func NewQRCodeController(aliasService service.AliasService, baseURL string) *QRCodeController {
	return &QRCodeController{
		aliasService: aliasService,
		baseURL:      baseURL,
	}
}

// GenerateQRCode handles GET /api/v1/qrcode/:shortCode - generates a QR code
// for a short link. Unknown codes 404 rather than producing a dead QR code.
func (qc *QRCodeController) GenerateQRCode(c *gin.Context) {
	shortCode := c.Param("shortCode")

	alias, err := qc.aliasService.Lookup(shortCode)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Short URL not found",
		})
		return
	}

	shortURL := qc.baseURL + "/" + alias.ShortCode

	// 256x256 pixels, medium error recovery
	pngData, err := qrcode.Encode(shortURL, qrcode.Medium, 256)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate QR code",
		})
		return
	}

	c.Header("Content-Disposition", "inline; filename=qrcode.png")
	c.Data(http.StatusOK, "image/png", pngData)
}
