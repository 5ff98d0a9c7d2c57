package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wellmap/db"
	"wellmap/extract"
	"wellmap/model"
	"wellmap/storage"
)

// PDFs is the optional object store for well file PDFs, set by main when
// MinIO is configured.
var PDFs *storage.PDFStore

// WellPDF serves GET /api/wells/:api/pdf by redirecting to a presigned
// object-store URL for the source well file.
func WellPDF(c *gin.Context) {
	if PDFs == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "pdf storage is not configured"})
		return
	}

	api := model.CanonicalAPI(c.Param("api"))
	var well model.Well
	if err := db.DB.First(&well, "api_number = ?", api).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "well not found: " + api})
		return
	}
	if well.PDFFilename == "" || well.PDFFilename == "N/A" {
		c.JSON(http.StatusNotFound, gin.H{"error": "no well file on record"})
		return
	}

	url, err := PDFs.PresignedURL(c.Request.Context(), well.PDFFilename)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to presign well file"})
		return
	}
	c.Redirect(http.StatusFound, url)
}

// ImportExtracted serves POST /api/admin/import: re-runs the extraction
// import over the configured directory.
func ImportExtracted(c *gin.Context) {
	dir := c.DefaultQuery("dir", db.GetEnvOrDefault("EXTRACTED_DIR", "extracted_data"))

	stats, err := extract.ImportDir(db.DB, dir)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"wells":       stats.Wells,
		"stimulation": stats.Stimulations,
		"files":       stats.Files,
	})
}
