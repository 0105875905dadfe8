// Package controller contain code shared by every feature controller
package controller

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"GradLinkUp-backend/internal/logging"
	"GradLinkUp-backend/internal/utilities"
)

// MaxUploadSize is the largest file accepted by upload endpoints
const MaxUploadSize = 10 << 20

// Allowed upload extensions
var (
	ResumeExtensions = []string{".pdf", ".doc", ".docx"}
	ImageExtensions  = []string{".jpg", ".jpeg", ".png"}
)

// Upload is a file read from a multipart form
type Upload struct {
	Filename string
	// Ext is the filename's extension as given, with leading dot
	Ext  string
	Data []byte
}

// ReadUpload read multipart field and check its extension against allowed.
// On failure error response is already written and ok is false.
func ReadUpload(c *gin.Context, field string, allowed []string) (upload Upload, ok bool) {
	rawFile, err := c.FormFile(field)
	var maxBytesError *http.MaxBytesError
	if errors.As(err, &maxBytesError) {
		c.JSON(http.StatusRequestEntityTooLarge, utilities.ErrorResponse{
			Error: err.Error(),
		})
		return upload, false
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve file: %s", err.Error()),
		})
		return upload, false
	}

	if rawFile.Size > MaxUploadSize {
		c.JSON(http.StatusRequestEntityTooLarge, utilities.ErrorResponse{
			Error: fmt.Sprintf("File size %d exceed %d bytes", rawFile.Size, MaxUploadSize),
		})
		return upload, false
	}

	extension := filepath.Ext(rawFile.Filename)
	if !utilities.ContainsFold(allowed, extension) {
		c.JSON(http.StatusUnsupportedMediaType, utilities.ErrorResponse{
			Error: fmt.Sprintf("Unsupported file extension: %s", extension),
		})
		return upload, false
	}

	f, err := rawFile.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Cannot open file"})
		return upload, false
	}
	defer func() {
		if err := f.Close(); err != nil {
			logging.Log.WithError(err).Warn("Failed to close uploaded file")
		}
	}()

	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Cannot read file"})
		return upload, false
	}

	return Upload{Filename: rawFile.Filename, Ext: extension, Data: data}, true
}
