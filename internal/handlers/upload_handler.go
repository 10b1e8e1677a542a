// safemap/internal/handlers/upload_handler.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/waseok/safemap/internal/storage"
)

// Store is the object store the upload endpoint writes to. main wires
// the OSS implementation; tests inject a fake.
var Store storage.ObjectStore

// maxUploadSize caps uploaded media at 10 MB.
const maxUploadSize = 10 << 20

// UploadFileHandler accepts one multipart file, stores it under the
// safety-pins prefix and returns the public URL.
func UploadFileHandler(c *gin.Context) {
	if Store == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "object storage is not configured"})
		return
	}

	// Half a KB of slack for the multipart framing around the file.
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize+512)

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is missing or exceeds the 10 MB limit"})
		return
	}
	if file.Size > maxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is missing or exceeds the 10 MB limit"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read uploaded file"})
		return
	}
	defer src.Close()

	key := storage.ObjectKey(file.Filename)
	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url, err := Store.Put(c.Request.Context(), key, src, contentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"url":  url,
		"name": file.Filename,
		"size": file.Size,
	})
}
