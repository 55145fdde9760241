package controllers

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// receiptTypes maps the accepted sniffed content types to file extensions.
var receiptTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// UploadController stores payment receipt images for online-payment checkouts.
type UploadController struct {
	dir      string
	maxBytes int64
	log      *zap.Logger
}

func NewUploadController(dir string, maxBytes int64, log *zap.Logger) *UploadController {
	return &UploadController{dir: dir, maxBytes: maxBytes, log: log.Named("uploads")}
}

func (uc *UploadController) UploadReceipt() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Leave room for the multipart framing around the file itself.
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, uc.maxBytes+64<<10)

		header, err := c.FormFile("receipt")
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "receipt file is too large"})
			return
		}
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "receipt file is required"})
			return
		}
		if header.Size > uc.maxBytes {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "receipt file is too large"})
			return
		}

		file, err := header.Open()
		if err != nil {
			respondError(c, uc.log, err)
			return
		}
		head := make([]byte, 512)
		n, err := io.ReadFull(file, head)
		file.Close()
		if err != nil && err != io.ErrUnexpectedEOF {
			c.JSON(http.StatusBadRequest, gin.H{"error": "receipt file is unreadable"})
			return
		}
		ext, ok := receiptTypes[http.DetectContentType(head[:n])]
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "receipt must be a jpeg, png or webp image"})
			return
		}

		name := uuid.NewString() + ext
		if err := c.SaveUploadedFile(header, filepath.Join(uc.dir, name)); err != nil {
			respondError(c, uc.log, err)
			return
		}
		uc.log.Info("receipt uploaded", zap.String("file", name), zap.Int64("bytes", header.Size))
		c.JSON(http.StatusCreated, gin.H{"url": "/uploads/" + name})
	}
}
