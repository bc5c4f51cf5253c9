package upload

import (
	"campus-discover/internal/global/response"
	"campus-discover/internal/global/storage"
	"campus-discover/internal/global/validate"
	"net/http"

	"github.com/gin-gonic/gin"
)

type PresignReq struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"contentType"`
}

// Presign hands out a short-lived PUT URL so the client can upload an
// activity image straight to the bucket.
func Presign(c *gin.Context) {
	var req PresignReq
	if err := validate.BindJSON(c, &req); err != nil {
		response.Fail(c, err)
		return
	}

	store := storage.Get()
	if store == nil {
		response.Fail(c, response.New(http.StatusInternalServerError, "Image storage is not configured"))
		return
	}

	presigned, err := store.PresignUpload(c.Request.Context(), storage.PresignedUploadRequest{
		Filename:    req.Filename,
		ContentType: req.ContentType,
	})
	if err != nil {
		response.Fail(c, response.ErrInternal.WithOrigin(err))
		return
	}

	log.Info("presigned upload issued", "file_key", presigned.FileKey)

	c.JSON(http.StatusOK, gin.H{"upload": presigned})
}
