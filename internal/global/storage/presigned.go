package storage

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type PresignedUploadRequest struct {
	Filename    string
	ContentType string
	ExpiresIn   int64 // seconds, defaults to 15 minutes
}

type PresignedUploadResponse struct {
	UploadURL string            `json:"uploadUrl"`
	FileKey   string            `json:"fileKey"`
	FileURL   string            `json:"fileUrl"`
	ExpiresAt time.Time         `json:"expiresAt"`
	Method    string            `json:"method"`
	Headers   map[string]string `json:"headers"`
}

// PresignUpload generates a presigned PUT URL so the client can upload
// an image straight to the bucket.
func (s *Storage) PresignUpload(ctx context.Context, req PresignedUploadRequest) (*PresignedUploadResponse, error) {
	if req.Filename == "" {
		return nil, fmt.Errorf("filename must not be empty")
	}
	if req.ExpiresIn <= 0 {
		req.ExpiresIn = 900
	}

	// Unique object name: timestamp plus the original extension.
	ext := strings.ToLower(path.Ext(req.Filename))
	uniqueFilename := fmt.Sprintf("%d%s", time.Now().UnixNano(), ext)

	key := path.Join(strings.Trim(s.Prefix, "/"), uniqueFilename)
	key = strings.TrimLeft(key, "/")

	contentType := req.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	presignClient := s3.NewPresignClient(s.s3Client)

	presignedReq, err := presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = time.Duration(req.ExpiresIn) * time.Second
	})
	if err != nil {
		return nil, fmt.Errorf("presign upload: %w", err)
	}

	base := strings.TrimRight(s.BaseURL, "/")
	if base == "" {
		base = strings.TrimRight(s.Endpoint, "/")
	}

	var fileURL string
	if s.UsePathStyle {
		fileURL = base + "/" + s.Bucket + "/" + key
	} else {
		fileURL = base + "/" + key
	}

	resp := &PresignedUploadResponse{
		UploadURL: presignedReq.URL,
		FileKey:   key,
		FileURL:   fileURL,
		ExpiresAt: time.Now().Add(time.Duration(req.ExpiresIn) * time.Second),
		Method:    presignedReq.Method,
		Headers: map[string]string{
			"Content-Type": contentType,
		},
	}
	for k, v := range presignedReq.SignedHeader {
		if len(v) > 0 {
			resp.Headers[k] = v[0]
		}
	}
	return resp, nil
}
