// Package storage hosts activity images on S3-compatible object
// storage. Clients upload directly with presigned PUT URLs, so image
// bytes never pass through this process.
package storage

import (
	"campus-discover/config"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type Storage struct {
	Endpoint     string
	BaseURL      string
	Bucket       string
	Prefix       string
	UsePathStyle bool

	s3Client *s3.Client
}

var store *Storage

// Init builds the S3 client from config. Skipped when no bucket is
// configured; the upload endpoint then reports uploads as unavailable.
func Init() error {
	cfg := config.Get().S3
	if cfg.Bucket == "" {
		return nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretAccessKey, ""),
		),
	)
	if err != nil {
		return fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	store = &Storage{
		Endpoint:     cfg.Endpoint,
		BaseURL:      cfg.BaseURL,
		Bucket:       cfg.Bucket,
		Prefix:       cfg.Prefix,
		UsePathStyle: cfg.UsePathStyle,
		s3Client:     client,
	}
	return nil
}

// Get returns the configured storage, or nil when uploads are disabled.
func Get() *Storage {
	return store
}
