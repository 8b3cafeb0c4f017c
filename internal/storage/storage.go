// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package storage persists uploaded featured images. When S3-compatible
// object storage is configured the file goes there and a public URL comes
// back; otherwise the file lands in a local uploads directory served at
// /uploads (the legacy path older posts still link to).
package storage

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// Client stores uploads either in an S3 bucket or on local disk.
type Client struct {
	s3        *s3.Client
	bucket    string
	endpoint  string
	publicURL string // optional CDN/direct URL for bucket files
	uploadDir string // local fallback
}

// NewS3 creates a storage client backed by S3-compatible object storage
// with path-style addressing. Returns (nil, nil) if endpoint or
// credentials are empty, allowing the app to start without it.
func NewS3(endpoint, region, accessKey, secretKey, bucket, publicURL string) (*Client, error) {
	if endpoint == "" || accessKey == "" || secretKey == "" {
		return nil, nil
	}

	endpoint = strings.TrimRight(endpoint, "/")

	client := s3.New(s3.Options{
		Region:       region,
		BaseEndpoint: aws.String(endpoint),
		Credentials:  credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		UsePathStyle: true,
	})

	return &Client{
		s3:        client,
		bucket:    bucket,
		endpoint:  endpoint,
		publicURL: strings.TrimRight(publicURL, "/"),
	}, nil
}

// NewLocal creates a storage client that writes under dir, served at /uploads.
func NewLocal(dir string) (*Client, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Client{uploadDir: dir}, nil
}

// Store saves an uploaded file under a derived unique name and returns the
// URL to reference it by. originalName is the client-supplied filename.
func (c *Client) Store(ctx context.Context, originalName string, body io.Reader, size int64) (string, error) {
	key := deriveKey(originalName)

	if c.s3 != nil {
		contentType := mime.TypeByExtension(filepath.Ext(key))
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
			Bucket:        aws.String(c.bucket),
			Key:           aws.String(key),
			Body:          body,
			ContentLength: aws.Int64(size),
			ContentType:   aws.String(contentType),
			ACL:           s3types.ObjectCannedACLPublicRead,
		})
		if err != nil {
			return "", fmt.Errorf("s3 upload %s: %w", key, err)
		}
		return c.fileURL(key), nil
	}

	dst, err := os.Create(filepath.Join(c.uploadDir, key))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()
	if _, err := io.Copy(dst, body); err != nil {
		return "", fmt.Errorf("write upload file: %w", err)
	}
	return "/uploads/" + key, nil
}

// Delete removes a previously stored object. Local files are left in
// place — they may still be linked from old content.
func (c *Client) Delete(ctx context.Context, key string) error {
	if c.s3 == nil {
		return nil
	}
	_, err := c.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("s3 delete %s: %w", key, err)
	}
	return nil
}

// fileURL returns the public URL for a bucket object, preferring the
// configured CDN URL over path-style bucket access.
func (c *Client) fileURL(key string) string {
	if c.publicURL != "" {
		return c.publicURL + "/" + key
	}
	return fmt.Sprintf("%s/%s/%s", c.endpoint, c.bucket, key)
}

// deriveKey builds a unique object key from an uploaded filename:
// "My Photo.JPG" → "post-my-photo-1700000000000-123456789.jpg".
func deriveKey(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	base := strings.TrimSuffix(filepath.Base(originalName), filepath.Ext(originalName))
	base = strings.ToLower(strings.Join(strings.Fields(base), "-"))
	if base == "" {
		base = "upload"
	}
	unique := fmt.Sprintf("%d-%d", time.Now().UnixMilli(), rand.Intn(1_000_000_000))
	return fmt.Sprintf("post-%s-%s%s", base, unique, ext)
}
