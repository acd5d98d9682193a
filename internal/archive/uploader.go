package archive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"go.uber.org/zap"

	"github.com/draftly-hq/draftly"
)

// S3Uploader keeps a copy of every exported PDF in an S3 (or S3-compatible)
// bucket. Uploads are fire-and-forget from the caller's point of view.
type S3Uploader struct {
	cfg      draftly.ArchiveConfig
	client   *s3.Client
	uploader *manager.Uploader
}

// NewS3Uploader builds the client from the default AWS credential chain,
// overridden by explicit env credentials and the configured endpoint. A
// non-empty Endpoint switches to path-style addressing for MinIO and
// similar servers.
func NewS3Uploader(ctx context.Context, cfg draftly.ArchiveConfig) (*S3Uploader, error) {
	loadOpts := []func(*config.LoadOptions) error{}
	if cfg.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(cfg.Region))
	}
	if envKey := os.Getenv("AWS_ACCESS_KEY_ID"); envKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(envKey, os.Getenv("AWS_SECRET_ACCESS_KEY"), "")))
	}
	if cfg.Endpoint != "" {
		loadOpts = append(loadOpts, config.WithBaseEndpoint(cfg.Endpoint))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.UsePathStyle = true
		}
	})

	return &S3Uploader{
		cfg:      cfg,
		client:   client,
		uploader: manager.NewUploader(client),
	}, nil
}

// EnsureBucket creates the configured bucket when it does not exist yet.
// Meant for dev and test setups against MinIO-style servers; production
// buckets are provisioned out of band.
func (u *S3Uploader) EnsureBucket(ctx context.Context) error {
	if _, err := u.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(u.cfg.Bucket)}); err == nil {
		return nil
	}
	if _, err := u.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(u.cfg.Bucket)}); err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			code := apiErr.ErrorCode()
			if code == "BucketAlreadyOwnedByYou" || code == "BucketAlreadyExists" {
				return nil
			}
		}
		return fmt.Errorf("create bucket %s: %w", u.cfg.Bucket, err)
	}
	return nil
}

func (u *S3Uploader) objectKey(filename string) string {
	prefix := strings.TrimSuffix(u.cfg.KeyPrefix, "/")
	if prefix == "" {
		return filename
	}
	return prefix + "/" + filename
}

// Store uploads one exported document. Transient S3 errors are reported to
// the caller with their API error code so the service can log them.
func (u *S3Uploader) Store(ctx context.Context, filename string, data []byte) error {
	if u.cfg.UploadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, u.cfg.UploadTimeout)
		defer cancel()
	}

	key := u.objectKey(filename)
	_, err := u.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.cfg.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/pdf"),
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			return fmt.Errorf("s3 upload %s: %s: %w", key, apiErr.ErrorCode(), err)
		}
		return fmt.Errorf("s3 upload %s: %w", key, err)
	}

	zap.S().Debugw("archived exported document", "bucket", u.cfg.Bucket, "key", key, "bytes", len(data))
	return nil
}

// HealthCheck pings the configured custom endpoint. It is intentionally
// lightweight and non-authoritative: auth errors still prove DNS and TLS
// work, which is what a startup probe needs.
func (u *S3Uploader) HealthCheck(ctx context.Context, timeout time.Duration) error {
	if u.cfg.Endpoint == "" {
		return nil
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodHead, u.cfg.Endpoint, nil)
	if err != nil {
		return fmt.Errorf("archive health request build failed: %w", err)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("archive health request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 400 {
		return nil
	}
	if resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("archive endpoint reachable but returned auth error: %d", resp.StatusCode)
	}
	return fmt.Errorf("archive endpoint returned unexpected status: %d", resp.StatusCode)
}
