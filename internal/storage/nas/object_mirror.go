package nas

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

// ObjectMirror talks to the NAS through its S3-compatible gateway
// (MinIO and most NAS boxes expose one). Static credentials, custom
// endpoint and path-style addressing.
type ObjectMirror struct {
	client  *s3.Client
	bucket  string
	timeout time.Duration
}

// NewObjectMirror initializes the gateway client.
func NewObjectMirror(endpoint, accessKey, secretKey, bucket, region string, timeout time.Duration) *ObjectMirror {
	cfg := aws.Config{
		Credentials: credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		Region:      region,
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})

	log.Info().Str("endpoint", endpoint).Str("bucket", bucket).Msg("NAS mirror initialized")

	return &ObjectMirror{client: client, bucket: bucket, timeout: timeout}
}

// CreateProjectTree writes one marker object per folder; object
// storage has no real directories, but the markers make the tree
// browsable from the NAS file station.
func (m *ObjectMirror) CreateProjectTree(ctx context.Context, projectFolder string, stepFolders []string) error {
	keys := make([]string, 0, len(stepFolders)+1)
	keys = append(keys, projectFolder+"/")
	for _, f := range stepFolders {
		keys = append(keys, fmt.Sprintf("%s/%s/", projectFolder, f))
	}

	for _, key := range keys {
		if err := m.put(ctx, key, nil); err != nil {
			return fmt.Errorf("create folder %s: %w", key, err)
		}
	}

	log.Info().Str("folder", projectFolder).Int("subfolders", len(stepFolders)).Msg("created NAS project tree")
	return nil
}

func (m *ObjectMirror) Write(ctx context.Context, path string, data []byte) error {
	if err := m.put(ctx, path, data); err != nil {
		return fmt.Errorf("mirror write %s: %w", path, err)
	}
	return nil
}

func (m *ObjectMirror) Delete(ctx context.Context, path string) error {
	ctx, cancel := withTimeout(ctx, m.timeout)
	defer cancel()

	_, err := m.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(m.bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		return fmt.Errorf("mirror delete %s: %w", path, err)
	}
	return nil
}

func (m *ObjectMirror) put(ctx context.Context, key string, data []byte) error {
	ctx, cancel := withTimeout(ctx, m.timeout)
	defer cancel()

	_, err := m.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(m.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	})
	return err
}
