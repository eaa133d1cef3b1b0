package storage

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/realtyadmin/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func testStorageConfig() *config.StorageConfig {
	return &config.StorageConfig{
		Bucket:       "realty-exports",
		AccessKey:    "test-key",
		SecretKey:    "test-secret",
		Endpoint:     "http://localhost:9000",
		UsePathStyle: true,
	}
}

func TestNewS3ObjectStorage_Validation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		cfg     *config.StorageConfig
		wantErr string
	}{
		{"nil config", nil, "configuration is required"},
		{"missing bucket", &config.StorageConfig{AccessKey: "k", SecretKey: "s"}, "bucket is required"},
		{"missing access key", &config.StorageConfig{Bucket: "b", SecretKey: "s"}, "access key is required"},
		{"missing secret key", &config.StorageConfig{Bucket: "b", AccessKey: "k"}, "secret key is required"},
		{"bad endpoint", &config.StorageConfig{Bucket: "b", AccessKey: "k", SecretKey: "s", Endpoint: "http://"}, "invalid storage endpoint"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewS3ObjectStorage(ctx, tt.cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	t.Run("valid config uses defaults", func(t *testing.T) {
		s, err := NewS3ObjectStorage(ctx, testStorageConfig(), WithLogger(zaptest.NewLogger(t)))
		require.NoError(t, err)
		assert.Equal(t, "realty-exports", s.Bucket())
		assert.Equal(t, defaultPresignExpiration, s.presignExpiration)
	})

	t.Run("option overrides expiration", func(t *testing.T) {
		s, err := NewS3ObjectStorage(ctx, testStorageConfig(), WithPresignExpiration(time.Hour))
		require.NoError(t, err)
		assert.Equal(t, time.Hour, s.presignExpiration)
	})
}

func TestNormalizeEndpoint(t *testing.T) {
	got, err := normalizeEndpoint("minio:9000", false)
	require.NoError(t, err)
	assert.Equal(t, "http://minio:9000", got)

	got, err = normalizeEndpoint("s3.example.com", true)
	require.NoError(t, err)
	assert.Equal(t, "https://s3.example.com", got)

	got, err = normalizeEndpoint("", false)
	require.NoError(t, err)
	assert.Equal(t, defaultEndpoint, got)
}

func TestS3ObjectStorage_DownloadURL(t *testing.T) {
	s, err := NewS3ObjectStorage(context.Background(), testStorageConfig())
	require.NoError(t, err)

	link, expiresAt, err := s.DownloadURL(context.Background(), "exports/leave/2026/03/report.xlsx", 10*time.Minute)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(link, "http://localhost:9000/realty-exports/exports/leave/2026/03/report.xlsx"))
	assert.Contains(t, link, "X-Amz-Signature=")
	assert.Contains(t, link, "X-Amz-Expires=600")
	assert.WithinDuration(t, time.Now().Add(10*time.Minute), expiresAt, 5*time.Second)

	_, _, err = s.DownloadURL(context.Background(), "", 0)
	assert.ErrorIs(t, err, ErrEmptyKey)
}

func TestS3ObjectStorage_EmptyKey(t *testing.T) {
	s, err := NewS3ObjectStorage(context.Background(), testStorageConfig())
	require.NoError(t, err)
	ctx := context.Background()

	assert.ErrorIs(t, s.Upload(ctx, "", []byte("x"), "text/plain"), ErrEmptyKey)
	assert.ErrorIs(t, s.Delete(ctx, ""), ErrEmptyKey)
	_, err = s.Exists(ctx, "")
	assert.ErrorIs(t, err, ErrEmptyKey)
}

// Runs against a live MinIO when STORAGE_TEST_ENDPOINT is set
func TestS3ObjectStorage_Live(t *testing.T) {
	endpoint := os.Getenv("STORAGE_TEST_ENDPOINT")
	if endpoint == "" {
		t.Skip("STORAGE_TEST_ENDPOINT not set")
	}
	cfg := testStorageConfig()
	cfg.Endpoint = endpoint
	cfg.AccessKey = os.Getenv("STORAGE_TEST_ACCESS_KEY")
	cfg.SecretKey = os.Getenv("STORAGE_TEST_SECRET_KEY")

	ctx := context.Background()
	s, err := NewS3ObjectStorage(ctx, cfg)
	require.NoError(t, err)
	require.NoError(t, s.EnsureBucket(ctx))

	key := ExportKey("test", "live.txt", time.Now())
	require.NoError(t, s.Upload(ctx, key, []byte("hello"), "text/plain"))
	exists, err := s.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, s.Delete(ctx, key))
	exists, err = s.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)
}
