package objectstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigured(t *testing.T) {
	assert.False(t, Config{}.Configured())
	assert.False(t, Config{Bucket: "b", AccessKeyID: "k"}.Configured())
	assert.True(t, Config{Bucket: "b", AccessKeyID: "k", SecretAccessKey: "s"}.Configured())
}

func TestPresignEndpoint(t *testing.T) {
	t.Run("public endpoint wins", func(t *testing.T) {
		c := Config{Endpoint: "http://minio:9000", PublicEndpoint: "https://files.example.com"}
		assert.Equal(t, "https://files.example.com", c.presignEndpoint())
	})

	t.Run("falls back to the internal endpoint", func(t *testing.T) {
		c := Config{Endpoint: "http://minio:9000"}
		assert.Equal(t, "http://minio:9000", c.presignEndpoint())
	})

	t.Run("empty means the provider default", func(t *testing.T) {
		assert.Equal(t, "", Config{}.presignEndpoint())
	})
}
