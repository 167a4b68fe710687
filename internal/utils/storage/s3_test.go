package storage

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testS3() AwsS3 {
	cfg := aws.Config{
		Region:      "eu-central-1",
		Credentials: credentials.NewStaticCredentialsProvider("AKIDEXAMPLE", "secret", ""),
	}
	return NewAwsS3FromConfig(cfg, "yummy-photos", time.Hour)
}

func TestThumbnailURLPresignsLocally(t *testing.T) {
	url, err := testS3().ThumbnailURL(context.Background(), "photos/2024/01/01/soup.jpg")
	require.NoError(t, err)
	assert.True(t, strings.Contains(url, "yummy-photos"), url)
	assert.True(t, strings.Contains(url, "photos/2024/01/01/soup.jpg"), url)
	assert.True(t, strings.Contains(url, "X-Amz-Signature="), url)
}

func TestThumbnailURLEmptyKey(t *testing.T) {
	url, err := testS3().ThumbnailURL(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, url)
}

func TestPublicLinkKeys(t *testing.T) {
	s := testS3()
	link := "https://yummy-photos.s3.eu-central-1.amazonaws.com/photos/a.jpg"
	assert.Equal(t, "photos/a.jpg", s.GetObjectKeyFromLink(link))
	assert.Equal(t, "photos/a.jpg", s.GetObjectKeyFromLink("photos/a.jpg"))

	url, err := s.ThumbnailURL(context.Background(), link)
	require.NoError(t, err)
	assert.True(t, strings.Contains(url, "X-Amz-Signature="), url)
	assert.False(t, strings.Contains(url, "amazonaws.com/https"), url)
}

func TestPublicURLThumbnails(t *testing.T) {
	f := PublicURLThumbnails("https://cdn.example.com/media/")
	url, err := f(context.Background(), "/photos/a.jpg")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/media/photos/a.jpg", url)
}
