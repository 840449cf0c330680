package services

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockS3Service_DownloadObject(t *testing.T) {
	mock := NewMockS3Service()
	mock.PutObject("datasets/pos_export.csv", []byte("order_id,order_date\n"))

	body, err := mock.DownloadObject("datasets/pos_export.csv")
	require.NoError(t, err)
	defer body.Close()

	content, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "order_id,order_date\n", string(content))
}

func TestMockS3Service_DownloadMissingObject(t *testing.T) {
	mock := NewMockS3Service()

	body, err := mock.DownloadObject("datasets/missing.csv")

	assert.Nil(t, body)
	assert.Error(t, err)
}

func TestMockS3Service_ObjectURL(t *testing.T) {
	mock := NewMockS3Service()

	assert.Equal(t, "s3://test-bucket/datasets/pos_export.csv", mock.ObjectURL("datasets/pos_export.csv"))
}

func TestSetAsMockForTesting(t *testing.T) {
	original := GetS3Service()
	defer SetS3Service(original)

	mock := NewMockS3Service()
	mock.SetAsMockForTesting()

	assert.Equal(t, S3Interface(mock), GetS3Service())
}
