package objectstorage

import (
	"testing"

	"github.com/oracle/oci-go-sdk/v65/objectstorage/transfer"
	"github.com/stretchr/testify/assert"

	"github.com/odm-project/odm/pkg/logging"
)

func testClient(config *Config) *Client {
	return &Client{
		logger:    logging.Discard(),
		config:    config,
		namespace: config.Namespace,
	}
}

func TestApplyListOptions(t *testing.T) {
	options := applyListOptions()
	assert.Equal(t, DefaultListLimit, options.Limit)

	options = applyListOptions(WithLimit(25))
	assert.Equal(t, 25, options.Limit)

	options = applyListOptions(WithLimit(-1))
	assert.Equal(t, DefaultListLimit, options.Limit)
}

func TestApplyUploadOptionsDefaults(t *testing.T) {
	c := testClient(&Config{})

	settings := c.applyUploadOptions()
	assert.Equal(t, DefaultUploadThresholdInMB, settings.ThresholdInMB)
	assert.Equal(t, DefaultUploadPartSizeInMB, settings.PartSizeInMB)
	assert.Equal(t, DefaultUploadThreads, settings.Threads)
}

func TestApplyUploadOptionsOverrides(t *testing.T) {
	c := testClient(&Config{
		Upload: UploadSettings{ThresholdInMB: 64, PartSizeInMB: 20, Threads: 2},
	})

	settings := c.applyUploadOptions()
	assert.Equal(t, 64, settings.ThresholdInMB)

	settings = c.applyUploadOptions(WithUploadThreshold(32), WithPartSize(5), WithUploadThreads(7))
	assert.Equal(t, 32, settings.ThresholdInMB)
	assert.Equal(t, 5, settings.PartSizeInMB)
	assert.Equal(t, 7, settings.Threads)
}

func TestApplyDownloadOptionsDefaults(t *testing.T) {
	c := testClient(&Config{})

	options := c.applyDownloadOptions()
	assert.Equal(t, DefaultDownloadThresholdInMB, options.ThresholdInMB)
	assert.Equal(t, DefaultDownloadChunkSizeInMB, options.ChunkSizeInMB)
	assert.Equal(t, DefaultDownloadThreads, options.Threads)
	assert.Equal(t, options.Threads, options.Concurrency)
	assert.False(t, options.ForceStandard)
	assert.False(t, options.ForceMultipart)
}

func TestApplyDownloadOptionsOverrides(t *testing.T) {
	c := testClient(&Config{})

	options := c.applyDownloadOptions(
		WithDownloadThreshold(10),
		WithChunkSize(2),
		WithDownloadThreads(4),
		WithForceMultipart(true),
		WithSkipIfValid(true),
		WithConcurrency(3),
	)
	assert.Equal(t, 10, options.ThresholdInMB)
	assert.Equal(t, 2, options.ChunkSizeInMB)
	assert.Equal(t, 4, options.Threads)
	assert.True(t, options.ForceMultipart)
	assert.True(t, options.SkipIfValid)
	assert.Equal(t, 3, options.Concurrency)
}

func TestResolveBucketDefaulting(t *testing.T) {
	c := testClient(&Config{Namespace: "ns", Bucket: "default-bucket"})

	uri, err := c.resolve(ObjectURI{ObjectName: "data.csv"})
	assert.NoError(t, err)
	assert.Equal(t, "default-bucket", uri.BucketName)
	assert.Equal(t, "ns", uri.Namespace)

	uri, err = c.resolve(ObjectURI{BucketName: "explicit", ObjectName: "data.csv"})
	assert.NoError(t, err)
	assert.Equal(t, "explicit", uri.BucketName)
}

func TestResolveNoBucket(t *testing.T) {
	c := testClient(&Config{Namespace: "ns"})

	_, err := c.resolve(ObjectURI{ObjectName: "data.csv"})
	assert.Error(t, err)
}

func TestIsMultipartMd5(t *testing.T) {
	assert.True(t, isMultipartMd5("q1w2e3r4t5y6u7i8o9p0==-7"))
	assert.False(t, isMultipartMd5("q1w2e3r4t5y6u7i8o9p0=="))
	assert.False(t, isMultipartMd5("abc-def"))
	assert.False(t, isMultipartMd5("a-b-c"))
}

func TestIsResumableUpload(t *testing.T) {
	assert.False(t, isResumableUpload(transfer.UploadResponse{}))
	assert.False(t, isResumableUpload(transfer.UploadResponse{Type: transfer.SinglepartUpload}))
	assert.False(t, isResumableUpload(transfer.UploadResponse{Type: transfer.MultipartUpload}))
}
