package objectstorage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/oracle/oci-go-sdk/v65/common"
	"github.com/oracle/oci-go-sdk/v65/objectstorage"
	"github.com/oracle/oci-go-sdk/v65/objectstorage/transfer"
)

const (
	// DefaultUploadThresholdInMB is the file size at or above which
	// UploadFile switches to multipart upload.
	DefaultUploadThresholdInMB = 128

	// DefaultUploadPartSizeInMB is the multipart part size.
	DefaultUploadPartSizeInMB = 10

	// DefaultUploadThreads is the number of goroutines uploading parts.
	DefaultUploadThreads = 3
)

// UploadOption is a functional override for a single UploadFile call.
type UploadOption func(*UploadSettings)

// WithUploadThreshold sets the multipart threshold in MB.
func WithUploadThreshold(thresholdInMB int) UploadOption {
	return func(s *UploadSettings) {
		s.ThresholdInMB = thresholdInMB
	}
}

// WithPartSize sets the multipart part size in MB.
func WithPartSize(partSizeInMB int) UploadOption {
	return func(s *UploadSettings) {
		s.PartSizeInMB = partSizeInMB
	}
}

// WithUploadThreads sets the number of goroutines uploading parts.
func WithUploadThreads(threads int) UploadOption {
	return func(s *UploadSettings) {
		s.Threads = threads
	}
}

func (c *Client) applyUploadOptions(opts ...UploadOption) UploadSettings {
	settings := c.config.Upload
	for _, opt := range opts {
		if opt != nil {
			opt(&settings)
		}
	}
	if settings.ThresholdInMB <= 0 {
		settings.ThresholdInMB = DefaultUploadThresholdInMB
	}
	if settings.PartSizeInMB <= 0 {
		settings.PartSizeInMB = DefaultUploadPartSizeInMB
	}
	if settings.Threads <= 0 {
		settings.Threads = DefaultUploadThreads
	}
	return settings
}

// UploadFile stores the file at localPath as uri's object. Files at or above
// the multipart threshold go through the SDK transfer manager; smaller files
// are uploaded with a single PutObject. The object name defaults to the
// file's base name when uri.ObjectName is empty.
func (c *Client) UploadFile(localPath string, uri ObjectURI, opts ...UploadOption) error {
	settings := c.applyUploadOptions(opts...)

	info, err := c.fs.Stat(localPath)
	if err != nil {
		return fmt.Errorf("failed to stat upload source %s: %w", localPath, err)
	}
	if info.IsDir() {
		return fmt.Errorf("upload source %s is a directory", localPath)
	}

	if uri.ObjectName == "" {
		uri.ObjectName = filepath.Base(localPath)
	}
	uri, err = c.resolve(uri)
	if err != nil {
		return fmt.Errorf("error uploading file: %w", err)
	}

	if info.Size() >= int64(settings.ThresholdInMB)*mb {
		c.logger.WithField("object", uri.ObjectName).
			Infof("Multipart upload of %s, size: %d", localPath, info.Size())
		return c.multipartFileUpload(localPath, uri, settings)
	}

	c.logger.WithField("object", uri.ObjectName).
		Infof("Single-shot upload of %s, size: %d", localPath, info.Size())
	return c.putFile(localPath, uri, info.Size())
}

func (c *Client) putFile(localPath string, uri ObjectURI, size int64) error {
	file, err := c.fs.Open(localPath)
	if err != nil {
		return fmt.Errorf("failed to open upload source %s: %w", localPath, err)
	}
	defer c.closeBody(uri, file)

	request := objectstorage.PutObjectRequest{
		NamespaceName:      &uri.Namespace,
		BucketName:         &uri.BucketName,
		ObjectName:         &uri.ObjectName,
		ContentLength:      &size,
		PutObjectBody:      io.NopCloser(file),
		OpcMeta:            uri.Metadata,
		OpcClientRequestId: requestID(),
	}
	if _, err := c.os.PutObject(context.Background(), request); err != nil {
		return fmt.Errorf("failed to put object %q: %w", objectFullName(uri), err)
	}
	return nil
}

func (c *Client) multipartFileUpload(localPath string, uri ObjectURI, settings UploadSettings) error {
	uploadRequest := transfer.UploadRequest{
		NamespaceName:                       common.String(uri.Namespace),
		BucketName:                          common.String(uri.BucketName),
		ObjectName:                          common.String(uri.ObjectName),
		PartSize:                            common.Int64(int64(settings.PartSizeInMB) * mb),
		NumberOfGoroutines:                  common.Int(settings.Threads),
		ObjectStorageClient:                 c.os,
		EnableMultipartChecksumVerification: common.Bool(true),
		Metadata:                            uri.Metadata,
		CallBack: func(part transfer.MultiPartUploadPart) {
			if part.Err == nil {
				c.logger.Infof("Part: %d / %d is uploaded for object %s.", part.PartNum, part.TotalParts, uri.ObjectName)
			}
		},
	}

	uploadManager := transfer.NewUploadManager()
	resp, err := uploadManager.UploadFile(context.Background(), transfer.UploadFileRequest{
		UploadRequest: uploadRequest,
		FilePath:      localPath,
	})
	// file multipart upload is resumable
	if err != nil {
		if isResumableUpload(resp) {
			if _, err = uploadManager.ResumeUploadFile(context.Background(), *resp.MultipartUploadResponse.UploadID); err != nil {
				return fmt.Errorf("failed to resume multipart upload of %q: %w", objectFullName(uri), err)
			}
			return nil
		}
		return fmt.Errorf("failed to multipart upload %q: %w", objectFullName(uri), err)
	}
	return nil
}

// isResumableUpload reports whether a failed multipart upload left server-side
// state that can be resumed. Early failures, such as the source file
// disappearing before the SDK opens it, return a zero-value response with no
// multipart state.
func isResumableUpload(resp transfer.UploadResponse) bool {
	return resp.MultipartUploadResponse != nil && resp.IsResumable()
}
