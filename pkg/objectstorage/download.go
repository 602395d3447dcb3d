package objectstorage

import (
	"crypto/md5"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/odm-project/odm/pkg/afero"
)

const mb = int64(1024 * 1024)

const (
	// DefaultDownloadThresholdInMB is the object size at or above which
	// DownloadFile switches to ranged multipart download.
	DefaultDownloadThresholdInMB = 100

	// DefaultDownloadChunkSizeInMB is the ranged GET size per part.
	DefaultDownloadChunkSizeInMB = 8

	// DefaultDownloadThreads is the number of goroutines fetching parts.
	DefaultDownloadThreads = 16

	maxPartRetries = 3
	maxBulkRetries = 3
	bulkRetryDelay = 2 * time.Second
)

// DownloadOptions controls DownloadFile strategy selection.
type DownloadOptions struct {
	DownloadSettings

	// ForceStandard downloads in one request regardless of object size.
	ForceStandard bool

	// ForceMultipart downloads in ranged parts regardless of object size.
	ForceMultipart bool

	// SkipIfValid skips the download when a valid local copy already exists.
	SkipIfValid bool

	// Concurrency is the number of workers used by BulkDownload. Defaults
	// to the configured download thread count.
	Concurrency int
}

// DownloadOption is a functional override for a single download call.
type DownloadOption func(*DownloadOptions)

// WithDownloadThreshold sets the multipart threshold in MB.
func WithDownloadThreshold(thresholdInMB int) DownloadOption {
	return func(o *DownloadOptions) {
		o.ThresholdInMB = thresholdInMB
	}
}

// WithChunkSize sets the ranged GET size in MB for multipart downloads.
func WithChunkSize(chunkSizeInMB int) DownloadOption {
	return func(o *DownloadOptions) {
		o.ChunkSizeInMB = chunkSizeInMB
	}
}

// WithDownloadThreads sets the number of goroutines fetching parts.
func WithDownloadThreads(threads int) DownloadOption {
	return func(o *DownloadOptions) {
		o.Threads = threads
	}
}

// WithForceStandard forces a single-request download regardless of size.
func WithForceStandard(force bool) DownloadOption {
	return func(o *DownloadOptions) {
		o.ForceStandard = force
	}
}

// WithForceMultipart forces a ranged multipart download regardless of size.
func WithForceMultipart(force bool) DownloadOption {
	return func(o *DownloadOptions) {
		o.ForceMultipart = force
	}
}

// WithSkipIfValid skips downloads for which a valid local copy exists.
func WithSkipIfValid(skip bool) DownloadOption {
	return func(o *DownloadOptions) {
		o.SkipIfValid = skip
	}
}

// WithConcurrency sets the BulkDownload worker count.
func WithConcurrency(concurrency int) DownloadOption {
	return func(o *DownloadOptions) {
		o.Concurrency = concurrency
	}
}

func (c *Client) applyDownloadOptions(opts ...DownloadOption) DownloadOptions {
	options := DownloadOptions{DownloadSettings: c.config.Download}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	if options.ThresholdInMB <= 0 {
		options.ThresholdInMB = DefaultDownloadThresholdInMB
	}
	if options.ChunkSizeInMB <= 0 {
		options.ChunkSizeInMB = DefaultDownloadChunkSizeInMB
	}
	if options.Threads <= 0 {
		options.Threads = DefaultDownloadThreads
	}
	if options.Concurrency <= 0 {
		options.Concurrency = options.Threads
	}
	return options
}

// DownloadFile fetches uri's object into localPath, creating parent
// directories as needed. Objects at or above the size threshold are
// downloaded in ranged parts by a pool of workers; smaller objects are
// streamed in one request.
func (c *Client) DownloadFile(uri ObjectURI, localPath string, opts ...DownloadOption) error {
	options := c.applyDownloadOptions(opts...)

	if options.SkipIfValid {
		valid, err := c.IsLocalCopyValid(uri, localPath)
		if err != nil {
			return fmt.Errorf("failed to check local copy of %s: %w", uri.ObjectName, err)
		}
		if valid {
			c.logger.Infof("Skipping download for %s: valid local copy exists at %s", uri.ObjectName, localPath)
			return nil
		}
	}

	head, err := c.HeadObject(uri)
	if err != nil {
		return err
	}

	if options.ForceStandard {
		return c.standardDownload(uri, localPath)
	}
	if options.ForceMultipart || head.Size >= int64(options.ThresholdInMB)*mb {
		c.logger.Infof("Multipart download of %s, size: %d", uri.ObjectName, head.Size)
		return c.multipartDownload(uri, localPath, head.Size, options)
	}

	c.logger.Infof("Standard download of %s, size: %d", uri.ObjectName, head.Size)
	return c.standardDownload(uri, localPath)
}

func (c *Client) standardDownload(uri ObjectURI, localPath string) error {
	response, err := c.getObject(uri, nil)
	if err != nil {
		return err
	}
	defer c.closeBody(uri, response.Content)

	if err := afero.EnsureParentDir(c.fs, localPath); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", localPath, err)
	}

	file, err := c.fs.Create(localPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", localPath, err)
	}

	if _, err := io.Copy(file, response.Content); err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to write object %s to %s: %w", uri.ObjectName, localPath, err)
	}
	return file.Close()
}

// downloadPart is one ranged GET of a multipart download.
type downloadPart struct {
	byteRange string
	offset    int64
	partNum   int

	body []byte
	err  error
}

func (c *Client) multipartDownload(uri ObjectURI, localPath string, objectSize int64, options DownloadOptions) error {
	partSize := int64(options.ChunkSizeInMB) * mb
	totalParts := int(objectSize / partSize)
	if objectSize%partSize != 0 {
		totalParts++
	}

	parts := make(chan *downloadPart, totalParts)
	for partNum := 0; partNum < totalParts; partNum++ {
		start := int64(partNum) * partSize
		end := start + partSize - 1
		if end > objectSize-1 {
			end = objectSize - 1
		}
		parts <- &downloadPart{
			// Range header is inclusive on both ends.
			byteRange: fmt.Sprintf("bytes=%d-%d", start, end),
			offset:    start,
			partNum:   partNum,
		}
	}
	close(parts)

	results := make(chan *downloadPart, totalParts)
	var wg sync.WaitGroup
	for i := 0; i < options.Threads; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.downloadParts(uri, parts, results)
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	if err := afero.EnsureParentDir(c.fs, localPath); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", localPath, err)
	}

	tempPath := localPath + ".temp"
	_ = c.fs.Remove(tempPath)
	tmpFile, err := c.fs.Create(tempPath)
	if err != nil {
		return fmt.Errorf("failed to create temporary file %s: %w", tempPath, err)
	}

	start := time.Now()
	for part := range results {
		if part.err != nil {
			_ = tmpFile.Close()
			_ = c.fs.Remove(tempPath)
			return fmt.Errorf("error downloading part %d of %s: %w", part.partNum, uri.ObjectName, part.err)
		}
		if _, err := tmpFile.WriteAt(part.body, part.offset); err != nil {
			_ = tmpFile.Close()
			_ = c.fs.Remove(tempPath)
			return fmt.Errorf("failed to write part %d at offset %d: %w", part.partNum, part.offset, err)
		}
		part.body = nil
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file %s: %w", tempPath, err)
	}
	if err := c.fs.Rename(tempPath, localPath); err != nil {
		_ = c.fs.Remove(tempPath)
		return fmt.Errorf("failed to rename %s to %s: %w", tempPath, localPath, err)
	}

	duration := time.Since(start)
	c.logger.Infof("[%s] Multipart download completed in %.2fs (%.2f MB/s)",
		uri.ObjectName, duration.Seconds(), float64(objectSize)/1024.0/1024.0/duration.Seconds())
	return nil
}

// downloadParts fetches ranged parts until the channel drains, retrying each
// part up to maxPartRetries times.
func (c *Client) downloadParts(uri ObjectURI, parts <-chan *downloadPart, results chan<- *downloadPart) {
	for part := range parts {
		var lastErr error
		for attempt := 1; attempt <= maxPartRetries; attempt++ {
			response, err := c.getObject(uri, &part.byteRange)
			if err != nil {
				c.logger.Warnf("Error getting part %d of %s (attempt %d/%d): %v",
					part.partNum, uri.ObjectName, attempt, maxPartRetries, err)
				lastErr = err
				continue
			}

			body, err := io.ReadAll(response.Content)
			c.closeBody(uri, response.Content)
			if err != nil {
				c.logger.Warnf("Error reading part %d of %s (attempt %d/%d): %v",
					part.partNum, uri.ObjectName, attempt, maxPartRetries, err)
				lastErr = err
				continue
			}

			part.body = body
			lastErr = nil
			break
		}
		part.err = lastErr
		results <- part
	}
}

// BulkDownload fetches every object in uris into targetDir using a worker
// pool, retrying failed objects and aggregating the remaining failures.
func (c *Client) BulkDownload(uris []ObjectURI, targetDir string, opts ...DownloadOption) error {
	if len(uris) == 0 {
		return nil
	}
	options := c.applyDownloadOptions(opts...)

	jobs := make(chan ObjectURI, len(uris))
	for _, uri := range uris {
		jobs <- uri
	}
	close(jobs)

	var (
		mu     sync.Mutex
		merged *multierror.Error
		wg     sync.WaitGroup
	)

	for i := 0; i < options.Concurrency; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for uri := range jobs {
				localPath := filepath.Join(targetDir, uri.ObjectName)

				var err error
				for attempt := 1; attempt <= maxBulkRetries; attempt++ {
					err = c.DownloadFile(uri, localPath, opts...)
					if err == nil {
						c.logger.Infof("[Worker %d] Downloaded %s", workerID, uri.ObjectName)
						break
					}
					c.logger.Warnf("[Worker %d] Retry %d for %s after error: %v", workerID, attempt, uri.ObjectName, err)
					time.Sleep(bulkRetryDelay)
				}
				if err != nil {
					mu.Lock()
					merged = multierror.Append(merged, fmt.Errorf("failed to download %s: %w", uri.ObjectName, err))
					mu.Unlock()
				}
			}
		}(i)
	}
	wg.Wait()

	return merged.ErrorOrNil()
}

// IsLocalCopyValid reports whether the file at localPath matches uri's
// object in size and MD5. Multipart-uploaded objects carry a synthetic
// "<md5>-<parts>" checksum; for those the opc-meta md5 entry is used when
// present, otherwise the size check alone decides.
func (c *Client) IsLocalCopyValid(uri ObjectURI, localPath string) (bool, error) {
	info, err := c.fs.Stat(localPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	head, err := c.headObject(uri)
	if err != nil {
		return false, fmt.Errorf("failed to get object metadata: %w", err)
	}

	if head.ContentLength != nil && info.Size() != *head.ContentLength {
		c.logger.Warnf("File size mismatch for %s: expected %d, got %d",
			localPath, *head.ContentLength, info.Size())
		return false, nil
	}

	objectMd5 := head.ContentMd5
	if objectMd5 == nil && head.OpcMultipartMd5 != nil && isMultipartMd5(*head.OpcMultipartMd5) {
		if realMd5, ok := head.OpcMeta["md5"]; ok && realMd5 != "" {
			objectMd5 = &realMd5
		} else {
			c.logger.Warnf("No MD5 in metadata for multipart object %s; skipping integrity check", uri.ObjectName)
			return true, nil
		}
	}
	if objectMd5 == nil {
		return true, nil
	}

	localMd5, err := c.fileMd5(localPath)
	if err != nil {
		return false, err
	}
	if *objectMd5 == localMd5 {
		return true, nil
	}

	c.logger.Warnf("MD5 mismatch for %s: expected %s, got %s", localPath, *objectMd5, localMd5)
	return false, nil
}

func (c *Client) fileMd5(localPath string) (string, error) {
	file, err := c.fs.Open(localPath)
	if err != nil {
		return "", err
	}
	defer func() {
		if err := file.Close(); err != nil {
			c.logger.Warnf("Failed to close file %s: %v", localPath, err)
		}
	}()

	hash := md5.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(hash.Sum(nil)), nil
}

// isMultipartMd5 reports whether md5 looks like a multipart upload checksum
// of the form "<base64md5>-<part count>".
func isMultipartMd5(md5 string) bool {
	parts := strings.Split(md5, "-")
	if len(parts) != 2 {
		return false
	}
	_, err := strconv.Atoi(parts[1])
	return err == nil
}
