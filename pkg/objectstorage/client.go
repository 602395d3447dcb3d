// Package objectstorage wraps the OCI Object Storage SDK behind a client
// that speaks bytes, local files, and gota dataframes. Upload and download
// switch between single-shot and multipart transfers based on size.
package objectstorage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oracle/oci-go-sdk/v65/common"
	"github.com/oracle/oci-go-sdk/v65/objectstorage"

	"github.com/odm-project/odm/pkg/afero"
	"github.com/odm-project/odm/pkg/logging"
	"github.com/odm-project/odm/pkg/principals"
)

// DefaultListLimit caps how many objects a listing returns unless overridden
// with WithLimit.
const DefaultListLimit = 1000

const listFields = "name,size,etag,md5,timeModified"

// Client performs object storage operations against a single OCI tenancy.
// It is stateless beyond the underlying SDK client and a cached namespace.
type Client struct {
	logger logging.Interface
	config *Config
	os     *objectstorage.ObjectStorageClient
	fs     afero.Fs

	mu        sync.Mutex
	namespace string
}

// NewClient validates the config, builds the configured principal, and
// initializes the underlying SDK client.
func NewClient(config *Config) (*Client, error) {
	if config == nil {
		return nil, fmt.Errorf("object storage config is nil")
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("object storage config is invalid: %w", err)
	}

	provider, err := config.Auth.Build(principals.Opts{Log: config.AnotherLogger})
	if err != nil {
		return nil, fmt.Errorf("failed to build configuration provider: %w", err)
	}

	sdkClient, err := newObjectStorageClient(provider, config)
	if err != nil {
		return nil, err
	}

	logger := config.AnotherLogger
	if logger == nil {
		logger = logging.Discard()
	}

	return &Client{
		logger:    logger,
		config:    config,
		os:        sdkClient,
		fs:        afero.NewOsFs(),
		namespace: config.Namespace,
	}, nil
}

func newObjectStorageClient(provider common.ConfigurationProvider, config *Config) (*objectstorage.ObjectStorageClient, error) {
	common.EnableInstanceMetadataServiceLookup()

	var client objectstorage.ObjectStorageClient
	var err error
	if config.EnableOboToken {
		if config.OboToken == "" {
			return nil, fmt.Errorf("failed to get object storage client: oboToken is empty")
		}
		client, err = objectstorage.NewObjectStorageClientWithOboToken(provider, config.OboToken)
	} else {
		client, err = objectstorage.NewObjectStorageClientWithConfigurationProvider(provider)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create ObjectStorageClient: %w", err)
	}

	client.BaseClient.HTTPClient = &http.Client{
		Timeout: 20 * time.Minute,
		Transport: &http.Transport{
			MaxIdleConns:        200,
			MaxIdleConnsPerHost: 200,
			MaxConnsPerHost:     200,
		},
	}

	if strings.TrimSpace(config.Region) != "" {
		client.SetRegion(config.Region)
	}

	return &client, nil
}

// Namespace returns the object storage namespace, fetching it from the
// service on first use when not configured.
func (c *Client) Namespace() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.namespace != "" {
		return c.namespace, nil
	}

	response, err := c.os.GetNamespace(context.Background(), objectstorage.GetNamespaceRequest{
		CompartmentId:      c.config.CompartmentId,
		OpcClientRequestId: requestID(),
	})
	if err != nil {
		return "", fmt.Errorf("error getting object storage namespace: %w", err)
	}

	c.namespace = *response.Value
	return c.namespace, nil
}

// ListOptions controls listing behavior.
type ListOptions struct {
	// Limit caps the total number of summaries returned across pages.
	Limit int
}

// ListOption is a functional override for ListOptions.
type ListOption func(*ListOptions)

// WithLimit caps the number of objects returned by a listing.
func WithLimit(limit int) ListOption {
	return func(o *ListOptions) {
		o.Limit = limit
	}
}

func applyListOptions(opts ...ListOption) ListOptions {
	options := ListOptions{Limit: DefaultListLimit}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	if options.Limit <= 0 {
		options.Limit = DefaultListLimit
	}
	return options
}

// ListObjects lists objects under uri.Prefix in the target bucket, following
// pagination until the limit is reached.
func (c *Client) ListObjects(uri ObjectURI, opts ...ListOption) ([]ObjectSummary, error) {
	uri, err := c.resolve(uri)
	if err != nil {
		return nil, fmt.Errorf("error listing objects: %w", err)
	}
	options := applyListOptions(opts...)

	request := objectstorage.ListObjectsRequest{
		NamespaceName:      &uri.Namespace,
		BucketName:         &uri.BucketName,
		Prefix:             &uri.Prefix,
		Fields:             common.String(listFields),
		OpcClientRequestId: requestID(),
	}

	var summaries []ObjectSummary
	page := 0
	for len(summaries) < options.Limit {
		response, err := c.os.ListObjects(context.Background(), request)
		if err != nil {
			return nil, fmt.Errorf("error listing objects in bucket %s at page %d: %w", uri.BucketName, page, err)
		}

		for _, obj := range response.Objects {
			if len(summaries) >= options.Limit {
				break
			}
			summaries = append(summaries, toSummary(obj))
		}

		if response.NextStartWith == nil {
			break
		}
		request.Start = response.NextStartWith
		page++
	}

	return summaries, nil
}

// ObjectNames lists object names under uri.Prefix in the target bucket.
func (c *Client) ObjectNames(uri ObjectURI, opts ...ListOption) ([]string, error) {
	summaries, err := c.ListObjects(uri, opts...)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(summaries))
	for i, summary := range summaries {
		names[i] = summary.Name
	}
	return names, nil
}

// ReadObject fetches the full object body.
func (c *Client) ReadObject(uri ObjectURI) ([]byte, error) {
	response, err := c.getObject(uri, nil)
	if err != nil {
		return nil, err
	}
	defer c.closeBody(uri, response.Content)

	data, err := io.ReadAll(response.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to read object %s body: %w", uri.ObjectName, err)
	}
	return data, nil
}

// WriteObject stores data as uri's object in one PutObject call.
func (c *Client) WriteObject(uri ObjectURI, data []byte) error {
	uri, err := c.resolve(uri)
	if err != nil {
		return fmt.Errorf("error writing object: %w", err)
	}

	size := int64(len(data))
	request := objectstorage.PutObjectRequest{
		NamespaceName:      &uri.Namespace,
		BucketName:         &uri.BucketName,
		ObjectName:         &uri.ObjectName,
		ContentLength:      &size,
		PutObjectBody:      io.NopCloser(bytes.NewReader(data)),
		OpcMeta:            uri.Metadata,
		OpcClientRequestId: requestID(),
	}

	if _, err := c.os.PutObject(context.Background(), request); err != nil {
		return fmt.Errorf("failed to put object %q: %w", objectFullName(uri), err)
	}
	return nil
}

// DeleteObject removes the object named by uri.
func (c *Client) DeleteObject(uri ObjectURI) error {
	uri, err := c.resolve(uri)
	if err != nil {
		return fmt.Errorf("error deleting object: %w", err)
	}

	request := objectstorage.DeleteObjectRequest{
		NamespaceName:      &uri.Namespace,
		BucketName:         &uri.BucketName,
		ObjectName:         &uri.ObjectName,
		OpcClientRequestId: requestID(),
	}
	if _, err := c.os.DeleteObject(context.Background(), request); err != nil {
		return fmt.Errorf("failed to delete object %q: %w", objectFullName(uri), err)
	}
	return nil
}

// HeadObject fetches size, ETag, and MD5 metadata for the object named by uri.
func (c *Client) HeadObject(uri ObjectURI) (*ObjectSummary, error) {
	response, err := c.headObject(uri)
	if err != nil {
		return nil, err
	}

	summary := &ObjectSummary{Name: uri.ObjectName}
	if response.ContentLength != nil {
		summary.Size = *response.ContentLength
	}
	if response.ETag != nil {
		summary.ETag = *response.ETag
	}
	if response.ContentMd5 != nil {
		summary.MD5 = *response.ContentMd5
	}
	if response.LastModified != nil {
		summary.TimeModified = response.LastModified.Time
	}
	return summary, nil
}

func (c *Client) headObject(uri ObjectURI) (*objectstorage.HeadObjectResponse, error) {
	uri, err := c.resolve(uri)
	if err != nil {
		return nil, fmt.Errorf("error heading object: %w", err)
	}

	request := objectstorage.HeadObjectRequest{
		NamespaceName:      &uri.Namespace,
		BucketName:         &uri.BucketName,
		ObjectName:         &uri.ObjectName,
		OpcClientRequestId: requestID(),
	}
	response, err := c.os.HeadObject(context.Background(), request)
	if err != nil {
		return nil, fmt.Errorf("failed to head object %q: %w", objectFullName(uri), err)
	}
	return &response, nil
}

// getObject fetches the object body, optionally restricted to a byte range.
// The caller owns the returned Content reader.
func (c *Client) getObject(uri ObjectURI, byteRange *string) (*objectstorage.GetObjectResponse, error) {
	uri, err := c.resolve(uri)
	if err != nil {
		return nil, fmt.Errorf("error getting object: %w", err)
	}

	request := objectstorage.GetObjectRequest{
		NamespaceName:      &uri.Namespace,
		BucketName:         &uri.BucketName,
		ObjectName:         &uri.ObjectName,
		Range:              byteRange,
		OpcClientRequestId: requestID(),
	}
	response, err := c.os.GetObject(context.Background(), request)
	if err != nil {
		return nil, fmt.Errorf("failed to get object %q: %w", objectFullName(uri), err)
	}
	return &response, nil
}

func (c *Client) closeBody(uri ObjectURI, body io.ReadCloser) {
	if err := body.Close(); err != nil {
		c.logger.WithField("object", uri.ObjectName).WithError(err).Warn("Failed to close response body")
	}
}

func toSummary(obj objectstorage.ObjectSummary) ObjectSummary {
	summary := ObjectSummary{}
	if obj.Name != nil {
		summary.Name = *obj.Name
	}
	if obj.Size != nil {
		summary.Size = *obj.Size
	}
	if obj.Etag != nil {
		summary.ETag = *obj.Etag
	}
	if obj.Md5 != nil {
		summary.MD5 = *obj.Md5
	}
	if obj.TimeModified != nil {
		summary.TimeModified = obj.TimeModified.Time
	}
	return summary
}

func objectFullName(uri ObjectURI) string {
	return fmt.Sprintf("%s/%s/%s", uri.Namespace, uri.BucketName, uri.ObjectName)
}

func requestID() *string {
	return common.String(uuid.New().String())
}
