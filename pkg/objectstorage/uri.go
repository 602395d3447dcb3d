package objectstorage

import (
	"errors"
	"time"
)

// ObjectURI identifies an object (or a prefix of objects) in OCI Object
// Storage. Namespace and BucketName may be left empty to fall back to the
// client's configured defaults.
type ObjectURI struct {
	Namespace  string            `mapstructure:"namespace" json:"namespace"`
	BucketName string            `mapstructure:"bucket_name" json:"bucket_name"`
	ObjectName string            `mapstructure:"object_name" json:"object_name"`
	Prefix     string            `mapstructure:"prefix" json:"prefix"`
	Region     string            `mapstructure:"region" json:"region"`
	Metadata   map[string]string `mapstructure:"metadata" json:"metadata,omitempty"`
}

// ObjectSummary is the flattened listing entry returned by ListObjects and
// HeadObject, shielding callers from the SDK's pointer-heavy response types.
type ObjectSummary struct {
	Name         string
	Size         int64
	ETag         string
	MD5          string
	TimeModified time.Time
}

// resolve fills in the configured namespace and default bucket for uri.
// An object operation without a bucket, either on the URI or in the client
// config, is an error.
func (c *Client) resolve(uri ObjectURI) (ObjectURI, error) {
	if uri.BucketName == "" {
		uri.BucketName = c.config.Bucket
	}
	if uri.BucketName == "" {
		return uri, errors.New("no bucket name given and no default bucket configured")
	}

	if uri.Namespace == "" {
		namespace, err := c.Namespace()
		if err != nil {
			return uri, err
		}
		uri.Namespace = namespace
	}
	return uri, nil
}
