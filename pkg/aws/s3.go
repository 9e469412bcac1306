package aws

import (
	"context"

	"github.com/aws/aws-sdk-go/service/s3"
	log "github.com/sirupsen/logrus"

	"github.com/RomiBareiro/iamprobe/pkg/provision"
)

// StorageClient implements provision.StorageService. Each call builds a
// fresh S3 client bound to the probe key, separate from the session the
// identity client runs on.
type StorageClient struct {
	region string
}

func NewStorageClient(region string) *StorageClient {
	return &StorageClient{region: region}
}

func (c *StorageClient) ListBuckets(ctx context.Context, key provision.AccessKey) ([]provision.Bucket, error) {
	sess, err := createKeySession(c.region, key)
	if err != nil {
		log.Errorf("Can't connect to AWS with key %s: %s", key.ID, err.Error())
		return nil, err
	}

	result, err := s3.New(sess).ListBucketsWithContext(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return nil, err
	}

	buckets := make([]provision.Bucket, 0, len(result.Buckets))
	for _, bucket := range result.Buckets {
		newBucket := provision.Bucket{
			Name: *bucket.Name,
		}
		if bucket.CreationDate != nil {
			newBucket.CreationDate = *bucket.CreationDate
		}
		buckets = append(buckets, newBucket)
	}

	return buckets, nil
}
