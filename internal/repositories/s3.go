package repositories

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

var (
	S3Client     *s3.Client
	S3BucketName string
	S3Endpoint   string
)

// InitObjectStore initializes the S3-compatible client used for report
// file downloads. Optional: when unset, files are served from local disk.
func InitObjectStore(accessKey, secretKey, accountID, bucketName, region string) error {
	S3BucketName = bucketName
	S3Endpoint = fmt.Sprintf("https://%s.r2.cloudflarestorage.com", accountID)

	cfg := aws.Config{
		Credentials: credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		Region:      region,
	}

	S3Client = s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(S3Endpoint)
		o.UsePathStyle = true
	})

	log.Println("Successfully initialized object store client")

	return nil
}

// ObjectStoreEnabled reports whether report files live in the bucket.
func ObjectStoreEnabled() bool {
	return S3Client != nil
}

// GeneratePresignedGetURL creates a presigned URL for downloading a
// report file from the bucket.
func GeneratePresignedGetURL(ctx context.Context, key string, expires time.Duration) (string, error) {
	presigner := s3.NewPresignClient(S3Client)
	req, err := presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(S3BucketName),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}

// VerifyObjectExists checks if a given report file key exists in the
// bucket. Returns true if the object exists, false if not, and an error
// if something went wrong.
func VerifyObjectExists(ctx context.Context, key string) (bool, error) {
	_, err := S3Client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(S3BucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		var nsk *s3types.NotFound
		if ok := errors.As(err, &nsk); ok {
			return false, nil
		}
		// Other error (e.g. auth, network)
		return false, err
	}
	return true, nil
}
