package objectstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"tripnest_backend/pkg/apperror"
	"tripnest_backend/pkg/config"
	imageutil "tripnest_backend/pkg/utils/image"
)

// S3API is the subset of the S3 client used here.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Store writes to an S3 bucket, or to Cloudflare R2 when an account id is set.
type S3Store struct {
	client        S3API
	bucket        string
	publicBaseURL string
	reencode      *imageutil.Options
}

func NewS3Store(ctx context.Context, cfg config.ObjectStoreConfig) (*S3Store, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %v", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.R2AccountID != "" {
			o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.R2AccountID))
			o.UsePathStyle = true
			o.Region = "auto"
		}
	})

	baseURL := cfg.PublicBaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}
	return NewS3StoreWithClient(client, cfg.Bucket, baseURL, reencodeOptions(cfg)), nil
}

func NewS3StoreWithClient(client S3API, bucket, publicBaseURL string, reencode *imageutil.Options) *S3Store {
	return &S3Store{
		client:        client,
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		reencode:      reencode,
	}
}

func (s *S3Store) Upload(ctx context.Context, obj Object) (Result, error) {
	body, contentType, err := prepare(obj, s.reencode)
	if err != nil {
		return Result{}, err
	}

	key := ObjectKey(obj.Folder, obj.Entity, obj.Filename)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(body))),
	})
	if err != nil {
		return Result{}, translateS3Error(err, "could not upload file")
	}

	return Result{URL: s.publicBaseURL + "/" + key, Key: key}, nil
}

// Delete accepts either an object key or the public URL returned by Upload.
func (s *S3Store) Delete(ctx context.Context, key string) error {
	key = s.KeyFromURL(key)
	if key == "" {
		return apperror.Validation("object key is required")
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return translateS3Error(err, "could not delete file")
	}
	return nil
}

func (s *S3Store) KeyFromURL(url string) string {
	return strings.TrimPrefix(strings.TrimPrefix(url, s.publicBaseURL), "/")
}

func translateS3Error(err error, msg string) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "AccessDenied", "Forbidden", "InvalidAccessKeyId", "SignatureDoesNotMatch", "AllAccessDisabled":
			return apperror.PermissionDenied(msg+": access denied", err)
		case "NoSuchBucket", "NoSuchKey", "NotFound":
			return apperror.Wrap(apperror.CodeNotFound, msg+": "+apiErr.ErrorMessage(), err)
		}
	}
	return apperror.Network(msg, err)
}
