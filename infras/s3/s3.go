package s3

//go:generate go run go.uber.org/mock/mockgen -source=./s3.go -destination=./mocks/s3_mock.go -package=mocks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/rs/zerolog/log"

	"rendezvous/config"
	"rendezvous/infras/otel"
	"rendezvous/shared/constant"
)

const (
	otelAttrObjectKey = "object_key"
	otelAttrBucket    = "bucket"
)

// ErrObjectNotFound is returned by GetFile when the key does not exist.
var ErrObjectNotFound = errors.New("object not found")

// S3 is the artifact store. Keys are relative to the configured bucket.
type S3 interface {
	UploadFileBytes(ctx context.Context, key, contentType string, data []byte) (url string, err error)
	GetFile(ctx context.Context, key string) ([]byte, error)
	Exists(ctx context.Context, key string) (bool, error)
	DeleteFile(ctx context.Context, key string) error
	PublicURL(key string) string
}

// ObjectAPI is the subset of the s3 client used here.
type ObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type s3Impl struct {
	client ObjectAPI
	bucket string
	domain string
	otel   otel.Otel
}

// Key joins directory and name into an object key.
func Key(directory, name string) string {
	return path.Join(directory, name)
}

func (svc *s3Impl) UploadFileBytes(ctx context.Context, key, contentType string, data []byte) (url string, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".UploadFileBytes")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttributes(map[string]any{
		otelAttrObjectKey: key,
		otelAttrBucket:    svc.bucket,
	})

	reader := bytes.NewReader(data)

	_, err = svc.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(svc.bucket),
		Key:           aws.String(key),
		Body:          reader,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(reader.Size()),
	})
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return svc.PublicURL(key), nil
}

func (svc *s3Impl) GetFile(ctx context.Context, key string) (data []byte, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".GetFile")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelAttrObjectKey, key)

	out, err := svc.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(svc.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, key)
		}

		return nil, fmt.Errorf("failed to get file from S3: %w", err)
	}
	defer out.Body.Close()

	data, err = io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read file from S3: %w", err)
	}

	return data, nil
}

// Exists reports whether key is physically present in the bucket.
func (svc *s3Impl) Exists(ctx context.Context, key string) (exists bool, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".Exists")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelAttrObjectKey, key)

	_, err = svc.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(svc.bucket),
		Key:    aws.String(key),
	})
	if err == nil {
		return true, nil
	}

	if isNotFound(err) {
		return false, nil
	}

	return false, fmt.Errorf("failed to check file in S3: %w", err)
}

func (svc *s3Impl) DeleteFile(ctx context.Context, key string) (err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".DeleteFile")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttributes(map[string]any{
		otelAttrObjectKey: key,
		otelAttrBucket:    svc.bucket,
	})

	_, err = svc.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(svc.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to delete file from S3")

		return fmt.Errorf("failed to delete file from S3: %w", err)
	}

	return nil
}

func (svc *s3Impl) PublicURL(key string) string {
	return strings.TrimRight(svc.domain, "/") + "/" + strings.TrimLeft(key, "/")
}

func isNotFound(err error) bool {
	var (
		notFound *types.NotFound
		noSuch   *types.NoSuchKey
		apiErr   smithy.APIError
	)

	if errors.As(err, &notFound) || errors.As(err, &noSuch) {
		return true
	}

	// HeadObject carries no body, so some providers only surface the bare code
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()

		return code == "NotFound" || code == "NoSuchKey"
	}

	return false
}

func New(cfg *config.Config, otel otel.Otel) S3 {
	store := cfg.External.S3

	staticProvider := credentials.NewStaticCredentialsProvider(store.AccessKeyID, store.SecretAccessKey, "")

	awsCfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithCredentialsProvider(staticProvider),
		awsConfig.WithRegion(store.Region),
	)
	if err != nil {
		log.Err(err).Msg("Error loading AWS configuration")
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if store.APIEndpoint != "" {
			o.BaseEndpoint = aws.String(store.APIEndpoint)
		}

		o.UsePathStyle = true
	})

	return NewWithClient(client, store.BucketName, store.PublicDomain, otel)
}

// NewWithClient wires an already configured client, used by tests.
func NewWithClient(client ObjectAPI, bucket, publicDomain string, otel otel.Otel) S3 {
	return &s3Impl{
		client: client,
		bucket: bucket,
		domain: publicDomain,
		otel:   otel,
	}
}
