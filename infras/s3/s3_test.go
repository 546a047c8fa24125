package s3_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	otelMocks "rendezvous/infras/otel/mocks"
	"rendezvous/infras/s3"
	"rendezvous/infras/s3/mocks"
	"testing"

	awsS3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	bucket = "credentials"
	domain = "https://cdn.example.test/"
	key    = "qr_codes/qr_code_abc.png"
)

func setup(t *testing.T) (*mocks.MockObjectAPI, s3.S3) {
	t.Helper()

	ctrl := gomock.NewController(t)
	client := mocks.NewMockObjectAPI(ctrl)

	return client, s3.NewWithClient(client, bucket, domain, otelMocks.NewOtel())
}

func TestKey(t *testing.T) {
	assert.Equal(t, "qr_codes/qr_code_abc.png", s3.Key("qr_codes", "qr_code_abc.png"))
	assert.Equal(t, "qr_code_abc.png", s3.Key("", "qr_code_abc.png"))
}

func TestUploadFileBytes(t *testing.T) {
	client, store := setup(t)

	client.EXPECT().PutObject(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, in *awsS3.PutObjectInput, _ ...func(*awsS3.Options)) (*awsS3.PutObjectOutput, error) {
			assert.Equal(t, bucket, *in.Bucket)
			assert.Equal(t, key, *in.Key)
			assert.Equal(t, "image/png", *in.ContentType)
			assert.Equal(t, int64(3), *in.ContentLength)

			return &awsS3.PutObjectOutput{}, nil
		})

	url, err := store.UploadFileBytes(context.Background(), key, "image/png", []byte{1, 2, 3})

	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.test/qr_codes/qr_code_abc.png", url)
}

func TestUploadFileBytesError(t *testing.T) {
	client, store := setup(t)

	client.EXPECT().PutObject(gomock.Any(), gomock.Any()).Return(nil, errors.New("network"))

	_, err := store.UploadFileBytes(context.Background(), key, "image/png", []byte{1})

	assert.ErrorContains(t, err, "failed to upload file to S3")
}

func TestExists(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		want    bool
		wantErr bool
	}{
		{name: "present", want: true},
		{name: "not found", err: &types.NotFound{}},
		{name: "no such key", err: &types.NoSuchKey{}},
		{name: "bare api code", err: &smithy.GenericAPIError{Code: "NotFound"}},
		{name: "forbidden", err: &smithy.GenericAPIError{Code: "AccessDenied"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, store := setup(t)

			var out *awsS3.HeadObjectOutput
			if tt.err == nil {
				out = &awsS3.HeadObjectOutput{}
			}

			client.EXPECT().HeadObject(gomock.Any(), gomock.Any()).Return(out, tt.err)

			exists, err := store.Exists(context.Background(), key)

			assert.Equal(t, tt.want, exists)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGetFile(t *testing.T) {
	client, store := setup(t)

	client.EXPECT().GetObject(gomock.Any(), gomock.Any()).Return(&awsS3.GetObjectOutput{
		Body: io.NopCloser(bytes.NewReader([]byte("png"))),
	}, nil)

	data, err := store.GetFile(context.Background(), key)

	require.NoError(t, err)
	assert.Equal(t, []byte("png"), data)
}

func TestGetFileMissing(t *testing.T) {
	client, store := setup(t)

	client.EXPECT().GetObject(gomock.Any(), gomock.Any()).Return(nil, &types.NoSuchKey{})

	_, err := store.GetFile(context.Background(), key)

	assert.ErrorIs(t, err, s3.ErrObjectNotFound)
}

func TestDeleteFile(t *testing.T) {
	client, store := setup(t)

	client.EXPECT().DeleteObject(gomock.Any(), gomock.Any()).Return(&awsS3.DeleteObjectOutput{}, nil)

	assert.NoError(t, store.DeleteFile(context.Background(), key))
}
