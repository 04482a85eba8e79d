package storage

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeS3 records PutObject calls
type fakeS3 struct {
	s3iface.S3API
	inputs []*s3.PutObjectInput
	bodies [][]byte
	err    error
}

func (f *fakeS3) PutObjectWithContext(ctx aws.Context, in *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, _ := io.ReadAll(in.Body)
	f.inputs = append(f.inputs, in)
	f.bodies = append(f.bodies, body)
	return &s3.PutObjectOutput{}, nil
}

func TestS3Uploader_Put(t *testing.T) {
	client := &fakeS3{}
	u := NewS3UploaderWithClient(client, "photos", "upload/")

	key, err := u.Put(context.Background(), "canhoto/12-000456_canhoto.jpg", []byte("jpeg"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "upload/canhoto/12-000456_canhoto.jpg", key)

	require.Len(t, client.inputs, 1)
	assert.Equal(t, "photos", aws.StringValue(client.inputs[0].Bucket))
	assert.Equal(t, "image/jpeg", aws.StringValue(client.inputs[0].ContentType))
	assert.Equal(t, int64(4), aws.Int64Value(client.inputs[0].ContentLength))
	assert.Equal(t, []byte("jpeg"), client.bodies[0])
}

func TestS3Uploader_PutError(t *testing.T) {
	u := NewS3UploaderWithClient(&fakeS3{err: errors.New("denied")}, "photos", "")
	_, err := u.Put(context.Background(), "a.jpg", []byte("x"), "image/jpeg")
	assert.ErrorContains(t, err, "denied")
}

func TestNewS3Uploader_Validation(t *testing.T) {
	_, err := NewS3Uploader(&Config{})
	assert.Error(t, err)

	_, err = NewS3Uploader(&Config{Bucket: "photos", AccessKeyID: "id"})
	assert.Error(t, err)

	u, err := NewS3Uploader(&Config{Bucket: "photos", Endpoint: "http://localhost:9000", AccessKeyID: "id", AccessKeySecret: "secret"})
	require.NoError(t, err)
	assert.NotNil(t, u)

	assert.False(t, (&Config{}).Enabled())
	assert.True(t, (&Config{Bucket: "photos"}).Enabled())
}
