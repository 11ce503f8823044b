package utils

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPutter struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (p *recordingPutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if p.err != nil {
		return nil, p.err
	}
	p.input = in
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	p.body = body
	return &s3.PutObjectOutput{}, nil
}

func TestR2Uploader_Upload(t *testing.T) {
	putter := &recordingPutter{}
	u := NewR2UploaderWithClient(putter, "hunter-backups")

	require.NoError(t, u.Upload(context.Background(), "snapshots/a.json", "application/json", []byte(`{}`)))
	assert.Equal(t, "hunter-backups", aws.ToString(putter.input.Bucket))
	assert.Equal(t, "snapshots/a.json", aws.ToString(putter.input.Key))
	assert.Equal(t, "application/json", aws.ToString(putter.input.ContentType))
	assert.Equal(t, `{}`, string(putter.body))
}

func TestR2Uploader_UploadError(t *testing.T) {
	u := NewR2UploaderWithClient(&recordingPutter{err: errors.New("denied")}, "b")
	err := u.Upload(context.Background(), "k", "application/json", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "denied")
}
