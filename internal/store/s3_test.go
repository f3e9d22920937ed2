package store

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/socialbattery/internal/common"
	"github.com/dmitrijs2005/socialbattery/internal/models"
)

// fakeS3 keeps objects in a map and satisfies s3API.
type fakeS3 struct {
	objects map[string][]byte
	putErr  error
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}}
}

func (f *fakeS3) GetObject(_ context.Context, params *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[*params.Key]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	data, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.objects[*params.Key] = data
	return &s3.PutObjectOutput{}, nil
}

func newFakeS3Store(api s3API) *S3Store {
	return &S3Store{api: api, bucket: "sbf", key: common.UsersBlobName + ".json"}
}

func TestS3Store_Contract(t *testing.T) {
	runStoreContract(t, func(t *testing.T) Store {
		return newFakeS3Store(newFakeS3())
	})
}

func TestS3Store_MissingObjectBehavesLikeEmptyStore(t *testing.T) {
	ctx := context.Background()
	s := newFakeS3Store(newFakeS3())

	records, err := s.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestS3Store_CorruptObjectBehavesLikeEmptyStore(t *testing.T) {
	ctx := context.Background()
	api := newFakeS3()
	api.objects[common.UsersBlobName+".json"] = []byte(`garbage`)
	s := newFakeS3Store(api)

	records, err := s.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestS3Store_PutErrorIsReturned(t *testing.T) {
	ctx := context.Background()
	api := newFakeS3()
	api.putErr = errors.New("AccessDenied")
	s := newFakeS3Store(api)

	err := s.SaveAll(ctx, []models.UserRecord{models.NewUserRecord("a", "b")})
	require.Error(t, err)
}
