package objectstore

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"regexp"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripnest_backend/pkg/apperror"
	"tripnest_backend/pkg/config"
)

type fakeS3 struct {
	puts    []*s3.PutObjectInput
	bodies  [][]byte
	deletes []*s3.DeleteObjectInput
	err     error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.puts = append(f.puts, in)
	body, _ := io.ReadAll(in.Body)
	f.bodies = append(f.bodies, body)
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.deletes = append(f.deletes, in)
	if f.err != nil {
		return nil, f.err
	}
	return &s3.DeleteObjectOutput{}, nil
}

func jpegObject(size int) Object {
	return Object{
		Body:        bytes.NewReader(bytes.Repeat([]byte{0xFF}, size)),
		Filename:    "Sunset Beach.JPG",
		ContentType: "image/jpeg",
		Size:        int64(size),
		Folder:      "destinations",
		Entity:      "Bali Island",
	}
}

func TestS3Store_RejectsOversizedBeforeNetwork(t *testing.T) {
	client := &fakeS3{}
	store := NewS3StoreWithClient(client, "travel-images", "https://cdn.example.com", nil)

	_, err := store.Upload(context.Background(), jpegObject(3*1024*1024))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrUploadRejected)
	assert.Empty(t, client.puts)
}

func TestS3Store_RejectsLyingSizeHeader(t *testing.T) {
	client := &fakeS3{}
	store := NewS3StoreWithClient(client, "travel-images", "https://cdn.example.com", nil)

	obj := jpegObject(3 * 1024 * 1024)
	obj.Size = 1024
	_, err := store.Upload(context.Background(), obj)
	assert.ErrorIs(t, err, apperror.ErrUploadRejected)
	assert.Empty(t, client.puts)
}

func TestS3Store_RejectsWrongType(t *testing.T) {
	client := &fakeS3{}
	store := NewS3StoreWithClient(client, "travel-images", "https://cdn.example.com", nil)

	obj := jpegObject(1024)
	obj.ContentType = "application/pdf"
	_, err := store.Upload(context.Background(), obj)
	assert.ErrorIs(t, err, apperror.ErrUploadRejected)

	obj = jpegObject(1024)
	obj.Filename = "brochure.pdf"
	_, err = store.Upload(context.Background(), obj)
	assert.ErrorIs(t, err, apperror.ErrUploadRejected)

	assert.Empty(t, client.puts)
}

func TestS3Store_Upload(t *testing.T) {
	client := &fakeS3{}
	store := NewS3StoreWithClient(client, "travel-images", "https://cdn.example.com/", nil)

	res, err := store.Upload(context.Background(), jpegObject(512*1024))
	require.NoError(t, err)
	require.Len(t, client.puts, 1)

	assert.Regexp(t, regexp.MustCompile(`^destinations/bali-island/\d+-[0-9a-f-]{36}\.jpg$`), res.Key)
	assert.Equal(t, "https://cdn.example.com/"+res.Key, res.URL)
	assert.Equal(t, "travel-images", *client.puts[0].Bucket)
	assert.Equal(t, "image/jpeg", *client.puts[0].ContentType)
	assert.Len(t, client.bodies[0], 512*1024)

	require.NoError(t, store.Delete(context.Background(), res.URL))
	require.Len(t, client.deletes, 1)
	assert.Equal(t, res.Key, *client.deletes[0].Key)
}

func TestS3Store_ErrorMapping(t *testing.T) {
	client := &fakeS3{err: &smithy.GenericAPIError{Code: "AccessDenied", Message: "bucket policy"}}
	store := NewS3StoreWithClient(client, "travel-images", "https://cdn.example.com", nil)

	_, err := store.Upload(context.Background(), jpegObject(1024))
	assert.ErrorIs(t, err, apperror.ErrPermissionDenied)

	client.err = errors.New("dial tcp: i/o timeout")
	_, err = store.Upload(context.Background(), jpegObject(1024))
	assert.ErrorIs(t, err, apperror.ErrNetwork)

	assert.ErrorIs(t, store.Delete(context.Background(), ""), apperror.ErrValidation)
}

type fakeCloudinary struct {
	uploads  []uploader.UploadParams
	destroys []uploader.DestroyParams
	result   *uploader.UploadResult
	destroy  *uploader.DestroyResult
}

func (f *fakeCloudinary) Upload(_ context.Context, _ interface{}, params uploader.UploadParams) (*uploader.UploadResult, error) {
	f.uploads = append(f.uploads, params)
	return f.result, nil
}

func (f *fakeCloudinary) Destroy(_ context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error) {
	f.destroys = append(f.destroys, params)
	return f.destroy, nil
}

func TestCloudinaryStore(t *testing.T) {
	fake := &fakeCloudinary{
		result:  &uploader.UploadResult{PublicID: "destinations/bali/x", SecureURL: "https://res.cloudinary.com/demo/image/upload/destinations/bali/x.jpg"},
		destroy: &uploader.DestroyResult{Result: "ok"},
	}
	store := NewCloudinaryStoreWithAPI(fake, nil)

	_, err := store.Upload(context.Background(), jpegObject(3*1024*1024))
	assert.ErrorIs(t, err, apperror.ErrUploadRejected)
	assert.Empty(t, fake.uploads)

	res, err := store.Upload(context.Background(), jpegObject(2048))
	require.NoError(t, err)
	require.Len(t, fake.uploads, 1)
	assert.Equal(t, "destinations/bali-island", fake.uploads[0].Folder)
	assert.False(t, strings.HasSuffix(fake.uploads[0].PublicID, ".jpg"))
	assert.Equal(t, "destinations/bali/x", res.Key)
	assert.True(t, strings.HasPrefix(res.URL, "https://res.cloudinary.com/"))

	require.NoError(t, store.Delete(context.Background(), res.Key))

	fake.destroy = &uploader.DestroyResult{Result: "not found"}
	assert.ErrorIs(t, store.Delete(context.Background(), "gone"), apperror.ErrNotFound)

	fake.result = &uploader.UploadResult{Error: api.ErrorResp{Message: "Invalid Signature abc"}}
	_, err = store.Upload(context.Background(), jpegObject(2048))
	assert.ErrorIs(t, err, apperror.ErrPermissionDenied)
}

func TestS3Store_ReencodesWithConfiguredOptions(t *testing.T) {
	var src bytes.Buffer
	require.NoError(t, png.Encode(&src, image.NewRGBA(image.Rect(0, 0, 40, 20))))

	client := &fakeS3{}
	opts := reencodeOptions(config.ObjectStoreConfig{Reencode: true, ImageQuality: 80, ImageMaxDimension: 10})
	require.NotNil(t, opts)
	store := NewS3StoreWithClient(client, "travel-images", "https://cdn.example.com", opts)

	_, err := store.Upload(context.Background(), Object{
		Body:        bytes.NewReader(src.Bytes()),
		Filename:    "map.png",
		ContentType: "image/png",
		Size:        int64(src.Len()),
		Folder:      "destinations",
		Entity:      "Bali",
	})
	require.NoError(t, err)
	require.Len(t, client.bodies, 1)

	stored, format, err := image.Decode(bytes.NewReader(client.bodies[0]))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 10, stored.Bounds().Dx())
	assert.Equal(t, 5, stored.Bounds().Dy())

	assert.Nil(t, reencodeOptions(config.ObjectStoreConfig{ImageMaxDimension: 10}))
}
