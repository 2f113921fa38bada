package controller

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartImage(t *testing.T, filename, contentType string, size int, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="image"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte{0xff}, size))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func (env *testEnv) upload(t *testing.T, filename, contentType string, size int) (int, map[string]interface{}) {
	body, ct := multipartImage(t, filename, contentType, size, map[string]string{
		"folder": "destinations",
		"entity": "Bali Paradise",
	})
	req := httptest.NewRequest("POST", "/api/admin/uploads", body)
	req.Header.Set("Content-Type", ct)
	req.Header.Set("Authorization", "Bearer "+env.admin)
	return env.send(t, req)
}

func TestUploadImage(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.upload(t, "beach.jpg", "image/jpeg", 1024)
	require.Equal(t, 201, status)
	assert.Equal(t, "https://cdn.tripnest.travel/destinations/beach.jpg", body["url"])
	require.Len(t, env.objects.uploads, 1)
	assert.Equal(t, "Bali Paradise", env.objects.uploads[0].Entity)
	assert.Equal(t, int64(1024), env.objects.uploads[0].Size)
}

func TestUploadImageRejectedBeforeStore(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.upload(t, "huge.jpg", "image/jpeg", 3*1024*1024)
	assert.Equal(t, 400, status)
	assert.NotEmpty(t, body["error"])

	status, _ = env.upload(t, "doc.pdf", "application/pdf", 1024)
	assert.Equal(t, 400, status)

	status, _ = env.upload(t, "fake.gif", "image/gif", 1024)
	assert.Equal(t, 400, status)

	assert.Empty(t, env.objects.uploads)
}

func TestUploadRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	body, ct := multipartImage(t, "beach.jpg", "image/jpeg", 10, nil)
	req := httptest.NewRequest("POST", "/api/admin/uploads", body)
	req.Header.Set("Content-Type", ct)
	status, _ := env.send(t, req)
	assert.Equal(t, 401, status)
	assert.Empty(t, env.objects.uploads)
}

func TestDeleteImageAndValidateURL(t *testing.T) {
	env := newTestEnv(t)

	status, _ := env.do(t, "DELETE", "/api/admin/uploads", fiberMap{}, env.admin)
	assert.Equal(t, 400, status)

	status, _ = env.do(t, "DELETE", "/api/admin/uploads", fiberMap{"key": "destinations/bali/1.jpg"}, env.admin)
	assert.Equal(t, 204, status)
	assert.Equal(t, []string{"destinations/bali/1.jpg"}, env.objects.deletes)

	status, body := env.do(t, "POST", "/api/admin/uploads/validate-url",
		fiberMap{"url": "https://images.unsplash.com/photo-1537953773345-d172ccf13cf1"}, env.admin)
	assert.Equal(t, 200, status)
	assert.Equal(t, true, body["valid"])

	status, _ = env.do(t, "POST", "/api/admin/uploads/validate-url",
		fiberMap{"url": "https://example.com/page.html"}, env.admin)
	assert.Equal(t, 400, status)
}
