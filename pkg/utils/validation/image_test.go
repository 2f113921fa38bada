package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripnest_backend/pkg/apperror"
)

func TestValidateImage(t *testing.T) {
	tests := []struct {
		name    string
		meta    ImageMeta
		wantErr bool
	}{
		{"jpeg ok", ImageMeta{Filename: "beach.jpg", ContentType: "image/jpeg", Size: 500 * 1024}, false},
		{"jpg mime alias", ImageMeta{Filename: "beach.JPEG", ContentType: "image/jpg", Size: 1024}, false},
		{"webp ok", ImageMeta{Filename: "a.webp", ContentType: "image/webp", Size: MaxImageSize}, false},
		{"too large", ImageMeta{Filename: "big.jpg", ContentType: "image/jpeg", Size: 3 * 1024 * 1024}, true},
		{"gif mime", ImageMeta{Filename: "anim.gif", ContentType: "image/gif", Size: 1024}, true},
		{"bad extension", ImageMeta{Filename: "photo.bmp", ContentType: "image/png", Size: 1024}, true},
		{"missing extension", ImageMeta{Filename: "photo", ContentType: "image/png", Size: 1024}, true},
		{"empty", ImageMeta{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateImage(tt.meta)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, apperror.ErrUploadRejected)
		})
	}
}

func TestValidateImageURL(t *testing.T) {
	assert.NoError(t, ValidateImageURL("https://cdn.example.com/a/b/photo.png"))
	assert.NoError(t, ValidateImageURL("https://cdn.example.com/photo.JPG?w=800&q=80"))
	assert.NoError(t, ValidateImageURL("https://cdn.example.com/anim.gif"))
	assert.NoError(t, ValidateImageURL("https://images.unsplash.com/photo-1507525428034-b723cf961d3e"))
	assert.NoError(t, ValidateImageURL("https://www.pexels.com/photo/123"))

	assert.ErrorIs(t, ValidateImageURL(""), apperror.ErrValidation)
	assert.ErrorIs(t, ValidateImageURL("ftp://example.com/a.png"), apperror.ErrValidation)
	assert.ErrorIs(t, ValidateImageURL("https://example.com/page.html"), apperror.ErrValidation)
	assert.ErrorIs(t, ValidateImageURL("https://evil.example/?q=unsplash.com"), apperror.ErrValidation)
	assert.ErrorIs(t, ValidateImageURL("https://unsplash.com.evil.example/photo"), apperror.ErrValidation)
	assert.ErrorIs(t, ValidateImageURL("https://notunsplash.com/photo"), apperror.ErrValidation)
	assert.ErrorIs(t, ValidateImageURL("https://evil.example/page?file=a.png"), apperror.ErrValidation)
	assert.ErrorIs(t, ValidateImageURL("https:///a.png"), apperror.ErrValidation)
}

type sample struct {
	Name  string  `json:"name" validate:"required"`
	Email string  `json:"email" validate:"omitempty,email"`
	Price float64 `json:"price" validate:"gte=0"`
}

func TestStruct(t *testing.T) {
	assert.NoError(t, Struct(sample{Name: "Bali"}))

	err := Struct(sample{})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrValidation)
	assert.Equal(t, "name is required", err.Error())

	err = Struct(sample{Name: "x", Price: -1})
	assert.Equal(t, "price must be at least 0", err.Error())

	err = Struct(sample{Name: "x", Email: "nope"})
	assert.Equal(t, "email must be a valid email address", err.Error())
}
