package validation

import (
	"fmt"
	"mime/multipart"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"tripnest_backend/pkg/apperror"
)

const MaxImageSize = 2 * 1024 * 1024 // 2MB

var AllowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

var AllowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// ImageHostDomains are accepted as image sources even without a file extension.
var ImageHostDomains = []string{
	"unsplash.com",
	"pexels.com",
	"pixabay.com",
	"images.unsplash.com",
}

var imageURLExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

// ImageMeta is what the checks need to know about an upload.
type ImageMeta struct {
	Filename    string
	ContentType string
	Size        int64
}

// MetaFromHeader reads the upload metadata of a multipart file.
func MetaFromHeader(file *multipart.FileHeader) ImageMeta {
	return ImageMeta{
		Filename:    file.Filename,
		ContentType: file.Header.Get("Content-Type"),
		Size:        file.Size,
	}
}

// ValidateImage checks size, MIME type and extension, in that order.
func ValidateImage(meta ImageMeta) error {
	if meta.Filename == "" && meta.Size == 0 {
		return apperror.UploadRejected("no file provided")
	}

	if meta.Size > MaxImageSize {
		return apperror.UploadRejected(fmt.Sprintf("file size exceeds limit of %dMB", MaxImageSize/(1024*1024)))
	}

	contentType := strings.ToLower(strings.TrimSpace(strings.Split(meta.ContentType, ";")[0]))
	if !AllowedImageTypes[contentType] {
		return apperror.UploadRejected("invalid file type. Allowed types: JPG, PNG, WEBP")
	}

	ext := strings.ToLower(filepath.Ext(meta.Filename))
	if !AllowedImageExtensions[ext] {
		return apperror.UploadRejected("invalid file extension. Allowed: .jpg, .jpeg, .png, .webp")
	}

	return nil
}

// ValidateImageURL accepts links whose path ends in an image extension or whose
// host is, or is a subdomain of, a known stock photo host. The query string never
// counts.
func ValidateImageURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return apperror.Validation("image url is required")
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Hostname() == "" {
		return apperror.Validation("image url must be absolute")
	}
	if imageURLExtensions[strings.ToLower(path.Ext(u.Path))] {
		return nil
	}
	host := strings.ToLower(u.Hostname())
	for _, domain := range ImageHostDomains {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return nil
		}
	}
	return apperror.Validation("url does not point to a supported image")
}
