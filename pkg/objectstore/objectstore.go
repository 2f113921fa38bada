// Package objectstore uploads validated images to S3/R2 or Cloudinary.
package objectstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"tripnest_backend/pkg/apperror"
	"tripnest_backend/pkg/config"
	imageutil "tripnest_backend/pkg/utils/image"
	"tripnest_backend/pkg/utils/validation"
)

// Object is an image about to be stored.
type Object struct {
	Body        io.Reader
	Filename    string
	ContentType string
	Size        int64
	Folder      string // collection, e.g. "destinations"
	Entity      string // name of the record the image belongs to
}

type Result struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

type Store interface {
	Upload(ctx context.Context, obj Object) (Result, error)
	Delete(ctx context.Context, key string) error
}

// ObjectKey builds <folder>/<entity>/<unixnano>-<uuid><ext> with URL-safe segments.
func ObjectKey(folder, entity, filename string) string {
	safeFolder := slug.Make(folder)
	if safeFolder == "" {
		safeFolder = "uploads"
	}
	safeEntity := slug.Make(entity)
	if safeEntity == "" {
		safeEntity = "misc"
	}
	ext := strings.ToLower(filepath.Ext(filename))
	uniqueID := fmt.Sprintf("%d-%s", time.Now().UnixNano(), uuid.New().String())
	return path.Join(safeFolder, safeEntity, uniqueID+ext)
}

// reencodeOptions returns nil when uploads are stored as received.
func reencodeOptions(cfg config.ObjectStoreConfig) *imageutil.Options {
	if !cfg.Reencode {
		return nil
	}
	return &imageutil.Options{Quality: cfg.ImageQuality, MaxDimension: cfg.ImageMaxDimension}
}

// prepare validates the object and reads its body. Nothing here touches the
// network, so rejected uploads never reach a backend. A nil reencode stores the
// bytes as uploaded.
func prepare(obj Object, reencode *imageutil.Options) ([]byte, string, error) {
	if err := validation.ValidateImage(validation.ImageMeta{
		Filename:    obj.Filename,
		ContentType: obj.ContentType,
		Size:        obj.Size,
	}); err != nil {
		return nil, "", err
	}
	if obj.Body == nil {
		return nil, "", apperror.UploadRejected("no file provided")
	}

	body, err := io.ReadAll(io.LimitReader(obj.Body, validation.MaxImageSize+1))
	if err != nil {
		return nil, "", apperror.Wrap(apperror.CodeUploadRejected, "could not read file", err)
	}
	if len(body) > validation.MaxImageSize {
		return nil, "", apperror.UploadRejected(fmt.Sprintf("file size exceeds limit of %dMB", validation.MaxImageSize/(1024*1024)))
	}

	contentType := strings.ToLower(strings.TrimSpace(strings.Split(obj.ContentType, ";")[0]))
	if contentType == "image/jpg" {
		contentType = "image/jpeg"
	}
	if reencode == nil {
		return body, contentType, nil
	}

	buf, processedType, err := imageutil.ProcessImage(bytes.NewReader(body), *reencode)
	if err != nil {
		return nil, "", apperror.Wrap(apperror.CodeUploadRejected, "file is not a valid image", err)
	}
	return buf.Bytes(), processedType, nil
}
