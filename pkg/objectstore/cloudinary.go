package objectstore

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"tripnest_backend/pkg/apperror"
	"tripnest_backend/pkg/config"
	imageutil "tripnest_backend/pkg/utils/image"
)

// CloudinaryAPI is the subset of the Cloudinary upload API used here.
type CloudinaryAPI interface {
	Upload(ctx context.Context, file interface{}, uploadParams uploader.UploadParams) (*uploader.UploadResult, error)
	Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error)
}

type CloudinaryStore struct {
	api      CloudinaryAPI
	reencode *imageutil.Options
}

func NewCloudinaryStore(cfg config.ObjectStoreConfig) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		return nil, fmt.Errorf("could not initialise cloudinary: %v", err)
	}
	return NewCloudinaryStoreWithAPI(&cld.Upload, reencodeOptions(cfg)), nil
}

func NewCloudinaryStoreWithAPI(api CloudinaryAPI, reencode *imageutil.Options) *CloudinaryStore {
	return &CloudinaryStore{api: api, reencode: reencode}
}

func (s *CloudinaryStore) Upload(ctx context.Context, obj Object) (Result, error) {
	body, _, err := prepare(obj, s.reencode)
	if err != nil {
		return Result{}, err
	}

	key := ObjectKey(obj.Folder, obj.Entity, obj.Filename)
	publicID := strings.TrimSuffix(path.Base(key), path.Ext(key))

	resp, err := s.api.Upload(ctx, bytes.NewReader(body), uploader.UploadParams{
		Folder:       path.Dir(key),
		PublicID:     publicID,
		ResourceType: "image",
	})
	if err != nil {
		return Result{}, apperror.Network("could not upload file to cloudinary", err)
	}
	if resp.Error.Message != "" {
		return Result{}, cloudinaryError("could not upload file to cloudinary", resp.Error.Message)
	}

	return Result{URL: resp.SecureURL, Key: resp.PublicID}, nil
}

// Delete takes the public id returned as Result.Key.
func (s *CloudinaryStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return apperror.Validation("object key is required")
	}
	resp, err := s.api.Destroy(ctx, uploader.DestroyParams{PublicID: key})
	if err != nil {
		return apperror.Network("could not delete file from cloudinary", err)
	}
	if resp.Error.Message != "" {
		return cloudinaryError("could not delete file from cloudinary", resp.Error.Message)
	}
	if resp.Result == "not found" {
		return apperror.NotFound(fmt.Sprintf("object %s not found", key))
	}
	return nil
}

func cloudinaryError(msg, detail string) error {
	lower := strings.ToLower(detail)
	if strings.Contains(lower, "api_key") || strings.Contains(lower, "signature") || strings.Contains(lower, "not allowed") {
		return apperror.PermissionDenied(msg+": "+detail, nil)
	}
	return apperror.Network(msg+": "+detail, nil)
}
