package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/avolkov/backoffice/internal/api"
	"github.com/avolkov/backoffice/internal/logging"
	"github.com/avolkov/backoffice/internal/mapx"
)

// ImageService uploads and removes product images. Uploads post the raw
// bytes with their sniffed content type, one image per product.
type ImageService struct {
	api *api.Client
	log logging.Logger
}

func NewImageService(apiClient *api.Client, log logging.Logger) *ImageService {
	if log == nil {
		log = logging.NewNop()
	}
	return &ImageService{api: apiClient, log: log.With("service", "images")}
}

// Upload stores an image for the product and returns the URL the backend
// serves it under.
func (s *ImageService) Upload(ctx context.Context, productID int64, data []byte) (string, error) {
	resp, err := s.api.Do(ctx, http.MethodPost, fmt.Sprintf("api/ProductImage/%d", productID), data,
		api.WithHeader("Content-Type", http.DetectContentType(data)))
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}

	if resp.HasJSON() {
		var body map[string]any
		if err := resp.Decode(&body); err == nil {
			if url, ok := mapx.FirstString(body, "url", "Url", "imageUrl", "ImageUrl"); ok {
				return url, nil
			}
		}
	}
	return resp.Text(), nil
}

func (s *ImageService) Delete(ctx context.Context, productID int64) error {
	if err := s.api.Delete(ctx, fmt.Sprintf("api/ProductImage/%d", productID)); err != nil {
		return fmt.Errorf("delete image: %w", err)
	}
	return nil
}
