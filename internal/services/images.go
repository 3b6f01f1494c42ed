package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"time"

	"github.com/minio/minio-go/v7"
)

// ImageService stocke les images produits dans MinIO et renvoie une URL
// publique résolvable par le front.
type ImageService struct {
	client *minio.Client
	bucket string
}

func NewImageService(client *minio.Client) *ImageService {
	return &ImageService{
		client: client,
		bucket: os.Getenv("MINIO_BUCKET"),
	}
}

// Upload pousse le fichier sous la clé "<timestamp>-<nom>" pour éviter les
// collisions entre deux uploads du même fichier.
func (s *ImageService) Upload(ctx context.Context, file *multipart.FileHeader) (string, error) {
	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	objectName := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), file.Filename)

	_, err = s.client.PutObject(ctx, s.bucket, objectName, f, file.Size,
		minio.PutObjectOptions{ContentType: file.Header.Get("Content-Type")})
	if err != nil {
		return "", err
	}

	scheme := "http"
	if os.Getenv("MINIO_USE_SSL") == "true" {
		scheme = "https"
	}
	url := fmt.Sprintf("%s://%s/%s/%s", scheme, os.Getenv("MINIO_ENDPOINT"), s.bucket, objectName)
	return url, nil
}
