package services

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/Maxito7/wedding_card/internal/domain"
)

var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true, ".avif": true,
}

// S3Service lista las fotos del álbum guardadas en un bucket
type S3Service struct {
	BucketName string
	Prefix     string
	Client     s3.ListObjectsV2APIClient
}

// NewS3Service inicializa el servicio de S3
func NewS3Service(ctx context.Context, bucketName, region, prefix string) (*S3Service, error) {
	if bucketName == "" {
		return nil, fmt.Errorf("bucket name is not set")
	}

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return &S3Service{
		BucketName: bucketName,
		Prefix:     prefix,
		Client:     s3.NewFromConfig(cfg),
	}, nil
}

func (s *S3Service) GetAll() ([]domain.GalleryImage, error) {
	return s.ListImages(context.Background())
}

// ListImages devuelve las imágenes del bucket ordenadas por clave
func (s *S3Service) ListImages(ctx context.Context) ([]domain.GalleryImage, error) {
	input := &s3.ListObjectsV2Input{Bucket: aws.String(s.BucketName)}
	if s.Prefix != "" {
		input.Prefix = aws.String(s.Prefix)
	}

	var keys []string
	p := s3.NewListObjectsV2Paginator(s.Client, input)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list bucket %s: %w", s.BucketName, err)
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if imageExtensions[strings.ToLower(path.Ext(key))] {
				keys = append(keys, key)
			}
		}
	}
	sort.Strings(keys)

	images := make([]domain.GalleryImage, len(keys))
	for i, key := range keys {
		images[i] = domain.GalleryImage{
			ID:        path.Base(key),
			URL:       s.PublicURL(key),
			SortOrder: i,
			IsActive:  true,
		}
	}
	return images, nil
}

// PublicURL arma la URL pública de un objeto
func (s *S3Service) PublicURL(key string) string {
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.BucketName, key)
}
