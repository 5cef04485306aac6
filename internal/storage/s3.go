package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

type S3Config struct {
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	PublicURL string
}

// Client uploads branding images to S3. A nil *Client means no bucket
// is configured and uploads are rejected at the handler.
type Client struct {
	s3        *s3.Client
	bucket    string
	publicURL string
}

func New(cfg S3Config) (*Client, error) {
	if cfg.Bucket == "" {
		return nil, nil
	}

	awsCfg, err := awscfg.LoadDefaultConfig(context.Background(),
		awscfg.WithRegion(cfg.Region),
		awscfg.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("s3: load config: %w", err)
	}

	return &Client{
		s3:        s3.NewFromConfig(awsCfg),
		bucket:    cfg.Bucket,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
	}, nil
}

func (c *Client) Enabled() bool {
	return c != nil
}

// UploadImage stores an image under branding/{uuid}.{ext} and returns
// its public URL.
func (c *Client) UploadImage(ctx context.Context, data []byte, contentType string) (string, error) {
	if c == nil {
		return "", fmt.Errorf("almacenamiento de imágenes no configurado")
	}

	key := fmt.Sprintf("branding/%s.%s", uuid.New().String(), extFor(contentType))

	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("s3 upload %q: %w", key, err)
	}

	if c.publicURL != "" {
		return c.publicURL + "/" + key, nil
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", c.bucket, key), nil
}

func extFor(contentType string) string {
	switch contentType {
	case "image/webp":
		return "webp"
	case "image/png":
		return "png"
	default:
		return "jpg"
	}
}
