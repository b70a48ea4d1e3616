package blobstore

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/pkg/errors"
	"github.com/vfg2006/ads-optimizer-api/internal/domain"
	"github.com/vfg2006/ads-optimizer-api/pkg/log"
	"github.com/vfg2006/ads-optimizer-api/pkg/utils"
)

const (
	metadataName      = "name"
	metadataExpiresAt = "expires-at"
	xlsxContentType   = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// S3API é o subconjunto do cliente S3 usado pelo driver
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

type s3Store struct {
	client S3API
	bucket string
	region string
	prefix string
	now    func() time.Time
}

// NewS3Store guarda os arquivos num bucket S3. O cliente é criado em Open.
func NewS3Store(bucket, region, prefix string) Store {
	return &s3Store{
		bucket: bucket,
		region: region,
		prefix: prefix,
		now:    time.Now,
	}
}

func (s *s3Store) Open(ctx context.Context) error {
	if s.client != nil {
		return nil
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(s.region))
	if err != nil {
		return errors.Wrap(err, "erro ao carregar configuração da AWS")
	}

	s.client = s3.NewFromConfig(cfg)
	return nil
}

func (s *s3Store) Close() error {
	return nil
}

func (s *s3Store) key(id string) string {
	return s.prefix + id
}

func (s *s3Store) Put(ctx context.Context, name string, data []byte, ttl time.Duration) (*Blob, error) {
	id, err := utils.GenerateID()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao gerar identificador do arquivo")
	}

	now := s.now().UTC()
	blob := &Blob{
		ID:        id,
		Name:      name,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key(id)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(xlsxContentType),
		Expires:     aws.Time(blob.ExpiresAt),
		Metadata: map[string]string{
			metadataName:      name,
			metadataExpiresAt: blob.ExpiresAt.Format(time.RFC3339),
		},
	})
	if err != nil {
		return nil, errors.Wrapf(err, "S3 PutObject %s/%s", s.bucket, s.key(id))
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"blob_id": id,
		"bytes":   len(data),
	}).Debug("Arquivo salvo no S3")

	return blob, nil
}

func (s *s3Store) Get(ctx context.Context, id string) (*Blob, error) {
	resp, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(id)),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, errors.Wrapf(domain.ErrBlobNotFound, "arquivo %s", id)
		}
		return nil, errors.Wrapf(err, "S3 GetObject %s/%s", s.bucket, s.key(id))
	}
	defer resp.Body.Close()

	blob := &Blob{
		ID:        id,
		Name:      resp.Metadata[metadataName],
		ExpiresAt: parseExpiresAt(resp.Metadata),
	}
	if resp.LastModified != nil {
		blob.CreatedAt = *resp.LastModified
	}

	// o objeto pode continuar no bucket até a próxima limpeza
	if blob.Expired(s.now().UTC()) {
		return nil, errors.Wrapf(domain.ErrBlobNotFound, "arquivo %s expirado", id)
	}

	blob.Data, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao ler o corpo do objeto")
	}

	return blob, nil
}

func (s *s3Store) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	var deleted int64

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.prefix),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return deleted, errors.Wrap(err, "S3 ListObjectsV2")
		}

		for _, object := range page.Contents {
			head, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
				Bucket: aws.String(s.bucket),
				Key:    object.Key,
			})
			if err != nil {
				log.ForContext(ctx).WithError(err).Warnf("Erro ao ler metadados de %s", aws.ToString(object.Key))
				continue
			}

			if now.Before(parseExpiresAt(head.Metadata)) {
				continue
			}

			if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
				Bucket: aws.String(s.bucket),
				Key:    object.Key,
			}); err != nil {
				return deleted, errors.Wrapf(err, "S3 DeleteObject %s", aws.ToString(object.Key))
			}
			deleted++
		}
	}

	return deleted, nil
}

// parseExpiresAt devolve o zero time quando o metadado falta, tratando o objeto como expirado
func parseExpiresAt(metadata map[string]string) time.Time {
	expiresAt, err := time.Parse(time.RFC3339, metadata[metadataExpiresAt])
	if err != nil {
		return time.Time{}
	}
	return expiresAt
}
