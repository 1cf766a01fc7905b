package exporting

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/oklog/ulid/v2"
	"github.com/vfg2006/revenue-compare-api/internal/config"
	"github.com/vfg2006/revenue-compare-api/pkg/log"
)

// Archiver guarda uma cópia de cada planilha exportada
type Archiver interface {
	Archive(ctx context.Context, wb *Workbook) (string, error)
}

// PutObjectAPI é o subconjunto do cliente S3 usado pelo arquivamento
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Archiver struct {
	client PutObjectAPI
	bucket string
	prefix string
	newID  func() string
}

func NewS3Archiver(client PutObjectAPI, bucket, prefix string) *S3Archiver {
	return &S3Archiver{
		client: client,
		bucket: bucket,
		prefix: prefix,
		newID:  func() string { return ulid.Make().String() },
	}
}

// NewArchiver monta o arquivamento a partir da configuração; desabilitado vira NopArchiver
func NewArchiver(ctx context.Context, cfg config.Export) (Archiver, error) {
	if !cfg.ArchiveEnabled {
		return NopArchiver{}, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar configuração AWS: %w", err)
	}

	log.L.WithFields(log.Fields{"bucket": cfg.Bucket, "prefix": cfg.Prefix}).Info("Arquivamento de exportações no S3 habilitado")
	return NewS3Archiver(s3.NewFromConfig(awsCfg), cfg.Bucket, cfg.Prefix), nil
}

// Archive grava em <prefixo>/<ulid>/<arquivo> e devolve a chave do objeto
func (a *S3Archiver) Archive(ctx context.Context, wb *Workbook) (string, error) {
	key := path.Join(a.prefix, a.newID(), wb.Filename)

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(a.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(wb.Data),
		ContentLength: aws.Int64(int64(len(wb.Data))),
		ContentType:   aws.String(ContentType),
	})
	if err != nil {
		return "", fmt.Errorf("erro ao enviar %s para o S3: %w", key, err)
	}

	return key, nil
}

// NopArchiver descarta as exportações
type NopArchiver struct{}

func (NopArchiver) Archive(context.Context, *Workbook) (string, error) {
	return "", nil
}
