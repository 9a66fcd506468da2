package store

import (
	"benritz/cashflows/internal/types"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/parquet-go/parquet-go"
)

type FailedBond struct {
	Bond *types.Bond
	Err  error
}

type PricedBonds struct {
	Bonds         []*types.Bond
	Failures      []*FailedBond
	Source        string
	ValuationDate time.Time
}

func NewPricedBonds(source string, date time.Time) *PricedBonds {
	return &PricedBonds{
		Source:        source,
		ValuationDate: date,
		Bonds:         []*types.Bond{},
		Failures:      []*FailedBond{},
	}
}

// AddBond prices the bond and files it under Bonds or Failures.
func (p *PricedBonds) AddBond(b *types.Bond) error {
	if err := types.CompleteBond(b); err != nil {
		p.Failures = append(p.Failures, &FailedBond{Bond: b, Err: err})
		return err
	}

	p.Bonds = append(p.Bonds, b)
	return nil
}

func WriteBonds(bonds []*types.Bond, output io.Writer) error {
	writer := parquet.NewGenericWriter[*types.Bond](output)

	if _, err := writer.Write(bonds); err != nil {
		writer.Close()
		return fmt.Errorf("failed to write records: %w", err)
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close writer: %w", err)
	}

	return nil
}

func ReadBonds(path string) ([]*types.Bond, error) {
	rows, err := parquet.ReadFile[types.Bond](path)
	if err != nil {
		return nil, fmt.Errorf("failed to read records from %s: %w", path, err)
	}

	bonds := make([]*types.Bond, 0, len(rows))
	for i := range rows {
		bonds = append(bonds, &rows[i])
	}

	return bonds, nil
}

func datePath(date time.Time, sep rune) string {
	return fmt.Sprintf(
		"%04d%c%02d%c%02d",
		date.UTC().Year(),
		sep,
		date.UTC().Month(),
		sep,
		date.UTC().Day(),
	)
}

func StoreToPath(ctx context.Context, priced *PricedBonds, basepath string) (string, error) {
	path := fmt.Sprintf(
		"%s%c%s",
		basepath,
		filepath.Separator,
		datePath(priced.ValuationDate, filepath.Separator),
	)

	if err := os.MkdirAll(path, os.ModePerm); err != nil {
		return "", err
	}

	outPath := fmt.Sprintf("%s%c%s.parquet", path, filepath.Separator, priced.Source)

	file, err := os.Create(outPath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	if err := WriteBonds(priced.Bonds, file); err != nil {
		return "", err
	}

	return outPath, nil
}

type S3Path struct {
	Bucket string
	Prefix string
}

func (p *S3Path) String() string {
	if p.Prefix == "" {
		return fmt.Sprintf("s3://%s", p.Bucket)
	}
	return fmt.Sprintf("s3://%s/%s", p.Bucket, p.Prefix)
}

func ParseS3(path string) (*S3Path, error) {
	if !strings.HasPrefix(path, "s3://") {
		return nil, fmt.Errorf("path must start with s3://")
	}

	path = strings.TrimPrefix(path, "s3://")
	parts := strings.SplitN(path, "/", 2)

	bucket := parts[0]
	if bucket == "" {
		return nil, fmt.Errorf("missing bucket in s3 path")
	}

	var prefix string

	if len(parts) > 1 {
		prefix = strings.TrimSuffix(parts[1], "/")
	}

	return &S3Path{
		Bucket: bucket,
		Prefix: prefix,
	}, nil
}

// PutObjectAPI is the part of the S3 client used for uploads.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

func LoadAWSConfig(ctx context.Context, profile string) (aws.Config, error) {
	if profile == "" || profile == "default" {
		return config.LoadDefaultConfig(ctx)
	}
	return config.LoadDefaultConfig(ctx, config.WithSharedConfigProfile(profile))
}

func StoreToS3(ctx context.Context, priced *PricedBonds, s3Client PutObjectAPI, dst *S3Path) (string, error) {
	tmp, err := os.CreateTemp("", "cashflows-*.parquet")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %v", err)
	}
	defer tmp.Close()
	defer os.Remove(tmp.Name())

	if err := WriteBonds(priced.Bonds, tmp); err != nil {
		return "", err
	}

	if _, err := tmp.Seek(0, 0); err != nil {
		return "", fmt.Errorf("failed to seek to start of file: %w", err)
	}

	key := fmt.Sprintf("%s/%s.parquet", datePath(priced.ValuationDate, '/'), priced.Source)

	if dst.Prefix != "" {
		key = fmt.Sprintf("%s/%s", dst.Prefix, key)
	}

	input := &s3.PutObjectInput{
		Bucket: aws.String(dst.Bucket),
		Key:    aws.String(key),
		Body:   tmp,
	}

	if _, err := s3Client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("failed to upload file to s3://%s/%s: %w", dst.Bucket, key, err)
	}

	outPath := fmt.Sprintf("s3://%s/%s", dst.Bucket, key)

	return outPath, nil
}

// Store writes to dst, which is either an s3:// url or a local directory.
func Store(ctx context.Context, priced *PricedBonds, dst, profile string) (string, error) {
	if !strings.HasPrefix(dst, "s3://") {
		return StoreToPath(ctx, priced, dst)
	}

	s3Path, err := ParseS3(dst)
	if err != nil {
		return "", err
	}

	cfg, err := LoadAWSConfig(ctx, profile)
	if err != nil {
		return "", fmt.Errorf("failed to load AWS config: %v", err)
	}

	return StoreToS3(ctx, priced, s3.NewFromConfig(cfg), s3Path)
}
