package archive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Sink uploads every snapshot document to an S3 bucket under a
// timestamped prefix: trends/<2006-01-02>/<15_04_05>/<file>.
type S3Sink struct {
	bucket string
	client *s3.Client
	now    func() time.Time
}

// NewS3Sink builds the sink using the SDK's default credential chain
// (env vars, shared config, instance role).
func NewS3Sink(ctx context.Context, bucket, region string) (*S3Sink, error) {
	opts := []func(*awsconfig.LoadOptions) error{}
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &S3Sink{
		bucket: bucket,
		client: s3.NewFromConfig(cfg),
		now:    time.Now,
	}, nil
}

func (s *S3Sink) Name() string { return "s3:" + s.bucket }

// Push uploads all *_trends.json files in dir. The first upload error
// aborts the push; the manager retries the whole set next cycle.
func (s *S3Sink) Push(ctx context.Context, dir string) error {
	names, err := filepath.Glob(filepath.Join(dir, "*_trends.json"))
	if err != nil {
		return fmt.Errorf("list snapshots: %w", err)
	}
	if len(names) == 0 {
		return nil
	}

	prefix := "trends/" + s.now().UTC().Format("2006-01-02/15_04_05")
	for _, name := range names {
		f, err := os.Open(name)
		if err != nil {
			return fmt.Errorf("open %s: %w", name, err)
		}

		key := prefix + "/" + filepath.Base(name)
		_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket: &s.bucket,
			Key:    &key,
			Body:   f,
		})
		f.Close()
		if err != nil {
			return fmt.Errorf("upload %s: %w", key, err)
		}
	}
	return nil
}
