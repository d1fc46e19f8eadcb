package backing

import (
	"context"
	stderr "errors"
	"io"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"golang.org/x/sync/singleflight"

	"github.com/tiercache/tiercache/internal/config"
	"github.com/tiercache/tiercache/pkg/errors"
	"github.com/tiercache/tiercache/pkg/retry"
)

// S3Client is the subset of the S3 API the store uses.
type S3Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Store fetches object bodies from an S3 bucket, serving as the system
// of record behind the cache hierarchy. Transient failures are retried
// with exponential backoff and concurrent fetches of the same key are
// coalesced; when all attempts fail the configured fallback value is
// returned so the hierarchy's infallible fetch contract holds.
type S3Store struct {
	client   S3Client
	bucket   string
	prefix   string
	timeout  time.Duration
	fallback string
	retryer  *retry.Retryer
	group    singleflight.Group
	logger   *slog.Logger
}

// NewS3Store creates an S3-backed store from the application configuration,
// loading AWS credentials from the default chain.
func NewS3Store(ctx context.Context, cfg config.S3Config) (*S3Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, errors.NewError(errors.ErrCodeConnectionFailed, "failed to load AWS configuration").
			WithComponent("backing").
			WithOperation("NewS3Store").
			WithCause(err)
	}

	return NewS3StoreWithClient(s3.NewFromConfig(awsCfg), cfg), nil
}

// NewS3StoreWithClient creates an S3-backed store around an existing
// client. Used directly in tests.
func NewS3StoreWithClient(client S3Client, cfg config.S3Config) *S3Store {
	timeout := cfg.FetchTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &S3Store{
		client:   client,
		bucket:   cfg.Bucket,
		prefix:   cfg.Prefix,
		timeout:  timeout,
		fallback: cfg.FallbackValue,
		retryer:  retry.New(retry.DefaultConfig()),
		logger:   slog.Default().With("component", "s3-backing", "bucket", cfg.Bucket),
	}
}

// Fetch returns the body of the object named by key. Concurrent fetches
// of one key share a single request. Failures after retries yield the
// fallback value.
func (s *S3Store) Fetch(key string) string {
	value, _, _ := s.group.Do(key, func() (interface{}, error) {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		var body string
		err := s.retryer.DoWithContext(ctx, func(ctx context.Context) error {
			fetched, fetchErr := s.getObject(ctx, key)
			if fetchErr != nil {
				return fetchErr
			}
			body = fetched
			return nil
		})
		if err != nil {
			s.logger.Warn("fetch failed, serving fallback", "key", key, "error", err)
			return s.fallback, nil
		}
		return body, nil
	})

	return value.(string)
}

func (s *S3Store) getObject(ctx context.Context, key string) (string, error) {
	output, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.prefix + key),
	})
	if err != nil {
		return "", s.classifyError(key, err)
	}
	defer func() { _ = output.Body.Close() }()

	data, err := io.ReadAll(output.Body)
	if err != nil {
		return "", errors.NewError(errors.ErrCodeNetworkError, "failed to read object body").
			WithComponent("backing").
			WithOperation("Fetch").
			WithContext("key", key).
			WithCause(err)
	}

	return string(data), nil
}

// classifyError maps S3 failures onto the structured error taxonomy so
// the retryer can tell transient faults from permanent ones.
func (s *S3Store) classifyError(key string, err error) error {
	var noSuchKey *s3types.NoSuchKey
	if stderr.As(err, &noSuchKey) {
		e := errors.NewError(errors.ErrCodeObjectNotFound, "object does not exist").
			WithComponent("backing").
			WithOperation("Fetch").
			WithContext("key", key).
			WithCause(err)
		e.Retryable = false
		return e
	}

	if stderr.Is(err, context.DeadlineExceeded) {
		return errors.NewError(errors.ErrCodeConnectionTimeout, "fetch timed out").
			WithComponent("backing").
			WithOperation("Fetch").
			WithContext("key", key).
			WithCause(err)
	}

	return errors.NewError(errors.ErrCodeNetworkError, "fetch failed").
		WithComponent("backing").
		WithOperation("Fetch").
		WithContext("key", key).
		WithCause(err)
}
