package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/rentkeeper/internal/common"
	sc "github.com/dmitrijs2005/rentkeeper/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReportService() *ReportService {
	s := NewReportService(&sc.Config{
		S3Region:       "us-east-1",
		S3RootUser:     "minioadmin",
		S3RootPassword: "minioadmin",
		S3BaseEndpoint: "http://127.0.0.1:9000",
		S3Bucket:       "reports",
		PresignExpiry:  5 * time.Minute,
	})
	s.now = func() time.Time { return time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC) }
	return s
}

// stubPresign replaces the AWS seams for the duration of the test.
func stubPresign(t *testing.T) {
	t.Helper()

	origLoad, origNewS3, origNewPre := loadDefaultAWSConfig, newS3ClientFromConfig, newS3PresignClient
	origPut, origGet := presignPutObject, presignGetObject
	t.Cleanup(func() {
		loadDefaultAWSConfig, newS3ClientFromConfig, newS3PresignClient = origLoad, origNewS3, origNewPre
		presignPutObject, presignGetObject = origPut, origGet
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client { return &s3.Client{} }
	newS3PresignClient = func(c *s3.Client) *s3.PresignClient { return &s3.PresignClient{} }
}

func TestReportKey(t *testing.T) {
	s := newReportService()

	key := s.ReportKey("u1", "My Properties!")
	assert.True(t, strings.HasPrefix(key, "reports/u1/my-properties-20250310-143000-"), key)
	assert.True(t, strings.HasSuffix(key, ".csv"))

	assert.True(t, strings.HasPrefix(s.ReportKey("u1", "***"), "reports/u1/properties-"))
}

func TestGetPresignClient_AppliesConfig(t *testing.T) {
	stubPresign(t)
	s := newReportService()

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		assert.Equal(t, "us-east-1", lo.Region)
		return aws.Config{}, nil
	}

	var opts s3.Options
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		for _, fn := range optFns {
			fn(&opts)
		}
		return &s3.Client{}
	}

	pc, err := s.getPresignClient(context.Background())
	require.NoError(t, err)
	require.NotNil(t, pc)
	require.NotNil(t, opts.BaseEndpoint)
	assert.Equal(t, "http://127.0.0.1:9000", *opts.BaseEndpoint)
	assert.True(t, opts.UsePathStyle)

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("load-fail")
	}
	_, err = s.getPresignClient(context.Background())
	assert.EqualError(t, err, "load-fail")
}

func TestUploadURL(t *testing.T) {
	stubPresign(t)
	s := newReportService()

	var gotKey, gotBucket, gotType string
	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		gotKey, gotBucket, gotType = *in.Key, *in.Bucket, *in.ContentType
		var po s3.PresignOptions
		for _, fn := range optFns {
			fn(&po)
		}
		assert.Equal(t, 5*time.Minute, po.Expires)
		return &v4.PresignedHTTPRequest{URL: "http://put/" + *in.Key}, nil
	}

	key, url, err := s.UploadURL(context.Background(), "u1", "properties")
	require.NoError(t, err)
	assert.Equal(t, gotKey, key)
	assert.Equal(t, "reports", gotBucket)
	assert.Equal(t, "text/csv", gotType)
	assert.Equal(t, "http://put/"+key, url)

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return nil, errors.New("presign-fail")
	}
	_, _, err = s.UploadURL(context.Background(), "u1", "properties")
	assert.EqualError(t, err, "presign-fail")
}

func TestDownloadURL(t *testing.T) {
	stubPresign(t)
	s := newReportService()

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return &v4.PresignedHTTPRequest{URL: "http://get/" + *in.Key}, nil
	}

	url, err := s.DownloadURL(context.Background(), "u1", "reports/u1/properties-x.csv")
	require.NoError(t, err)
	assert.Equal(t, "http://get/reports/u1/properties-x.csv", url)

	_, err = s.DownloadURL(context.Background(), "u1", "reports/u2/properties-x.csv")
	assert.ErrorIs(t, err, common.ErrorForbidden)

	_, err = s.DownloadURL(context.Background(), "u1", "reports/u1/../u2/x.csv")
	assert.ErrorIs(t, err, common.ErrorForbidden)
}
