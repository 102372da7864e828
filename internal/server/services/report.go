package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/rentkeeper/internal/common"
	sc "github.com/dmitrijs2005/rentkeeper/internal/server/config"
	"github.com/google/uuid"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

const reportContentType = "text/csv"

var unsafeNameChars = regexp.MustCompile(`[^a-z0-9-]+`)

// ReportService hands out presigned object-storage URLs for exported
// property reports. Objects live under reports/<user id>/.
type ReportService struct {
	config *sc.Config
	now    func() time.Time
}

func NewReportService(cfg *sc.Config) *ReportService {
	return &ReportService{config: cfg, now: time.Now}
}

func reportPrefix(userID string) string {
	return "reports/" + userID + "/"
}

// ReportKey builds a fresh object key for a report called name.
func (s *ReportService) ReportKey(userID, name string) string {
	name = strings.Trim(unsafeNameChars.ReplaceAllString(strings.ToLower(name), "-"), "-")
	if name == "" {
		name = "properties"
	}
	return fmt.Sprintf("%s%s-%s-%s.csv", reportPrefix(userID), name, s.now().UTC().Format("20060102-150405"), uuid.NewString()[:8])
}

func (s *ReportService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return newS3PresignClient(client), nil
}

// UploadURL returns a new key and a presigned PUT URL for it.
func (s *ReportService) UploadURL(ctx context.Context, userID, name string) (string, string, error) {
	pc, err := s.getPresignClient(ctx)
	if err != nil {
		return "", "", err
	}

	key := s.ReportKey(userID, name)
	req, err := presignPutObject(pc, ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.config.S3Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(reportContentType),
	}, s3.WithPresignExpires(s.config.PresignExpiry))
	if err != nil {
		return "", "", err
	}

	return key, req.URL, nil
}

// DownloadURL presigns a GET for key. Keys outside the user's prefix are
// refused with common.ErrorForbidden.
func (s *ReportService) DownloadURL(ctx context.Context, userID, key string) (string, error) {
	if !strings.HasPrefix(key, reportPrefix(userID)) || strings.Contains(key, "..") {
		return "", common.ErrorForbidden
	}

	pc, err := s.getPresignClient(ctx)
	if err != nil {
		return "", err
	}

	req, err := presignGetObject(pc, ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.config.S3Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.config.PresignExpiry))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}
