package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/rentkeeper/internal/client/models"
	"github.com/dmitrijs2005/rentkeeper/internal/common"
	"github.com/dmitrijs2005/rentkeeper/internal/logging"
	"github.com/dmitrijs2005/rentkeeper/internal/netx"
)

const reportContentType = "text/csv"

var reportHeader = []string{
	"id", "address", "tenant", "rent", "due_day", "status", "overdue_days",
	"last_payment", "contract_start", "contract_end",
}

// ReportClient is the part of client.GRPCClient used for exports.
type ReportClient interface {
	GetReportUploadURL(ctx context.Context, name string) (string, string, error)
	GetReportDownloadURL(ctx context.Context, key string) (string, error)
}

// ExportLog records uploads locally, see repositories/exports.
type ExportLog interface {
	Create(ctx context.Context, e *models.Export) error
	SetStatus(ctx context.Context, key, status string) error
	List(ctx context.Context) ([]*models.Export, error)
}

type ReportService struct {
	client ReportClient
	log    ExportLog
	logger logging.Logger
	now    func() time.Time
	upload func(ctx context.Context, url, contentType string, body []byte) error
}

func NewReportService(c ReportClient, log ExportLog, l logging.Logger) *ReportService {
	return &ReportService{
		client: c,
		log:    log,
		logger: l.With("module", "reports"),
		now:    time.Now,
		upload: netx.UploadToPresignedURL,
	}
}

// RenderCSV writes props in the order given.
func RenderCSV(props []*models.Property) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(reportHeader); err != nil {
		return nil, err
	}
	for _, p := range props {
		last := ""
		if p.LastPaymentAt != nil {
			last = p.LastPaymentAt.Format(common.DateLayout)
		}
		row := []string{
			p.ID,
			p.Address,
			p.TenantName,
			p.RentAmount.StringFixed(2),
			strconv.Itoa(p.DueDay),
			p.Status(),
			strconv.Itoa(p.OverdueDays),
			last,
			p.ContractStart.Format(common.DateLayout),
			p.ContractEnd.Format(common.DateLayout),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// Export uploads props as a CSV report and returns its object key.
func (s *ReportService) Export(ctx context.Context, name string, props []*models.Property) (string, error) {
	body, err := RenderCSV(props)
	if err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}

	key, url, err := s.client.GetReportUploadURL(ctx, name)
	if err != nil {
		return "", fmt.Errorf("get upload url: %w", err)
	}

	entry := &models.Export{Key: key, Name: name, Rows: len(props), Status: models.ExportPending, CreatedAt: s.now()}
	if err := s.log.Create(ctx, entry); err != nil {
		return "", fmt.Errorf("record export: %w", err)
	}

	uploadErr := s.upload(ctx, url, reportContentType, body)
	status := models.ExportUploaded
	if uploadErr != nil {
		status = models.ExportFailed
	}
	if err := s.log.SetStatus(ctx, key, status); err != nil {
		s.logger.Warn(ctx, "export status not recorded", "key", key, "status", status, "error", err)
	}
	if uploadErr != nil {
		return "", fmt.Errorf("upload report: %w", uploadErr)
	}
	return key, nil
}

// History lists exports made from this machine, newest first.
func (s *ReportService) History(ctx context.Context) ([]*models.Export, error) {
	return s.log.List(ctx)
}

// DownloadURL returns a short-lived link to a previously exported report.
func (s *ReportService) DownloadURL(ctx context.Context, key string) (string, error) {
	url, err := s.client.GetReportDownloadURL(ctx, key)
	if err != nil {
		return "", fmt.Errorf("get download url: %w", err)
	}
	return url, nil
}
