package storage

import (
	"bytes"
	"context"
	"fmt"
	"studiobook-service/internal/app/contracts"
	"studiobook-service/internal/pkg/constvars"
	"studiobook-service/internal/pkg/dto/responses"
	"studiobook-service/internal/pkg/exceptions"
	"sync"

	json "github.com/goccy/go-json"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

type minioReportArchive struct {
	MinioClient *minio.Client
	Log         *zap.Logger
	BucketName  string
}

var (
	minioReportArchiveInstance *minioReportArchive
	onceMinioReportArchive     sync.Once
)

func NewMinioReportArchive(minioClient *minio.Client, log *zap.Logger, bucketName string) contracts.ReportArchive {
	onceMinioReportArchive.Do(func() {
		minioReportArchiveInstance = &minioReportArchive{
			MinioClient: minioClient,
			Log:         log,
			BucketName:  bucketName,
		}
	})
	return minioReportArchiveInstance
}

// ArchiveBatchReport stores the full report JSON under reports/<batch_id>.json.
// Objects are never overwritten in practice since batch ids are unique.
func (m *minioReportArchive) ArchiveBatchReport(ctx context.Context, report *responses.BatchReport) error {
	body, err := json.Marshal(report)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	objectName := fmt.Sprintf("reports/%s.json", report.BatchID)
	_, err = m.MinioClient.PutObject(
		ctx,
		m.BucketName,
		objectName,
		bytes.NewReader(body),
		int64(len(body)),
		minio.PutObjectOptions{
			ContentType: constvars.MIMEApplicationJSON,
		},
	)
	if err != nil {
		return exceptions.ErrMinioPutObject(err, m.BucketName)
	}

	m.Log.Info("batch report archived",
		zap.String(constvars.LoggingBatchIDKey, report.BatchID),
	)
	return nil
}
