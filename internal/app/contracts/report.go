package contracts

import (
	"context"
	"studiobook-service/internal/pkg/dto/responses"
)

// ReportPublisher fans a finished batch report out to downstream consumers.
// Publishing is best-effort; a failure never fails the batch.
type ReportPublisher interface {
	PublishBatchReport(ctx context.Context, report *responses.BatchReport) error
}

// ReportArchive persists the full batch report for audit.
type ReportArchive interface {
	ArchiveBatchReport(ctx context.Context, report *responses.BatchReport) error
}
