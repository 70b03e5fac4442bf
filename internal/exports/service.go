package exports

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"businessconnect-backend/cvdoc/export"
	"businessconnect-backend/internal/cvs"
	"businessconnect-backend/internal/queue"
	"businessconnect-backend/internal/shared/metrics"
	"businessconnect-backend/internal/shared/storage/object"
	"businessconnect-backend/internal/shared/telemetry"
)

// Service contains business logic for export jobs. Queue may be nil;
// async requests then fall back to inline processing.
type Service struct {
	Repo     ExportsRepo
	CVs      cvs.CVsRepo
	Store    object.ObjectStore
	Queue    queue.Client
	Exporter *export.Exporter
}

// Request carries one export invocation.
type Request struct {
	UserID   string
	CVID     string
	Format   string
	Template string
	FileName string
	Async    bool
}

// Start records an export job and either processes it inline or hands
// it to the queue.
func (s *Service) Start(ctx context.Context, req Request) (Export, error) {
	if req.UserID == "" || req.CVID == "" {
		return Export{}, fmt.Errorf("%w: user and cv are required", ErrInvalidInput)
	}
	req.Format = strings.ToLower(strings.TrimSpace(req.Format))
	if !ValidFormat(req.Format) {
		return Export{}, fmt.Errorf("%w: format must be %q or %q", ErrInvalidInput, FormatPDF, FormatDOCX)
	}

	// The CV must exist and belong to the caller before anything is
	// recorded or enqueued.
	rec, err := s.CVs.GetByID(ctx, req.UserID, req.CVID)
	if err != nil {
		if errors.Is(err, cvs.ErrNotFound) {
			return Export{}, ErrNotFound
		}
		return Export{}, err
	}

	template := strings.TrimSpace(req.Template)
	if template == "" {
		template = rec.Template
	}
	if template == "" && req.Format == FormatPDF {
		template = "window"
	}

	exp := Export{
		ID:        uuid.NewString(),
		UserID:    req.UserID,
		CVID:      req.CVID,
		Format:    req.Format,
		Template:  template,
		Status:    StatusPending,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, exp); err != nil {
		return Export{}, err
	}
	metrics.IncExportStarted()

	if req.Async && s.Queue != nil {
		msg := queue.Message{
			ExportID:   exp.ID,
			UserID:     exp.UserID,
			EnqueuedAt: exp.CreatedAt.Format(time.RFC3339),
			Version:    1,
		}
		if err := s.Queue.Send(ctx, msg); err != nil {
			now := time.Now().UTC()
			_ = s.Repo.Fail(ctx, exp.ID, "enqueue failed", now)
			metrics.IncExportFailed()
			return Export{}, err
		}
		telemetry.Info("exports.enqueued", map[string]any{"export_id": exp.ID})
		return exp, nil
	}

	return s.Process(ctx, exp.UserID, exp.ID, req.FileName)
}

// Process runs one recorded export job end to end: claim, render,
// store, complete. The worker and the sync path both land here.
func (s *Service) Process(ctx context.Context, userID, exportID, fileName string) (Export, error) {
	exp, err := s.Repo.GetByID(ctx, userID, exportID)
	if err != nil {
		return Export{}, err
	}
	if err := s.Repo.MarkProcessing(ctx, exp.ID); err != nil {
		return Export{}, err
	}

	started := time.Now()
	artifact, err := s.produce(ctx, exp, fileName)
	if err != nil {
		now := time.Now().UTC()
		if failErr := s.Repo.Fail(ctx, exp.ID, err.Error(), now); failErr != nil {
			telemetry.Error("exports.fail_record", map[string]any{"export_id": exp.ID, "error": failErr.Error()})
		}
		metrics.IncExportFailed()
		return Export{}, err
	}

	storageKey, size, _, err := s.Store.Save(ctx, exp.UserID, exp.ID+"-"+artifact.FileName, bytes.NewReader(artifact.Bytes))
	if err != nil {
		now := time.Now().UTC()
		_ = s.Repo.Fail(ctx, exp.ID, "artifact store failed", now)
		metrics.IncExportFailed()
		return Export{}, err
	}

	completedAt := time.Now().UTC()
	if err := s.Repo.Complete(ctx, exp.ID, artifact.FileName, artifact.MIMEType, storageKey, size, artifact.Pages, completedAt); err != nil {
		return Export{}, err
	}
	metrics.IncExportCompleted()
	metrics.ObserveExportDurationMs(float64(time.Since(started).Milliseconds()))

	exp.Status = StatusCompleted
	exp.FileName = artifact.FileName
	exp.MIMEType = artifact.MIMEType
	exp.StorageKey = storageKey
	exp.SizeBytes = size
	exp.Pages = artifact.Pages
	exp.CompletedAt = &completedAt
	return exp, nil
}

func (s *Service) produce(ctx context.Context, exp Export, fileName string) (*export.Artifact, error) {
	rec, err := s.CVs.GetByID(ctx, exp.UserID, exp.CVID)
	if err != nil {
		return nil, err
	}
	cv := rec.Data
	customization := cv.Customization

	switch exp.Format {
	case FormatDOCX:
		return s.Exporter.ExportWord(ctx, &cv, &customization)
	default:
		return s.Exporter.ExportPDF(ctx, export.PDFRequest{
			CV:            &cv,
			Template:      exp.Template,
			Customization: &customization,
			FileName:      fileName,
		})
	}
}

// Get returns a user's export job.
func (s *Service) Get(ctx context.Context, userID, id string) (Export, error) {
	if userID == "" || id == "" {
		return Export{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, userID, id)
}

// List returns the user's export jobs, newest first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Export, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// OpenArtifact returns the stored artifact stream of a completed export.
func (s *Service) OpenArtifact(ctx context.Context, userID, id string) (Export, io.ReadCloser, error) {
	exp, err := s.Repo.GetByID(ctx, userID, id)
	if err != nil {
		return Export{}, nil, err
	}
	if exp.Status != StatusCompleted || exp.StorageKey == "" {
		return Export{}, nil, ErrNotReady
	}
	rc, err := s.Store.Open(ctx, exp.StorageKey)
	if err != nil {
		return Export{}, nil, err
	}
	return exp, rc, nil
}
