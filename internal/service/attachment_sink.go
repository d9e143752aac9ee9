package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/amdc-hr/interview-intake/internal/observability"
)

var (
	// ErrFileTypeNotAllowed indicates the upload extension is outside the allow-set.
	ErrFileTypeNotAllowed = errors.New("disallowed file type")
	// ErrUploadTooLarge indicates the upload exceeded the configured size limit.
	ErrUploadTooLarge = errors.New("file exceeds maximum allowed size")
)

// Attachment roles stored per candidate.
const (
	RoleAadhaar = "aadhaar"
	RoleResume  = "resume"
)

// FileStorage abstracts upload destinations.
type FileStorage interface {
	Upload(ctx context.Context, name string, reader io.Reader) (string, error)
}

// AttachmentSink validates and stores candidate attachments into a per-candidate
// directory derived from the candidate's name and date of birth.
type AttachmentSink interface {
	Store(ctx context.Context, fullName, dateOfBirth, role string, file *multipart.FileHeader) (string, error)
	CandidateKey(fullName, dateOfBirth string) string
	AllowedExtensions() []string
}

type attachmentSink struct {
	storage FileStorage
	allowed map[string]struct{}
	exts    []string
	maxSize int64
	logger  zerolog.Logger
	tracer  trace.Tracer
}

// NewAttachmentSink constructs an attachment sink. The extension allow-set and
// size limit are fixed at construction.
func NewAttachmentSink(storage FileStorage, allowedExts []string, maxSizeMB int, logger zerolog.Logger) AttachmentSink {
	if maxSizeMB <= 0 {
		maxSizeMB = 10
	}

	allowed := make(map[string]struct{}, len(allowedExts))
	exts := make([]string, 0, len(allowedExts))
	for _, ext := range allowedExts {
		normalized := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if normalized == "" {
			continue
		}
		if _, ok := allowed[normalized]; ok {
			continue
		}
		allowed[normalized] = struct{}{}
		exts = append(exts, normalized)
	}

	return &attachmentSink{
		storage: storage,
		allowed: allowed,
		exts:    exts,
		maxSize: int64(maxSizeMB) * 1024 * 1024,
		logger:  logger.With().Str("component", "attachment_sink").Logger(),
		tracer:  otel.Tracer("github.com/amdc-hr/interview-intake/internal/service/attachment"),
	}
}

func (s *attachmentSink) AllowedExtensions() []string {
	return append([]string(nil), s.exts...)
}

// CandidateKey derives the per-candidate directory name. Whitespace in the name
// collapses to single underscores and date separators become underscores. Two
// candidates sharing name and date of birth collide into the same directory;
// that is accepted behaviour, not prevented here.
func (s *attachmentSink) CandidateKey(fullName, dateOfBirth string) string {
	name := strings.Join(strings.Fields(fullName), "_")
	dob := dateSeparators.Replace(strings.TrimSpace(dateOfBirth))
	return fmt.Sprintf("%s_%s", name, dob)
}

var dateSeparators = strings.NewReplacer("-", "_", "/", "_", ".", "_", " ", "_")

func (s *attachmentSink) Store(ctx context.Context, fullName, dateOfBirth, role string, file *multipart.FileHeader) (string, error) {
	ctx, span := s.tracer.Start(ctx, "attachment.store")
	defer span.End()

	span.SetAttributes(
		attribute.String("attachment.role", role),
		attribute.String("attachment.original_name", strings.TrimSpace(file.Filename)),
		attribute.Int64("attachment.request_size", file.Size),
	)

	start := time.Now()
	defer func() {
		observability.UploadLatency().Observe(time.Since(start).Seconds())
	}()

	sanitized := sanitizeFileName(file.Filename)
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(sanitized), "."))
	if _, ok := s.allowed[ext]; !ok {
		observability.UploadRejected().WithLabelValues("type").Inc()
		span.RecordError(ErrFileTypeNotAllowed)
		span.SetStatus(codes.Error, "type not allowed")
		return "", fmt.Errorf("%s: %w", role, ErrFileTypeNotAllowed)
	}

	if file.Size > s.maxSize {
		observability.UploadRejected().WithLabelValues("size").Inc()
		span.RecordError(ErrUploadTooLarge)
		span.SetStatus(codes.Error, "payload too large")
		return "", fmt.Errorf("%s: %w", role, ErrUploadTooLarge)
	}

	handle, err := file.Open()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "open failed")
		return "", fmt.Errorf("failed to open %s file: %w", role, err)
	}
	defer handle.Close()

	buf := bytes.NewBuffer(nil)
	if _, err := io.Copy(buf, io.LimitReader(handle, s.maxSize+1)); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "read failed")
		return "", fmt.Errorf("failed to read %s file: %w", role, err)
	}
	if int64(buf.Len()) > s.maxSize {
		observability.UploadRejected().WithLabelValues("size").Inc()
		span.RecordError(ErrUploadTooLarge)
		span.SetStatus(codes.Error, "payload too large")
		return "", fmt.Errorf("%s: %w", role, ErrUploadTooLarge)
	}

	detected := mimetype.Detect(buf.Bytes())
	span.SetAttributes(attribute.String("attachment.detected_mime", detected.String()))

	storageName := path.Join(s.CandidateKey(fullName, dateOfBirth), fmt.Sprintf("%s_%s", role, sanitized))
	stored, err := s.storage.Upload(ctx, storageName, bytes.NewReader(buf.Bytes()))
	if err != nil {
		observability.UploadRejected().WithLabelValues("storage").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "storage failed")
		return "", fmt.Errorf("failed to store %s file: %w", role, err)
	}

	s.logger.Info().
		Str("role", role).
		Str("path", stored).
		Str("mime", detected.String()).
		Int("bytes", buf.Len()).
		Msg("attachment stored")
	span.SetStatus(codes.Ok, "stored")

	return stored, nil
}

func sanitizeFileName(name string) string {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	base = strings.ToLower(base)
	base = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		if r == '-' || r == '_' {
			return r
		}
		return '-'
	}, base)
	base = strings.Trim(base, "-")
	if base == "" {
		base = fmt.Sprintf("upload-%d", time.Now().Unix())
	}
	ext := strings.ToLower(filepath.Ext(name))
	return base + ext
}
