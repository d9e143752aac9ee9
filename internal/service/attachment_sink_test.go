package service

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/require"
)

type storageStub struct {
	uploads []string
	err     error
}

func (s *storageStub) Upload(_ context.Context, name string, reader io.Reader) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if _, err := io.Copy(io.Discard, reader); err != nil {
		return "", err
	}
	s.uploads = append(s.uploads, name)
	return "uploads/" + name, nil
}

func defaultSink(storage FileStorage) AttachmentSink {
	return NewAttachmentSink(storage, []string{"pdf", "png", "jpg", "jpeg", "doc", "docx"}, 10, testLogger())
}

func TestAttachmentSinkCandidateKey(t *testing.T) {
	sink := defaultSink(&storageStub{})

	require.Equal(t, "Asha_Rao_2000_01_01", sink.CandidateKey("Asha Rao", "2000-01-01"))
	require.Equal(t, "Asha_Rao_2000_01_01", sink.CandidateKey("  Asha   Rao ", "2000/01/01"))
}

func TestAttachmentSinkCandidateKeyCollision(t *testing.T) {
	sink := defaultSink(&storageStub{})

	// Two candidates sharing name and date of birth resolve to the same
	// directory. This is expected behaviour, not a defect.
	first := sink.CandidateKey("Asha Rao", "2000-01-01")
	second := sink.CandidateKey("Asha  Rao", "2000-01-01")
	require.Equal(t, first, second)
}

func TestAttachmentSinkStoresWithRolePrefix(t *testing.T) {
	storage := &storageStub{}
	sink := defaultSink(storage)

	file := fileHeader(t, "My Resume (Final).PDF", "%PDF-1.4 test")
	stored, err := sink.Store(context.Background(), "Asha Rao", "2000-01-01", RoleResume, file)
	require.NoError(t, err)
	require.Equal(t, "uploads/Asha_Rao_2000_01_01/resume_my-resume--final.pdf", stored)
	require.Len(t, storage.uploads, 1)
}

func TestAttachmentSinkRejectsDisallowedExtension(t *testing.T) {
	storage := &storageStub{}
	sink := defaultSink(storage)

	file := fileHeader(t, "malware.exe", "MZ")
	_, err := sink.Store(context.Background(), "Asha Rao", "2000-01-01", RoleAadhaar, file)
	require.ErrorIs(t, err, ErrFileTypeNotAllowed)
	require.Empty(t, storage.uploads, "nothing is written for a rejected file")
}

func TestAttachmentSinkExtensionCheckIsCaseInsensitive(t *testing.T) {
	storage := &storageStub{}
	sink := defaultSink(storage)

	file := fileHeader(t, "scan.JPEG", "\xff\xd8\xff")
	_, err := sink.Store(context.Background(), "Asha Rao", "2000-01-01", RoleAadhaar, file)
	require.NoError(t, err)
}

func TestAttachmentSinkRejectsOversizedFile(t *testing.T) {
	storage := &storageStub{}
	sink := NewAttachmentSink(storage, []string{"pdf"}, 1, testLogger())

	file := fileHeader(t, "big.pdf", string(bytes.Repeat([]byte("a"), 2<<20)))
	_, err := sink.Store(context.Background(), "Asha Rao", "2000-01-01", RoleResume, file)
	require.ErrorIs(t, err, ErrUploadTooLarge)
}

func fileHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(body, writer.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	return form.File["file"][0]
}
