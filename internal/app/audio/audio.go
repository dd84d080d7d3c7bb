package audio

import (
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	apperrors "audio-transcriber/internal/app/errors"
)

// MaxUploadBytes is the hosted Whisper upload limit.
const MaxUploadBytes int64 = 25 * 1024 * 1024

const octetStream = "application/octet-stream"

// extensionTypes covers the formats the upload page advertises, for uploads that
// arrive without a usable Content-Type and whose bytes the sniffer does not recognize.
var extensionTypes = map[string]string{
	".mp3":  "audio/mpeg",
	".mpga": "audio/mpeg",
	".m4a":  "audio/mp4",
	".wav":  "audio/wav",
	".flac": "audio/flac",
	".ogg":  "audio/ogg",
	".oga":  "audio/ogg",
	".opus": "audio/opus",
	".webm": "audio/webm",
	".amr":  "audio/amr",
	".aac":  "audio/aac",
}

// Upload is an audio file received from a user.
type Upload struct {
	Name        string
	ContentType string
	Size        int64
	Data        []byte
}

// IsAudio reports whether a MIME type denotes audio.
func IsAudio(contentType string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "audio/")
}

// DetectContentType resolves the MIME type of an upload. A declared type wins unless it
// is empty or the generic octet-stream; then the content is sniffed, and finally the
// file extension decides.
func DetectContentType(name, declared string, head []byte) string {
	declared = strings.TrimSpace(declared)
	if declared != "" && declared != octetStream {
		return declared
	}

	if len(head) > 0 {
		if detected := mimetype.Detect(head); detected != nil && IsAudio(detected.String()) {
			return detected.String()
		}
	}

	if ct, ok := extensionTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return ct
	}

	if declared != "" {
		return declared
	}
	return octetStream
}

// Validate applies the upload rules: audio MIME type first, then the size limit.
func Validate(u *Upload) error {
	if u == nil {
		return apperrors.ErrMissingInput
	}
	if !IsAudio(u.ContentType) {
		return apperrors.ErrNotAudio
	}
	if u.Size > MaxUploadBytes {
		return apperrors.ErrFileTooLarge
	}
	if u.Size == 0 {
		return apperrors.ErrEmptyFile
	}
	return nil
}

// FormatSizeMB renders a byte count the way the upload page shows it.
func FormatSizeMB(size int64) string {
	return fmt.Sprintf("%.2f MB", float64(size)/(1024*1024))
}

// ReadUpload reads a multipart file into an Upload. The declared size is checked before
// anything is read, and reading stops one byte past the limit so a lying header cannot
// make the server buffer an arbitrarily large body.
func ReadUpload(header *multipart.FileHeader) (*Upload, error) {
	if header == nil {
		return nil, apperrors.ErrMissingInput
	}

	file, err := header.Open()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to open uploaded file")
	}
	defer file.Close()

	return FromReader(header.Filename, header.Header.Get("Content-Type"), header.Size, file)
}

// FromReader builds an Upload from a stream. declaredSize may be -1 when unknown.
func FromReader(name, declaredType string, declaredSize int64, r io.Reader) (*Upload, error) {
	u := &Upload{Name: filepath.Base(name), Size: declaredSize}

	if declaredSize > MaxUploadBytes {
		u.ContentType = DetectContentType(name, declaredType, nil)
		return u, nil
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxUploadBytes+1))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to read uploaded file")
	}

	u.Data = data
	u.Size = int64(len(data))
	u.ContentType = DetectContentType(name, declaredType, data)
	return u, nil
}
