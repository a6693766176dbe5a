// Package intake turns a user-provided file into the media payload and
// derived metadata the analysis gateway requires.
package intake

import (
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/proofylabs/proofy/internal/forensic"
)

// Media is the (payload, metadata) pair handed to the gateway.
type Media struct {
	Path     string
	Data     []byte
	Metadata forensic.FileMetadata

	preview *Preview
}

// Preview is a transient session-scoped copy of the source asset, usable by
// result views to render the original. Acquire on upload, release on
// navigating away or on teardown.
type Preview struct {
	path     string
	released bool
}

// Path returns the preview location on disk.
func (p *Preview) Path() string {
	if p == nil {
		return ""
	}
	return p.path
}

// Release removes the transient copy. Safe to call more than once.
func (p *Preview) Release() error {
	if p == nil || p.released {
		return nil
	}
	p.released = true
	return os.Remove(p.path)
}

// Open reads a media file and derives its metadata: name from the file, size
// as a megabyte string rounded to 2 decimals, MIME type from the extension
// with content sniffing as fallback, and a transient preview copy.
func Open(path string) (*Media, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read media file: %w", err)
	}

	name := filepath.Base(path)
	preview, err := acquirePreview(name, data)
	if err != nil {
		return nil, err
	}

	m := &Media{
		Path: path,
		Data: data,
		Metadata: forensic.FileMetadata{
			Name:    name,
			Size:    HumanSize(int64(len(data))),
			Type:    DetectType(name, data),
			Preview: preview.Path(),
		},
		preview: preview,
	}
	return m, nil
}

// Preview returns the transient preview acquired for this media.
func (m *Media) Preview() *Preview {
	return m.preview
}

// Release frees the transient preview copy.
func (m *Media) Release() error {
	return m.preview.Release()
}

// HumanSize renders a byte count as the megabyte string the report format
// uses, e.g. "2.10 MB".
func HumanSize(bytes int64) string {
	return fmt.Sprintf("%.2f MB", float64(bytes)/(1024*1024))
}

// mediaTypes covers the common media extensions missing from the Go builtin
// mime table on systems without /etc/mime.types.
var mediaTypes = map[string]string{
	".mp4":  "video/mp4",
	".m4v":  "video/mp4",
	".mov":  "video/quicktime",
	".webm": "video/webm",
	".mkv":  "video/x-matroska",
	".avi":  "video/x-msvideo",
	".mp3":  "audio/mpeg",
	".m4a":  "audio/mp4",
	".wav":  "audio/wav",
	".ogg":  "audio/ogg",
	".flac": "audio/flac",
	".heic": "image/heic",
	".bmp":  "image/bmp",
	".tiff": "image/tiff",
}

// DetectType resolves the declared MIME type from the file extension and
// falls back to sniffing the content when the extension is unknown.
func DetectType(name string, data []byte) string {
	ext := strings.ToLower(filepath.Ext(name))
	if t := mime.TypeByExtension(ext); t != "" {
		// Strip charset parameters; the gateway wants the bare type.
		if i := strings.IndexByte(t, ';'); i >= 0 {
			t = t[:i]
		}
		return t
	}
	if t, ok := mediaTypes[ext]; ok {
		return t
	}
	return http.DetectContentType(data)
}

// IsMedia reports whether the MIME type is one the interrogation pipeline
// accepts: image, audio, or video.
func IsMedia(mimeType string) bool {
	return strings.HasPrefix(mimeType, "image/") ||
		strings.HasPrefix(mimeType, "audio/") ||
		strings.HasPrefix(mimeType, "video/")
}

func acquirePreview(name string, data []byte) (*Preview, error) {
	f, err := os.CreateTemp("", "proofy-preview-*"+filepath.Ext(name))
	if err != nil {
		return nil, fmt.Errorf("failed to acquire preview: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return nil, fmt.Errorf("failed to write preview: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return nil, fmt.Errorf("failed to close preview: %w", err)
	}
	return &Preview{path: f.Name()}, nil
}
