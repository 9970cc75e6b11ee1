package importer

import (
	"path/filepath"
	"strings"
)

// MIMECategory tags an uploaded file by the top-level MIME type it arrived with.
type MIMECategory string

const (
	CategoryAudio MIMECategory = "audio"
	CategoryImage MIMECategory = "image"
	CategoryOther MIMECategory = "other"
)

// UploadedFile is the raw file as received from the transport layer,
// before any classification.
type UploadedFile struct {
	DisplayName string
	MIMEType    string
	Bytes       []byte
}

// UploadedItem is the classified form of an uploaded file, built exactly once
// at batch entry so downstream components never re-inspect filenames or MIME
// strings. BaseName is the display name without its extension and is the
// pairing key between audio and image uploads. Base names are compared
// byte-for-byte: case-sensitive, no percent-decoding.
type UploadedItem struct {
	DisplayName string
	Category    MIMECategory
	Bytes       []byte
	BaseName    string
}

// NewUploadedItem classifies one uploaded file.
func NewUploadedItem(f UploadedFile) UploadedItem {
	return UploadedItem{
		DisplayName: f.DisplayName,
		Category:    categorize(f.MIMEType),
		Bytes:       f.Bytes,
		BaseName:    strings.TrimSuffix(f.DisplayName, filepath.Ext(f.DisplayName)),
	}
}

func categorize(mimeType string) MIMECategory {
	switch {
	case strings.HasPrefix(mimeType, "audio/"):
		return CategoryAudio
	case strings.HasPrefix(mimeType, "image/"):
		return CategoryImage
	default:
		return CategoryOther
	}
}
