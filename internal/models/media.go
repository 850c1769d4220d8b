package models

import (
	"path/filepath"
	"strings"
)

type MediaKind string

const (
	MediaPDF         MediaKind = "pdf"
	MediaDOCX        MediaKind = "docx"
	MediaAudio       MediaKind = "audio"
	MediaUnsupported MediaKind = ""
)

var mediaLabels = map[string]MediaKind{
	"pdf":   MediaPDF,
	"docx":  MediaDOCX,
	"audio": MediaAudio,
	"wav":   MediaAudio,
	"mp3":   MediaAudio,
	"m4a":   MediaAudio,
	"ogg":   MediaAudio,
	"flac":  MediaAudio,
	"webm":  MediaAudio,
}

// KindFromLabel maps a media-type label to the extractor that handles it.
// Labels are case-insensitive; unknown labels report false.
func KindFromLabel(label string) (MediaKind, bool) {
	kind, ok := mediaLabels[strings.ToLower(strings.TrimSpace(label))]
	if !ok {
		return MediaUnsupported, false
	}
	return kind, true
}

// FileTypeFromName infers the type label from a file name: ".pdf" and ".docx"
// name themselves, everything else is treated as a recording.
func FileTypeFromName(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return string(MediaPDF)
	case ".docx":
		return string(MediaDOCX)
	default:
		return string(MediaAudio)
	}
}

type MediaInput struct {
	Path string
	Kind MediaKind
}
