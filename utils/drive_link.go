package utils

import (
	"errors"
	"strings"
)

const (
	driveHostMarker     = "drive.google.com"
	driveDownloadPrefix = "https://drive.google.com/uc?export=download&id="
)

var (
	ErrInvalidDriveURL = errors.New("invalid Google Drive URL")
	ErrDriveIDNotFound = errors.New("could not extract file ID from URL")
)

type DriveLink struct {
	OriginalURL string `json:"originalUrl"`
	FileID      string `json:"fileId"`
	DownloadURL string `json:"downloadUrl"`
}

// ConvertDriveLink turns a Drive sharing link into a direct-download link.
// Supported shapes are /file/d/<id>/... and ...?id=<id>&...
func ConvertDriveLink(raw string) (*DriveLink, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || !strings.Contains(raw, driveHostMarker) {
		return nil, ErrInvalidDriveURL
	}

	var fileID string
	switch {
	case strings.Contains(raw, "/file/d/"):
		rest := raw[strings.Index(raw, "/file/d/")+len("/file/d/"):]
		fileID, _, _ = strings.Cut(rest, "/")
		fileID, _, _ = strings.Cut(fileID, "?")
	case strings.Contains(raw, "id="):
		rest := raw[strings.Index(raw, "id=")+len("id="):]
		fileID, _, _ = strings.Cut(rest, "&")
	}
	fileID, _, _ = strings.Cut(fileID, "#")
	if fileID == "" {
		return nil, ErrDriveIDNotFound
	}

	return &DriveLink{
		OriginalURL: raw,
		FileID:      fileID,
		DownloadURL: driveDownloadPrefix + fileID,
	}, nil
}
