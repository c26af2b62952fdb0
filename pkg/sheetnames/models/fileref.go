package models

import "time"

// FileRef identifies a spreadsheet file that was resolved on disk.
type FileRef struct {
	// Path is the path the file was resolved from.
	Path string `json:"path"`
	// Name is the base name of the file.
	Name string `json:"name"`
	// Size is the file size in bytes.
	Size int64 `json:"size"`
	// ModTime is the file's last modification time.
	ModTime time.Time `json:"mod_time"`
}
