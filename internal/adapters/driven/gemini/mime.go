package gemini

import (
	"mime"
	"path/filepath"
	"strings"
)

// DefaultMIMEType is sent when no type can be determined.
const DefaultMIMEType = "application/octet-stream"

// documentTypes covers the accepted document extensions so detection does not
// depend on the host's mime database.
var documentTypes = map[string]string{
	".txt":  "text/plain",
	".pdf":  "application/pdf",
	".md":   "text/markdown",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".html": "text/html",
	".htm":  "text/html",
	".csv":  "text/csv",
	".json": "application/json",
	".xml":  "application/xml",
}

// DetectMIMEType returns declared when set, otherwise the type implied by the
// file name's extension, otherwise DefaultMIMEType.
func DetectMIMEType(name, declared string) string {
	if m := stripParams(declared); m != "" {
		return m
	}

	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return DefaultMIMEType
	}
	if m, ok := documentTypes[ext]; ok {
		return m
	}
	if m := stripParams(mime.TypeByExtension(ext)); m != "" {
		return m
	}
	return DefaultMIMEType
}

func stripParams(m string) string {
	if i := strings.IndexByte(m, ';'); i >= 0 {
		m = m[:i]
	}
	return strings.ToLower(strings.TrimSpace(m))
}
