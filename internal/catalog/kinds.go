package catalog

import (
	"path/filepath"
	"strings"
)

const (
	KindApp      = "app"
	KindDocument = "document"
	KindImage    = "image"
	KindVideo    = "video"
	KindAudio    = "audio"
	KindCode     = "code"
	KindArchive  = "archive"
)

var kindsByExtension = buildKindTable(map[string][]string{
	KindDocument: {"txt", "pdf", "doc", "docx", "xls", "xlsx", "ppt", "pptx", "odt", "ods", "odp", "rtf", "md", "csv"},
	KindImage:    {"jpg", "jpeg", "png", "gif", "bmp", "svg", "webp", "ico"},
	KindVideo:    {"mp4", "avi", "mkv", "mov", "wmv", "flv", "webm"},
	KindAudio:    {"mp3", "wav", "flac", "aac", "ogg", "wma", "m4a"},
	KindCode:     {"rs", "js", "ts", "py", "java", "c", "cpp", "h", "cs", "go", "html", "css", "json", "xml", "yaml", "yml", "toml"},
	KindArchive:  {"zip", "rar", "7z", "tar", "gz", "bz2", "xz"},
})

var appExtensions = map[string]struct{}{
	".desktop": {},
	".app":     {},
	".lnk":     {},
	".exe":     {},
}

func buildKindTable(groups map[string][]string) map[string]string {
	table := make(map[string]string)
	for kind, exts := range groups {
		for _, ext := range exts {
			table["."+ext] = kind
		}
	}
	return table
}

// KindForPath returns the display kind for a file path, or "" when the
// extension is not indexed.
func KindForPath(path string) string {
	return kindsByExtension[strings.ToLower(filepath.Ext(path))]
}

// IsApp reports whether path names an application launcher entry.
func IsApp(path string) bool {
	_, ok := appExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

func displayName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
