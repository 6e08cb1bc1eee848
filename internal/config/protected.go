package config

import "strings"

// systemFolders are directory names that must never be offered for deletion
// and are never descended into during a scan.
var systemFolders = map[string]bool{
	// Windows
	"windows": true, "system32": true, "syswow64": true,
	"program files": true, "program files (x86)": true, "programdata": true,
	"boot": true, "recovery": true, "$recycle.bin": true,
	"system volume information": true, "windowsapps": true, "winsxs": true,
	// macOS / Unix
	"system": true, "library": true, "applications": true,
	"bin": true, "sbin": true, "usr": true, "var": true, "tmp": true,
	"private": true, "cores": true, "dev": true, "etc": true,
	".trash": true, ".fseventsd": true, ".spotlight-v100": true,
	".documentrevisions-v100": true, ".temporaryitems": true,
	// Tooling trees that look disposable but break things when purged
	"node_modules": true, ".venv": true, "venv": true,
}

// systemPathFragments match anywhere inside a normalized path.
var systemPathFragments = []string{
	"appdata/local/temp", "appdata/local/microsoft", "appdata/roaming/microsoft",
	"library/application support", "library/caches", "library/preferences",
	"library/launchagents", "library/launchdaemons", "library/frameworks",
	"/system/", "/library/", "/private/", "/usr/", "/bin/", "/sbin/",
	"plug-ins", "plugins", "extensions", "common files",
}

// IsProtected reports whether a path lies inside a system or application
// folder. Matching is case-insensitive on path components.
func (c Config) IsProtected(path string) bool {
	norm := strings.ToLower(strings.ReplaceAll(path, "\\", "/"))

	for _, part := range strings.Split(norm, "/") {
		if part == "" {
			continue
		}
		if systemFolders[part] {
			return true
		}
		for _, extra := range c.ExtraProtected {
			if part == strings.ToLower(extra) {
				return true
			}
		}
	}

	for _, frag := range systemPathFragments {
		if strings.Contains(norm, frag) {
			return true
		}
	}
	return false
}

// Extension category tables. Categories drive feedback re-weighting and the
// disposable signal used by the classifier.
var categories = map[string][]string{
	"disposable": {
		"tmp", "temp", "cache", "bak", "old", "backup", "download", "part",
		"crdownload", "partial", "log", "dmp", "chk", "gid", "o", "obj",
		"pyc", "pyo", "class", "~", "swp", "swo",
	},
	"documents": {
		"txt", "doc", "docx", "pdf", "xls", "xlsx", "ppt", "pptx",
		"odt", "ods", "odp", "rtf", "tex", "md", "csv",
	},
	"images": {
		"jpg", "jpeg", "png", "gif", "bmp", "svg", "webp", "ico",
		"tiff", "tif", "raw", "cr2", "nef", "heic",
	},
	"videos": {
		"mp4", "avi", "mkv", "mov", "wmv", "flv", "webm", "m4v",
		"mpg", "mpeg", "3gp", "ogv",
	},
	"audio": {
		"mp3", "wav", "flac", "aac", "ogg", "wma", "m4a", "opus",
		"aiff", "ape", "alac",
	},
	"archives": {
		"zip", "rar", "7z", "tar", "gz", "bz2", "xz", "iso",
		"cab", "arj", "lzh", "ace",
	},
	"executables": {
		"exe", "msi", "bat", "cmd", "com", "scr", "dll", "sys",
	},
	"development": {
		"py", "js", "jsx", "ts", "tsx", "cpp", "c", "h", "hpp",
		"java", "jar", "cs", "csproj", "sln", "go", "rs", "rb", "php",
		"json", "xml", "yaml", "yml", "toml", "rst", "css", "scss", "sass",
		"less", "html", "htm", "vue", "sql", "db", "sqlite",
	},
	"config": {
		"ini", "cfg", "conf", "properties", "settings",
		"env", "gitignore", "dockerignore",
	},
}

var extensionCategory = func() map[string]string {
	m := make(map[string]string)
	for cat, exts := range categories {
		for _, ext := range exts {
			// First category wins for overlapping extensions; disposable is
			// checked separately so its entries always keep the signal.
			if _, ok := m[ext]; !ok {
				m[ext] = cat
			}
		}
	}
	return m
}()

var disposableExts = func() map[string]bool {
	m := make(map[string]bool)
	for _, ext := range categories["disposable"] {
		m[ext] = true
	}
	return m
}()

// Category returns the category for an extension, or "other".
func Category(ext string) string {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if disposableExts[ext] {
		return "disposable"
	}
	if cat, ok := extensionCategory[ext]; ok {
		return cat
	}
	return "other"
}

// IsDisposable reports whether an extension marks a throwaway file.
func IsDisposable(ext string) bool {
	return disposableExts[strings.ToLower(strings.TrimPrefix(ext, "."))]
}
