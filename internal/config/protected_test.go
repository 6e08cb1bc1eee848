package config

import "testing"

func TestIsProtected(t *testing.T) {
	cfg := Default()

	tests := []struct {
		path string
		want bool
	}{
		{"C:\\Windows\\System32\\kernel32.dll", true},
		{"/usr/bin/ls", true},
		{"/System/Library/CoreServices", true},
		{"/home/user/project/node_modules/pkg/index.js", true},
		{"/Users/me/Library/Caches/app.db", true},
		{"C:\\Users\\me\\AppData\\Local\\Temp\\x.tmp", true},
		{"/home/user/Documents/report.pdf", false},
		{"/home/user/downloads/movie.mp4", false},
	}

	for _, tt := range tests {
		if got := cfg.IsProtected(tt.path); got != tt.want {
			t.Errorf("IsProtected(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestExtraProtected(t *testing.T) {
	cfg := Default()
	cfg.ExtraProtected = []string{"Photos"}

	if !cfg.IsProtected("/home/user/Photos/2024/img.jpg") {
		t.Error("expected extra_protected folder to match")
	}
	if cfg.IsProtected("/home/user/photos-old.txt") {
		t.Error("extra_protected should match whole components only")
	}
}

func TestCategory(t *testing.T) {
	tests := []struct {
		ext  string
		want string
	}{
		{"pdf", "documents"},
		{".PDF", "documents"},
		{"jpg", "images"},
		{"tmp", "disposable"},
		{"log", "disposable"},
		{"go", "development"},
		{"xyz123", "other"},
		{"", "other"},
	}

	for _, tt := range tests {
		if got := Category(tt.ext); got != tt.want {
			t.Errorf("Category(%q) = %q, want %q", tt.ext, got, tt.want)
		}
	}
}

func TestIsDisposable(t *testing.T) {
	if !IsDisposable("bak") {
		t.Error("bak should be disposable")
	}
	if IsDisposable("docx") {
		t.Error("docx should not be disposable")
	}
}
