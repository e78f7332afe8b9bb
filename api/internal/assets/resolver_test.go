package assets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
)

var pngHeader = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}

func writeFile(t *testing.T, p string, b []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, b, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLocalFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "imgs", "a.png"), pngHeader)
	r := New("", "", root, "", t.TempDir())

	got, err := r.LocalPath(context.Background(), "/data/local-files/?d=imgs/a.png", "1")
	if err != nil {
		t.Fatalf("local-files: %v", err)
	}
	if got != filepath.Join(root, "imgs", "a.png") {
		t.Fatalf("path %s", got)
	}

	if _, err := r.LocalPath(context.Background(), "/data/local-files/?d=imgs/missing.png", "1"); err == nil {
		t.Fatalf("missing local file must fail")
	}
	if _, err := r.LocalPath(context.Background(), "/data/local-files/", "1"); err == nil {
		t.Fatalf("no d= must fail")
	}
	if _, err := New("", "", "", "", "").LocalPath(context.Background(), "/data/local-files/?d=a.png", "1"); err == nil {
		t.Fatalf("unset root must fail")
	}
}

func TestUploadDirAndPlainPath(t *testing.T) {
	up := t.TempDir()
	writeFile(t, filepath.Join(up, "1", "b.jpg"), []byte{0xFF, 0xD8})
	r := New("", "", "", up, t.TempDir())

	got, err := r.LocalPath(context.Background(), "/data/upload/1/b.jpg", "7")
	if err != nil || got != filepath.Join(up, "1", "b.jpg") {
		t.Fatalf("upload: %s %v", got, err)
	}

	plain := filepath.Join(up, "1", "b.jpg")
	if got, err := r.LocalPath(context.Background(), plain, "7"); err != nil || got != plain {
		t.Fatalf("plain path: %s %v", got, err)
	}
}

func TestErrors(t *testing.T) {
	r := New("", "", "", "", t.TempDir())
	ctx := context.Background()
	if _, err := r.LocalPath(ctx, "  ", "1"); err != ErrEmptyURL {
		t.Fatalf("empty: %v", err)
	}
	if _, err := r.LocalPath(ctx, "/data/upload/1/x.png", "1"); err == nil {
		t.Fatalf("relative url without host must fail")
	}
	if _, err := r.LocalPath(ctx, "s3://bucket/key.png", "1"); err == nil || !strings.Contains(err.Error(), "s3") {
		t.Fatalf("s3: %v", err)
	}
}

func TestDownloadWithTokenAndCache(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.Header.Get("Authorization") != "Token secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write(pngHeader)
	}))
	defer srv.Close()

	cache := t.TempDir()
	r := New(srv.URL+"/", "secret", "", "", cache)
	ctx := context.Background()

	p, err := r.LocalPath(ctx, "/data/upload/3/pic.png", "3")
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	if filepath.Dir(p) != cache || filepath.Ext(p) != ".png" {
		t.Fatalf("path %s", p)
	}
	b, _ := os.ReadFile(p)
	if len(b) != len(pngHeader) {
		t.Fatalf("content len %d", len(b))
	}

	p2, err := r.LocalPath(ctx, srv.URL+"/data/upload/3/pic.png", "3")
	if err != nil || p2 != p {
		t.Fatalf("second resolve: %s %v", p2, err)
	}
	if hits.Load() != 1 {
		t.Fatalf("expected cached download, hits=%d", hits.Load())
	}
}

func TestDownloadSniffsExtension(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte{0xFF, 0xD8, 0xFF, 0xE0})
	}))
	defer srv.Close()

	p, err := New("", "", "", "", t.TempDir()).LocalPath(context.Background(), srv.URL+"/img?id=5", "5")
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	if filepath.Ext(p) != ".jpg" {
		t.Fatalf("ext %s", p)
	}
}

func TestDownloadForeignHostHasNoToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Errorf("token leaked to foreign host")
		}
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("nope"))
	}))
	defer srv.Close()

	r := New("http://label-studio:8080", "secret", "", "", t.TempDir())
	_, err := r.LocalPath(context.Background(), srv.URL+"/x.png", "1")
	if err == nil || !strings.Contains(err.Error(), "404") {
		t.Fatalf("expected 404 error, got %v", err)
	}
}
