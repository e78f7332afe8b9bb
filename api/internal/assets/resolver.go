package assets

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"mlbackend/api/internal/util"
)

const (
	localFilesPrefix = "/data/local-files/"
	uploadPrefix     = "/data/upload/"
)

var ErrEmptyURL = errors.New("empty image url")

// Resolver находит локальный файл для url из задачи: local-files, upload,
// путь на диске или скачивание по http(s) в кэш-директорию.
type Resolver struct {
	HostURL        string // LABEL_STUDIO_URL
	APIKey         string // LABEL_STUDIO_API_KEY
	LocalFilesRoot string
	UploadDir      string
	CacheDir       string

	httpc *http.Client
}

func New(hostURL, apiKey, localFilesRoot, uploadDir, cacheDir string) *Resolver {
	if cacheDir == "" {
		cacheDir = filepath.Join(os.TempDir(), "ml-backend-cache")
	}
	return &Resolver{
		HostURL:        strings.TrimRight(hostURL, "/"),
		APIKey:         apiKey,
		LocalFilesRoot: localFilesRoot,
		UploadDir:      uploadDir,
		CacheDir:       cacheDir,
		httpc:          &http.Client{Timeout: 60 * time.Second},
	}
}

func (r *Resolver) LocalPath(ctx context.Context, raw, taskID string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyURL
	}

	if strings.HasPrefix(raw, localFilesPrefix) {
		return r.localFile(raw)
	}
	if strings.HasPrefix(raw, uploadPrefix) && r.UploadDir != "" {
		p := filepath.Join(r.UploadDir, filepath.FromSlash(strings.TrimPrefix(raw, uploadPrefix)))
		if fileExists(p) {
			return p, nil
		}
	}
	if fileExists(raw) {
		return raw, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}
	if u.Scheme == "" && strings.HasPrefix(raw, "/") {
		if r.HostURL == "" {
			return "", fmt.Errorf("relative url %q needs LABEL_STUDIO_URL", raw)
		}
		raw = r.HostURL + raw
		if u, err = url.Parse(raw); err != nil {
			return "", fmt.Errorf("parse url: %w", err)
		}
	}
	switch u.Scheme {
	case "http", "https":
		return r.download(ctx, u, taskID)
	default:
		return "", fmt.Errorf("unsupported url scheme %q", u.Scheme)
	}
}

// localFile: /data/local-files/?d=<относительный путь от LOCAL_FILES_DOCUMENT_ROOT>
func (r *Resolver) localFile(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse local-files url: %w", err)
	}
	rel := u.Query().Get("d")
	if rel == "" {
		return "", fmt.Errorf("local-files url %q has no d= parameter", raw)
	}
	if r.LocalFilesRoot == "" {
		return "", fmt.Errorf("local-files url %q needs LOCAL_FILES_DOCUMENT_ROOT", raw)
	}
	p := filepath.Join(r.LocalFilesRoot, filepath.FromSlash(rel))
	if !fileExists(p) {
		return "", fmt.Errorf("local file %s not found", p)
	}
	return p, nil
}

func (r *Resolver) download(ctx context.Context, u *url.URL, taskID string) (string, error) {
	h := sha256.Sum256([]byte(u.String()))
	base := hex.EncodeToString(h[:])[:16]

	ext := strings.ToLower(path.Ext(u.Path))
	if ext != "" {
		p := filepath.Join(r.CacheDir, base+ext)
		if fileExists(p) {
			return p, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	if r.APIKey != "" && r.isHost(u) {
		req.Header.Set("Authorization", "Token "+r.APIKey)
	}
	resp, err := r.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("download task %s: status %d: %s", taskID, resp.StatusCode, strings.TrimSpace(string(b)))
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	if ext == "" {
		ext = util.ExtForMime(util.SniffMimeHTTP(body))
	}

	if err := os.MkdirAll(r.CacheDir, 0o755); err != nil {
		return "", fmt.Errorf("cache dir: %w", err)
	}
	p := filepath.Join(r.CacheDir, base+ext)
	tmp := p + ".part"
	if err := os.WriteFile(tmp, body, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, p); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("rename %s: %w", p, err)
	}
	return p, nil
}

func (r *Resolver) isHost(u *url.URL) bool {
	if r.HostURL == "" {
		return false
	}
	hu, err := url.Parse(r.HostURL)
	if err != nil {
		return false
	}
	return strings.EqualFold(hu.Host, u.Host)
}

func fileExists(p string) bool {
	st, err := os.Stat(p)
	return err == nil && !st.IsDir()
}
