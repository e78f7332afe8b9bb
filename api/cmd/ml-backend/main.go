package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver

	"mlbackend/api/internal/assets"
	"mlbackend/api/internal/config"
	"mlbackend/api/internal/handle"
	"mlbackend/api/internal/httpserver"
	"mlbackend/api/internal/ml"
	"mlbackend/api/internal/ml/mock"
	"mlbackend/api/internal/store"
	"mlbackend/api/internal/telegram"
)

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cache, closeCache := openCache(ctx, cfg)
	defer closeCache()

	cacheDir := ""
	if cfg.ModelDir != "" {
		cacheDir = filepath.Join(cfg.ModelDir, "assets")
	}
	resolver := assets.New(cfg.LabelStudioURL, cfg.LabelStudioAPIKey, cfg.LocalFilesRoot, cfg.MediaDir, cacheDir)

	var genOpts []mock.Option
	if cfg.RandomSeed != 0 {
		genOpts = append(genOpts, mock.WithSeed(cfg.RandomSeed))
	}
	model := mock.New(cache, resolver, mock.NewGenerator(genOpts...))
	model.DefaultVersion = cfg.ModelVersion

	if cfg.TelegramBotToken != "" && cfg.TelegramChatID != 0 {
		n, err := telegram.NewNotifier(cfg.TelegramBotToken, cfg.TelegramChatID)
		if err != nil {
			log.Printf("telegram notifier disabled: %v", err)
		} else {
			model.Notifier = n
			log.Printf("telegram notifier: chat %d", cfg.TelegramChatID)
		}
	}

	mux := http.NewServeMux()
	handle.New(model).Routes(mux)

	addr := "0.0.0.0:" + cfg.Port
	log.Printf("ml-backend %s: cache=%s model_version=%s", model.Name(), cfg.CacheBackend, cfg.ModelVersion)
	if err := httpserver.Start(ctx, addr, handle.BasicAuth(cfg.BasicAuthUser, cfg.BasicAuthPass, mux)); err != nil {
		log.Fatal(err)
	}
}

func openCache(ctx context.Context, cfg *config.Config) (ml.Cache, func()) {
	switch cfg.CacheBackend {
	case "", "memory":
		return store.NewMemoryCache(), func() {}
	case "postgres":
	default:
		log.Fatalf("unknown CACHE_BACKEND %q: use memory or postgres", cfg.CacheBackend)
	}

	dsn := resolveDSN()
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Fatalf("sql.Open: %v", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(1 * time.Hour)

	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pctx); err != nil {
		log.Fatalf("db.Ping: %v", err)
	}
	log.Printf("db connected: %s", safeDSNSummary(dsn))

	repo := store.NewCacheRepo(db)
	if err := repo.EnsureSchema(pctx); err != nil {
		log.Fatalf("ensure schema: %v", err)
	}
	return repo, func() { _ = db.Close() }
}

func resolveDSN() string {
	if v := strings.TrimSpace(os.Getenv("DATABASE_URL")); v != "" {
		return v
	}
	user := getenvDefault("POSTGRES_USER", "mlbackend")
	pass := os.Getenv("POSTGRES_PASSWORD")
	host := getenvDefault("PGHOST", "db")
	port := getenvDefault("PGPORT", "5432")
	db := getenvDefault("POSTGRES_DB", "mlbackend")

	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(user, pass),
		Host:     net.JoinHostPort(host, port),
		Path:     "/" + db,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

func getenvDefault(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func safeDSNSummary(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil {
		return "dsn: parse error"
	}
	user := u.User.Username()
	host := u.Host
	port := ""
	if h, p, err := net.SplitHostPort(u.Host); err == nil {
		host, port = h, p
	}
	db := strings.TrimPrefix(u.Path, "/")
	if port == "" {
		return fmt.Sprintf("host=%s db=%s user=%s", host, db, user)
	}
	return fmt.Sprintf("host=%s port=%s db=%s user=%s", host, port, db, user)
}
