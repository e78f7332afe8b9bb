package store

import (
	"context"
	"database/sql"
	"errors"
)

var ErrNotFound = sql.ErrNoRows

// CacheRepo — кэш модели в Postgres. PK: (project, key); последняя запись побеждает.
type CacheRepo struct{ DB *sql.DB }

func NewCacheRepo(db *sql.DB) *CacheRepo { return &CacheRepo{DB: db} }

const schemaSQL = `
create table if not exists ml_cache (
	project    text        not null,
	key        text        not null,
	value      text        not null,
	updated_at timestamptz not null default now(),
	primary key (project, key)
)`

// EnsureSchema создаёт таблицу кэша, если её нет.
func (r *CacheRepo) EnsureSchema(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, schemaSQL)
	return err
}

// Get возвращает значение ключа; отсутствие записи — не ошибка (ok=false).
func (r *CacheRepo) Get(ctx context.Context, project, key string) (string, bool, error) {
	const q = `select value from ml_cache where project=$1 and key=$2`
	var v string
	if err := r.DB.QueryRowContext(ctx, q, project, key).Scan(&v); err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return v, true, nil
}

func (r *CacheRepo) Set(ctx context.Context, project, key, value string) error {
	const q = `
insert into ml_cache(project, key, value)
values ($1,$2,$3)
on conflict (project, key)
do update set value=excluded.value, updated_at=now()`
	_, err := r.DB.ExecContext(ctx, q, project, key, value)
	return err
}
