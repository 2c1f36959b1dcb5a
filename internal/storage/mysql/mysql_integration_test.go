//go:build integration || !unit

package mysql_test

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	mysqlrepo "jetset_booking/internal/storage/mysql"
)

func migrationsDir(t *testing.T) string {
	t.Helper()
	if v := os.Getenv("MIGRATIONS_DIR"); v != "" {
		return v
	}
	return filepath.Join("..", "..", "..", "migrations")
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := migrationsDir(t)

	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir %s: %v", dir, err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)

	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

func startMySQL(t *testing.T) *sql.DB {
	t.Helper()
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("dockertest unavailable: %v", err)
	}
	if err := pool.Client.Ping(); err != nil {
		t.Skipf("docker daemon unavailable: %v", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=jetset",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	dsn := fmt.Sprintf("root:root@tcp(127.0.0.1:%s)/jetset?parseTime=true&multiStatements=true&loc=UTC",
		resource.GetPort("3306/tcp"))

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	applyMigrations(t, db)
	return db
}

func TestSessions_MySQL_Lifecycle(t *testing.T) {
	db := startMySQL(t)
	ctx := context.Background()
	store := mysqlrepo.New(db, time.Hour)

	id, err := store.CreateSession(ctx, 42)
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	uid, ok, err := store.ReadSessionUserID(ctx, id)
	if err != nil || !ok || uid != 42 {
		t.Fatalf("ReadSessionUserID: uid=%d ok=%v err=%v", uid, ok, err)
	}

	if _, ok, _ := store.ReadSessionUserID(ctx, "missing"); ok {
		t.Fatalf("unknown session must be absent")
	}

	if err := store.DeleteSession(ctx, id); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	if _, ok, _ := store.ReadSessionUserID(ctx, id); ok {
		t.Fatalf("deleted session must be absent")
	}
}

func TestSessions_MySQL_Expiry(t *testing.T) {
	db := startMySQL(t)
	ctx := context.Background()

	store := mysqlrepo.New(db, time.Second)
	id, err := store.CreateSession(ctx, 7)
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	time.Sleep(2100 * time.Millisecond)

	if _, ok, _ := store.ReadSessionUserID(ctx, id); ok {
		t.Fatalf("expired session must be absent")
	}
	n, err := store.Purge(ctx)
	if err != nil || n != 1 {
		t.Fatalf("Purge: n=%d err=%v", n, err)
	}
}
