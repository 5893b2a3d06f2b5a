package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/pressly/goose/v3"

	_ "github.com/jackc/pgx/v5/stdlib"

	"assistant/config"
)

func main() {
	dir := flag.String("dir", "migrations", "path to migrations directory")
	timeout := flag.Duration("timeout", 10*time.Second, "DB connect timeout")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "usage: migrate [-dir path] <command>\n")
		fmt.Fprintf(os.Stderr, "commands: up | down | status | redo | reset | version\n")
		os.Exit(2)
	}
	cmd := flag.Arg(0)

	cfg := config.New()

	db, err := sql.Open("pgx", cfg.Postgres.DSN())
	if err != nil {
		fail("open db", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		fail("ping db", err)
	}

	goose.SetTableName("schema_migrations_assistant")

	if err := gooseRun(db, *dir, cmd); err != nil {
		fail("goose "+cmd, err)
	}
}

func gooseRun(db *sql.DB, dir, cmd string) error {
	switch cmd {
	case "up":
		return goose.Up(db, dir)
	case "down":
		return goose.Down(db, dir)
	case "status":
		return goose.Status(db, dir)
	case "redo":
		return goose.Redo(db, dir)
	case "reset":
		return goose.Reset(db, dir)
	case "version":
		return goose.Version(db, dir)
	default:
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

func fail(what string, err error) {
	fmt.Fprintf(os.Stderr, "migrate: %s: %v\n", what, err)
	os.Exit(1)
}
