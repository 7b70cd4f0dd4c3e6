package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"taskbot/internal/api"
	"taskbot/internal/delivery"
	"taskbot/internal/dispatcher"
	"taskbot/internal/reminder"
	"taskbot/internal/store"
)

func main() {
	var (
		addr      = flag.String("addr", ":8080", "HTTP bind address")
		publicURL = flag.String("public-url", "http://localhost:8080", "base URL advertised in the integration descriptor")
		returnURL = flag.String("return-url", "https://ping.telex.im/v1/return", "platform return webhook base URL")
		dbPath    = flag.String("db", "", "SQLite DB path; empty keeps tasks in memory")
		drain     = flag.Duration("drain", time.Second, "delivery queue drain interval (1s minimum)")
	)
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})

	st, closeDB, err := openStore(*dbPath)
	if err != nil {
		log.Fatal().Err(err).Msg("open store")
	}
	defer closeDB()

	queue := delivery.NewQueue(delivery.NewWebhook(*returnURL), *drain)
	if err := queue.Start(); err != nil {
		log.Fatal().Err(err).Msg("start delivery queue")
	}

	reminders := reminder.New(st, queue)
	disp := dispatcher.New(st, queue, reminders)

	srv := &http.Server{Addr: *addr, Handler: api.NewServer(disp, *publicURL)}
	go func() {
		log.Info().Str("addr", *addr).Msg("HTTP server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server")
		}
	}()

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
	log.Info().Msg("shutting down")
	ctxTimeout, cancelTimeout := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelTimeout()
	_ = srv.Shutdown(ctxTimeout)
	reminders.Stop()
	queue.Stop()
}

func openStore(dbPath string) (store.Store, func(), error) {
	if dbPath == "" {
		return store.NewMemory(), func() {}, nil
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=journal_mode(WAL)", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, nil, err
	}
	db.SetMaxOpenConns(1) // SQLite single writer
	if err := store.EnsureSchema(db); err != nil {
		db.Close()
		return nil, nil, err
	}
	return store.NewSQLite(db), func() { db.Close() }, nil
}
