package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/snp-tools/examgen/internal/auth"
	"github.com/snp-tools/examgen/internal/bank"
	"github.com/snp-tools/examgen/internal/config"
	"github.com/snp-tools/examgen/internal/db"
	"github.com/snp-tools/examgen/internal/engine"
	"github.com/snp-tools/examgen/internal/errlog"
	"github.com/snp-tools/examgen/internal/httpapi"
)

func main() {
	cfg := config.FromEnv()

	storePath := flag.String("store", cfg.StorePath, "Path to the question bank (CSV file, sqlite file, or postgres DSN)")
	driver := flag.String("driver", cfg.StoreDriver, "Store driver: csv|sqlite|postgres (inferred from -store when empty)")
	outputDir := flag.String("output", cfg.OutputDir, "Output directory for exam documents")
	sampleSize := flag.Int("sample-size", cfg.SampleSize, "Number of questions to sample")
	serve := flag.Bool("serve", false, "Start the local preview server instead of generating once")
	addr := flag.String("addr", cfg.HTTPAddr, "Listen address for -serve")
	errorLog := flag.String("error-log", cfg.ErrorLog, "Persistent error log file")
	verbose := flag.Bool("verbose", false, "Enable verbose output")
	flag.Parse()

	cfg.StorePath = *storePath
	cfg.StoreDriver = *driver
	cfg.OutputDir = *outputDir
	cfg.SampleSize = *sampleSize

	if cfg.StorePath == "" {
		fmt.Fprintln(os.Stderr, "Error: store location required")
		fmt.Fprintln(os.Stderr, "Usage: examgen -store <bank> [-output <dir>] [-sample-size <n>] [-serve]")
		os.Exit(1)
	}

	log, closeLog, err := errlog.New(*errorLog, *verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: open error log: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	if err := engine.Preflight(cfg.Driver(), cfg.StorePath, cfg.OutputDir); err != nil {
		log.Errorw("preflight failed", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	store, closeStore, err := openStore(ctx, cfg)
	cancel()
	if err != nil {
		log.Errorw("open store failed", "store", cfg.StorePath, "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeStore()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	svc := engine.NewService(store, cfg.OutputDir, rng, log)

	if *serve {
		authSvc := auth.NewAuthService(cfg.AuthSecret)
		srv := httpapi.NewServer(store, svc, authSvc, cfg.OperatorPassHash, cfg.OutputDir, cfg.SampleSize, log)
		log.Infow("preview server listening", "addr", *addr)
		if err := http.ListenAndServe(*addr, srv.Router(cfg.CORSOrigins)); err != nil {
			log.Errorw("server stopped", "error", err)
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	run, err := svc.Run(context.Background(), cfg.SampleSize)
	if err != nil {
		log.Errorw("generation run failed", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Exam test #%d written to %s\n", run.Generation, run.DocumentPath)
}

func openStore(ctx context.Context, cfg config.Config) (bank.Store, func(), error) {
	switch cfg.Driver() {
	case "csv":
		return bank.NewCSVStore(cfg.StorePath), func() {}, nil
	case "sqlite":
		dsn := "file:" + cfg.StorePath + "?_pragma=busy_timeout(5000)"
		dbh, err := db.Open(ctx, db.DriverSQLite, dsn)
		if err != nil {
			return nil, nil, err
		}
		return bank.NewSQLStore(dbh, "sqlite"), func() { dbh.Close() }, nil
	case "postgres":
		dbh, err := db.Open(ctx, db.DriverPostgres, cfg.StorePath)
		if err != nil {
			return nil, nil, err
		}
		return bank.NewSQLStore(dbh, "postgres"), func() { dbh.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unsupported store driver: %s", cfg.Driver())
	}
}
