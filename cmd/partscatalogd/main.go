package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/talkincode/partscatalog/config"
	"github.com/talkincode/partscatalog/internal/adminapi"
	"github.com/talkincode/partscatalog/internal/app"
	"github.com/talkincode/partscatalog/internal/catalog"
	"github.com/talkincode/partscatalog/internal/imagehost"
	"github.com/talkincode/partscatalog/internal/importer"
	"github.com/talkincode/partscatalog/internal/webserver"
	"go.uber.org/zap"
)

var (
	showHelp  = flag.Bool("h", false, "show help")
	initdb    = flag.Bool("initdb", false, "drop and recreate the database schema, then exit")
	conffile  = flag.String("c", "partscatalog.yml", "config file path")
	importCsv = flag.String("import", "", "seed the catalog from a CSV file, then exit")
)

func main() {
	flag.Parse()
	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	// .env is optional, system environment still applies
	_ = godotenv.Load()

	cfg := config.LoadConfig(*conffile)
	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	if *initdb {
		application.InitDb()
		zap.S().Info("database schema recreated")
		return
	}

	if *importCsv != "" {
		seeded, err := importer.NewImporter(application.DB()).ImportFile(context.Background(), *importCsv)
		if err != nil {
			zap.S().Fatalf("csv import failed: %v", err)
		}
		zap.S().Infof("csv import finished, %d products", seeded)
		return
	}

	ws := webserver.NewWebServer(cfg.Web.Secret)
	repo := catalog.NewGormProductRepository(application.DB())
	admins := adminapi.NewGormAdminStore(application.DB())
	uploader := imagehost.NewCloudinaryClient(cfg.ImageHost)
	adminapi.NewServer(repo, admins, uploader, cfg.Web.Secret).RegisterRoutes(ws)

	go func() {
		if err := ws.Start(application.WebListenAddr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.S().Fatalf("web server error: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	received := <-sig
	zap.S().Infof("received signal %s, shutting down", received)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := ws.Shutdown(ctx); err != nil {
		zap.S().Errorf("web server shutdown failed: %v", err)
	}
}
