package main

import (
	"io"
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	html "github.com/gofiber/template/html/v2"

	"prodx/internal/config"
	"prodx/internal/http/handlers"
	applog "prodx/internal/log"
	"prodx/internal/mailer"
	"prodx/internal/repos"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
			applog.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}
	if err := repos.SeedAdmin(db, cfg.AdminEmail, cfg.AdminName, cfg.AdminPassword); err != nil {
		log.Fatal(err)
	}
	if cfg.SeedDemo {
		if err := repos.SeedDemo(db); err != nil {
			log.Fatal(err)
		}
	}

	mail, err := mailer.New(cfg.SMTP)
	if err != nil {
		log.Fatal(err)
	}
	if cfg.SMTP.Host == "" {
		log.Printf("[mail] SMTP_HOST not set; decision emails are logged, not sent")
	}

	// Templates & app
	engine := html.New(cfg.TemplatesDir, ".html")
	engine.Reload(true)

	app := fiber.New(fiber.Config{
		Views:        engine,
		ErrorHandler: handlers.ErrorHandler,
	})
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	deps := handlers.NewDeps(db, cfg, mail)
	handlers.Register(app, deps, handlers.RouteOptions{
		StaticDir: cfg.StaticDir,
		LoginMax:  5,
		Metrics:   cfg.MetricsEnabled,
	})
	if cfg.MetricsEnabled {
		log.Printf("[metrics] /metrics is unauthenticated; restrict it to the scraper's network")
	}

	log.Fatal(app.Listen(":" + cfg.Port))
}
