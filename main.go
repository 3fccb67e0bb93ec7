package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"rentagent/app/client/rentalapi"
	"rentagent/app/config"
	"rentagent/app/server"
	"rentagent/app/service/dialog"
	"rentagent/app/service/extract"
	"rentagent/app/service/mcptools"
	"rentagent/app/service/session"
	"rentagent/app/util/mylog"
	"strings"

	"github.com/gofiber/fiber/v2/log"
	"github.com/samber/do"
)

func main() {
	di := do.New()
	defer di.Shutdown()
	defer log.Info("Waiting for services to finish...")

	mylog.Preinit()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	do.ProvideValue(di, appCtx)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	do.ProvideValue(di, cfg)

	if err = mylog.Init(cfg); err != nil {
		log.Fatalf("logging init failed: %v", err)
	}

	do.Provide(di, rentalapi.NewClient)
	do.Provide(di, extract.NewModelExtractor)
	do.Provide(di, session.New)
	do.Provide(di, dialog.New)
	do.Provide(di, mcptools.New)
	do.Provide(di, server.New)

	if args := os.Args[1:]; len(args) > 0 {
		reply, _ := do.MustInvoke[*dialog.Service](di).Reply(appCtx, "", strings.Join(args, " "), "")
		fmt.Println(reply)
		return
	}

	slog.Info("Service started")

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt)
		<-sigint

		log.Info("Shutting down...")

		cancel()
	}()

	if cfg.MCP.Enabled {
		go func() {
			if err := do.MustInvoke[*mcptools.Service](di).Run(appCtx); err != nil {
				slog.Error("MCP toolset stopped", slog.Any("error", err))
			}
		}()
	}

	if err = do.MustInvoke[*server.Server](di).Run(appCtx); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
