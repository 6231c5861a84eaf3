package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/ndbaker1/tanks/internal/engine"
	"github.com/ndbaker1/tanks/internal/game"
	"github.com/ndbaker1/tanks/internal/network"
	"github.com/ndbaker1/tanks/internal/server"
	"github.com/ndbaker1/tanks/internal/session"
	"github.com/ndbaker1/tanks/internal/version"
	"github.com/ndbaker1/tanks/pkg/logger"
)

func init() {
	logger.Init()
}

func main() {
	// 1. Парсинг конфигурации
	var configPath string
	flag.StringVar(&configPath, "config", "", "Path to YAML config file")
	flag.Parse()

	logger.Log.Info("Starting Tanks Server...")
	logger.Log.Info(version.String())

	cfg, err := engine.LoadConfig(configPath)
	if err != nil {
		logger.Log.Fatal("Config error:", err)
	}

	// 2. Загрузка карт
	maps, err := game.LoadMaps(cfg.MapFile)
	if err != nil {
		logger.Log.Fatal("Map data error:", err)
	}
	mapData, ok := maps[cfg.MapName]
	if !ok {
		logger.Log.Fatalf("Map %q not found in map data", cfg.MapName)
	}
	logger.Log.Infof("🗺  Loaded %d maps, sessions run on %q", len(maps), cfg.MapName)

	// 3. Инициализация ядра
	hub := network.NewHub()
	sessions := session.NewRegistry(mapData.Environment)
	service := engine.NewService(hub, sessions)
	ticker := engine.NewTicker(hub, sessions, cfg.TickRate)

	// Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go ticker.Run(ctx)

	// 4. Запуск сервера
	srv := server.New(service, cfg.Port)

	go func() {
		if err := srv.Run(); err != nil {
			logger.Log.Fatal("Server start error:", err)
		}
	}()

	<-stop
	logger.Log.Info("Shutting down...")
	cancel()
	logger.Log.Info("Done.")
}
