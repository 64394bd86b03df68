package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"notes-api/internal/config"
	"notes-api/internal/server"
)

const configFile = "config.yml"

func main() {
	// Загружаем конфигурацию из файла (отсутствующий файл -> дефолты + окружение)
	appConfig, err := config.Load(configFile)
	if err != nil {
		log.Fatalf("Error initializing config: %v", err)
	}

	log.Printf("Starting %s (env=%s, log_level=%s)", appConfig.App.Name, appConfig.App.Env, appConfig.Logger.Level)
	if appConfig.App.EnableFTS {
		// Флаг принимается, но функциональность зарезервирована
		log.Println("Full-text search flag is set but not implemented, ignoring")
	}

	srv, err := server.NewServer(appConfig)
	if err != nil {
		log.Fatalf("Error initializing server: %v", err)
	}

	// Канал для graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	errChan := srv.Start()

	// Ожидание сигнала или ошибки
	select {
	case err := <-errChan:
		log.Fatalf("Server error: %v", err)
	case sig := <-sigChan:
		log.Printf("Received signal: %v. Starting graceful shutdown...", sig)
	}

	if err := srv.Shutdown(); err != nil {
		log.Printf("Shutdown error: %v", err)
	}

	log.Printf("%s stopped", appConfig.App.Name)
}
