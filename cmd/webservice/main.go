package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/alimikegami/apparel-store/config"
	"github.com/alimikegami/apparel-store/internal/app"
	"github.com/alimikegami/apparel-store/internal/infrastructure/database/mongodb"
)

func main() {
	config := config.CreateNewConfig()
	db, err := mongodb.ConnectToMongoDB(config.MongoDBConfig.URI, config.MongoDBConfig.DBName)
	if err != nil {
		log.Fatalf("Failed to connect to the database: %v", err)
	}
	defer db.Client().Disconnect(context.Background())

	server := app.App{
		DB:     db,
		Config: config,
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit

		if err := server.StopServer(); err != nil {
			log.Printf("Failed to stop server: %v", err)
		}
	}()

	server.Start()
}
