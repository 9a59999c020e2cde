package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/farellandr/dataswift/internal/server"
)

func main() {
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		log.Fatal("Error loading .env file")
	}

	if err := server.Start(); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
