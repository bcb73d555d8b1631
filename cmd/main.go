package main

import (
  "fmt"
  "os"

  "github.com/joho/godotenv"

  "github.com/simucrowd/simucrowd-backend/internal/app"
)

func main() {
  if err := godotenv.Load(); err != nil {
    fmt.Println("No .env file found, relying on environment")
  }

  application, err := app.New()
  if err != nil {
    fmt.Printf("Failed to init app: %v\n", err)
    os.Exit(1)
  }
  defer application.Close()

  application.Start()

  application.Log.Info("Server listening", "port", application.Cfg.Port)
  if err := application.Run(); err != nil {
    application.Log.Error("Server failed", "error", err)
    os.Exit(1)
  }
}
