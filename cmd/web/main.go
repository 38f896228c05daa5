package main

import (
	"log"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/signlingo/backend/internal/web"
	zlog "github.com/signlingo/backend/pkg/log"
)

func run() error {
	logger := zlog.Init(os.Getenv("SGL_ENVIRONMENT"), zlog.FileConfig{
		Path:       os.Getenv("SGL_LOG_FILE"),
		MaxSizeMB:  100,
		MaxBackups: 3,
	})
	defer zlog.Sync()

	return web.Run(logger)
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("%+v\n", err)
	}
}
