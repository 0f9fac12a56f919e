// Command lzcodecd serves the LZ77 codec over HTTP.
package main

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/op/go-logging"

	"github.com/adilg123/lz77-elias-codec/internal/api"
	"github.com/adilg123/lz77-elias-codec/internal/config"
	"github.com/adilg123/lz77-elias-codec/internal/logger"
)

var log = logging.MustGetLogger("lzcodecd")

func main() {
	cfg, err := config.LoadWithFile(os.Getenv(config.ConfigFileEnv))
	if err != nil {
		fmt.Fprintf(os.Stderr, "lzcodecd: %v\n", err)
		os.Exit(2)
	}
	logger.Setup("lzcodecd: ", cfg.LogLevel, os.Stderr)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.MaxMultipartMemory = cfg.MaxFileSize
	api.SetupRoutes(router, cfg)

	log.Infof("listening on :%s (window %d, lookahead %d, max upload %d bytes)",
		cfg.Port, cfg.WindowLimit, cfg.LookaheadLimit, cfg.MaxFileSize)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Criticalf("server stopped: %v", err)
		os.Exit(1)
	}
}
