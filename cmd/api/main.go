package main

import (
	"log"
	"log/slog"
	"os"

	"sectorlens/internal/config"
	"sectorlens/internal/handler"
	"sectorlens/internal/server"
	"sectorlens/pkg/imagegen"
	"sectorlens/pkg/llm"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})))

	for _, key := range cfg.MissingCredentials() {
		slog.Warn("missing environment variable, dependent calls will fail", "key", key)
	}

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	sectorClient, err := llm.NewClient(cfg.LLM.Provider, llm.Options{
		APIKey:  cfg.LLM.APIKey,
		BaseURL: cfg.LLM.BaseURL,
		Model:   cfg.LLM.Model,
	})
	if err != nil {
		log.Fatalf("error creating llm client: %v", err)
	}
	imageClient := imagegen.NewHuggingFaceClient(cfg.Image.APIKey, cfg.Image.ModelURL, cfg.Image.Timeout)

	analyzeHandler := handler.NewAnalyzeHandler(sectorClient, imageClient)

	r, err := server.NewRouter(cfg, analyzeHandler)
	if err != nil {
		log.Fatalf("error building router: %v", err)
	}

	slog.Info("server running",
		"url", "http://localhost:"+cfg.Port,
		"llm_provider", sectorClient.Provider(),
		"required_keys", []string{cfg.LLM.APIKeyEnv, "HUGGINGFACE_API_KEY"},
	)

	err = r.Run(cfg.Addr())
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
