package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"hiphop_lyrics_generator/config"
	"hiphop_lyrics_generator/generator"
	"hiphop_lyrics_generator/server"
)

// mockCredential stands in for an API key when the mock provider is selected.
const mockCredential = config.Credential("mock")

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})

	configPath := flag.String("config", "", "optional path to config.json")
	addr := flag.String("addr", "", "http listen address (overrides config/SERVER_ADDR)")
	provider := flag.String("provider", "", "llm provider: openai, deepseek or mock (overrides config/LLM_PROVIDER)")
	verbose := flag.Bool("v", false, "enable debug logs")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *provider != "" {
		cfg.LLM.Provider = *provider
	}
	if *addr != "" {
		cfg.ServerAddr = *addr
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose || cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	llm, cred, err := buildLLM(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("llm setup failed")
	}
	if !cred.Configured() {
		log.Warn().Str("key_url", config.KeyURL).Msg("OPENAI_API_KEY not configured; generation is disabled")
	}

	srv, err := server.New(llm, cred, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("server setup failed")
	}

	httpSrv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: srv.Routes(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		log.Info().Msg("shutdown signal, stopping server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	log.Info().
		Str("addr", cfg.ServerAddr).
		Str("provider", cfg.LLM.Provider).
		Str("model", cfg.LLM.Model).
		Msg("starting web server")
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// buildLLM returns the provider client and the credential gating it. With an
// unconfigured key no client is built; the controller blocks every attempt.
func buildLLM(cfg config.Config) (generator.LLMClient, config.Credential, error) {
	switch cfg.LLM.Provider {
	case "mock":
		return generator.MockLLM{}, mockCredential, nil
	case "openai", "deepseek":
		// deepseek speaks the OpenAI API; config.Load already requires its base_url.
		cred := cfg.Credential()
		if !cred.Configured() {
			return nil, cred, nil
		}
		llm, err := generator.NewOpenAILLMFromConfig(&generator.LLMSettings{
			Provider: cfg.LLM.Provider,
			Model:    cfg.LLM.Model,
			APIKey:   cfg.LLM.APIKey,
			BaseURL:  cfg.LLM.BaseURL,
		})
		if err != nil {
			return nil, "", err
		}
		return llm, cred, nil
	default:
		return nil, "", fmt.Errorf("llm provider %s not supported", cfg.LLM.Provider)
	}
}
