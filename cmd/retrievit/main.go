// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/poiesic/retrievit"
	"github.com/poiesic/retrievit/ai"
	"github.com/poiesic/retrievit/httpapi"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "retrievit",
		Usage: "Hybrid semantic search over video transcript corpora",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "Path to a dotenv file loaded before anything else",
				Value: ".env",
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Build the index and serve the HTTP search API",
				Action: serveCommand,
				Flags: append(aiFlags(),
					&cli.StringFlag{
						Name:     "corpus",
						Aliases:  []string{"c"},
						Usage:    "Path to the transcript corpus JSON file",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "cache",
						Usage: "Path to the embedding cache directory (empty disables caching)",
					},
					&cli.StringFlag{
						Name:    "addr",
						Aliases: []string{"a"},
						Usage:   "Listen address for the HTTP API",
						Value:   ":8000",
					},
				),
			},
			{
				Name:   "warm-cache",
				Usage:  "Embed the corpus into the cache without serving",
				Action: warmCacheCommand,
				Flags: append(aiFlags(),
					&cli.StringFlag{
						Name:     "corpus",
						Aliases:  []string{"c"},
						Usage:    "Path to the transcript corpus JSON file",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "cache",
						Usage:    "Path to the embedding cache directory",
						Required: true,
					},
				),
			},
			{
				Name:      "search",
				Usage:     "Build the index and run a single query from the command line",
				ArgsUsage: "QUERY...",
				Action:    searchCommand,
				Flags: append(aiFlags(),
					&cli.StringFlag{
						Name:     "corpus",
						Aliases:  []string{"c"},
						Usage:    "Path to the transcript corpus JSON file",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "cache",
						Usage: "Path to the embedding cache directory (empty disables caching)",
					},
					&cli.IntFlag{
						Name:    "max-results",
						Aliases: []string{"n"},
						Usage:   "Maximum number of results to return",
						Value:   5,
					},
				),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// aiFlags are the provider flags shared by serve and search.
func aiFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "ai-host",
			Usage:   "OpenAI-compatible service host URL",
			Value:   "http://localhost:11434/v1",
			EnvVars: []string{"RETRIEVIT_AI_HOST"},
		},
		&cli.StringFlag{
			Name:    "embedding-model",
			Usage:   "Embedding model name",
			Value:   "embeddinggemma",
			EnvVars: []string{"RETRIEVIT_EMBEDDING_MODEL"},
		},
		&cli.StringFlag{
			Name:    "recommender-model",
			Usage:   "Recommendation model name",
			Value:   "qwen2.5:3b",
			EnvVars: []string{"RETRIEVIT_RECOMMENDER_MODEL"},
		},
		&cli.StringFlag{
			Name:    "token",
			Usage:   "API token for the AI service",
			Value:   "none",
			EnvVars: []string{"RETRIEVIT_AI_TOKEN", "OPENAI_API_KEY"},
		},
	}
}

func newService(c *cli.Context) (*retrievit.Service, error) {
	cfg := ai.NewConfig(
		ai.WithHost(c.String("ai-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithRecommenderModel(c.String("recommender-model")),
		ai.WithToken(c.String("token")),
	)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := []retrievit.ServiceOption{retrievit.WithAIConfig(cfg)}
	if cachePath := c.String("cache"); cachePath != "" {
		opts = append(opts, retrievit.WithCachePath(cachePath))
	}

	return retrievit.NewService(c.String("corpus"), opts...)
}

func serveCommand(c *cli.Context) error {
	service, err := newService(c)
	if err != nil {
		return err
	}
	defer service.Close()

	slog.Info("building index", "corpus", c.String("corpus"))
	if err := service.Build(c.Context); err != nil {
		return fmt.Errorf("index build failed: %w", err)
	}

	handler, err := httpapi.NewHandler(service.Engine())
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              c.String("addr"),
		Handler:           handler.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("serving", "addr", server.Addr)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		slog.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func warmCacheCommand(c *cli.Context) error {
	service, err := newService(c)
	if err != nil {
		return err
	}
	defer service.Close()

	if err := service.Build(c.Context); err != nil {
		return fmt.Errorf("index build failed: %w", err)
	}

	status := service.Engine().Status()
	fmt.Printf("Cached embeddings for %d segments across %d videos\n", status.Segments, status.Videos)
	return nil
}

func searchCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("no query given")
	}
	query := strings.Join(c.Args().Slice(), " ")

	service, err := newService(c)
	if err != nil {
		return err
	}
	defer service.Close()

	if err := service.Build(c.Context); err != nil {
		return fmt.Errorf("index build failed: %w", err)
	}

	res, err := service.Query(c.Context, query, c.Int("max-results"))
	if err != nil {
		return err
	}

	fmt.Printf("Found %d hits\n", len(res.Results))
	for _, hit := range res.Results {
		fmt.Printf("%d: %s @ %s [fused=%0.3f sem=%0.3f lex=%0.3f]\n",
			hit.Rank, hit.Video.Title, hit.Timestamp(), hit.FusedScore, hit.SemanticScore, hit.LexicalScore)
		fmt.Printf("   %s\n", hit.Segment.Text)
		fmt.Printf("   %s\n", hit.WatchURL())
	}
	if res.Degraded {
		fmt.Println("\n(recommendation unavailable)")
	} else if res.Recommendation != "" {
		fmt.Printf("\n%s\n", res.Recommendation)
	}

	return nil
}

// setup loads the dotenv file and configures the default logger from the
// log-level flag. A missing default .env is not an error.
func setup(c *cli.Context) error {
	envFile := c.String("env-file")
	if err := godotenv.Load(envFile); err != nil {
		if envFile != ".env" || !os.IsNotExist(err) {
			return fmt.Errorf("loading env file %q: %w", envFile, err)
		}
	}

	levelStr := strings.ToLower(c.String("log-level"))
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
