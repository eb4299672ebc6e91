package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/emotion-sanctuary/sanctum/pkg/cli/config"
	httpctrl "github.com/emotion-sanctuary/sanctum/pkg/controller/http"
	"github.com/emotion-sanctuary/sanctum/pkg/service/retrieval"
	"github.com/emotion-sanctuary/sanctum/pkg/usecase"
	"github.com/emotion-sanctuary/sanctum/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var addr string
	var repoCfg config.Repository
	var llmCfg config.LLM
	var personaCfg config.Personas
	var retrievalCfg config.Retrieval

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("SANCTUM_ADDR"),
			Destination: &addr,
		},
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, llmCfg.Flags()...)
	flags = append(flags, personaCfg.Flags()...)
	flags = append(flags, retrievalCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			personas, err := personaCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load personas")
			}

			embedder, err := llmCfg.ConfigureEmbedding()
			if err != nil {
				return goerr.Wrap(err, "failed to configure embedding client")
			}
			chatClient, err := llmCfg.ConfigureChat()
			if err != nil {
				return goerr.Wrap(err, "failed to configure chat client")
			}
			logging.Default().LogAttrs(ctx, slog.LevelInfo, "LLM providers configured", llmCfg.LogAttrs()...)
			ucOpts := []usecase.Option{
				usecase.WithChatClient(chatClient),
				usecase.WithPersonas(personas),
				usecase.WithRetrievalConfig(retrievalCfg.Config()),
			}
			if embedder != nil {
				assembler := retrieval.NewAssembler(embedder,
					retrieval.WithPoolSize(retrievalCfg.PoolSize()),
					retrieval.WithDedupe(retrievalCfg.Dedupe()),
				)
				ucOpts = append(ucOpts,
					usecase.WithEmbeddingClient(embedder),
					usecase.WithAssembler(assembler),
				)
			}

			uc := usecase.New(repo, ucOpts...)

			httpHandler, err := httpctrl.New(uc)
			if err != nil {
				return goerr.Wrap(err, "failed to create http server")
			}
			server := &http.Server{
				Addr:              addr,
				Handler:           httpHandler,
				ReadHeaderTimeout: 30 * time.Second,
			}

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr, "backend", repoCfg.Backend())
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
