package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"rental-backend/internal/config"
	"rental-backend/internal/database"
	"rental-backend/internal/logging"
	"rental-backend/internal/rental"
	"rental-backend/internal/search"
	"rental-backend/internal/server"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()
	logger, err := logging.Init(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck
	for _, w := range cfg.Warnings {
		zap.S().Warnf("[WARN] %s", w)
	}

	rootCmd := &cobra.Command{
		Use:   "rental-backend",
		Short: "Kiralık mülk yönetim servisi",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), cfg)
		},
	}
	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "HTTP sunucusunu başlatır",
			RunE: func(cmd *cobra.Command, args []string) error {
				return serve(cmd.Context(), cfg)
			},
		},
		&cobra.Command{
			Use:   "initdb",
			Short: "Eksik tabloları oluşturur ve çıkar",
			RunE: func(cmd *cobra.Command, args []string) error {
				db, err := database.Open(cfg)
				if err != nil {
					return err
				}
				return database.Close(db)
			},
		},
		&cobra.Command{
			Use:   "search [query]",
			Short: "Yükleme klasöründe arama yapar, sonucu JSON basar",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				searcher := search.New(cfg.UploadDir, search.DefaultExtractors(cfg.PDFExtraction), 0)
				defer searcher.Close()

				result, err := searcher.Search(cmd.Context(), strings.Join(args, " "))
				if err != nil {
					return err
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			},
		},
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		zap.S().Error(err)
		_ = logger.Sync()
		os.Exit(1)
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	db, err := database.Open(cfg)
	if err != nil {
		return err
	}
	defer database.Close(db) //nolint:errcheck

	store := rental.NewStore(db, cfg.PropertyDeletePolicy)
	searcher := search.New(cfg.UploadDir, search.DefaultExtractors(cfg.PDFExtraction), cfg.SearchCacheTTL)
	defer searcher.Close()

	app := server.New(cfg, store, searcher)

	go func() {
		<-ctx.Done()
		zap.S().Info("Kapatılıyor...")
		if err := app.Shutdown(); err != nil {
			zap.S().Errorf("Sunucu kapatılamadı: %v", err)
		}
	}()

	zap.S().Infof("Sunucu çalışıyor: http://0.0.0.0:%s (db=%s, uploads=%s)", cfg.HTTPPort, cfg.DatabaseDSN, cfg.UploadDir)
	return app.Listen("0.0.0.0:" + cfg.HTTPPort)
}
