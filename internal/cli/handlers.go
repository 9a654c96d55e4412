package cli

import (
	"context"
	"io"
	"time"

	"github.com/BartekS5/barberia/internal/config"
	"github.com/BartekS5/barberia/internal/etl"
	"github.com/BartekS5/barberia/internal/report"
	"github.com/BartekS5/barberia/pkg/database"
	"github.com/BartekS5/barberia/pkg/logger"
)

func runMigration(ctx context.Context, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	if err := logger.InitLogger(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	}); err != nil {
		return err
	}
	defer logger.Close()

	src, err := etl.OpenSource(cfg.Legacy)
	if err != nil {
		logger.Errorf("Cannot open legacy database: %v", err)
		return err
	}
	defer src.Close()

	dst, err := etl.OpenTarget(ctx, cfg.Target.Path, cfg.Target.Schema)
	if err != nil {
		logger.Errorf("Cannot prepare target database: %v", err)
		return err
	}
	defer dst.Close()

	pipeline := etl.NewPipeline(src, dst,
		etl.NewValidator(cfg.Migration.CashCustomerName),
		etl.NewTransformer(cfg.Migration.BirthDatePlaceholder))

	if cfg.Archive.Enabled() {
		client, err := database.ConnectMongo(cfg.Archive.MongoURI)
		if err != nil {
			logger.Warnf("Legacy archive disabled: %v", err)
		} else {
			defer func() {
				dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = client.Disconnect(dctx)
			}()
			pipeline.Archiver = etl.NewMongoArchiver(client, cfg.Archive.Database)
		}
	}

	logger.Infof("Legacy: %s  Target: %s", cfg.Legacy.Path, cfg.Target.Path)
	summary := pipeline.Run(ctx)

	report.Print(out, summary)
	if cfg.Report.XLSXPath != "" {
		if err := report.ExportXLSX(cfg.Report.XLSXPath, summary); err != nil {
			logger.Errorf("%v", err)
		} else {
			logger.Infof("Summary written to %s", cfg.Report.XLSXPath)
		}
	}
	return nil
}
