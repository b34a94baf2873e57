package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/kenimay/billdesk/internal/config"
	"github.com/kenimay/billdesk/internal/document"
	"github.com/urfave/cli/v2"
)

func newLogger(cfg config.Config) *slog.Logger {
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

func main() {
	// Load environment variables from .env file
	_ = godotenv.Load()
	cfg := config.Load()
	logger := newLogger(cfg)

	app := &cli.App{
		Name:  "billdesk",
		Usage: "invoices, quotations and payslips from your terminal",
		Commands: []*cli.Command{
			{
				Name:  "invoice",
				Usage: "open an interactive invoice desk",
				Action: func(*cli.Context) error {
					return runDesk(cfg, logger, document.InvoiceSchema())
				},
			},
			{
				Name:  "quote",
				Usage: "open an interactive quotation desk",
				Action: func(*cli.Context) error {
					return runDesk(cfg, logger, document.QuoteSchema())
				},
			},
			{
				Name:  "payslip",
				Usage: "open an interactive payslip calculator (live-only, never saved)",
				Action: func(*cli.Context) error {
					return runDesk(cfg, logger, document.PayslipSchema())
				},
			},
			{
				Name:      "history",
				Usage:     "list saved documents of a kind",
				ArgsUsage: "invoice|quote",
				Action: func(ctx *cli.Context) error {
					return runHistory(cfg, logger, ctx.Args().First())
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Error("billdesk failed", "error", err)
		os.Exit(1)
	}
}
