// Command cotizador prices a quotation snapshot and prints the preview totals.
//
//	cotizador [-json] [-approve] [-metrics file.prom] [quote.json]
//
// The snapshot is read from stdin when no file is given. The exit status is
// 2 when the snapshot or the quotation is invalid, 3 when an approved
// quotation would have to change, and 1 on any other failure.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/dukerupert/cotizador/internal"
	"github.com/dukerupert/cotizador/internal/domain"
	"github.com/dukerupert/cotizador/internal/quote"
	"github.com/dukerupert/cotizador/internal/telemetry"
	"github.com/prometheus/client_golang/prometheus"
)

type preview struct {
	ID          string              `json:"id"`
	Folio       string              `json:"folio"`
	Status      quote.Status        `json:"status"`
	Totals      quote.DisplayTotals `json:"totals"`
	Adjustments []quote.Adjustment  `json:"adjustments,omitempty"`
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("cotizador", flag.ContinueOnError)
	fs.SetOutput(stderr)
	asJSON := fs.Bool("json", false, "print the totals as JSON")
	approve := fs.Bool("approve", false, "validate and approve the quotation")
	metricsPath := fs.String("metrics", "", "write Prometheus metrics to this file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(stderr, cfg.Env, cfg.LogLevel)

	reg := prometheus.NewRegistry()
	metrics := telemetry.NewQuoteMetrics(reg, cfg.Metrics.Namespace)

	session := quote.NewSession(
		quote.WithTaxRate(cfg.Quote.TaxRate),
		quote.WithHistoryLimit(cfg.Quote.HistoryLimit),
		quote.WithFolioPrefix(cfg.Quote.FolioPrefix),
		quote.WithObserver(metrics),
		quote.WithLogger(logger),
	)

	in := stdin
	source := "stdin"
	if fs.NArg() > 0 {
		source = fs.Arg(0)
		f, err := os.Open(source)
		if err != nil {
			return fmt.Errorf("failed to open quotation: %w", err)
		}
		defer f.Close()
		in = f
	}

	snap, err := quote.ReadSnapshot(in, session.Export())
	if err != nil {
		return fmt.Errorf("failed to read quotation from %s: %w", source, err)
	}
	if err := session.Import(snap); err != nil {
		return fmt.Errorf("failed to load quotation: %w", err)
	}
	logger.Debug("Quotation loaded", slog.String("source", source), slog.String("folio", session.Folio()))

	for _, adj := range session.Totals().Adjustments {
		logger.Warn("Input adjusted", slog.String("field", adj.Field), slog.String("reason", string(adj.Reason)))
	}

	if *approve && session.Status() == quote.Draft {
		if err := session.Approve(); err != nil {
			if domain.IsCode(err, domain.EINVALID) {
				if err := printRejection(stdout, stderr, err, *asJSON); err != nil {
					return err
				}
			}
			return fmt.Errorf("quotation cannot be approved: %w", err)
		}
	}

	if err := printPreview(stdout, session, cfg.Quote.CurrencySymbol, *asJSON); err != nil {
		return err
	}

	if *metricsPath != "" {
		if err := prometheus.WriteToTextfile(*metricsPath, reg); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
		logger.Debug("Metrics written", slog.String("path", *metricsPath))
	}

	return nil
}

// printRejection reports why a quotation failed validation. With asJSON the
// field errors go to stdout so callers can parse them.
func printRejection(stdout, stderr io.Writer, err error, asJSON bool) error {
	if !asJSON {
		_, werr := fmt.Fprintln(stderr, domain.ErrorMessage(err))
		return werr
	}
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Code   string            `json:"code"`
		Fields map[string]string `json:"fields"`
	}{
		Code:   domain.ErrorCode(err),
		Fields: domain.GetValidationFields(err),
	})
}

func printPreview(w io.Writer, s *quote.Session, symbol string, asJSON bool) error {
	totals := s.Totals()
	display := totals.Display(symbol)

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(preview{
			ID:          s.ID().String(),
			Folio:       s.Folio(),
			Status:      s.Status(),
			Totals:      display,
			Adjustments: totals.Adjustments,
		})
	}

	rows := []struct{ label, value string }{
		{"Folio", s.Folio()},
		{"Estado", s.Status().String()},
		{"Subtotal", display.Subtotal},
		{"Descuento", display.DiscountAmount},
		{"Base", display.TaxableBase},
		{"IVA", display.TaxAmount},
		{"Total", display.Total},
		{"Anticipo", display.DownPaymentAmount},
		{"Saldo", display.Balance},
	}
	for _, row := range rows {
		if _, err := fmt.Fprintf(w, "%-10s %s\n", row.label+":", row.value); err != nil {
			return fmt.Errorf("failed to write preview: %w", err)
		}
	}
	return nil
}

// exitCode maps an error to the process status: 2 for invalid input,
// 3 for an approved quotation that cannot change, 4 for a missing item
// and 1 for anything else.
func exitCode(err error) int {
	switch domain.ErrorCode(err) {
	case domain.EINVALID:
		return 2
	case domain.ECONFLICT:
		return 3
	case domain.ENOTFOUND:
		return 4
	}
	return 1
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		log.Print(err)
		os.Exit(exitCode(err))
	}
}
