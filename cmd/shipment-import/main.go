// Command shipment-import importa archivos de despacho sin pasar por la API HTTP.
//
// Uso:
//
//	shipment-import [--charset WINDOWS-1252] [--shipped-by <uuid>] [--lenient] archivo.csv...
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/jhoicas/fulfillment-api/internal/bootstrap"
	"github.com/jhoicas/fulfillment-api/pkg/config"
	"github.com/jhoicas/fulfillment-api/pkg/logger"
	"github.com/spf13/cobra"
)

type options struct {
	charset   string
	shippedBy string
	lenient   bool
	verbose   bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:          "shipment-import archivo.csv...",
		Short:        "Importa archivos de despacho con la plantilla SHIPMENT",
		Long:         "Cada archivo se acepta o se rechaza completo. Termina con código distinto de cero si algún archivo falla.",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
	}
	cmd.Flags().StringVar(&opts.charset, "charset", "", "codificación de los archivos (por defecto SHIPMENT_FILE_CHARSET)")
	cmd.Flags().StringVar(&opts.shippedBy, "shipped-by", "", "usuario despachador (por defecto FULFILLMENT_SHIPPED_BY_ID)")
	cmd.Flags().BoolVar(&opts.lenient, "lenient", false, "no valida orderableId contra el catálogo")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "log detallado")
	return cmd
}

func run(cmd *cobra.Command, opts *options, files []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}
	if opts.charset != "" {
		cfg.Shipment.Charset = opts.charset
	}
	if opts.shippedBy != "" {
		cfg.Fulfillment.ShippedByID = opts.shippedBy
	}
	if opts.lenient {
		cfg.Fulfillment.StrictImport = false
	}

	level := "warn"
	if opts.verbose {
		level = "debug"
	}
	log := logger.New(logger.Config{Env: "development", Level: level})

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c, err := bootstrap.New(ctx, cfg, log, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	failed := 0
	out := json.NewEncoder(cmd.OutOrStdout())
	out.SetIndent("", "  ")
	for _, path := range files {
		if err := importOne(ctx, c, out, path); err != nil {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d de %d archivos rechazados", failed, len(files))
	}
	return nil
}

func importOne(ctx context.Context, c *bootstrap.Container, out *json.Encoder, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	res, err := c.ShipmentImporter.ImportFile(ctx, filepath.Base(path), f)
	if err != nil {
		return err
	}
	return out.Encode(res)
}
