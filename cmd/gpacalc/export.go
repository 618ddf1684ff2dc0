package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/nvoss/gpacalc/internal/config"
	"github.com/nvoss/gpacalc/internal/entitlement"
	"github.com/nvoss/gpacalc/internal/export"
)

var (
	exportOut      string
	exportFormat   string
	exportWeighted bool
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the transcript to a file",
		Args:  cobra.NoArgs,
		RunE:  runExportCmd,
	}
	cmd.Flags().StringVar(&exportOut, "out", "", "output path (default: exports directory)")
	cmd.Flags().StringVar(&exportFormat, "format", "csv", "output format (csv or text)")
	cmd.Flags().BoolVar(&exportWeighted, "weighted", false, "apply weighting bonuses (premium)")
	return cmd
}

func runExportCmd(cmd *cobra.Command, _ []string) error {
	app, cleanup, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer cleanup()
	ctx := context.Background()

	if err := app.gate.Require(ctx, entitlement.FeatureExport); err != nil {
		return err
	}
	if exportWeighted {
		if err := app.gate.Require(ctx, entitlement.FeatureWeightedGPA); err != nil {
			return err
		}
	}
	format, err := export.ParseFormat(exportFormat)
	if err != nil {
		return err
	}

	semesters, err := app.store.ListSemesters(ctx, app.profile.ID, app.scale)
	if err != nil {
		return err
	}
	if len(semesters) == 0 {
		return fmt.Errorf("nothing to export; add a semester first")
	}

	path := exportOut
	if path == "" {
		ext := "csv"
		if format == export.FormatText {
			ext = "txt"
		}
		name := fmt.Sprintf("transcript-%s-%s.%s",
			app.profile.Name, time.Now().Format("2006-01-02"), ext)
		path = filepath.Join(config.DefaultExportDir(), name)
	}

	tr := export.Transcript{
		ProfileName:  app.profile.Name,
		Scale:        app.scale,
		Semesters:    semesters,
		UseWeighting: exportWeighted,
		Multipliers:  app.multipliers,
	}
	if err := export.Write(path, format, tr); err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return err
}
