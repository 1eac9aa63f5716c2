package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"planmark/internal/config"
	"planmark/internal/dataset"
	"planmark/internal/logging"
	"planmark/internal/store"
	"planmark/internal/tui"
)

var (
	flagConfig  string
	flagDB      string
	flagDataset string
	flagImage   string
)

func main() {
	root := &cobra.Command{
		Use:   "planmark",
		Short: "Annotate a floor-plan image with numbered dataset markers",
		Long: `planmark displays a floor-plan image in the terminal with pan/zoom and
lets you place numbered markers bound to rows of an external dataset.
Points and the image persist across sessions.`,
		SilenceUsage: true,
		RunE:         run,
	}
	root.Flags().StringVarP(&flagConfig, "config", "c", "", "path to config YAML")
	root.Flags().StringVar(&flagDB, "db", "", "override database path")
	root.Flags().StringVar(&flagDataset, "dataset", "", "override dataset JSON path")
	root.Flags().StringVarP(&flagImage, "image", "i", "", "floor-plan image to load at startup")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagDB != "" {
		cfg.DatabasePath = flagDB
	}
	if flagDataset != "" {
		cfg.DatasetPath = flagDataset
	}

	log, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	defer log.Sync()

	docs, err := store.Open(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("open document store: %w", err)
	}
	defer docs.Close()

	// dataset is reference data; a missing file falls back to placeholders
	table := dataset.Placeholder(cfg.MaxRow)
	if cfg.DatasetPath != "" {
		if t, err := dataset.Load(cfg.DatasetPath, cfg.MaxRow); err != nil {
			log.Warn("dataset load failed, using placeholders",
				zap.String("path", cfg.DatasetPath), zap.Error(err))
		} else {
			table = t
		}
	}

	var m tea.Model
	if flagImage != "" {
		m = tui.NewWithImage(cfg, docs, table, log, flagImage)
	} else {
		m = tui.New(cfg, docs, table, log)
	}
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run(); err != nil {
		return err
	}
	return nil
}
