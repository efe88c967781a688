package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"webpify/internal/batch"
	"webpify/internal/processor"
	"webpify/internal/scanner"
	"webpify/internal/tui"
)

var scanCmd = &cobra.Command{
	Use:   "scan [flags]",
	Short: "List the images a conversion would process without writing anything",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		paths, err := scanner.Scan(cfg.Root, scanner.Options{
			Patterns:      cfg.Patterns,
			IncludeHidden: cfg.IncludeHidden,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(paths) == 0 {
			fmt.Fprintln(out, batch.NoImagesMessage)
			return nil
		}

		styles := newScanStyles(lipgloss.NewRenderer(out))
		for _, job := range batch.Jobs(cfg.Root, paths, cfg.Quality) {
			fmt.Fprintf(out, "%s %s %s\n",
				styles.file.Render(job.Display),
				styles.dim.Render("->"),
				styles.output.Render(processor.OutputPath(job.Display, cfg.OutputExt)),
			)
		}
		fmt.Fprintln(out, styles.dim.Render(fmt.Sprintf("%d images", len(paths))))
		return nil
	},
}

type scanStyles struct {
	file   lipgloss.Style
	output lipgloss.Style
	dim    lipgloss.Style
}

func newScanStyles(r *lipgloss.Renderer) scanStyles {
	return scanStyles{
		file:   r.NewStyle().Bold(true).Foreground(tui.ColorAccent),
		output: r.NewStyle().Foreground(tui.ColorInk),
		dim:    r.NewStyle().Foreground(tui.ColorDim),
	}
}

func init() {
	rootCmd.AddCommand(scanCmd)
}
