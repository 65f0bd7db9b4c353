package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"

	"github.com/ngayerie/spm-doc-updates-tracker/internal/config"
	"github.com/ngayerie/spm-doc-updates-tracker/internal/logfields"
	"github.com/ngayerie/spm-doc-updates-tracker/internal/products"
	"github.com/ngayerie/spm-doc-updates-tracker/internal/track"
)

var CLI struct {
	Config  string `short:"c" help:"Site configuration file path (optional)"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Report struct {
		Repo           string   `arg:"" help:"Path to the documentation repository"`
		Month          string   `short:"m" help:"Month to report on in YYYY-MM format (default: previous month)"`
		Categories     []string `help:"Product categories to include"`
		Products       []string `short:"p" help:"Explicit product keys to track (overrides --categories)"`
		IncludeTrivial bool     `help:"Include trivial changes (typo fixes, formatting)"`
		Output         string   `short:"o" help:"Write the report to this file instead of stdout"`
	} `cmd:"" help:"Generate a monthly documentation change report"`

	Products struct {
		Categories []string `help:"Product categories to list"`
	} `cmd:"" help:"List tracked products and selectable categories"`
}

func main() {
	ctx := kong.Parse(&CLI)

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	switch ctx.Command() {
	case "report <repo>":
		if err := runReport(); err != nil {
			slog.Error("Report failed", logfields.Error(err))
			os.Exit(1)
		}
	case "products":
		if err := runProducts(); err != nil {
			slog.Error("Listing products failed", logfields.Error(err))
			os.Exit(1)
		}
	default:
		slog.Error("Unknown command", slog.String("command", ctx.Command()))
		os.Exit(1)
	}
}

func runReport() error {
	site, err := config.LoadSite(CLI.Config)
	if err != nil {
		return err
	}

	window, err := config.MonthWindow(CLI.Report.Month, time.Now())
	if err != nil {
		return err
	}

	repoPath := config.ExpandHome(CLI.Report.Repo)

	slog.Info("Tracking documentation changes",
		logfields.RunID(uuid.NewString()),
		logfields.Repository(repoPath),
		logfields.Month(window.MonthName()))

	out := os.Stdout
	if CLI.Report.Output != "" {
		f, err := os.Create(CLI.Report.Output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil {
				slog.Error("Failed to close output file", logfields.Error(cerr))
			}
		}()
		out = f
	}

	stats, err := track.Run(track.Options{
		RepoPath:       repoPath,
		Window:         window,
		Site:           site,
		Categories:     CLI.Report.Categories,
		Products:       CLI.Report.Products,
		IncludeTrivial: CLI.Report.IncludeTrivial,
	}, out)
	if err != nil {
		return err
	}

	slog.Info("Report complete",
		slog.String("tracked", strings.Join(stats.TrackedProducts, ", ")),
		logfields.Commits(stats.CommitsKept),
		logfields.Products(stats.ProductsChanged),
		logfields.Entries(stats.ChangelogCount))
	if CLI.Report.Output != "" {
		slog.Info("Summary written", logfields.Output(CLI.Report.Output))
	}

	return nil
}

func runProducts() error {
	site, err := config.LoadSite(CLI.Config)
	if err != nil {
		return err
	}

	table := products.NewTable()
	for key, display := range site.Products {
		table.AddProduct(key, display)
	}

	selected, err := table.Select(CLI.Products.Categories, nil)
	if err != nil {
		return err
	}

	fmt.Printf("Categories: %s\n\n", strings.Join(products.CategoryNames(), ", "))
	for _, key := range selected {
		display, ok := table.Resolve(key)
		if !ok {
			continue
		}
		fmt.Printf("%-34s %s\n", key, display)
	}

	return nil
}
