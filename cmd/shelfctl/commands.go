package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/MrSnakeDoc/shelf/internal/catalog"
	"github.com/MrSnakeDoc/shelf/internal/domain"
	"github.com/MrSnakeDoc/shelf/internal/logger"
	"github.com/MrSnakeDoc/shelf/internal/render"
	"github.com/MrSnakeDoc/shelf/internal/version"
)

// ExportCmd renders one view of the catalog to a self-contained HTML file.
type ExportCmd struct {
	ViewOpts
	Output string `short:"o" long:"output" default:"-" description:"output file, - for stdout"`
	Theme  string `long:"theme" default:"light" choice:"light" choice:"dark" description:"page theme"`
}

// Execute is called by go-flags
func (c *ExportCmd) Execute(_ []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	snap, err := loadSnapshot(ctx, opts)
	if err != nil {
		log.Error("failed to load assets", logger.Error(err))
		return err
	}

	if c.Output == "-" {
		return c.run(snap, pipelineOptions(opts), os.Stdout)
	}

	f, err := os.Create(c.Output)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", c.Output, err)
	}
	if err := c.run(snap, pipelineOptions(opts), f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", c.Output, err)
	}

	log.Info("catalog exported", logger.String("output", c.Output))
	return nil
}

func (c *ExportCmd) run(snap *catalog.Snapshot, po catalog.Options, w io.Writer) error {
	renderer, err := render.NewRenderer()
	if err != nil {
		return err
	}
	styles, err := render.Stylesheet()
	if err != nil {
		return err
	}

	t, ok := domain.ParseTheme(c.Theme)
	if !ok {
		t = domain.ThemeLight
	}

	view := c.state()
	page := render.NewPage(snap, view, catalog.Recompute(snap, view, po), t)
	page.Version = version.Version
	page.Styles = styles
	page.Standalone = true

	return renderer.Page(w, page)
}

// CategoriesCmd prints the deduplicated, sorted category list.
type CategoriesCmd struct{}

// Execute is called by go-flags
func (c *CategoriesCmd) Execute(_ []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	return withSnapshot(ctx, func(snap *catalog.Snapshot) error {
		return c.run(snap, os.Stdout)
	})
}

func (c *CategoriesCmd) run(snap *catalog.Snapshot, w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, category := range snap.Categories {
		if _, err := fmt.Fprintln(bw, category); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ListCmd prints the item names of a view, one per line.
type ListCmd struct {
	ViewOpts
	Dates bool `short:"d" long:"dates" description:"prefix each name with its submission date"`
}

// Execute is called by go-flags
func (c *ListCmd) Execute(_ []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	return withSnapshot(ctx, func(snap *catalog.Snapshot) error {
		return c.run(snap, pipelineOptions(opts), os.Stdout)
	})
}

func (c *ListCmd) run(snap *catalog.Snapshot, po catalog.Options, w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, item := range catalog.Recompute(snap, c.state(), po) {
		var err error
		if c.Dates {
			_, err = fmt.Fprintf(bw, "%s\t%s\n", render.FormatDate(item), item.Name)
		} else {
			_, err = fmt.Fprintln(bw, item.Name)
		}
		if err != nil {
			return err
		}
	}
	return bw.Flush()
}

func withSnapshot(ctx context.Context, fn func(*catalog.Snapshot) error) error {
	snap, err := loadSnapshot(ctx, opts)
	if err != nil {
		log.Error("failed to load assets", logger.Error(err))
		return err
	}
	return fn(snap)
}
