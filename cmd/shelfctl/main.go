// Command shelfctl inspects an asset list and exports static catalog pages
// using the same pipeline as the shelf server.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"

	"github.com/MrSnakeDoc/shelf/internal/catalog"
	"github.com/MrSnakeDoc/shelf/internal/domain"
	"github.com/MrSnakeDoc/shelf/internal/logger"
	"github.com/MrSnakeDoc/shelf/internal/sources/assets"
	"github.com/MrSnakeDoc/shelf/internal/version"
)

// Opts with all global CLI options
type Opts struct {
	Source   string        `short:"s" long:"source" env:"SHELF_DATA_SOURCE" default:"vrchat_assets.json" description:"asset list path or http(s) URL"`
	Timeout  time.Duration `long:"timeout" env:"SHELF_FETCH_TIMEOUT" default:"10s" description:"remote fetch timeout"`
	MaxBytes int64         `long:"max-bytes" env:"SHELF_MAX_DATA_BYTES" default:"16777216" description:"maximum asset list size"`
	Locale   string        `long:"locale" env:"SHELF_LOCALE" default:"en" description:"collation locale for name sorting"`

	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`

	Export     ExportCmd     `command:"export" description:"render a static catalog page"`
	Categories CategoriesCmd `command:"categories" description:"print the category list"`
	List       ListCmd       `command:"list" description:"print item names in view order"`
}

// ViewOpts selects the displayed subset and order, like the page controls.
type ViewOpts struct {
	Query    string `short:"q" long:"query" description:"case-insensitive search text"`
	Category string `short:"c" long:"category" default:"all" description:"exact category or 'all'"`
	Sort     string `long:"sort" default:"name-asc" choice:"name-asc" choice:"name-desc" choice:"date-desc" choice:"date-asc" description:"sort order"`
}

func (v ViewOpts) state() domain.ViewState {
	return domain.NewViewState(v.Query, v.Category, v.Sort, domain.DefaultSort)
}

var (
	opts Opts
	log  = logger.Nop()
)

func main() {
	parser := flags.NewParser(&opts, flags.Default)
	parser.SubcommandsOptional = true
	parser.CommandHandler = func(cmd flags.Commander, args []string) error {
		if opts.Version {
			fmt.Printf("shelfctl %s\n", version.String())
			return nil
		}
		level := "warn"
		if opts.Debug {
			level = "debug"
		}
		log = logger.New(level, true)
		defer func() { _ = log.Sync() }()

		if cmd == nil {
			parser.WriteHelp(os.Stderr)
			return errors.New("a command is required: export, categories or list")
		}
		return cmd.Execute(args)
	}

	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}
}

// loadSnapshot fetches and normalizes the configured asset list.
func loadSnapshot(ctx context.Context, o Opts) (*catalog.Snapshot, error) {
	loader := assets.NewLoader(o.Source, assets.LoaderOptions{
		Timeout:  o.Timeout,
		MaxBytes: o.MaxBytes,
	})

	records, err := loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	items := assets.Normalize(records)

	log.Debug("asset list loaded",
		logger.String("source", o.Source),
		logger.Int("items", len(items)))

	return catalog.NewSnapshot(o.Source, items, time.Now()), nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func pipelineOptions(o Opts) catalog.Options {
	return catalog.Options{Locale: catalog.ParseLocale(o.Locale)}
}
