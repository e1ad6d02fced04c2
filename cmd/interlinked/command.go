package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/viant/afs"
	"github.com/viant/interlinked/config"
	"github.com/viant/interlinked/interlink"
	"github.com/viant/interlinked/synthesizer"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// errCheckFailed is returned when --check finds files that would change
var errCheckFailed = errors.New("files are not in sync")

type options struct {
	configURL     string
	spacesPerTab  int
	maxLineLength int
	enableSorting bool
	style         string
	validate      bool
	verbose       bool

	write       bool
	check       bool
	concurrency int
	debounce    time.Duration
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}
	defaults := config.DefaultConfig()
	root := &cobra.Command{
		Use:           "interlinked",
		Short:         "Keeps Swift initializers in sync with stored properties",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configURL, "config", "c", "", "config file (.yaml, .yml or .toml), looked up in the working directory by default")
	flags.IntVar(&opts.spacesPerTab, "spaces-per-tab", defaults.SpacesPerTab, "indentation width")
	flags.IntVar(&opts.maxLineLength, "max-line-length", defaults.MaxLineLength, "initializer header length wrapped over multiple lines, 0 disables wrapping")
	flags.BoolVar(&opts.enableSorting, "enable-sorting", defaults.EnableSorting, "order parameters and assignments by variable declaration order")
	flags.StringVar(&opts.style, "style", string(defaults.FormatterStyle), "parameter clause style: google, airbnb or linkedin")
	flags.BoolVar(&opts.validate, "validate-syntax", defaults.ValidateSyntax, "check syntax with tree-sitter before synthesis")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newRunCommand(opts, synthesizer.ModeSync, "Reconcile initializers, leaving decoder, coder, convenience and override initializers untouched"),
		newRunCommand(opts, synthesizer.ModeInterlink, "Reconcile initializers, failing on decoder, coder and convenience initializers"),
		newWatchCommand(opts),
		newConfigCommand(opts),
	)
	return root
}

func newRunCommand(opts *options, mode synthesizer.Mode, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   mode.String() + " [path...]",
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, mode, args)
		},
	}
	flags := cmd.Flags()
	flags.BoolVarP(&opts.write, "write", "w", false, "write result to source files instead of stdout")
	flags.BoolVar(&opts.check, "check", false, "list files that would change and exit with status 1")
	flags.IntVar(&opts.concurrency, "concurrency", runtime.NumCPU(), "files processed in parallel")
	return cmd
}

func newConfigCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, source, err := opts.loadConfig(cmd, afs.New())
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if source != "" {
				fmt.Fprintf(out, "# %s\n", source)
			}
			_, err = out.Write(data)
			return err
		},
	}
}

// loadConfig reads config file, explicit flags override its values
func (o *options) loadConfig(cmd *cobra.Command, fs afs.Service) (*config.Config, string, error) {
	ctx := cmd.Context()
	var cfg *config.Config
	source := o.configURL
	var err error
	if source != "" {
		cfg, err = config.Load(ctx, fs, location(source))
	} else {
		var wd string
		if wd, err = os.Getwd(); err != nil {
			return nil, "", err
		}
		cfg, source, err = config.Discover(ctx, fs, wd)
	}
	if err != nil {
		return nil, "", err
	}
	flags := cmd.Flags()
	if flags.Changed("spaces-per-tab") {
		cfg.SpacesPerTab = o.spacesPerTab
	}
	if flags.Changed("max-line-length") {
		cfg.MaxLineLength = o.maxLineLength
	}
	if flags.Changed("enable-sorting") {
		cfg.EnableSorting = o.enableSorting
	}
	if flags.Changed("style") {
		cfg.FormatterStyle = config.Style(o.style)
	}
	if flags.Changed("validate-syntax") {
		cfg.ValidateSyntax = o.validate
	}
	if err = cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, source, nil
}

func (o *options) logger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("run_id", uuid.NewString()))
}

func run(cmd *cobra.Command, opts *options, mode synthesizer.Mode, args []string) error {
	ctx := cmd.Context()
	fs := afs.New()
	cfg, source, err := opts.loadConfig(cmd, fs)
	if err != nil {
		return err
	}
	logger := opts.logger(cmd.ErrOrStderr())
	logger.Debug("config loaded", slog.String("source", source), slog.String("mode", mode.String()))
	service := interlink.New(cfg, interlink.WithLogger(logger), interlink.WithFS(fs))

	if len(args) == 0 {
		args = []string{"."}
	}
	var URLs []string
	for _, arg := range args {
		found, err := service.Collect(ctx, location(arg))
		if err != nil {
			return err
		}
		URLs = append(URLs, found...)
	}

	results := make([]*interlink.Result, len(URLs))
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(max(opts.concurrency, 1))
	for i, URL := range URLs {
		group.Go(func() error {
			started := time.Now()
			var result *interlink.Result
			var err error
			if mode == synthesizer.ModeInterlink {
				result, err = service.InterlinkURL(ctx, URL, opts.write)
			} else {
				result, err = service.SyncURL(ctx, URL, opts.write)
			}
			if err != nil {
				return err
			}
			results[i] = result
			logger.Info("file processed",
				slog.String("file", URL),
				slog.Bool("changed", result.Changed),
				slog.Duration("duration", time.Since(started)))
			return nil
		})
	}
	if err = group.Wait(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	changed := 0
	for i, result := range results {
		if !result.Changed {
			if !opts.check && !opts.write {
				_, _ = out.Write(result.Output)
			}
			continue
		}
		changed++
		switch {
		case opts.check:
			fmt.Fprintln(out, URLs[i])
		case !opts.write:
			_, _ = out.Write(result.Output)
		}
	}
	if opts.check && changed > 0 {
		return errCheckFailed
	}
	return nil
}

// location returns absolute path for local arguments, URLs are returned as is
func location(arg string) string {
	if strings.Contains(arg, "://") {
		return arg
	}
	if abs, err := filepath.Abs(arg); err == nil {
		return abs
	}
	return arg
}
