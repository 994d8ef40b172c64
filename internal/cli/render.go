package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/bjaus/inspect"
)

type renderOptions struct {
	config   string
	format   string
	title    string
	typ      string
	key      string
	indent   string
	maxWidth int
	redact   []string
}

func newRenderCmd() *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:   "render [file...]",
		Short: "Render YAML or JSON documents",
		Long: `Render reads one or more YAML or JSON documents and prints them as nested
HTML tables, an indented text outline, YAML or JSON. With several files the
documents are deep-merged in order. Reads stdin when no file or "-" is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.config, "config", "c", "", "TOML config file")
	flags.StringVarP(&opts.format, "format", "f", string(inspect.Text), "output format (html, text, yaml, json)")
	flags.StringVarP(&opts.title, "title", "t", "", "title shown above the root value")
	flags.StringVar(&opts.typ, "type", "", "type tag passed to filters")
	flags.StringVarP(&opts.key, "key", "k", "", "render only the value under this top-level key")
	flags.StringVar(&opts.indent, "indent", "", "text outline indentation (default tab)")
	flags.IntVar(&opts.maxWidth, "max-width", 0, "truncate displayed values to this many columns")
	flags.StringArrayVarP(&opts.redact, "redact", "r", nil, "mask values whose key or dotted path matches this pattern")
	return cmd
}

func runRender(cmd *cobra.Command, args []string, opts renderOptions) error {
	logger := loggerFromContext(cmd.Context())

	cfg, err := loadConfig(opts.config)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("format") || cfg.Format == "" {
		cfg.Format = opts.format
	}
	if flags.Changed("title") {
		cfg.Title = opts.title
	}
	if flags.Changed("type") {
		cfg.Type = opts.typ
	}
	if flags.Changed("indent") {
		cfg.Indent = opts.indent
	}
	if flags.Changed("max-width") {
		cfg.MaxWidth = opts.maxWidth
	}
	cfg.Redact = append(cfg.Redact, opts.redact...)

	format, err := inspect.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	inspectOpts := []inspect.Option{
		inspect.WithTitle(cfg.Title),
		inspect.WithType(cfg.Type),
		inspect.WithMaxWidth(cfg.MaxWidth),
		inspect.WithLogger(logger),
	}
	if cfg.Indent != "" {
		inspectOpts = append(inspectOpts, inspect.WithIndent(cfg.Indent))
	}
	if len(cfg.Redact) > 0 {
		f, err := inspect.Redact(cfg.Redact...)
		if err != nil {
			return err
		}
		inspectOpts = append(inspectOpts, inspect.WithFilter(f))
	}
	in := inspect.New(inspectOpts...)

	if len(args) == 0 {
		args = []string{"-"}
	}
	for i, name := range args {
		doc, err := readDocument(cmd.InOrStdin(), name)
		if err != nil {
			return err
		}
		if i == 0 {
			in.SetData(doc)
		} else if err := in.Merge(doc); err != nil {
			return errors.Wrapf(err, "merge %s", name)
		}
		logger.Debug("loaded document", "source", name)
	}

	out := cmd.OutOrStdout()
	if opts.key != "" {
		if _, ok := in.Get(opts.key); !ok {
			logger.Warn("key not found", "key", opts.key)
		}
		return in.WriteKey(out, format, opts.key)
	}
	return in.Write(out, format)
}

func readDocument(stdin io.Reader, name string) (any, error) {
	if name == "-" {
		doc, err := inspect.Decode(stdin)
		return doc, errors.Wrap(err, "read stdin")
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", name)
	}
	defer f.Close()
	doc, err := inspect.Decode(f)
	return doc, errors.Wrapf(err, "read %s", name)
}

func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List output formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, f := range inspect.Formats() {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), f); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
