package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"docnote/internal/analyze"
	"docnote/internal/common"
	"docnote/internal/config"
	"docnote/internal/logging"
	"docnote/internal/parser"
	"docnote/internal/reader"
)

// app holds the flags and the state shared by every subcommand.
type app struct {
	cfgFile  string
	logLevel string
	dir      string
	backend  string
	format   string

	cfg     *config.Config
	cfgPath string
	log     *zap.Logger
	reader  *reader.Reader
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "docnote",
		Short: "Read @-annotations from Go doc comments",
		Long: `docnote extracts annotations such as "@table products" or
"@cache.ttl integer 300" from the doc comments of Go declarations and
prints them as typed values.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default: docnote.yaml, docnote.yml or docnote.toml in --dir)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVarP(&a.dir, "dir", "C", ".", "directory to resolve package patterns from")
	flags.StringVar(&a.backend, "cache", "", "cache backend: none, memory, shared, file")
	flags.StringVarP(&a.format, "output", "o", "", "output format: json, yaml, table")

	rootCmd.AddCommand(
		newDumpCmd(a),
		newParseCmd(a),
		newListCmd(a),
		newCheckCmd(a),
		newTagsCmd(a),
		newConfigCmd(a),
		newCacheCmd(a),
	)

	return rootCmd
}

// setup loads the configuration, applies flag overrides and builds the
// logger and the reader.
func (a *app) setup(cmd *cobra.Command) error {
	var (
		cfg *config.Config
		err error
	)

	if a.cfgFile != "" {
		cfg, err = config.LoadFile(a.cfgFile)
		a.cfgPath = a.cfgFile
	} else {
		cfg, a.cfgPath, err = config.Discover(a.dir)
	}

	if err != nil {
		return err
	}

	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}

	if a.backend != "" {
		cfg.Cache.Backend = a.backend
	}

	if a.format != "" {
		cfg.Output.Format = a.format
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := logging.New(cmd.ErrOrStderr(), cfg.Log.Level)
	if err != nil {
		return err
	}

	reg, err := cfg.Registry()
	if err != nil {
		return err
	}

	store, err := cfg.NewStore(log)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.log = log
	a.reader = reader.New(parser.New(reg), reader.WithCache(store), reader.WithLogger(log))

	log.Debug("configuration loaded",
		zap.String("path", a.cfgPath),
		zap.String("cache", cfg.Cache.Backend),
		zap.String("output", cfg.Output.Format))

	return nil
}

// load indexes the packages matched by patterns, "./..." when none is given.
func (a *app) load(patterns []string) (*analyze.DocIndex, error) {
	if common.IsEmpty(patterns) {
		patterns = []string{"./..."}
	}

	an := analyze.NewAnalyzer()
	an.SetDir(a.dir)

	x, err := an.LoadPackages(patterns...)
	if err != nil {
		return nil, err
	}

	a.log.Debug("packages indexed",
		zap.Strings("patterns", patterns),
		zap.Int("packages", len(x.Packages)),
		zap.Int("decls", len(x.Decls)))

	return x, nil
}

// stringer renders declarations with positions relative to --dir.
func (a *app) stringer() *analyze.DeclStringer {
	base, err := filepath.Abs(a.dir)
	if err != nil {
		base = ""
	}

	return &analyze.DeclStringer{Base: base}
}
