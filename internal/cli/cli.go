package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"lumidex/internal/cache"
	"lumidex/internal/config"
	"lumidex/internal/filewalker"
	"lumidex/internal/graph"
	"lumidex/internal/parser"
	"lumidex/internal/render"
	"lumidex/internal/store"
	"lumidex/internal/worker"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var errSpeciesNotFound = errors.New("species not found")

// Execute runs the CLI application.
func Execute() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lumidex",
		Short: "Parse and query Lumi dex documentation files",
		Long: `lumidex reads the plain-text dex files that ship with the Lumi romhack,
turns every creature entry into a structured record, and stores the records
in SQLite or PostgreSQL for lookup. An optional Neo4j graph links species to
the moves, abilities, types and locations they share.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			levelName, _ := cmd.Flags().GetString("log-level")
			level, err := zerolog.ParseLevel(levelName)
			if err != nil {
				return fmt.Errorf("parse log level: %w", err)
			}
			zerolog.SetGlobalLevel(level)
			return nil
		},
	}

	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(loadCmd())
	rootCmd.AddCommand(parseCmd())
	rootCmd.AddCommand(showCmd())
	rootCmd.AddCommand(movesCmd())
	rootCmd.AddCommand(similarCmd())
	rootCmd.AddCommand(learnersCmd())
	rootCmd.AddCommand(abilityCmd())
	rootCmd.AddCommand(exportCmd())

	return rootCmd
}

func loadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load [directory]",
		Short: "Parse every dex file in a directory and store the records",
		Long: `Walks the directory (DEX_DIR by default) for .txt dex files, parses them
concurrently and inserts every species not already stored. When
GRAPH_ENABLED is set each new record is also written to Neo4j.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			dir := cfg.DexDir
			if len(args) == 1 {
				dir = args[0]
			}
			quiet, _ := cmd.Flags().GetBool("quiet")
			return runLoad(cfg, dir, quiet)
		},
	}

	cmd.Flags().Bool("quiet", false, "Hide the progress bar")

	return cmd
}

func parseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse one dex file and print its records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			asJSON, _ := cmd.Flags().GetBool("json")
			concurrent, _ := cmd.Flags().GetBool("concurrent")
			strict, _ := cmd.Flags().GetBool("strict")
			opts := parser.Options{Strict: cfg.StrictLines || strict}
			return runParse(cmd.OutOrStdout(), cfg, args[0], opts, asJSON, concurrent)
		},
	}

	cmd.Flags().Bool("json", false, "Print records as JSON")
	cmd.Flags().Bool("strict", false, "Fail on malformed level-up or TM lines")
	cmd.Flags().Bool("concurrent", false, "Parse entries in parallel")

	return cmd
}

func showCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <species>",
		Short: "Print a stored record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outPath, _ := cmd.Flags().GetString("out")
			return runShow(cmd.OutOrStdout(), args[0], outPath)
		},
	}

	cmd.Flags().String("out", "", "Write the record to this file instead of stdout")

	return cmd
}

func movesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "moves <move>",
		Short: "List stored species that learn a move",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMoves(cmd.OutOrStdout(), args[0])
		},
	}
}

func similarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "similar <species>",
		Short: "List species with the closest base stats (PostgreSQL only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, _ := cmd.Flags().GetInt("limit")
			return runSimilar(cmd.OutOrStdout(), args[0], k)
		},
	}

	cmd.Flags().IntP("limit", "k", 5, "Number of species to list")

	return cmd
}

func learnersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "learners <move>",
		Short: "List species that learn a move, from the Neo4j graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLearners(cmd.OutOrStdout(), args[0])
		},
	}
}

func abilityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ability <ability>",
		Short: "List species that can have an ability, from the Neo4j graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAbility(cmd.OutOrStdout(), args[0])
		},
	}
}

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export every stored record to JSON or TSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			output, _ := cmd.Flags().GetString("output")
			return runExport(format, output)
		},
	}

	cmd.Flags().String("format", "json", "Export format: json or tsv")
	cmd.Flags().String("output", "dex", "Output path (without extension)")

	return cmd
}

// setupContext creates a cancellable context with signal handling.
func setupContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		log.Warn().Msg("Received shutdown signal, cancelling...")
		cancel()
	}()

	return ctx, cancel
}

// openStore opens the store selected by STORE_DRIVER.
func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		s, err := store.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.DriverSQLite:
		s, err := store.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

// openGraph connects to Neo4j and verifies the connection.
func openGraph(ctx context.Context, cfg *config.Config) (neo4j.DriverWithContext, error) {
	driver, err := neo4j.NewDriverWithContext(cfg.Neo4jURI, neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPassword, ""))
	if err != nil {
		return nil, fmt.Errorf("connect Neo4j: %w", err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		driver.Close(ctx)
		return nil, fmt.Errorf("verify Neo4j connectivity: %w", err)
	}
	log.Info().Msg("Connected to Neo4j")

	return driver, nil
}

// parseFiles parses every entry with the worker pool. Records keep file
// order, then entry order within each file.
func parseFiles(ctx context.Context, w *filewalker.Walker, entries []filewalker.FileEntry, workers int) ([]parser.Record, error) {
	parsePool := worker.NewPool[filewalker.FileEntry, *parser.ParseResult](workers,
		func(ctx context.Context, entry filewalker.FileEntry) (*parser.ParseResult, error) {
			return w.ParseFile(entry)
		},
	)
	results := parsePool.Execute(ctx, entries)

	var records []parser.Record
	failed := 0
	for _, pr := range results {
		if pr.Err != nil {
			failed++
			log.Error().Err(pr.Err).Str("file", pr.Input.Path).Msg("Parse failed")
			continue
		}
		log.Info().
			Str("file", pr.Result.FilePath).
			Str("sha256", pr.Result.Checksum[:12]).
			Int("records", len(pr.Result.Records)).
			Msg("Parsed dex file")
		records = append(records, pr.Result.Records...)
	}

	if err := worker.FirstError(results); err != nil {
		return records, fmt.Errorf("%d of %d dex files failed to parse: %w", failed, len(entries), err)
	}
	return records, nil
}

// runLoad handles the `load` command.
func runLoad(cfg *config.Config, dir string, quiet bool) error {
	ctx, cancel := setupContext()
	defer cancel()

	w := filewalker.NewWalker(parser.Options{Strict: cfg.StrictLines})
	entries, err := w.Walk(dir)
	if err != nil {
		return fmt.Errorf("walk dex directory: %w", err)
	}

	records, err := parseFiles(ctx, w, entries, cfg.WorkerCount)
	if err != nil {
		return err
	}

	s, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	var sinks []store.RecordSink
	if cfg.GraphEnabled {
		driver, err := openGraph(ctx, cfg)
		if err != nil {
			return err
		}
		defer driver.Close(ctx)

		builder := graph.NewBuilder(driver)
		if err := builder.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("ensure graph schema: %w", err)
		}
		sinks = append(sinks, builder)
	}

	known := cache.NewRecordCache(s)
	if err := known.Preload(ctx); err != nil {
		return err
	}

	progress := newLoadProgress(len(records), quiet)
	loader := store.NewLoader(s, cfg.BatchSize, sinks...)
	loader.UseIndex(known)
	loader.OnProgress(progress.OnRecord)

	stats, err := loader.Load(ctx, records)
	progress.Finish()
	if err != nil {
		return fmt.Errorf("load records: %w", err)
	}

	log.Info().
		Int("files", len(entries)).
		Int("records", len(records)).
		Int("inserted", stats.Inserted).
		Int("skipped", stats.Skipped).
		Int("graph_errors", stats.SinkErrors).
		Int("stored", known.Len()).
		Msg("Load complete")

	return nil
}

// runParse handles the `parse` command.
func runParse(out io.Writer, cfg *config.Config, path string, opts parser.Options, asJSON, concurrent bool) error {
	ctx, cancel := setupContext()
	defer cancel()

	var records []parser.Record
	if concurrent {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read dex file: %w", err)
		}
		records, err = parser.ParseDexConcurrent(ctx, string(data), opts, cfg.WorkerCount)
		if err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	} else {
		w := filewalker.NewWalker(opts)
		entry, err := w.Entry(path)
		if err != nil {
			return err
		}
		result, err := w.ParseFile(entry)
		if err != nil {
			return err
		}
		records = result.Records
	}

	log.Info().Str("file", path).Int("records", len(records)).Msg("Parsed dex file")

	if asJSON {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		encoder.SetEscapeHTML(false)
		if err := encoder.Encode(records); err != nil {
			return fmt.Errorf("encode JSON: %w", err)
		}
		return nil
	}

	_, err := fmt.Fprintln(out, render.Records(records))
	return err
}

// runShow handles the `show` command.
func runShow(out io.Writer, species, outPath string) error {
	ctx, cancel := setupContext()
	defer cancel()

	cfg := config.Load()
	s, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	rec, err := findRecord(ctx, s, species)
	if err != nil {
		return err
	}

	text := render.Record(rec) + "\n"
	if outPath == "" {
		_, err := io.WriteString(out, text)
		return err
	}

	if err := os.WriteFile(outPath, []byte(text), 0644); err != nil {
		return fmt.Errorf("write record file: %w", err)
	}
	log.Info().Str("species", rec.Species).Str("path", outPath).Msg("Record written")
	return nil
}

// findRecord looks up one species, keeping a miss apart from a store failure.
func findRecord(ctx context.Context, s store.Store, species string) (parser.Record, error) {
	rec, ok, err := cache.NewRecordCache(s).Get(ctx, species)
	if err != nil {
		return parser.Record{}, fmt.Errorf("look up species %q: %w", species, err)
	}
	if !ok {
		return parser.Record{}, fmt.Errorf("%w: %q", errSpeciesNotFound, species)
	}
	return rec, nil
}

// runMoves handles the `moves` command.
func runMoves(out io.Writer, move string) error {
	ctx, cancel := setupContext()
	defer cancel()

	cfg := config.Load()
	s, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	learners, err := s.FindByMove(ctx, move)
	if err != nil {
		return fmt.Errorf("find learners of %s: %w", move, err)
	}
	if len(learners) == 0 {
		log.Warn().Str("move", move).Msg("No stored species learn this move")
		return nil
	}

	for _, rec := range learners {
		fmt.Fprintln(out, render.Summary(rec))
	}
	return nil
}

// runSimilar handles the `similar` command.
func runSimilar(out io.Writer, species string, k int) error {
	ctx, cancel := setupContext()
	defer cancel()

	cfg := config.Load()
	s, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	finder, ok := s.(store.SimilarityFinder)
	if !ok {
		return errors.New("stat similarity requires STORE_DRIVER=postgres")
	}

	rec, err := findRecord(ctx, s, species)
	if err != nil {
		return err
	}

	similar, err := finder.SimilarStats(ctx, rec, k)
	if err != nil {
		return fmt.Errorf("find species similar to %s: %w", species, err)
	}

	for _, r := range similar {
		fmt.Fprintln(out, render.Summary(r))
	}
	return nil
}

// runLearners handles the `learners` command.
func runLearners(out io.Writer, move string) error {
	ctx, cancel := setupContext()
	defer cancel()

	cfg := config.Load()
	driver, err := openGraph(ctx, cfg)
	if err != nil {
		return err
	}
	defer driver.Close(ctx)

	learners, err := graph.NewQuerier(driver).LearnersOf(ctx, move)
	if err != nil {
		return err
	}

	for _, l := range learners {
		fmt.Fprintln(out, formatLearner(l))
	}
	return nil
}

// runAbility handles the `ability` command.
func runAbility(out io.Writer, ability string) error {
	ctx, cancel := setupContext()
	defer cancel()

	cfg := config.Load()
	driver, err := openGraph(ctx, cfg)
	if err != nil {
		return err
	}
	defer driver.Close(ctx)

	species, err := graph.NewQuerier(driver).SpeciesWithAbility(ctx, ability)
	if err != nil {
		return err
	}

	for _, name := range species {
		fmt.Fprintln(out, name)
	}
	return nil
}

// runExport handles the `export` command.
func runExport(format, output string) error {
	ctx, cancel := setupContext()
	defer cancel()

	cfg := config.Load()
	s, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	switch format {
	case "json":
		if err := store.ExportJSON(ctx, s, output+".json"); err != nil {
			return fmt.Errorf("export JSON: %w", err)
		}
	case "tsv":
		if err := store.ExportTSV(ctx, s, output+".tsv"); err != nil {
			return fmt.Errorf("export TSV: %w", err)
		}
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
	return nil
}

func formatLearner(l graph.Learner) string {
	switch l.Method {
	case parser.LearnLevel:
		return fmt.Sprintf("%03d %s (lvl%d)", l.DexNum, l.Species, l.Level)
	case parser.LearnTM:
		return fmt.Sprintf("%03d %s (TM%02d)", l.DexNum, l.Species, l.Level)
	default:
		return fmt.Sprintf("%03d %s (%s)", l.DexNum, l.Species, l.Method)
	}
}
