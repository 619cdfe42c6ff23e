package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"snipcheck/internal/analysis"
	"snipcheck/internal/config"
	"snipcheck/internal/crawler"
	"snipcheck/internal/normalize"
	"snipcheck/internal/predictor"
	"snipcheck/internal/report"
	"snipcheck/internal/storage"

	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "snipcheck",
		Short: "Normalize code snippets and classify syntax and structure",
	}
	configPath string

	codeFlag   string
	formatFlag string
	localeFlag string
	diffFlag   bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Path to the YAML configuration file")

	analyzeCmd.Flags().StringVar(&codeFlag, "code", "", "Analyze this snippet instead of reading a file or stdin")
	analyzeCmd.Flags().StringVarP(&formatFlag, "format", "f", "", "Output format: text, markdown or json (default from config)")
	analyzeCmd.Flags().StringVarP(&localeFlag, "locale", "l", "", "Message language: en or es (default from config)")
	analyzeCmd.Flags().BoolVar(&diffFlag, "diff", false, "Show what normalization removed")

	modelsCmd.AddCommand(modelsImportCmd)
	modelsCmd.AddCommand(modelsListCmd)

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(normalizeCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(mcpCmd)
}

func loadConfig() *config.Config {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func openStore(cfg *config.Config) (storage.ArtifactStore, error) {
	return storage.Open(storage.Options{
		Backend: cfg.Store.Backend,
		Path:    cfg.Store.Path,
		DSN:     cfg.Store.DSN,
	})
}

// initAnalyzer loads the four model artifacts once. Failure here is fatal for
// every command that needs predictions.
func initAnalyzer(ctx context.Context, cfg *config.Config) (*analysis.Analyzer, error) {
	store, err := openStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open model store: %w", err)
	}
	defer store.Close()

	bundle, err := predictor.LoadBundle(ctx, store, newDecoder(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to load models: %w", err)
	}
	return analysis.NewAnalyzer(bundle), nil
}

func newDecoder(cfg *config.Config) *predictor.Decoder {
	return &predictor.Decoder{
		APIKey:        cfg.Embedding.APIKey,
		OllamaBaseURL: cfg.Embedding.BaseURL,
	}
}

func readInput(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(args[0])
	return string(data), err
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file|dir|-]",
	Short: "Normalize a snippet and predict its syntax and structure",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		cfg := loadConfig()

		opts := report.Options{
			Format:   cfg.Output.Format,
			Locale:   cfg.Output.Locale,
			ShowDiff: diffFlag,
		}
		if formatFlag != "" {
			opts.Format = formatFlag
		}
		if localeFlag != "" {
			opts.Locale = localeFlag
		}

		analyzer, err := initAnalyzer(ctx, cfg)
		if err != nil {
			log.Fatalf("%v\nCheck your config.yaml and model artifacts.", err)
		}

		failed, err := runAnalyze(ctx, cmd.OutOrStdout(), analyzer, cfg, opts, args)
		if err != nil {
			log.Fatalf("Analyze aborted: %v", err)
		}
		if failed {
			os.Exit(1)
		}
	},
}

// runAnalyze reports on --code, a directory scan or a single input. failed is
// set when any snippet could not be fully analyzed; err is an I/O failure.
func runAnalyze(ctx context.Context, w io.Writer, analyzer *analysis.Analyzer, cfg *config.Config, opts report.Options, args []string) (failed bool, err error) {
	analyzeOne := func(title, raw string) error {
		res, err := analyzer.Analyze(ctx, raw)
		if err != nil {
			failed = true
			log.Printf("Analysis failed for %s: %v", title, err)
		}
		opts.Title = title
		if err := report.Render(w, res, opts); err != nil {
			return fmt.Errorf("failed to render report: %w", err)
		}
		return nil
	}

	switch {
	case codeFlag != "":
		err = analyzeOne("", codeFlag)
	case len(args) == 1 && isDir(args[0]):
		err = analyzeDir(args[0], crawler.NewCrawler(cfg.Scan.Extensions...), analyzeOne)
	default:
		var raw string
		if raw, err = readInput(args); err != nil {
			return failed, fmt.Errorf("failed to read input: %w", err)
		}
		title := ""
		if len(args) == 1 && args[0] != "-" {
			title = args[0]
		}
		err = analyzeOne(title, raw)
	}
	return failed, err
}

func analyzeDir(root string, cr *crawler.Crawler, analyzeOne func(title, raw string) error) error {
	var renderErr error
	err := cr.Scan(root, func(path, text string) error {
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		if err := analyzeOne(rel, text); err != nil {
			renderErr = fmt.Errorf("%s: %w", rel, err)
			return renderErr
		}
		return nil
	})
	switch {
	case renderErr != nil:
		return renderErr
	case err != nil:
		return fmt.Errorf("failed to scan %s: %w", root, err)
	}
	return nil
}

var normalizeCmd = &cobra.Command{
	Use:   "normalize [file|-]",
	Short: "Print the canonical form of a snippet without running any model",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		raw, err := readInput(args)
		if err != nil {
			log.Fatalf("Failed to read input: %v", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), normalize.Canonicalize(raw))
	},
}

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Manage the serialized model artifacts",
}

var modelsImportCmd = &cobra.Command{
	Use:   "import <dir>",
	Short: "Copy the four model artifacts from a directory into the configured store",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		cfg := loadConfig()

		src, err := storage.NewDirStore(args[0])
		if err != nil {
			log.Fatalf("Failed to open %s: %v", args[0], err)
		}
		dst, err := openStore(cfg)
		if err != nil {
			log.Fatalf("Failed to open model store: %v", err)
		}
		defer dst.Close()

		n, err := importArtifacts(ctx, src, dst, newDecoder(cfg))
		if err != nil {
			log.Fatalf("Import failed: %v", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ Imported %d artifacts into the %s store.\n", n, cfg.Store.Backend)
	},
}

// importArtifacts copies every bundle artifact from src to dst. Nothing is
// written unless all of them decode into a loadable bundle.
func importArtifacts(ctx context.Context, src, dst storage.ArtifactStore, dec *predictor.Decoder) (int, error) {
	payloads := make(artifactSet, len(predictor.ArtifactNames))
	for _, name := range predictor.ArtifactNames {
		data, err := src.Get(ctx, name)
		if err != nil {
			return 0, err
		}
		payloads[name] = data
	}
	if _, err := predictor.LoadBundle(ctx, payloads, dec); err != nil {
		return 0, err
	}

	for _, name := range predictor.ArtifactNames {
		if err := dst.Put(ctx, name, payloads[name]); err != nil {
			return 0, fmt.Errorf("failed to store %s: %w", name, err)
		}
	}
	return len(payloads), nil
}

// artifactSet holds artifacts read ahead of an import.
type artifactSet map[string][]byte

func (s artifactSet) Get(_ context.Context, name string) ([]byte, error) {
	data, ok := s[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, storage.ErrArtifactNotFound)
	}
	return data, nil
}

var modelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the artifacts in the configured store",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		cfg := loadConfig()

		store, err := openStore(cfg)
		if err != nil {
			log.Fatalf("Failed to open model store: %v", err)
		}
		defer store.Close()

		names, err := store.List(ctx)
		if err != nil {
			log.Fatalf("Failed to list artifacts: %v", err)
		}
		for _, name := range names {
			data, err := store.Get(ctx, name)
			if err == nil {
				var kind string
				if kind, err = predictor.ValidateArtifact(data); err == nil {
					fmt.Fprintf(cmd.OutOrStdout(), "%-22s %s\n", name, kind)
					continue
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%-22s ❌ %v\n", name, err)
		}
		for _, missing := range missingArtifacts(names) {
			fmt.Fprintf(cmd.OutOrStdout(), "⚠️  missing: %s\n", missing)
		}
	},
}

func missingArtifacts(have []string) []string {
	present := make(map[string]bool, len(have))
	for _, n := range have {
		present[n] = true
	}
	var missing []string
	for _, n := range predictor.ArtifactNames {
		if !present[n] {
			missing = append(missing, n)
		}
	}
	return missing
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("Warning: cannot stat %s: %v", path, err)
		}
		return false
	}
	return info.IsDir()
}
