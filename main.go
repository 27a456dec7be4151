// lokgen — pulls translations from Lokalise, validates them across
// locales, and generates type-safe Go message functions.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lokgen/lokgen/catalog"
	"github.com/lokgen/lokgen/codegen"
	"github.com/lokgen/lokgen/config"
	"github.com/lokgen/lokgen/credentials"
	"github.com/lokgen/lokgen/lokalise"
	"github.com/lokgen/lokgen/pofile"
)

// Version information (set via -ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// ANSI colors
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[0;31m"
	colorGreen  = "\033[0;32m"
	colorYellow = "\033[1;33m"
	colorBlue   = "\033[0;34m"
)

func logInfo(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorBlue+"[INFO]"+colorReset+" "+format+"\n", args...)
}

func logSuccess(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorGreen+"[OK]"+colorReset+" "+format+"\n", args...)
}

func logWarning(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorYellow+"[WARN]"+colorReset+" "+format+"\n", args...)
}

func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorRed+"[ERROR]"+colorReset+" "+format+"\n", args...)
}

// ---------------------------------------------------------------------------
// Global flags
// ---------------------------------------------------------------------------

var (
	rootDir       string
	flagConfig    string
	flagToken     string
	flagProject   string
	flagProjectID string
	flagAPIHost   string
)

// ---------------------------------------------------------------------------
// Root command
// ---------------------------------------------------------------------------

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "lokgen",
		Short: "Generate type-safe Go message functions from Lokalise",
		Long: `lokgen — translation catalog compiler for Lokalise projects.

Reads lokgen.yaml from the project root, downloads every key with its
translations, validates the catalog across the configured locales, and
generates one Go function per key. Placeholders become typed parameters
and plural blocks delegate category selection to CLDR plural rules at
runtime.

Commands:
  generate    Fetch, validate, and write the generated Go file
  check       Fetch and validate without writing anything
  export      Write one gettext PO file per locale for translators`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&rootDir, "root", ".", "Project root directory (holds lokgen.yaml)")
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (defaults to <root>/lokgen.yaml)")
	root.PersistentFlags().StringVar(&flagToken, "token", "", "Lokalise API token (overrides environment and .env)")
	root.PersistentFlags().StringVar(&flagProject, "project", "", "Lokalise project name (overrides lokgen.yaml)")
	root.PersistentFlags().StringVar(&flagProjectID, "project-id", "", "Lokalise project ID (overrides lokgen.yaml)")
	root.PersistentFlags().StringVar(&flagAPIHost, "api-host", "", "Alternate API base URL (for self-hosted proxies)")

	root.AddCommand(
		newGenerateCmd(),
		newCheckCmd(),
		newExportCmd(),
		newVersionCmd(),
	)

	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		logError("%v", err)
		os.Exit(1)
	}
}

// ---------------------------------------------------------------------------
// version
// ---------------------------------------------------------------------------

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("lokgen version %s\n", version)
			fmt.Printf("  commit:    %s\n", commit)
			fmt.Printf("  built:     %s\n", date)
		},
	}
}

// ---------------------------------------------------------------------------
// Shared pipeline: config -> token -> fetch -> parse
// ---------------------------------------------------------------------------

// loadCatalog runs the front half of every command: load lokgen.yaml,
// resolve credentials, download the project, and parse all placeholders.
func loadCatalog(ctx context.Context) (*config.Config, *catalog.Set, error) {
	var cfg *config.Config
	var err error
	if flagConfig != "" {
		cfg, err = config.LoadFile(flagConfig)
	} else {
		cfg, err = config.Load(rootDir)
	}
	if err != nil {
		return nil, nil, err
	}
	if flagProject != "" {
		cfg.Project = flagProject
		cfg.ProjectID = ""
	}
	if flagProjectID != "" {
		cfg.ProjectID = flagProjectID
	}

	token, err := credentials.Resolve(flagToken, rootDir)
	if err != nil {
		return nil, nil, err
	}

	client := lokalise.NewClient(token)
	if flagAPIHost != "" {
		client.SetBaseURL(flagAPIHost)
	}

	projectID := cfg.ProjectID
	if projectID == "" {
		logInfo("Resolving project %q...", cfg.Project)
		p, err := client.FindProject(ctx, cfg.Project)
		if err != nil {
			return nil, nil, err
		}
		projectID = p.ID
	}

	logInfo("Fetching keys for project %s...", projectID)
	entries, err := client.FetchAll(ctx, projectID, cfg.Platform)
	if err != nil {
		return nil, nil, err
	}
	logInfo("Fetched %d keys", len(entries))

	set, err := catalog.NewSet(entries)
	if err != nil {
		return nil, nil, err
	}
	if err := set.ParseAll(); err != nil {
		return nil, nil, err
	}
	return cfg, set, nil
}

// validate runs cross-locale validation and logs every problem. The
// returned error is non-nil when a fatal problem blocks generation.
func validate(cfg *config.Config, set *catalog.Set) error {
	report := catalog.Validate(set, cfg.Locales, cfg.DefaultLocale)
	for _, p := range report.Problems {
		if p.Kind.Fatal() {
			logError("%s", p)
		} else {
			logWarning("%s", p)
		}
	}

	fatal, warnings := report.Counts()
	if fatal > 0 {
		return &catalog.ValidationFailedError{Report: report}
	}
	if warnings > 0 {
		logWarning("%d warning(s), continuing", warnings)
	}
	return nil
}

// ---------------------------------------------------------------------------
// generate
// ---------------------------------------------------------------------------

func newGenerateCmd() *cobra.Command {
	var failOnDiff bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Fetch, validate, and write the generated Go file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, set, err := loadCatalog(cmd.Context())
			if err != nil {
				return err
			}
			if err := validate(cfg, set); err != nil {
				var vfe *catalog.ValidationFailedError
				if errors.As(err, &vfe) {
					fatal, _ := vfe.Report.Counts()
					return fmt.Errorf("%d fatal problem(s), output not written", fatal)
				}
				return err
			}

			out, err := codegen.Emit(set, codegen.Options{
				Package:       cfg.Package,
				Locales:       cfg.Locales,
				DefaultLocale: cfg.DefaultLocale,
				RuntimeImport: cfg.RuntimeImport,
			})
			if err != nil {
				return err
			}

			path := filepath.Join(rootDir, cfg.Output)
			if prev, err := os.ReadFile(path); err == nil && string(prev) == string(out) {
				logInfo("%s is up to date (%d keys)", cfg.Output, set.Len())
				return nil
			}
			if failOnDiff {
				return fmt.Errorf("%s is out of date, rerun generate without --fail-on-diff", cfg.Output)
			}

			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return fmt.Errorf("creating output directory: %w", err)
			}
			if err := os.WriteFile(path, out, 0644); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}
			logSuccess("Wrote %s (%d keys, %d locales)", cfg.Output, set.Len(), len(cfg.Locales))
			return nil
		},
	}

	cmd.Flags().BoolVar(&failOnDiff, "fail-on-diff", false, "Fail instead of writing when the output would change (for CI)")
	return cmd
}

// ---------------------------------------------------------------------------
// check
// ---------------------------------------------------------------------------

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Fetch and validate the catalog without writing anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, set, err := loadCatalog(cmd.Context())
			if err != nil {
				return err
			}
			if err := validate(cfg, set); err != nil {
				var vfe *catalog.ValidationFailedError
				if errors.As(err, &vfe) {
					fatal, warnings := vfe.Report.Counts()
					return fmt.Errorf("%d fatal problem(s), %d warning(s)", fatal, warnings)
				}
				return err
			}
			logSuccess("Catalog is consistent: %d keys across %d locales", set.Len(), len(cfg.Locales))
			return nil
		},
	}
}

// ---------------------------------------------------------------------------
// export
// ---------------------------------------------------------------------------

func newExportCmd() *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write one gettext PO file per locale for translators",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, set, err := loadCatalog(cmd.Context())
			if err != nil {
				return err
			}

			dir := filepath.Join(rootDir, outDir)
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("creating %s: %w", dir, err)
			}

			project := cfg.Project
			if project == "" {
				project = cfg.ProjectID
			}
			for _, locale := range cfg.Locales {
				if locale == cfg.DefaultLocale {
					continue
				}
				f := pofile.Build(set, locale, cfg.DefaultLocale, project, version)
				path := filepath.Join(dir, locale+".po")
				if err := f.WriteFile(path); err != nil {
					return fmt.Errorf("writing %s: %w", path, err)
				}
				logSuccess("Exported %s (%d entries)", path, len(f.Entries))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out", "po", "Output directory for PO files, relative to --root")
	return cmd
}
