package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/agenthands/factscreen/internal/config"
	"github.com/agenthands/factscreen/internal/core"
	"github.com/agenthands/factscreen/internal/driver"
	"github.com/agenthands/factscreen/internal/llm"
	"github.com/agenthands/factscreen/internal/logging"
)

var (
	// Global flags
	configPath string
	verbose    bool
	jsonOutput bool

	// Input flags
	inputFile     string
	inputJSONL    string
	inputSQLite   string
	useMemgraph   bool
	memgraphNodes bool
	limit         int

	// Screening flags
	threshold float64
	workers   int

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "factscreen",
	Short: "Validate knowledge-base facts and find near-duplicates",
	Long: `factscreen checks a batch of facts of the form Predicate(Argument1, Argument2).

Statements are read from a text file (one per line), a JSON-lines export,
a SQLite table or Memgraph. Statements given as arguments take precedence.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			if err := logging.Init("development"); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
		}
		logger = logging.Get()
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "path to config.toml (default $CONFIG_PATH or config/config.toml)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	pf.BoolVar(&jsonOutput, "json", false, "print results as JSON")

	pf.StringVar(&inputFile, "file", "", "read statements from a text file, one per line")
	pf.StringVar(&inputJSONL, "jsonl", "", "read statements from a JSON-lines export")
	pf.StringVar(&inputSQLite, "sqlite", "", "read statements from a SQLite database")
	pf.BoolVar(&useMemgraph, "memgraph", false, "read statements from Memgraph")
	pf.BoolVar(&memgraphNodes, "memgraph-nodes", false, "read Memgraph Fact nodes instead of RELATES_TO edges (implies --memgraph)")
	pf.IntVar(&limit, "limit", 0, "maximum number of statements to read (0 = all)")

	pf.Float64Var(&threshold, "threshold", 0.95, "Jaccard similarity threshold in [0, 1]")
	pf.IntVar(&workers, "workers", 0, "compare on N goroutines (0 = configured backend)")

	rootCmd.AddCommand(validateCmd, dupesCmd, screenCmd, goldenCmd, contradictionsCmd, repairCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// loadConfig merges command-line flags over the file and environment config.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("threshold") {
		cfg.Screen.Threshold = threshold
	}
	if workers > 0 {
		cfg.Screen.ParallelEnabled = true
		cfg.Screen.Workers = workers
	}
	if limit > 0 {
		cfg.Source.Limit = limit
	}

	switch {
	case inputFile != "":
		cfg.Source.Kind, cfg.Source.Path = "file", inputFile
	case inputJSONL != "":
		cfg.Source.Kind, cfg.Source.Path = "jsonl", inputJSONL
	case inputSQLite != "":
		cfg.Source.Kind, cfg.SQLite.Path = "sqlite", inputSQLite
	case useMemgraph || memgraphNodes:
		cfg.Source.Kind = "memgraph"
		if memgraphNodes {
			cfg.Memgraph.FromNodes = true
		}
	}
	return cfg, cfg.Validate()
}

// newScreener builds the service for one command. withLLM is set only by
// commands that need a repair client.
func newScreener(ctx context.Context, cmd *cobra.Command, withLLM bool) (*core.Screener, *config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}

	source, err := driver.OpenSource(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	var llmClient llm.LLMClient
	if withLLM {
		llmClient, err = llm.NewClient(ctx, cfg.LLM)
		if errors.Is(err, llm.ErrNoProvider) {
			llmClient = nil
		} else if err != nil {
			return nil, nil, err
		}
	}

	return core.NewScreener(cfg, source, llmClient, logger), cfg, nil
}

// statements returns args when given, otherwise the configured source.
func statements(ctx context.Context, s *core.Screener, cfg *config.Config, args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	st, err := s.LoadStatements(ctx, cfg.Source.Limit)
	if errors.Is(err, core.ErrNoSource) {
		return nil, errors.New("no input: pass statements as arguments or use --file, --jsonl, --sqlite or --memgraph")
	}
	return st, err
}
