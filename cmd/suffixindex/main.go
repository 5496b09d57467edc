// Package main implements the suffixindex command line: one-shot queries
// against a corpus file and the search-as-you-type HTTP server.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/viniciusth/suffixindex/internal/corpus"
	"github.com/viniciusth/suffixindex/internal/libs/config"
	"github.com/viniciusth/suffixindex/internal/libs/obs"
	"github.com/viniciusth/suffixindex/internal/search"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "suffixindex",
		Short:        "Substring search over a fixed list of strings",
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.String("corpus", "", "file with one string per line (env CORPUS_PATH)")
	pf.Bool("fold-case", false, "match case-insensitively (env FOLD_CASE)")
	pf.Bool("normalize", false, "apply NFC normalization (env NORMALIZE)")
	pf.String("log-level", "", "log level (env LOG_LEVEL)")

	root.AddCommand(
		newMatchCmd(),
		newIndexCmd(),
		newRankCmd(),
		newSelectCmd(),
		newServeCmd(),
	)
	return root
}

// loadConfig reads the environment and applies any flags set on cmd.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("corpus") {
		cfg.CorpusPath, _ = flags.GetString("corpus")
	}
	if flags.Changed("fold-case") {
		cfg.FoldCase, _ = flags.GetBool("fold-case")
	}
	if flags.Changed("normalize") {
		cfg.Normalize, _ = flags.GetBool("normalize")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Lookup("port") != nil && flags.Changed("port") {
		cfg.APIPort, _ = flags.GetString("port")
	}

	if cfg.CorpusPath == "" {
		return nil, fmt.Errorf("%w: no corpus given, set --corpus or CORPUS_PATH", config.ErrInvalid)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadService reads the corpus named by the configuration and indexes it.
func loadService(cmd *cobra.Command) (*search.Service, *config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}

	obs.InitLogger(cfg.LogLevel)
	logger := obs.Logger("cli")

	entries, err := corpus.LoadFile(cfg.CorpusPath, corpus.Options{SkipBlank: cfg.SkipBlank})
	if err != nil {
		return nil, nil, err
	}
	logger.Debug().Str("path", cfg.CorpusPath).Int("strings", len(entries)).Msg("corpus loaded")

	svc, err := search.Build(
		entries,
		search.IndexOptions{FoldCase: cfg.FoldCase, Normalize: cfg.Normalize},
		search.Options{CacheSize: cfg.CacheSize, DefaultLimit: cfg.DefaultLimit, MaxLimit: cfg.MaxLimit},
		logger,
	)
	if err != nil {
		return nil, nil, err
	}
	return svc, cfg, nil
}

func newMatchCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "match <query>",
		Short: "print every string containing query",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := loadService(cmd)
			if err != nil {
				return err
			}

			var matches []string
			if limit > 0 {
				matches = svc.Index().MatchKStrings(args[0], limit)
			} else {
				matches = svc.Index().Match(args[0])
			}
			out := cmd.OutOrStdout()
			for _, m := range matches {
				fmt.Fprintln(out, m)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "k", 0, "stop after this many strings (0 prints all)")
	return cmd
}

func newIndexCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "index <query>",
		Short: "print each matching string with the byte offsets of query in it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := loadService(cmd)
			if err != nil {
				return err
			}

			res := svc.Search(args[0], limit)
			out := cmd.OutOrStdout()
			for _, item := range res.Items {
				fmt.Fprintf(out, "%d\t%v\t%s\n", item.ID, item.Positions, item.Text)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "k", 0, "maximum number of strings (0 uses SEARCH_DEFAULT_LIMIT)")
	return cmd
}

func newRankCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rank <query>",
		Short: "print the number of suffixes ordered before query",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := loadService(cmd)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), svc.Rank(args[0]))
			return nil
		},
	}
}

func newSelectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "select <rank>",
		Short: "print the suffix with the given rank",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rank, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("rank %q is not an integer", args[0])
			}
			svc, _, err := loadService(cmd)
			if err != nil {
				return err
			}
			suffix, err := svc.Select(rank)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), suffix)
			return nil
		},
	}
}
