package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alvmarrod/web-pathfinder/internal/channel"
	"github.com/alvmarrod/web-pathfinder/internal/resolver"
	"github.com/alvmarrod/web-pathfinder/internal/search"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type searchOptions struct {
	algorithm string
	maxNodes  int
}

func newSearchCmd(root *rootOptions) *cobra.Command {
	opts := &searchOptions{}

	cmd := &cobra.Command{
		Use:   "search <start-url> <target-url>",
		Short: "Run one search and print its events as JSON lines",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, root, opts, args[0], args[1])
		},
	}
	cmd.Flags().StringVarP(&opts.algorithm, "algorithm", "a", string(search.BFS), "BFS, DFS, UCS, GREEDY or IDS")
	cmd.Flags().IntVarP(&opts.maxNodes, "max-nodes", "n", 0, "node budget (default from config)")

	return cmd
}

func runSearch(cmd *cobra.Command, root *rootOptions, opts *searchOptions, start, target string) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}

	req, alg, err := search.Request{
		StartURL:  start,
		TargetURL: target,
		MaxNodes:  opts.maxNodes,
		Algorithm: opts.algorithm,
	}.Normalize(cfg.DefaultMaxNodes)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logrus.WithFields(logrus.Fields{
		"search_id": uuid.NewString(),
		"algorithm": alg,
	})

	pages := resolver.New(cfg.ResolverConfig(), log)
	engine := search.NewEngine(pages, cfg.SearchOptions(), nil, log)

	res, err := engine.Run(ctx, req, alg, channel.NewWriterEmitter(cmd.OutOrStdout()), log)
	if err != nil {
		return fmt.Errorf("search aborted: %w", err)
	}

	if res.Outcome != search.OutcomeFound {
		log.Infof("No path found (%s after %d expansions)", res.Outcome, res.Expanded)
	}
	return nil
}
