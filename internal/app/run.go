package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vk/holograph/internal/builder"
	"github.com/vk/holograph/internal/ctxlog"
	"github.com/vk/holograph/internal/graph"
	"github.com/vk/holograph/internal/hrr"
)

// Run executes the main application logic: build the graph from the loaded
// model, run it, then evaluate probes and write the report.
func (a *App) Run(ctx context.Context, appConfig *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	res, err := a.build(ctx, appConfig)
	if err != nil {
		return fmt.Errorf("failed to build graph: %w", err)
	}
	a.logger.Debug("Graph built.",
		"nodes", len(res.Nodes),
		"depths", len(res.Graph.Depths()),
		"connections", res.Graph.Connections(),
	)

	if a.logger.Enabled(ctx, slog.LevelDebug) {
		var sb strings.Builder
		res.Graph.Describe(&sb)
		a.logger.Debug("Graph layout.", "layout", sb.String())
	}

	if res.Graph.Connections() == 0 {
		a.logger.Warn("No connections found in graph, execution not required.")
		return a.report(res)
	}

	if appConfig.Sync {
		a.logger.Info("Starting sequential execution...")
		err = res.Graph.RunSync(ctx)
	} else {
		a.logger.Info("Starting concurrent execution...", "workers", appConfig.WorkerCount)
		err = res.Graph.Run(ctx, appConfig.WorkerCount)
	}
	if err != nil {
		return fmt.Errorf("execution failed: %w", err)
	}
	a.logger.Info("Execution finished.")

	return a.report(res)
}

// report writes node summaries and probe results to the app writer.
func (a *App) report(res *builder.Result) error {
	fmt.Fprintf(a.outW, "graph: %d depths, %d connections, %d nodes\n",
		len(res.Graph.Depths()), res.Graph.Connections(), len(res.Nodes))

	for _, addr := range res.Addresses {
		n := res.Nodes[addr]
		if n.Kind() == graph.KindOperator {
			fmt.Fprintf(a.outW, "output %s: dim %d, norm %.6f\n", addr, n.Dim(), hrr.Norm(n.Output()))
		}
	}

	for _, probe := range a.model.Probes {
		score, err := a.evalProbe(res, probe.Name, probe.Source, probe.Unbind, probe.Target)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.outW, "probe %s: similarity %.6f\n", probe.Name, score)
	}
	return nil
}

// evalProbe computes similarity(unbind(source, unbind), target); with no
// unbind address it compares source against target directly.
func (a *App) evalProbe(res *builder.Result, name, source, unbind, target string) (float64, error) {
	src, ok := res.Node(source)
	if !ok {
		return 0, fmt.Errorf("probe %q: unknown source %q", name, source)
	}
	tgt, ok := res.Node(target)
	if !ok {
		return 0, fmt.Errorf("probe %q: unknown target %q", name, target)
	}

	probed := src.Output()
	if unbind != "" {
		ub, ok := res.Node(unbind)
		if !ok {
			return 0, fmt.Errorf("probe %q: unknown unbind %q", name, unbind)
		}
		var err error
		probed, err = hrr.Unbind(probed, ub.Output())
		if err != nil {
			return 0, fmt.Errorf("probe %q: %w", name, err)
		}
	}

	score, err := hrr.Similarity(probed, tgt.Output())
	if err != nil {
		return 0, fmt.Errorf("probe %q: %w", name, err)
	}
	return score, nil
}
