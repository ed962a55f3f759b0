// Copyright 2026 Gaussref Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/gaussref/refbuild"
	"github.com/gaussref/refbuild/build"
)

func main() {
	app := &cli.App{
		Name:  "refbuild",
		Usage: "Build validated reference artifacts from a chunk corpus",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "build",
				Usage:  "Run the full pipeline and commit the artifact set",
				Action: buildCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "content",
						Aliases:  []string{"c"},
						Usage:    "Path to the chunk content root",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "out",
						Aliases:  []string{"o"},
						Usage:    "Output directory for the committed artifacts",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "budget",
						Usage: "Size budget for the static reference document",
						Value: 8000,
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Worker pool size for parallel validation",
					},
					&cli.BoolFlag{
						Name:  "skip-index",
						Usage: "Do not build the search-index artifact",
					},
				},
			},
			{
				Name:   "validate",
				Usage:  "Check the corpus without producing artifacts",
				Action: validateCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "content",
						Aliases:  []string{"c"},
						Usage:    "Path to the chunk content root",
						Required: true,
					},
				},
			},
			{
				Name:   "search",
				Usage:  "Look up a keyword in a built search index",
				Action: searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "index",
						Aliases:  []string{"i"},
						Usage:    "Path to the index directory of a committed build",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "query",
						Aliases:  []string{"q"},
						Usage:    "Keyword to look up",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "prefix",
						Usage: "Treat the query as a keyword prefix",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func buildCommand(c *cli.Context) error {
	cfg := build.Config{
		ContentRoot: c.String("content"),
		OutputDir:   c.String("out"),
		Budget:      c.Int("budget"),
		SkipIndex:   c.Bool("skip-index"),
	}

	var opts []build.Option
	if size := c.Int("pool-size"); size > 0 {
		opts = append(opts, build.WithPoolSize(size))
	}

	manifest, err := refbuild.Build(context.Background(), cfg, opts...)
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Status: %s\n", manifest.Status)
	fmt.Fprintf(os.Stderr, "Chunks: %d\n", len(manifest.Chunks))
	fmt.Fprintf(os.Stderr, "Artifacts: %d\n", len(manifest.Artifacts))
	for _, issue := range manifest.Issues {
		fmt.Fprintf(os.Stderr, "Issue: %s\n", issue)
	}
	if manifest.BudgetViolation != "" {
		return cli.Exit(fmt.Sprintf("budget violation: %s", manifest.BudgetViolation), 1)
	}
	return nil
}

func validateCommand(c *cli.Context) error {
	report, err := refbuild.Validate(context.Background(), c.String("content"), nil)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Checked: %d\n", report.Checked)
	for _, le := range report.LoadErrors {
		fmt.Fprintf(os.Stderr, "Load error: %s\n", le)
	}
	for _, issue := range report.Invalid {
		fmt.Fprintf(os.Stderr, "Invalid: %s (%s)\n", issue.ID, issue.Source)
		for _, e := range issue.Errors {
			fmt.Fprintf(os.Stderr, "  %s\n", e)
		}
	}
	if !report.OK() {
		return cli.Exit("corpus has validation problems", 1)
	}
	fmt.Fprintln(os.Stderr, "OK")
	return nil
}

func searchCommand(c *cli.Context) error {
	reader, err := refbuild.OpenIndex(c.String("index"), nil)
	if err != nil {
		return fmt.Errorf("failed to open index: %w", err)
	}
	defer reader.Close()

	query := c.String("query")
	if c.Bool("prefix") {
		matches, err := reader.PrefixLookup(query)
		if err != nil {
			return fmt.Errorf("prefix lookup failed: %w", err)
		}
		keywords := make([]string, 0, len(matches))
		for kw := range matches {
			keywords = append(keywords, kw)
		}
		sort.Strings(keywords)
		for _, kw := range keywords {
			fmt.Printf("%s: %s\n", kw, strings.Join(matches[kw], ", "))
		}
		return nil
	}

	ids, err := reader.Lookup(query)
	if err != nil {
		return fmt.Errorf("lookup failed: %w", err)
	}
	for _, id := range ids {
		fmt.Println(id)
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
