// Copyright 2025 Poiesic Systems
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
	"strconv"
	"strings"

	"github.com/poiesic/bomvault"
	"github.com/poiesic/bomvault/compare"
	"github.com/poiesic/bomvault/core"
	"github.com/poiesic/bomvault/ingestion"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "bomvault",
		Usage: "SBOM storage, search, and comparison for uploaded applications",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:     "db",
				Aliases:  []string{"d"},
				Usage:    "Path to BadgerDB database directory",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "owner",
				Aliases:  []string{"o"},
				Usage:    "Owner subject all operations are scoped to",
				Required: true,
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "import",
				Usage:     "Upload an artifact and analyze its components",
				ArgsUsage: "<file>",
				Action:    importCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "name",
						Usage: "Application name (defaults to the filename)",
					},
					&cli.StringFlag{
						Name:  "version",
						Usage: "Application version",
					},
					&cli.StringFlag{
						Name:  "binary-type",
						Usage: "Binary type of the artifact",
					},
					&cli.StringFlag{
						Name:  "manufacturer",
						Usage: "Application manufacturer",
					},
					&cli.StringFlag{
						Name:  "supplier",
						Usage: "Application supplier",
					},
				},
			},
			{
				Name:   "list",
				Usage:  "List the owner's applications",
				Action: listCommand,
			},
			{
				Name:      "search",
				Usage:     "Search the owner's applications by relevance",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of results (1-50)",
						Value: 10,
					},
				},
			},
			{
				Name:      "compare",
				Usage:     "Compare the component inventories of two applications",
				ArgsUsage: "<app-id> <app-id>",
				Action:    compareCommand,
			},
			{
				Name:      "export",
				Usage:     "Write an application's SBOM document to stdout",
				ArgsUsage: "<app-id>",
				Action:    exportCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "format",
						Usage: "Document format (cyclonedx, spdx)",
						Value: core.FormatCycloneDX,
					},
				},
			},
			{
				Name:      "delete",
				Usage:     "Delete an application and its inventory links",
				ArgsUsage: "<app-id>",
				Action:    deleteCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// openDatabase opens the database named by the global --db flag.
func openDatabase(c *cli.Context) (*bomvault.Database, error) {
	db, err := bomvault.NewDatabase(c.String("db"))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func importCommand(c *cli.Context) error {
	ctx := context.Background()

	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one artifact file")
	}
	filePath := c.Args().First()

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	pipeline, err := db.NewIngestionPipeline()
	if err != nil {
		return fmt.Errorf("failed to create ingestion pipeline: %w", err)
	}
	defer pipeline.Release()

	owner := core.OwnerID(c.String("owner"))
	app, err := pipeline.Import(ctx, owner, filePath, &ingestion.ImportOptions{
		Name:         c.String("name"),
		Version:      c.String("version"),
		BinaryType:   c.String("binary-type"),
		Manufacturer: c.String("manufacturer"),
		Supplier:     c.String("supplier"),
	})
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	fmt.Printf("Imported %s (id %d)\n", app.Name, app.Id)
	fmt.Printf("  status:     %s\n", app.Status)
	fmt.Printf("  platform:   %s\n", app.Platform)
	fmt.Printf("  components: %d\n", app.ComponentCount)
	if app.Status == core.StatusFailed {
		fmt.Printf("  error:      %s\n", app.ErrorMessage)
	}
	return nil
}

func listCommand(c *cli.Context) error {
	ctx := context.Background()

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	owner := core.OwnerID(c.String("owner"))
	apps, err := db.ApplicationRepository().ListApplications(ctx, owner)
	if err != nil {
		return fmt.Errorf("list failed: %w", err)
	}

	if len(apps) == 0 {
		fmt.Println("No applications.")
		return nil
	}

	for _, app := range apps {
		fmt.Printf("%d\t%s\t%s\t%s\t%d components\t%s\n",
			app.Id, app.Name, app.Version, app.Platform, app.ComponentCount, app.Status)
	}
	return nil
}

func searchCommand(c *cli.Context) error {
	ctx := context.Background()

	if c.NArg() < 1 {
		return fmt.Errorf("expected a search query")
	}
	query := strings.Join(c.Args().Slice(), " ")

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	searcher, err := db.NewSearcher()
	if err != nil {
		return fmt.Errorf("failed to create searcher: %w", err)
	}

	owner := core.OwnerID(c.String("owner"))
	results, meta, err := searcher.Search(ctx, owner, query, c.Int("limit"))
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "%d of %d applications matched\n", meta.MatchCount, meta.CandidateCount)
	for _, result := range results {
		fmt.Printf("%6.2f\t%d\t%s\t%s\t%s\n",
			result.Score, result.Application.Id, result.Application.Name,
			result.Application.Version, result.Breakdown.MatchField)
	}
	return nil
}

func compareCommand(c *cli.Context) error {
	ctx := context.Background()

	if c.NArg() != 2 {
		return fmt.Errorf("expected exactly two application ids")
	}
	app1Id, err := parseAppID(c.Args().Get(0))
	if err != nil {
		return err
	}
	app2Id, err := parseAppID(c.Args().Get(1))
	if err != nil {
		return err
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	comparer, err := db.NewComparer()
	if err != nil {
		return fmt.Errorf("failed to create comparer: %w", err)
	}

	owner := core.OwnerID(c.String("owner"))
	result, err := comparer.CompareApplications(ctx, owner, app1Id, app2Id)
	if err != nil {
		return fmt.Errorf("comparison failed: %w", err)
	}

	fmt.Printf("Comparing %s and %s\n", result.App1Name, result.App2Name)
	fmt.Printf("  similarity:       %.2f%%\n", result.Summary.SimilarityPercentage)
	fmt.Printf("  common:           %d\n", result.Summary.TotalCommon)
	fmt.Printf("  version changes:  %d\n", result.Summary.TotalVersionDifferences)
	fmt.Printf("  only in %s: %d\n", result.App1Name, result.Summary.TotalUniqueApp1)
	fmt.Printf("  only in %s: %d\n", result.App2Name, result.Summary.TotalUniqueApp2)

	for _, diff := range result.Differences {
		switch diff.Type {
		case compare.DiffVersion:
			fmt.Printf("  ~ %s %s -> %s\n", diff.ComponentName, diff.App1Version, diff.App2Version)
		case compare.DiffRemoved:
			fmt.Printf("  - %s %s\n", diff.ComponentName, diff.App1Version)
		case compare.DiffAdded:
			fmt.Printf("  + %s %s\n", diff.ComponentName, diff.App2Version)
		}
	}
	return nil
}

func exportCommand(c *cli.Context) error {
	ctx := context.Background()

	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one application id")
	}
	appID, err := parseAppID(c.Args().First())
	if err != nil {
		return err
	}

	format := strings.ToLower(c.String("format"))
	if format != core.FormatCycloneDX && format != core.FormatSPDX {
		return fmt.Errorf("invalid format %q: must be %s or %s", format, core.FormatCycloneDX, core.FormatSPDX)
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	owner := core.OwnerID(c.String("owner"))
	app, err := db.ApplicationRepository().GetApplication(ctx, owner, appID)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	doc := app.CycloneDX
	if format == core.FormatSPDX {
		doc = app.SPDX
	}
	if len(doc) == 0 {
		return fmt.Errorf("application %d has no %s document", appID, format)
	}

	_, err = os.Stdout.Write(doc)
	return err
}

func deleteCommand(c *cli.Context) error {
	ctx := context.Background()

	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one application id")
	}
	appID, err := parseAppID(c.Args().First())
	if err != nil {
		return err
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	owner := core.OwnerID(c.String("owner"))
	if err := db.ApplicationRepository().DeleteApplication(ctx, owner, appID); err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}

	fmt.Printf("Deleted application %d\n", appID)
	return nil
}

// parseAppID parses a numeric application id argument.
func parseAppID(arg string) (core.ID, error) {
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid application id %q", arg)
	}
	return core.ID(id), nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
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

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
