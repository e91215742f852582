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
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/poiesic/distill"
	"github.com/poiesic/distill/ai"
	"github.com/poiesic/distill/core"
	"github.com/poiesic/distill/extract"
	"github.com/poiesic/distill/storage"
	"github.com/poiesic/distill/storage/sqlite"
)

func main() {
	app := &cli.App{
		Name:  "distill",
		Usage: "Extract typed semantic records from chat threads and documents",
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
				Name:   "extract",
				Usage:  "Extract semantic records from a raw item batch",
				Action: extractCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to the record database file",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "ledger",
						Usage: "Path to the extraction ledger directory (enables skip of processed items)",
					},
					&cli.StringFlag{
						Name:     "input",
						Aliases:  []string{"i"},
						Usage:    "Path to the JSON file with raw threads and sections",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "host",
						Usage: "Text service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "model",
						Usage: "Text model name",
						Value: "gpt-4o-mini",
					},
					&cli.Float64Flag{
						Name:  "temperature",
						Usage: "Sampling temperature",
						Value: 0.3,
					},
					&cli.BoolFlag{
						Name:  "enhance",
						Usage: "Run the glossary enhancement pass after extraction",
					},
					&cli.StringFlag{
						Name:  "context",
						Usage: "Background text included in the enhancement prompt",
					},
				},
			},
			{
				Name:   "query",
				Usage:  "Retrieve stored semantic records",
				Action: queryCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to the record database file",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "kind",
						Usage: "Filter by record kind (qna, insight, feedback, reference, instruction, glossary)",
					},
					&cli.StringSliceFlag{
						Name:    "keyword",
						Aliases: []string{"k"},
						Usage:   "Filter by keyword (repeatable, matches any)",
					},
					&cli.StringFlag{
						Name:  "origin",
						Usage: "Filter by origin (thread, document_section)",
					},
					&cli.TimestampFlag{
						Name:   "from",
						Usage:  "Only records created at or after this time",
						Layout: time.RFC3339,
					},
					&cli.TimestampFlag{
						Name:   "to",
						Usage:  "Only records created at or before this time",
						Layout: time.RFC3339,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Print records as JSON",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func extractCommand(c *cli.Context) error {
	ctx := context.Background()

	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("host")),
		ai.WithModel(c.String("model")),
		ai.WithTemperature(c.Float64("temperature")),
	)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	opts := []distill.PipelineOption{distill.WithAIConfig(aiConfig)}
	if ledgerPath := c.String("ledger"); ledgerPath != "" {
		opts = append(opts, distill.WithLedgerPath(ledgerPath))
	}

	pipeline, err := distill.NewPipeline(c.String("db"), opts...)
	if err != nil {
		return fmt.Errorf("failed to open pipeline: %w", err)
	}
	defer pipeline.Close()

	items, err := loadItems(c.String("input"))
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Database: %s\n", c.String("db"))
	fmt.Fprintf(os.Stderr, "Items: %d\n", len(items))
	fmt.Fprintln(os.Stderr)

	tracker := extract.NewProgressTracker(os.Stderr)
	records, err := pipeline.NewExtractor().Extract(ctx, items, tracker.Func())
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	if c.Bool("enhance") {
		records, err = pipeline.NewEnhancer().Enhance(ctx, records, c.String("context"))
		if err != nil {
			return fmt.Errorf("enhancement failed: %w", err)
		}
	}

	stored, err := pipeline.Store().StoreRecords(ctx, records...)
	if err != nil {
		return fmt.Errorf("failed to store records: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Stored %d records in %s\n", len(stored), tracker.Elapsed().Round(time.Millisecond))
	return nil
}

func queryCommand(c *cli.Context) error {
	ctx := context.Background()

	repo, err := sqlite.NewRepository(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer repo.Close()

	var query storage.Query
	if kindText := c.String("kind"); kindText != "" {
		kind, err := core.ParseKind(kindText)
		if err != nil {
			return err
		}
		query.Kind = kind
	}
	if originText := c.String("origin"); originText != "" {
		origin, err := core.ParseOrigin(originText)
		if err != nil {
			return err
		}
		query.Origin = origin
	}
	query.Keywords = c.StringSlice("keyword")
	if from := c.Timestamp("from"); from != nil {
		query.CreatedFrom = *from
	}
	if to := c.Timestamp("to"); to != nil {
		query.CreatedTo = *to
	}

	records, err := repo.Retrieve(ctx, query)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if c.Bool("json") {
		return printJSON(records)
	}
	printText(records)
	return nil
}

func printJSON(records []core.SemanticRecord) error {
	views := make([]recordView, 0, len(records))
	for i := range records {
		views = append(views, viewOf(&records[i]))
	}
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(views)
}

func printText(records []core.SemanticRecord) {
	for i := range records {
		record := &records[i]
		fmt.Printf("[%d] %s (%s)\n", record.Id, record.Kind, record.CreatedAt.Format(time.RFC3339))
		switch record.Kind {
		case core.KindQnA:
			fmt.Printf("  Q: %s\n  A: %s\n", record.Question, record.Answer)
		case core.KindGlossary:
			fmt.Printf("  %s: %s", record.Term, record.Definition)
			if record.NeedsReview {
				fmt.Print("  (needs review)")
			}
			fmt.Println()
		default:
			fmt.Printf("  %s\n", record.Content)
		}
		if len(record.Keywords) > 0 {
			fmt.Printf("  keywords: %s\n", strings.Join(record.Keywords, ", "))
		}
	}
	fmt.Printf("%d record(s)\n", len(records))
}

// recordView is the JSON shape of a record for CLI output.
type recordView struct {
	Id            core.ID   `json:"id"`
	Kind          string    `json:"kind"`
	Question      string    `json:"question,omitempty"`
	Answer        string    `json:"answer,omitempty"`
	Content       string    `json:"content,omitempty"`
	ReferenceKind string    `json:"reference_kind,omitempty"`
	Term          string    `json:"term,omitempty"`
	Definition    string    `json:"definition,omitempty"`
	Confidence    string    `json:"confidence,omitempty"`
	NeedsReview   bool      `json:"needs_review,omitempty"`
	Keywords      []string  `json:"keywords,omitempty"`
	Origin        string    `json:"origin,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func viewOf(record *core.SemanticRecord) recordView {
	view := recordView{
		Id:            record.Id,
		Kind:          record.Kind.String(),
		Question:      record.Question,
		Answer:        record.Answer,
		Content:       record.Content,
		ReferenceKind: record.ReferenceKind,
		Term:          record.Term,
		Definition:    record.Definition,
		NeedsReview:   record.NeedsReview,
		Keywords:      record.Keywords,
		CreatedAt:     record.CreatedAt,
	}
	if record.Confidence != 0 {
		view.Confidence = record.Confidence.String()
	}
	if record.Source.Origin != 0 {
		view.Origin = record.Source.Origin.String()
	}
	return view
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
