package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/appcat"
	"github.com/fwojciec/appcat/crawl"
	"github.com/fwojciec/appcat/matchr"
)

// RecordHistory lists how an application's stored record changed across
// snapshots.
type RecordHistory interface {
	FindRecordHistory(ctx context.Context, name string) ([]string, error)
}

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Reader appcat.CatalogReader
	Writer appcat.CatalogWriter

	// Snapshots and History are nil unless a database is configured.
	Snapshots appcat.SnapshotService
	History   RecordHistory

	Extractor  appcat.ExportExtractor
	Apps       appcat.AppSource
	Scraper    *crawl.Scraper
	Enhancer   *crawl.Enhancer
	NearMisses *matchr.NearMissFinder
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB      string `name:"db" env:"APPCAT_DB" help:"SQLite database that keeps a snapshot of every written catalog"`
	Verbose bool   `short:"v" help:"Log debug output"`

	Parse     ParseCmd     `cmd:"" help:"Extract a catalog from a saved export page"`
	Scrape    ScrapeCmd    `cmd:"" help:"Scrape application profile pages"`
	Enhance   EnhanceCmd   `cmd:"" help:"Fill missing descriptions and platforms of a catalog"`
	Merge     MergeCmd     `cmd:"" help:"Merge a baseline catalog with a refresh"`
	Snapshots SnapshotsCmd `cmd:"" help:"List stored catalog snapshots"`
	Export    ExportCmd    `cmd:"" help:"Write a stored snapshot as CSV"`
}

// ParseCmd is the "parse" subcommand.
type ParseCmd struct {
	File      string `arg:"" type:"existingfile" help:"Saved catalog export (HTML)"`
	Output    string `short:"o" default:"apps_list_from_html.csv" help:"Output CSV path"`
	Layout    string `enum:"full,minimal" default:"minimal" help:"Column layout (full, minimal)"`
	TwoPhase  bool   `name:"two-phase" help:"Match attributes in any order"`
	Translate bool   `short:"t" help:"Translate descriptions with the built-in phrase table"`
	Gemini    bool   `help:"Translate phrases missing from the table with Gemini (requires GEMINI_API_KEY)"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	Slugs       []string `arg:"" optional:"" help:"App slugs to scrape (default: built-in list)"`
	Output      string   `short:"o" default:"setapp_apps_complete.csv" help:"Output CSV path"`
	Layout      string   `enum:"full,minimal" default:"full" help:"Column layout (full, minimal)"`
	Host        string   `default:"https://setapp.com" help:"Catalog site root"`
	Discover    bool     `short:"d" help:"Discover apps from listing pages and the sitemap"`
	Concurrency int      `short:"c" default:"1" help:"Concurrent fetch limit"`
	Retries     int      `default:"3" help:"Fetch attempts per page"`
	Rate        float64  `default:"0.5" help:"Requests per second per domain (0 disables limiting)"`
	Browser     bool     `help:"Render pages in a headless browser"`
	Extractor   string   `enum:"trafilatura,readability" default:"trafilatura" help:"Main content extractor (trafilatura, readability)"`
	Seed        uint64   `help:"Seed for placeholder ratings and prices (0 picks one at random)"`
}

// EnhanceCmd is the "enhance" subcommand.
type EnhanceCmd struct {
	Input     string  `arg:"" type:"existingfile" help:"Catalog CSV to enhance"`
	Output    string  `short:"o" default:"apps_list_enhanced_descriptions.csv" help:"Output CSV path"`
	Retries   int     `default:"3" help:"Fetch attempts per page"`
	Rate      float64 `default:"0.5" help:"Requests per second per domain (0 disables limiting)"`
	Browser   bool    `help:"Render pages in a headless browser"`
	Extractor string  `enum:"trafilatura,readability" default:"trafilatura" help:"Main content extractor (trafilatura, readability)"`
}

// MergeCmd is the "merge" subcommand.
type MergeCmd struct {
	Baseline string `arg:"" type:"existingfile" help:"Older catalog, trusted for descriptions"`
	Refresh  string `arg:"" type:"existingfile" help:"Newer catalog, trusted for everything else"`
	Output   string `short:"o" default:"apps_list_merged.csv" help:"Output CSV path"`
	NearMiss bool   `name:"near-miss" help:"Report unmatched names that probably name the same app"`
}

// SnapshotsCmd is the "snapshots" subcommand.
type SnapshotsCmd struct {
	App   string `help:"Show how the record of this app changed across snapshots"`
	Limit int    `short:"n" default:"20" help:"Maximum number of snapshots listed"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	ID     string `arg:"" help:"Snapshot ID"`
	Output string `short:"o" required:"" help:"Output CSV path"`
	Layout string `enum:"full,minimal" default:"full" help:"Column layout (full, minimal)"`
}
