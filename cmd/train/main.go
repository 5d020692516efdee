// MovieMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

// Command train builds the movie similarity artifact served by cmd/server.
//
// It reads the movie CSV, turns the configured text fields of every movie
// into a bag-of-words vector, computes the N x N cosine similarity matrix and
// saves it as the next version of a named artifact. Older versions beyond
// the retention count are pruned.
//
// Settings come from the same koanf configuration as the server (defaults,
// config.yaml, environment). Flags override them:
//
//	train -input data/movies.csv -output-dir data/models -stop-words english
//
// An empty dataset exits with status 1 and writes nothing.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/tomtom215/moviematch/internal/config"
	"github.com/tomtom215/moviematch/internal/dataset"
	"github.com/tomtom215/moviematch/internal/logging"
	"github.com/tomtom215/moviematch/internal/recommend"
	"github.com/tomtom215/moviematch/internal/recommend/storage"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stderr)
	stop()

	var empty *recommend.EmptyDatasetError
	switch {
	case err == nil:
	case errors.Is(err, flag.ErrHelp):
		os.Exit(2)
	case errors.As(err, &empty):
		logging.Error().Err(err).Msg("Nothing to train on")
		os.Exit(1)
	default:
		logging.Error().Err(err).Msg("Training failed")
		os.Exit(1)
	}
}

// trainFlags mirrors the model config keys a flag may override.
type trainFlags struct {
	configPath  string
	input       string
	outputDir   string
	name        string
	stopWords   string
	fields      string
	maxFeatures int
	keep        int
}

func parseFlags(args []string, stderr io.Writer) (*trainFlags, *flag.FlagSet, error) {
	f := &trainFlags{}
	fs := flag.NewFlagSet("train", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&f.configPath, "config", "", "path to config.yaml (default: CONFIG_PATH or ./config.yaml)")
	fs.StringVar(&f.input, "input", "", "movie CSV to read")
	fs.StringVar(&f.outputDir, "output-dir", "", "artifact directory")
	fs.StringVar(&f.name, "name", "", "artifact name")
	fs.StringVar(&f.stopWords, "stop-words", "", `stop word list: "none" or "english"`)
	fs.StringVar(&f.fields, "fields", "", "comma separated movie fields to vectorize (tags,genre,actor,language)")
	fs.IntVar(&f.maxFeatures, "max-features", 0, "vocabulary cap, 0 for unlimited")
	fs.IntVar(&f.keep, "keep", 0, "artifact versions to keep")
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	if fs.NArg() > 0 {
		return nil, nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	return f, fs, nil
}

// apply copies every flag set on the command line into cfg.
func (f *trainFlags) apply(fs *flag.FlagSet, cfg *config.ModelConfig) {
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "input":
			cfg.DatasetPath = f.input
		case "output-dir":
			cfg.ArtifactDir = f.outputDir
		case "name":
			cfg.ArtifactName = f.name
		case "stop-words":
			cfg.StopWords = f.stopWords
		case "fields":
			cfg.Fields = splitList(f.fields)
		case "max-features":
			cfg.MaxFeatures = f.maxFeatures
		case "keep":
			cfg.KeepVersions = f.keep
		}
	})
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func run(ctx context.Context, args []string, logOut io.Writer) error {
	flags, fs, err := parseFlags(args, logOut)
	if err != nil {
		return err
	}

	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	flags.apply(fs, &cfg.Model)

	logCfg := cfg.Logging.LoggerConfig()
	logCfg.Output = logOut
	logging.Init(logCfg)
	log := logging.WithComponent("train")

	if cfg.Model.KeepVersions < 1 {
		return fmt.Errorf("keep must be at least 1, got %d", cfg.Model.KeepVersions)
	}
	buildCfg, err := cfg.Model.BuildConfig()
	if err != nil {
		return fmt.Errorf("invalid model configuration: %w", err)
	}

	ds, err := dataset.Load(cfg.Model.DatasetPath)
	if err != nil {
		return err
	}
	log.Info().
		Str("source", ds.Source).
		Int("movies", len(ds.Movies)).
		Int("skipped", ds.Skipped).
		Msg("Dataset loaded")

	start := time.Now()
	model, err := recommend.Build(ctx, ds.Movies, buildCfg)
	if err != nil {
		var empty *recommend.EmptyDatasetError
		if errors.As(err, &empty) {
			empty.Source = ds.Source
		}
		return err
	}
	elapsed := time.Since(start)

	store, err := storage.NewStore(cfg.Model.ArtifactDir)
	if err != nil {
		return err
	}
	meta, err := store.Save(ctx, cfg.Model.ArtifactName, model, storage.Metadata{
		BuildDurationMS: elapsed.Milliseconds(),
	})
	if err != nil {
		return fmt.Errorf("save artifact: %w", err)
	}

	removed, err := store.Prune(ctx, cfg.Model.ArtifactName, cfg.Model.KeepVersions)
	if err != nil {
		// The new artifact is already on disk; old versions linger until the next run.
		log.Warn().Err(err).Msg("Failed to prune old artifacts")
	}

	info := model.Info()
	log.Info().
		Str("name", meta.Name).
		Int("version", meta.Version).
		Int("movies", info.MovieCount).
		Int("vocabulary", info.VocabularySize).
		Str("stop_words", info.StopWords).
		Int64("size_bytes", meta.SizeBytes).
		Str("checksum", meta.Checksum).
		Dur("build_time", elapsed).
		Int("pruned", removed).
		Msg("Similarity artifact saved")
	return nil
}
