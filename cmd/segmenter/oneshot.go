package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gcbaptista/go-word-segmenter/config"
	"github.com/gcbaptista/go-word-segmenter/internal/dictionary"
	"github.com/gcbaptista/go-word-segmenter/internal/engine"
	"github.com/gcbaptista/go-word-segmenter/services"
)

type oneShotOptions struct {
	Text       string
	DictFile   string
	Mode       string
	Rank       bool
	MaxResults int
}

// formatForFile picks the dictionary format from the file extension.
func formatForFile(path string) dictionary.Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return dictionary.FormatYAML
	default:
		return dictionary.FormatText
	}
}

// runOneShot segments a single text against a dictionary file and prints the result.
func runOneShot(w io.Writer, opts oneShotOptions) error {
	if opts.DictFile == "" {
		return fmt.Errorf("--dict is required with --text")
	}

	f, err := os.Open(opts.DictFile)
	if err != nil {
		return fmt.Errorf("failed to open dictionary: %w", err)
	}
	defer f.Close()

	entries, err := dictionary.Parse(formatForFile(opts.DictFile), f)
	if err != nil {
		return fmt.Errorf("failed to read dictionary %s: %w", opts.DictFile, err)
	}

	// Zero prints every cut, up to the hard cap.
	maxResults := opts.MaxResults
	if maxResults == 0 {
		maxResults = config.HardMaxResults
	}
	settings := config.DictionarySettings{
		Name:       strings.TrimSuffix(filepath.Base(opts.DictFile), filepath.Ext(opts.DictFile)),
		MaxResults: maxResults,
	}
	instance, err := engine.NewDictionaryInstance(settings, entries)
	if err != nil {
		return err
	}

	result, err := instance.Segment(context.Background(), services.SegmentRequest{
		Text: opts.Text,
		Mode: services.SegmentMode(opts.Mode),
		Rank: opts.Rank,
	})
	if err != nil {
		return err
	}

	return printResult(w, result)
}

func printResult(w io.Writer, result services.SegmentResult) error {
	if result.Mode == services.ModeFull {
		_, err := fmt.Fprintln(w, strings.Join(result.Words, " "))
		return err
	}

	for _, seg := range result.Segmentations {
		line := strings.Join(seg.Tokens, "/")
		if seg.Score != nil {
			line = fmt.Sprintf("%s\t%.4f", line, *seg.Score)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if result.Truncated {
		_, err := fmt.Fprintf(w, "(stopped after %d results)\n", result.Total)
		return err
	}
	return nil
}
