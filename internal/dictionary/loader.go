package dictionary

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/gcbaptista/go-word-segmenter/internal/errors"
)

// Format identifies a dictionary file layout.
type Format string

const (
	// FormatYAML is a YAML mapping of token to score.
	FormatYAML Format = "yaml"
	// FormatText is the jieba dict.txt layout: one "token [score [tag]]" per line.
	FormatText Format = "text"
)

// defaultTextScore is used for text lines that carry no score.
const defaultTextScore = 1

// Normalize applies NFKC normalisation, folding full-width and compatibility
// characters to their canonical forms.
func Normalize(s string) string {
	return norm.NFKC.String(s)
}

// NormalizeEntries normalises every token. Tokens that collapse to the same form keep
// the larger score.
func NormalizeEntries(entries map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(entries))
	for token, score := range entries {
		normalized := Normalize(token)
		if existing, ok := out[normalized]; !ok || score > existing {
			out[normalized] = score
		}
	}
	return out
}

// Parse reads entries in the given format.
func Parse(format Format, r io.Reader) (map[string]float64, error) {
	switch format {
	case FormatYAML:
		return ParseYAML(r)
	case FormatText, "":
		return ParseText(r)
	default:
		return nil, errors.NewValidationError("format", fmt.Sprintf("unsupported dictionary format '%s' (must be 'yaml' or 'text')", format))
	}
}

// ParseYAML reads a YAML mapping of token to score.
func ParseYAML(r io.Reader) (map[string]float64, error) {
	entries := make(map[string]float64)
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&entries); err != nil {
		if err == io.EOF {
			return entries, nil
		}
		return nil, fmt.Errorf("failed to decode YAML dictionary: %w", err)
	}
	return entries, nil
}

// ParseText reads jieba-style dictionary lines. Blank lines and lines starting with
// '#' are skipped.
func ParseText(r io.Reader) (map[string]float64, error) {
	entries := make(map[string]float64)
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		score := float64(defaultTextScore)
		if len(fields) > 1 {
			parsed, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				return nil, errors.NewValidationError("score", fmt.Sprintf("line %d: invalid score '%s'", lineNo, fields[1]))
			}
			score = parsed
		}
		entries[fields[0]] = score
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read text dictionary: %w", err)
	}
	return entries, nil
}

// Load parses entries and builds a dictionary from them.
func Load(format Format, r io.Reader) (*Dictionary, error) {
	entries, err := Parse(format, r)
	if err != nil {
		return nil, err
	}
	return New(entries)
}
