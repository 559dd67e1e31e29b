package tokenizer

import (
	"regexp"
	"unicode/utf8"
)

// wordRunRegex matches runs of characters that can form dictionary words: Han
// ideographs, letters, digits and the joiners used inside tokens like "C++" or "3.5%".
var wordRunRegex = regexp.MustCompile(`[\p{Han}\p{L}\p{N}+#&._%\-]+`)

// spaceRunRegex matches runs of whitespace, which are kept whole.
var spaceRunRegex = regexp.MustCompile(`\s+`)

// Block is a piece of text. Word blocks are handed to the segmenter; the rest
// (whitespace runs and single punctuation characters) pass through unchanged.
type Block struct {
	Text string
	Word bool
}

// Split cuts text into word blocks and pass-through blocks, in order.
// Concatenating the Text of every block gives back the input.
func Split(text string) []Block {
	blocks := make([]Block, 0)

	last := 0
	for _, loc := range wordRunRegex.FindAllStringIndex(text, -1) {
		if loc[0] > last {
			blocks = appendSkipped(blocks, text[last:loc[0]])
		}
		blocks = append(blocks, Block{Text: text[loc[0]:loc[1]], Word: true})
		last = loc[1]
	}
	if last < len(text) {
		blocks = appendSkipped(blocks, text[last:])
	}
	return blocks
}

// appendSkipped adds a non-word stretch: whitespace runs as one block, every other
// character on its own.
func appendSkipped(blocks []Block, text string) []Block {
	last := 0
	for _, loc := range spaceRunRegex.FindAllStringIndex(text, -1) {
		blocks = appendChars(blocks, text[last:loc[0]])
		blocks = append(blocks, Block{Text: text[loc[0]:loc[1]]})
		last = loc[1]
	}
	return appendChars(blocks, text[last:])
}

func appendChars(blocks []Block, text string) []Block {
	for len(text) > 0 {
		_, size := utf8.DecodeRuneInString(text)
		blocks = append(blocks, Block{Text: text[:size]})
		text = text[size:]
	}
	return blocks
}
