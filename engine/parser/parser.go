// Package parser converts command strings into Commands.
// Fixed synonym tables, no NLP.
package parser

import (
	"strings"

	"github.com/nathoo/adventcore/types"
)

// Defaults used when the game's vocabulary does not define the word.
var defaultVerbs = map[string]string{
	"l":   "look",
	"x":   "examine",
	"i":   "inventory",
	"inv": "inventory",
	"get": "take",
}

var defaultDirections = map[string]string{
	"n": "north",
	"s": "south",
	"e": "east",
	"w": "west",
	"u": "up",
	"d": "down",
}

var articles = map[string]bool{
	"the": true, "a": true, "an": true,
}

// Parser resolves raw input against a game's vocabulary.
type Parser struct {
	vocab types.Vocabulary
}

// New creates a parser for the given vocabulary.
func New(vocab types.Vocabulary) *Parser {
	return &Parser{vocab: vocab}
}

// Parse converts raw input into a Command. It returns false for empty input.
func (p *Parser) Parse(raw string) (types.Command, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return types.Command{}, false
	}

	words := strings.Fields(strings.ToLower(raw))

	// Bare direction: "n", "north" → go north.
	if len(words) == 1 {
		if dir, ok := p.direction(words[0]); ok {
			return types.Command{
				Raw:          raw,
				Verb:         "go",
				Noun:         dir,
				OriginalVerb: words[0],
				OriginalNoun: words[0],
			}, true
		}
		return types.Command{
			Raw:          raw,
			Verb:         p.verb(words[0]),
			OriginalVerb: words[0],
		}, true
	}

	words = expandMultiWordVerbs(words)
	originalVerb := words[0]
	verb := p.verb(originalVerb)

	rest := stripArticles(words[1:])
	originalNoun := strings.Join(rest, " ")
	if len(rest) == 0 {
		return types.Command{Raw: raw, Verb: verb, OriginalVerb: originalVerb}, true
	}

	if verb == "go" {
		if dir, ok := p.direction(rest[0]); ok {
			return types.Command{
				Raw:          raw,
				Verb:         "go",
				Noun:         dir,
				OriginalVerb: originalVerb,
				OriginalNoun: originalNoun,
			}, true
		}
	}

	return types.Command{
		Raw:          raw,
		Verb:         verb,
		Noun:         p.noun(originalNoun),
		OriginalVerb: originalVerb,
		OriginalNoun: originalNoun,
	}, true
}

func (p *Parser) verb(word string) string {
	if v, ok := p.vocab.VerbSynonyms[word]; ok {
		return v
	}
	if v, ok := defaultVerbs[word]; ok {
		return v
	}
	return word
}

func (p *Parser) direction(word string) (string, bool) {
	if _, ok := types.ParseDirection(word); ok {
		return word, true
	}
	if d, ok := p.vocab.DirectionSynonyms[word]; ok {
		return d, true
	}
	if d, ok := defaultDirections[word]; ok {
		return d, true
	}
	return "", false
}

// noun resolves a noun phrase. "X with Y" resolves each side separately.
func (p *Parser) noun(phrase string) string {
	if n, ok := p.vocab.NounSynonyms[phrase]; ok {
		return n
	}
	if left, right, ok := strings.Cut(phrase, " with "); ok {
		return p.single(strings.TrimSpace(left)) + " with " + p.single(strings.TrimSpace(right))
	}
	return phrase
}

func (p *Parser) single(word string) string {
	if n, ok := p.vocab.NounSynonyms[word]; ok {
		return n
	}
	return word
}

// expandMultiWordVerbs handles "look at", "pick up" and "put down".
func expandMultiWordVerbs(words []string) []string {
	if len(words) < 2 {
		return words
	}

	switch words[0] {
	case "look":
		if words[1] == "at" || words[1] == "in" || words[1] == "under" {
			return append([]string{"examine"}, words[2:]...)
		}
	case "pick":
		if words[1] == "up" {
			return append([]string{"take"}, words[2:]...)
		}
	case "put":
		if words[1] == "down" {
			return append([]string{"drop"}, words[2:]...)
		}
	}

	return words
}

// stripArticles removes "the", "a" and "an" from the word list.
func stripArticles(words []string) []string {
	result := make([]string, 0, len(words))
	for _, w := range words {
		if !articles[w] {
			result = append(result, w)
		}
	}
	return result
}
