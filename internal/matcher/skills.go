package matcher

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strings"
)

const (
	// maxPhraseWords bounds the n-gram length used for multi-word skills.
	maxPhraseWords = 4
	tokenTail      = ".-"
)

var (
	// a token starts with a letter or digit and may carry the symbols used by
	// technology names such as c++, c#, node.js or ci-cd
	reToken  = regexp.MustCompile(`[\p{L}\p{N}][\p{L}\p{N}+#.\-]*`)
	reSpaces = regexp.MustCompile(`\s+`)
)

// Vocabulary is the immutable set of recognised skills. It is safe for
// concurrent use once loaded.
type Vocabulary struct {
	terms    map[string]struct{}
	maxWords int
}

// NewVocabulary normalizes terms and builds a vocabulary from them. Blank
// terms are ignored.
func NewVocabulary(terms []string) *Vocabulary {
	v := &Vocabulary{terms: make(map[string]struct{}, len(terms)), maxWords: 1}
	for _, t := range terms {
		t = normalizeCandidate(t)
		if t == "" {
			continue
		}
		v.terms[t] = struct{}{}
		if n := len(strings.Split(t, " ")); n > v.maxWords {
			v.maxWords = n
		}
	}
	if v.maxWords > maxPhraseWords {
		v.maxWords = maxPhraseWords
	}
	return v
}

// LoadVocabulary reads one skill per line. Lines starting with '#' are comments.
func LoadVocabulary(r io.Reader) (*Vocabulary, error) {
	var terms []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		terms = append(terms, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read skill list: %w", err)
	}
	return NewVocabulary(terms), nil
}

func LoadVocabularyFile(path string) (*Vocabulary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open skill list: %w", err)
	}
	defer f.Close()
	return LoadVocabulary(f)
}

func (v *Vocabulary) Contains(term string) bool {
	if v == nil {
		return false
	}
	_, ok := v.terms[normalizeCandidate(term)]
	return ok
}

func (v *Vocabulary) Len() int {
	if v == nil {
		return 0
	}
	return len(v.terms)
}

type token struct {
	text       string
	start, end int
}

// MatchSkills returns the sorted set of vocabulary terms found in text, either
// as single tokens or as contiguous phrases of up to four words. A phrase never
// spans punctuation between its words.
func MatchSkills(text string, vocab *Vocabulary) []string {
	if vocab.Len() == 0 {
		return []string{}
	}

	tokens := tokenize(text)
	found := make(map[string]struct{})

	for i := range tokens {
		var phrase []string
		for j := i; j < len(tokens) && j-i < vocab.maxWords; j++ {
			if j > i && !adjacent(text, tokens[j-1], tokens[j]) {
				break
			}
			phrase = append(phrase, tokens[j].text)
			candidate := normalizeCandidate(strings.Join(phrase, " "))
			if _, ok := vocab.terms[candidate]; ok {
				found[candidate] = struct{}{}
			}
		}
		for _, part := range hyphenParts(tokens[i].text, vocab) {
			found[part] = struct{}{}
		}
	}

	out := make([]string, 0, len(found))
	for s := range found {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func tokenize(text string) []token {
	locs := reToken.FindAllStringIndex(text, -1)
	out := make([]token, 0, len(locs))
	for _, loc := range locs {
		raw := text[loc[0]:loc[1]]
		trimmed := strings.TrimRight(raw, tokenTail)
		if trimmed == "" {
			continue
		}
		out = append(out, token{text: trimmed, start: loc[0], end: loc[0] + len(trimmed)})
	}
	return out
}

// hyphenParts returns the vocabulary terms among the hyphen-separated parts
// of a compound such as "python-based". A compound that is itself a term,
// like "scikit-learn", is left whole.
func hyphenParts(tok string, vocab *Vocabulary) []string {
	if !strings.Contains(tok, "-") || vocab.Contains(tok) {
		return nil
	}
	var out []string
	for _, part := range strings.Split(tok, "-") {
		part = normalizeCandidate(strings.TrimRight(part, tokenTail))
		if _, ok := vocab.terms[part]; ok && part != "" {
			out = append(out, part)
		}
	}
	return out
}

// adjacent reports whether only whitespace separates two tokens.
func adjacent(text string, a, b token) bool {
	return strings.TrimSpace(text[a.end:b.start]) == ""
}

func normalizeCandidate(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return reSpaces.ReplaceAllString(s, " ")
}
