// Package textproc implements the text preprocessing artifact: it cleans SMS
// messages and counts vocabulary terms, optionally appending the message length.
package textproc

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/doda2025-team8/model-service/internal/backend"
	"github.com/doda2025-team8/model-service/internal/mapsafe"
	"go.yaml.in/yaml/v3"
)

// Kind is the artifact kind handled by this package.
const Kind = "text-vectorizer"

// document is the serialized form of a Vectorizer.
type document struct {
	Kind       string         `yaml:"kind"`
	Vocabulary []string       `yaml:"vocabulary"`
	Stopwords  []string       `yaml:"stopwords"`
	Options    map[string]any `yaml:"options"`
}

// Vectorizer implements backend.Preprocessor.
type Vectorizer struct {
	index            map[string]int
	stopwords        map[string]struct{}
	lowercase        bool
	stripPunctuation bool
	messageLength    bool
}

// Decode builds a Vectorizer from its serialized document.
func Decode(data []byte) (any, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", backend.ErrInvalidArtifact, err)
	}

	if doc.Kind != Kind {
		return nil, fmt.Errorf("%w: expected kind %s, got %q", backend.ErrInvalidArtifact, Kind, doc.Kind)
	}

	if len(doc.Vocabulary) == 0 {
		return nil, fmt.Errorf("%w: empty vocabulary", backend.ErrInvalidArtifact)
	}

	v := &Vectorizer{
		index:            make(map[string]int, len(doc.Vocabulary)),
		stopwords:        make(map[string]struct{}, len(doc.Stopwords)),
		lowercase:        mapsafe.Get(doc.Options, "lowercase", true),
		stripPunctuation: mapsafe.Get(doc.Options, "strip_punctuation", true),
		messageLength:    mapsafe.Get(doc.Options, "message_length", false),
	}

	for i, term := range doc.Vocabulary {
		if _, dup := v.index[term]; dup {
			return nil, fmt.Errorf("%w: duplicate vocabulary term %q", backend.ErrInvalidArtifact, term)
		}
		v.index[term] = i
	}

	for _, w := range doc.Stopwords {
		if v.lowercase {
			w = strings.ToLower(w)
		}
		v.stopwords[w] = struct{}{}
	}

	return v, nil
}

// Register adds the vectorizer decoder to r.
func Register(r *backend.Registry) error {
	return r.Register(Kind, Decode)
}

// Features returns the length of the produced vectors.
func (v *Vectorizer) Features() int {
	if v.messageLength {
		return len(v.index) + 1
	}

	return len(v.index)
}

// Describe returns the artifact display name.
func (v *Vectorizer) Describe() string {
	return fmt.Sprintf("%s (%d terms)", Kind, len(v.index))
}

// Transform implements backend.Preprocessor.
func (v *Vectorizer) Transform(texts []string) ([]backend.Vector, error) {
	out := make([]backend.Vector, 0, len(texts))

	for _, text := range texts {
		vec := backend.Vector{}

		for _, token := range v.tokenize(text) {
			if i, ok := v.index[token]; ok {
				vec[i]++
			}
		}

		if v.messageLength {
			vec[len(v.index)] = float64(len([]rune(text)))
		}

		out = append(out, vec)
	}

	return out, nil
}

func (v *Vectorizer) tokenize(text string) []string {
	if v.stripPunctuation {
		text = strings.Map(func(r rune) rune {
			if unicode.IsPunct(r) || unicode.IsSymbol(r) {
				return -1
			}
			return r
		}, text)
	}

	if v.lowercase {
		text = strings.ToLower(text)
	}

	fields := strings.Fields(text)
	tokens := fields[:0]
	for _, f := range fields {
		if _, stop := v.stopwords[f]; stop {
			continue
		}
		tokens = append(tokens, f)
	}

	return tokens
}
