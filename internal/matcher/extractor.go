package matcher

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

const LabelPerson = "PERSON"

var (
	reEmail = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	rePhone = regexp.MustCompile(`\+?\d[\d -]{8,14}\d`)
)

// DefaultNameDenylist holds technology names that entity taggers commonly
// mislabel as people on resumes.
var DefaultNameDenylist = []string{
	"python", "java", "sql", "html", "css", "javascript", "nodejs", "c++",
}

// Entity is a tagged span of text.
type Entity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// EntityTagger labels named entities in text.
type EntityTagger interface {
	Tag(ctx context.Context, text string) ([]Entity, error)
}

// Fields are the structured values pulled out of resume text. Nil pointers
// mean the value was not found.
type Fields struct {
	Name   *string  `json:"name"`
	Email  *string  `json:"email"`
	Phone  *string  `json:"phone"`
	Skills []string `json:"skills"`
}

type Extractor struct {
	tagger   EntityTagger
	vocab    *Vocabulary
	denylist map[string]struct{}
}

// NewExtractor builds an Extractor. A nil or empty denylist falls back to
// DefaultNameDenylist.
func NewExtractor(tagger EntityTagger, vocab *Vocabulary, denylist []string) *Extractor {
	if len(denylist) == 0 {
		denylist = DefaultNameDenylist
	}
	deny := make(map[string]struct{}, len(denylist))
	for _, d := range denylist {
		d = strings.ToLower(strings.TrimSpace(d))
		if d != "" {
			deny[d] = struct{}{}
		}
	}
	return &Extractor{tagger: tagger, vocab: vocab, denylist: deny}
}

// Extract pulls name, email, phone and skills from text. Blank text yields an
// empty result without consulting the tagger.
func (e *Extractor) Extract(ctx context.Context, text string) (Fields, error) {
	fields := Fields{Skills: []string{}}
	if strings.TrimSpace(text) == "" {
		return fields, nil
	}

	if m := reEmail.FindString(text); m != "" {
		fields.Email = &m
	}
	if m := rePhone.FindString(text); m != "" {
		fields.Phone = &m
	}

	name, err := e.personName(ctx, text)
	if err != nil {
		return Fields{}, err
	}
	fields.Name = name
	fields.Skills = MatchSkills(text, e.vocab)

	return fields, nil
}

func (e *Extractor) personName(ctx context.Context, text string) (*string, error) {
	if e.tagger == nil {
		return nil, nil
	}
	entities, err := e.tagger.Tag(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTaggerUnavailable, err)
	}
	for _, ent := range entities {
		if !strings.EqualFold(ent.Label, LabelPerson) {
			continue
		}
		name := strings.TrimSpace(ent.Text)
		if name == "" {
			continue
		}
		if _, denied := e.denylist[strings.ToLower(name)]; denied {
			continue
		}
		return &name, nil
	}
	return nil, nil
}
