package service

import (
	"fmt"
	"strings"

	"github.com/fadilmartias/resume-matcher/internal/matcher"
	"github.com/tidwall/gjson"
)

func entityPrompt(text string) string {
	return fmt.Sprintf(`Tag the named entities in the resume text below.
Use the labels PERSON, ORG, GPE, DATE and OTHER.
List entities in the order they first appear in the text and copy their text exactly.
Return ONLY JSON with this schema:
{"entities": [{"text": "<span>", "label": "<LABEL>"}]}

Text:
%s`, text)
}

// parseEntities reads {"entities": [...]} or a bare array, tolerating
// markdown code fences around the JSON.
func parseEntities(raw string) ([]matcher.Entity, error) {
	clean := cleanJSON(raw)
	if !gjson.Valid(clean) {
		return nil, fmt.Errorf("tagger returned invalid JSON")
	}

	list := gjson.Parse(clean)
	if !list.IsArray() {
		list = list.Get("entities")
	}
	if !list.IsArray() {
		return nil, fmt.Errorf("tagger response has no entities array")
	}

	entities := make([]matcher.Entity, 0)
	list.ForEach(func(_, v gjson.Result) bool {
		text := strings.TrimSpace(v.Get("text").String())
		if text != "" {
			entities = append(entities, matcher.Entity{
				Text:  text,
				Label: strings.ToUpper(strings.TrimSpace(v.Get("label").String())),
			})
		}
		return true
	})
	return entities, nil
}

func cleanJSON(input string) string {
	clean := strings.TrimSpace(input)
	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimSuffix(strings.TrimSpace(clean), "```")
	return strings.TrimSpace(clean)
}
