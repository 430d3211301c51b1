package tools

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed fixtures/datavault.yaml
var defaultFixtures []byte

const datavaultService = "VectorSearchService"

type fixtureDocument struct {
	ID       string         `yaml:"id"`
	Score    float64        `yaml:"score"`
	Keywords []string       `yaml:"keywords"`
	Metadata map[string]any `yaml:"metadata"`
}

type fixtureFile struct {
	Documents []fixtureDocument `yaml:"documents"`
}

// FixtureVectorSearch is a VectorSearchService backed by a fixed document set.
// A document is a hit when any of its keywords occurs in the query text; hits
// come back in descending score order.
type FixtureVectorSearch struct {
	docs []fixtureDocument
}

var _ VectorSearchService = (*FixtureVectorSearch)(nil)

// DefaultFixtures loads the fixture documents compiled into the binary.
func DefaultFixtures() (*FixtureVectorSearch, error) {
	return LoadFixtures(bytes.NewReader(defaultFixtures))
}

// LoadFixtureFile loads fixture documents from a YAML file on disk.
func LoadFixtureFile(path string) (*FixtureVectorSearch, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fixtures: %w", err)
	}
	defer f.Close()
	return LoadFixtures(f)
}

// LoadFixtures parses fixture documents from YAML.
func LoadFixtures(r io.Reader) (*FixtureVectorSearch, error) {
	var file fixtureFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	seen := make(map[string]bool, len(file.Documents))
	for i, doc := range file.Documents {
		if doc.ID == "" {
			return nil, fmt.Errorf("fixture %d: id is required", i)
		}
		if seen[doc.ID] {
			return nil, fmt.Errorf("fixture %q: duplicate id", doc.ID)
		}
		seen[doc.ID] = true
		if doc.Score < 0 || doc.Score > 1 {
			return nil, fmt.Errorf("fixture %q: score %v outside [0,1]", doc.ID, doc.Score)
		}
		if len(doc.Keywords) == 0 {
			return nil, fmt.Errorf("fixture %q: at least one keyword is required", doc.ID)
		}
		for j, kw := range doc.Keywords {
			file.Documents[i].Keywords[j] = strings.ToLower(strings.TrimSpace(kw))
		}
	}
	docs := file.Documents
	sort.SliceStable(docs, func(a, b int) bool { return docs[a].Score > docs[b].Score })
	return &FixtureVectorSearch{docs: docs}, nil
}

// Len returns the number of fixture documents.
func (s *FixtureVectorSearch) Len() int { return len(s.docs) }

func (s *FixtureVectorSearch) Query(ctx context.Context, text string, topK int) ([]Match, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	needle := strings.ToLower(strings.TrimSpace(text))
	if needle == "" {
		return nil, NewCollaboratorError(datavaultService, KindInvalidQuery, "query must not be empty", nil)
	}
	if topK <= 0 {
		return nil, NewCollaboratorError(datavaultService, KindInvalidQuery, fmt.Sprintf("top_k must be positive, got %d", topK), nil)
	}

	matches := make([]Match, 0, topK)
	for _, doc := range s.docs {
		if len(matches) == topK {
			break
		}
		if !doc.matches(needle) {
			continue
		}
		matches = append(matches, Match{ID: doc.ID, Score: doc.Score, Metadata: cloneMetadata(doc.Metadata)})
	}
	return matches, nil
}

func (d fixtureDocument) matches(query string) bool {
	for _, kw := range d.Keywords {
		if kw != "" && strings.Contains(query, kw) {
			return true
		}
	}
	return false
}

func cloneMetadata(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
