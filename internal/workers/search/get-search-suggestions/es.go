// internal/workers/search/get-search-suggestions/es.go
package getsearchsuggestions

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// TitleSuggester resolves free text into matching listing titles.
type TitleSuggester interface {
	Suggest(ctx context.Context, text string, max int) ([]string, error)
}

// esSuggester is the Elasticsearch-backed suggester used in production;
// the Postgres title query serves as fallback when it fails.
type esSuggester struct {
	client *elasticsearch.Client
	index  string
}

func NewESSuggester(client *elasticsearch.Client, index string) TitleSuggester {
	return &esSuggester{client: client, index: index}
}

func (s *esSuggester) Suggest(ctx context.Context, text string, max int) ([]string, error) {
	queryBody := map[string]interface{}{
		"query": map[string]interface{}{
			"match_phrase_prefix": map[string]interface{}{
				"title": map[string]interface{}{
					"query": text,
				},
			},
		},
		"_source": []string{"title"},
	}

	body, _ := json.Marshal(queryBody)

	req := esapi.SearchRequest{
		Index: []string{s.index},
		Body:  strings.NewReader(string(body)),
		Size:  &max,
	}

	res, err := req.Do(ctx, s.client)
	if err != nil {
		return nil, fmt.Errorf("suggestion search failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("suggestion search error: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source struct {
					Title string `json:"title"`
				} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode suggestion response: %w", err)
	}

	titles := make([]string, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		if hit.Source.Title != "" {
			titles = append(titles, hit.Source.Title)
		}
	}
	return titles, nil
}
