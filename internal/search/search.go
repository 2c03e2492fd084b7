package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/Skotchmaster/ecommerce_api/internal/config"
	"github.com/Skotchmaster/ecommerce_api/internal/logging"
	"github.com/Skotchmaster/ecommerce_api/internal/models"
)

func NewClient(cfg *config.Config) (*elasticsearch.Client, error) {
	esCfg := elasticsearch.Config{
		Addresses: []string{cfg.ESURL},
		Username:  cfg.ESUser,
		Password:  cfg.ESPassword,
	}

	client, err := elasticsearch.NewClient(esCfg)
	if err != nil {
		return nil, fmt.Errorf("es client: %w", err)
	}

	res, err := client.Info()
	if err != nil {
		return nil, fmt.Errorf("es info: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("es info: %s: %s", res.Status(), body)
	}

	return client, nil
}

// Indexer mirrors catalog writes into the search index. A nil Indexer
// is a no-op; indexing is best-effort and never fails the request.
type Indexer struct {
	ES        *elasticsearch.Client
	IndexName string
}

func NewIndexer(es *elasticsearch.Client, index string) *Indexer {
	if es == nil {
		return nil
	}
	return &Indexer{ES: es, IndexName: index}
}

func (ix *Indexer) Index(ctx context.Context, p *models.Product) {
	if ix == nil {
		return
	}
	l := logging.FromContext(ctx)

	data, err := json.Marshal(p)
	if err != nil {
		l.Error("es index error", "error", err)
		return
	}
	res, err := ix.ES.Index(
		ix.IndexName,
		bytes.NewReader(data),
		ix.ES.Index.WithDocumentID(strconv.Itoa(p.ID)),
		ix.ES.Index.WithContext(ctx),
	)
	if err != nil {
		l.Error("es index error", "error", err)
		return
	}
	defer res.Body.Close()
	if res.IsError() {
		l.Error("es index error", "status", res.Status())
	}
}

func (ix *Indexer) Delete(ctx context.Context, id int) {
	if ix == nil {
		return
	}
	l := logging.FromContext(ctx)

	res, err := ix.ES.Delete(ix.IndexName, strconv.Itoa(id), ix.ES.Delete.WithContext(ctx))
	if err != nil {
		l.Error("es delete error", "error", err)
		return
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != 404 {
		l.Error("es delete error", "status", res.Status())
	}
}

func Search(ctx context.Context, es *elasticsearch.Client, index, query string, from, size int) (int64, []models.Product, error) {
	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"name^2", "description"},
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, fmt.Errorf("search encode: %w", err)
	}

	res, err := es.Search(
		es.Search.WithContext(ctx),
		es.Search.WithIndex(index),
		es.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, fmt.Errorf("search: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source models.Product `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, err
	}

	prods := make([]models.Product, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		prods[i] = hit.Source
	}
	return r.Hits.Total.Value, prods, nil
}
