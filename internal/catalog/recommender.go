package catalog

import (
	"github.com/goccy/go-json"

	"github.com/MrSnakeDoc/statuary/internal/cache"
	"github.com/MrSnakeDoc/statuary/internal/domain"
)

const recoKeyPrefix = "reco:"

// cachedReco is the cached form of one ranked entry.
type cachedReco struct {
	ID    string `json:"id"`
	Score int    `json:"score"`
}

// Recommender memoises scorer results per statue. The catalog is
// immutable, so entries never go stale.
type Recommender struct {
	catalog *Catalog
	cache   cache.Cache
}

// NewRecommender creates a recommender over cat, caching into c.
func NewRecommender(cat *Catalog, c cache.Cache) *Recommender {
	return &Recommender{catalog: cat, cache: c}
}

// For returns the ranked recommendations for the statue id.
func (r *Recommender) For(id string) ([]*domain.Recommendation, error) {
	current, err := r.catalog.Lookup(id)
	if err != nil {
		return nil, err
	}

	key := recoKeyPrefix + current.ID
	if raw, ok := r.cache.Get(key); ok {
		if recos, ok := r.decode(raw); ok {
			return recos, nil
		}
	}

	ranked := domain.RankRecommendations(current, r.catalog.All())
	r.store(key, ranked)
	return ranked, nil
}

func (r *Recommender) decode(raw []byte) ([]*domain.Recommendation, bool) {
	var entries []cachedReco
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, false
	}

	out := make([]*domain.Recommendation, 0, len(entries))
	for _, e := range entries {
		s, ok := r.catalog.Get(e.ID)
		if !ok {
			return nil, false
		}
		out = append(out, &domain.Recommendation{Statue: s, Score: e.Score})
	}
	return out, true
}

func (r *Recommender) store(key string, ranked []*domain.Recommendation) {
	entries := make([]cachedReco, 0, len(ranked))
	for _, rec := range ranked {
		entries = append(entries, cachedReco{ID: rec.Statue.ID, Score: rec.Score})
	}
	if data, err := json.Marshal(entries); err == nil {
		r.cache.Set(key, data)
	}
}
