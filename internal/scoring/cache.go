package scoring

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"io"
	"sort"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/jonathan/assessment-engine/internal/types"
)

const defaultCacheSize = 1024

// CachedScorer memoizes Score by a hash of (taxonomy, answers). Scoring is pure,
// so a hit is indistinguishable from recomputation. Rejections are not cached.
type CachedScorer struct {
	cache *lru.Cache[string, *types.ScoreResult]
}

// NewCachedScorer creates a scorer holding up to size results.
// A non-positive size falls back to the default.
func NewCachedScorer(size int) *CachedScorer {
	if size <= 0 {
		size = defaultCacheSize
	}
	cache, err := lru.New[string, *types.ScoreResult](size)
	if err != nil {
		// lru.New only errors on non-positive size which we guard above.
		panic(err)
	}
	return &CachedScorer{cache: cache}
}

// Score returns a cached result when the same answer set was scored before.
// Callers get their own copy and may modify it.
func (s *CachedScorer) Score(answers []types.Answer, cfg *types.TestConfig) (*types.ScoreResult, error) {
	if cfg == nil {
		return Score(answers, cfg)
	}

	key := cacheKey(cfg.Taxonomy, answers)
	if cached, ok := s.cache.Get(key); ok {
		return cached.Clone(), nil
	}

	result, err := Score(answers, cfg)
	if err != nil {
		return nil, err
	}
	s.cache.Add(key, result.Clone())
	return result, nil
}

// Len returns the number of cached results.
func (s *CachedScorer) Len() int {
	return s.cache.Len()
}

// cacheKey hashes answers in question order so that submission order does
// not matter. Duplicates are kept, so a rejected set never collides with a valid one.
// Every field is length-prefixed; a value can never spell out further answers.
func cacheKey(taxonomy types.Taxonomy, answers []types.Answer) string {
	sorted := make([]types.Answer, len(answers))
	copy(sorted, answers)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].QuestionID != sorted[j].QuestionID {
			return sorted[i].QuestionID < sorted[j].QuestionID
		}
		return sorted[i].Value < sorted[j].Value
	})

	h := sha256.New()
	writeField(h, []byte(taxonomy))
	_ = binary.Write(h, binary.BigEndian, uint64(len(sorted)))
	for _, a := range sorted {
		_ = binary.Write(h, binary.BigEndian, int64(a.QuestionID))
		writeField(h, []byte(a.Value))
	}
	return hex.EncodeToString(h.Sum(nil))
}

func writeField(w io.Writer, b []byte) {
	_ = binary.Write(w, binary.BigEndian, uint64(len(b)))
	_, _ = w.Write(b)
}
