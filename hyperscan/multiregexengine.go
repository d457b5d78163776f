package hyperscan

import (
	"logsift/engine"

	hs "github.com/flier/gohs/hyperscan"
)

// EngineFactory implements the engine.MultiRegexEngineFactory interface.
type EngineFactory struct {
	dbCache DbCache
}

// Engine implements the engine.MultiRegexEngine interface.
type Engine struct {
	// Hyperscan's compiled database of regexes
	db hs.BlockDatabase

	// Pre-allocated memory space that Hyperscan needs during evaluation
	scratch *hs.Scratch
}

// NewMultiRegexEngineFactory creates an engine.MultiRegexEngineFactory backed
// by Hyperscan. The dbCache may be nil to disable compiled-database caching.
func NewMultiRegexEngineFactory(dbCache DbCache) engine.MultiRegexEngineFactory {
	return &EngineFactory{dbCache: dbCache}
}

// NewMultiRegexEngine creates an engine.MultiRegexEngine. Construction is all
// or nothing: if Hyperscan rejects any pattern in the set, an error comes
// back and the caller degrades to another backend. Silently dropping the
// rejected pattern instead would mean it could never be reported as a
// candidate again.
func (f *EngineFactory) NewMultiRegexEngine(mm []engine.MultiRegexEnginePattern) (m engine.MultiRegexEngine, err error) {
	h := &Engine{}

	patterns := []*hs.Pattern{}
	for _, p := range mm {
		hp := hs.NewPattern(p.Expr, 0)
		hp.Id = p.ID

		// SingleMatch makes Hyperscan only return one match per regex, which
		// is all the match units count per entry.
		// Caseless because dictionary matching is case-insensitive.
		// PrefilterMode gives broader regex compatibility, at the cost of
		// possible false positives. Potential matches therefore must be
		// verified with another regex engine.
		hp.Flags = hs.SingleMatch | hs.Caseless | hs.PrefilterMode

		patterns = append(patterns, hp)
	}

	if f.dbCache != nil {
		cacheID := f.dbCache.cacheID(patterns)
		h.db = f.dbCache.loadFromCache(cacheID)
		if h.db == nil {
			h.db, err = hs.NewBlockDatabase(patterns...)
			if err != nil {
				return
			}
			f.dbCache.saveToCache(cacheID, h.db)
		}
	} else {
		h.db, err = hs.NewBlockDatabase(patterns...)
		if err != nil {
			return
		}
	}

	h.scratch, err = hs.NewScratch(h.db)
	if err != nil {
		h.db.Close()
		return
	}

	m = h
	return
}

// Scan scans the given input for all expressions that this engine was
// initialized with.
func (h *Engine) Scan(input []byte) (matches []engine.MultiRegexEngineMatch, err error) {
	matches = []engine.MultiRegexEngineMatch{}
	handler := func(id uint, from, to uint64, flags uint, context interface{}) error {
		m := engine.MultiRegexEngineMatch{
			ID:     int(id),
			EndPos: int(to),
		}
		matches = append(matches, m)
		return nil
	}

	err = h.db.Scan(input, h.scratch, handler, nil)
	return
}

// Close frees the Hyperscan database and scratch space this engine held.
func (h *Engine) Close() {
	if h.scratch != nil {
		h.scratch.Free()
		h.scratch = nil
	}
	if h.db != nil {
		h.db.Close()
		h.db = nil
	}
}
