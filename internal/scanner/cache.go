package scanner

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/importscout/importscout/pkg/importmodel"
)

// cachedResult is one file's extraction output, keyed by content digest so
// renames and re-reads of identical content never recompute.
type cachedResult struct {
	records []importmodel.Record
	diags   []importmodel.Diagnostic
}

// resultCache is an LRU of extraction results keyed by language + content
// hash.
type resultCache struct {
	lru *lru.Cache[string, cachedResult]
}

func newResultCache(size int) (*resultCache, error) {
	cache, err := lru.New[string, cachedResult](size)
	if err != nil {
		return nil, fmt.Errorf("create result cache: %w", err)
	}

	return &resultCache{lru: cache}, nil
}

func (c *resultCache) get(key string) (cachedResult, bool) {
	return c.lru.Get(key)
}

func (c *resultCache) put(key string, result cachedResult) {
	c.lru.Add(key, result)
}

// cacheKey digests the language ID and file contents.
func cacheKey(lang string, contents []byte) string {
	h := sha256.New()
	h.Write([]byte(lang))
	h.Write([]byte{0})
	h.Write(contents)

	return hex.EncodeToString(h.Sum(nil))
}
