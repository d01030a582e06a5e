package enrichment

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	apperrors "github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/pkg/errors"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/contract"
)

// Cache 지문(fingerprint)을 키로 마지막 보강에서 얻은 SKU별 시장 데이터를 보관합니다.
// 항목 자체는 보관하지 않으므로 적중 시에도 결과는 현재 입력 항목의 복사본입니다.
// 구현체는 저장/반환 시 복사본을 사용해야 하며 여러 고루틴에서 안전해야 합니다.
type Cache interface {
	Get(fingerprint string) (map[string]*contract.MarketData, bool)
	Add(fingerprint string, marketData map[string]*contract.MarketData)
}

type cacheEntry struct {
	marketData map[string]*contract.MarketData
	storedAt   time.Time
}

// LRUCache 크기가 제한된 LRU Cache 구현체입니다. ttl이 지난 항목은 조회 시 제거됩니다.
type LRUCache struct {
	entries *lru.Cache[string, cacheEntry]
	ttl     time.Duration
	now     func() time.Time
}

// NewLRUCache size개의 지문을 보관하는 캐시를 생성합니다. ttl이 0 이하이면 만료되지 않습니다.
func NewLRUCache(size int, ttl time.Duration) (*LRUCache, error) {
	entries, err := lru.New[string, cacheEntry](size)
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.InvalidInput, "보강 캐시를 생성할 수 없습니다 (size=%d)", size)
	}
	return &LRUCache{entries: entries, ttl: ttl, now: time.Now}, nil
}

func (c *LRUCache) Get(fingerprint string) (map[string]*contract.MarketData, bool) {
	entry, ok := c.entries.Get(fingerprint)
	if !ok {
		return nil, false
	}
	if c.ttl > 0 && c.now().Sub(entry.storedAt) >= c.ttl {
		c.entries.Remove(fingerprint)
		return nil, false
	}
	return cloneMarketData(entry.marketData), true
}

func (c *LRUCache) Add(fingerprint string, marketData map[string]*contract.MarketData) {
	c.entries.Add(fingerprint, cacheEntry{marketData: cloneMarketData(marketData), storedAt: c.now()})
}

// Len 보관 중인 지문 수를 반환합니다. 만료되었지만 아직 조회되지 않은 항목도 포함됩니다.
func (c *LRUCache) Len() int {
	return c.entries.Len()
}

// Purge 모든 항목을 제거합니다.
func (c *LRUCache) Purge() {
	c.entries.Purge()
}

func cloneMarketData(src map[string]*contract.MarketData) map[string]*contract.MarketData {
	dst := make(map[string]*contract.MarketData, len(src))
	for sku, md := range src {
		dst[sku] = md.Clone()
	}
	return dst
}
