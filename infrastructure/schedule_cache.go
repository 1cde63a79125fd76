package infrastructure

import (
	"sync"
	"time"

	"github.com/Vaflel/schedule-parser/domain"
	"github.com/zeebo/xxh3"
)

// DefaultCacheTTL время жизни записи кэша по умолчанию
const DefaultCacheTTL = 30 * time.Minute

// cacheEntry разобранное расписание и время истечения записи
type cacheEntry struct {
	schedule *domain.ParsedSchedule
	expiry   time.Time
}

// ScheduleCache хранит разобранные расписания в памяти по хэшу содержимого файла.
// Доступ синхронизирован мьютексом, записи живут ttl.
type ScheduleCache struct {
	mu   sync.Mutex
	ttl  time.Duration
	now  func() time.Time
	data map[xxh3.Uint128]cacheEntry
}

// NewScheduleCache создаёт кэш с заданным временем жизни записей
func NewScheduleCache(ttl time.Duration) *ScheduleCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &ScheduleCache{
		ttl:  ttl,
		now:  time.Now,
		data: make(map[xxh3.Uint128]cacheEntry),
	}
}

// Get возвращает расписание для содержимого файла, если запись есть и не истекла.
// Истёкшая запись удаляется.
func (c *ScheduleCache) Get(data []byte) (*domain.ParsedSchedule, bool) {
	key := xxh3.Hash128(data)

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, exists := c.data[key]
	if !exists {
		return nil, false
	}

	if c.now().After(entry.expiry) {
		delete(c.data, key)
		return nil, false
	}

	return entry.schedule, true
}

// Set сохраняет расписание для содержимого файла и вычищает истёкшие записи
func (c *ScheduleCache) Set(data []byte, schedule *domain.ParsedSchedule) {
	key := xxh3.Hash128(data)

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for k, entry := range c.data {
		if now.After(entry.expiry) {
			delete(c.data, k)
		}
	}

	c.data[key] = cacheEntry{
		schedule: schedule,
		expiry:   now.Add(c.ttl),
	}
}

// Len количество записей, включая истёкшие, которые ещё не вычищены
func (c *ScheduleCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.data)
}
