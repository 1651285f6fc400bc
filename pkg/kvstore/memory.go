package kvstore

import (
	"fmt"
	"strconv"
	"sync"
	"time"
)

var _ KVStore = (*Memory)(nil)

type memEntry struct {
	value     string
	expiresAt time.Time
}

// Memory is the in-process store. Expired keys are evicted lazily on read.
type Memory struct {
	mu    sync.Mutex
	items map[string]memEntry
	lists map[string][]string
}

func NewMemory() *Memory {
	return &Memory{
		items: make(map[string]memEntry),
		lists: make(map[string][]string),
	}
}

func toString(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}

// get returns the live value for key. Caller must hold the lock.
func (m *Memory) get(key string) (string, bool) {
	e, ok := m.items[key]
	if !ok {
		return "", false
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		delete(m.items, key)
		return "", false
	}
	return e.value, true
}

func (m *Memory) Get(key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.get(key)
	if !ok {
		return "", ErrNoKey
	}
	return v, nil
}

func (m *Memory) Set(key string, value interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items[key] = memEntry{value: toString(value)}
	return nil
}

func (m *Memory) SetEx(key string, value interface{}, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items[key] = memEntry{value: toString(value), expiresAt: time.Now().Add(ttl)}
	return nil
}

func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.items, key)
	delete(m.lists, key)
	return nil
}

func (m *Memory) LPush(key string, values ...interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	list := m.lists[key]
	for _, v := range values {
		list = append([]string{toString(v)}, list...)
	}
	m.lists[key] = list
	return nil
}

func (m *Memory) RPush(key string, values ...interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	list := m.lists[key]
	for _, v := range values {
		list = append(list, toString(v))
	}
	m.lists[key] = list
	return nil
}

func (m *Memory) LPop(key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	list := m.lists[key]
	if len(list) == 0 {
		return "", ErrNoKey
	}
	v := list[0]
	m.lists[key] = list[1:]
	return v, nil
}

func (m *Memory) RPop(key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	list := m.lists[key]
	if len(list) == 0 {
		return "", ErrNoKey
	}
	v := list[len(list)-1]
	m.lists[key] = list[:len(list)-1]
	return v, nil
}

func (m *Memory) LLen(key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return int64(len(m.lists[key])), nil
}

func (m *Memory) LIndex(key string, index int64) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	list := m.lists[key]
	if index < 0 {
		index += int64(len(list))
	}
	if index < 0 || index >= int64(len(list)) {
		return "", ErrNoKey
	}
	return list[index], nil
}

func (m *Memory) LRange(key string, start, stop int64) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	list := m.lists[key]
	n := int64(len(list))
	if start < 0 {
		start += n
	}
	if stop < 0 {
		stop += n
	}
	if start < 0 {
		start = 0
	}
	if stop >= n {
		stop = n - 1
	}
	if n == 0 || start >= n || start > stop {
		return []string{}, nil
	}

	out := make([]string, stop-start+1)
	copy(out, list[start:stop+1])
	return out, nil
}

// LRem follows redis semantics: count > 0 removes matches from the head,
// count < 0 from the tail, count == 0 removes them all.
func (m *Memory) LRem(key string, count int64, value interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	target := toString(value)
	list := m.lists[key]

	remaining := count
	if count < 0 {
		remaining = -count
	}
	unlimited := count == 0

	keep := make([]string, 0, len(list))
	if count < 0 {
		for i := len(list) - 1; i >= 0; i-- {
			if list[i] == target && (unlimited || remaining > 0) {
				remaining--
				continue
			}
			keep = append([]string{list[i]}, keep...)
		}
	} else {
		for _, v := range list {
			if v == target && (unlimited || remaining > 0) {
				remaining--
				continue
			}
			keep = append(keep, v)
		}
	}
	m.lists[key] = keep
	return nil
}

func (m *Memory) INCR(key string) (int64, error) {
	return m.add(key, 1)
}

func (m *Memory) DECR(key string) (int64, error) {
	return m.add(key, -1)
}

func (m *Memory) add(key string, delta int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var cur int64
	if v, ok := m.get(key); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("kvstore: value at %s is not an integer", key)
		}
		cur = n
	}
	cur += delta
	m.items[key] = memEntry{value: strconv.FormatInt(cur, 10)}
	return cur, nil
}
