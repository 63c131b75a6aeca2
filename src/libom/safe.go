package libom

import "sync"

// a := NewSafeVar()
// a.Set(0x01)
// a.Get().(int)

type SafeVar struct {
	data interface{}
	lock sync.RWMutex
}

func NewSafeVar() *SafeVar {
	return &SafeVar{}
}

func (sv *SafeVar) Set(v interface{}) {
	sv.lock.Lock()
	defer sv.lock.Unlock()
	sv.data = v
}

func (sv *SafeVar) Get() interface{} {
	sv.lock.RLock()
	defer sv.lock.RUnlock()
	return sv.data
}

type SafeStrInt64 struct {
	data map[string]int64
	lock sync.RWMutex
}

func NewSafeStrInt64() *SafeStrInt64 {
	return &SafeStrInt64{
		data: make(map[string]int64, 32),
	}
}

func (s *SafeStrInt64) Get(k string) int64 {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.data[k]
}

func (s *SafeStrInt64) Set(k string, v int64) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.data[k] = v
}

func (s *SafeStrInt64) Add(k string, v int64) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.data[k] += v
}

func (s *SafeStrInt64) Data() map[string]int64 {
	s.lock.RLock()
	defer s.lock.RUnlock()
	data := make(map[string]int64, len(s.data))
	for k, v := range s.data {
		data[k] = v
	}
	return data
}
