package options

import "sync"

// Locked serializes access to a Registry shared between goroutines.
// Mutations take the write lock; reads and rendering share the read lock.
type Locked struct {
	mu  sync.RWMutex
	reg *Registry
}

// NewLocked wraps reg. reg must not be used directly afterwards.
func NewLocked(reg *Registry) *Locked {
	return &Locked{reg: reg}
}

func (l *Locked) Add(domain string, opt Option) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.reg.Add(domain, opt)
}

func (l *Locked) Require(domain, suffix string, raw any, opts ...AssertOption) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.reg.Require(domain, suffix, raw, opts...)
}

func (l *Locked) Suggest(domain, suffix string, raw any, opts ...AssertOption) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.reg.Suggest(domain, suffix, raw, opts...)
}

func (l *Locked) UnwindByTag(tag Tag) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.reg.UnwindByTag(tag)
}

// Value resolves the setting registered under exactly keyword.
func (l *Locked) Value(domain, keyword string) (any, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	opt, err := l.reg.Lookup(domain, keyword)
	if err != nil {
		return nil, err
	}
	return opt.Resolve()
}

func (l *Locked) Render() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.reg.Render()
}

func (l *Locked) Snapshot() map[string]map[string]any {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.reg.Snapshot()
}

// View runs fn under the read lock. fn must not mutate the registry.
func (l *Locked) View(fn func(*Registry) error) error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return fn(l.reg)
}
