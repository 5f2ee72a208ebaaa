package services

import "sync"

type pairKey struct {
	userID    uint
	listingID uint
}

type pairLock struct {
	mu   sync.Mutex
	refs int
}

// pairLocks hands out one mutex per (user, listing) pair and forgets it when unused
type pairLocks struct {
	mu    sync.Mutex
	locks map[pairKey]*pairLock
}

func newPairLocks() *pairLocks {
	return &pairLocks{locks: make(map[pairKey]*pairLock)}
}

// lock blocks until the pair is free and returns its unlock func
func (p *pairLocks) lock(k pairKey) func() {
	p.mu.Lock()
	l, ok := p.locks[k]
	if !ok {
		l = &pairLock{}
		p.locks[k] = l
	}
	l.refs++
	p.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		p.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(p.locks, k)
		}
		p.mu.Unlock()
	}
}

func (p *pairLocks) size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.locks)
}
