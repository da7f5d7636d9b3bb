package worker

import "sync"

// Guard не пускает второй запрос к ресурсу, пока первый не завершился.
// Занятый ресурс пропускается, а не ставится в очередь.
type Guard struct {
	mu   sync.Mutex
	busy map[string]struct{}
}

func NewGuard() *Guard {
	return &Guard{
		busy: make(map[string]struct{}),
	}
}

func (g *Guard) TryAcquire(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.busy[key]; ok {
		return false
	}

	g.busy[key] = struct{}{}

	return true
}

func (g *Guard) Release(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	delete(g.busy, key)
}

func (g *Guard) InFlight(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, ok := g.busy[key]

	return ok
}
