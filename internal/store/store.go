// Package store хранит последние снимки состояния сервера и локальные
// оптимистичные правки поверх них.
package store

import (
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"auction_client/internal/domain/entity"
	"auction_client/internal/domain/value"
)

const DefaultPatchMaxCycles = 1

// Patch локальная правка: какие кнопки выключить, пока не придёт ответ
// сервера. Kind снимок, свежая версия которого снимает правку.
type Patch struct {
	ID      uint64
	Kind    value.SnapshotKind
	Disable []value.Control
}

type patchEntry struct {
	patch  Patch
	cycles int
}

type snapshot struct {
	seq       uint64
	data      any
	updatedAt time.Time
}

// Store один на процесс. Данные в нём не меняются, только заменяются
// целиком.
type Store struct {
	mu sync.RWMutex

	clock          clockwork.Clock
	patchMaxCycles int

	lastSeq   uint64
	lastPatch uint64
	snapshots map[value.SnapshotKind]snapshot
	patches   map[uint64]*patchEntry
}

type Option func(*Store)

func WithClock(clock clockwork.Clock) Option {
	return func(s *Store) {
		s.clock = clock
	}
}

// WithPatchMaxCycles число циклов опроса, после которого правка снимается
// даже без нового снимка.
func WithPatchMaxCycles(cycles int) Option {
	return func(s *Store) {
		if cycles > 0 {
			s.patchMaxCycles = cycles
		}
	}
}

func New(opts ...Option) *Store {
	s := &Store{
		clock:          clockwork.NewRealClock(),
		patchMaxCycles: DefaultPatchMaxCycles,
		snapshots:      make(map[value.SnapshotKind]snapshot),
		patches:        make(map[uint64]*patchEntry),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Begin выдаёт номер запроса. Номера растут монотонно для всех видов.
func (s *Store) Begin(_ value.SnapshotKind) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastSeq++

	return s.lastSeq
}

// Commit сохраняет снимок, если он не старше уже применённого. Возвращает
// false для устаревшего ответа, такой ответ отбрасывается.
func (s *Store) Commit(kind value.SnapshotKind, seq uint64, data any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if current, ok := s.snapshots[kind]; ok && seq <= current.seq {
		return false
	}

	s.snapshots[kind] = snapshot{
		seq:       seq,
		data:      data,
		updatedAt: s.clock.Now(),
	}

	for id, entry := range s.patches {
		if entry.patch.Kind == kind {
			delete(s.patches, id)
		}
	}

	return true
}

// Replace безусловно заменяет снимок вида kind.
func (s *Store) Replace(kind value.SnapshotKind, data any) {
	s.Commit(kind, s.Begin(kind), data)
}

// Forget удаляет снимок, например когда сервер перестал отдавать ресурс.
// Номер запроса остаётся: ответы, начатые до Forget, отбрасываются.
func (s *Store) Forget(kind value.SnapshotKind) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastSeq++
	s.snapshots[kind] = snapshot{
		seq:       s.lastSeq,
		updatedAt: s.clock.Now(),
	}
}

// ApplyOptimistic добавляет правку и возвращает её с назначенным ID.
func (s *Store) ApplyOptimistic(patch Patch) Patch {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastPatch++
	patch.ID = s.lastPatch
	patch.Disable = slices.Clone(patch.Disable)
	s.patches[patch.ID] = &patchEntry{patch: patch}

	return patch
}

// Revert снимает правку действия. Повторный вызов ничего не делает.
func (s *Store) Revert(patch Patch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.patches, patch.ID)
}

// Settle закрывает цикл опроса для вида kind: правки, прожившие
// patchMaxCycles циклов, снимаются.
func (s *Store) Settle(kind value.SnapshotKind) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, entry := range s.patches {
		if entry.patch.Kind != kind {
			continue
		}

		entry.cycles++
		if entry.cycles >= s.patchMaxCycles {
			delete(s.patches, id)
		}
	}
}

// Read собирает View из того, что сейчас лежит в Store.
func (s *Store) Read() View {
	s.mu.RLock()
	defer s.mu.RUnlock()

	view := View{
		Disabled:  make(map[value.Control]bool),
		Versions:  make(map[value.SnapshotKind]uint64, len(s.snapshots)),
		UpdatedAt: make(map[value.SnapshotKind]time.Time, len(s.snapshots)),
	}

	for _, kind := range slices.Sorted(maps.Keys(s.snapshots)) {
		snap := s.snapshots[kind]
		if snap.data == nil {
			continue
		}

		view.Versions[kind] = snap.seq
		view.UpdatedAt[kind] = snap.updatedAt

		switch data := snap.data.(type) {
		case entity.AuctionState:
			view.Auction = &data
		case entity.PlayerBalances:
			view.Balances = maps.Clone(data)
		case entity.Deals:
			view.Deals = slices.Clone(data)
		case entity.GameStatus:
			view.Game = &data
		case entity.RoundResult:
			view.Round = &data
		case entity.UserProfile:
			view.User = &data
		case entity.Statistics:
			view.Statistics = &data
		}
	}

	for _, entry := range s.patches {
		for _, control := range entry.patch.Disable {
			view.Disabled[control] = true
		}
	}

	return view
}

// PendingPatches число активных правок.
func (s *Store) PendingPatches() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.patches)
}
