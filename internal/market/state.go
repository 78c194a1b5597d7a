package market

import (
	"sort"
	"sync"

	"github.com/rickgao/gbce-market/internal/model"
)

// ledgerState holds the registry and the trade ledger behind one lock.
type ledgerState struct {
	mu sync.RWMutex

	// Listed stocks indexed by name.
	stocks map[string]model.Stock

	// Recorded trades in append order. Entries are never modified or
	// removed, so a captured slice header is a stable snapshot.
	trades []model.Trade
}

func newState() *ledgerState {
	return &ledgerState{
		stocks: make(map[string]model.Stock),
	}
}

// snapshot is a point-in-time view of the ledger. Reads run against it
// without holding the lock.
type snapshot struct {
	stocks []model.Stock // sorted by name
	trades []model.Trade
}

// getStock returns a stock by name (read-locked).
func (s *ledgerState) getStock(name string) (model.Stock, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.stocks[name]
	return st, ok
}

// hasStockLocked reports whether name is listed (caller must hold a lock).
func (s *ledgerState) hasStockLocked(name string) bool {
	_, ok := s.stocks[name]
	return ok
}

// tradesView returns the current ledger (read-locked). The returned slice is
// capped at its length so appends never show through it.
func (s *ledgerState) tradesView() []model.Trade {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.trades)
	return s.trades[:n:n]
}

// snapshot captures stocks and trades together (read-locked).
func (s *ledgerState) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.trades)
	return snapshot{
		stocks: s.sortedStocksLocked(),
		trades: s.trades[:n:n],
	}
}

// sortedStocksLocked returns a copy of all stocks ordered by name
// (caller must hold a lock).
func (s *ledgerState) sortedStocksLocked() []model.Stock {
	result := make([]model.Stock, 0, len(s.stocks))
	for _, st := range s.stocks {
		result = append(result, st)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name() < result[j].Name()
	})
	return result
}
