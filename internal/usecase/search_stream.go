package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/checkin-service/internal/usecase/dto"
)

// SearchStream debounces keystroke-level query updates for one session's
// search box. Each input resets the quiet timer; only after the configured
// quiet period does the lookup run. A response belonging to a superseded
// input is discarded, so results never go backwards.
type SearchStream struct {
	stations *StationUseCase
	quiet    time.Duration

	mu     sync.Mutex
	timer  *time.Timer
	seq    uint64
	query  string
	latest *dto.SearchResponse
	closed bool
}

// NewSearchStream creates a stream using the configured debounce interval.
func (uc *StationUseCase) NewSearchStream() *SearchStream {
	return &SearchStream{
		stations: uc,
		quiet:    uc.searchCfg.Debounce,
	}
}

// Input records a new query. Short queries clear the results immediately;
// everything else is looked up after the quiet period, replacing any
// lookup still pending.
func (s *SearchStream) Input(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	s.seq++
	s.query = query
	if s.timer != nil {
		s.timer.Stop()
	}

	seq := s.seq
	s.timer = time.AfterFunc(s.quiet, func() {
		s.lookup(seq, query)
	})
}

func (s *SearchStream) lookup(seq uint64, query string) {
	resp := s.stations.Search(context.Background(), dto.SearchRequest{Query: query})

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || seq != s.seq {
		// A newer input arrived while this lookup ran.
		return
	}
	s.latest = resp
}

// Results returns the query as last typed and the latest completed lookup.
// The response is nil while the first lookup is still pending.
func (s *SearchStream) Results() (string, *dto.SearchResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query, s.latest
}

// Close cancels any pending lookup and refuses further input.
func (s *SearchStream) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
