package portal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/btcportal/internal/auth"
	"github.com/saulo-duarte/btcportal/internal/chart"
	"github.com/saulo-duarte/btcportal/internal/config"
	"github.com/saulo-duarte/btcportal/internal/news"
	"github.com/saulo-duarte/btcportal/internal/price"
	"github.com/saulo-duarte/btcportal/internal/quiz"
)

var ErrPageNotFound = errors.New("page not found")

type StoreConfig struct {
	News        news.Service
	Price       price.Service
	Chart       chart.Options
	Bank        *quiz.Bank
	Results     quiz.ResultService
	CheckOrigin func(*http.Request) bool
	QuizOptions []quiz.Option
	// PageTTL bounds how long a page outlives its creation; zero keeps pages until deleted.
	PageTTL     time.Duration
}

// Store keeps the live pages in memory, keyed by page id.
type Store struct {
	cfg StoreConfig

	now func() time.Time

	mu      sync.Mutex
	pages   map[uuid.UUID]*Page
	expires map[uuid.UUID]time.Time
}

func NewStore(cfg StoreConfig) *Store {
	if cfg.Bank == nil {
		cfg.Bank = quiz.DefaultBank()
	}
	return &Store{
		cfg:     cfg,
		now:     time.Now,
		pages:   make(map[uuid.UUID]*Page),
		expires: make(map[uuid.UUID]time.Time),
	}
}

// Create registers a new page and runs its Init.
func (s *Store) Create(ctx context.Context) *Page {
	s.sweep()

	id := uuid.New()
	player := quiz.NewPlayer(id, s.cfg.Bank, s.cfg.Results, s.cfg.CheckOrigin, s.cfg.QuizOptions...)
	page := NewPage(id, s.cfg.News, s.cfg.Price, s.cfg.Chart, player)

	s.mu.Lock()
	s.pages[id] = page
	if s.cfg.PageTTL > 0 {
		s.expires[id] = s.now().Add(s.cfg.PageTTL)
	}
	s.mu.Unlock()

	page.Init(ctx)
	return page
}

func (s *Store) Get(id uuid.UUID) (*Page, error) {
	s.sweep()

	s.mu.Lock()
	defer s.mu.Unlock()

	page, ok := s.pages[id]
	if !ok {
		return nil, ErrPageNotFound
	}
	return page, nil
}

// sweep drops every page whose token can no longer be valid.
func (s *Store) sweep() {
	now := s.now()

	s.mu.Lock()
	var expired []*Page
	for id, at := range s.expires {
		if now.Before(at) {
			continue
		}
		if page, ok := s.pages[id]; ok {
			expired = append(expired, page)
		}
		delete(s.pages, id)
		delete(s.expires, id)
	}
	s.mu.Unlock()

	for _, p := range expired {
		p.Close()
	}
	if len(expired) > 0 {
		config.Logger.WithField("pages", len(expired)).Debug("Evicted expired pages")
	}
}

func (s *Store) Delete(id uuid.UUID) error {
	s.mu.Lock()
	page, ok := s.pages[id]
	delete(s.pages, id)
	delete(s.expires, id)
	s.mu.Unlock()

	if !ok {
		return ErrPageNotFound
	}
	page.Close()
	return nil
}

func (s *Store) Len() int {
	s.sweep()

	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pages)
}

// Close tears down every page and waits for results still being saved.
func (s *Store) Close() {
	s.mu.Lock()
	pages := s.pages
	s.pages = make(map[uuid.UUID]*Page)
	s.expires = make(map[uuid.UUID]time.Time)
	s.mu.Unlock()

	for _, p := range pages {
		p.Close()
	}
	for _, p := range pages {
		if r := p.Player().Recorder; r != nil {
			r.Wait()
		}
	}
}

// PageFor resolves the page named by the token claims on ctx.
func (s *Store) PageFor(ctx context.Context) (*Page, error) {
	claims, err := auth.GetPageClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}
	id, err := uuid.Parse(claims.PageID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", auth.ErrInvalidToken, err)
	}
	return s.Get(id)
}

func (s *Store) PlayerFor(ctx context.Context) (*quiz.Player, error) {
	page, err := s.PageFor(ctx)
	if errors.Is(err, ErrPageNotFound) {
		return nil, fmt.Errorf("%w: %w", quiz.ErrPlayerNotFound, err)
	}
	if err != nil {
		return nil, err
	}
	return page.Player(), nil
}
