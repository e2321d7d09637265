package portal_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/saulo-duarte/btcportal/internal/auth"
	"github.com/saulo-duarte/btcportal/internal/chart"
	"github.com/saulo-duarte/btcportal/internal/news"
	"github.com/saulo-duarte/btcportal/internal/portal"
	"github.com/saulo-duarte/btcportal/internal/price"
	"github.com/saulo-duarte/btcportal/internal/quiz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNews struct {
	items []news.Item
	err   error
}

func (f fakeNews) FetchNews(context.Context) ([]news.Item, error) {
	return f.items, f.err
}

type fakePrice struct {
	mu    sync.Mutex
	rates []float64
	err   error
	calls int
}

func (f *fakePrice) FetchPrice(context.Context) (price.Quote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	if f.err != nil {
		return price.Quote{}, f.err
	}
	rate := f.rates[0]
	if len(f.rates) > 1 {
		f.rates = f.rates[1:]
	}
	return price.NewQuote(rate, "fake", time.Now()), nil
}

func (f *fakePrice) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

var sampleItems = []news.Item{{
	Title:     "Bitcoin hits a new high",
	Link:      "https://example.com/high",
	Thumbnail: news.DefaultThumbnail,
}}

func newStore(t *testing.T, newsSvc news.Service, priceSvc price.Service) *portal.Store {
	t.Helper()
	store := portal.NewStore(portal.StoreConfig{
		News:        newsSvc,
		Price:       priceSvc,
		Chart:       chart.Options{},
		QuizOptions: []quiz.Option{quiz.WithAdvanceDelay(time.Hour)},
	})
	t.Cleanup(store.Close)
	return store
}

func TestParseSection(t *testing.T) {
	for _, s := range []string{"news-section", "price-section", "chart-section", "quiz-section"} {
		sec, err := portal.ParseSection(s)
		require.NoError(t, err)
		assert.Equal(t, s, string(sec))
	}

	_, err := portal.ParseSection("about-section")
	assert.ErrorIs(t, err, portal.ErrUnknownSection)
}

func TestPageInit(t *testing.T) {
	store := newStore(t, fakeNews{items: sampleItems}, &fakePrice{rates: []float64{1}})
	page := store.Create(context.Background())

	view := page.View()
	assert.Equal(t, portal.SectionNews, view.Visible)
	assert.Equal(t, sampleItems, view.News.Items)
	assert.Empty(t, view.News.Error)

	assert.False(t, view.Chart.Loaded)
	assert.Equal(t, chart.ContainerID, view.Chart.Container)

	assert.Equal(t, "awaiting_answer", view.Quiz.State)
	assert.Equal(t, quiz.PhaseQuestion, view.Quiz.Screen.Phase)
	assert.Equal(t, 0, view.Quiz.Screen.QuestionIndex)
	assert.Equal(t, quiz.Session{}, view.Quiz.Session)
}

func TestPageInitNewsFailure(t *testing.T) {
	store := newStore(t, fakeNews{err: errors.New("proxy down")}, &fakePrice{rates: []float64{1}})
	page := store.Create(context.Background())

	view := page.View()
	assert.Empty(t, view.News.Items)
	assert.Equal(t, "Error fetching RSS feed: proxy down", view.News.Error)
	assert.Equal(t, "awaiting_answer", view.Quiz.State)
}

func TestShowSection(t *testing.T) {
	prices := &fakePrice{rates: []float64{100, 200.456}}
	store := newStore(t, fakeNews{items: sampleItems}, prices)
	page := store.Create(context.Background())
	ctx := context.Background()

	require.NoError(t, page.Show(ctx, portal.SectionPrice))
	assert.Equal(t, portal.SectionPrice, page.Visible())
	assert.Equal(t, "$100.00", page.View().Price.Display)

	require.NoError(t, page.Show(ctx, portal.SectionQuiz))
	require.NoError(t, page.Show(ctx, portal.SectionPrice))
	assert.Equal(t, "$200.46", page.View().Price.Display)
	assert.Equal(t, 2, prices.Calls())

	require.NoError(t, page.Show(ctx, portal.SectionChart))
	view := page.View()
	assert.Equal(t, portal.SectionChart, view.Visible)
	assert.True(t, view.Chart.Loaded)
	assert.Equal(t, 2, prices.Calls())

	err := page.Show(ctx, portal.Section("about-section"))
	assert.ErrorIs(t, err, portal.ErrUnknownSection)
	assert.Equal(t, portal.SectionChart, page.Visible())
}

func TestShowPriceFailure(t *testing.T) {
	store := newStore(t, fakeNews{}, &fakePrice{err: errors.New("timeout")})
	page := store.Create(context.Background())

	require.NoError(t, page.Show(context.Background(), portal.SectionPrice))
	view := page.View()
	assert.Equal(t, "Error fetching price", view.Price.Display)
	assert.Nil(t, view.Price.Quote)
}

func TestStoreLookup(t *testing.T) {
	store := newStore(t, fakeNews{}, &fakePrice{rates: []float64{1}})
	page := store.Create(context.Background())
	assert.Equal(t, 1, store.Len())

	got, err := store.Get(page.ID)
	require.NoError(t, err)
	assert.Same(t, page, got)

	ctx := auth.WithClaims(context.Background(), &auth.PageClaims{PageID: page.ID.String()})
	player, err := store.PlayerFor(ctx)
	require.NoError(t, err)
	assert.Same(t, page.Player(), player)

	require.NoError(t, store.Delete(page.ID))
	assert.ErrorIs(t, store.Delete(page.ID), portal.ErrPageNotFound)

	_, err = store.PlayerFor(ctx)
	assert.ErrorIs(t, err, quiz.ErrPlayerNotFound)

	_, err = store.PlayerFor(context.Background())
	assert.ErrorIs(t, err, auth.ErrNoClaims)

	bad := auth.WithClaims(context.Background(), &auth.PageClaims{PageID: "not-a-uuid"})
	_, err = store.PageFor(bad)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
