package portal

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/saulo-duarte/btcportal/internal/chart"
	"github.com/saulo-duarte/btcportal/internal/config"
	"github.com/saulo-duarte/btcportal/internal/news"
	"github.com/saulo-duarte/btcportal/internal/price"
	"github.com/saulo-duarte/btcportal/internal/quiz"
)

// Page is one visitor's portal. Exactly one section is visible at a time.
type Page struct {
	ID uuid.UUID

	news   news.Service
	price  price.Service
	charts chart.Options
	player *quiz.Player

	mu         sync.Mutex
	visible    Section
	newsPanel  NewsPanel
	pricePanel PricePanel
	widget     chart.Widget
}

func NewPage(id uuid.UUID, newsSvc news.Service, priceSvc price.Service, charts chart.Options, player *quiz.Player) *Page {
	return &Page{
		ID:      id,
		news:    newsSvc,
		price:   priceSvc,
		charts:  charts,
		player:  player,
		visible: SectionNews,
	}
}

// Init loads the feed, starts the quiz and installs the chart placeholder, in that order.
func (p *Page) Init(ctx context.Context) {
	log := config.WithContext(ctx).WithField("page_id", p.ID.String())

	panel := NewsPanel{}
	items, err := p.news.FetchNews(ctx)
	if err != nil {
		log.WithError(err).Warn("News feed unavailable")
		panel.Error = news.ErrorText(err)
	} else {
		panel.Items = items
	}

	p.mu.Lock()
	p.newsPanel = panel
	p.mu.Unlock()

	p.player.Engine.Start()

	p.mu.Lock()
	p.widget = chart.Placeholder(p.charts)
	p.mu.Unlock()

	log.Info("Page initialized")
}

// Show makes section the only visible one. The price is refetched on every
// show and the chart widget is (re)loaded on every show of its section.
func (p *Page) Show(ctx context.Context, section Section) error {
	if _, err := ParseSection(string(section)); err != nil {
		return err
	}

	var pane *PricePanel
	if section == SectionPrice {
		pane = p.fetchPrice(ctx)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.visible = section
	if pane != nil {
		p.pricePanel = *pane
	}
	if section == SectionChart {
		p.widget = chart.Placeholder(p.charts).Load()
	}
	return nil
}

func (p *Page) fetchPrice(ctx context.Context) *PricePanel {
	quote, err := p.price.FetchPrice(ctx)
	if err != nil {
		config.WithContext(ctx).WithError(err).Warn("Price unavailable")
		return &PricePanel{Display: price.ErrorText}
	}
	return &PricePanel{Display: quote.Display, Quote: &quote}
}

func (p *Page) Visible() Section {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.visible
}

func (p *Page) Player() *quiz.Player {
	return p.player
}

func (p *Page) View() PageView {
	p.mu.Lock()
	view := PageView{
		ID:      p.ID,
		Visible: p.visible,
		News:    p.newsPanel,
		Price:   p.pricePanel,
		Chart:   p.widget,
	}
	p.mu.Unlock()

	view.Quiz = p.player.Status()
	return view
}

func (p *Page) Close() {
	p.player.Close()
}
