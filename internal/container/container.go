package container

import (
	"context"
	"net/http"

	"github.com/saulo-duarte/btcportal/internal/auth"
	"github.com/saulo-duarte/btcportal/internal/chart"
	"github.com/saulo-duarte/btcportal/internal/config"
	"github.com/saulo-duarte/btcportal/internal/middlewares"
	"github.com/saulo-duarte/btcportal/internal/news"
	"github.com/saulo-duarte/btcportal/internal/portal"
	"github.com/saulo-duarte/btcportal/internal/price"
	"github.com/saulo-duarte/btcportal/internal/quiz"
	"github.com/saulo-duarte/btcportal/internal/router"
)

type Container struct {
	Settings        config.Settings
	NewsContainer   *news.NewsContainer
	PriceContainer  *price.PriceContainer
	ChartContainer  *chart.ChartContainer
	QuizContainer   *quiz.QuizContainer
	PortalContainer *portal.PortalContainer
}

func New() *Container {
	config.Init()
	settings := config.Load()
	auth.Init()

	if settings.DatabaseDSN != "" {
		if err := config.Connect(context.Background(), settings.DatabaseDSN); err != nil {
			config.Logger.WithError(err).Fatal("Failed to connect to DB")
		}
		if err := config.DB.AutoMigrate(&quiz.Result{}); err != nil {
			config.Logger.WithError(err).Fatal("Failed to migrate quiz results")
		}
	} else {
		config.Logger.Warn("DATABASE_DSN not set, quiz results are kept in memory")
	}

	client := &http.Client{Timeout: settings.HTTPTimeout}

	newsContainer := news.NewNewsContainer(client, settings.NewsProxyURL, settings.NewsFeedURL)
	priceContainer := price.NewPriceContainer(client, settings.PriceAPIURL)
	chartContainer := chart.NewChartContainer(chart.Options{
		Symbol:   settings.ChartSymbol,
		Theme:    settings.ChartTheme,
		Interval: settings.ChartInterval,
	})
	quizContainer := quiz.NewQuizContainer(config.DB)

	portalContainer := portal.NewPortalContainer(portal.StoreConfig{
		News:        newsContainer.Service,
		Price:       priceContainer.Service,
		Chart:       chartContainer.Options,
		Bank:        quizContainer.Bank,
		Results:     quizContainer.Service,
		CheckOrigin: middlewares.CheckOrigin(settings.AllowedOrigins),
		QuizOptions: []quiz.Option{quiz.WithAdvanceDelay(settings.QuizAdvanceDelay)},
	}, settings.PageTokenTTL)

	return &Container{
		Settings:        settings,
		NewsContainer:   newsContainer,
		PriceContainer:  priceContainer,
		ChartContainer:  chartContainer,
		QuizContainer:   quizContainer,
		PortalContainer: portalContainer,
	}
}

func (c *Container) Router() http.Handler {
	return router.New(router.RouterConfig{
		AllowedOrigins: c.Settings.AllowedOrigins,
		NewsHandler:    c.NewsContainer.Handler,
		PriceHandler:   c.PriceContainer.Handler,
		ChartHandler:   c.ChartContainer.Handler,
		QuizHandler:    c.QuizContainer.Handler(c.PortalContainer.Store),
		PortalHandler:  c.PortalContainer.Handler,
	})
}

func (c *Container) Close() {
	c.PortalContainer.Store.Close()
}
