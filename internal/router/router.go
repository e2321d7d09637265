package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/saulo-duarte/btcportal/internal/chart"
	"github.com/saulo-duarte/btcportal/internal/config"
	"github.com/saulo-duarte/btcportal/internal/middlewares"
	"github.com/saulo-duarte/btcportal/internal/news"
	"github.com/saulo-duarte/btcportal/internal/portal"
	"github.com/saulo-duarte/btcportal/internal/price"
	"github.com/saulo-duarte/btcportal/internal/quiz"
)

type RouterConfig struct {
	AllowedOrigins []string
	NewsHandler    *news.Handler
	PriceHandler   *price.Handler
	ChartHandler   *chart.Handler
	QuizHandler    *quiz.Handler
	PortalHandler  *portal.Handler
}

func New(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.CorsMiddleware(cfg.AllowedOrigins))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		config.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Mount("/news", news.Routes(cfg.NewsHandler))
	r.Mount("/price", price.Routes(cfg.PriceHandler))
	r.Mount("/chart", chart.Routes(cfg.ChartHandler))
	r.Mount("/quiz", quiz.Routes(cfg.QuizHandler))
	r.Mount("/pages", portal.Routes(cfg.PortalHandler))
	return r
}
