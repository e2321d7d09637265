package news

import "net/http"

type NewsContainer struct {
	Handler *Handler
	Service Service
}

func NewNewsContainer(client *http.Client, proxyURL, feedURL string) *NewsContainer {
	service := NewService(client, proxyURL, feedURL)
	handler := NewHandler(service)

	return &NewsContainer{
		Handler: handler,
		Service: service,
	}
}
