package price

import "net/http"

type PriceContainer struct {
	Handler *Handler
	Service Service
}

func NewPriceContainer(client *http.Client, apiURL string) *PriceContainer {
	service := NewService(client, apiURL)
	handler := NewHandler(service)

	return &PriceContainer{
		Handler: handler,
		Service: service,
	}
}
