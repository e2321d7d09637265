package portal

import "time"

type PortalContainer struct {
	Store   *Store
	Handler *Handler
}

// NewPortalContainer evicts pages once their token has expired.
func NewPortalContainer(cfg StoreConfig, tokenTTL time.Duration) *PortalContainer {
	cfg.PageTTL = tokenTTL
	store := NewStore(cfg)
	handler := NewHandler(store, tokenTTL)

	return &PortalContainer{
		Store:   store,
		Handler: handler,
	}
}
