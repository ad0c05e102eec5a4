package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"pos_catalog/pkg/httpx/reply"
)

func (s Server) RegisterRoutes(r chi.Router) {
	r.Route("/v1", func(r chi.Router) {
		r.Route("/apps", func(r chi.Router) {
			r.Post("/", handler(s.postV1App))

			r.Route("/{appID}", func(r chi.Router) {
				r.Get("/", handler(s.getV1App))
				r.Delete("/", handler(s.deleteV1App))
				r.Get("/template", handler(s.getV1AppTemplate))
				r.Put("/template", handler(s.putV1AppTemplate))
				r.Get("/items", handler(s.getV1AppItems))
				r.Get("/stats/items", handler(s.getV1AppItemStats))
				r.Get("/stats/sales", handler(s.getV1AppSalesStats))
			})
		})

		r.Get("/stores/{storeID}/apps", handler(s.getV1StoreApps))
	})
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			reply.Error(r.Context(), w, err)
		}
	}
}
