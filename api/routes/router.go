package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/multiprice-backend/api/controllers"
	"github.com/angelmondragon/multiprice-backend/api/middleware"
	"github.com/angelmondragon/multiprice-backend/internal/documents"
	"github.com/angelmondragon/multiprice-backend/internal/pricelists"
	product "github.com/angelmondragon/multiprice-backend/internal/products"
	"github.com/angelmondragon/multiprice-backend/internal/uom"
	"github.com/angelmondragon/multiprice-backend/pkg/config"
	"github.com/angelmondragon/multiprice-backend/pkg/logger"
	"github.com/angelmondragon/multiprice-backend/pkg/metrics"
)

// Services groups the domain services exposed over HTTP.
type Services struct {
	Uom        uom.Service
	Products   product.Service
	Pricelists pricelists.Service
	Documents  documents.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	gatherer prometheus.Gatherer,
	httpMetrics *metrics.HTTPMetrics,
	readiness map[string]controllers.Pinger,
	svc Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg, httpMetrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readiness))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Route("/price-names", func(r chi.Router) {
			r.Post("/", controllers.CreatePriceName(svc.Products, logg))
			r.Get("/", controllers.ListPriceNames(svc.Products, logg))
		})

		r.Route("/uom", func(r chi.Router) {
			r.Post("/categories", controllers.CreateUomCategory(svc.Uom, logg))
			r.Get("/categories", controllers.ListUomCategories(svc.Uom, logg))
			r.Post("/units", controllers.CreateUom(svc.Uom, logg))
			r.Get("/units", controllers.ListUoms(svc.Uom, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Post("/templates", controllers.CreateTemplate(svc.Products, logg))
			r.Get("/templates/{templateId}", controllers.GetTemplate(svc.Products, logg))
			r.Post("/templates/{templateId}/variants", controllers.CreateVariant(svc.Products, logg))

			r.Route("/{kind}/{productId}", func(r chi.Router) {
				r.Put("/prices", controllers.ReplacePrices(svc.Products, logg))
				r.Get("/prices", controllers.GetPrices(svc.Products, logg))
				r.Post("/documents", controllers.AttachDocument(svc.Documents, logg))
				r.Get("/documents", controllers.ListDocuments(svc.Documents, logg))
				r.Get("/documents/count", controllers.CountDocuments(svc.Documents, logg))
				r.Get("/documents/action", controllers.OpenDocumentsAction(svc.Documents, logg))
			})
		})

		r.Route("/pricelists", func(r chi.Router) {
			r.Post("/", controllers.CreatePricelist(svc.Pricelists, logg))
			r.Route("/{pricelistId}", func(r chi.Router) {
				r.Post("/items", controllers.AddPricelistItem(svc.Pricelists, logg))
				r.Get("/items", controllers.ListPricelistItems(svc.Pricelists, logg))
				r.Post("/prices", controllers.ProductsPrice(svc.Pricelists, logg))
			})
		})

		r.Get("/views", controllers.ListViews())
		r.Get("/views/{model}", controllers.ModelView(logg))
	})

	return r
}
