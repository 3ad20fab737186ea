package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/mammamia/pizzeria-backend/api/controllers"
	"github.com/mammamia/pizzeria-backend/api/middleware"
	"github.com/mammamia/pizzeria-backend/internal/catalog"
	"github.com/mammamia/pizzeria-backend/internal/customers"
	"github.com/mammamia/pizzeria-backend/internal/delivery"
	"github.com/mammamia/pizzeria-backend/internal/discounts"
	"github.com/mammamia/pizzeria-backend/internal/orders"
	"github.com/mammamia/pizzeria-backend/pkg/config"
	"github.com/mammamia/pizzeria-backend/pkg/logger"
	pkgredis "github.com/mammamia/pizzeria-backend/pkg/redis"
)

// RouterParams bundle the dependencies the HTTP surface needs.
type RouterParams struct {
	Config    *config.Config
	Logger    *logger.Logger
	DB        *gorm.DB
	Redis     *pkgredis.Client
	Registry  *prometheus.Registry
	Catalog   catalog.Service
	Customers customers.Service
	Discounts discounts.Service
	Delivery  delivery.Service
	Orders    orders.Service
}

func NewRouter(p RouterParams) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, p.DB, p.Redis, logg))
	})

	if p.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(p.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		if p.Redis != nil {
			r.Use(middleware.Idempotency(p.Redis, logg, cfg.Orders.IdempotencyTTL))
		}

		r.Get("/menu", controllers.Menu(p.Catalog, logg))

		r.Route("/ingredients", func(r chi.Router) {
			r.Get("/", controllers.ListIngredients(p.Catalog, logg))
			r.Post("/", controllers.CreateIngredient(p.Catalog, logg))
			r.Patch("/{ingredientId}", controllers.UpdateIngredient(p.Catalog, logg))
			r.Delete("/{ingredientId}", controllers.DeleteIngredient(p.Catalog, logg))
		})

		r.Route("/pizzas", func(r chi.Router) {
			r.Get("/", controllers.ListPizzas(p.Catalog, logg))
			r.Post("/", controllers.CreatePizza(p.Catalog, logg))
			r.Get("/{pizzaId}", controllers.GetPizza(p.Catalog, logg))
			r.Get("/{pizzaId}/pricing", controllers.PizzaPricing(p.Catalog, logg))
			r.Patch("/{pizzaId}", controllers.UpdatePizza(p.Catalog, logg))
			r.Put("/{pizzaId}/recipe", controllers.SetRecipe(p.Catalog, logg))
		})

		r.Route("/drinks", func(r chi.Router) {
			r.Get("/", controllers.ListDrinks(p.Catalog, logg))
			r.Post("/", controllers.CreateDrink(p.Catalog, logg))
		})

		r.Route("/desserts", func(r chi.Router) {
			r.Get("/", controllers.ListDesserts(p.Catalog, logg))
			r.Post("/", controllers.CreateDessert(p.Catalog, logg))
		})

		r.Route("/postal-areas", func(r chi.Router) {
			r.Get("/", controllers.ListPostalAreas(p.Customers, logg))
			r.Post("/", controllers.CreatePostalArea(p.Customers, logg))
		})

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", controllers.ListCustomers(p.Customers, logg))
			r.Post("/", controllers.RegisterCustomer(p.Customers, logg))
			r.Get("/{customerId}", controllers.GetCustomer(p.Customers, logg))
			r.Patch("/{customerId}", controllers.UpdateCustomer(p.Customers, logg))
			r.Get("/{customerId}/loyalty", controllers.CustomerLoyalty(p.Customers, logg))
		})

		r.Route("/couriers", func(r chi.Router) {
			r.Get("/", controllers.ListCouriers(p.Delivery, logg))
			r.Post("/", controllers.CreateCourier(p.Delivery, logg))
			r.Get("/{courierId}", controllers.GetCourier(p.Delivery, logg))
			r.Put("/{courierId}/zones", controllers.SetCourierZones(p.Delivery, logg))
		})

		r.Route("/discount-codes", func(r chi.Router) {
			r.Get("/", controllers.ListDiscountCodes(p.Discounts, logg))
			r.Post("/", controllers.CreateDiscountCode(p.Discounts, logg))
			r.Delete("/{codeId}", controllers.DeactivateDiscountCode(p.Discounts, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.ListOrders(p.Orders, logg))
			r.Post("/", controllers.PlaceOrder(p.Orders, logg))
			r.Get("/{orderId}", controllers.GetOrder(p.Orders, logg))
			r.Post("/{orderId}/advance", controllers.AdvanceOrder(p.Orders, logg))
			r.Post("/{orderId}/cancel", controllers.CancelOrder(p.Orders, logg))
		})
	})

	return r
}
