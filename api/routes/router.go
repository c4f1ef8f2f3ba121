package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/motordesk/backend/api/controllers"
	"github.com/motordesk/backend/api/middleware"
	catalogsvc "github.com/motordesk/backend/internal/catalog"
	customersvc "github.com/motordesk/backend/internal/customers"
	inquirysvc "github.com/motordesk/backend/internal/inquiries"
	offersvc "github.com/motordesk/backend/internal/offers"
	vehiclesvc "github.com/motordesk/backend/internal/vehicles"
	"github.com/motordesk/backend/pkg/config"
	"github.com/motordesk/backend/pkg/db"
	"github.com/motordesk/backend/pkg/enums"
	"github.com/motordesk/backend/pkg/logger"
	"github.com/motordesk/backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	vehicleService vehiclesvc.Service,
	offerService offersvc.Service,
	customerService customersvc.Service,
	inquiryService inquirysvc.Service,
	catalogService catalogsvc.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	inquiryPolicy := middleware.NewRateLimitPolicy(
		"inquiries",
		cfg.RateLimit.InquiryWindow,
		cfg.RateLimit.InquiryIPLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	r.Handle("/metrics", promhttp.Handler())

	// Public storefront surface. Read-only except the inquiry form,
	// which sits behind a per-IP rate limit.
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/catalog", func(r chi.Router) {
			r.Get("/storefront", controllers.CatalogStorefront(catalogService, logg))
			r.Get("/vehicles", controllers.BrowseVehicles(vehicleService, logg))
			r.Get("/vehicles/{vehicleId}", controllers.CatalogVehicle(catalogService, logg))
			r.Get("/offers", controllers.ListOffers(offerService, logg))
		})
		r.Get("/offers/vehicle/{vehicleId}/active", controllers.VehicleActiveOffers(offerService, logg))
		r.With(middleware.RateLimit(inquiryPolicy, redisClient, logg)).
			Post("/inquiries", controllers.SubmitInquiry(inquiryService, logg))
	})

	// Staff surface. Catalog writes are reserved for admins; the CRM
	// and inquiry queue are day-to-day staff work.
	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.RequireStaff(logg))

		admin := middleware.RequireRole(enums.RoleAdmin, logg)

		r.Route("/vehicles", func(r chi.Router) {
			r.Get("/", controllers.ListVehicles(vehicleService, logg))
			r.With(admin).Post("/", controllers.CreateVehicle(vehicleService, logg))
			r.Get("/{vehicleId}", controllers.GetVehicle(vehicleService, logg))
			r.With(admin).Patch("/{vehicleId}", controllers.UpdateVehicle(vehicleService, logg))
			r.With(admin).Delete("/{vehicleId}", controllers.DeleteVehicle(vehicleService, logg))
			r.With(admin).Patch("/{vehicleId}/inventory", controllers.ReplaceVehicleInventory(vehicleService, logg))
			r.Get("/{vehicleId}/offers/active", controllers.VehicleActiveOffers(offerService, logg))
		})

		r.Route("/offers", func(r chi.Router) {
			r.Get("/", controllers.ListOffers(offerService, logg))
			r.With(admin).Post("/", controllers.CreateOffer(offerService, logg))
			r.Get("/{offerId}", controllers.GetOffer(offerService, logg))
			r.With(admin).Patch("/{offerId}", controllers.UpdateOffer(offerService, logg))
			r.With(admin).Delete("/{offerId}", controllers.DeleteOffer(offerService, logg))
			r.With(admin).Patch("/{offerId}/toggle", controllers.SetOfferActive(offerService, logg))
			r.Post("/{offerId}/redemptions", controllers.RecordOfferRedemption(offerService, logg))
		})

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", controllers.ListCustomers(customerService, logg))
			r.Post("/", controllers.CreateCustomer(customerService, logg))
			r.Get("/{customerId}", controllers.GetCustomer(customerService, logg))
			r.Patch("/{customerId}", controllers.UpdateCustomer(customerService, logg))
			r.Delete("/{customerId}", controllers.DeleteCustomer(customerService, logg))
			r.Post("/{customerId}/purchases", controllers.AddCustomerPurchase(customerService, logg))
			r.Post("/{customerId}/test-drives", controllers.ScheduleTestDrive(customerService, logg))
		})
		r.Patch("/test-drives/{testDriveId}/status", controllers.UpdateTestDriveStatus(customerService, logg))

		r.Route("/inquiries", func(r chi.Router) {
			r.Get("/", controllers.ListInquiries(inquiryService, logg))
			r.Get("/stats", controllers.InquiryQueueStats(inquiryService, logg))
			r.Get("/{inquiryId}", controllers.GetInquiry(inquiryService, logg))
			r.Delete("/{inquiryId}", controllers.DeleteInquiry(inquiryService, logg))
			r.Patch("/{inquiryId}/status", controllers.UpdateInquiryStatus(inquiryService, logg))
			r.Post("/{inquiryId}/assign", controllers.AssignInquiry(inquiryService, logg))
			r.Post("/{inquiryId}/responses", controllers.RespondToInquiry(inquiryService, logg))
		})

		r.Route("/catalog", func(r chi.Router) {
			r.With(admin).Post("/refresh", controllers.CatalogRefresh(catalogService, logg))
			r.With(admin).Delete("/cache", controllers.CatalogInvalidate(catalogService, logg))
		})
	})

	return r
}
