package router

import (
	"net/http"
	"strings"

	"shopkart/internal/handler"
	"shopkart/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	productHandler *handler.ProductHandler,
	voucherHandler *handler.VoucherHandler,
	checkoutHandler *handler.CheckoutHandler,
	orderHandler *handler.OrderHandler,
	userHandler *handler.UserHandler,
	addressHandler *handler.AddressHandler,
	categoryHandler *handler.CategoryHandler,
	apiKey string,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Product routes: a collection listing and per-product lookups.
	productRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/products" && r.URL.Path != "/api/products/" {
			productHandler.GetByID(w, r)
			return
		}
		productHandler.GetAll(w, r)
	}
	mux.HandleFunc("/api/products", productRouteHandler)
	mux.HandleFunc("/api/products/", productRouteHandler)

	// Voucher routes: the storefront resolution endpoints live under fixed
	// paths; everything else is the admin console CRUD.
	voucherRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/voucher/available":
			voucherHandler.Available(w, r)
			return
		case "/api/voucher/apply":
			voucherHandler.Apply(w, r)
			return
		case "/api/voucher", "/api/voucher/":
			switch r.Method {
			case http.MethodGet:
				voucherHandler.GetAll(w, r)
			case http.MethodPost:
				voucherHandler.Create(w, r)
			default:
				http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			}
			return
		}

		// /api/voucher/{id}
		switch r.Method {
		case http.MethodPut:
			voucherHandler.Update(w, r)
		case http.MethodDelete:
			voucherHandler.Delete(w, r)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}
	mux.HandleFunc("/api/voucher", voucherRouteHandler)
	mux.HandleFunc("/api/voucher/", voucherRouteHandler)

	// Checkout session routes.
	mux.HandleFunc("/api/checkout/session", checkoutHandler.Session)
	mux.HandleFunc("/api/checkout/voucher", checkoutHandler.ApplyVoucher)
	mux.HandleFunc("/api/checkout/points", checkoutHandler.SetPoints)

	// Order routes: the two terminal paths plus per-order lookups.
	orderRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/order/cash-on-delivery":
			orderHandler.CashOnDelivery(w, r)
			return
		case "/api/order/checkout":
			orderHandler.Checkout(w, r)
			return
		}

		if strings.HasPrefix(r.URL.Path, "/api/order/") && r.URL.Path != "/api/order/" {
			orderHandler.GetByID(w, r)
			return
		}

		http.Error(w, "not found", http.StatusNotFound)
	}
	mux.HandleFunc("/api/order", orderRouteHandler)
	mux.HandleFunc("/api/order/", orderRouteHandler)

	// User routes.
	mux.HandleFunc("/api/user/user-details", userHandler.Details)

	// Address routes.
	addressRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/address" || r.URL.Path == "/api/address/" {
			switch r.Method {
			case http.MethodGet:
				addressHandler.List(w, r)
			case http.MethodPost:
				addressHandler.Create(w, r)
			default:
				http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			}
			return
		}

		// /api/address/{id}
		switch r.Method {
		case http.MethodPut:
			addressHandler.Update(w, r)
		case http.MethodDelete:
			addressHandler.Delete(w, r)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}
	mux.HandleFunc("/api/address", addressRouteHandler)
	mux.HandleFunc("/api/address/", addressRouteHandler)

	// Category routes (admin console).
	categoryRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/category" || r.URL.Path == "/api/category/" {
			switch r.Method {
			case http.MethodGet:
				categoryHandler.GetAll(w, r)
			case http.MethodPost:
				categoryHandler.Create(w, r)
			default:
				http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			}
			return
		}

		// /api/category/{id}
		switch r.Method {
		case http.MethodPut:
			categoryHandler.Update(w, r)
		case http.MethodDelete:
			categoryHandler.Delete(w, r)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}
	mux.HandleFunc("/api/category", categoryRouteHandler)
	mux.HandleFunc("/api/category/", categoryRouteHandler)

	// Apply middleware in order: Recovery -> Logging -> CORS -> APIKeyAuth
	var h http.Handler = mux
	h = middleware.APIKeyAuth(apiKey, logger)(h)
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
