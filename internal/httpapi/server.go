// Package httpapi exposes the storefront over JSON HTTP. The session token
// travels in the "session" cookie and the visitor's cart key in the "cart"
// cookie.
package httpapi

import (
	"net/http"

	"github.com/nikolayk812/roze-storefront/internal/cart"
	"github.com/nikolayk812/roze-storefront/internal/checkout"
	"github.com/nikolayk812/roze-storefront/internal/service"
	"go.uber.org/zap"
)

const (
	sessionCookie = "session"
	cartCookie    = "cart"

	maxJSONBody   = 1 << 20
	maxUploadSize = 10 << 20
)

type Deps struct {
	Catalog  *service.Catalog
	Auth     *service.Auth
	Profiles *service.Profiles
	Carts    *cart.Registry
	WhatsApp *checkout.WhatsApp

	// Images serves uploaded images under /images/ when object storage is not
	// configured. Nil leaves the route unregistered.
	Images http.Handler

	Logger        *zap.Logger
	SecureCookies bool
}

type Server struct {
	catalog  *service.Catalog
	auth     *service.Auth
	profiles *service.Profiles
	carts    *cart.Registry
	whatsapp *checkout.WhatsApp
	images   http.Handler

	log           *zap.Logger
	secureCookies bool
}

func NewServer(deps Deps) *Server {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &Server{
		catalog:       deps.Catalog,
		auth:          deps.Auth,
		profiles:      deps.Profiles,
		carts:         deps.Carts,
		whatsapp:      deps.WhatsApp,
		images:        deps.Images,
		log:           log,
		secureCookies: deps.SecureCookies,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	mux.HandleFunc("POST /api/auth/signup", s.handleSignUp)
	mux.HandleFunc("POST /api/auth/login", s.handleSignIn)
	mux.HandleFunc("POST /api/auth/logout", s.handleSignOut)
	mux.Handle("GET /api/auth/session", s.requireSession(http.HandlerFunc(s.handleSession)))

	mux.HandleFunc("GET /api/products", s.handleListProducts)
	mux.HandleFunc("GET /api/products/{id}", s.handleGetProduct)
	mux.HandleFunc("GET /api/categories", s.handleProductCategories)

	mux.Handle("GET /api/admin/categories", s.requireSession(http.HandlerFunc(s.handleListCategories)))
	mux.Handle("POST /api/admin/categories", s.requireSession(http.HandlerFunc(s.handleAddCategory)))
	mux.Handle("POST /api/admin/products", s.requireSession(http.HandlerFunc(s.handleCreateProduct)))
	mux.Handle("PUT /api/admin/products/{id}", s.requireSession(http.HandlerFunc(s.handleUpdateProduct)))
	mux.Handle("DELETE /api/admin/products/{id}", s.requireSession(http.HandlerFunc(s.handleDeleteProduct)))

	mux.Handle("GET /api/profile", s.requireSession(http.HandlerFunc(s.handleGetProfile)))
	mux.Handle("POST /api/profile", s.requireSession(http.HandlerFunc(s.handleCreateProfile)))
	mux.Handle("PUT /api/profile", s.requireSession(http.HandlerFunc(s.handleUpdateProfile)))

	mux.HandleFunc("GET /api/cart", s.handleGetCart)
	mux.HandleFunc("POST /api/cart/items", s.handleAddToCart)
	mux.HandleFunc("PUT /api/cart/items/{id}", s.handleSetQuantity)
	mux.HandleFunc("DELETE /api/cart/items/{id}", s.handleRemoveFromCart)

	mux.Handle("POST /api/checkout", s.requireSession(http.HandlerFunc(s.handleCheckout)))

	if s.images != nil {
		mux.Handle("GET /images/", s.images)
	}

	return s.logRequests(s.recoverPanic(mux))
}
