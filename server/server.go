package server

import (
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/jrsteele09/go-social-login/internal/config"
	"github.com/jrsteele09/go-social-login/providers"
	"github.com/jrsteele09/go-social-login/sessions"
	"github.com/jrsteele09/go-social-login/socialaccount"
	"github.com/rs/zerolog/log"
)

type Server struct {
	env         string // Environment (e.g., "DEV", "PROD")
	mux         *http.ServeMux
	routes      []string
	config      config.Config
	registry    *providers.Registry
	logins      *socialaccount.Service
	repos       socialaccount.Repos
	appResolver *socialaccount.AppResolver
	sessions    sessions.Repo
	serializer  socialaccount.Serializer

	oidcProviders     map[string]*oidc.Provider // issuer -> discovered provider
	oidcProvidersLock sync.RWMutex
}

func New(config config.Config, registry *providers.Registry, repos socialaccount.Repos, emails socialaccount.EmailSetup, sessionRepo sessions.Repo) (*Server, error) {
	loginService, err := socialaccount.NewService(repos, emails, storeTokensOption(config)...)
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create login service: %w", err)
	}

	appResolver, err := socialaccount.NewAppResolver(repos.Apps, config.GetAppCacheTTL())
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create app resolver: %w", err)
	}

	s := &Server{
		mux:           http.NewServeMux(),
		config:        config,
		registry:      registry,
		logins:        loginService,
		repos:         repos,
		appResolver:   appResolver,
		sessions:      sessionRepo,
		serializer:    socialaccount.JSONSerializer{},
		oidcProviders: make(map[string]*oidc.Provider),
	}
	s.env = config.GetEnv()

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func storeTokensOption(config config.Config) []socialaccount.ServiceOption {
	if config.GetStoreTokens() {
		return nil
	}
	return []socialaccount.ServiceOption{socialaccount.WithoutTokenStorage()}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Printf("[%-19s] %s\n", displayMethod, path)
}

// Helper function to determine the scheme (http/https)
func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}

// siteFromHost strips any port from the request host. Apps are bound to
// bare host names.
func siteFromHost(host string) string {
	splitHost := strings.SplitN(host, ":", 2)
	return splitHost[0]
}
