package server

func (s *Server) initRoutes() {
	// LOCAL LOGIN
	s.RegisterRouteFunc("POST "+RouteAuthLogin, s.LocalLoginHandler())
	s.RegisterRouteFunc("GET "+RouteAuthLogout, s.LogoutHandler())

	// SOCIAL HANDSHAKE
	s.RegisterRouteHandler("GET "+RouteSocialLogin, ChainMiddleware(s.SocialLoginHandler(), s.HTTPMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteSocialCallback, ChainMiddleware(s.SocialCallbackHandler(), s.HTTPMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteSocialCallback, ChainMiddleware(s.SocialCallbackHandler(), s.HTTPMiddleware()...)) // For form_post response mode

	// SIGNUP CONTINUATION
	s.RegisterRouteFunc("GET "+RouteSocialSignup, s.SocialSignupGetHandler())
	s.RegisterRouteFunc("POST "+RouteSocialSignup, s.SocialSignupPostHandler())

	// ACCOUNT MANAGEMENT
	s.RegisterRouteFunc("GET "+RouteSocialProviders, s.ProvidersHandler())
	s.RegisterRouteFunc("GET "+RouteSocialConnections, s.ConnectionsHandler())
}
