package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Auth Routes - local login & logout
	RouteAuthLogin  = "/auth/login"
	RouteAuthLogout = "/auth/logout"

	// Social Routes - handshake
	RouteSocialLogin    = "/social/{provider}/login"
	RouteSocialCallback = "/social/{provider}/callback"

	// Social Routes - signup continuation
	RouteSocialSignup = "/social/signup"

	// Social Routes - account management
	RouteSocialProviders   = "/social/providers"
	RouteSocialConnections = "/social/connections"
)

// socialCallbackPath builds the concrete callback path for a provider
func socialCallbackPath(provider string) string {
	return "/social/" + provider + "/callback"
}
