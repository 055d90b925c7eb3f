package http

import (
	"net/http"
	"net/url"
	"time"

	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const (
	upstreamTimeout    = 30 * time.Second
	healthProbeTimeout = 2 * time.Second
)

// GatewayServer is the public entry point. It authenticates callers and
// forwards requests to the users and orders services. Services verify the
// token again themselves, so a compromised gateway cannot mint identities.
type GatewayServer struct {
	usersURL  *url.URL
	ordersURL *url.URL
	identity  ports.IdentityProvider

	probeClient *http.Client
}

// NewGatewayServer creates a gateway forwarding to the given service base URLs.
func NewGatewayServer(usersURL, ordersURL string, identity ports.IdentityProvider) (*GatewayServer, error) {
	users, err := url.Parse(usersURL)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("users service url", err)
	}

	orders, err := url.Parse(ordersURL)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("orders service url", err)
	}

	return &GatewayServer{
		usersURL:    users,
		ordersURL:   orders,
		identity:    identity,
		probeClient: &http.Client{Timeout: healthProbeTimeout},
	}, nil
}

// RegisterRoutes attaches the proxy routes to the echo instance.
// Register and login pass through unauthenticated; everything else requires a
// valid bearer token before it reaches an upstream.
func (g *GatewayServer) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", g.Health)

	// The public API nests user routes under /v1/users; the users service
	// serves them at /v1, so the paths are rewritten on the way through.
	usersProxy := g.proxy(g.usersURL, map[string]string{
		"/v1/users/register": "/v1/register",
		"/v1/users/login":    "/v1/login",
		"/v1/users/profile":  "/v1/profile",
	})
	ordersProxy := g.proxy(g.ordersURL, nil)

	e.Group("/v1/users/register").Use(usersProxy)
	e.Group("/v1/users/login").Use(usersProxy)
	e.Group("/v1/users/profile").Use(AuthMiddleware(g.identity), usersProxy)
	e.Group("/v1/users").Use(AuthMiddleware(g.identity), usersProxy)
	e.Group("/v1/orders").Use(AuthMiddleware(g.identity), ordersProxy)
}

func (g *GatewayServer) proxy(target *url.URL, rewrite map[string]string) echo.MiddlewareFunc {
	return middleware.ProxyWithConfig(middleware.ProxyConfig{
		Balancer: middleware.NewRoundRobinBalancer([]*middleware.ProxyTarget{
			{URL: target},
		}),
		Rewrite: rewrite,
		Transport: &http.Transport{
			ResponseHeaderTimeout: upstreamTimeout,
		},
		ErrorHandler: func(ctx echo.Context, _ error) error {
			return ctx.JSON(http.StatusServiceUnavailable, envelope{
				Success: false,
				Error: &errorBody{
					Code:    "SERVICE_UNAVAILABLE",
					Message: "Service temporarily unavailable",
				},
			})
		},
	})
}

// Health handles GET /health, probing both upstreams.
func (g *GatewayServer) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]any{
		"status":  "healthy",
		"service": "gateway",
		"services": map[string]string{
			"users":  g.probe(g.usersURL),
			"orders": g.probe(g.ordersURL),
		},
	})
}

func (g *GatewayServer) probe(target *url.URL) string {
	resp, err := g.probeClient.Get(target.JoinPath("health").String())
	if err != nil {
		return "unavailable"
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "unavailable"
	}
	return "available"
}
