package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/AdminHomeSmile/scg-customer-screening/internal/http/handlers"
	httpMW "github.com/AdminHomeSmile/scg-customer-screening/internal/http/middleware"
	"github.com/AdminHomeSmile/scg-customer-screening/internal/http/response"
	"github.com/AdminHomeSmile/scg-customer-screening/internal/platform/apierr"
	"github.com/AdminHomeSmile/scg-customer-screening/internal/platform/logger"
)

type RouterConfig struct {
	Log           *logger.Logger
	ServiceName   string
	AllowOrigins  []string
	LeadHandler   *httpH.LeadHandler
	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.TraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.AllowOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	// Lead intake, served at the root and at the script-style /exec path
	if cfg.LeadHandler != nil {
		for _, p := range []string{"/", "/exec"} {
			r.GET(p, cfg.LeadHandler.Status)
			r.POST(p, cfg.LeadHandler.Submit)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		err := fmt.Errorf("no route for %s %s", c.Request.Method, c.Request.URL.Path)
		response.RespondError(c, http.StatusNotFound, "not_found", apierr.New(http.StatusNotFound, "not_found", err))
	})
	return r
}
