// internal/api/router.go
package api

import (
	"context"
	"net/http"

	apperrors "lead-assistant/internal/common/errors"
	"lead-assistant/internal/common/logger"
	"lead-assistant/internal/common/observability"
	"lead-assistant/internal/services/conversation"
	"lead-assistant/internal/services/handoff"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Pinger is a dependency checked by /ready.
type Pinger interface {
	Name() string
	Ping(ctx context.Context) error
}

type Dependencies struct {
	ServiceName    string
	Conversation   *conversation.Handler
	Handoff        *handoff.Handler
	Observability  *observability.Observability
	MetricsHandler http.Handler
	Checks         []Pinger
	Logger         logger.Logger
}

type Handlers struct {
	conversation *conversation.Handler
	handoff      *handoff.Handler
	checks       []Pinger
	errors       *apperrors.ErrorHandler
	logger       logger.Logger
}

func NewHandlers(deps Dependencies) *Handlers {
	log := deps.Logger.WithFields(map[string]interface{}{"component": "api"})
	return &Handlers{
		conversation: deps.Conversation,
		handoff:      deps.Handoff,
		checks:       deps.Checks,
		errors:       apperrors.NewErrorHandler(log),
		logger:       log,
	}
}

// NewRouter builds the gin engine serving the operator page and the JSON API.
func NewRouter(deps Dependencies) *gin.Engine {
	handlers := NewHandlers(deps)

	router := gin.New()
	router.Use(gin.Recovery())
	if deps.ServiceName != "" {
		router.Use(otelgin.Middleware(deps.ServiceName))
	}
	if deps.Observability != nil {
		router.Use(deps.Observability.Middleware())
	}
	router.Use(requestID(), requestLogger(handlers.logger))

	router.GET("/", handlers.HandleIndex)
	router.GET("/health", handlers.HandleHealth)
	router.GET("/ready", handlers.HandleReady)
	if deps.MetricsHandler != nil {
		router.GET("/metrics", gin.WrapH(deps.MetricsHandler))
	}

	RegisterRoutes(router.Group("/api"), handlers)
	return router
}

// RegisterRoutes registers the lead endpoints on rg:
//
//	POST   /start_conversation
//	GET    /view_classification
//	GET    /handoff_status
//	POST   /handoff
//	DELETE /lead
func RegisterRoutes(rg *gin.RouterGroup, handlers *Handlers) {
	rg.POST("/start_conversation", handlers.HandleStartConversation)
	rg.GET("/view_classification", handlers.HandleViewClassification)
	rg.GET("/handoff_status", handlers.HandleHandoffStatus)
	rg.POST("/handoff", handlers.HandleHandoff)
	rg.DELETE("/lead", handlers.HandleResetLead)
}
