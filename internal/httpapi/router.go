// Package httpapi exposes the peula services over JSON HTTP.
package httpapi

import (
	"github.com/gin-gonic/gin"

	"github.com/tzofim/peula/internal/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	CORSOrigins []string

	PeulaHandler           *PeulaHandler
	FeedbackHandler        *FeedbackHandler
	TrainingExampleHandler *TrainingExampleHandler
	AnchorHandler          *AnchorHandler
	TemplateHandler        *TemplateHandler
	HealthHandler          *HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	useJSONFieldNames()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(cfg.Log))
	r.Use(CORS(cfg.CORSOrigins))

	if cfg.HealthHandler != nil {
		r.GET("/healthz", cfg.HealthHandler.Health)
	}

	api := r.Group("/api")
	{
		if h := cfg.PeulaHandler; h != nil {
			api.GET("/peulot", h.List)
			api.GET("/peulot/:id", h.Get)
			api.POST("/peulot/generate", h.Generate)
			api.POST("/peulot/:id/export", h.Export)
			api.POST("/peulot/:id/regenerate-section", h.RegenerateSection)
			api.DELETE("/peulot/:id", h.Delete)
		}

		if h := cfg.FeedbackHandler; h != nil {
			api.GET("/peulot/:id/feedback", h.ListForPeula)
			api.POST("/peulot/:id/feedback", h.CreateForPeula)
			api.GET("/feedback", h.ListAll)
			api.POST("/feedback", h.Create)
			api.DELETE("/feedback/:id", h.Delete)
		}

		if h := cfg.TrainingExampleHandler; h != nil {
			api.GET("/training-examples", h.List)
			api.POST("/training-examples", h.Create)
			api.DELETE("/training-examples/:id", h.Delete)
			api.GET("/training-examples/insights", h.Insights)
			api.POST("/training-examples/import-from-docs", h.ImportFromDocs)
		}

		if h := cfg.AnchorHandler; h != nil {
			api.GET("/tzofim-anchors", h.List)
			api.POST("/tzofim-anchors", h.Create)
			api.POST("/tzofim-anchors/reorder", h.Reorder)
			api.PATCH("/tzofim-anchors/:id", h.Update)
			api.DELETE("/tzofim-anchors/:id", h.Delete)
		}

		if h := cfg.TemplateHandler; h != nil {
			api.GET("/templates", h.List)
			api.GET("/templates/:id", h.Get)
		}
	}

	return r
}
