package handlers

import (
	"context"
	"net/http"

	"fraud-scoring-service/internal/core/services"

	"github.com/gin-gonic/gin"
)

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	loader        *services.ArtifactLoader
	predictionSvc *services.PredictionService
	calculatorSvc *services.CalculatorService
	messageSvc    *services.MessageService
	itemSvc       *services.ItemService
	simpleSvc     *services.SimplePredictionService
	db            Pinger
}

func New(
	loader *services.ArtifactLoader,
	predictionSvc *services.PredictionService,
	calculatorSvc *services.CalculatorService,
	messageSvc *services.MessageService,
	itemSvc *services.ItemService,
	simpleSvc *services.SimplePredictionService,
	db Pinger,
) *Handler {
	return &Handler{
		loader:        loader,
		predictionSvc: predictionSvc,
		calculatorSvc: calculatorSvc,
		messageSvc:    messageSvc,
		itemSvc:       itemSvc,
		simpleSvc:     simpleSvc,
		db:            db,
	}
}

func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/", h.Root)
	r.GET("/healthz", h.Health)

	// Fraud model
	r.GET("/model/info", h.GetModelInfo)
	r.POST("/predict", h.PredictFraud)

	// Prediction audit log
	r.GET("/predictions", h.ListPredictions)
	r.GET("/predictions/:id", h.GetPrediction)

	// Demo endpoints
	r.POST("/predict/simple", h.PredictSimple)
	r.POST("/calculate", h.Calculate)
	r.POST("/messages", h.ProcessMessage)
	r.GET("/messages/echo", h.EchoMessage)
	r.GET("/items/:id", h.GetItem)
}

func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "fraud scoring API is up"})
}

// Health reports unhealthy until the model is loaded and, when configured,
// the database answers a ping.
func (h *Handler) Health(c *gin.Context) {
	status := h.loader.Describe()
	model := gin.H{"loaded": status.Loaded}
	if status.Loaded {
		model["artifact_kind"] = status.ArtifactKind
	}

	if !status.Loaded {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "model": model})
		return
	}

	database := "disabled"
	if h.db != nil {
		if err := h.db.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"model":    model,
				"database": "unreachable",
				"error":    err.Error(),
			})
			return
		}
		database = "ok"
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "model": model, "database": database})
}

func requestID(c *gin.Context) string {
	return c.GetString("request_id")
}
