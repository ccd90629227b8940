package handlers

import (
	"net/http"
	"strconv"

	"fraud-scoring-service/internal/adapters/primary/http/dto"
	"fraud-scoring-service/internal/core/domain"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Calculate(c *gin.Context) {
	var req dto.CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := h.calculatorSvc.Calculate(*req.Number1, *req.Number2, domain.Operation(req.Operation))
	c.JSON(http.StatusOK, dto.ToCalculateResponse(result))
}

func (h *Handler) ProcessMessage(c *gin.Context) {
	var req dto.MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := h.messageSvc.Process(req.Text, domain.MessagePriority(req.Priority))
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMessageResponse(msg))
}

func (h *Handler) EchoMessage(c *gin.Context) {
	text, ok := c.GetQuery("text")
	if !ok || text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrInvalidMessage.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": text})
}

func (h *Handler) GetItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrInvalidItemID.Error()})
		return
	}

	var q *string
	if v, ok := c.GetQuery("q"); ok {
		q = &v
	}

	item, err := h.itemSvc.Get(id, q)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToItemResponse(item))
}

func (h *Handler) PredictSimple(c *gin.Context) {
	var req dto.SimplePredictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prediction, err := h.simpleSvc.Predict(req.Features)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSimplePredictionResponse(prediction))
}
