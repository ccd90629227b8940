package handlers

import (
	"net/http"
	"strconv"

	"fraud-scoring-service/internal/adapters/primary/http/dto"
	"fraud-scoring-service/internal/adapters/primary/http/middleware"
	"fraud-scoring-service/internal/core/ports/output"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *Handler) PredictFraud(c *gin.Context) {
	var req dto.TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reqID := requestID(c)
	logger := middleware.Logger(c)
	logger.WithField("amount", *req.Amount).Info("transaction analysis requested")

	assessment, err := h.predictionSvc.Score(c.Request.Context(), reqID, req.ToTransaction())
	if err != nil {
		logger.WithError(err).Error("fraud prediction failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToFraudPredictionResponse(assessment, reqID))
}

func (h *Handler) GetModelInfo(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ToModelInfoResponse(h.loader.Describe(), h.predictionSvc.ModelVersion()))
}

func (h *Handler) ListPredictions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	filter := ports.PredictionListFilter{
		RiskLevel: c.Query("risk_level"),
		Label:     c.Query("label"),
		Limit:     limit,
		Offset:    offset,
	}

	page, err := h.predictionSvc.ListRecords(c.Request.Context(), filter)
	if err != nil {
		middleware.Logger(c).WithError(err).Error("list predictions failed")
		mapDomainError(c, err)
		return
	}

	items := make([]dto.PredictionRecordResponse, 0, len(page.Items))
	for _, r := range page.Items {
		items = append(items, dto.ToPredictionRecordResponse(r))
	}

	c.JSON(http.StatusOK, dto.ListPredictionRecordsResponse{
		Items:      items,
		Total:      page.Total,
		PageSize:   page.Limit,
		NextOffset: page.NextOffset(),
	})
}

func (h *Handler) GetPrediction(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid prediction id"})
		return
	}

	record, err := h.predictionSvc.GetRecord(c.Request.Context(), id)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPredictionRecordResponse(record))
}
