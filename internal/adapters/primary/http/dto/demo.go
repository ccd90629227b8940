package dto

import (
	"fraud-scoring-service/internal/core/domain"
)

type CalculateRequest struct {
	Number1   *float64 `json:"number1" binding:"required"`
	Number2   *float64 `json:"number2" binding:"required"`
	Operation string   `json:"operation" binding:"required"`
}

type CalculateResponse struct {
	Result     float64 `json:"result"`
	Operation  string  `json:"operation"`
	Expression string  `json:"expression"`
}

func ToCalculateResponse(c *domain.Calculation) CalculateResponse {
	return CalculateResponse{
		Result:     c.Result,
		Operation:  string(c.Operation),
		Expression: c.Expression,
	}
}

type MessageRequest struct {
	Text     string `json:"text" binding:"required,min=1,max=500"`
	Priority int    `json:"priority" binding:"omitempty,min=1,max=5"`
}

type MessageResponse struct {
	OriginalText  string `json:"original_text"`
	ProcessedText string `json:"processed_text"`
	CharCount     int    `json:"char_count"`
	WordCount     int    `json:"word_count"`
	PriorityLabel string `json:"priority_label"`
}

func ToMessageResponse(m *domain.ProcessedMessage) MessageResponse {
	return MessageResponse{
		OriginalText:  m.OriginalText,
		ProcessedText: m.ProcessedText,
		CharCount:     m.CharCount,
		WordCount:     m.WordCount,
		PriorityLabel: m.PriorityLabel,
	}
}

type ItemResponse struct {
	ItemID int     `json:"item_id"`
	Q      *string `json:"q,omitempty"`
}

func ToItemResponse(i *domain.Item) ItemResponse {
	return ItemResponse{ItemID: i.ID, Q: i.Query}
}

type SimplePredictionRequest struct {
	Features []float64 `json:"features" binding:"required,len=4"`
}

type SimplePredictionResponse struct {
	Prediction   int     `json:"prediction"`
	Probability  float64 `json:"probability"`
	ModelVersion string  `json:"model_version"`
}

func ToSimplePredictionResponse(p *domain.SimplePrediction) SimplePredictionResponse {
	return SimplePredictionResponse{
		Prediction:   p.Prediction,
		Probability:  p.Probability,
		ModelVersion: p.ModelVersion,
	}
}
