package services

import (
	"fmt"
	"strconv"

	log "github.com/sirupsen/logrus"

	"fraud-scoring-service/internal/core/domain"
)

type CalculatorService struct{}

func NewCalculatorService() *CalculatorService {
	return &CalculatorService{}
}

// Calculate applies op to a and b. Division by zero and unknown operators
// yield a zero result whose expression describes the problem.
func (s *CalculatorService) Calculate(a, b float64, op domain.Operation) *domain.Calculation {
	log.WithFields(log.Fields{
		"number1":   a,
		"operation": op,
		"number2":   b,
	}).Info("calculation requested")

	var result float64
	switch op {
	case domain.OpAdd:
		result = a + b
	case domain.OpSubtract:
		result = a - b
	case domain.OpMultiply:
		result = a * b
	case domain.OpDivide:
		if b == 0 {
			log.Warn("division by zero attempted")
			return &domain.Calculation{
				Result:     0,
				Operation:  op,
				Expression: "error: " + domain.ErrDivisionByZero.Error(),
			}
		}
		result = a / b
	default:
		log.WithField("operation", op).Error("invalid operation")
		return &domain.Calculation{
			Result:     0,
			Operation:  op,
			Expression: fmt.Sprintf("%s: %s", domain.ErrInvalidOperation, op),
		}
	}

	return &domain.Calculation{
		Result:     result,
		Operation:  op,
		Expression: fmt.Sprintf("%s %s %s = %s", formatNumber(a), op, formatNumber(b), formatNumber(result)),
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
