package services

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"fraud-scoring-service/internal/core/domain"
)

type MessageService struct {
	upper cases.Caser
}

func NewMessageService() *MessageService {
	return &MessageService{upper: cases.Upper(language.Und)}
}

// Process upper-cases the trimmed text and reports its rune and word counts.
func (s *MessageService) Process(text string, priority domain.MessagePriority) (*domain.ProcessedMessage, error) {
	chars := utf8.RuneCountInString(text)
	if chars == 0 || chars > domain.MaxMessageLength {
		return nil, domain.ErrInvalidMessage
	}
	if priority == 0 {
		priority = domain.MinMessagePriority
	}
	if !priority.IsValid() {
		return nil, domain.ErrInvalidPriority
	}

	return &domain.ProcessedMessage{
		OriginalText:  text,
		ProcessedText: s.upper.String(strings.TrimSpace(text)),
		CharCount:     chars,
		WordCount:     len(strings.Fields(text)),
		PriorityLabel: priority.Label(),
	}, nil
}
