package domain

// Operation is an arithmetic operator accepted by the calculator
type Operation string

const (
	OpAdd      Operation = "+"
	OpSubtract Operation = "-"
	OpMultiply Operation = "*"
	OpDivide   Operation = "/"
)

// IsValid checks if the operation is supported
func (o Operation) IsValid() bool {
	switch o {
	case OpAdd, OpSubtract, OpMultiply, OpDivide:
		return true
	}
	return false
}

type Calculation struct {
	Result     float64   `json:"result"`
	Operation  Operation `json:"operation"`
	Expression string    `json:"expression"`
}

// MessagePriority ranks a message from 1 (lowest) to 5 (highest)
type MessagePriority int

const (
	MinMessagePriority MessagePriority = 1
	MaxMessagePriority MessagePriority = 5
	MaxMessageLength                   = 500
)

var priorityLabels = map[MessagePriority]string{
	1: "LOW",
	2: "NORMAL",
	3: "MEDIUM",
	4: "HIGH",
	5: "CRITICAL",
}

func (p MessagePriority) IsValid() bool {
	return p >= MinMessagePriority && p <= MaxMessagePriority
}

func (p MessagePriority) Label() string {
	return priorityLabels[p]
}

type ProcessedMessage struct {
	OriginalText  string `json:"original_text"`
	ProcessedText string `json:"processed_text"`
	CharCount     int    `json:"char_count"`
	WordCount     int    `json:"word_count"`
	PriorityLabel string `json:"priority_label"`
}

type Item struct {
	ID    int     `json:"item_id"`
	Query *string `json:"q,omitempty"`
}

// SimplePrediction is the output of the placeholder four-feature model.
type SimplePrediction struct {
	Prediction   int     `json:"prediction"`
	Probability  float64 `json:"probability"`
	ModelVersion string  `json:"model_version"`
}
