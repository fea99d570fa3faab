package tokens

import (
	"fmt"

	"github.com/r-maier/finetune-prep-tui/internal/config"
	"github.com/r-maier/finetune-prep-tui/internal/models"
)

// Accountant computes token statistics and cost estimates for a dataset
// using an injected counting strategy. It holds no per-run state: each
// Account call is a pure function of its input.
type Accountant struct {
	counter Counter
	limits  config.Limits
}

// New creates an accountant. A nil counter falls back to the heuristic
// estimator.
func New(counter Counter, limits config.Limits) *Accountant {
	if counter == nil {
		counter = Heuristic{}
	}
	return &Accountant{counter: counter, limits: limits}
}

// ConversationStats prices a single conversation. The total is
//
//	sum over messages of (message overhead + role tokens + content tokens)
//	+ reply overhead
//
// and the assistant count is message overhead + content tokens summed over
// assistant messages only.
func (a *Accountant) ConversationStats(conv models.Conversation) (models.TokenStats, error) {
	var stats models.TokenStats
	for j, msg := range conv.Messages {
		roleTokens, err := a.counter.Count(msg.Role)
		if err != nil {
			return models.TokenStats{}, fmt.Errorf("message %d: %w", j, err)
		}
		contentTokens, err := a.counter.Count(a.contentOf(msg))
		if err != nil {
			return models.TokenStats{}, fmt.Errorf("message %d: %w", j, err)
		}

		stats.Total += a.counter.MessageOverhead() + roleTokens + contentTokens
		if msg.IsAssistant() {
			stats.Assistant += a.counter.MessageOverhead() + contentTokens
		}
	}
	stats.Total += a.counter.ReplyOverhead()
	return stats, nil
}

// contentOf returns the text priced for a message: its content, or the
// raw function call payload when there is no content.
func (a *Accountant) contentOf(msg models.Message) string {
	if msg.Content != "" {
		return msg.Content
	}
	return string(msg.FunctionCall)
}

// Account prices the whole dataset. It either returns a complete report
// or an error identifying the example and message the counter could not
// price.
func (a *Accountant) Account(examples []models.Example) (*models.Report, error) {
	report := &models.Report{
		NumExamples: len(examples),
		PerExample:  make([]models.TokenStats, 0, len(examples)),
	}

	for i, ex := range examples {
		stats, err := a.ConversationStats(ex.Conversation)
		if err != nil {
			return nil, fmt.Errorf("example %d: %w", i, err)
		}
		report.PerExample = append(report.PerExample, stats)

		if !ex.Conversation.HasRole(models.RoleSystem) {
			report.MissingSystem++
		}
		if !ex.Conversation.HasRole(models.RoleUser) {
			report.MissingUser++
		}
	}

	totals := report.TotalValues()
	report.Total = models.Describe(totals)
	report.Assistant = models.Describe(report.AssistantValues())
	report.Truncated = models.CountOver(totals, a.limits.MaxContextLength)
	report.Cost = EstimateCost(totals, a.limits)

	return report, nil
}
