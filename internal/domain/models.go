// Package domain defines the transient, request-scoped value types exchanged
// between the webhook layer, the relay orchestrator, and the outbound clients.
// Nothing here is persisted; every value lives for a single inbound update.
package domain

// CompletionStatus tags the outcome of one completion call. The three states
// are deliberately distinct: a policy decline (the model answered with the
// reserved sentinel) is not an infrastructure failure, and neither may be
// forwarded to the chat.
type CompletionStatus int

const (
	// CompletionAnswered means the service produced usable answer text.
	CompletionAnswered CompletionStatus = iota
	// CompletionDeclined means the model refused within its rules (sentinel).
	CompletionDeclined
	// CompletionFailed means the call failed at the transport/service level,
	// or the response lacked the expected output shape.
	CompletionFailed
)

// String returns a stable label, used for logs and metric values.
func (s CompletionStatus) String() string {
	switch s {
	case CompletionAnswered:
		return "answered"
	case CompletionDeclined:
		return "declined"
	default:
		return "failed"
	}
}

// CompletionResult is the tagged result of one completion request. Text is
// populated only when Status is CompletionAnswered, and is already trimmed.
type CompletionResult struct {
	Status CompletionStatus
	Text   string
}

// Answered constructs a successful result carrying trimmed answer text.
func Answered(text string) CompletionResult {
	return CompletionResult{Status: CompletionAnswered, Text: text}
}

// Declined constructs a policy-refusal result.
func Declined() CompletionResult { return CompletionResult{Status: CompletionDeclined} }

// Failed constructs a transport/shape-failure result.
func Failed() CompletionResult { return CompletionResult{Status: CompletionFailed} }

// Reply is one outbound message handed to the reply dispatcher. There is no
// lifecycle beyond a single send attempt and no retry state.
type Reply struct {
	ChatID int64
	Text   string
}
