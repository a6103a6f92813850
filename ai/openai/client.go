package openai

import (
	"context"
	"strings"
	"time"

	"github.com/poiesic/medenrich/ai"
)

// timeoutFor bounds every service call with a per-call deadline.
type timeoutFor time.Duration

func (t timeoutFor) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, time.Duration(t))
}

// classifyServiceError maps transport errors to the ai sentinel taxonomy.
// Rate-limit responses surface as ai.ErrRateLimited; everything else is
// passed through for the caller to treat as a permanent condition.
func classifyServiceError(err error) error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "429") || strings.Contains(msg, "rate limit") {
		return ai.ErrRateLimited
	}
	if strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline") {
		return ai.ErrTimeout
	}
	return err
}

// isLetter returns true if the rune is an ASCII letter.
func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
