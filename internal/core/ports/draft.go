package ports

import (
	"context"

	"github.com/Ganderlu/taskmate/internal/core/domain"
)

// DraftExtractor turns a free-text prompt into a structured task draft
// for pre-filling the creation form. Implementations must treat the
// model output as untrusted and validate it like manual entry.
type DraftExtractor interface {
	ExtractDraft(ctx context.Context, prompt string) (domain.TaskDraft, error)
}
