package ledger

import (
	"fmt"

	"github.com/joeymizrahi/personal-finance-app/internal/apperrors"
)

// stepLog tracks which writes of a multi-call sequence already reached the
// remote store. The store has no transactions, so when a later step fails the
// committed steps cannot be rolled back; the log turns that situation into a
// PartialWriteError mechanically instead of hand-writing each message.
type stepLog struct {
	committed []string
}

func (l *stepLog) commit(name string) {
	l.committed = append(l.committed, name)
}

// fail wraps err for the failing step. With no committed steps this is an
// ordinary wrapped error; once anything committed it becomes a
// PartialWriteError that names the rows needing manual remediation.
func (l *stepLog) fail(step string, err error) error {
	if len(l.committed) == 0 {
		return fmt.Errorf("%s: %w", step, err)
	}
	return &apperrors.PartialWriteError{
		Committed: append([]string(nil), l.committed...),
		Step:      step,
		Err:       err,
	}
}
