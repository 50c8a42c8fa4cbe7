package spin

import (
	"context"
	"time"

	"ginraidee/logging"
	"ginraidee/spin-cli/internal/domain"
)

type FeedbackSender interface {
	Feedback(ctx context.Context, userID string, foodID int, action domain.Action) error
}

// Recorder sends like/dislike decisions. Delivery is best-effort: one
// attempt, failures are logged and dropped.
type Recorder struct {
	api     FeedbackSender
	exclude *ExclusionSet
	timeout time.Duration
}

func NewRecorder(api FeedbackSender, exclude *ExclusionSet, timeout time.Duration) *Recorder {
	return &Recorder{api: api, exclude: exclude, timeout: timeout}
}

// Record excludes disliked items from the next spin before sending, so the
// exclusion holds even when the request fails.
func (r *Recorder) Record(ctx context.Context, userID string, foodID int, action domain.Action) {
	if !action.Valid() {
		logging.Warn().Str("action", string(action)).Msg("ignoring unknown feedback action")
		return
	}
	if action == domain.ActionDislike {
		r.exclude.Add(foodID)
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	if err := r.api.Feedback(ctx, userID, foodID, action); err != nil {
		logging.Warn().Err(err).Int("food_id", foodID).Str("action", string(action)).Msg("feedback not recorded")
	}
}
