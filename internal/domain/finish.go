package domain

import (
	"log/slog"
	"time"
)

// FinishState is what a finish predicate sees before a batch is written.
type FinishState struct {
	Elapsed   time.Duration
	Mutations int
	Solutions int
	Remaining int
	Promising bool
}

// FinishFunc decides whether the search stops.
type FinishFunc func(state FinishState) bool

// FinishConfig holds the budgets of the default predicate. Zero budgets are
// unlimited.
type FinishConfig struct {
	StopOnSolution bool
	MaxDuration    time.Duration
	MaxMutations   int
	StaleStreak    int
}

// DefaultFinish stops on the first solution (when configured), when a budget
// is spent, or after StaleStreak consecutive checks found nothing promising.
func DefaultFinish(cfg FinishConfig) FinishFunc {
	streak := 0

	return func(state FinishState) bool {
		switch {
		case cfg.StopOnSolution && state.Solutions > 0:
			slog.Info("finishing: solution found", "solutions", state.Solutions)
			return true
		case cfg.MaxDuration > 0 && state.Elapsed >= cfg.MaxDuration:
			slog.Info("finishing: duration budget spent", "elapsed", state.Elapsed)
			return true
		case cfg.MaxMutations > 0 && state.Mutations >= cfg.MaxMutations:
			slog.Info("finishing: mutation budget spent", "mutations", state.Mutations)
			return true
		}

		if state.Promising {
			streak = 0
			return false
		}

		streak++

		if streak >= max(cfg.StaleStreak, 1) {
			slog.Info("finishing: nothing promising left", "streak", streak)
			return true
		}

		return false
	}
}
