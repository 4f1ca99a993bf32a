package wizard

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/tidybook/tidybook/internal/domain"
)

// Direction is a presentation hint for step transitions. It never feeds
// back into navigation decisions.
type Direction string

const (
	DirectionNone     Direction = "none"
	DirectionForward  Direction = "forward"
	DirectionBackward Direction = "backward"
)

// UnknownStepError is returned when navigation targets a step the graph
// does not define.
type UnknownStepError struct {
	Step Step
}

func (e *UnknownStepError) Error() string {
	return fmt.Sprintf("unknown wizard step %q", e.Step)
}

// Engine walks the flow graph for one session. It holds the current
// step, the ancestor history taken via forward navigation, and the last
// transition direction. Guards are re-validated on every jump; a failing
// guard silently redirects to the step's fallback without touching
// history.
//
// The engine is not safe for concurrent use. A session serializes its
// user-triggered transitions, so each engine instance only ever sees one
// operation at a time.
type Engine struct {
	graph     map[Step]Definition
	current   Step
	history   []Step
	direction Direction
	logger    *slog.Logger
}

// NewEngine starts an engine at InitialStep.
func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		graph:     Graph,
		current:   InitialStep,
		direction: DirectionNone,
		logger:    logger,
	}
}

// Current returns the step the session is on.
func (e *Engine) Current() Step { return e.current }

// Direction returns the presentation direction of the last transition.
func (e *Engine) Direction() Direction { return e.direction }

// History returns a copy of the ancestor path, oldest first.
func (e *Engine) History() []Step { return slices.Clone(e.history) }

// Progress returns the cosmetic completion percentage for the current step.
func (e *Engine) Progress() int { return Progress(e.current) }

// resolve applies the guard of target for the given answers and returns
// the step actually landed on. A failing guard redirects to the
// definition's fallback (InitialStep when unset).
func (e *Engine) resolve(target Step, def Definition, answers domain.Answers) Step {
	if def.Guard == nil || def.Guard(answers) {
		return target
	}
	fallback := def.Fallback
	if fallback == "" {
		fallback = InitialStep
	}
	e.logger.Warn("wizard step guard rejected, redirecting",
		"requested", string(target),
		"fallback", string(fallback),
		"current", string(e.current),
	)
	return fallback
}

// GoToStep jumps to target, re-validating its guard. Unknown targets are
// an error and leave the engine untouched. Guard redirects land on the
// fallback and are not recorded in history; only transitions that reach
// the requested step push the departed step onto the ancestor path.
func (e *Engine) GoToStep(target Step, answers domain.Answers) error {
	def, ok := e.graph[target]
	if !ok {
		return &UnknownStepError{Step: target}
	}

	landed := e.resolve(target, def, answers)
	if landed == e.current {
		return nil
	}

	// Landing on an ancestor truncates the path there instead of
	// growing it, so history never contains the current step. This
	// holds for guard redirects too: a fallback that is already an
	// ancestor cuts the path back to it.
	if i := slices.Index(e.history, landed); i >= 0 {
		e.history = e.history[:i]
	} else if landed == target {
		e.history = append(e.history, e.current)
	}

	e.current = landed
	e.direction = DirectionForward
	return nil
}

// GoNext advances along the current step's Next resolver. It reports
// false, leaving the engine in place, when the step is terminal.
func (e *Engine) GoNext(answers domain.Answers) bool {
	def, ok := e.graph[e.current]
	if !ok || def.Next == nil {
		return false
	}

	target := def.Next(answers)
	if target == "" {
		return false
	}

	prev := e.current
	if err := e.GoToStep(target, answers); err != nil {
		e.logger.Warn("wizard next resolved to an undefined step",
			"current", string(e.current),
			"target", string(target),
		)
		return false
	}
	return e.current != prev
}

// GoBack pops the most recent ancestor and returns to it with backward
// direction. With an empty history it is a no-op. The destination's
// guard is still re-validated, so a step whose prerequisites were edited
// away redirects to its fallback.
func (e *Engine) GoBack(answers domain.Answers) {
	if len(e.history) == 0 {
		return
	}

	target := e.history[len(e.history)-1]
	e.history = e.history[:len(e.history)-1]

	def, ok := e.graph[target]
	if !ok {
		return
	}

	landed := e.resolve(target, def, answers)
	// A redirect may land on an earlier ancestor; cut the path there so
	// history never contains the current step.
	if i := slices.Index(e.history, landed); i >= 0 {
		e.history = e.history[:i]
	}

	e.current = landed
	e.direction = DirectionBackward
}
