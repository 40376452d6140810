package flow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/afawcett/flowextensions/pkg/api"
	"github.com/afawcett/flowextensions/pkg/log"
)

// Executor runs a resolved flow with the given inputs and collects the
// declared outputs. Implementations other than the standard one are
// injected for testing
type Executor interface {
	Execute(
		context.Context, api.FlowName, api.Args, api.OutputSpecs,
	) (api.Args, error)
}

// ErrMissingOutput indicates a required output was not produced
var ErrMissingOutput = errors.New("required output not produced")

type executor struct {
	interp Interpreter
}

var _ Executor = (*executor)(nil)

// NewExecutor creates the standard Executor: create a session for the
// flow, start it, then read every declared output back as a session
// variable. Absent optional outputs are omitted from the result
func NewExecutor(interp Interpreter) Executor {
	return &executor{interp: interp}
}

func (e *executor) Execute(
	ctx context.Context, name api.FlowName, inputs api.Args,
	outputs api.OutputSpecs,
) (api.Args, error) {
	sess, err := e.interp.CreateSession(ctx, name, inputs)
	if err != nil {
		slog.Error("Failed to create session",
			log.Flow(name), log.Error(err))
		return nil, err
	}
	slog.Debug("Session created",
		log.Flow(name), log.Session(sess.ID()))

	if err := sess.Start(ctx); err != nil {
		slog.Error("Flow failed",
			log.Flow(name), log.Session(sess.ID()), log.Error(err))
		return nil, err
	}

	res := api.Args{}
	for _, output := range outputs.Names() {
		val, ok, err := sess.Variable(ctx, output)
		if err != nil {
			slog.Error("Failed to read output",
				log.Flow(name), log.Session(sess.ID()),
				log.Output(output), log.Error(err))
			return nil, err
		}
		if !ok {
			if outputs.Required(output) {
				return nil, fmt.Errorf("%w: %s",
					ErrMissingOutput, output)
			}
			continue
		}
		res[output] = val
	}

	slog.Debug("Flow completed",
		log.Flow(name), log.Session(sess.ID()),
		slog.Int("outputs", len(res)))
	return res, nil
}
