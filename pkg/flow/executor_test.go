package flow_test

import (
	"context"
	"testing"

	"github.com/afawcett/flowextensions/pkg/api"
	"github.com/afawcett/flowextensions/pkg/flow"
	"github.com/afawcett/flowextensions/pkg/flowtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEngine() *flowtest.Engine {
	engine := flowtest.NewEngine()
	engine.RegisterFlowFunc("double",
		func(_ context.Context, in api.Args) (api.Args, error) {
			return api.Args{
				"result": in.GetInt("value", 0) * 2,
				"extra":  "ignored",
			}, nil
		})
	engine.RegisterFlow("silent", api.Args{})
	engine.FailFlow("broken", "flow blew up")
	return engine
}

func TestExecutorCollectsDeclaredOutputs(t *testing.T) {
	ctx := context.Background()
	exec := flow.NewExecutor(testEngine())

	specs := api.OutputSpecs{}
	specs.Add("result", true)

	res, err := exec.Execute(ctx, "double", api.Args{"value": 21}, specs)
	require.NoError(t, err)

	// only declared outputs come back, even when the flow produced more
	assert.Equal(t, api.Args{"result": 42}, res)
}

func TestExecutorMissingRequired(t *testing.T) {
	ctx := context.Background()
	exec := flow.NewExecutor(testEngine())

	specs := api.OutputSpecs{}
	specs.Add("result", true)

	_, err := exec.Execute(ctx, "silent", api.Args{}, specs)
	assert.ErrorIs(t, err, flow.ErrMissingOutput)
	assert.Contains(t, err.Error(), "result")
}

func TestExecutorMissingOptional(t *testing.T) {
	ctx := context.Background()
	exec := flow.NewExecutor(testEngine())

	specs := api.OutputSpecs{}
	specs.Add("result", false)

	res, err := exec.Execute(ctx, "silent", api.Args{}, specs)
	require.NoError(t, err)
	assert.NotContains(t, res, api.Name("result"))
}

func TestExecutorNoDeclaredOutputs(t *testing.T) {
	ctx := context.Background()
	exec := flow.NewExecutor(testEngine())

	res, err := exec.Execute(
		ctx, "double", api.Args{"value": 1}, api.OutputSpecs{},
	)
	require.NoError(t, err)
	assert.Empty(t, res)
}

func TestExecutorUnknownFlow(t *testing.T) {
	ctx := context.Background()
	exec := flow.NewExecutor(testEngine())

	_, err := exec.Execute(ctx, "missing", api.Args{}, api.OutputSpecs{})
	assert.ErrorIs(t, err, flowtest.ErrFlowNotFound)
}

func TestExecutorFlowFailure(t *testing.T) {
	ctx := context.Background()
	exec := flow.NewExecutor(testEngine())

	_, err := exec.Execute(ctx, "broken", api.Args{}, api.OutputSpecs{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "flow blew up")
}
