package flow_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/afawcett/flowextensions/pkg/api"
	"github.com/afawcett/flowextensions/pkg/flow"
	"github.com/afawcett/flowextensions/pkg/flowtest"
	"github.com/afawcett/flowextensions/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientEndToEnd(t *testing.T) {
	env := flowtest.NewEnv(t)
	env.Engine.RegisterFlowFunc("increment",
		func(_ context.Context, in api.Args) (api.Args, error) {
			return api.Args{"b": in.GetInt("a", 0) + 1}, nil
		})

	res, err := env.Client.NewInvocation().
		Named("increment").
		With("a", 1).
		Required("b").
		Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, res.GetInt("b", 0))
}

func TestClientEndToEndMissingRequired(t *testing.T) {
	env := flowtest.NewEnv(t)
	env.Engine.RegisterFlow("silent", api.Args{})

	_, err := env.Client.NewInvocation().
		Named("silent").
		Required("b").
		Run(context.Background())
	assert.ErrorIs(t, err, flow.ErrMissingOutput)
}

func TestClientEndToEndOptionalOmitted(t *testing.T) {
	env := flowtest.NewEnv(t)
	env.Engine.RegisterFlow("silent", api.Args{})

	res, err := env.Client.NewInvocation().
		Named("silent").
		Output("b").
		Run(context.Background())
	require.NoError(t, err)
	assert.NotContains(t, res, api.Name("b"))
}

func TestClientSessionLifecycle(t *testing.T) {
	env := flowtest.NewEnv(t)
	env.Engine.RegisterFlow("greet", api.Args{"message": "hello"})

	ctx := context.Background()
	sess, err := env.Client.CreateSession(ctx, "greet", api.Args{})
	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID())

	require.NoError(t, sess.Start(ctx))

	val, ok, err := sess.Variable(ctx, "message")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "hello", val)

	_, ok, err = sess.Variable(ctx, "absent")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestClientUnknownFlow(t *testing.T) {
	env := flowtest.NewEnv(t)

	_, err := env.Client.NewInvocation().
		Named("missing").
		Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "flow not found")
}

func TestClientFlowFailure(t *testing.T) {
	env := flowtest.NewEnv(t)
	env.Engine.FailFlow("broken", "flow blew up")

	_, err := env.Client.NewInvocation().
		Named("broken").
		Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to start session")
	assert.Contains(t, err.Error(), "flow blew up")
}

func TestClientRecordLookup(t *testing.T) {
	env := flowtest.NewEnv(t)
	env.Engine.RegisterFlow("send-welcome", api.Args{"status": "sent"})
	env.Engine.PutRecord(&api.ConfigRecord{
		Name:   "welcome",
		Fields: map[api.Name]string{"flow": "send-welcome"},
	})

	res, err := env.Client.NewInvocation().
		Lookup("welcome", "flow").
		Required("status").
		Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "sent", res.GetString("status", ""))
}

func TestClientRecordLookupAmbiguous(t *testing.T) {
	env := flowtest.NewEnv(t)
	env.Engine.RegisterFlow("send-welcome", api.Args{"status": "sent"})
	rec := &api.ConfigRecord{
		Name:   "welcome",
		Fields: map[api.Name]string{"flow": "send-welcome"},
	}
	env.Engine.AddRecord(rec)
	env.Engine.AddRecord(rec)

	_, err := env.Client.NewInvocation().
		Lookup("welcome", "flow").
		Run(context.Background())
	assert.ErrorIs(t, err, flow.ErrResolveFlow)
}

func TestClientRecordLookupNoMatch(t *testing.T) {
	env := flowtest.NewEnv(t)

	_, err := env.Client.NewInvocation().
		Lookup("welcome", "flow").
		Run(context.Background())
	assert.ErrorIs(t, err, flow.ErrResolveFlow)
}

func TestClientQueryAndList(t *testing.T) {
	env := flowtest.NewEnv(t)
	env.Engine.PutRecord(&api.ConfigRecord{
		Name:   "welcome",
		Fields: map[api.Name]string{"flow": "send-welcome"},
	})
	env.Engine.PutRecord(&api.ConfigRecord{
		Name:   "goodbye",
		Fields: map[api.Name]string{"flow": "send-goodbye"},
	})

	ctx := context.Background()
	recs, err := env.Client.Query(ctx, "welcome")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, api.Name("welcome"), recs[0].Name)

	recs, err = env.Client.Query(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, recs)

	recs, err = env.Client.List(ctx)
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

func TestClientWithStore(t *testing.T) {
	env := flowtest.NewEnv(t)
	env.Engine.RegisterFlow("send-welcome", api.Args{"status": "sent"})

	mem := store.NewMemory()
	mem.Put(&api.ConfigRecord{
		Name:   "welcome",
		Fields: map[api.Name]string{"flow": "send-welcome"},
	})

	// the engine holds no records, so success proves the lookup
	// resolved against the injected store
	client := flow.NewClient(env.Server.URL, flow.WithStore(mem))
	res, err := client.NewInvocation().
		Lookup("welcome", "flow").
		Required("status").
		Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "sent", res.GetString("status", ""))
}

func TestClientWithExecutor(t *testing.T) {
	mock := flowtest.NewMockExecutor()
	mock.SetResult(api.Args{"status": "sent"})

	client := flow.NewClient("http://localhost:0",
		flow.WithExecutor(mock))
	res, err := client.NewInvocation().
		Named("send-welcome").
		Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "sent", res.GetString("status", ""))
	assert.Len(t, mock.Calls(), 1)
}

func TestClientServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "internal error",
				http.StatusInternalServerError)
		}))
	defer srv.Close()

	client := flow.NewClient(srv.URL)
	ctx := context.Background()

	_, err := client.CreateSession(ctx, "send-welcome", api.Args{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")

	_, err = client.Query(ctx, "welcome")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to query records")
}

func TestClientContextCancelled(t *testing.T) {
	env := flowtest.NewEnv(t)
	env.Engine.RegisterFlow("greet", api.Args{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := env.Client.CreateSession(ctx, "greet", api.Args{})
	assert.Error(t, err)
}
