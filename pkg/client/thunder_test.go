package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/samwightt/gqlz/pkg/query"
	"github.com/samwightt/gqlz/pkg/schema"
	"github.com/samwightt/gqlz/pkg/selection"
	"github.com/samwightt/gqlz/pkg/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTables() *schema.Tables {
	return &schema.Tables{
		Ops: map[string]string{"query": "Query", "subscription": "Subscription"},
		Props: map[string]schema.PropsType{
			"Role":  schema.Enum(),
			"Query": schema.Object(map[string]schema.PropsField{"users": schema.Args(map[string]string{"role": "Role"})}),
		},
		Returns: map[string]schema.ReturnsType{
			"DateTime":     schema.ScalarReturn("DateTime"),
			"Query":        schema.Returns(map[string]string{"users": "User"}),
			"User":         schema.Returns(map[string]string{"name": "String", "createdAt": "DateTime"}),
			"Subscription": schema.Returns(map[string]string{"userCreated": "User"}),
		},
	}
}

func usersSelection() selection.Node {
	return selection.Fields{
		selection.Field("users", selection.Call{
			Args: selection.Object("role", "ADMIN"),
			Sub: selection.Fields{
				selection.Field("name", selection.Leaf{}),
				selection.Field("createdAt", selection.Leaf{}),
			},
		}),
	}
}

type fakeFetch struct {
	query     string
	variables map[string]any
	calls     int
	data      any
	err       error
}

func (f *fakeFetch) fetch(_ context.Context, q string, vars map[string]any) (any, error) {
	f.calls++
	f.query, f.variables = q, vars
	return f.data, f.err
}

func TestThunder_Run(t *testing.T) {
	f := &fakeFetch{data: map[string]any{
		"users": []any{map[string]any{"name": "Ann", "createdAt": "2024-01-02T03:04:05Z"}},
	}}
	th := NewThunder(testTables(), f.fetch, WithScalars(query.Builtin()))

	data, err := th.Run(context.Background(), "query", usersSelection(),
		WithOperationName("Admins"), WithVariables(map[string]any{"x": 1}))
	require.NoError(t, err)

	assert.Equal(t, "query Admins {users(role: ADMIN) {name\ncreatedAt}}", f.query)
	assert.Equal(t, map[string]any{"x": 1}, f.variables)
	assert.Equal(t, map[string]any{
		"users": []any{map[string]any{"name": "Ann", "createdAt": time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)}},
	}, data)
}

func TestThunder_RunWithoutScalars(t *testing.T) {
	raw := map[string]any{"users": []any{map[string]any{"createdAt": "2024-01-02T03:04:05Z"}}}
	f := &fakeFetch{data: raw}

	data, err := NewThunder(testTables(), f.fetch).Run(context.Background(), "query", usersSelection())
	require.NoError(t, err)
	assert.Equal(t, raw, data)
}

func TestThunder_BuildErrorSkipsFetch(t *testing.T) {
	f := &fakeFetch{}
	bad := selection.Fields{selection.Field(selection.AliasKey, selection.Alias{selection.Field("a", selection.Leaf{})})}

	_, err := NewThunder(testTables(), f.fetch).Run(context.Background(), "query", bad)
	assert.True(t, errors.Is(err, query.ErrInvalidAlias))
	assert.Zero(t, f.calls)
}

func TestThunder_TransportErrorUnchanged(t *testing.T) {
	want := &transport.StatusError{Code: 500, Body: "down"}
	f := &fakeFetch{err: want}

	_, err := NewThunder(testTables(), f.fetch, WithScalars(query.Builtin())).Run(context.Background(), "query", usersSelection())
	assert.Same(t, want, err)
}

func TestThunder_DecodeError(t *testing.T) {
	f := &fakeFetch{data: map[string]any{"users": []any{map[string]any{"createdAt": "soon"}}}}

	_, err := NewThunder(testTables(), f.fetch, WithScalars(query.Builtin())).Run(context.Background(), "query", usersSelection())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode DateTime at Query|users|createdAt")
}

func TestChain(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Team") != "core" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = io.WriteString(w, `{"data": {"users": [{"name": "Ann", "createdAt": "2024-01-02T03:04:05Z"}]}}`)
	}))
	defer srv.Close()

	th := Chain(testTables(), srv.URL,
		WithScalars(query.Builtin()),
		WithTransport(transport.WithHeader("X-Team", "core")))
	data, err := th.Run(context.Background(), "query", usersSelection())
	require.NoError(t, err)

	type user struct {
		Name      string    `json:"name"`
		CreatedAt time.Time `json:"createdAt"`
	}
	got, err := As[struct {
		Users []user `json:"users"`
	}](data)
	require.NoError(t, err)
	require.Len(t, got.Users, 1)
	assert.Equal(t, "Ann", got.Users[0].Name)
	assert.Equal(t, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), got.Users[0].CreatedAt)
}
