package query

import (
	"testing"

	"github.com/samwightt/gqlz/pkg/selection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScalarPaths(t *testing.T) {
	tests := []struct {
		name string
		op   string
		sel  selection.Node
		want ScalarPaths
	}{
		{
			name: "nested fields",
			op:   "query",
			sel: selection.Fields{
				field("users", selection.Fields{
					field("createdAt", leaf),
					field("name", leaf),
					field("friends", selection.Fields{field("id", leaf)}),
				}),
			},
			want: ScalarPaths{
				"Query|users|createdAt":  "DateTime",
				"Query|users|friends|id": "UUID",
			},
		},
		{
			name: "call",
			op:   "query",
			sel: selection.Fields{
				field("user", selection.Call{Args: object("id", "x"), Sub: selection.Fields{field("createdAt", leaf)}}),
			},
			want: ScalarPaths{"Query|user|createdAt": "DateTime"},
		},
		{
			name: "alias uses response key",
			op:   "query",
			sel: selection.Fields{
				field(selection.AliasKey, selection.Alias{
					field("me", selection.Fields{field("user", selection.Fields{field("createdAt", leaf)})}),
				}),
			},
			want: ScalarPaths{"Query|me|createdAt": "DateTime"},
		},
		{
			name: "nested alias",
			op:   "query",
			sel: selection.Fields{
				field("users", selection.Fields{
					field(selection.AliasKey, selection.Alias{
						field("joined", selection.Fields{field("createdAt", leaf)}),
					}),
				}),
			},
			want: ScalarPaths{"Query|users|joined": "DateTime"},
		},
		{
			name: "inline fragment narrows type",
			op:   "query",
			sel: selection.Fields{
				field("search", selection.Fields{
					field("... on Post", selection.Fields{field("publishedAt", leaf), field("id", leaf)}),
					field("... on User", selection.Fields{field("createdAt", leaf)}),
				}),
			},
			want: ScalarPaths{
				"Query|search|publishedAt": "DateTime",
				"Query|search|createdAt":   "DateTime",
			},
		},
		{
			name: "directive leaf",
			op:   "query",
			sel: selection.Fields{
				field("users", selection.Fields{
					field(selection.DirectivesKey, selection.Directive{Text: "@cached"}),
					field("createdAt", selection.Directive{Text: "@include(if: true)"}),
				}),
			},
			want: ScalarPaths{"Query|users|createdAt": "DateTime"},
		},
		{
			name: "subscription",
			op:   "subscription",
			sel:  selection.Fields{field("userCreated", selection.Fields{field("createdAt", leaf)})},
			want: ScalarPaths{"Subscription|userCreated|createdAt": "DateTime"},
		},
		{
			name: "no scalars",
			op:   "query",
			sel:  selection.Fields{field("users", selection.Fields{field("name", leaf), field("role", leaf)})},
			want: ScalarPaths{},
		},
		{
			name: "unknown field",
			op:   "query",
			sel:  selection.Fields{field("nope", selection.Fields{field("createdAt", leaf)})},
			want: ScalarPaths{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := newTestBuilder().ScalarPaths(tt.op, tt.sel)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScalarPaths_Dashboard(t *testing.T) {
	got, err := newTestBuilder().ScalarPaths("query", dashboardSelection())
	require.NoError(t, err)

	assert.Equal(t, ScalarPaths{
		"Query|users|id":           "UUID",
		"Query|users|createdAt":    "DateTime",
		"Query|search|id":          "UUID",
		"Query|search|publishedAt": "DateTime",
	}, got)
}

func TestScalarPaths_Idempotent(t *testing.T) {
	b := newTestBuilder()
	sel := dashboardSelection()

	first, err := b.ScalarPaths("query", sel)
	require.NoError(t, err)
	second, err := b.ScalarPaths("query", sel)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestScalarPaths_UnknownOperation(t *testing.T) {
	_, err := newTestBuilder().ScalarPaths("nope", selection.Fields{})
	assert.Error(t, err)
}
