package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSDL = `
scalar DateTime

enum Role {
  ADMIN
  MEMBER
}

input UserFilter {
  role: Role
  createdAfter: DateTime
  name: String
  nested: PageInput
}

input PageInput {
  first: Int
}

interface Node {
  id: ID!
}

type User implements Node {
  id: ID!
  role: Role!
  createdAt: DateTime
  friends(first: Int, role: Role): [User!]!
}

type Query {
  node(id: ID!): Node
  users(filter: UserFilter): [User!]!
}

type Subscription {
  userCreated: User!
}
`

func TestFromAST_Ops(t *testing.T) {
	s, err := Parse("schema.graphql", testSDL)
	require.NoError(t, err)

	tables := FromAST(s)
	assert.Equal(t, map[string]string{"query": "Query", "subscription": "Subscription"}, tables.Ops)
}

func TestFromAST_Props(t *testing.T) {
	s, err := Parse("schema.graphql", testSDL)
	require.NoError(t, err)

	tables := FromAST(s)

	assert.Equal(t, Enum(), tables.Props["Role"])
	assert.Equal(t, Scalar("DateTime"), tables.Props["DateTime"])
	assert.Equal(t, Object(map[string]PropsField{
		"role":         Ref("Role"),
		"createdAfter": Ref("DateTime"),
		"nested":       Ref("PageInput"),
	}), tables.Props["UserFilter"])
	assert.Equal(t, Object(map[string]PropsField{}), tables.Props["PageInput"])
	assert.Equal(t, Object(map[string]PropsField{
		"friends": Args(map[string]string{"role": "Role"}),
	}), tables.Props["User"])
	assert.Equal(t, Object(map[string]PropsField{
		"users": Args(map[string]string{"filter": "UserFilter"}),
	}), tables.Props["Query"])

	_, ok := tables.Props["String"]
	assert.False(t, ok, "built-in scalars are never classified")
	_, ok = tables.Props["Subscription"]
	assert.False(t, ok, "types without classified arguments have no props entry")
}

func TestFromAST_Returns(t *testing.T) {
	s, err := Parse("schema.graphql", testSDL)
	require.NoError(t, err)

	tables := FromAST(s)

	assert.Equal(t, ScalarReturn("DateTime"), tables.Returns["DateTime"])
	assert.Equal(t, Returns(map[string]string{
		"id":        "ID",
		"role":      "Role",
		"createdAt": "DateTime",
		"friends":   "User",
	}), tables.Returns["User"])
	assert.Equal(t, Returns(map[string]string{"id": "ID"}), tables.Returns["Node"])
	assert.Equal(t, Returns(map[string]string{"node": "Node", "users": "User"}), tables.Returns["Query"])

	_, ok := tables.Returns["__Schema"]
	assert.False(t, ok)
	_, ok = tables.Returns["UserFilter"]
	assert.False(t, ok, "input objects are argument-side only")
}

func TestParse_Error(t *testing.T) {
	_, err := Parse("schema.graphql", "type Query {")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GraphQL schema parsing error")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.graphql")
	require.NoError(t, os.WriteFile(path, []byte(testSDL), 0644))

	tables, s, err := Load(path)
	require.NoError(t, err)
	assert.NotNil(t, s.Types["User"])
	assert.Equal(t, "Query", tables.Ops["query"])
}

func TestLoad_Missing(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "missing.graphql"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema file does not exist")
}
