package introspection_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shyptr/nodeql/exec"
	"github.com/shyptr/nodeql/internal/demo"
	"github.com/shyptr/nodeql/parser"
)

func run(t *testing.T, source string) *exec.OrderedMap {
	t.Helper()
	q, err := parser.Parse(source)
	require.NoError(t, err)
	reg := demo.NewRegistry()
	result, err := exec.New(reg).Execute(q, demo.NewContext("alice", "en-US"))
	require.NoError(t, err)
	return result
}

func TestIntrospection_SchemaListsRegisteredRootCalls(t *testing.T) {
	result := run(t, `__schema() { root_calls { name, return_type } }`)
	schemaVal, ok := result.Get("__schema")
	require.True(t, ok)
	schemaMap := schemaVal.(*exec.OrderedMap)

	rootCallsVal, _ := schemaMap.Get("root_calls")
	rootCalls := rootCallsVal.([]interface{})

	names := make([]string, len(rootCalls))
	for i, rc := range rootCalls {
		rcMap := rc.(*exec.OrderedMap)
		name, _ := rcMap.Get("name")
		names[i] = name.(string)
	}
	assert.Contains(t, names, "post")
	assert.Contains(t, names, "comment")
	assert.Contains(t, names, "context")
	assert.Contains(t, names, "__schema")
	assert.IsIncreasing(t, names, "root calls should be sorted by name for a deterministic result")
}

func TestIntrospection_SchemaListsRegisteredTypesWithFields(t *testing.T) {
	result := run(t, `__schema() { types { name, fields { name, type, description } } }`)
	schemaVal, _ := result.Get("__schema")
	schemaMap := schemaVal.(*exec.OrderedMap)

	typesVal, _ := schemaMap.Get("types")
	types := typesVal.([]interface{})

	var postType *exec.OrderedMap
	for _, tv := range types {
		tm := tv.(*exec.OrderedMap)
		name, _ := tm.Get("name")
		if name == demo.PostTypeName {
			postType = tm
			break
		}
	}
	require.NotNil(t, postType, "Post should be among the introspected types")

	fieldsVal, _ := postType.Get("fields")
	fields := fieldsVal.([]interface{})

	byName := map[string]*exec.OrderedMap{}
	fieldNames := make([]string, len(fields))
	for i, fv := range fields {
		fm := fv.(*exec.OrderedMap)
		name, _ := fm.Get("name")
		fieldNames[i] = name.(string)
		byName[name.(string)] = fm
	}
	assert.IsIncreasing(t, fieldNames, "fields should be sorted by name for a deterministic result")

	title, ok := byName["title"]
	require.True(t, ok)
	fieldType, _ := title.Get("type")
	description, _ := title.Get("description")
	assert.Equal(t, "string", fieldType)
	assert.Equal(t, "the post's title", description)
}

func TestIntrospection_SchemaListsConnectionAndIntrospectionTypes(t *testing.T) {
	// CommentEdge/CommentConnection are built by schema.RegisterConnectionType
	// and the __-prefixed types by introspection.Register; all of them are
	// registered like any other node type, so they appear in the types list.
	result := run(t, `__schema() { types { name } }`)
	schemaVal, _ := result.Get("__schema")
	schemaMap := schemaVal.(*exec.OrderedMap)
	typesVal, _ := schemaMap.Get("types")
	types := typesVal.([]interface{})

	var names []string
	for _, tv := range types {
		tm := tv.(*exec.OrderedMap)
		name, _ := tm.Get("name")
		names = append(names, name.(string))
	}
	assert.Contains(t, names, demo.CommentEdgeName)
	assert.Contains(t, names, demo.CommentConnName)
	assert.Contains(t, names, "__Schema")
	assert.Contains(t, names, "__Type")
	assert.Contains(t, names, "__Field")
	assert.Contains(t, names, "__RootCall")
}
