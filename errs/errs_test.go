package errs_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shyptr/nodeql/errs"
)

func TestSyntaxError_FormatsLineColumnAndExcerpt(t *testing.T) {
	e := &errs.SyntaxError{Line: 3, Column: 4, Excerpt: "<< bogus >>", Message: "unexpected token"}
	assert.Equal(t, `syntax error at 3, 4: unexpected token (near "<< bogus >>")`, e.Error())
}

func TestFieldNotDefinedError_NamesFieldAndType(t *testing.T) {
	e := &errs.FieldNotDefinedError{TypeName: "Post", FieldName: "bogus"}
	assert.Equal(t, `field "bogus" is not defined on type "Post"`, e.Error())
}

func TestAliasCollisionError_NamesTheCollidingKey(t *testing.T) {
	e := &errs.AliasCollisionError{Key: "x"}
	assert.Equal(t, `alias or field name "x" is used more than once in the same selection set`, e.Error())
}

func TestMultiError_JoinsEntriesAndLeadsWithTheAbortCause(t *testing.T) {
	m := errs.MultiError{
		&errs.FieldNotDefinedError{TypeName: "Post", FieldName: "bogus"},
		errors.New("a second, non-abort-cause error"),
	}
	assert.Equal(t,
		`field "bogus" is not defined on type "Post"; a second, non-abort-cause error`,
		m.Error())
}

func TestMultiError_EmptyHasAPlaceholderMessage(t *testing.T) {
	var m errs.MultiError
	assert.Equal(t, "<no errors>", m.Error())
}

func TestMultiError_ErrorsAsUnwrapsTheAbortCause(t *testing.T) {
	m := errs.MultiError{&errs.RootCallNotFoundError{Name: "bogus"}}
	var rc *errs.RootCallNotFoundError
	assert.ErrorAs(t, m[0], &rc)
	assert.Equal(t, "bogus", rc.Name)
}
