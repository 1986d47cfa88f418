// Package assert mixes gotest.tools and testify assertions, printing the full eris stack of any unexpected error.
package assert

import (
	"time"

	gocmp "github.com/google/go-cmp/cmp"
	"github.com/rotisserie/eris"
	testify "github.com/stretchr/testify/assert"
	gotest "gotest.tools/v3/assert"
)

type helperT interface {
	Helper()
}

func helper(t any) {
	if ht, ok := t.(helperT); ok {
		ht.Helper()
	}
}

func withTrace(err error, msgAndArgs []interface{}) []interface{} {
	if err == nil {
		return msgAndArgs
	}
	return append([]interface{}{eris.ToString(err, true)}, msgAndArgs...)
}



func NilError(t gotest.TestingT, err error, msgAndArgs ...interface{}) {
	helper(t)
	gotest.NilError(t, err, withTrace(err, msgAndArgs)...)
}

func Equal(t gotest.TestingT, x, y interface{}, msgAndArgs ...interface{}) {
	helper(t)
	gotest.Equal(t, x, y, msgAndArgs...)
}

func DeepEqual(t gotest.TestingT, x, y interface{}, opts ...gocmp.Option) {
	helper(t)
	gotest.DeepEqual(t, x, y, opts...)
}

// ErrorIs compares the root causes, so sentinels wrapped with eris.Wrap still match.
func ErrorIs(t gotest.TestingT, err error, expected error, msgAndArgs ...interface{}) {
	helper(t)
	gotest.ErrorIs(t, eris.Cause(err), eris.Cause(expected), withTrace(err, msgAndArgs)...)
}

// ErrorContains checks the full message, including any eris wrap context.
func ErrorContains(t gotest.TestingT, err error, substring string, msgAndArgs ...interface{}) {
	helper(t)
	gotest.ErrorContains(t, err, substring, withTrace(err, msgAndArgs)...)
}

func IsError(t testify.TestingT, err error, msgAndArgs ...interface{}) bool {
	helper(t)
	return testify.Error(t, err, withTrace(err, msgAndArgs)...)
}

func NotErrorIs(t testify.TestingT, err, target error, msgAndArgs ...interface{}) bool {
	helper(t)
	return testify.NotErrorIs(t, eris.Cause(err), eris.Cause(target), withTrace(err, msgAndArgs)...)
}

func True(t testify.TestingT, value bool, msgAndArgs ...interface{}) bool {
	helper(t)
	return testify.True(t, value, msgAndArgs...)
}

func False(t testify.TestingT, value bool, msgAndArgs ...interface{}) bool {
	helper(t)
	return testify.False(t, value, msgAndArgs...)
}

func Len(t testify.TestingT, object interface{}, length int, msgAndArgs ...interface{}) bool {
	helper(t)
	return testify.Len(t, object, length, msgAndArgs...)
}

func Empty(t testify.TestingT, object interface{}, msgAndArgs ...interface{}) bool {
	helper(t)
	return testify.Empty(t, object, msgAndArgs...)
}

func Contains(t testify.TestingT, s, contains interface{}, msgAndArgs ...interface{}) bool {
	helper(t)
	return testify.Contains(t, s, contains, msgAndArgs...)
}


func ElementsMatch(t testify.TestingT, listA, listB interface{}, msgAndArgs ...interface{}) (ok bool) {
	helper(t)
	return testify.ElementsMatch(t, listA, listB, msgAndArgs...)
}

func Same(t testify.TestingT, expected, actual interface{}, msgAndArgs ...interface{}) bool {
	helper(t)
	return testify.Same(t, expected, actual, msgAndArgs...)
}

func Nil(t testify.TestingT, object interface{}, msgAndArgs ...interface{}) bool {
	helper(t)
	return testify.Nil(t, object, msgAndArgs...)
}


func Panics(t testify.TestingT, f testify.PanicTestFunc, msgAndArgs ...interface{}) bool {
	helper(t)
	return testify.Panics(t, f, msgAndArgs...)
}

func JSONEq(t testify.TestingT, expected string, actual string, msgAndArgs ...interface{}) bool {
	helper(t)
	return testify.JSONEq(t, expected, actual, msgAndArgs...)
}


func Eventually(
	t testify.TestingT,
	condition func() bool,
	waitFor time.Duration, tick time.Duration, msgAndArgs ...interface{}) bool {
	helper(t)
	return testify.Eventually(t, condition, waitFor, tick, msgAndArgs...)
}
