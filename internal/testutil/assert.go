// Package testutil provides shared test helpers built on go-cmp.
package testutil

import (
	"cmp"
	"fmt"
	"testing"

	gocmp "github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// AssertEqual compares got and want using cmp.Diff and reports differences.
func AssertEqual(t testing.TB, got, want any, msgAndArgs ...any) {
	t.Helper()
	if diff := gocmp.Diff(want, got); diff != "" {
		report(t, diff, msgAndArgs...)
	}
}

// AssertSameSet compares two slices ignoring order.
func AssertSameSet[T cmp.Ordered](t testing.TB, got, want []T, msgAndArgs ...any) {
	t.Helper()
	opt := cmpopts.SortSlices(func(a, b T) bool { return a < b })
	if diff := gocmp.Diff(want, got, opt, cmpopts.EquateEmpty()); diff != "" {
		report(t, diff, msgAndArgs...)
	}
}

func report(t testing.TB, diff string, msgAndArgs ...any) {
	t.Helper()
	if msg := formatMessage(msgAndArgs...); msg != "" {
		t.Errorf("%s: mismatch (-want +got):\n%s", msg, diff)
		return
	}
	t.Errorf("mismatch (-want +got):\n%s", diff)
}

func formatMessage(msgAndArgs ...any) string {
	if len(msgAndArgs) == 0 {
		return ""
	}
	if s, ok := msgAndArgs[0].(string); ok {
		if len(msgAndArgs) == 1 {
			return s
		}
		return fmt.Sprintf(s, msgAndArgs[1:]...)
	}
	return fmt.Sprintf("%v", msgAndArgs[0])
}
