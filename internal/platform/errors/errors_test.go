package errors

import (
	"testing"

	"qdev/internal/testutil"
)

func TestWrap(t *testing.T) {
	t.Run("wraps error with message", func(t *testing.T) {
		base := New("no such file")
		wrapped := Wrap(base, "reading pom.xml")

		testutil.AssertEqual(t, wrapped.Error(), "reading pom.xml: no such file", "message should include context")
		testutil.AssertTrue(t, Is(wrapped, base), "wrapped error should match base")
	})

	t.Run("returns nil for nil error", func(t *testing.T) {
		testutil.AssertTrue(t, Wrap(nil, "context") == nil, "wrapping nil should return nil")
	})
}

func TestWrapf(t *testing.T) {
	wrapped := Wrapf(ErrManifestRead, "module %s", "it1")
	testutil.AssertEqual(t, wrapped.Error(), "module it1: manifest read failed", "formatted message")
	testutil.AssertTrue(t, IsManifestRead(wrapped), "should keep sentinel in chain")
	testutil.AssertTrue(t, Wrapf(nil, "module %s", "it1") == nil, "wrapping nil should return nil")
}

func TestUnwrap(t *testing.T) {
	base := New("base")
	testutil.AssertEqual(t, Unwrap(Wrap(base, "ctx")), base, "should unwrap to base error")
	testutil.AssertTrue(t, Unwrap(base) == nil, "should return nil for non-wrapped error")
}

func TestJoin(t *testing.T) {
	joined := Join(ErrProcessFailed, nil, ErrManifestRead)
	testutil.AssertTrue(t, IsProcessFailed(joined), "joined error should contain process failure")
	testutil.AssertTrue(t, IsManifestRead(joined), "joined error should contain manifest failure")
}

func TestSentinelPredicates(t *testing.T) {
	tests := []struct {
		name string
		pred func(error) bool
		hit  error
		miss error
	}{
		{"IsInvalidInput", IsInvalidInput, ErrInvalidInput, ErrProcessFailed},
		{"IsUnresolvableTarget", IsUnresolvableTarget, ErrUnresolvableTarget, ErrInvalidInput},
		{"IsManifestRead", IsManifestRead, ErrManifestRead, ErrFullBuildFailed},
		{"IsProcessFailed", IsProcessFailed, ErrProcessFailed, ErrManifestRead},
		{"IsFullBuildFailed", IsFullBuildFailed, ErrFullBuildFailed, ErrProcessFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertTrue(t, tt.pred(tt.hit), "direct sentinel")
			testutil.AssertTrue(t, tt.pred(Wrap(tt.hit, "context")), "wrapped sentinel")
			testutil.AssertFalse(t, tt.pred(tt.miss), "different sentinel")
			testutil.AssertFalse(t, tt.pred(nil), "nil error")
		})
	}
}
