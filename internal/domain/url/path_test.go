package url

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnsureSlashSentinel(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{path: "", want: "/"},
		{path: "/", want: "/"},
		{path: "foo", want: "/foo/"},
		{path: "/foo", want: "/foo/"},
		{path: "foo/", want: "/foo/"},
		{path: "//", want: "//"},
		{path: "/a//b", want: "/a//b/"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got := EnsureSlashSentinel(tt.path)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, EnsureSlashSentinel(got), "must be idempotent")
		})
	}
}

func TestPathAncestralDepth(t *testing.T) {
	tests := []struct {
		name       string
		ancestor   string
		descendant string
		wantDepth  int
		wantOK     bool
	}{
		{name: "root equals root", ancestor: "/", descendant: "/", wantDepth: 0, wantOK: true},
		{name: "root to one level", ancestor: "/", descendant: "/a/", wantDepth: 1, wantOK: true},
		{name: "root to three levels", ancestor: "/", descendant: "/a/b/c", wantDepth: 3, wantOK: true},
		{name: "nested", ancestor: "/a/b", descendant: "/a/b/c/d/", wantDepth: 2, wantOK: true},
		{name: "missing sentinels are equal", ancestor: "a", descendant: "/a/", wantDepth: 0, wantOK: true},
		{name: "partial label is not an ancestor", ancestor: "/a/", descendant: "/alpha/", wantOK: false},
		{name: "reversed direction", ancestor: "/a/", descendant: "/", wantOK: false},
		{name: "siblings", ancestor: "/a/b/", descendant: "/a/c/", wantOK: false},
		{name: "labels are case sensitive", ancestor: "/A/", descendant: "/a/b/", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			depth, ok := PathAncestralDepth(tt.ancestor, tt.descendant)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantDepth, depth)
			}
		})
	}
}

func TestPathAncestralDepth_Antisymmetric(t *testing.T) {
	pairs := [][2]string{
		{"/", "/a/"},
		{"/a/", "/a/b/c/"},
		{"/x/y", "/x/y/z"},
	}

	for _, p := range pairs {
		depth, ok := PathAncestralDepth(p[0], p[1])
		assert.True(t, ok)
		assert.Positive(t, depth)

		_, reverseOK := PathAncestralDepth(p[1], p[0])
		assert.False(t, reverseOK, "%q should not be an ancestor of %q", p[1], p[0])
	}
}
