package def

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Path{"a", "b", "c"}, ParsePath("a.b.c"))
	assert.Equal(t, Path{"a"}, ParsePath("a"))
	assert.Nil(t, ParsePath(""))
}

func TestPath_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a.b.c", Path{"a", "b", "c"}.String())
	assert.Equal(t, "", Path{}.String())
}

func TestPath_Equal(t *testing.T) {
	t.Parallel()

	assert.True(t, Path{"a", "b"}.Equal(Path{"a", "b"}))
	assert.False(t, Path{"a", "b"}.Equal(Path{"a"}))
	assert.False(t, Path{"a", "b"}.Equal(Path{"a", "c"}))
	assert.True(t, Path(nil).Equal(Path{}))
}

func TestPath_ChildAndJoin(t *testing.T) {
	t.Parallel()

	p := Path{"a"}
	child := p.Child("b")
	assert.Equal(t, Path{"a", "b"}, child)
	assert.Equal(t, Path{"a"}, p, "Child must not mutate the receiver")

	joined := p.Join(Path{"x", "y"})
	assert.Equal(t, Path{"a", "x", "y"}, joined)
	assert.Equal(t, Path{"a"}, p)

	// The joined path must be detached from the receiver's backing array.
	joined[0] = "mutated"
	assert.Equal(t, "a", p[0])
}

func TestBinding_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a.b:x", Binding{Path: Path{"a", "b"}, Name: "x"}.String())
	assert.Equal(t, "x", Binding{Name: "x"}.String())
}
