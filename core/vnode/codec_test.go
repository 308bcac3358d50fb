package vnode

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	n, err := DecodeJSON([]byte(`{
	  "tag": "ul",
	  "flag": "keyed_children",
	  "children": [
	    {"tag": "li", "key": "a", "text": "Alpha"},
	    {"tag": "li", "key": "b", "children": ["Be", {"tag": "b", "text": "ta"}]}
	  ]
	}`))
	require.NoError(t, err)

	assert.Equal(t, "ul", n.Tag)
	assert.Equal(t, FlagKeyedChildren, n.Flag)
	require.Len(t, n.Children, 2)
	assert.Equal(t, "a", n.Children[0].Key)
	assert.Equal(t, "Alpha", n.Children[0].Text)
	assert.True(t, n.Children[1].Children[0].IsText())
	assert.Equal(t, "Beta", n.Children[1].JoinedText())
	assert.False(t, n.HasDeltas())
}

func TestDecodeYAML(t *testing.T) {
	n, err := DecodeYAML([]byte(`
tag: div
children:
  - hello
  - tag: p
    flag: text
    text: world
`))
	require.NoError(t, err)

	require.Len(t, n.Children, 2)
	assert.Equal(t, KindText, n.Children[0].Kind)
	assert.Equal(t, "hello", n.Children[0].Text)
	assert.Equal(t, FlagTextChildren, n.Children[1].Flag)
	assert.True(t, n.Children[1].IsTextContainer())
}

func TestDecode_Children(t *testing.T) {
	t.Run("AbsentJSON", func(t *testing.T) {
		n, err := DecodeJSON([]byte(`{"tag": "div"}`))
		require.NoError(t, err)
		assert.True(t, n.ChildrenAbsent())
	})

	t.Run("EmptyJSON", func(t *testing.T) {
		n, err := DecodeJSON([]byte(`{"tag": "div", "children": []}`))
		require.NoError(t, err)
		assert.False(t, n.ChildrenAbsent())
		assert.NotNil(t, n.Children)
		assert.Empty(t, n.Children)
	})

	t.Run("EmptyYAML", func(t *testing.T) {
		n, err := DecodeYAML([]byte("tag: div\nchildren: []\n"))
		require.NoError(t, err)
		assert.False(t, n.ChildrenAbsent())
	})
}

func TestDecode_Deltas(t *testing.T) {
	t.Run("Present", func(t *testing.T) {
		n, err := DecodeYAML([]byte(`
tag: ul
children: [a, b, c]
deltas:
  - {op: create, pos: 1}
  - {op: remove, pos: 0}
  - {op: update, pos: 2}
`))
		require.NoError(t, err)
		assert.Equal(t, []Delta{{Op: OpCreate, Pos: 1}, {Op: OpRemove, Pos: 0}, {Op: OpUpdate, Pos: 2}}, n.Deltas)
	})

	t.Run("EmptyButPresentJSON", func(t *testing.T) {
		n, err := DecodeJSON([]byte(`{"tag": "ul", "children": ["a"], "deltas": []}`))
		require.NoError(t, err)
		assert.True(t, n.HasDeltas())
		assert.Empty(t, n.Deltas)
	})

	t.Run("EmptyButPresentYAML", func(t *testing.T) {
		n, err := DecodeYAML([]byte("tag: ul\nchildren: [a]\ndeltas: []\n"))
		require.NoError(t, err)
		assert.True(t, n.HasDeltas())
	})
}

func TestDecode_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"Syntax", `{"tag": `},
		{"Flag", `{"tag": "ul", "flag": "diagonal"}`},
		{"Op", `{"tag": "ul", "deltas": [{"op": "swap", "pos": 0}]}`},
		{"NegativePos", `{"tag": "ul", "deltas": [{"op": "remove", "pos": -1}]}`},
		{"TextWithChildren", `{"text": "x", "children": ["y"]}`},
		{"NestedFlag", `{"tag": "ul", "children": [{"tag": "li", "flag": "nope"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeJSON([]byte(tt.data))
			assert.ErrorIs(t, err, ErrInvalidDescription)
		})
	}
}

func TestDecodeScenario(t *testing.T) {
	sc, err := DecodeScenario([]byte(`
name: grow
prev: {tag: ul, children: [a]}
next: {tag: ul, children: [a, b]}
`))
	require.NoError(t, err)
	assert.Equal(t, "grow", sc.Name)

	next, err := sc.Next.Build()
	require.NoError(t, err)
	assert.Len(t, next.Children, 2)

	_, err = DecodeScenario([]byte("name: broken\nprev: {tag: ul}\n"))
	assert.ErrorIs(t, err, ErrInvalidDescription)
}

func TestToDocument_RoundTrip(t *testing.T) {
	orig := El("section",
		Keyed("h1", "title", T("Hi")),
		List("ul", FlagKeyedChildren, Keyed("li", "a", T("a"))).WithDeltas(Delta{Op: OpUpdate, Pos: 0}),
	)

	data, err := json.Marshal(ToDocument(orig))
	require.NoError(t, err)

	back, err := DecodeJSON(data)
	require.NoError(t, err)
	assert.True(t, Equal(orig, back))
	assert.Equal(t, orig.Children[1].Deltas, back.Children[1].Deltas)
}

func TestParseFlag(t *testing.T) {
	for in, want := range map[string]Flag{
		"":               FlagDefault,
		"default":        FlagDefault,
		"no_children":    FlagNoChildren,
		"KEYED":          FlagKeyedChildren,
		"keyed_children": FlagKeyedChildren,
		"text_children":  FlagTextChildren,
	} {
		got, err := ParseFlag(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}
