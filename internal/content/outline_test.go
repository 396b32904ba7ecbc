package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func headingNode(level int, text string) *DocNode {
	return &DocNode{
		Type:    nodeHeading,
		Attrs:   map[string]any{"level": float64(level)},
		Content: []*DocNode{{Type: "text", Text: text}},
	}
}

func TestExtractHeadings(t *testing.T) {
	doc1 := &DocNode{Type: "doc", Content: []*DocNode{
		headingNode(1, "第一章"),
		{Type: "paragraph", Content: []*DocNode{{Type: "text", Text: "正文"}}},
		headingNode(2, "第一节"),
	}}
	doc2 := &DocNode{Type: "doc", Content: []*DocNode{
		{Type: nodeHeading, Attrs: map[string]any{"level": float64(2)}}, // 空标题不收集
		headingNode(1, "第二章"),
	}}

	blocks := []Block{
		{ID: "a", Type: BlockRichText},
		{ID: "b", Type: BlockImage},
		{ID: "c", Type: BlockRichText},
	}
	data := map[string]Payload{
		"a": &RichTextPayload{Doc: doc1},
		"b": &ImagePayload{ImageKey: "x.png"},
		"c": &RichTextPayload{Doc: doc2},
	}

	headings := ExtractHeadings(blocks, data)
	require.Len(t, headings, 3)
	assert.Equal(t, Heading{ID: "heading-0", Text: "第一章", Level: 1}, headings[0])
	assert.Equal(t, Heading{ID: "heading-1", Text: "第一节", Level: 2}, headings[1])
	assert.Equal(t, Heading{ID: "heading-2", Text: "第二章", Level: 1}, headings[2])
}

func TestBuildOutline(t *testing.T) {
	headings := []Heading{
		{ID: "h0", Level: 1},
		{ID: "h1", Level: 2},
		{ID: "h2", Level: 2},
		{ID: "h3", Level: 3},
		{ID: "h4", Level: 1},
	}

	roots := BuildOutline(headings)
	require.Len(t, roots, 2)

	assert.Equal(t, "h0", roots[0].ID)
	require.Len(t, roots[0].Children, 2)
	assert.Equal(t, "h1", roots[0].Children[0].ID)
	assert.Empty(t, roots[0].Children[0].Children)
	assert.Equal(t, "h2", roots[0].Children[1].ID)
	require.Len(t, roots[0].Children[1].Children, 1)
	assert.Equal(t, "h3", roots[0].Children[1].Children[0].ID)

	assert.Equal(t, "h4", roots[1].ID)
	assert.Empty(t, roots[1].Children)
}

func TestBuildOutlineSkippedLevels(t *testing.T) {
	// 首个标题是 h3、随后出现更高层级 h1 的非常规文档
	headings := []Heading{
		{ID: "h0", Level: 3},
		{ID: "h1", Level: 1},
		{ID: "h2", Level: 4},
	}

	roots := BuildOutline(headings)
	require.Len(t, roots, 2)
	assert.Equal(t, "h0", roots[0].ID)
	assert.Equal(t, "h1", roots[1].ID)
	require.Len(t, roots[1].Children, 1)
	assert.Equal(t, "h2", roots[1].Children[0].ID)
}

func TestActiveHeading(t *testing.T) {
	anchors := []Anchor{
		{ID: "h0", Top: 100, Present: true},
		{ID: "h1", Top: 500, Present: true},
		{ID: "h2", Top: 900, Present: false},
		{ID: "h3", Top: 1300, Present: true},
	}

	t.Run("last anchor above the threshold wins", func(t *testing.T) {
		assert.Equal(t, "h1", ActiveHeading(400, anchors))
	})

	t.Run("unrendered anchors are ignored", func(t *testing.T) {
		assert.Equal(t, "h1", ActiveHeading(1000, anchors))
	})

	t.Run("nothing qualifies falls back to first", func(t *testing.T) {
		assert.Equal(t, "h0", ActiveHeading(-500, anchors))
	})

	t.Run("no rendered anchors", func(t *testing.T) {
		assert.Equal(t, "", ActiveHeading(0, []Anchor{{ID: "x", Top: 10, Present: false}}))
	})
}
