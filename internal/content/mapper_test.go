package content

import (
	"testing"

	"Inkstone/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToRows(t *testing.T) {
	d := NewDraft()
	img, _ := d.InsertBlock(BlockImage)
	require.NoError(t, d.UpdatePayload(img, &ImagePayload{ImageKey: "2026/01/02/a.png"}))
	empty, _ := d.InsertBlock(BlockCode) // 空载体，不应落行
	_ = empty
	code, _ := d.InsertBlock(BlockCode)
	require.NoError(t, d.UpdatePayload(code, &CodePayload{Code: "fmt.Println(42)", Language: "go"}))

	rows, err := ToRows(d, 7)
	require.NoError(t, err)
	require.Len(t, rows, 2, "空组件应被跳过")

	assert.Equal(t, uint64(7), rows[0].BlogID)
	assert.Equal(t, string(BlockImage), rows[0].Type)
	assert.Equal(t, 0, rows[0].SortOrder)
	assert.Equal(t, "2026/01/02/a.png", *rows[0].ImageKey)

	assert.Equal(t, string(BlockCode), rows[1].Type)
	assert.Equal(t, 1, rows[1].SortOrder, "落行后的 position 应保持连续")
	assert.Contains(t, *rows[1].Content, "fmt.Println(42)")
}

func TestToRowsSkipsInvalidPayload(t *testing.T) {
	d := NewDraft()
	bad, _ := d.InsertBlock(BlockImageText)
	// 绕过 UpdatePayload 的校验，模拟历史脏数据
	d.Data[bad] = &ImageTextPayload{Text: "说明", Alignment: "center"}
	good, _ := d.InsertBlock(BlockImage)
	require.NoError(t, d.UpdatePayload(good, &ImagePayload{ImageKey: "b.png"}))

	rows, err := ToRows(d, 1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, string(BlockImage), rows[0].Type)
	assert.Equal(t, 0, rows[0].SortOrder)
}

func TestFromRows(t *testing.T) {
	content := `{"type":"doc","content":[{"type":"text","text":"正文"}]}`
	tableJSON := `{"headers":["a"],"rows":[["1"]]}`
	rows := []*model.BlogComponent{
		{ID: 30, Type: string(BlockTable), SortOrder: 2, Content: &tableJSON},
		{ID: 10, Type: string(BlockRichText), SortOrder: 0, Content: &content},
		{ID: 20, Type: string(BlockImage), SortOrder: 1, ImageKey: ptr("c.png")},
	}

	blocks, data := FromRows(rows)
	require.Len(t, blocks, 3)
	assert.Equal(t, []Block{
		{ID: "10", Type: BlockRichText},
		{ID: "20", Type: BlockImage},
		{ID: "30", Type: BlockTable},
	}, blocks, "应按 position 升序还原")

	assert.Equal(t, "正文", data["10"].(*RichTextPayload).Doc.PlainText())
	assert.Equal(t, "c.png", data["20"].(*ImagePayload).ImageKey)
	assert.Equal(t, []string{"a"}, data["30"].(*TablePayload).Headers)
}

func TestFromRowsSkipsUnreadable(t *testing.T) {
	broken := `{"headers":`
	rows := []*model.BlogComponent{
		{ID: 1, Type: string(BlockTable), SortOrder: 0, Content: &broken},
		{ID: 2, Type: "carousel", SortOrder: 1},
		{ID: 3, Type: string(BlockCode), SortOrder: 2, Content: ptr(`{"code":"x"}`)},
	}

	blocks, data := FromRows(rows)
	require.Len(t, blocks, 1, "解析失败与未知类型的行应被跳过")
	assert.Equal(t, "3", blocks[0].ID)
	assert.Equal(t, "x", data["3"].(*CodePayload).Code)
}

func TestRowsRoundTrip(t *testing.T) {
	d := NewDraft()
	it, _ := d.InsertBlock(BlockImageText)
	require.NoError(t, d.UpdatePayload(it, &ImageTextPayload{Text: "配图说明", ImageKey: "d.png", Alignment: AlignRight}))
	vd, _ := d.InsertBlock(BlockVideo)
	require.NoError(t, d.UpdatePayload(vd, &VideoPayload{URL: "https://example.com/v", Kind: VideoKindEmbed}))

	rows, err := ToRows(d, 5)
	require.NoError(t, err)
	for i, row := range rows {
		row.ID = uint64(i + 100)
	}

	blocks, data := FromRows(rows)
	require.Len(t, blocks, 2)
	assert.Equal(t, *d.Data[it].(*ImageTextPayload), *data[blocks[0].ID].(*ImageTextPayload))
	assert.Equal(t, *d.Data[vd].(*VideoPayload), *data[blocks[1].ID].(*VideoPayload))
}
