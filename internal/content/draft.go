package content

import (
	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// Draft 发布前的本地暂存：博客元数据 + 有序组件列表 + 组件数据
type Draft struct {
	Title            string
	Slug             string
	ShortDescription string
	Tags             []string
	ThumbnailKey     string
	Blocks           []Block
	Data             map[string]Payload
}

func NewDraft() *Draft {
	return &Draft{
		Tags: []string{},
		Data: make(map[string]Payload),
	}
}

// InsertBlock 在末尾追加一个指定类型的组件并返回新组件 ID
func (d *Draft) InsertBlock(t BlockType) (string, error) {
	payload, err := EmptyPayload(t)
	if err != nil {
		return "", err
	}
	id := uuid.NewString()
	d.Blocks = append(d.Blocks, Block{ID: id, Type: t})
	if d.Data == nil {
		d.Data = make(map[string]Payload)
	}
	d.Data[id] = payload
	return id, nil
}

// ReorderBlock 将组件移动到新位置，其余组件顺序紧缩；位置不变时无副作用
func (d *Draft) ReorderBlock(blockID string, newIndex int) error {
	oldIndex := d.indexOf(blockID)
	if oldIndex < 0 {
		return ErrBlockNotFound
	}
	if newIndex < 0 || newIndex >= len(d.Blocks) {
		return ErrIndexOutOfRange
	}
	if newIndex == oldIndex {
		return nil
	}

	block := d.Blocks[oldIndex]
	d.Blocks = append(d.Blocks[:oldIndex], d.Blocks[oldIndex+1:]...)
	rest := append([]Block{}, d.Blocks[newIndex:]...)
	d.Blocks = append(append(d.Blocks[:newIndex], block), rest...)
	return nil
}

// RemoveBlock 同时删除列表项与数据项，返回被删组件引用的对象 key 供调用方清理
func (d *Draft) RemoveBlock(blockID string) ([]string, error) {
	idx := d.indexOf(blockID)
	if idx < 0 {
		return nil, ErrBlockNotFound
	}

	var keys []string
	if payload, ok := d.Data[blockID]; ok {
		keys = payload.ImageKeys()
	}
	d.Blocks = append(d.Blocks[:idx], d.Blocks[idx+1:]...)
	delete(d.Data, blockID)
	return keys, nil
}

// UpdatePayload 整体替换组件数据，载体类型必须与组件声明类型一致
func (d *Draft) UpdatePayload(blockID string, payload Payload) error {
	idx := d.indexOf(blockID)
	if idx < 0 {
		return ErrBlockNotFound
	}
	if payload == nil || payload.BlockType() != d.Blocks[idx].Type {
		return ErrPayloadMismatch
	}
	if err := payload.Validate(); err != nil {
		return err
	}
	d.Data[blockID] = payload
	return nil
}

func (d *Draft) indexOf(blockID string) int {
	for i, b := range d.Blocks {
		if b.ID == blockID {
			return i
		}
	}
	return -1
}

// draftJSON 序列化形态：Data 以原始 JSON 存放，读取时按组件类型还原
type draftJSON struct {
	Title            string                     `json:"title"`
	Slug             string                     `json:"slug"`
	ShortDescription string                     `json:"shortDescription"`
	Tags             []string                   `json:"tags"`
	ThumbnailKey     string                     `json:"thumbnailKey,omitempty"`
	Blocks           []Block                    `json:"blocks"`
	Data             map[string]json.RawMessage `json:"data"`
}

func (d *Draft) MarshalJSON() ([]byte, error) {
	out := draftJSON{
		Title:            d.Title,
		Slug:             d.Slug,
		ShortDescription: d.ShortDescription,
		Tags:             d.Tags,
		ThumbnailKey:     d.ThumbnailKey,
		Blocks:           d.Blocks,
		Data:             make(map[string]json.RawMessage, len(d.Data)),
	}
	for id, payload := range d.Data {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		out.Data[id] = raw
	}
	return json.Marshal(out)
}

func (d *Draft) UnmarshalJSON(b []byte) error {
	var in draftJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	d.Title = in.Title
	d.Slug = in.Slug
	d.ShortDescription = in.ShortDescription
	d.Tags = in.Tags
	d.ThumbnailKey = in.ThumbnailKey
	d.Blocks = in.Blocks
	d.Data = make(map[string]Payload, len(in.Data))

	for _, block := range in.Blocks {
		raw, ok := in.Data[block.ID]
		if !ok {
			continue
		}
		payload, err := DecodePayload(block.Type, raw)
		if err != nil {
			return err
		}
		d.Data[block.ID] = payload
	}
	return nil
}
