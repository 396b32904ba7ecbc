package content

import (
	"Inkstone/internal/model"
	log "log/slog"
	"sort"
	"strconv"

	"github.com/goccy/go-json"
)

// ToRows 将草稿组件按序展开为存储行，position 取连续下标。
// 空载体的组件不落行（与页面端提交行为一致）。
func ToRows(d *Draft, blogID uint64) ([]*model.BlogComponent, error) {
	rows := make([]*model.BlogComponent, 0, len(d.Blocks))

	for _, block := range d.Blocks {
		payload, ok := d.Data[block.ID]
		if !ok || payload.Empty() {
			continue
		}
		if err := payload.Validate(); err != nil {
			// 单个组件数据非法时跳过该组件，不让整篇提交失败
			log.Warn("skip invalid block payload", "blockID", block.ID, "type", block.Type, "err", err)
			continue
		}

		row := &model.BlogComponent{
			BlogID:    blogID,
			Type:      string(block.Type),
			SortOrder: len(rows),
		}
		if err := widen(payload, row); err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// FromRows 将存储行按 position 升序还原为组件列表与数据表。
// 还原失败的行跳过（降级渲染），组件 ID 换用服务端行 ID。
func FromRows(rows []*model.BlogComponent) ([]Block, map[string]Payload) {
	ordered := make([]*model.BlogComponent, len(rows))
	copy(ordered, rows)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].SortOrder < ordered[j].SortOrder
	})

	blocks := make([]Block, 0, len(ordered))
	data := make(map[string]Payload, len(ordered))

	for _, row := range ordered {
		payload, err := narrow(row)
		if err != nil {
			log.Warn("skip unreadable component row", "rowID", row.ID, "type", row.Type, "err", err)
			continue
		}
		id := strconv.FormatUint(row.ID, 10)
		blocks = append(blocks, Block{ID: id, Type: BlockType(row.Type)})
		data[id] = payload
	}
	return blocks, data
}

// widen 把类型化载体摊平到宽表行
func widen(payload Payload, row *model.BlogComponent) error {
	switch p := payload.(type) {
	case *RichTextPayload:
		raw, err := json.Marshal(p.Doc)
		if err != nil {
			return err
		}
		row.Content = ptr(string(raw))
	case *ImageTextPayload:
		row.Text = ptr(p.Text)
		row.ImageKey = ptr(p.ImageKey)
		alignment := p.Alignment
		if alignment == "" {
			alignment = AlignLeft
		}
		row.Alignment = ptr(alignment)
	case *ImagePayload:
		row.ImageKey = ptr(p.ImageKey)
	case *VideoPayload:
		row.VideoURL = ptr(p.URL)
		row.VideoType = ptr(p.Kind)
	case *TablePayload, *CodePayload:
		raw, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		row.Content = ptr(string(raw))
	default:
		return ErrUnknownBlockType
	}
	return nil
}

// narrow 把宽表行收窄回类型化载体
func narrow(row *model.BlogComponent) (Payload, error) {
	switch BlockType(row.Type) {
	case BlockRichText:
		p := &RichTextPayload{}
		if row.Content != nil && *row.Content != "" {
			if err := json.Unmarshal([]byte(*row.Content), &p.Doc); err != nil {
				return nil, ErrPayloadInvalid
			}
		}
		return p, p.Validate()
	case BlockImageText:
		p := &ImageTextPayload{
			Text:      deref(row.Text),
			ImageKey:  deref(row.ImageKey),
			Alignment: deref(row.Alignment),
		}
		return p, p.Validate()
	case BlockImage:
		return &ImagePayload{ImageKey: deref(row.ImageKey)}, nil
	case BlockVideo:
		p := &VideoPayload{URL: deref(row.VideoURL), Kind: deref(row.VideoType)}
		return p, p.Validate()
	case BlockTable:
		p := &TablePayload{}
		if err := unmarshalContent(row.Content, p); err != nil {
			return nil, err
		}
		return p, p.Validate()
	case BlockCode:
		p := &CodePayload{}
		if err := unmarshalContent(row.Content, p); err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, ErrUnknownBlockType
	}
}

func unmarshalContent(content *string, out any) error {
	if content == nil || *content == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(*content), out); err != nil {
		return ErrPayloadInvalid
	}
	return nil
}

func ptr(s string) *string {
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
