package content

import (
	"errors"

	"github.com/goccy/go-json"
)

// BlockType 组件类型标签，取值与存储行的 type 字段一致
type BlockType string

const (
	BlockRichText  BlockType = "richtext"
	BlockImageText BlockType = "imagetext"
	BlockImage     BlockType = "imageuploader"
	BlockVideo     BlockType = "videoplayer"
	BlockTable     BlockType = "table"
	BlockCode      BlockType = "code"
)

const (
	AlignLeft  = "left"
	AlignRight = "right"
)

const (
	VideoKindEmbed = "embed"
	VideoKindFile  = "file"
)

var (
	ErrUnknownBlockType = errors.New("未知的组件类型")
	ErrPayloadMismatch  = errors.New("组件数据与类型不匹配")
	ErrPayloadInvalid   = errors.New("组件数据格式错误")
	ErrBlockNotFound    = errors.New("组件不存在")
	ErrIndexOutOfRange  = errors.New("组件位置越界")
)

// Block 有序组件列表中的一项，数据本体在 Draft.Data 中按 ID 关联
type Block struct {
	ID   string    `json:"id"`
	Type BlockType `json:"type"`
}

// Payload 各组件类型的数据载体，按类型标签判别
type Payload interface {
	BlockType() BlockType
	Validate() error
	// Empty 为 true 的组件在持久化时被跳过，不落行
	Empty() bool
	// ImageKeys 返回载体引用的对象存储 key，用于删除时清理外部对象
	ImageKeys() []string
}

type RichTextPayload struct {
	Doc *DocNode `json:"doc,omitempty"`
}

func (p *RichTextPayload) BlockType() BlockType { return BlockRichText }

func (p *RichTextPayload) Validate() error {
	if p.Doc == nil {
		return nil
	}
	if p.Doc.Type == "" {
		return ErrPayloadInvalid
	}
	return nil
}

func (p *RichTextPayload) Empty() bool {
	return p.Doc == nil || len(p.Doc.Content) == 0
}

func (p *RichTextPayload) ImageKeys() []string { return nil }

type ImageTextPayload struct {
	Text      string `json:"text"`
	ImageKey  string `json:"imageKey"`
	Alignment string `json:"alignment"`
	// ImageURL 读取时由对象存储 key 解析得到，不落库
	ImageURL string `json:"imageUrl,omitempty"`
}

func (p *ImageTextPayload) BlockType() BlockType { return BlockImageText }

func (p *ImageTextPayload) Validate() error {
	if p.Alignment != "" && p.Alignment != AlignLeft && p.Alignment != AlignRight {
		return ErrPayloadInvalid
	}
	return nil
}

func (p *ImageTextPayload) Empty() bool {
	return p.Text == "" && p.ImageKey == ""
}

func (p *ImageTextPayload) ImageKeys() []string {
	if p.ImageKey == "" {
		return nil
	}
	return []string{p.ImageKey}
}

type ImagePayload struct {
	ImageKey string `json:"imageKey"`
	ImageURL string `json:"imageUrl,omitempty"`
}

func (p *ImagePayload) BlockType() BlockType { return BlockImage }

func (p *ImagePayload) Validate() error { return nil }

func (p *ImagePayload) Empty() bool { return p.ImageKey == "" }

func (p *ImagePayload) ImageKeys() []string {
	if p.ImageKey == "" {
		return nil
	}
	return []string{p.ImageKey}
}

type VideoPayload struct {
	URL  string `json:"url"`
	Kind string `json:"kind"`
}

func (p *VideoPayload) BlockType() BlockType { return BlockVideo }

func (p *VideoPayload) Validate() error {
	if p.Kind != "" && p.Kind != VideoKindEmbed && p.Kind != VideoKindFile {
		return ErrPayloadInvalid
	}
	return nil
}

func (p *VideoPayload) Empty() bool { return p.URL == "" }

func (p *VideoPayload) ImageKeys() []string { return nil }

type TablePayload struct {
	Headers    []string   `json:"headers"`
	Alignments []string   `json:"alignments,omitempty"`
	Rows       [][]string `json:"rows"`
	Bordered   bool       `json:"bordered"`
	Striped    bool       `json:"striped"`
}

func (p *TablePayload) BlockType() BlockType { return BlockTable }

func (p *TablePayload) Validate() error {
	cols := len(p.Headers)
	if len(p.Alignments) != 0 && len(p.Alignments) != cols {
		return ErrPayloadInvalid
	}
	for _, row := range p.Rows {
		if len(row) != cols {
			return ErrPayloadInvalid
		}
	}
	return nil
}

func (p *TablePayload) Empty() bool {
	return len(p.Headers) == 0 && len(p.Rows) == 0
}

func (p *TablePayload) ImageKeys() []string { return nil }

type CodePayload struct {
	Code            string `json:"code"`
	Language        string `json:"language"`
	Filename        string `json:"filename,omitempty"`
	ShowLineNumbers bool   `json:"showLineNumbers"`
}

func (p *CodePayload) BlockType() BlockType { return BlockCode }

func (p *CodePayload) Validate() error { return nil }

func (p *CodePayload) Empty() bool { return p.Code == "" }

func (p *CodePayload) ImageKeys() []string { return nil }

// EmptyPayload 返回给定类型的默认空载体
func EmptyPayload(t BlockType) (Payload, error) {
	switch t {
	case BlockRichText:
		return &RichTextPayload{}, nil
	case BlockImageText:
		return &ImageTextPayload{Alignment: AlignLeft}, nil
	case BlockImage:
		return &ImagePayload{}, nil
	case BlockVideo:
		return &VideoPayload{}, nil
	case BlockTable:
		return &TablePayload{}, nil
	case BlockCode:
		return &CodePayload{}, nil
	default:
		return nil, ErrUnknownBlockType
	}
}

// DecodePayload 按类型标签将 JSON 还原为对应载体并校验
func DecodePayload(t BlockType, raw []byte) (Payload, error) {
	p, err := EmptyPayload(t)
	if err != nil {
		return nil, err
	}
	if len(raw) > 0 {
		if err = json.Unmarshal(raw, p); err != nil {
			return nil, ErrPayloadInvalid
		}
	}
	if err = p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}
