package content

import "strings"

// DocNode 富文本文档树节点，结构与编辑器导出的 JSON 一致
type DocNode struct {
	Type    string         `json:"type"`
	Text    string         `json:"text,omitempty"`
	Attrs   map[string]any `json:"attrs,omitempty"`
	Content []*DocNode     `json:"content,omitempty"`
}

const nodeHeading = "heading"

// PlainText 深度优先拼接节点与其子树的全部文本
func (n *DocNode) PlainText() string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	n.appendText(&sb)
	return sb.String()
}

func (n *DocNode) appendText(sb *strings.Builder) {
	if n.Text != "" {
		sb.WriteString(n.Text)
	}
	for _, child := range n.Content {
		child.appendText(sb)
	}
}

// HeadingLevel 取 attrs 中的 level，缺失或非法时默认 1
func (n *DocNode) HeadingLevel() int {
	if n.Attrs == nil {
		return 1
	}
	var level int
	switch v := n.Attrs["level"].(type) {
	case float64:
		level = int(v)
	case int:
		level = v
	default:
		return 1
	}
	if level < 1 || level > 6 {
		return 1
	}
	return level
}
