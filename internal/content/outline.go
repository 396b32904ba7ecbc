package content

import "fmt"

// Heading 从富文本标题节点导出的导航项，只在渲染期存在，不落库
type Heading struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Level int    `json:"level"`
}

// OutlineNode 目录树节点
type OutlineNode struct {
	Heading
	Children []*OutlineNode `json:"children,omitempty"`
}

// Anchor 已渲染标题的锚点位置，Present 为 false 表示该标题尚未出现在页面上
type Anchor struct {
	ID      string
	Top     float64
	Present bool
}

// ActiveThreshold 激活线距视口顶部的偏移
const ActiveThreshold = 120.0

// ExtractHeadings 按出现顺序遍历全文所有富文本组件，深度优先收集标题。
// 标题 ID 按全文序号生成，供锚点定位使用。
func ExtractHeadings(blocks []Block, data map[string]Payload) []Heading {
	var headings []Heading

	for _, block := range blocks {
		if block.Type != BlockRichText {
			continue
		}
		p, ok := data[block.ID].(*RichTextPayload)
		if !ok || p.Doc == nil {
			continue
		}
		collectHeadings(p.Doc, &headings)
	}
	return headings
}

func collectHeadings(node *DocNode, out *[]Heading) {
	if node == nil {
		return
	}
	if node.Type == nodeHeading {
		text := node.PlainText()
		if text != "" {
			*out = append(*out, Heading{
				ID:    fmt.Sprintf("heading-%d", len(*out)),
				Text:  text,
				Level: node.HeadingLevel(),
			})
		}
		return
	}
	for _, child := range node.Content {
		collectHeadings(child, out)
	}
}

// BuildOutline 把线性标题序列构造成层级目录树。
// 对每个新标题：弹栈直到栈顶层级小于它，随后挂到栈顶之下（栈空则为根），再入栈。
func BuildOutline(headings []Heading) []*OutlineNode {
	var roots []*OutlineNode
	var stack []*OutlineNode

	for _, h := range headings {
		node := &OutlineNode{Heading: h}

		for len(stack) > 0 && stack[len(stack)-1].Level >= h.Level {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			roots = append(roots, node)
		} else {
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, node)
		}
		stack = append(stack, node)
	}
	return roots
}

// ActiveHeading 返回当前滚动位置应高亮的标题 ID：
// 取激活线上方最后一个已渲染锚点，一个都不够则取第一个。
func ActiveHeading(scrollOffset float64, anchors []Anchor) string {
	active := ""
	first := ""

	for _, a := range anchors {
		if !a.Present {
			continue
		}
		if first == "" {
			first = a.ID
		}
		if a.Top-scrollOffset <= ActiveThreshold {
			active = a.ID
		}
	}
	if active == "" {
		return first
	}
	return active
}
