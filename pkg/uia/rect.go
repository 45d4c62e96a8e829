package uia

import "fmt"

// Rect 元素边界（屏幕像素坐标）
type Rect struct {
	Left   int `json:"left" yaml:"left"`
	Top    int `json:"top" yaml:"top"`
	Right  int `json:"right" yaml:"right"`
	Bottom int `json:"bottom" yaml:"bottom"`
}

// Width 宽度
func (r Rect) Width() int {
	return r.Right - r.Left
}

// Height 高度
func (r Rect) Height() int {
	return r.Bottom - r.Top
}

// Empty 是否为空矩形
func (r Rect) Empty() bool {
	return r.Width() <= 0 || r.Height() <= 0
}

func (r Rect) String() string {
	return fmt.Sprintf("(L%d, T%d, R%d, B%d)", r.Left, r.Top, r.Right, r.Bottom)
}
