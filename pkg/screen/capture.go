// Package screen 截取元素所在屏幕区域
package screen

import (
	"fmt"
	"image"

	"github.com/go-vgo/robotgo"

	"github.com/zoeyai/zoeyuia/pkg/uia"
)

// CaptureScreen 截取全屏
func CaptureScreen() (image.Image, error) {
	img, err := robotgo.CaptureImg()
	if err != nil {
		return nil, fmt.Errorf("截屏失败: %w", err)
	}
	return img, nil
}

// CaptureRect 截取元素边界矩形
func CaptureRect(r uia.Rect) (image.Image, error) {
	if r.Empty() {
		return nil, fmt.Errorf("元素边界为空: %s", r)
	}
	img, err := robotgo.CaptureImg(r.Left, r.Top, r.Width(), r.Height())
	if err != nil {
		return nil, fmt.Errorf("截取区域失败 %s: %w", r, err)
	}
	return img, nil
}

// CaptureElement 截取元素当前所在区域
func CaptureElement(e *uia.ElementInfo) (image.Image, error) {
	r, err := e.Rectangle()
	if err != nil {
		return nil, fmt.Errorf("读取元素边界失败: %w", err)
	}
	return CaptureRect(r)
}
