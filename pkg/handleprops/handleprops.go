// Package handleprops 提供基于原生窗口句柄的属性查询
package handleprops

import "errors"

// ErrUnsupported 当前平台不支持
var ErrUnsupported = errors.New("当前平台不支持 UI Automation (需要 Windows)")

// Rect 窗口矩形
type Rect struct {
	Left   int `json:"left" yaml:"left"`
	Top    int `json:"top" yaml:"top"`
	Right  int `json:"right" yaml:"right"`
	Bottom int `json:"bottom" yaml:"bottom"`
}

// WindowProps 窗口属性快照
type WindowProps struct {
	Handle        uintptr `json:"handle" yaml:"handle"`
	ClassName     string  `json:"class_name" yaml:"class_name"`
	Text          string  `json:"text" yaml:"text"`
	ControlID     int     `json:"control_id" yaml:"control_id"`
	Style         uint32  `json:"style" yaml:"style"`
	ExStyle       uint32  `json:"ex_style" yaml:"ex_style"`
	Rectangle     Rect    `json:"rectangle" yaml:"rectangle"`
	ClientRect    Rect    `json:"client_rect" yaml:"client_rect"`
	IsVisible     bool    `json:"is_visible" yaml:"is_visible"`
	IsEnabled     bool    `json:"is_enabled" yaml:"is_enabled"`
	IsUnicode     bool    `json:"is_unicode" yaml:"is_unicode"`
	ProcessID     int     `json:"process_id" yaml:"process_id"`
	ThreadID      int     `json:"thread_id" yaml:"thread_id"`
	UserData      uintptr `json:"user_data" yaml:"user_data"`
	ContextHelpID int     `json:"context_help_id" yaml:"context_help_id"`
	Parent        uintptr `json:"parent" yaml:"parent"`
}

// Helper 原生窗口属性查询实现
type Helper struct{}

// Default 返回默认实现
func Default() *Helper {
	return &Helper{}
}

// ControlID 返回窗口控件 ID
func (h *Helper) ControlID(hwnd uintptr) int {
	return ControlID(hwnd)
}

// DumpWindow 导出窗口属性
func (h *Helper) DumpWindow(hwnd uintptr) (*WindowProps, error) {
	return DumpWindow(hwnd)
}

// ControlID 返回窗口控件 ID，无效句柄返回 0
func ControlID(hwnd uintptr) int {
	if hwnd == 0 {
		return 0
	}
	return controlIDPlatform(hwnd)
}

// DumpWindow 导出窗口属性
func DumpWindow(hwnd uintptr) (*WindowProps, error) {
	if hwnd == 0 {
		return nil, errors.New("窗口句柄为空")
	}
	return dumpWindowPlatform(hwnd)
}
