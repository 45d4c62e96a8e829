// Package window 枚举顶层窗口，为元素检查提供句柄入口
package window

import (
	"fmt"
	"strings"

	"github.com/zoeyai/zoeyuia/pkg/uia"
)

// WindowInfo 顶层窗口信息
type WindowInfo struct {
	Handle    uintptr  `json:"handle" yaml:"handle"`
	PID       int      `json:"pid" yaml:"pid"`
	Title     string   `json:"title" yaml:"title"`
	ClassName string   `json:"class_name" yaml:"class_name"`
	OwnerName string   `json:"owner_name" yaml:"owner_name"`
	Bounds    uia.Rect `json:"bounds" yaml:"bounds"`
}

// GetWindows 获取可见顶层窗口列表，filter 按标题或进程名部分匹配 (不区分大小写)
func GetWindows(filter ...string) ([]WindowInfo, error) {
	f := ""
	if len(filter) > 0 {
		f = strings.ToLower(strings.TrimSpace(filter[0]))
	}
	return getWindowsPlatform(f)
}

// GetWindowByTitle 按标题查找窗口 (部分匹配)
func GetWindowByTitle(title string) (*WindowInfo, error) {
	windows, err := GetWindows(title)
	if err != nil {
		return nil, err
	}

	if len(windows) == 0 {
		return nil, fmt.Errorf("未找到标题包含 %q 的窗口", title)
	}

	return &windows[0], nil
}

// GetWindowByHandle 按句柄查找窗口
func GetWindowByHandle(handle uintptr) (*WindowInfo, error) {
	windows, err := GetWindows()
	if err != nil {
		return nil, err
	}

	if w := findByHandle(windows, handle); w != nil {
		return w, nil
	}
	return nil, fmt.Errorf("未找到句柄 0x%X 对应的窗口", handle)
}

// ActivateWindow 将窗口置于前台
func ActivateWindow(w WindowInfo) error {
	return activateWindowPlatform(w)
}

// matchFilter filter 须已转为小写
func matchFilter(title, owner, filter string) bool {
	if filter == "" {
		return true
	}
	return strings.Contains(strings.ToLower(title), filter) ||
		strings.Contains(strings.ToLower(owner), filter)
}

func findByHandle(windows []WindowInfo, handle uintptr) *WindowInfo {
	if handle == 0 {
		return nil
	}
	for i := range windows {
		if windows[i].Handle == handle {
			return &windows[i]
		}
	}
	return nil
}
