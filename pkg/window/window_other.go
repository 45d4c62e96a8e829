//go:build !windows

package window

import (
	"fmt"

	"github.com/go-vgo/robotgo"

	"github.com/zoeyai/zoeyuia/pkg/uia"
)

// getWindowsPlatform 非 Windows 平台没有原生句柄，Handle 恒为 0
func getWindowsPlatform(filter string) ([]WindowInfo, error) {
	pids, err := robotgo.Pids()
	if err != nil {
		return nil, fmt.Errorf("获取进程列表失败: %w", err)
	}

	var result []WindowInfo

	for _, pid := range pids {
		title := robotgo.GetTitle(pid)
		if title == "" {
			continue
		}

		name, _ := robotgo.FindName(pid)
		if !matchFilter(title, name, filter) {
			continue
		}

		x, y, w, h := robotgo.GetBounds(pid)
		result = append(result, WindowInfo{
			PID:       pid,
			Title:     title,
			OwnerName: name,
			Bounds:    uia.Rect{Left: x, Top: y, Right: x + w, Bottom: y + h},
		})
	}

	return result, nil
}

func activateWindowPlatform(w WindowInfo) error {
	if w.PID <= 0 {
		return fmt.Errorf("无效的 PID: %d", w.PID)
	}
	if err := robotgo.ActivePid(w.PID); err != nil {
		return fmt.Errorf("激活窗口失败: %w", err)
	}
	return nil
}
