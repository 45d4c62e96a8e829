//go:build windows

package window

import (
	"fmt"
	"strings"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/zoeyai/zoeyuia/pkg/uia"
)

var (
	user32                   = windows.NewLazySystemDLL("user32.dll")
	procEnumWindows          = user32.NewProc("EnumWindows")
	procGetWindowTextW       = user32.NewProc("GetWindowTextW")
	procGetWindowTextLengthW = user32.NewProc("GetWindowTextLengthW")
	procGetWindowRect        = user32.NewProc("GetWindowRect")
	procGetWindowLongW       = user32.NewProc("GetWindowLongW")
	procSetForegroundWindow  = user32.NewProc("SetForegroundWindow")
	procShowWindow           = user32.NewProc("ShowWindow")
	procBringWindowToTop     = user32.NewProc("BringWindowToTop")
	procIsIconic             = user32.NewProc("IsIconic")
)

const (
	gwlExStyle = ^uintptr(19) // -20

	wsExToolWindow uintptr = 0x00000080
	wsExAppWindow  uintptr = 0x00040000

	swRestore = 9

	minWindowSize = 50
)

// win32Rect Windows RECT 结构
type win32Rect struct {
	Left, Top, Right, Bottom int32
}

func getWindowsPlatform(filter string) ([]WindowInfo, error) {
	result := make([]WindowInfo, 0, 64)

	callback := windows.NewCallback(func(hwnd windows.HWND, _ uintptr) uintptr {
		if w, ok := describeWindow(hwnd); ok && matchFilter(w.Title, w.OwnerName, filter) {
			result = append(result, w)
		}
		return 1
	})

	ret, _, err := procEnumWindows.Call(callback, 0)
	if ret == 0 {
		return nil, fmt.Errorf("枚举窗口失败: %w", err)
	}

	return result, nil
}

// describeWindow 过滤掉不可见、无标题、工具窗口和过小的窗口
func describeWindow(hwnd windows.HWND) (WindowInfo, bool) {
	if !windows.IsWindowVisible(hwnd) {
		return WindowInfo{}, false
	}

	exStyle, _, _ := procGetWindowLongW.Call(uintptr(hwnd), gwlExStyle)
	if exStyle&wsExToolWindow != 0 && exStyle&wsExAppWindow == 0 {
		return WindowInfo{}, false
	}

	title := windowText(hwnd)
	if title == "" {
		return WindowInfo{}, false
	}

	var pid uint32
	if _, err := windows.GetWindowThreadProcessId(hwnd, &pid); err != nil || pid == 0 {
		return WindowInfo{}, false
	}

	var rect win32Rect
	procGetWindowRect.Call(uintptr(hwnd), uintptr(unsafe.Pointer(&rect)))
	bounds := uia.Rect{
		Left:   int(rect.Left),
		Top:    int(rect.Top),
		Right:  int(rect.Right),
		Bottom: int(rect.Bottom),
	}
	if bounds.Width() < minWindowSize || bounds.Height() < minWindowSize {
		return WindowInfo{}, false
	}

	classBuf := make([]uint16, 256)
	n, _ := windows.GetClassName(hwnd, &classBuf[0], int32(len(classBuf)))

	return WindowInfo{
		Handle:    uintptr(hwnd),
		PID:       int(pid),
		Title:     title,
		ClassName: windows.UTF16ToString(classBuf[:n]),
		OwnerName: processName(pid),
		Bounds:    bounds,
	}, true
}

func windowText(hwnd windows.HWND) string {
	length, _, _ := procGetWindowTextLengthW.Call(uintptr(hwnd))
	if length == 0 {
		return ""
	}

	buf := make([]uint16, length+1)
	procGetWindowTextW.Call(uintptr(hwnd), uintptr(unsafe.Pointer(&buf[0])), length+1)
	return windows.UTF16ToString(buf)
}

// processName 通过 PID 获取进程名称 (不含 .exe)
func processName(pid uint32) string {
	h, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, pid)
	if err != nil {
		return ""
	}
	defer windows.CloseHandle(h)

	buf := make([]uint16, windows.MAX_PATH)
	size := uint32(len(buf))
	if err := windows.QueryFullProcessImageName(h, 0, &buf[0], &size); err != nil {
		return ""
	}

	name := windows.UTF16ToString(buf[:size])
	if i := strings.LastIndexAny(name, `\/`); i >= 0 {
		name = name[i+1:]
	}
	if strings.HasSuffix(strings.ToLower(name), ".exe") {
		name = name[:len(name)-4]
	}
	return name
}

func activateWindowPlatform(w WindowInfo) error {
	if w.Handle == 0 {
		return fmt.Errorf("窗口句柄为空: %s", w.Title)
	}

	if iconic, _, _ := procIsIconic.Call(w.Handle); iconic != 0 {
		procShowWindow.Call(w.Handle, swRestore)
	}
	procBringWindowToTop.Call(w.Handle)

	ret, _, _ := procSetForegroundWindow.Call(w.Handle)
	if ret == 0 {
		return fmt.Errorf("SetForegroundWindow 失败: 0x%X", w.Handle)
	}

	return nil
}
