//go:build windows

package handleprops

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32                     = windows.NewLazySystemDLL("user32.dll")
	procGetDlgCtrlID           = user32.NewProc("GetDlgCtrlID")
	procGetWindowTextW         = user32.NewProc("GetWindowTextW")
	procGetWindowTextLengthW   = user32.NewProc("GetWindowTextLengthW")
	procGetWindowLongW         = user32.NewProc("GetWindowLongW")
	procGetWindowLongPtrW      = user32.NewProc("GetWindowLongPtrW")
	procGetWindowRect          = user32.NewProc("GetWindowRect")
	procGetClientRect          = user32.NewProc("GetClientRect")
	procGetWindowContextHelpId = user32.NewProc("GetWindowContextHelpId")
	procGetParent              = user32.NewProc("GetParent")
)

const (
	gwlStyle    = ^uintptr(15) // -16
	gwlExStyle  = ^uintptr(19) // -20
	gwlUserData = ^uintptr(20) // -21
)

// win32Rect Windows RECT 结构
type win32Rect struct {
	Left, Top, Right, Bottom int32
}

func (r win32Rect) toRect() Rect {
	return Rect{Left: int(r.Left), Top: int(r.Top), Right: int(r.Right), Bottom: int(r.Bottom)}
}

func controlIDPlatform(hwnd uintptr) int {
	ret, _, _ := procGetDlgCtrlID.Call(hwnd)
	return int(int32(ret))
}

func dumpWindowPlatform(hwnd uintptr) (*WindowProps, error) {
	h := windows.HWND(hwnd)

	var pid uint32
	tid, err := windows.GetWindowThreadProcessId(h, &pid)
	if err != nil {
		// 句柄无效或窗口已销毁
		return nil, err
	}

	props := &WindowProps{
		Handle:    hwnd,
		ClassName: className(h),
		Text:      windowText(hwnd),
		ControlID: controlIDPlatform(hwnd),
		IsVisible: windows.IsWindowVisible(h),
		IsEnabled: windows.IsWindowEnabled(h),
		IsUnicode: windows.IsWindowUnicode(h),
		ProcessID: int(pid),
		ThreadID:  int(tid),
	}

	style, _, _ := procGetWindowLongW.Call(hwnd, gwlStyle)
	exStyle, _, _ := procGetWindowLongW.Call(hwnd, gwlExStyle)
	props.Style = uint32(style)
	props.ExStyle = uint32(exStyle)

	if procGetWindowLongPtrW.Find() == nil {
		props.UserData, _, _ = procGetWindowLongPtrW.Call(hwnd, gwlUserData)
	} else {
		props.UserData, _, _ = procGetWindowLongW.Call(hwnd, gwlUserData)
	}

	var rect win32Rect
	procGetWindowRect.Call(hwnd, uintptr(unsafe.Pointer(&rect)))
	props.Rectangle = rect.toRect()

	var client win32Rect
	procGetClientRect.Call(hwnd, uintptr(unsafe.Pointer(&client)))
	props.ClientRect = client.toRect()

	helpID, _, _ := procGetWindowContextHelpId.Call(hwnd)
	props.ContextHelpID = int(helpID)

	props.Parent, _, _ = procGetParent.Call(hwnd)

	return props, nil
}

// className 获取窗口类名
func className(h windows.HWND) string {
	buf := make([]uint16, 256)
	n, err := windows.GetClassName(h, &buf[0], int32(len(buf)))
	if err != nil || n == 0 {
		return ""
	}
	return windows.UTF16ToString(buf[:n])
}

// windowText 获取窗口文本，正确处理 UTF-16
func windowText(hwnd uintptr) string {
	length, _, _ := procGetWindowTextLengthW.Call(hwnd)
	if length == 0 {
		return ""
	}
	buf := make([]uint16, length+1)
	procGetWindowTextW.Call(hwnd, uintptr(unsafe.Pointer(&buf[0])), length+1)
	return windows.UTF16ToString(buf)
}
