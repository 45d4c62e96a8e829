//go:build !windows

package handleprops

// controlIDPlatform 非 Windows 平台没有控件 ID
func controlIDPlatform(_ uintptr) int {
	return 0
}

// dumpWindowPlatform 非 Windows 平台不支持
func dumpWindowPlatform(_ uintptr) (*WindowProps, error) {
	return nil, ErrUnsupported
}
