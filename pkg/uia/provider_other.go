//go:build !windows

package uia

// NewProvider 非 Windows 平台不支持 UI Automation
func NewProvider() (Provider, error) {
	return nil, ErrUnsupported
}
