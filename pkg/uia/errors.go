package uia

import (
	"errors"

	"github.com/zoeyai/zoeyuia/pkg/handleprops"
)

var (
	// ErrInvalidArgument 构造参数类型不受支持
	ErrInvalidArgument = errors.New("无效参数")
	// ErrProviderUnavailable 可访问性引擎拒绝调用，或目标进程/窗口已退出
	ErrProviderUnavailable = errors.New("UI Automation 调用失败")
	// ErrNoTextPattern 元素不支持文本模式
	ErrNoTextPattern = errors.New("元素不支持 TextPattern")
	// ErrNoWindowHandle 元素没有原生窗口句柄
	ErrNoWindowHandle = errors.New("元素没有原生窗口句柄")
	// ErrUnexpectedValue 属性值类型与约定不符
	ErrUnexpectedValue = errors.New("属性值类型不匹配")
	// ErrUnsupported 当前平台不支持 UI Automation
	ErrUnsupported = handleprops.ErrUnsupported
)
