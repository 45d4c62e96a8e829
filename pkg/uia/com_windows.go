//go:build windows

package uia

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"syscall"
	"unsafe"

	ole "github.com/go-ole/go-ole"
)

var (
	clsidCUIAutomation          = ole.NewGUID("{FF48DBA4-60EF-4201-AA87-54103EEF594E}")
	iidIUIAutomation            = ole.NewGUID("{30CBE57D-D9D0-452A-AB13-7AC5AC4825EE}")
	iidIUIAutomationTextPattern = ole.NewGUID("{32EBA289-3583-42C9-9C59-3B6D9A1E9B6A}")
)

// UIA_TextPatternId
const textPatternID = 10014

// 虚表索引（前 3 项为 IUnknown）
const (
	// IUIAutomation
	vtGetRootElement       = 5
	vtElementFromHandle    = 6
	vtGetControlViewWalker = 14
	vtCreateTrueCondition  = 21

	// IUIAutomationTreeWalker
	vtGetParentElement = 3

	// IUIAutomationElement
	vtGetRuntimeID            = 4
	vtFindAll                 = 6
	vtGetCurrentPropertyValue = 10
	vtGetCurrentPatternAs     = 14

	// IUIAutomationElementArray
	vtArrayLength     = 3
	vtArrayGetElement = 4

	// IUIAutomationTextPattern
	vtGetDocumentRange = 7

	// IUIAutomationTextRange
	vtGetText = 12
)

var (
	comOnce sync.Once
	comErr  error
)

// initCOM 以 MTA 模式初始化 COM，进程内只执行一次
func initCOM() error {
	comOnce.Do(func() {
		err := ole.CoInitializeEx(0, ole.COINIT_MULTITHREADED)
		var oleErr *ole.OleError
		if err != nil && errors.As(err, &oleErr) {
			switch oleErr.Code() {
			case 0x00000001, 0x80010106: // S_FALSE, RPC_E_CHANGED_MODE
				err = nil
			}
		}
		comErr = err
	})
	return comErr
}

// comCall 按虚表索引调用 COM 方法
func comCall(obj *ole.IUnknown, method int, args ...uintptr) error {
	if obj == nil {
		return fmt.Errorf("%w: COM 对象为空", ErrProviderUnavailable)
	}
	vtbl := (*[64]uintptr)(unsafe.Pointer(obj.RawVTable))
	callArgs := make([]uintptr, 0, len(args)+1)
	callArgs = append(callArgs, uintptr(unsafe.Pointer(obj)))
	callArgs = append(callArgs, args...)
	hr, _, _ := syscall.SyscallN(vtbl[method], callArgs...)
	if int32(hr) < 0 {
		return fmt.Errorf("%w: %v", ErrProviderUnavailable, ole.NewError(hr))
	}
	return nil
}

// comElement IUIAutomationElement 引用，随 GC 释放
type comElement struct {
	unk *ole.IUnknown
}

func newComElement(unk *ole.IUnknown) *comElement {
	e := &comElement{unk: unk}
	runtime.SetFinalizer(e, func(e *comElement) {
		e.unk.Release()
	})
	return e
}

func asComElement(e NativeElement) (*comElement, error) {
	ce, ok := e.(*comElement)
	if !ok || ce == nil || ce.unk == nil {
		return nil, fmt.Errorf("%w: 不是 IUIAutomationElement (%T)", ErrInvalidArgument, e)
	}
	return ce, nil
}
