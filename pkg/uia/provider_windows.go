//go:build windows

package uia

import (
	"fmt"
	"runtime"
	"unsafe"

	ole "github.com/go-ole/go-ole"
)

// comProvider 基于 IUIAutomation 的 Provider 实现
type comProvider struct {
	automation *ole.IUnknown
	walker     *ole.IUnknown
	trueCond   *ole.IUnknown
}

// NewProvider 创建 Windows UI Automation Provider
func NewProvider() (Provider, error) {
	if err := initCOM(); err != nil {
		return nil, fmt.Errorf("初始化 COM 失败: %w", err)
	}

	automation, err := ole.CreateInstance(clsidCUIAutomation, iidIUIAutomation)
	if err != nil {
		return nil, fmt.Errorf("创建 CUIAutomation 失败: %w", err)
	}

	p := &comProvider{automation: automation}
	if err := comCall(automation, vtGetControlViewWalker, uintptr(unsafe.Pointer(&p.walker))); err != nil {
		p.release()
		return nil, fmt.Errorf("获取 ControlViewWalker 失败: %w", err)
	}
	if err := comCall(automation, vtCreateTrueCondition, uintptr(unsafe.Pointer(&p.trueCond))); err != nil {
		p.release()
		return nil, fmt.Errorf("创建 TrueCondition 失败: %w", err)
	}

	runtime.SetFinalizer(p, (*comProvider).release)
	return p, nil
}

func (p *comProvider) release() {
	for _, obj := range []*ole.IUnknown{p.trueCond, p.walker, p.automation} {
		if obj != nil {
			obj.Release()
		}
	}
	p.trueCond, p.walker, p.automation = nil, nil, nil
}

// Root 返回桌面根元素
func (p *comProvider) Root() (NativeElement, error) {
	var out *ole.IUnknown
	if err := comCall(p.automation, vtGetRootElement, uintptr(unsafe.Pointer(&out))); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, fmt.Errorf("%w: 根元素为空", ErrProviderUnavailable)
	}
	return newComElement(out), nil
}

// FromWindowHandle 根据窗口句柄获取元素
func (p *comProvider) FromWindowHandle(hwnd uintptr) (NativeElement, error) {
	var out *ole.IUnknown
	if err := comCall(p.automation, vtElementFromHandle, hwnd, uintptr(unsafe.Pointer(&out))); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, fmt.Errorf("%w: 句柄 0x%X 没有对应元素", ErrProviderUnavailable, hwnd)
	}
	return newComElement(out), nil
}

// Parent 通过 ControlViewWalker 获取父元素
func (p *comProvider) Parent(e NativeElement) (NativeElement, error) {
	ce, err := asComElement(e)
	if err != nil {
		return nil, err
	}
	var out *ole.IUnknown
	if err := comCall(p.walker, vtGetParentElement, uintptr(unsafe.Pointer(ce.unk)), uintptr(unsafe.Pointer(&out))); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, nil
	}
	return newComElement(out), nil
}

// FindAll 按范围查找所有元素
func (p *comProvider) FindAll(e NativeElement, scope TreeScope) ([]NativeElement, error) {
	ce, err := asComElement(e)
	if err != nil {
		return nil, err
	}

	var array *ole.IUnknown
	if err := comCall(ce.unk, vtFindAll, uintptr(scope), uintptr(unsafe.Pointer(p.trueCond)), uintptr(unsafe.Pointer(&array))); err != nil {
		return nil, err
	}
	if array == nil {
		return nil, nil
	}
	defer array.Release()

	var length int32
	if err := comCall(array, vtArrayLength, uintptr(unsafe.Pointer(&length))); err != nil {
		return nil, err
	}

	result := make([]NativeElement, 0, length)
	for i := int32(0); i < length; i++ {
		var out *ole.IUnknown
		if err := comCall(array, vtArrayGetElement, uintptr(i), uintptr(unsafe.Pointer(&out))); err != nil {
			return nil, err
		}
		if out != nil {
			result = append(result, newComElement(out))
		}
	}
	return result, nil
}

// Property 读取元素当前属性
func (p *comProvider) Property(e NativeElement, id PropertyID) (interface{}, error) {
	ce, err := asComElement(e)
	if err != nil {
		return nil, err
	}
	if id == PropRuntimeID {
		return runtimeID(ce)
	}

	var v ole.VARIANT
	ole.VariantInit(&v)
	if err := comCall(ce.unk, vtGetCurrentPropertyValue, uintptr(id), uintptr(unsafe.Pointer(&v))); err != nil {
		return nil, err
	}
	defer ole.VariantClear(&v)

	if id == PropBoundingRectangle {
		return boundingRect(&v)
	}
	return v.Value(), nil
}

// TextContent 读取 TextPattern 的完整文档文本
func (p *comProvider) TextContent(e NativeElement) (string, error) {
	ce, err := asComElement(e)
	if err != nil {
		return "", err
	}

	var pattern *ole.IUnknown
	if err := comCall(ce.unk, vtGetCurrentPatternAs, uintptr(textPatternID),
		uintptr(unsafe.Pointer(iidIUIAutomationTextPattern)), uintptr(unsafe.Pointer(&pattern))); err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoTextPattern, err)
	}
	if pattern == nil {
		return "", ErrNoTextPattern
	}
	defer pattern.Release()

	var docRange *ole.IUnknown
	if err := comCall(pattern, vtGetDocumentRange, uintptr(unsafe.Pointer(&docRange))); err != nil {
		return "", err
	}
	if docRange == nil {
		return "", ErrNoTextPattern
	}
	defer docRange.Release()

	// -1 表示读取整个范围，不限制长度
	maxLength := int32(-1)
	var bstr *uint16
	if err := comCall(docRange, vtGetText, uintptr(maxLength), uintptr(unsafe.Pointer(&bstr))); err != nil {
		return "", err
	}
	if bstr == nil {
		return "", nil
	}
	defer ole.SysFreeString((*int16)(unsafe.Pointer(bstr)))
	return ole.BstrToString(bstr), nil
}

// runtimeID 调用 GetRuntimeId 并转换 SAFEARRAY
func runtimeID(ce *comElement) ([]int32, error) {
	var psa *ole.SafeArray
	if err := comCall(ce.unk, vtGetRuntimeID, uintptr(unsafe.Pointer(&psa))); err != nil {
		return nil, err
	}
	if psa == nil {
		return nil, nil
	}
	sac := &ole.SafeArrayConversion{Array: psa}
	defer sac.Release()

	values := sac.ToValueArray()
	id := make([]int32, 0, len(values))
	for _, v := range values {
		n, ok := v.(int32)
		if !ok {
			return nil, unexpected(PropRuntimeID, v)
		}
		id = append(id, n)
	}
	return id, nil
}

// boundingRect 将 [left, top, width, height] 转换为 Rect
func boundingRect(v *ole.VARIANT) (Rect, error) {
	arr := v.ToArray()
	if arr == nil {
		return Rect{}, nil
	}
	values := arr.ToValueArray()
	if len(values) != 4 {
		return Rect{}, fmt.Errorf("%w: BoundingRectangle 长度为 %d", ErrUnexpectedValue, len(values))
	}

	var f [4]float64
	for i, val := range values {
		n, ok := val.(float64)
		if !ok {
			return Rect{}, unexpected(PropBoundingRectangle, val)
		}
		f[i] = n
	}

	left, top := int(f[0]), int(f[1])
	return Rect{
		Left:   left,
		Top:    top,
		Right:  left + int(f[2]),
		Bottom: top + int(f[3]),
	}, nil
}
