package uia

import "github.com/zoeyai/zoeyuia/pkg/handleprops"

// DiagnosticFunc 降级回调：op 为降级的操作名，err 为被吞掉的底层错误
type DiagnosticFunc func(op string, err error)

// Option 配置选项函数类型
type Option func(*Options)

// Options ElementInfo 配置
type Options struct {
	// Helper 原生窗口属性查询
	Helper WindowHelper
	// Diagnostics ProcessID/RichText 降级时的回调，nil 表示不通知
	Diagnostics DiagnosticFunc
}

// DefaultOptions 默认配置
func DefaultOptions() *Options {
	return &Options{
		Helper:      handleprops.Default(),
		Diagnostics: nil,
	}
}

// ApplyOptions 应用配置选项
func ApplyOptions(opts ...Option) *Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithWindowHelper 设置原生窗口属性查询实现
func WithWindowHelper(h WindowHelper) Option {
	return func(o *Options) {
		o.Helper = h
	}
}

// WithDiagnostics 设置降级回调
func WithDiagnostics(fn DiagnosticFunc) Option {
	return func(o *Options) {
		o.Diagnostics = fn
	}
}
