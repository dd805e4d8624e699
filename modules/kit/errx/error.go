// Package errx 是统一错误模型：稳定 code、面向调用方的 msg、分类，以及只用于溯源的 cause 与栈。
package errx

import (
	"errors"
	"fmt"
	"maps"
	"runtime"
	"slices"
)

// Code 是对外语义的稳定标识，客户端按 code 分支。
type Code string

// Category 是错误的粗分类，接口层据此决定业务码与日志级别。
type Category string

const (
	CategoryValidation    Category = "validation"
	CategoryAuthorization Category = "authorization"
	CategoryState         Category = "state"
	CategoryFunding       Category = "funding"
	CategorySignature     Category = "signature"
	CategorySystem        Category = "system"
)

const (
	maxStackDepth = 64
	maxChainDepth = 32
)

// Error 不可变：With* 与 In 都返回副本，哨兵可以安全派生。
// 栈只对系统类错误在首次挂 cause 时捕获一次。
type Error struct {
	code  Code
	msg   string
	cat   Category
	data  map[string]any
	cause error
	stack []uintptr
}

// NewBiz 创建业务拒绝；未用 In 指定分类时视为状态类。
func NewBiz(code Code, msg string) *Error {
	return &Error{code: code, msg: msg, cat: CategoryState}
}

func NewSys(code Code, msg string) *Error {
	return &Error{code: code, msg: msg, cat: CategorySystem}
}

func (e *Error) In(cat Category) *Error {
	next := e.clone()
	next.cat = cat
	return next
}

func (e *Error) WithData(key string, value any) *Error {
	next := e.clone()
	if next.data == nil {
		next.data = make(map[string]any, 1)
	}
	next.data[key] = value
	return next
}

func (e *Error) WithDataMap(data map[string]any) *Error {
	next := e.clone()
	if len(data) == 0 {
		return next
	}
	if next.data == nil {
		next.data = make(map[string]any, len(data))
	}
	maps.Copy(next.data, data)
	return next
}

// WithCause 挂上原始错误；下层已带栈时不再重复捕获。
func (e *Error) WithCause(cause error) *Error {
	next := e.clone()
	next.cause = cause
	if next.cat == CategorySystem && cause != nil && len(next.stack) == 0 && !hasStack(cause) {
		next.stack = captureStack(3)
	}
	return next
}

func (e *Error) clone() *Error {
	return &Error{
		code:  e.code,
		msg:   e.msg,
		cat:   e.cat,
		data:  maps.Clone(e.data),
		cause: e.cause,
		stack: slices.Clone(e.stack),
	}
}

func (e *Error) Code() Code {
	if e == nil {
		return ""
	}
	return e.code
}

func (e *Error) Msg() string {
	if e == nil {
		return ""
	}
	return e.msg
}

func (e *Error) Category() Category {
	if e == nil {
		return ""
	}
	return e.cat
}

// Data 返回副本。
func (e *Error) Data() map[string]any {
	if e == nil {
		return nil
	}
	return maps.Clone(e.data)
}

func (e *Error) Stack() []uintptr {
	if e == nil {
		return nil
	}
	return slices.Clone(e.stack)
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	s := string(e.code)
	if e.msg != "" {
		s += ": " + e.msg
	}
	if e.cause != nil {
		s = fmt.Sprintf("%s: %v", s, e.cause)
	}
	return s
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// Is 只按 code 判断语义，忽略 msg/data/cause。
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && e != nil && t != nil && e.code == t.code
}

// CodeOf 沿错误链取第一个 *Error 的 code；非 errx 错误返回空。
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.code
	}
	return ""
}

// CategoryOf 沿错误链取分类；非 errx 错误视为系统错误。
func CategoryOf(err error) Category {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Category()
	}
	return CategorySystem
}

func captureStack(skip int) []uintptr {
	pcs := make([]uintptr, maxStackDepth)
	n := runtime.Callers(skip, pcs)
	if n <= 0 {
		return nil
	}
	return pcs[:n]
}

func hasStack(err error) bool {
	for i := 0; i < maxChainDepth && err != nil; i++ {
		if e, ok := err.(*Error); ok && len(e.stack) != 0 {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}
