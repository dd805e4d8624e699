package logx

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"LandKingdom/modules/kit/errx"
)

const (
	maxCauseDepth  = 20
	maxStackFrames = 32
)

// ErrorLog 是一次错误展开后的可读形态：分类、稳定码、cause 链与发生处栈。
type ErrorLog struct {
	Error      string
	Code       string
	Category   string
	Msg        string
	Data       map[string]any
	CauseChain []string
	Origin     string
	Stack      string
}

// BuildErrorLog 展开错误链；非 errx 错误只有 Error 与 cause 链。
func BuildErrorLog(err error) ErrorLog {
	if err == nil {
		return ErrorLog{}
	}
	out := ErrorLog{
		Error:      err.Error(),
		Category:   string(errx.CategoryOf(err)),
		CauseChain: causeChain(err),
	}
	var e *errx.Error
	if !errors.As(err, &e) {
		return out
	}
	out.Code = string(e.Code())
	out.Msg = e.Msg()
	out.Data = e.Data()
	out.Origin, out.Stack = formatStack(stackOf(err))
	return out
}

// stackOf 取链上第一个带栈的 errx 错误；栈只在最早转换处捕获一次。
func stackOf(err error) []uintptr {
	for cur := err; cur != nil; cur = errors.Unwrap(cur) {
		if e, ok := cur.(*errx.Error); ok && len(e.Stack()) > 0 {
			return e.Stack()
		}
	}
	return nil
}

func causeChain(err error) []string {
	var out []string
	for cur := errors.Unwrap(err); cur != nil && len(out) < maxCauseDepth; cur = errors.Unwrap(cur) {
		out = append(out, fmt.Sprintf("%T: %v", cur, cur))
	}
	return out
}

// formatStack 返回首帧（错误发生处）与逐行栈，跳过 runtime 帧。
func formatStack(pcs []uintptr) (origin, stack string) {
	if len(pcs) == 0 {
		return "", ""
	}
	frames := runtime.CallersFrames(pcs)
	lines := make([]string, 0, 8)
	for len(lines) < maxStackFrames {
		f, more := frames.Next()
		if f.Function != "" && !strings.HasPrefix(f.Function, "runtime.") {
			lines = append(lines, fmt.Sprintf("%s %s:%d", f.Function, f.File, f.Line))
		}
		if !more {
			break
		}
	}
	if len(lines) == 0 {
		return "", ""
	}
	return lines[0], strings.Join(lines, "\n")
}
