package grpc

import (
	"errors"
	"strings"
	"testing"

	"LandKingdom/modules/kit/errx"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestStatusOf_按分类映射(t *testing.T) {
	cases := []struct {
		err  error
		want codes.Code
	}{
		{errx.ErrReqParam, codes.InvalidArgument},
		{errx.ErrUnauthenticated, codes.PermissionDenied},
		{errx.NewBiz("LAND_LOCKED", "冷却中"), codes.FailedPrecondition},
		{errx.ErrTimeout, codes.DeadlineExceeded},
		{errx.ErrInternal.WithCause(errors.New("boom")), codes.Internal},
		{errors.New("plain"), codes.Internal},
	}
	for _, c := range cases {
		st, _ := status.FromError(StatusOf(c.err))
		if st.Code() != c.want {
			t.Fatalf("%v: 期望 %v，得到 %v", c.err, c.want, st.Code())
		}
	}
}

func TestStatusOf_消息带错误码(t *testing.T) {
	st, _ := status.FromError(StatusOf(errx.ErrReqParam))
	if !strings.HasPrefix(st.Message(), string(errx.CodeReqParamError)+": ") {
		t.Fatalf("消息应以错误码开头，得到 %q", st.Message())
	}
	if StatusOf(nil) != nil {
		t.Fatalf("nil 应保持 nil")
	}
	orig := status.Error(codes.NotFound, "x")
	if StatusOf(orig) != orig {
		t.Fatalf("已是 status 的错误应原样返回")
	}
}
