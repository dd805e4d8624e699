package grpc

import (
	"context"
	"errors"

	"LandKingdom/internal/shared/transport"
	"LandKingdom/modules/kit/errx"
	"LandKingdom/modules/kit/logx"

	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var categoryCodes = map[errx.Category]codes.Code{
	errx.CategoryValidation:    codes.InvalidArgument,
	errx.CategoryAuthorization: codes.PermissionDenied,
	errx.CategoryState:         codes.FailedPrecondition,
	errx.CategoryFunding:       codes.FailedPrecondition,
	errx.CategorySignature:     codes.Unauthenticated,
	errx.CategorySystem:        codes.Internal,
}

// StatusOf 把 errx 错误转成 grpc status；消息以稳定错误码开头，便于客户端分支。
func StatusOf(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	c, ok := categoryCodes[errx.CategoryOf(err)]
	if !ok {
		c = codes.Unknown
	}
	if errx.CodeOf(err) == errx.CodeTimeout {
		c = codes.DeadlineExceeded
	}
	msg := err.Error()
	var e *errx.Error
	if errors.As(err, &e) {
		msg = string(e.Code()) + ": " + e.Msg()
	}
	return status.Error(c, msg)
}

// unaryAccessLog 为每次 unary 调用记一条访问日志（业务码与 HTTP/WS 同口径），并把 errx 错误转成 status。
func unaryAccessLog(log logx.Logger) gogrpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *gogrpc.UnaryServerInfo, handler gogrpc.UnaryHandler) (any, error) {
		ctx = transport.NewContextWithParent(ctx, "GRPC "+info.FullMethod)
		resp, err := handler(ctx, req)
		if err != nil {
			transport.SetError(ctx, err)
		} else {
			transport.SetBizCode(ctx, transport.BizCode(transport.OK))
		}
		transport.WriteAccessLog(ctx, log)
		return resp, StatusOf(err)
	}
}
