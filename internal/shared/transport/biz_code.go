package transport

import "LandKingdom/modules/kit/errx"

// BizCode 表示业务码的强类型封装，用于在日志上下文中减少误传风险。
type BizCode int

// 业务码与 HTTP 状态码同值，便于网关直接透传。
const (
	OK              = 0
	ValidationError = 400
	Unauthenticated = 401
	FundingError    = 402
	Forbidden       = 403
	StateConflict   = 409
	SignatureError  = 422
	SystemError     = 500
)

// BizCodeOf 把错误分类映射为业务码；nil 为 OK。
func BizCodeOf(err error) BizCode {
	if err == nil {
		return BizCode(OK)
	}
	if errx.CodeOf(err) == errx.CodeUnauthenticated {
		return BizCode(Unauthenticated)
	}
	switch errx.CategoryOf(err) {
	case errx.CategoryValidation:
		return BizCode(ValidationError)
	case errx.CategoryAuthorization:
		return BizCode(Forbidden)
	case errx.CategoryState:
		return BizCode(StateConflict)
	case errx.CategoryFunding:
		return BizCode(FundingError)
	case errx.CategorySignature:
		return BizCode(SignatureError)
	default:
		return BizCode(SystemError)
	}
}
