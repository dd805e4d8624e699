package errx

// 跨模块统一的错误码；领域拒绝码（如 OnlyOwner）由各领域自行定义。
const (
	// CodeInternal 是不可预期错误的兜底。
	CodeInternal Code = "INTERNAL_ERROR"
	// CodeUnavailable 表示依赖不可用（MySQL/MongoDB/actor 运行时）。
	CodeUnavailable Code = "SERVICE_UNAVAILABLE"
	CodeTimeout     Code = "TIMEOUT"
	// CodeReqParamError 表示请求无法解析或字段非法。
	CodeReqParamError Code = "REQ_PARAM_ERROR"
	// CodeUnauthenticated 表示令牌缺失或无效。
	CodeUnauthenticated Code = "UNAUTHENTICATED"
)

// 哨兵只用于派生，WithData/WithCause 不会修改它们。
var (
	ErrInternal        = NewSys(CodeInternal, "服务器内部错误")
	ErrUnavailable     = NewSys(CodeUnavailable, "服务不可用")
	ErrTimeout         = NewSys(CodeTimeout, "请求超时")
	ErrReqParam        = NewBiz(CodeReqParamError, "请求参数错误").In(CategoryValidation)
	ErrUnauthenticated = NewBiz(CodeUnauthenticated, "身份校验失败").In(CategoryAuthorization)
)
