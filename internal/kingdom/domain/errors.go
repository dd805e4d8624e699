package domain

import "LandKingdom/modules/kit/errx"

// Code 表示领域错误码（客户端按 code 分支，禁止改名）。
type Code = errx.Code

const (
	CodeInvalidInput               Code = "InvalidInput"
	CodePriceMustBeGreaterThanZero Code = "PriceMustBeGreaterThanZero"

	CodeOnlyOwner                Code = "OnlyOwner"
	CodeUnauthorizedAccount      Code = "AccessControlUnauthorizedAccount"
	CodeApproverNotWhitelisted   Code = "ApproverNotWhitelisted"
	CodeNotApprovedOrOwner       Code = "ERC721InsufficientApproval"
	CodeInvalidReceiver          Code = "ERC721InvalidReceiver"
	CodeIncorrectOwner           Code = "ERC721IncorrectOwner"
	CodeNonexistentToken         Code = "ERC721NonexistentToken"
	CodeLandNotAvailable         Code = "LandNotAvailable"
	CodeNotForSale               Code = "NotForSale"
	CodeAlreadyReachedMaxTier    Code = "AlreadyReachedMaxTier"
	CodeOnlyLandWithMaxTier      Code = "OnlyLandWithMaxTier"
	CodeCooldownTimeNotPassed    Code = "CooldownTimeNotPassed"
	CodeLandIsProtected          Code = "LandIsProtected"
	CodeTransferIsLocked         Code = "TransferIsLocked"
	CodeNotEnoughEther           Code = "NotEnoughEther"
	CodeInsufficientBalance      Code = "InsufficientBalance"
	CodeEtherNotAccepted         Code = "EtherNotAccepted"
	CodeTreasuryTransferRejected Code = "TreasuryTransferRejected"
	CodeSignatureExpired         Code = "SignatureExpired"
	CodeInvalidSignature         Code = "InvalidSignature"
)

// Error 复用通用错误模型。
type Error = errx.Error

// 哨兵错误：禁止直接修改，通过 WithData/WithCause 派生。
var (
	ErrInvalidInput               = errx.NewBiz(CodeInvalidInput, "参数不合法").In(errx.CategoryValidation)
	ErrPriceMustBeGreaterThanZero = errx.NewBiz(CodePriceMustBeGreaterThanZero, "挂单价格必须大于 0").In(errx.CategoryValidation)

	ErrOnlyOwner              = errx.NewBiz(CodeOnlyOwner, "仅地块持有人可操作").In(errx.CategoryAuthorization)
	ErrUnauthorizedAccount    = errx.NewBiz(CodeUnauthorizedAccount, "缺少角色权限").In(errx.CategoryAuthorization)
	ErrApproverNotWhitelisted = errx.NewBiz(CodeApproverNotWhitelisted, "授权对象不在白名单").In(errx.CategoryAuthorization)
	ErrNotApprovedOrOwner     = errx.NewBiz(CodeNotApprovedOrOwner, "调用方未获授权").In(errx.CategoryAuthorization)

	ErrInvalidReceiver       = errx.NewBiz(CodeInvalidReceiver, "接收地址不合法").In(errx.CategoryValidation)
	ErrIncorrectOwner        = errx.NewBiz(CodeIncorrectOwner, "from 不是当前持有人").In(errx.CategoryValidation)
	ErrNonexistentToken      = errx.NewBiz(CodeNonexistentToken, "地块尚未铸造").In(errx.CategoryState)
	ErrLandNotAvailable      = errx.NewBiz(CodeLandNotAvailable, "地块不可用").In(errx.CategoryState)
	ErrNotForSale            = errx.NewBiz(CodeNotForSale, "地块未出售").In(errx.CategoryState)
	ErrAlreadyReachedMaxTier = errx.NewBiz(CodeAlreadyReachedMaxTier, "已达最高等级").In(errx.CategoryState)
	ErrOnlyLandWithMaxTier   = errx.NewBiz(CodeOnlyLandWithMaxTier, "仅最高等级地块可操作").In(errx.CategoryState)
	ErrCooldownTimeNotPassed = errx.NewBiz(CodeCooldownTimeNotPassed, "冷却时间未到").In(errx.CategoryState)
	ErrLandIsProtected       = errx.NewBiz(CodeLandIsProtected, "地块受保护").In(errx.CategoryState)
	ErrTransferIsLocked      = errx.NewBiz(CodeTransferIsLocked, "转移已锁定").In(errx.CategoryState)

	ErrNotEnoughEther           = errx.NewBiz(CodeNotEnoughEther, "支付金额不足").In(errx.CategoryFunding)
	ErrInsufficientBalance      = errx.NewBiz(CodeInsufficientBalance, "钱包余额不足").In(errx.CategoryFunding)
	ErrEtherNotAccepted         = errx.NewBiz(CodeEtherNotAccepted, "Ether cannot be accepted").In(errx.CategoryFunding)
	ErrTreasuryTransferRejected = errx.NewBiz(CodeTreasuryTransferRejected, "金库拒收").In(errx.CategoryFunding)

	ErrSignatureExpired = errx.NewBiz(CodeSignatureExpired, "签名已过期").In(errx.CategorySignature)
	ErrInvalidSignature = errx.NewBiz(CodeInvalidSignature, "签名无效").In(errx.CategorySignature)
)
