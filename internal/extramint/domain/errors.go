package domain

import "LandKingdom/modules/kit/errx"

type Code = errx.Code

const (
	CodeInvalidInput          Code = "InvalidInput"
	CodeMintNotEnabled        Code = "MintNotEnabled"
	CodeMintExpired           Code = "MintExpired"
	CodeExceedAvailableTokens Code = "ExceedAvailableTokens"
	CodeNotEnoughTokens       Code = "NotEnoughTokens"
)

var (
	ErrInvalidInput          = errx.NewBiz(CodeInvalidInput, "参数不合法").In(errx.CategoryValidation)
	ErrMintNotEnabled        = errx.NewBiz(CodeMintNotEnabled, "额外铸造未开启").In(errx.CategoryState)
	ErrMintExpired           = errx.NewBiz(CodeMintExpired, "额外铸造已结束").In(errx.CategoryState)
	ErrExceedAvailableTokens = errx.NewBiz(CodeExceedAvailableTokens, "超出可铸造名额").In(errx.CategoryFunding)
	ErrNotEnoughTokens       = errx.NewBiz(CodeNotEnoughTokens, "总量不足").In(errx.CategoryFunding)
)
