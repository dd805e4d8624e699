package transport

import (
	"errors"
	"testing"

	"LandKingdom/modules/kit/errx"
)

func TestBizCodeOf_按分类映射(t *testing.T) {
	cases := []struct {
		err  error
		want BizCode
	}{
		{nil, OK},
		{errx.NewBiz("X", "").In(errx.CategoryValidation), ValidationError},
		{errx.NewBiz("X", "").In(errx.CategoryAuthorization), Forbidden},
		{errx.NewBiz("X", ""), StateConflict},
		{errx.NewBiz("X", "").In(errx.CategoryFunding), FundingError},
		{errx.NewBiz("X", "").In(errx.CategorySignature), SignatureError},
		{errx.ErrUnauthenticated, Unauthenticated},
		{errors.New("boom"), SystemError},
		{errx.ErrInternal, SystemError},
	}
	for _, tc := range cases {
		if got := BizCodeOf(tc.err); got != tc.want {
			t.Fatalf("err=%v 期望 %d, got=%d", tc.err, tc.want, got)
		}
	}
}
