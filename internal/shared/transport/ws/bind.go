package ws

import (
	"encoding/json"

	"LandKingdom/modules/kit/errx"
)

// BindJSON 把请求体 msg 解到 dst；msg 缺省时保持 dst 零值。
func BindJSON(req *WsMsgReq, dst any) error {
	if req == nil || req.Body == nil {
		return errx.ErrReqParam
	}
	var raw []byte
	switch m := req.Body.Msg.(type) {
	case nil:
		return nil
	case json.RawMessage:
		raw = m
	case []byte:
		raw = m
	default:
		b, err := json.Marshal(m)
		if err != nil {
			return errx.ErrReqParam.WithCause(err)
		}
		raw = b
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return errx.ErrReqParam.WithCause(err)
	}
	return nil
}
