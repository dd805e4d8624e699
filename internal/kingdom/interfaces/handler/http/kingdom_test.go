package http

import (
	"context"
	"encoding/json"
	"math/big"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	kapp "LandKingdom/internal/kingdom/app"
	"LandKingdom/internal/kingdom/domain"
	"LandKingdom/internal/shared/actor/messages"
	"LandKingdom/internal/shared/security"
	"LandKingdom/internal/shared/serverconfig"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
)

type fakeKingdom struct {
	cmds    []messages.Command
	queries []any
	reply   *messages.Reply
	result  any
	err     error
}

func (f *fakeKingdom) Exec(_ context.Context, cmd messages.Command) (*messages.Reply, error) {
	f.cmds = append(f.cmds, cmd)
	if f.err != nil {
		return nil, f.err
	}
	if f.reply == nil {
		return &messages.Reply{}, nil
	}
	return f.reply, nil
}

func (f *fakeKingdom) Query(_ context.Context, q any) (any, error) {
	f.queries = append(f.queries, q)
	return f.result, f.err
}

var (
	alice = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	bob   = common.HexToAddress("0x00000000000000000000000000000000000000b2")
)

func newEngine(t *testing.T, f *fakeKingdom, dev serverconfig.DevConfig) *gin.Engine {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHttpHandler(f, dev, nil).RegisterRoutes(r.Group(""))
	return r
}

func do(t *testing.T, r *gin.Engine, method, path, token, body string) (*httptest.ResponseRecorder, Resp) {
	t.Helper()
	var req *nethttp.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp Resp
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("响应不是 JSON: %v body=%s", err, w.Body.String())
	}
	return w, resp
}

func tokenFor(t *testing.T, addr common.Address) string {
	t.Helper()
	tok, err := security.Award(addr)
	if err != nil {
		t.Fatalf("Award: %v", err)
	}
	return tok
}

func TestAuth_缺少令牌返回401(t *testing.T) {
	f := &fakeKingdom{}
	r := newEngine(t, f, serverconfig.DevConfig{})

	w, resp := do(t, r, nethttp.MethodPost, "/kingdom/lands/mint", "", `{"to":"`+bob.Hex()+`"}`)
	if w.Code != nethttp.StatusUnauthorized || resp.Code != 401 {
		t.Fatalf("期望 401，得到 status=%d code=%d", w.Code, resp.Code)
	}
	if len(f.cmds) != 0 {
		t.Fatalf("未认证请求不应到达运行时")
	}
}

func TestMint_调用方来自令牌(t *testing.T) {
	f := &fakeKingdom{reply: &messages.Reply{
		Result: domain.LandID(4),
		Events: []domain.Event{domain.TransferEvent(domain.ZeroAddress, bob, 4)},
	}}
	r := newEngine(t, f, serverconfig.DevConfig{})

	body := `{"to":"` + bob.Hex() + `","hint":4,"value":"25000000000000000"}`
	w, resp := do(t, r, nethttp.MethodPost, "/kingdom/lands/mint", tokenFor(t, alice), body)
	if w.Code != nethttp.StatusOK || resp.Code != 0 {
		t.Fatalf("期望成功，得到 status=%d resp=%+v", w.Code, resp)
	}
	if len(f.cmds) != 1 {
		t.Fatalf("期望 1 条命令，得到 %d", len(f.cmds))
	}
	cmd, ok := f.cmds[0].(*messages.Mint)
	if !ok {
		t.Fatalf("期望 *messages.Mint，得到 %T", f.cmds[0])
	}
	if cmd.From != alice || cmd.To != bob || cmd.Hint != 4 {
		t.Fatalf("命令字段不符: %+v", cmd)
	}
	if cmd.Value.Cmp(big.NewInt(25_000_000_000_000_000)) != 0 {
		t.Fatalf("金额解析错误: %s", cmd.Value)
	}
	data, _ := resp.Data.(map[string]any)
	if events, _ := data["events"].([]any); len(events) != 1 {
		t.Fatalf("期望返回 1 条事件，得到 %v", data["events"])
	}
}

func TestCommand_金额非法返回400(t *testing.T) {
	f := &fakeKingdom{}
	r := newEngine(t, f, serverconfig.DevConfig{})

	w, resp := do(t, r, nethttp.MethodPost, "/kingdom/lands/7/purchase", tokenFor(t, alice), `{"value":"-1"}`)
	if w.Code != nethttp.StatusBadRequest || resp.Code != 400 {
		t.Fatalf("期望 400，得到 status=%d code=%d", w.Code, resp.Code)
	}
	if len(f.cmds) != 0 {
		t.Fatalf("参数错误不应到达运行时")
	}
}

func TestCommand_业务错误映射(t *testing.T) {
	f := &fakeKingdom{err: domain.ErrOnlyOwner.WithData("landId", uint64(7))}
	r := newEngine(t, f, serverconfig.DevConfig{})

	w, resp := do(t, r, nethttp.MethodPost, "/kingdom/lands/7/listing", tokenFor(t, alice), `{"enabled":true,"price":"100"}`)
	if w.Code != nethttp.StatusForbidden || resp.Code != 403 {
		t.Fatalf("期望 403，得到 status=%d code=%d", w.Code, resp.Code)
	}
	if resp.Reason != string(domain.CodeOnlyOwner) {
		t.Fatalf("期望 reason=%s，得到 %s", domain.CodeOnlyOwner, resp.Reason)
	}
	cmd := f.cmds[0].(*messages.ListForSale)
	if cmd.LandID != 7 || !cmd.Enabled || cmd.Price.Int64() != 100 {
		t.Fatalf("命令字段不符: %+v", cmd)
	}
}

func TestPurchase_签名与路径合并(t *testing.T) {
	f := &fakeKingdom{}
	r := newEngine(t, f, serverconfig.DevConfig{})

	body := `{"value":"1","protected":true,"signature":"0x0102","expiresAt":99}`
	if w, _ := do(t, r, nethttp.MethodPost, "/kingdom/lands/9/purchase", tokenFor(t, alice), body); w.Code != nethttp.StatusOK {
		t.Fatalf("期望 200，得到 %d", w.Code)
	}
	cmd := f.cmds[0].(*messages.Purchase)
	if cmd.Auth.LandID != 9 || !cmd.Auth.Protected || cmd.Auth.ExpiresAt != 99 || len(cmd.Auth.Signature) != 2 {
		t.Fatalf("授权参数不符: %+v", cmd.Auth)
	}
}

func TestGetLand_金额以字符串输出(t *testing.T) {
	price, _ := new(big.Int).SetString("1000000000000000000000", 10)
	f := &fakeKingdom{result: kapp.LandView{ID: 7, Tier: 2, Price: price, Owner: bob}}
	r := newEngine(t, f, serverconfig.DevConfig{})

	w, resp := do(t, r, nethttp.MethodGet, "/kingdom/lands/7", "", "")
	if w.Code != nethttp.StatusOK {
		t.Fatalf("期望 200，得到 %d", w.Code)
	}
	data, _ := resp.Data.(map[string]any)
	if data["price"] != "1000000000000000000000" || data["owner"] != bob.Hex() {
		t.Fatalf("视图不符: %v", data)
	}
	if q, ok := f.queries[0].(*messages.GetLand); !ok || q.LandID != 7 {
		t.Fatalf("查询不符: %#v", f.queries[0])
	}
}

func TestGetLand_非法id(t *testing.T) {
	f := &fakeKingdom{}
	r := newEngine(t, f, serverconfig.DevConfig{})

	if w, _ := do(t, r, nethttp.MethodGet, "/kingdom/lands/abc", "", ""); w.Code != nethttp.StatusBadRequest {
		t.Fatalf("期望 400，得到 %d", w.Code)
	}
}

func TestDev_未开启时不注册(t *testing.T) {
	f := &fakeKingdom{}
	r := newEngine(t, f, serverconfig.DevConfig{})

	req := httptest.NewRequest(nethttp.MethodPost, "/kingdom/dev/faucet", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != nethttp.StatusNotFound {
		t.Fatalf("期望 404，得到 %d", w.Code)
	}
}

func TestDevFaucet_超过上限被拒绝(t *testing.T) {
	f := &fakeKingdom{}
	dev := serverconfig.DevConfig{Enabled: true, FaucetMax: serverconfig.EtherFromWei(big.NewInt(1000))}
	r := newEngine(t, f, dev)

	body := `{"to":"` + bob.Hex() + `","amount":"1001"}`
	if w, _ := do(t, r, nethttp.MethodPost, "/kingdom/dev/faucet", "", body); w.Code != nethttp.StatusBadRequest {
		t.Fatalf("期望 400，得到 %d", w.Code)
	}

	body = `{"to":"` + bob.Hex() + `","amount":"1000"}`
	if w, _ := do(t, r, nethttp.MethodPost, "/kingdom/dev/faucet", "", body); w.Code != nethttp.StatusOK {
		t.Fatalf("期望 200，得到 %d", w.Code)
	}
	cmd := f.cmds[0].(*messages.Fund)
	if cmd.To != bob || cmd.Amount.Int64() != 1000 {
		t.Fatalf("命令字段不符: %+v", cmd)
	}
}

func TestDevToken_签发后可用于写命令(t *testing.T) {
	f := &fakeKingdom{}
	r := newEngine(t, f, serverconfig.DevConfig{Enabled: true})

	_, resp := do(t, r, nethttp.MethodPost, "/kingdom/dev/token", "", `{"address":"`+alice.Hex()+`"}`)
	data, _ := resp.Data.(map[string]any)
	token, _ := data["token"].(string)
	if token == "" {
		t.Fatalf("未返回 token: %+v", resp)
	}

	if w, _ := do(t, r, nethttp.MethodPost, "/kingdom/operators", token, `{"operator":"`+bob.Hex()+`","approved":true}`); w.Code != nethttp.StatusOK {
		t.Fatalf("期望 200，得到 %d", w.Code)
	}
	cmd := f.cmds[0].(*messages.SetApprovalForAll)
	if cmd.From != alice || cmd.Operator != bob || !cmd.Approved {
		t.Fatalf("命令字段不符: %+v", cmd)
	}
}

func TestExtraMintMinter_管理命令(t *testing.T) {
	f := &fakeKingdom{}
	r := newEngine(t, f, serverconfig.DevConfig{})

	w, resp := do(t, r, nethttp.MethodPost, "/kingdom/extramint/minter", tokenFor(t, alice), `{"minter":"`+bob.Hex()+`"}`)
	if w.Code != nethttp.StatusOK || resp.Code != 0 {
		t.Fatalf("期望成功，得到 status=%d resp=%+v", w.Code, resp)
	}
	cmd, ok := f.cmds[0].(*messages.SetExtraMintMinter)
	if !ok || cmd.From != alice || cmd.Minter != bob {
		t.Fatalf("命令不符: %T %+v", f.cmds[0], f.cmds[0])
	}
}
