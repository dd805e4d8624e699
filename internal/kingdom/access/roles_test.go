package access

import (
	"errors"
	"testing"

	"LandKingdom/internal/kingdom/domain"

	"github.com/ethereum/go-ethereum/common"
)

var (
	deployer = common.HexToAddress("0x00000000000000000000000000000000000000d1")
	minter   = common.HexToAddress("0x00000000000000000000000000000000000000d2")
	stranger = common.HexToAddress("0x00000000000000000000000000000000000000d3")
)

func TestPolicy_部署者是管理员与owner(t *testing.T) {
	p := NewPolicy(deployer)
	if !p.HasRole(DefaultAdmin, deployer) || p.Owner() != deployer {
		t.Fatalf("部署者应为管理员与 owner")
	}
	if err := p.Grant(deployer, DefaultAdmin, stranger); err != nil {
		t.Fatalf("Grant: %v", err)
	}
	if p.Owner() != deployer {
		t.Fatalf("新增管理员不应改变 owner")
	}
}

func TestPolicy_非管理员不能授权(t *testing.T) {
	p := NewPolicy(deployer)
	err := p.Grant(stranger, Minter, stranger)
	if !errors.Is(err, domain.ErrUnauthorizedAccount) {
		t.Fatalf("期望 AccessControlUnauthorizedAccount, got=%v", err)
	}
	if p.HasRole(Minter, stranger) {
		t.Fatalf("失败的授权不应生效")
	}
}

func TestPolicy_授予与撤销(t *testing.T) {
	p := NewPolicy(deployer)
	if err := p.Grant(deployer, Minter, minter); err != nil {
		t.Fatalf("Grant: %v", err)
	}
	if err := p.Check(Minter, minter); err != nil {
		t.Fatalf("期望 minter 拥有角色, got=%v", err)
	}
	if err := p.Revoke(deployer, Minter, minter); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	if err := p.Check(Minter, minter); !errors.Is(err, domain.ErrUnauthorizedAccount) {
		t.Fatalf("撤销后期望 AccessControlUnauthorizedAccount, got=%v", err)
	}
}

func TestParseRole(t *testing.T) {
	for _, name := range []string{"DEFAULT_ADMIN_ROLE", "MINTER_ROLE", "GAME_MANAGER_ROLE"} {
		r, ok := ParseRole(name)
		if !ok || r.Name() != name {
			t.Fatalf("解析 %s 失败: ok=%v name=%s", name, ok, r.Name())
		}
	}
	if _, ok := ParseRole("nope"); ok {
		t.Fatalf("未知角色不应解析成功")
	}
}
