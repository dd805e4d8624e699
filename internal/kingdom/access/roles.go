package access

import (
	"LandKingdom/internal/kingdom/domain"

	"github.com/ethereum/go-ethereum/crypto"
)

// Role 是能力标识，沿用 keccak256(名称) 的编码，便于与链上工具对齐。
type Role [32]byte

var (
	DefaultAdmin Role
	Minter       = Role(crypto.Keccak256Hash([]byte("MINTER_ROLE")))
	GameManager  = Role(crypto.Keccak256Hash([]byte("GAME_MANAGER_ROLE")))
)

// Name 返回可读的角色名。
func (r Role) Name() string {
	switch r {
	case DefaultAdmin:
		return "DEFAULT_ADMIN_ROLE"
	case Minter:
		return "MINTER_ROLE"
	case GameManager:
		return "GAME_MANAGER_ROLE"
	default:
		return crypto.Keccak256Hash(r[:]).Hex()
	}
}

// ParseRole 按名称解析角色。
func ParseRole(name string) (Role, bool) {
	switch name {
	case "DEFAULT_ADMIN_ROLE", "admin":
		return DefaultAdmin, true
	case "MINTER_ROLE", "minter":
		return Minter, true
	case "GAME_MANAGER_ROLE", "game_manager":
		return GameManager, true
	default:
		return Role{}, false
	}
}

// Policy 是显式的权限策略对象：每个操作入口查询一次。
type Policy struct {
	owner   domain.Address
	members map[Role]map[domain.Address]bool
}

// NewPolicy 以部署者为 owner 并授予其 DEFAULT_ADMIN。
func NewPolicy(deployer domain.Address) *Policy {
	p := &Policy{
		owner:   deployer,
		members: make(map[Role]map[domain.Address]bool),
	}
	p.grant(DefaultAdmin, deployer)
	return p
}

// Owner 返回部署者；后续授予的管理员不改变它。
func (p *Policy) Owner() domain.Address {
	return p.owner
}

func (p *Policy) HasRole(r Role, a domain.Address) bool {
	return p.members[r][a]
}

// Check 在缺少角色时返回 AccessControlUnauthorizedAccount。
func (p *Policy) Check(r Role, a domain.Address) error {
	if p.HasRole(r, a) {
		return nil
	}
	return domain.ErrUnauthorizedAccount.WithDataMap(map[string]any{
		"account": a.Hex(),
		"role":    r.Name(),
	})
}

// Grant 只允许 DEFAULT_ADMIN 调用。
func (p *Policy) Grant(caller domain.Address, r Role, a domain.Address) error {
	if err := p.Check(DefaultAdmin, caller); err != nil {
		return err
	}
	p.grant(r, a)
	return nil
}

func (p *Policy) Revoke(caller domain.Address, r Role, a domain.Address) error {
	if err := p.Check(DefaultAdmin, caller); err != nil {
		return err
	}
	if m, ok := p.members[r]; ok {
		delete(m, a)
	}
	return nil
}

// Members 返回某角色的全部成员，用于快照。
func (p *Policy) Members() map[Role][]domain.Address {
	out := make(map[Role][]domain.Address, len(p.members))
	for r, m := range p.members {
		for a := range m {
			out[r] = append(out[r], a)
		}
	}
	return out
}

// RestorePolicy 用快照重建策略（不经权限检查）。
func RestorePolicy(owner domain.Address, members map[Role][]domain.Address) *Policy {
	p := &Policy{owner: owner, members: make(map[Role]map[domain.Address]bool, len(members))}
	for r, list := range members {
		for _, a := range list {
			p.grant(r, a)
		}
	}
	return p
}

func (p *Policy) grant(r Role, a domain.Address) {
	m, ok := p.members[r]
	if !ok {
		m = make(map[domain.Address]bool)
		p.members[r] = m
	}
	m[a] = true
}

func (p *Policy) Clone() *Policy {
	cp := &Policy{owner: p.owner, members: make(map[Role]map[domain.Address]bool, len(p.members))}
	for r, m := range p.members {
		mm := make(map[domain.Address]bool, len(m))
		for a, v := range m {
			mm[a] = v
		}
		cp.members[r] = mm
	}
	return cp
}
