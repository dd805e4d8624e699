package app

import (
	"math/big"
	"testing"

	"LandKingdom/internal/kingdom/access"
	"LandKingdom/internal/kingdom/domain"
	"LandKingdom/internal/kingdom/sigauth"
	"LandKingdom/internal/kingdom/state"
	"LandKingdom/internal/kingdom/stats"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

var (
	self        = common.HexToAddress("0x00000000000000000000000000000000000005e1")
	admin       = common.HexToAddress("0x00000000000000000000000000000000000000ad")
	treasury    = common.HexToAddress("0x0000000000000000000000000000000000007ea5")
	minter      = common.HexToAddress("0x00000000000000000000000000000000000000e1")
	gameManager = common.HexToAddress("0x00000000000000000000000000000000000000e2")
	alice       = common.HexToAddress("0x00000000000000000000000000000000000a11ce")
	bob         = common.HexToAddress("0x0000000000000000000000000000000000000b0b")
	market      = common.HexToAddress("0x000000000000000000000000000000000000aa01")
)

const t0 int64 = 1_700_000_000

type fixture struct {
	t      *testing.T
	st     *state.State
	reg    *Registry
	signer *sigauth.Signer
	now    int64
	nonce  byte
}

func newFixture(t *testing.T, supply uint64) *fixture {
	t.Helper()
	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	signer := sigauth.NewSigner(key)
	st := state.New(state.Options{
		Self:     self,
		Deployer: admin,
		Kingdom: domain.Kingdom{
			LandBasePrice:          domain.Ether(25, 3),
			LandPlotSupply:         supply,
			ReservedLands:          4,
			TransferEnabled:        true,
			Treasury:               treasury,
			TierRoyaltyBps:         2000,
			DefaultRoyaltyReceiver: treasury,
			DefaultRoyaltyBps:      500,
			Verifier:               signer.Address(),
			AppearanceVariants:     8,
		},
	})
	f := &fixture{t: t, st: st, reg: NewRegistry(st, stats.NewEngine(8), nil), signer: signer, now: t0}
	f.ok(f.reg.GrantRole(f.call(admin, nil), access.Minter, minter))
	f.ok(f.reg.GrantRole(f.call(admin, nil), access.GameManager, gameManager))
	return f
}

func (f *fixture) call(from domain.Address, value *big.Int) *domain.Call {
	f.nonce++
	var entropy [32]byte
	entropy[0] = f.nonce
	entropy[31] = byte(f.now)
	return domain.NewCall(from, value, f.now, entropy)
}

// exec 以整次调用为单位执行，失败时回滚，返回回执。
func (f *fixture) exec(from domain.Address, value *big.Int, fn func(c *domain.Call) error) (*domain.Receipt, error) {
	c := f.call(from, value)
	err := f.st.Atomic(func() error { return fn(c) })
	return c.Receipt, err
}

func (f *fixture) ok(err error) {
	f.t.Helper()
	if err != nil {
		f.t.Fatalf("unexpected error: %v", err)
	}
}

func (f *fixture) advance(sec int64) {
	f.now += sec
}

func (f *fixture) fund(a domain.Address, ether int64) {
	f.ok(f.reg.Fund(a, domain.Ether(ether, 0)))
}

func (f *fixture) mint(to domain.Address) domain.LandID {
	f.t.Helper()
	var id domain.LandID
	_, err := f.exec(minter, nil, func(c *domain.Call) error {
		var err error
		id, err = f.reg.Mint(c, to, 0)
		return err
	})
	f.ok(err)
	return id
}

func (f *fixture) auth(id domain.LandID, name string, protected bool, expiresAt int64) Authorization {
	f.t.Helper()
	sig, err := f.signer.Sign(sigauth.Message{LandID: id, Protected: protected, Name: name, ExpiresAt: expiresAt})
	if err != nil {
		f.t.Fatalf("Sign: %v", err)
	}
	return Authorization{
		LandID:      id,
		WantsRename: name != "",
		NewName:     name,
		Protected:   protected,
		Signature:   sig,
		ExpiresAt:   expiresAt,
	}
}

func (f *fixture) upgrade(owner domain.Address, id domain.LandID) (*domain.Receipt, error) {
	view, _ := f.reg.GetLand(id)
	return f.exec(owner, view.RoyaltyFee, func(c *domain.Call) error {
		return f.reg.Upgrade(c, f.auth(id, "", false, f.now+1200))
	})
}

// toMaxTier 铸造一块地并由持有人连续升级到最高等级。
func (f *fixture) toMaxTier(owner domain.Address) domain.LandID {
	f.t.Helper()
	f.fund(owner, 10)
	id := f.mint(owner)
	for i := 1; i < int(domain.MaxTier); i++ {
		_, err := f.upgrade(owner, id)
		f.ok(err)
	}
	return id
}

func (f *fixture) balance(a domain.Address) *big.Int {
	return f.reg.WalletBalance(a)
}

func hasEvent(r *domain.Receipt, kind domain.EventKind) bool {
	for _, ev := range r.Events {
		if ev.Kind == kind {
			return true
		}
	}
	return false
}

func eventOf(r *domain.Receipt, kind domain.EventKind) (domain.Event, bool) {
	for _, ev := range r.Events {
		if ev.Kind == kind {
			return ev, true
		}
	}
	return domain.Event{}, false
}

func diff(after, before *big.Int) *big.Int {
	return new(big.Int).Sub(after, before)
}
