package app

import (
	"errors"
	"math/big"

	"LandKingdom/internal/kingdom/access"
	"LandKingdom/internal/kingdom/domain"
	"LandKingdom/internal/kingdom/sigauth"
	"LandKingdom/internal/kingdom/state"
	"LandKingdom/internal/kingdom/stats"
	"LandKingdom/internal/kingdom/transfer"
	"LandKingdom/modules/kit/logx"

	"go.uber.org/zap"
)

// Registry 是地块与王国状态唯一的写入口，组合定价、属性成长、签名校验与转移策略。
//
// 约束：
// - Registry 不持有锁，调用方（KingdomActor）保证串行，并用 state.Atomic 包住整次调用
// - 所有状态修改先于任何对外转账完成
type Registry struct {
	st     *state.State
	stats  *stats.Engine
	logger logx.Logger
}

func NewRegistry(st *state.State, eng *stats.Engine, logger logx.Logger) *Registry {
	if eng == nil {
		eng = stats.NewEngine(st.Kingdom.AppearanceVariants)
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Registry{st: st, stats: eng, logger: logger}
}

// State 暴露底层状态，只供同一串行上下文内的组件（分配器、落库）使用。
func (r *Registry) State() *state.State {
	return r.st
}

func (r *Registry) gate() *transfer.Gate {
	return transfer.NewGate(r.st.Kingdom, r.st.Whitelist)
}

// Mint 由 MINTER 调用，hint 必须是自动分配哨兵 0。
func (r *Registry) Mint(call *domain.Call, to domain.Address, hint domain.LandID) (domain.LandID, error) {
	if err := r.st.Roles.Check(access.Minter, call.From); err != nil {
		return 0, err
	}
	if err := nonPayable(call); err != nil {
		return 0, err
	}
	if hint != 0 {
		return 0, domain.ErrLandNotAvailable.WithData("landId", uint64(hint))
	}
	return r.mintOne(call, to)
}

// MintBatch 为 to 连续铸造 len(hints) 块地，任何一块失败整批失败。
func (r *Registry) MintBatch(call *domain.Call, to domain.Address, hints []domain.LandID) ([]domain.LandID, error) {
	if err := r.st.Roles.Check(access.Minter, call.From); err != nil {
		return nil, err
	}
	if err := nonPayable(call); err != nil {
		return nil, err
	}
	if len(hints) == 0 {
		return nil, domain.ErrInvalidInput.WithData("hints", 0)
	}
	ids := make([]domain.LandID, 0, len(hints))
	for _, hint := range hints {
		if hint != 0 {
			return nil, domain.ErrLandNotAvailable.WithData("landId", uint64(hint))
		}
		id, err := r.mintOne(call, to)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (r *Registry) mintOne(call *domain.Call, to domain.Address) (domain.LandID, error) {
	if to == domain.ZeroAddress {
		return 0, domain.ErrInvalidReceiver
	}
	k := r.st.Kingdom
	id := k.NextLandID
	if !k.InRange(id) {
		return 0, domain.ErrLandNotAvailable.WithData("landId", uint64(id))
	}

	seed := stats.Seed(call.Entropy, id, 1)
	land := r.st.MutLand(id)
	land.Tier = 1
	land.Stats = r.stats.Roll(seed, domain.Stats{}, 1)
	land.Appearance = r.stats.RollAppearance(seed)
	land.LastTierChangeAt = call.Now
	r.st.Ownership.Mint(to, id)

	k.TotalSupply++
	k.NextLandID++
	r.st.TouchKingdom()

	call.Emit(domain.TransferEvent(domain.ZeroAddress, to, id))
	call.Emit(domain.LandUpgradedEvent(id, to, 1))
	call.Emit(domain.MetadataUpdateEvent(id))
	return id, nil
}

// tierUp 把地块升一阶：滚属性、更新时间、可选改名，并发出升阶与元数据通知。
func (r *Registry) tierUp(call *domain.Call, id domain.LandID, owner domain.Address, rename bool, name string) {
	land := r.st.MutLand(id)
	next := land.Tier + 1
	land.Stats = land.Stats.Add(r.stats.Roll(stats.Seed(call.Entropy, id, next), land.Stats, next))
	land.Tier = next
	land.LastTierChangeAt = call.Now
	if rename {
		land.Name = name
	}
	call.Emit(domain.LandUpgradedEvent(id, owner, next))
	call.Emit(domain.MetadataUpdateEvent(id))
}

// collect 把调用附带的金额从调用方钱包转入注册表。
func (r *Registry) collect(call *domain.Call) (*big.Int, error) {
	paid := call.Paid()
	if paid.Sign() == 0 {
		return paid, nil
	}
	if err := r.st.Wallet.Debit(call.From, paid); err != nil {
		return nil, err
	}
	r.st.Wallet.Credit(r.st.Self, paid)
	r.st.TouchLedger()
	return paid, nil
}

// payRoyalty 付给金库/版税接收方；失败整次调用回滚。
func (r *Registry) payRoyalty(call *domain.Call, to domain.Address, amount *big.Int) error {
	if amount.Sign() == 0 {
		return nil
	}
	if err := r.st.Wallet.Transfer(r.st.Self, to, amount); err != nil {
		return domain.ErrTreasuryTransferRejected.WithCause(err).WithData("receiver", to.Hex())
	}
	call.Emit(domain.ValueSentEvent(r.st.Self, to, amount, true))
	return nil
}

// payBestEffort 尽力把余款付给前持有人：失败不回滚购买，余款转入金库；金库也拒收时留在注册表账户。
func (r *Registry) payBestEffort(call *domain.Call, id domain.LandID, to domain.Address, amount *big.Int) {
	if amount.Sign() == 0 {
		return
	}
	err := r.st.Atomic(func() error {
		return r.st.Wallet.Transfer(r.st.Self, to, amount)
	})
	if err == nil {
		call.Emit(domain.ValueSentEvent(r.st.Self, to, amount, true))
		return
	}
	call.Emit(domain.ValueSentEvent(r.st.Self, to, amount, false))

	treasury := r.st.Kingdom.Treasury
	terr := r.st.Atomic(func() error {
		return r.st.Wallet.Transfer(r.st.Self, treasury, amount)
	})
	r.logger.Warn("seller payout undelivered",
		zap.Uint64("land_id", uint64(id)),
		zap.String("seller", to.Hex()),
		zap.String("amount_wei", amount.String()),
		zap.Bool("redirected_to_treasury", terr == nil),
		zap.Error(errors.Join(err, terr)),
	)
	if terr == nil {
		call.Emit(domain.ValueSentEvent(r.st.Self, treasury, amount, true))
	}
}

func (r *Registry) verify(call *domain.Call, auth Authorization) error {
	msg := sigauth.Message{
		LandID:    auth.LandID,
		Protected: auth.Protected,
		Name:      auth.NewName,
		ExpiresAt: auth.ExpiresAt,
	}
	return sigauth.Verify(r.st.Kingdom.Verifier, msg, auth.Signature, call.Now)
}

// requireOwner 要求调用方是当前持有人；未铸造的地块同样视为非持有人。
func (r *Registry) requireOwner(call *domain.Call, id domain.LandID) (*domain.Land, error) {
	owner, err := r.st.Ownership.OwnerOf(id)
	if err != nil || owner != call.From {
		return nil, domain.ErrOnlyOwner.WithData("landId", uint64(id))
	}
	return r.st.Land(id), nil
}

func nonPayable(call *domain.Call) error {
	if call.Paid().Sign() > 0 {
		return domain.ErrEtherNotAccepted
	}
	return nil
}

// Receive 处理没有对应操作的来款：一律拒收。
func (r *Registry) Receive(call *domain.Call) error {
	return domain.ErrEtherNotAccepted.WithData("from", call.From.Hex())
}

// Fund 直接给地址入账，只供开发水龙头与初始化使用。
func (r *Registry) Fund(to domain.Address, amount *big.Int) error {
	if to == domain.ZeroAddress || amount == nil || amount.Sign() <= 0 {
		return domain.ErrInvalidInput
	}
	r.st.Wallet.Credit(to, amount)
	r.st.TouchLedger()
	return nil
}
