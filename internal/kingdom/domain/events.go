package domain

import "math/big"

// EventKind 是通知类型名，对外保持稳定。
type EventKind string

const (
	EventTransfer       EventKind = "Transfer"
	EventApproval       EventKind = "Approval"
	EventApprovalForAll EventKind = "ApprovalForAll"
	EventLandUpgraded   EventKind = "LandUpgraded"
	EventMetadataUpdate EventKind = "MetadataUpdate"
	EventExtraMinted    EventKind = "ExtraMinted"
	EventValueSent      EventKind = "ValueSent"
)

// Event 是一次调用产生的通知；只有整次调用提交后才对外发布。
type Event struct {
	Kind     EventKind `json:"kind"`
	LandID   LandID    `json:"landId"`
	From     Address   `json:"from"`
	To       Address   `json:"to"`
	Operator Address   `json:"operator"`
	Tier     Tier      `json:"tier,omitempty"`
	Approved bool      `json:"approved,omitempty"`
	Count    uint64    `json:"count,omitempty"`
	Amount   *big.Int  `json:"amount,omitempty"`
	// Delivered 仅用于 ValueSent：尽力付款失败时为 false。
	Delivered bool `json:"delivered,omitempty"`
}

func TransferEvent(from, to Address, id LandID) Event {
	return Event{Kind: EventTransfer, From: from, To: to, LandID: id}
}

func ApprovalEvent(owner, approved Address, id LandID) Event {
	return Event{Kind: EventApproval, From: owner, To: approved, LandID: id}
}

func ApprovalForAllEvent(owner, operator Address, approved bool) Event {
	return Event{Kind: EventApprovalForAll, From: owner, Operator: operator, Approved: approved}
}

func LandUpgradedEvent(id LandID, owner Address, tier Tier) Event {
	return Event{Kind: EventLandUpgraded, LandID: id, To: owner, Tier: tier}
}

func MetadataUpdateEvent(id LandID) Event {
	return Event{Kind: EventMetadataUpdate, LandID: id}
}

func ExtraMintedEvent(user Address, count uint64) Event {
	return Event{Kind: EventExtraMinted, To: user, Count: count}
}

func ValueSentEvent(from, to Address, amount *big.Int, delivered bool) Event {
	return Event{Kind: EventValueSent, From: from, To: to, Amount: Wei(amount), Delivered: delivered}
}
