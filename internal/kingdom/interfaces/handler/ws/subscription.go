package ws

import (
	"LandKingdom/internal/kingdom/domain"
	"LandKingdom/modules/kit/errx"
)

const subscriptionKey = "kingdom.subscription"

var knownKinds = map[domain.EventKind]bool{
	domain.EventTransfer:       true,
	domain.EventApproval:       true,
	domain.EventApprovalForAll: true,
	domain.EventLandUpgraded:   true,
	domain.EventMetadataUpdate: true,
	domain.EventExtraMinted:    true,
	domain.EventValueSent:      true,
}

// subscribeReq 的每个条件为空即不过滤；多个条件同时满足才推送。
type subscribeReq struct {
	Kinds     []string         `json:"kinds"`
	Lands     []uint64         `json:"lands"`
	Addresses []domain.Address `json:"addresses"`
}

type subscription struct {
	kinds map[domain.EventKind]bool
	lands map[domain.LandID]bool
	addrs map[domain.Address]bool
}

func newSubscription(req subscribeReq) (*subscription, error) {
	s := &subscription{
		kinds: make(map[domain.EventKind]bool, len(req.Kinds)),
		lands: make(map[domain.LandID]bool, len(req.Lands)),
		addrs: make(map[domain.Address]bool, len(req.Addresses)),
	}
	for _, k := range req.Kinds {
		kind := domain.EventKind(k)
		if !knownKinds[kind] {
			return nil, errx.ErrReqParam.WithData("kind", k)
		}
		s.kinds[kind] = true
	}
	for _, id := range req.Lands {
		s.lands[domain.LandID(id)] = true
	}
	for _, a := range req.Addresses {
		s.addrs[a] = true
	}
	return s, nil
}

func (s *subscription) match(ev domain.Event) bool {
	if len(s.kinds) > 0 && !s.kinds[ev.Kind] {
		return false
	}
	if len(s.lands) > 0 && !s.lands[ev.LandID] {
		return false
	}
	if len(s.addrs) > 0 && !s.addrs[ev.From] && !s.addrs[ev.To] && !s.addrs[ev.Operator] {
		return false
	}
	return true
}
