package aggregator

import (
	"github.com/credora/indexer/pkg/events"
	"github.com/credora/indexer/pkg/store"
	"github.com/holiman/uint256"
)

func (h *handler) accessGranted(p events.AccessGranted) error {
	key := store.PermissionKey(p.User, p.Protocol)

	prev, err := h.tx.GetPermission(key)
	if err != nil {
		return err
	}

	user, _, err := h.tx.GetOrCreateUser(p.User)
	if err != nil {
		return err
	}
	stats, _, err := h.tx.GetOrCreateProtocolStats(p.Protocol)
	if err != nil {
		return err
	}

	permission := &store.Permission{}
	if prev != nil {
		permission.ID = prev.ID

		// One live permission per pair: the superseded grant stops counting as active.
		if prev.IsActive {
			decrement(&user.ActivePermissions)
			decrement(&stats.ActivePermissions)
			h.log.Infow("active permission superseded by a new grant",
				"permission", key,
				"previousHash", prev.PermissionHash.Hex(),
				"hash", p.PermissionHash.Hex(),
			)
		}
	}

	permission.Key = key
	permission.User = p.User
	permission.Protocol = p.Protocol
	permission.GrantedAt = h.ts()
	permission.ExpiresAt = quantity(p.ExpiresAt)
	permission.MaxRequests = quantity(p.MaxRequests)
	permission.UsedRequests = new(uint256.Int)
	permission.IsActive = true
	permission.PermissionHash = p.PermissionHash
	permission.CreatedTx = h.meta.TxHash
	if err := h.tx.SavePermission(permission); err != nil {
		return err
	}

	user.ActivePermissions++
	user.TotalPermissionsGranted++
	user.Touch(h.ts())
	if err := h.tx.SaveUser(user); err != nil {
		return err
	}

	stats.TotalPermissionsReceived++
	stats.ActivePermissions++
	if stats.FirstPermissionAt == 0 {
		stats.FirstPermissionAt = h.ts()
	}
	if err := h.tx.SaveProtocolStats(stats); err != nil {
		return err
	}

	return IncrementDay(h.tx, h.ts(), CounterGrant)
}

func (h *handler) accessRevoked(p events.AccessRevoked) error {
	key := store.PermissionKey(p.User, p.Protocol)

	permission, err := h.tx.GetPermission(key)
	if err != nil {
		return err
	}

	user, _, err := h.tx.GetOrCreateUser(p.User)
	if err != nil {
		return err
	}
	stats, _, err := h.tx.GetOrCreateProtocolStats(p.Protocol)
	if err != nil {
		return err
	}

	switch {
	case permission == nil:
		h.warn(ErrMissingReferent, "revoke of unknown permission %s", key)
	case permission.IsActive:
		revokedAt := h.ts()
		permission.IsActive = false
		permission.RevokedAt = &revokedAt
		if err := h.tx.SavePermission(permission); err != nil {
			return err
		}

		decrement(&user.ActivePermissions)
		decrement(&stats.ActivePermissions)
	default:
		h.log.Debugw("revoke of inactive permission", "permission", key)
	}

	user.LastActivityAt = h.ts()
	if err := h.tx.SaveUser(user); err != nil {
		return err
	}
	if err := h.tx.SaveProtocolStats(stats); err != nil {
		return err
	}

	return IncrementDay(h.tx, h.ts(), CounterRevoke)
}

func (h *handler) accessUsed(p events.AccessUsed) error {
	if err := h.tx.InsertPermissionUsage(&store.PermissionUsage{
		EventID:           h.meta.ID(),
		User:              p.User,
		Protocol:          p.Protocol,
		RemainingRequests: quantity(p.RemainingRequests),
		Timestamp:         h.ts(),
		BlockNumber:       h.meta.BlockNumber,
		TxHash:            h.meta.TxHash,
	}); err != nil {
		return err
	}

	key := store.PermissionKey(p.User, p.Protocol)
	permission, err := h.tx.GetPermission(key)
	if err != nil {
		return err
	}

	if permission == nil {
		h.warn(ErrMissingReferent, "usage of unknown permission %s", key)
	} else {
		remaining, maxRequests := quantity(p.RemainingRequests), quantity(permission.MaxRequests)
		if remaining.Gt(maxRequests) {
			h.warn(ErrQuotaOverrun, "permission %s reports %s remaining of %s", key, remaining, maxRequests)
			permission.UsedRequests = new(uint256.Int)
		} else {
			permission.UsedRequests = new(uint256.Int).Sub(maxRequests, remaining)
		}
		if err := h.tx.SavePermission(permission); err != nil {
			return err
		}
	}

	stats, _, err := h.tx.GetOrCreateProtocolStats(p.Protocol)
	if err != nil {
		return err
	}
	stats.TotalAccessUsed++
	if err := h.tx.SaveProtocolStats(stats); err != nil {
		return err
	}

	return IncrementDay(h.tx, h.ts(), CounterUsage)
}
