package aggregator

import (
	"github.com/credora/indexer/pkg/events"
	"github.com/credora/indexer/pkg/store"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

func (h *handler) scoreMinted(p events.ScoreMinted) error {
	existing, err := h.tx.GetCreditScore(p.TokenID)
	if err != nil {
		return err
	}

	cs := &store.CreditScore{}
	if existing != nil {
		h.warn(ErrDuplicateMint, "token %s already owned by %s", p.TokenID, existing.Owner.Hex())
		cs.ID = existing.ID

		if existing.Owner != p.Owner {
			if err := h.detachToken(existing.Owner, p.TokenID); err != nil {
				return err
			}
		}
	}

	cs.TokenID = p.TokenID
	cs.Owner = p.Owner
	cs.Score = new(uint256.Int)
	cs.LastUpdated = h.ts()
	cs.DataVersion = uint256.NewInt(1)
	cs.CreatedAt = h.ts()
	cs.CreatedTx = h.meta.TxHash
	if err := h.tx.SaveCreditScore(cs); err != nil {
		return err
	}

	user, _, err := h.tx.GetOrCreateUser(p.Owner)
	if err != nil {
		return err
	}
	user.AttachSBT(p.TokenID, cs.Score)
	user.Touch(h.ts())
	if err := h.tx.SaveUser(user); err != nil {
		return err
	}

	return IncrementDay(h.tx, h.ts(), CounterMint)
}

func (h *handler) scoreUpdated(p events.ScoreUpdated) error {
	cs, err := h.tx.GetCreditScore(p.TokenID)
	if err != nil {
		return err
	}
	if cs == nil {
		h.warn(ErrMissingReferent, "score update for unknown token %s", p.TokenID)
		return nil
	}

	if err := h.tx.InsertScoreUpdate(&store.ScoreUpdate{
		EventID:     h.meta.ID(),
		TokenID:     p.TokenID,
		Owner:       cs.Owner,
		OldScore:    quantity(p.OldScore),
		NewScore:    quantity(p.NewScore),
		DataVersion: quantity(p.DataVersion),
		UpdatedBy:   p.UpdatedBy,
		Timestamp:   h.ts(),
		BlockNumber: h.meta.BlockNumber,
		TxHash:      h.meta.TxHash,
	}); err != nil {
		return err
	}

	cs.Score = quantity(p.NewScore)
	cs.LastUpdated = h.ts()
	cs.DataVersion = quantity(p.DataVersion)
	cs.UpdateCount++
	if err := h.tx.SaveCreditScore(cs); err != nil {
		return err
	}

	user, _, err := h.tx.GetOrCreateUser(cs.Owner)
	if err != nil {
		return err
	}
	// A burned token keeps its history but no longer drives the owner's current score.
	if user.TokenID != nil && *user.TokenID == p.TokenID {
		user.CurrentScore = quantity(p.NewScore)
	}
	user.TotalScoreUpdates++
	user.LastActivityAt = h.ts()
	if err := h.tx.SaveUser(user); err != nil {
		return err
	}

	return IncrementDay(h.tx, h.ts(), CounterUpdate)
}

func (h *handler) transfer(p events.Transfer) error {
	switch {
	case p.IsMint():
		// ScoreMinted carries the mint.
		return nil
	case p.IsBurn():
		return h.detachToken(p.From, p.TokenID)
	default:
		h.warn(ErrUnsupportedTransfer, "token %s from %s to %s", p.TokenID, p.From.Hex(), p.To.Hex())
		return nil
	}
}

// detachToken clears owner's token fields if owner still holds tokenID.
func (h *handler) detachToken(owner common.Address, tokenID string) error {
	user, _, err := h.tx.GetOrCreateUser(owner)
	if err != nil {
		return err
	}
	if user.TokenID != nil && *user.TokenID != tokenID {
		return nil
	}

	user.ClearSBT()

	return h.tx.SaveUser(user)
}

func (h *handler) recoveryAddressSet(p events.RecoveryAddressSet) error {
	cs, err := h.tx.GetCreditScore(p.TokenID)
	if err != nil {
		return err
	}
	if cs == nil {
		h.warn(ErrMissingReferent, "recovery address for unknown token %s", p.TokenID)
		return nil
	}

	recovery := p.RecoveryAddress
	cs.RecoveryAddress = &recovery

	return h.tx.SaveCreditScore(cs)
}

func (h *handler) recoveryInitiated(p events.RecoveryInitiated) error {
	cs, err := h.tx.GetCreditScore(p.TokenID)
	if err != nil {
		return err
	}
	if cs == nil {
		h.warn(ErrMissingReferent, "recovery initiated for unknown token %s", p.TokenID)
		return nil
	}

	to := p.To
	initiatedAt := h.ts()
	cs.PendingRecoveryTo = &to
	cs.RecoveryInitiatedAt = &initiatedAt

	return h.tx.SaveCreditScore(cs)
}

func (h *handler) recoveryCompleted(p events.RecoveryCompleted) error {
	cs, err := h.tx.GetCreditScore(p.TokenID)
	if err != nil {
		return err
	}
	if cs == nil {
		h.warn(ErrMissingReferent, "recovery completed for unknown token %s", p.TokenID)
		return nil
	}

	if cs.Owner != p.NewOwner {
		if err := h.detachToken(cs.Owner, p.TokenID); err != nil {
			return err
		}
	}

	h.log.Infow("score token recovered",
		"tokenId", p.TokenID,
		"from", cs.Owner.Hex(),
		"to", p.NewOwner.Hex(),
	)

	cs.Owner = p.NewOwner
	cs.PendingRecoveryTo = nil
	cs.RecoveryInitiatedAt = nil
	if err := h.tx.SaveCreditScore(cs); err != nil {
		return err
	}

	user, _, err := h.tx.GetOrCreateUser(p.NewOwner)
	if err != nil {
		return err
	}
	user.AttachSBT(p.TokenID, cs.Score)
	user.Touch(h.ts())

	return h.tx.SaveUser(user)
}
