package aggregator

import (
	"github.com/credora/indexer/pkg/events"
	"github.com/credora/indexer/pkg/store"
)

func (h *handler) scoreUpdateRequested(p events.ScoreUpdateRequested) error {
	request := &store.ScoreRequest{}

	existing, err := h.tx.GetScoreRequest(p.RequestID)
	if err != nil {
		return err
	}
	if existing != nil {
		request.ID = existing.ID
	}

	request.RequestID = p.RequestID
	request.User = p.User
	request.RequestedAt = h.ts()
	request.Status = store.RequestPending
	request.RequestTx = h.meta.TxHash

	return h.tx.SaveScoreRequest(request)
}

func (h *handler) oracleScoreSubmitted(p events.OracleScoreSubmitted) error {
	oracle, created, err := h.tx.GetOrCreateOracle(p.Oracle)
	if err != nil {
		return err
	}
	if created {
		oracle.IsActive = true
	}
	oracle.UpdatesSubmitted++
	if err := h.tx.SaveOracle(oracle); err != nil {
		return err
	}

	pending, err := h.tx.PendingScoreRequests(p.User, h.ts())
	if err != nil {
		return err
	}
	for _, request := range pending {
		fulfilledAt := h.ts()
		fulfilledBy := p.Oracle
		request.Status = store.RequestFulfilled
		request.FulfilledAt = &fulfilledAt
		request.FulfilledBy = &fulfilledBy
		if err := h.tx.SaveScoreRequest(request); err != nil {
			return err
		}
	}

	user, created, err := h.tx.GetOrCreateUser(p.User)
	if err != nil {
		return err
	}
	if created || user.TokenID == nil {
		return nil
	}

	cs, err := h.tx.GetCreditScore(*user.TokenID)
	if err != nil {
		return err
	}
	if cs == nil {
		h.warn(ErrMissingReferent, "user %s holds unknown token %s", p.User.Hex(), *user.TokenID)
		return nil
	}
	cs.ScoreProof = p.CalculationHash

	return h.tx.SaveCreditScore(cs)
}

func (h *handler) oracleAdded(p events.OracleAdded) error {
	oracle, _, err := h.tx.GetOrCreateOracle(p.Oracle)
	if err != nil {
		return err
	}

	oracle.IsActive = true
	oracle.AddedAt = h.ts()
	oracle.RemovedAt = nil

	return h.tx.SaveOracle(oracle)
}

func (h *handler) oracleRemoved(p events.OracleRemoved) error {
	oracle, _, err := h.tx.GetOrCreateOracle(p.Oracle)
	if err != nil {
		return err
	}

	removedAt := h.ts()
	oracle.IsActive = false
	oracle.RemovedAt = &removedAt

	return h.tx.SaveOracle(oracle)
}
