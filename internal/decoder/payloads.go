package decoder

import (
	"errors"

	"github.com/credora/indexer/pkg/events"
)

func scoreMinted(f fields) (events.Payload, error) {
	owner, err1 := f.address("owner")
	tokenID, err2 := f.id("tokenId")

	return events.ScoreMinted{Owner: owner, TokenID: tokenID}, errors.Join(err1, err2)
}

func scoreUpdated(f fields) (events.Payload, error) {
	tokenID, err1 := f.id("tokenId")
	oldScore, err2 := f.uint256("oldScore")
	newScore, err3 := f.uint256("newScore")
	dataVersion, err4 := f.uint256("dataVersion")
	updatedBy, err5 := f.address("updatedBy")

	return events.ScoreUpdated{
		TokenID:     tokenID,
		OldScore:    oldScore,
		NewScore:    newScore,
		DataVersion: dataVersion,
		UpdatedBy:   updatedBy,
	}, errors.Join(err1, err2, err3, err4, err5)
}

func transfer(f fields) (events.Payload, error) {
	from, err1 := f.address("from")
	to, err2 := f.address("to")
	tokenID, err3 := f.id("tokenId")

	return events.Transfer{From: from, To: to, TokenID: tokenID}, errors.Join(err1, err2, err3)
}

func recoveryAddressSet(f fields) (events.Payload, error) {
	tokenID, err1 := f.id("tokenId")
	recovery, err2 := f.address("recoveryAddress")

	return events.RecoveryAddressSet{TokenID: tokenID, RecoveryAddress: recovery}, errors.Join(err1, err2)
}

func recoveryInitiated(f fields) (events.Payload, error) {
	tokenID, err1 := f.id("tokenId")
	from, err2 := f.address("from")
	to, err3 := f.address("to")

	return events.RecoveryInitiated{TokenID: tokenID, From: from, To: to}, errors.Join(err1, err2, err3)
}

func recoveryCompleted(f fields) (events.Payload, error) {
	tokenID, err1 := f.id("tokenId")
	newOwner, err2 := f.address("newOwner")

	return events.RecoveryCompleted{TokenID: tokenID, NewOwner: newOwner}, errors.Join(err1, err2)
}

func accessGranted(f fields) (events.Payload, error) {
	user, err1 := f.address("user")
	protocol, err2 := f.address("protocol")
	expiresAt, err3 := f.uint256("expiresAt")
	maxRequests, err4 := f.uint256("maxRequests")
	hash, err5 := f.bytes32("requestId")

	return events.AccessGranted{
		User:           user,
		Protocol:       protocol,
		ExpiresAt:      expiresAt,
		MaxRequests:    maxRequests,
		PermissionHash: hash,
	}, errors.Join(err1, err2, err3, err4, err5)
}

func accessRevoked(f fields) (events.Payload, error) {
	user, err1 := f.address("user")
	protocol, err2 := f.address("protocol")
	hash, err3 := f.bytes32("requestId")

	return events.AccessRevoked{User: user, Protocol: protocol, PermissionHash: hash}, errors.Join(err1, err2, err3)
}

func accessUsed(f fields) (events.Payload, error) {
	user, err1 := f.address("user")
	protocol, err2 := f.address("protocol")
	remaining, err3 := f.uint256("remainingRequests")

	return events.AccessUsed{User: user, Protocol: protocol, RemainingRequests: remaining}, errors.Join(err1, err2, err3)
}

func scoreUpdateRequested(f fields) (events.Payload, error) {
	user, err1 := f.address("user")
	requestID, err2 := f.id("requestId")

	return events.ScoreUpdateRequested{User: user, RequestID: requestID}, errors.Join(err1, err2)
}

func oracleScoreSubmitted(f fields) (events.Payload, error) {
	user, err1 := f.address("user")
	score, err2 := f.uint256("score")
	hash, err3 := f.bytes32("calculationHash")
	oracle, err4 := f.address("oracle")
	timestamp, err5 := f.uint256("timestamp")

	return events.OracleScoreSubmitted{
		User:            user,
		Score:           score,
		CalculationHash: hash,
		Oracle:          oracle,
		Timestamp:       timestamp,
	}, errors.Join(err1, err2, err3, err4, err5)
}

func oracleAdded(f fields) (events.Payload, error) {
	oracle, err := f.address("oracle")
	return events.OracleAdded{Oracle: oracle}, err
}

func oracleRemoved(f fields) (events.Payload, error) {
	oracle, err := f.address("oracle")
	return events.OracleRemoved{Oracle: oracle}, err
}
