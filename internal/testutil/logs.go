package testutil

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

// Event signatures of the Credora contracts.
const (
	SigScoreMinted          = "ScoreMinted(address,uint256)"
	SigScoreUpdated         = "ScoreUpdated(uint256,uint256,uint256,uint256,address)"
	SigTransfer             = "Transfer(address,address,uint256)"
	SigRecoveryAddressSet   = "RecoveryAddressSet(uint256,address)"
	SigRecoveryInitiated    = "RecoveryInitiated(uint256,address,address)"
	SigRecoveryCompleted    = "RecoveryCompleted(uint256,address)"
	SigAccessGranted        = "AccessGranted(address,address,uint256,uint256,bytes32)"
	SigAccessRevoked        = "AccessRevoked(address,address,bytes32)"
	SigAccessUsed           = "AccessUsed(address,address,uint256)"
	SigScoreUpdateRequested = "ScoreUpdateRequested(address,uint256)"
	SigOracleScoreUpdated   = "ScoreUpdated(address,uint256,bytes32,address,uint256)"
	SigOracleAdded          = "OracleAdded(address)"
	SigOracleRemoved        = "OracleRemoved(address)"
)

// Topic returns the topic0 of an event signature.
func Topic(signature string) common.Hash {
	return crypto.Keccak256Hash([]byte(signature))
}

// AddressTopic encodes an indexed address argument.
func AddressTopic(a common.Address) common.Hash {
	return common.BytesToHash(a.Bytes())
}

// UintTopic encodes an indexed uint256 argument.
func UintTopic(v uint64) common.Hash {
	return common.BigToHash(new(big.Int).SetUint64(v))
}

// Word encodes a uint256 argument as a 32 byte ABI word.
func Word(v uint64) []byte {
	return common.LeftPadBytes(new(big.Int).SetUint64(v).Bytes(), 32)
}

// BigWord encodes an arbitrary uint256 argument as a 32 byte ABI word.
func BigWord(v *big.Int) []byte {
	return common.LeftPadBytes(v.Bytes(), 32)
}

// AddressWord encodes an address argument as a 32 byte ABI word.
func AddressWord(a common.Address) []byte {
	return common.LeftPadBytes(a.Bytes(), 32)
}

// LogBuilder assembles a raw log.
type LogBuilder struct {
	log types.Log
}

// NewLog starts a log emitted by contract for the event signature.
func NewLog(contract common.Address, signature string) *LogBuilder {
	return &LogBuilder{log: types.Log{
		Address: contract,
		Topics:  []common.Hash{Topic(signature)},
	}}
}

// Topics appends indexed arguments.
func (b *LogBuilder) Topics(topics ...common.Hash) *LogBuilder {
	b.log.Topics = append(b.log.Topics, topics...)
	return b
}

// Data appends ABI words to the log data.
func (b *LogBuilder) Data(words ...[]byte) *LogBuilder {
	for _, w := range words {
		b.log.Data = append(b.log.Data, w...)
	}
	return b
}

// At places the log at the given block and log index.
func (b *LogBuilder) At(block uint64, index uint) *LogBuilder {
	b.log.BlockNumber = block
	b.log.Index = index
	b.log.BlockHash = common.BigToHash(new(big.Int).SetUint64(block))
	b.log.TxHash = crypto.Keccak256Hash(Word(block), Word(uint64(index)))
	return b
}

// Removed marks the log as removed by a reorg.
func (b *LogBuilder) Removed() *LogBuilder {
	b.log.Removed = true
	return b
}

// Build returns the log.
func (b *LogBuilder) Build() types.Log {
	return b.log
}
