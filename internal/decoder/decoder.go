// Package decoder turns raw Credora contract logs into typed events.
package decoder

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"math/big"

	"github.com/credora/indexer/pkg/events"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/holiman/uint256"
)

//go:embed abi/*.json
var abiFS embed.FS

var (
	// ErrUnknownEvent is returned for logs whose emitter and topic are not a known Credora event.
	ErrUnknownEvent = errors.New("unknown event")
	// ErrMalformedLog is returned when a known event cannot be decoded.
	ErrMalformedLog = errors.New("malformed log")
)

// Contracts holds the addresses the decoder attributes events to.
type Contracts struct {
	ScoreSBT          common.Address
	PermissionManager common.Address
	ScoreOracle       common.Address
}

type fields map[string]any

type payloadFunc func(f fields) (events.Payload, error)

type eventKey struct {
	contract common.Address
	topic    common.Hash
}

type eventDecoder struct {
	abi     abi.ABI
	event   abi.Event
	payload payloadFunc
}

// Decoder decodes logs emitted by the three Credora contracts.
// The SBT and oracle contracts both emit an event called ScoreUpdated, so
// events are resolved by emitter and topic together.
type Decoder struct {
	decoders  map[eventKey]eventDecoder
	addresses []common.Address
	topics    []common.Hash
}

// New creates a decoder for the given deployment.
func New(contracts Contracts) (*Decoder, error) {
	d := &Decoder{decoders: make(map[eventKey]eventDecoder)}

	bindings := []struct {
		file     string
		contract common.Address
		payloads map[string]payloadFunc
	}{
		{
			file:     "abi/score_sbt.json",
			contract: contracts.ScoreSBT,
			payloads: map[string]payloadFunc{
				"ScoreMinted":        scoreMinted,
				"ScoreUpdated":       scoreUpdated,
				"Transfer":           transfer,
				"RecoveryAddressSet": recoveryAddressSet,
				"RecoveryInitiated":  recoveryInitiated,
				"RecoveryCompleted":  recoveryCompleted,
			},
		},
		{
			file:     "abi/permission_manager.json",
			contract: contracts.PermissionManager,
			payloads: map[string]payloadFunc{
				"AccessGranted": accessGranted,
				"AccessRevoked": accessRevoked,
				"AccessUsed":    accessUsed,
			},
		},
		{
			file:     "abi/score_oracle.json",
			contract: contracts.ScoreOracle,
			payloads: map[string]payloadFunc{
				"ScoreUpdateRequested": scoreUpdateRequested,
				"ScoreUpdated":         oracleScoreSubmitted,
				"OracleAdded":          oracleAdded,
				"OracleRemoved":        oracleRemoved,
			},
		},
	}

	seenTopics := make(map[common.Hash]struct{})
	for _, b := range bindings {
		raw, err := abiFS.ReadFile(b.file)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", b.file, err)
		}

		parsed, err := abi.JSON(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", b.file, err)
		}

		for name, payload := range b.payloads {
			ev, ok := parsed.Events[name]
			if !ok {
				return nil, fmt.Errorf("event %s missing from %s", name, b.file)
			}

			d.decoders[eventKey{contract: b.contract, topic: ev.ID}] = eventDecoder{abi: parsed, event: ev, payload: payload}
			if _, seen := seenTopics[ev.ID]; !seen {
				seenTopics[ev.ID] = struct{}{}
				d.topics = append(d.topics, ev.ID)
			}
		}

		d.addresses = append(d.addresses, b.contract)
	}

	return d, nil
}

// Addresses returns the contract addresses to filter logs by.
func (d *Decoder) Addresses() []common.Address {
	return d.addresses
}

// Topics returns the topic filter matching every known event.
func (d *Decoder) Topics() [][]common.Hash {
	return [][]common.Hash{d.topics}
}

// Decode decodes a log into an event. The timestamp is the log's block timestamp.
func (d *Decoder) Decode(log types.Log, timestamp uint64) (events.Event, error) {
	if len(log.Topics) == 0 {
		return events.Event{}, fmt.Errorf("%w: log without topics", ErrUnknownEvent)
	}

	dec, ok := d.decoders[eventKey{contract: log.Address, topic: log.Topics[0]}]
	if !ok {
		return events.Event{}, fmt.Errorf("%w: topic %s from %s", ErrUnknownEvent, log.Topics[0].Hex(), log.Address.Hex())
	}

	f := make(fields)
	if len(log.Data) > 0 {
		if err := dec.abi.UnpackIntoMap(f, dec.event.Name, log.Data); err != nil {
			return events.Event{}, fmt.Errorf("%w: %s data: %w", ErrMalformedLog, dec.event.Name, err)
		}
	}

	var indexed abi.Arguments
	for _, arg := range dec.event.Inputs {
		if arg.Indexed {
			indexed = append(indexed, arg)
		}
	}
	if len(log.Topics)-1 != len(indexed) {
		return events.Event{}, fmt.Errorf("%w: %s expects %d indexed topics, got %d",
			ErrMalformedLog, dec.event.Name, len(indexed), len(log.Topics)-1)
	}
	if err := abi.ParseTopicsIntoMap(f, indexed, log.Topics[1:]); err != nil {
		return events.Event{}, fmt.Errorf("%w: %s topics: %w", ErrMalformedLog, dec.event.Name, err)
	}

	payload, err := dec.payload(f)
	if err != nil {
		return events.Event{}, fmt.Errorf("%w: %s: %w", ErrMalformedLog, dec.event.Name, err)
	}

	return events.Event{
		Meta: events.Meta{
			Contract:    log.Address,
			BlockNumber: log.BlockNumber,
			BlockHash:   log.BlockHash,
			LogIndex:    log.Index,
			TxHash:      log.TxHash,
			Timestamp:   timestamp,
		},
		Payload: payload,
	}, nil
}

func (f fields) address(name string) (common.Address, error) {
	v, ok := f[name].(common.Address)
	if !ok {
		return common.Address{}, fmt.Errorf("field %s: expected address, got %T", name, f[name])
	}
	return v, nil
}

func (f fields) bytes32(name string) (common.Hash, error) {
	v, ok := f[name].([32]byte)
	if !ok {
		return common.Hash{}, fmt.Errorf("field %s: expected bytes32, got %T", name, f[name])
	}
	return common.Hash(v), nil
}

func (f fields) bigInt(name string) (*big.Int, error) {
	v, ok := f[name].(*big.Int)
	if !ok || v == nil {
		return nil, fmt.Errorf("field %s: expected uint256, got %T", name, f[name])
	}
	return v, nil
}

// id renders a uint256 identifier in decimal.
func (f fields) id(name string) (string, error) {
	v, err := f.bigInt(name)
	if err != nil {
		return "", err
	}
	return v.String(), nil
}

// uint256 converts a uint256 field without loss.
func (f fields) uint256(name string) (*uint256.Int, error) {
	v, err := f.bigInt(name)
	if err != nil {
		return nil, err
	}

	u, overflow := uint256.FromBig(v)
	if overflow {
		return nil, fmt.Errorf("field %s: value %s overflows uint256", name, v)
	}
	return u, nil
}
