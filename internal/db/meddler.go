package db

import (
	"database/sql"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/russross/meddler"
)

func init() {
	meddler.Default = meddler.SQLite
	meddler.Register("address", AddressMeddler{})
	meddler.Register("hash", HashMeddler{})
	meddler.Register("uint256", Uint256Meddler{})
}

// AddressMeddler stores common.Address and *common.Address as checksummed hex, nil as NULL.
type AddressMeddler struct{}

func (AddressMeddler) PreRead(fieldAddr any) (any, error) {
	return new(sql.NullString), nil
}

func (AddressMeddler) PostRead(fieldAddr, scanTarget any) error {
	ns, ok := scanTarget.(*sql.NullString)
	if !ok {
		return fmt.Errorf("expected *sql.NullString, got %T", scanTarget)
	}

	switch ptr := fieldAddr.(type) {
	case **common.Address:
		if !ns.Valid {
			*ptr = nil
			return nil
		}
		address := common.HexToAddress(ns.String)
		*ptr = &address
	case *common.Address:
		*ptr = common.Address{}
		if ns.Valid {
			*ptr = common.HexToAddress(ns.String)
		}
	default:
		return fmt.Errorf("expected *common.Address or **common.Address, got %T", fieldAddr)
	}

	return nil
}

func (AddressMeddler) PreWrite(field any) (any, error) {
	switch v := field.(type) {
	case *common.Address:
		if v == nil {
			return nil, nil
		}
		return v.Hex(), nil
	case common.Address:
		return v.Hex(), nil
	default:
		return nil, fmt.Errorf("expected common.Address or *common.Address, got %T", field)
	}
}

// HashMeddler stores common.Hash and *common.Hash as 0x-prefixed hex, nil as NULL.
type HashMeddler struct{}

func (HashMeddler) PreRead(fieldAddr any) (any, error) {
	return new(sql.NullString), nil
}

func (HashMeddler) PostRead(fieldAddr, scanTarget any) error {
	ns, ok := scanTarget.(*sql.NullString)
	if !ok {
		return fmt.Errorf("expected *sql.NullString, got %T", scanTarget)
	}

	switch ptr := fieldAddr.(type) {
	case **common.Hash:
		if !ns.Valid {
			*ptr = nil
			return nil
		}
		hash := common.HexToHash(ns.String)
		*ptr = &hash
	case *common.Hash:
		*ptr = common.Hash{}
		if ns.Valid {
			*ptr = common.HexToHash(ns.String)
		}
	default:
		return fmt.Errorf("expected *common.Hash or **common.Hash, got %T", fieldAddr)
	}

	return nil
}

func (HashMeddler) PreWrite(field any) (any, error) {
	switch v := field.(type) {
	case *common.Hash:
		if v == nil {
			return nil, nil
		}
		return v.Hex(), nil
	case common.Hash:
		return v.Hex(), nil
	default:
		return nil, fmt.Errorf("expected common.Hash or *common.Hash, got %T", field)
	}
}

// Uint256Meddler stores *uint256.Int as decimal TEXT, nil as NULL.
// SQLite integers are signed 64-bit, so on-chain quantities cannot use INTEGER columns.
type Uint256Meddler struct{}

func (Uint256Meddler) PreRead(fieldAddr any) (any, error) {
	return new(sql.NullString), nil
}

func (Uint256Meddler) PostRead(fieldAddr, scanTarget any) error {
	ns, ok := scanTarget.(*sql.NullString)
	if !ok {
		return fmt.Errorf("expected *sql.NullString, got %T", scanTarget)
	}

	ptr, ok := fieldAddr.(**uint256.Int)
	if !ok {
		return fmt.Errorf("expected **uint256.Int, got %T", fieldAddr)
	}
	if !ns.Valid {
		*ptr = nil
		return nil
	}

	v, err := uint256.FromDecimal(ns.String)
	if err != nil {
		return fmt.Errorf("invalid uint256 %q: %w", ns.String, err)
	}
	*ptr = v

	return nil
}

func (Uint256Meddler) PreWrite(field any) (any, error) {
	v, ok := field.(*uint256.Int)
	if !ok {
		return nil, fmt.Errorf("expected *uint256.Int, got %T", field)
	}
	if v == nil {
		return nil, nil
	}
	return v.Dec(), nil
}
