package rpc

import (
	"context"
	"errors"
	"math/big"
	"sync/atomic"
	"testing"
	"time"

	"github.com/credora/indexer/internal/common"
	"github.com/credora/indexer/internal/logger"
	"github.com/credora/indexer/pkg/config"
	pkgrpc "github.com/credora/indexer/pkg/rpc"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/stretchr/testify/require"
)

// TestClientImplementsInterface verifies that Client implements the EthClient interface.
func TestClientImplementsInterface(t *testing.T) {
	var _ pkgrpc.EthClient = (*Client)(nil)
}

func TestToBlockNumArg(t *testing.T) {
	tests := []struct {
		blockNum uint64
		want     string
	}{
		{blockNum: 0, want: "0x0"},
		{blockNum: 1, want: "0x1"},
		{blockNum: 100, want: "0x64"},
		{blockNum: 18000000, want: "0x112a880"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			require.Equal(t, tt.want, toBlockNumArg(tt.blockNum))
		})
	}
}

// fakeEth serves the eth namespace methods used by Client.
type fakeEth struct {
	failuresLeft atomic.Int32
	calls        atomic.Int32
}

func (f *fakeEth) ChainId() (*hexutil.Big, error) { //nolint:revive,stylecheck
	f.calls.Add(1)
	if f.failuresLeft.Add(-1) >= 0 {
		return nil, errors.New("503 service unavailable")
	}
	return (*hexutil.Big)(big.NewInt(31337)), nil
}

func (f *fakeEth) GetBlockByNumber(number rpc.BlockNumber, _ bool) (*types.Header, error) {
	f.calls.Add(1)
	if number < 0 {
		return &types.Header{Number: big.NewInt(500), Time: 5000, Difficulty: big.NewInt(0)}, nil
	}
	if number > 1000 {
		return nil, nil
	}
	return &types.Header{
		Number:     big.NewInt(number.Int64()),
		Time:       uint64(number.Int64()) * 12,
		Difficulty: big.NewInt(0),
	}, nil
}

func newTestClient(t *testing.T, svc *fakeEth, source config.SourceConfig) *Client {
	t.Helper()

	server := rpc.NewServer()
	require.NoError(t, server.RegisterName("eth", svc))
	t.Cleanup(server.Stop)

	client := newClient(rpc.DialInProc(server), source, logger.NewNopLogger())
	t.Cleanup(client.Close)

	return client
}

func TestClient_ChainIDRetriesTransientErrors(t *testing.T) {
	svc := &fakeEth{}
	svc.failuresLeft.Store(2)

	client := newTestClient(t, svc, config.SourceConfig{
		Retry: &config.RetryConfig{
			MaxAttempts:       3,
			InitialBackoff:    common.NewDuration(time.Millisecond),
			MaxBackoff:        common.NewDuration(5 * time.Millisecond),
			BackoffMultiplier: 2,
		},
	})

	id, err := client.ChainID(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(31337), id.Int64())
	require.Equal(t, int32(3), svc.calls.Load())
}

func TestClient_ChainIDWithoutRetry(t *testing.T) {
	svc := &fakeEth{}
	svc.failuresLeft.Store(1)

	client := newTestClient(t, svc, config.SourceConfig{})

	_, err := client.ChainID(context.Background())
	require.ErrorContains(t, err, "503")
	require.Equal(t, int32(1), svc.calls.Load())
}

func TestClient_Headers(t *testing.T) {
	client := newTestClient(t, &fakeEth{}, config.SourceConfig{RequestsPerSecond: 1000, Burst: 10})
	ctx := context.Background()

	header, err := client.GetBlockHeader(ctx, 10)
	require.NoError(t, err)
	require.Equal(t, uint64(120), header.Time)

	latest, err := client.GetLatestBlockHeader(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(500), latest.Number.Uint64())

	blocks := make([]uint64, 0, 150)
	for i := range uint64(150) {
		blocks = append(blocks, i+1)
	}
	headers, err := client.BatchGetBlockHeaders(ctx, blocks)
	require.NoError(t, err)
	require.Len(t, headers, 150)
	for i, h := range headers {
		require.Equal(t, blocks[i], h.Number.Uint64())
	}

	_, err = client.BatchGetBlockHeaders(ctx, []uint64{1, 2000})
	require.ErrorContains(t, err, "block 2000 not found")
}
