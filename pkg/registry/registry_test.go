package registry

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type callBackend struct {
	output []byte
	err    error
	calls  []ethereum.CallMsg
}

func (b *callBackend) CodeAt(context.Context, common.Address, *big.Int) ([]byte, error) {
	return nil, nil
}

func (b *callBackend) CallContract(_ context.Context, call ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	b.calls = append(b.calls, call)

	return b.output, b.err
}

func (b *callBackend) ChainID(context.Context) (*big.Int, error) {
	return big.NewInt(1), nil
}

func (b *callBackend) PendingNonceAt(context.Context, common.Address) (uint64, error) {
	return 0, nil
}

func (b *callBackend) SuggestGasPrice(context.Context) (*big.Int, error) {
	return big.NewInt(1), nil
}

func (b *callBackend) SendTransaction(context.Context, *types.Transaction) error {
	return nil
}

func (b *callBackend) TransactionReceipt(context.Context, common.Hash) (*types.Receipt, error) {
	return nil, ethereum.NotFound
}

var testContract = common.HexToAddress("0x00000000000000000000000000000000000000ff")

func TestGetValidators(t *testing.T) {
	parsed, err := ParsedABI()
	require.NoError(t, err)

	addrA := common.HexToAddress("0x00000000000000000000000000000000000000aa")
	addrB := common.HexToAddress("0x00000000000000000000000000000000000000bb")

	packed, err := parsed.Methods[methodGetValidators].Outputs.Pack(
		[]common.Address{addrA, addrB},
		[]*big.Int{big.NewInt(3), big.NewInt(1)},
	)
	require.NoError(t, err)

	tests := []struct {
		name        string
		output      []byte
		callErr     error
		expectError bool
	}{
		{
			name:   "successful call",
			output: packed,
		},
		{
			name:        "rpc failure",
			callErr:     errors.New("connection refused"),
			expectError: true,
		},
		{
			name:        "malformed return data",
			output:      []byte{0x01, 0x02},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &callBackend{output: tt.output, err: tt.callErr}

			reg, err := New(testContract, backend)
			require.NoError(t, err)

			validators, statuses, err := reg.GetValidators(context.Background())

			require.Len(t, backend.calls, 1)
			require.NotNil(t, backend.calls[0].To)
			assert.Equal(t, testContract, *backend.calls[0].To)
			assert.Equal(t, parsed.Methods[methodGetValidators].ID, backend.calls[0].Data)

			if tt.expectError {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, []common.Address{addrA, addrB}, validators)
			require.Len(t, statuses, 2)
			assert.Equal(t, int64(3), statuses[0].Int64())
			assert.Equal(t, int64(1), statuses[1].Int64())
		})
	}
}

func TestPackFinalizeExit(t *testing.T) {
	parsed, err := ParsedABI()
	require.NoError(t, err)

	reg, err := New(testContract, &callBackend{})
	require.NoError(t, err)

	assert.Equal(t, testContract, reg.Address())

	validator := common.HexToAddress("0x1234567890abcdef1234567890abcdef12345678")

	input, err := reg.PackFinalizeExit(validator)
	require.NoError(t, err)

	require.Len(t, input, 4+32)
	assert.Equal(t, parsed.Methods[methodFinalizeExit].ID, input[:4])
	assert.Equal(t, validator.Bytes(), input[len(input)-common.AddressLength:])
}
