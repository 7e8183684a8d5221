package registry

import (
	"context"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"
)

// Backend is the subset of an execution client the registry tooling needs.
// *ethclient.Client satisfies it.
type Backend interface {
	CodeAt(ctx context.Context, account common.Address, blockNumber *big.Int) ([]byte, error)
	CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	ChainID(ctx context.Context) (*big.Int, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

// Registry is a minimal binding for the validator registry contract
type Registry struct {
	address common.Address
	abi     abi.ABI
	backend Backend
}

// ParsedABI returns the parsed registry ABI
func ParsedABI() (abi.ABI, error) {
	parsed, err := abi.JSON(strings.NewReader(registryABI))
	if err != nil {
		return abi.ABI{}, errors.Wrap(err, "failed to parse registry ABI")
	}

	return parsed, nil
}

// New creates a Registry bound to the contract at address
func New(address common.Address, backend Backend) (*Registry, error) {
	parsed, err := ParsedABI()
	if err != nil {
		return nil, err
	}

	return &Registry{
		address: address,
		abi:     parsed,
		backend: backend,
	}, nil
}

// Address returns the contract address
func (r *Registry) Address() common.Address {
	return r.address
}

// GetValidators calls the getValidators view function and returns the two
// parallel arrays: all known validator addresses and their status codes.
func (r *Registry) GetValidators(ctx context.Context) ([]common.Address, []*big.Int, error) {
	input, err := r.abi.Pack(methodGetValidators)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to pack getValidators call")
	}

	to := r.address

	output, err := r.backend.CallContract(ctx, ethereum.CallMsg{To: &to, Data: input}, nil)
	if err != nil {
		return nil, nil, errors.Wrap(err, "getValidators call failed")
	}

	values, err := r.abi.Unpack(methodGetValidators, output)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to unpack getValidators result")
	}

	if len(values) != 2 {
		return nil, nil, errors.Errorf("unexpected getValidators result length: %d", len(values))
	}

	validators, ok := values[0].([]common.Address)
	if !ok {
		return nil, nil, errors.Errorf("unexpected getValidators address type: %T", values[0])
	}

	statuses, ok := values[1].([]*big.Int)
	if !ok {
		return nil, nil, errors.Errorf("unexpected getValidators status type: %T", values[1])
	}

	return validators, statuses, nil
}

// PackFinalizeExit returns the calldata for finalizeExit(validator)
func (r *Registry) PackFinalizeExit(validator common.Address) ([]byte, error) {
	input, err := r.abi.Pack(methodFinalizeExit, validator)
	if err != nil {
		return nil, errors.Wrap(err, "failed to pack finalizeExit call")
	}

	return input, nil
}
