package validator

import (
	"context"
	"crypto/ecdsa"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"

	"github.com/ethpandaops/exit-finalizer/pkg/registry"
)

// receiptPollInterval is how often a pending transaction's receipt is queried
const receiptPollInterval = time.Second

// Finalizer submits finalizeExit transactions from a single signing key
type Finalizer struct {
	backend        registry.Backend
	registry       *registry.Registry
	key            *ecdsa.PrivateKey
	from           common.Address
	signer         types.Signer
	gasLimit       uint64
	receiptTimeout time.Duration
	pollInterval   time.Duration
}

// NewFinalizer creates a Finalizer. A zero receiptTimeout waits for receipts
// until the context is cancelled.
func NewFinalizer(backend registry.Backend, reg *registry.Registry, key *ecdsa.PrivateKey, chainID *big.Int, gasLimit uint64, receiptTimeout time.Duration) *Finalizer {
	from := crypto.PubkeyToAddress(key.PublicKey)

	log.Info("Creating new Finalizer")
	log.Infof("Registry: %s", reg.Address().Hex())
	log.Infof("Sender: %s", from.Hex())
	log.Infof("Chain ID: %s", chainID)
	log.Infof("Gas limit: %d", gasLimit)

	if receiptTimeout > 0 {
		log.Infof("Receipt timeout: %s", receiptTimeout)
	}

	return &Finalizer{
		backend:        backend,
		registry:       reg,
		key:            key,
		from:           from,
		signer:         types.LatestSignerForChainID(chainID),
		gasLimit:       gasLimit,
		receiptTimeout: receiptTimeout,
		pollInterval:   receiptPollInterval,
	}
}

// From returns the sender address
func (f *Finalizer) From() common.Address {
	return f.from
}

// FinalizeExit builds, signs and submits a finalizeExit transaction for one
// validator and waits for its receipt. Failures are reported in the result,
// never returned, so callers can move on to the next validator.
func (f *Finalizer) FinalizeExit(ctx context.Context, address string) *TransactionResult {
	result := &TransactionResult{
		ValidatorAddress: address,
		Stage:            StageBuild,
	}

	txLog := log.WithField("validator", address)

	if !common.IsHexAddress(address) {
		result.Err = errors.Errorf("invalid validator address: %q", address)

		return result
	}

	input, err := f.registry.PackFinalizeExit(common.HexToAddress(address))
	if err != nil {
		result.Err = err

		return result
	}

	result.Stage = StageNonce

	nonce, err := f.backend.PendingNonceAt(ctx, f.from)
	if err != nil {
		result.Err = errors.Wrap(err, "failed to fetch nonce")

		return result
	}

	result.Stage = StageFees

	gasPrice, err := f.backend.SuggestGasPrice(ctx)
	if err != nil {
		result.Err = errors.Wrap(err, "failed to fetch gas price")

		return result
	}

	txLog.WithField("nonce", nonce).WithField("gas_price", gasPrice).Debug("Building transaction")

	to := f.registry.Address()

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		GasPrice: gasPrice,
		Gas:      f.gasLimit,
		To:       &to,
		Value:    big.NewInt(0),
		Data:     input,
	})

	result.Stage = StageSign

	signedTx, err := types.SignTx(tx, f.signer, f.key)
	if err != nil {
		result.Err = errors.Wrap(err, "failed to sign transaction")

		return result
	}

	result.TransactionHash = signedTx.Hash()
	result.Stage = StageSend

	if err := f.backend.SendTransaction(ctx, signedTx); err != nil {
		result.Err = errors.Wrap(err, "failed to send transaction")

		return result
	}

	txLog.WithField("tx", result.TransactionHash.Hex()).Debug("Transaction sent, waiting for receipt")

	result.Stage = StageReceipt

	receipt, err := f.waitForReceipt(ctx, signedTx)
	if err != nil {
		result.Err = errors.Wrap(err, "failed waiting for receipt")

		return result
	}

	result.Confirmed = true
	result.Succeeded = receipt.Status == types.ReceiptStatusSuccessful
	result.Stage = StageDone

	return result
}

// waitForReceipt polls until the transaction is mined. Only "not found" is
// retried; any other RPC error ends the wait for this transaction.
func (f *Finalizer) waitForReceipt(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	if f.receiptTimeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, f.receiptTimeout)
		defer cancel()
	}

	ticker := time.NewTicker(f.pollInterval)
	defer ticker.Stop()

	pollLog := log.WithField("tx", tx.Hash().Hex())

	for {
		receipt, err := f.backend.TransactionReceipt(ctx, tx.Hash())
		if err == nil {
			return receipt, nil
		}

		if !errors.Is(err, ethereum.NotFound) {
			return nil, errors.Wrap(err, "failed to fetch receipt")
		}

		pollLog.Debug("Transaction not yet mined")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}
