package validator

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

// ValidatorDiscoverer discovers exiting validators
type ValidatorDiscoverer interface {
	Discover(ctx context.Context) *DiscoveryResult
}

// ExitFinalizer finalizes a single validator's exit
type ExitFinalizer interface {
	FinalizeExit(ctx context.Context, address string) *TransactionResult
}

// Run discovers exiting validators and finalizes each one in discovery order.
// Outcomes are logged as they happen and returned in the same order; a failed
// validator never stops the ones after it.
func Run(ctx context.Context, discoverer ValidatorDiscoverer, finalizer ExitFinalizer) []*TransactionResult {
	discovery := discoverer.Discover(ctx)

	if len(discovery.Addresses) == 0 {
		log.Info("No validators with status 3 (EXITING) found.")

		return nil
	}

	log.WithField("source", discovery.Source).Infof("Found %d validators to finalize exit.", len(discovery.Addresses))

	results := make([]*TransactionResult, 0, len(discovery.Addresses))

	for _, address := range discovery.Addresses {
		if ctx.Err() != nil {
			log.WithError(ctx.Err()).Warn("Stopping before remaining validators")

			break
		}

		result := finalizer.FinalizeExit(ctx, address)
		LogResult(result)

		results = append(results, result)
	}

	return results
}

// LogResult logs the outcome of a single finalization
func LogResult(result *TransactionResult) {
	entry := log.WithField("validator", result.ValidatorAddress)

	if result.TransactionHash != (common.Hash{}) {
		entry = entry.WithField("tx", result.TransactionHash.Hex())
	}

	switch {
	case result.Err != nil:
		entry.WithError(result.Err).WithField("stage", result.Stage).Error("Error finalizing exit for validator")
	case result.Succeeded:
		entry.Info("Successfully finalized exit for validator")
	default:
		entry.Error("Transaction failed for validator")
	}
}
