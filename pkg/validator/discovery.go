package validator

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

var exitingStatusCodeBig = big.NewInt(exitingStatusCode)

// RecordSource lists validator records from the primary discovery source
type RecordSource interface {
	FetchValidators(ctx context.Context) ([]ValidatorRecord, error)
}

// ValidatorLister lists validators and their status codes from the registry contract
type ValidatorLister interface {
	GetValidators(ctx context.Context) ([]common.Address, []*big.Int, error)
}

// Discoverer finds validators that are waiting for their exit to be finalized
type Discoverer struct {
	api      RecordSource
	registry ValidatorLister
}

// NewDiscoverer creates a Discoverer that reads from api and falls back to registry
func NewDiscoverer(api RecordSource, registry ValidatorLister) *Discoverer {
	return &Discoverer{
		api:      api,
		registry: registry,
	}
}

// FilterExiting returns the addresses of exiting records, in source order
func FilterExiting(records []ValidatorRecord) []string {
	addresses := make([]string, 0, len(records))

	for _, record := range records {
		if record.Status.IsExiting() {
			addresses = append(addresses, record.Address)
		}
	}

	return addresses
}

// FilterExitingStatuses pairs validators with statuses and returns the
// exiting ones. Surplus entries in the longer slice are ignored.
func FilterExitingStatuses(validators []common.Address, statuses []*big.Int) []string {
	n := len(validators)
	if len(statuses) < n {
		n = len(statuses)
	}

	addresses := make([]string, 0, n)

	for i := 0; i < n; i++ {
		if statuses[i] != nil && statuses[i].Cmp(exitingStatusCodeBig) == 0 {
			addresses = append(addresses, validators[i].Hex())
		}
	}

	return addresses
}

// Discover returns the exiting validators. The API is queried first; the
// registry is only consulted when the API yields no exiting validators,
// whether because it failed or because it genuinely reported none.
func (d *Discoverer) Discover(ctx context.Context) *DiscoveryResult {
	result := &DiscoveryResult{Source: SourceNone}

	records, err := d.api.FetchValidators(ctx)
	if err != nil {
		log.WithError(err).Warn("Validator API request failed, falling back to registry contract")

		result.APIErr = err
	} else {
		addresses := FilterExiting(records)

		log.WithField("records", len(records)).WithField("exiting", len(addresses)).Debug("Filtered API validators")

		if len(addresses) > 0 {
			result.Addresses = addresses
			result.Source = SourceAPI

			return result
		}

		log.Info("Validator API returned no exiting validators, falling back to registry contract")
	}

	validators, statuses, err := d.registry.GetValidators(ctx)
	if err != nil {
		log.WithError(err).Error("Error fetching validators from registry contract")

		result.ContractErr = err

		return result
	}

	if len(validators) != len(statuses) {
		log.WithField("validators", len(validators)).WithField("statuses", len(statuses)).Warn("Registry returned mismatched validator and status counts")
	}

	result.Addresses = FilterExitingStatuses(validators, statuses)
	if len(result.Addresses) > 0 {
		result.Source = SourceContract
	}

	return result
}
