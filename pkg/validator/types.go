package validator

import (
	"github.com/ethereum/go-ethereum/common"
)

// ValidatorRecord is a single entry returned by the validator API
type ValidatorRecord struct {
	Address string `json:"address"`
	Status  Status `json:"status"`
}

// DiscoverySource identifies where a discovery result came from
type DiscoverySource string

const (
	SourceAPI      DiscoverySource = "api"
	SourceContract DiscoverySource = "contract"
	SourceNone     DiscoverySource = "none"
)

// DiscoveryResult holds the exiting validators found and the errors hit on
// the way. Errors never abort discovery; an empty Addresses slice is a valid
// outcome.
type DiscoveryResult struct {
	Addresses   []string
	Source      DiscoverySource
	APIErr      error
	ContractErr error
}

// Stage is the finalization step a TransactionResult stopped at
type Stage string

const (
	StageBuild   Stage = "build"
	StageNonce   Stage = "nonce"
	StageFees    Stage = "fees"
	StageSign    Stage = "sign"
	StageSend    Stage = "send"
	StageReceipt Stage = "receipt"
	StageDone    Stage = "done"
)

// TransactionResult is the outcome of finalizing one validator's exit
type TransactionResult struct {
	ValidatorAddress string
	TransactionHash  common.Hash
	Confirmed        bool
	Succeeded        bool
	Stage            Stage
	Err              error
}
