package httpinterface

import (
	"github.com/bitcoin-tales/talesd/internal/core/application"
	"github.com/bitcoin-tales/talesd/internal/core/domain"
)

type balancesResponse struct {
	MinerBalance    uint64 `json:"miner_balance"`
	MerchantBalance uint64 `json:"merchant_balance"`
}

type menuItemResponse struct {
	Id          string `json:"id"`
	Name        string `json:"name"`
	Price       uint64 `json:"price"`
	Description string `json:"description"`
}

type purchaseRequest struct {
	ItemId string `json:"item_id"`
}

type mineRequest struct {
	Blocks int `json:"blocks"`
}

type confirmationResponse struct {
	BlockHeight   uint64 `json:"block_height"`
	BlockHash     string `json:"block_hash"`
	Confirmations uint64 `json:"confirmations"`
	BlockTime     int64  `json:"block_time"`
	Source        string `json:"source"`
}

type transactionResponse struct {
	Txid         string                `json:"txid"`
	FromWallet   string                `json:"from_wallet"`
	ToAddress    string                `json:"to_address"`
	Amount       uint64                `json:"amount"`
	Message      string                `json:"message"`
	Status       string                `json:"status"`
	Confirmation *confirmationResponse `json:"confirmation,omitempty"`
	SubmittedAt  int64                 `json:"submitted_at"`
	ConfirmedAt  int64                 `json:"confirmed_at,omitempty"`
}

type snapshotResponse struct {
	State       string              `json:"state"`
	Warning     string              `json:"warning,omitempty"`
	Transaction transactionResponse `json:"transaction"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toTransactionResponse(tx domain.Transaction) transactionResponse {
	status := "pending"
	if tx.IsConfirmed() {
		status = "confirmed"
	}

	res := transactionResponse{
		Txid:        tx.Txid,
		FromWallet:  tx.FromWallet,
		ToAddress:   tx.ToAddress,
		Amount:      tx.Amount,
		Message:     tx.Message,
		Status:      status,
		SubmittedAt: tx.SubmittedAt,
		ConfirmedAt: tx.ConfirmedAt,
	}
	if tx.Confirmation != nil {
		res.Confirmation = &confirmationResponse{
			BlockHeight:   tx.Confirmation.BlockHeight,
			BlockHash:     tx.Confirmation.BlockHash,
			Confirmations: tx.Confirmation.Confirmations,
			BlockTime:     tx.Confirmation.BlockTime,
			Source:        tx.Confirmation.Source,
		}
	}
	return res
}

func toSnapshotResponse(
	state application.TrackerState, tx domain.Transaction, warning string,
) snapshotResponse {
	return snapshotResponse{
		State:       state.String(),
		Warning:     warning,
		Transaction: toTransactionResponse(tx),
	}
}
