package walletservice

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

func (s *service) SendTransaction(
	fromWallet, toAddress string, amount uint64, message string,
) (string, error) {
	url := fmt.Sprintf("%s/send", s.apiURL)
	payload := map[string]interface{}{
		"from_wallet": fromWallet,
		"to_address":  toAddress,
		"amount":      amount,
		"message":     message,
	}
	body, _ := json.Marshal(payload)

	status, resp, err := s.doRequest("POST", url, string(body), jsonHeaders)
	if err != nil {
		return "", &SubmissionError{Err: err}
	}
	if !isOK(status) {
		return "", &SubmissionError{Err: fmt.Errorf(resp)}
	}

	// the service answers with the txid as a quoted string
	txid := strings.Trim(strings.TrimSpace(resp), `"`)
	if len(txid) <= 0 {
		return "", &SubmissionError{Err: fmt.Errorf("empty txid in response")}
	}

	return txid, nil
}

func (s *service) GetMempoolEntry(
	walletName, txid string,
) (*MempoolEntry, error) {
	url := fmt.Sprintf("%s/mempool/%s/%s", s.apiURL, walletName, txid)

	status, resp, err := s.doRequest("GET", url, "", nil)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, ErrTxNotInMempool
	}
	if !isOK(status) {
		return nil, fmt.Errorf("get mempool entry: %s", resp)
	}

	entry := &MempoolEntry{}
	if err := json.Unmarshal([]byte(resp), entry); err != nil {
		return nil, err
	}

	return entry, nil
}

func (s *service) GetConfirmedTransaction(
	walletName, txid string,
) (*ConfirmedTx, error) {
	url := fmt.Sprintf("%s/tx/%s/%s", s.apiURL, walletName, txid)

	status, resp, err := s.doRequest("GET", url, "", nil)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, ErrTxNotFound
	}
	if !isOK(status) {
		return nil, fmt.Errorf("get confirmed transaction: %s", resp)
	}

	tx := &ConfirmedTx{}
	if err := json.Unmarshal([]byte(resp), tx); err != nil {
		return nil, err
	}
	if len(tx.Txid) <= 0 {
		tx.Txid = txid
	}

	return tx, nil
}
