package walletservice

import (
	"encoding/json"
	"fmt"
)

func (s *service) CreateWallet(name string) (string, error) {
	url := fmt.Sprintf("%s/wallet", s.apiURL)
	payload := map[string]interface{}{"name": name}
	body, _ := json.Marshal(payload)

	status, resp, err := s.doRequest("POST", url, string(body), jsonHeaders)
	if err != nil {
		return "", err
	}
	if !isOK(status) {
		return "", fmt.Errorf("create wallet: %s", resp)
	}

	var rr map[string]string
	if err := json.Unmarshal([]byte(resp), &rr); err != nil {
		return "", err
	}

	return rr["name"], nil
}

func (s *service) CreateAddress(walletName, label string) (string, error) {
	url := fmt.Sprintf("%s/address", s.apiURL)
	payload := map[string]interface{}{
		"wallet_name": walletName,
		"name":        label,
	}
	body, _ := json.Marshal(payload)

	status, resp, err := s.doRequest("POST", url, string(body), jsonHeaders)
	if err != nil {
		return "", err
	}
	if !isOK(status) {
		return "", fmt.Errorf("create address: %s", resp)
	}

	var address string
	if err := json.Unmarshal([]byte(resp), &address); err != nil {
		return "", err
	}

	return address, nil
}

func (s *service) GetBalance(walletName string) (uint64, error) {
	url := fmt.Sprintf("%s/wallet/%s/balance", s.apiURL, walletName)

	status, resp, err := s.doRequest("GET", url, "", nil)
	if err != nil {
		return 0, err
	}
	if !isOK(status) {
		return 0, fmt.Errorf("get balance: %s", resp)
	}

	var balance uint64
	if err := json.Unmarshal([]byte(resp), &balance); err != nil {
		return 0, err
	}

	return balance, nil
}

func (s *service) Mine(walletName, address string, blocks int) error {
	url := fmt.Sprintf("%s/mine", s.apiURL)
	payload := map[string]interface{}{
		"wallet_name": walletName,
		"address":     address,
		"blocks":      blocks,
	}
	body, _ := json.Marshal(payload)

	status, resp, err := s.doRequest("POST", url, string(body), jsonHeaders)
	if err != nil {
		return err
	}
	if !isOK(status) {
		return fmt.Errorf("mine: %s", resp)
	}

	return nil
}
