package starknet

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/NethermindEth/starknet.go/account"
)

var ErrInvalidPrivateKey = errors.New("private key is not a valid stark key")

// KeystoreSigner signs invokes in-process with a key held in a starknet.go memory keystore.
type KeystoreSigner struct {
	ks *account.MemKeystore
	id string
}

// NewKeystoreSigner loads privateKey (hex) under address. The key never leaves the keystore.
func NewKeystoreSigner(address, privateKey string) (*KeystoreSigner, error) {
	digits := strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(privateKey), "0x"), "0X")
	key, ok := new(big.Int).SetString(digits, 16)
	if digits == "" || !ok || digits[0] == '+' || digits[0] == '-' || key.Sign() == 0 || key.Cmp(FieldPrime) >= 0 {
		return nil, ErrInvalidPrivateKey
	}
	ks := account.NewMemKeystore()
	ks.Put(address, key)
	return &KeystoreSigner{ks: ks, id: address}, nil
}

// SignInvoke signs the v3 invoke hash and returns the (r, s) pair.
func (s *KeystoreSigner) SignInvoke(ctx context.Context, chainID string, tx InvokeTxnV3) ([]*big.Int, error) {
	hash, err := InvokeHashV3(chainID, tx)
	if err != nil {
		return nil, fmt.Errorf("invoke hash: %w", err)
	}
	r, sig, err := s.ks.Sign(ctx, s.id, hash)
	if err != nil {
		return nil, err
	}
	return []*big.Int{r, sig}, nil
}
