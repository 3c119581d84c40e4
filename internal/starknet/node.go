package starknet

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	gethrpc "github.com/ethereum/go-ethereum/rpc"
)

// BlockPending is the block tag used for nonce reads and fee estimation.
const BlockPending = "pending"

// CodeTxnHashNotFound is the JSON-RPC error code for a hash the node has not seen yet.
const CodeTxnHashNotFound = 29

// Node is a thin Starknet JSON-RPC client.
type Node struct {
	rpc *gethrpc.Client
}

// Dial connects to a Starknet JSON-RPC endpoint (http, https, ws or wss).
func Dial(ctx context.Context, url string) (*Node, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, errors.New("starknet rpc url not set")
	}
	client, err := gethrpc.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("dial starknet node: %w", err)
	}
	return NewNode(client), nil
}

func NewNode(client *gethrpc.Client) *Node {
	return &Node{rpc: client}
}

func (n *Node) Close() {
	if n == nil || n.rpc == nil {
		return
	}
	n.rpc.Close()
}

func (n *Node) ChainID(ctx context.Context) (string, error) {
	var id string
	if err := n.rpc.CallContext(ctx, &id, "starknet_chainId"); err != nil {
		return "", fmt.Errorf("starknet_chainId: %w", err)
	}
	return id, nil
}

func (n *Node) Nonce(ctx context.Context, address string) (*big.Int, error) {
	var raw string
	if err := n.rpc.CallContext(ctx, &raw, "starknet_getNonce", BlockPending, address); err != nil {
		return nil, fmt.Errorf("starknet_getNonce: %w", err)
	}
	nonce, err := ParseFelt(raw)
	if err != nil {
		return nil, fmt.Errorf("starknet_getNonce: %w", err)
	}
	return nonce, nil
}

// EstimateFee estimates a single invoke with validation skipped, so an unsigned query transaction is enough.
func (n *Node) EstimateFee(ctx context.Context, tx InvokeTxnV3) (FeeEstimate, error) {
	var out []FeeEstimate
	err := n.rpc.CallContext(ctx, &out, "starknet_estimateFee", []InvokeTxnV3{tx}, []string{"SKIP_VALIDATE"}, BlockPending)
	if err != nil {
		return FeeEstimate{}, fmt.Errorf("starknet_estimateFee: %w", err)
	}
	if len(out) != 1 {
		return FeeEstimate{}, fmt.Errorf("starknet_estimateFee: expected 1 estimate, got %d", len(out))
	}
	return out[0], nil
}

func (n *Node) AddInvokeTransaction(ctx context.Context, tx InvokeTxnV3) (string, error) {
	var out addInvokeResult
	if err := n.rpc.CallContext(ctx, &out, "starknet_addInvokeTransaction", tx); err != nil {
		return "", fmt.Errorf("starknet_addInvokeTransaction: %w", err)
	}
	if out.TransactionHash == "" {
		return "", errors.New("starknet_addInvokeTransaction: empty transaction hash")
	}
	return out.TransactionHash, nil
}

func (n *Node) TransactionStatus(ctx context.Context, hash string) (TxStatus, error) {
	var out TxStatus
	if err := n.rpc.CallContext(ctx, &out, "starknet_getTransactionStatus", hash); err != nil {
		return TxStatus{}, fmt.Errorf("starknet_getTransactionStatus: %w", err)
	}
	return out, nil
}

// IsTxnHashNotFound reports whether err is the node saying it has not seen the hash yet.
func IsTxnHashNotFound(err error) bool {
	var rpcErr gethrpc.Error
	return errors.As(err, &rpcErr) && rpcErr.ErrorCode() == CodeTxnHashNotFound
}
