package node

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github/chapool/go-xwc/internal/util"
	"github/chapool/go-xwc/internal/util/jsonx"
	"github/chapool/go-xwc/internal/wallet/transaction"
)

// API ids fixed by the node: 0 is the database api, 1 the login api.
const (
	databaseAPI = 0
	loginAPI    = 1
)

const (
	methodLogin            = "login"
	methodNetworkBroadcast = "network_broadcast"
	methodRefBlockInfo     = "lightwallet_get_refblock_info"
	methodChainID          = "get_chain_id"
	methodBroadcastSync    = "broadcast_transaction_synchronous"
)

const defaultTimeout = 10 * time.Second

// Options configures a WSClient.
type Options struct {
	Endpoint string
	// Timeout bounds every call that has no earlier context deadline.
	Timeout time.Duration
	// ExpirationWindow is added to the current time by GetReferenceInfo.
	ExpirationWindow time.Duration
	// AddressPrefix renders public keys in broadcast transactions.
	AddressPrefix string
	// Metrics is optional.
	Metrics *Metrics
	// Now is used for expirations; defaults to time.Now.
	Now func() time.Time
}

type rpcRequest struct {
	ID     uint64 `json:"id"`
	Method string `json:"method"`
	Params []any  `json:"params"`
}

type rpcError struct {
	Code    int64            `json:"code"`
	Message string           `json:"message"`
	Data    jsonx.RawMessage `json:"data,omitempty"`
}

type rpcResponse struct {
	ID     *uint64          `json:"id"`
	Result jsonx.RawMessage `json:"result"`
	Error  *rpcError        `json:"error"`
}

// WSClient is a Client speaking the node's websocket JSON-RPC. Calls are
// serialized; a WSClient is safe for concurrent use.
type WSClient struct {
	mu           sync.Mutex
	conn         *websocket.Conn
	opts         Options
	nextID       uint64
	broadcastAPI uint64
}

var _ Client = (*WSClient)(nil)

// Dial connects to the node, logs in and resolves the broadcast api.
func Dial(ctx context.Context, opts Options) (*WSClient, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	log := util.LogFromContext(ctx).With().Str("endpoint", opts.Endpoint).Logger()

	dialCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	conn, _, err := websocket.DefaultDialer.DialContext(dialCtx, opts.Endpoint, nil)
	if err != nil {
		return nil, errors.Wrapf(ErrNode, "failed to connect to %s: %v", opts.Endpoint, err)
	}

	c := &WSClient{conn: conn, opts: opts}

	var loggedIn bool
	if err := c.call(ctx, loginAPI, methodLogin, []any{"", ""}, &loggedIn); err != nil {
		_ = c.Close()
		return nil, err
	}
	if !loggedIn {
		_ = c.Close()
		return nil, errors.Wrap(ErrNode, "login rejected")
	}

	if err := c.call(ctx, loginAPI, methodNetworkBroadcast, []any{}, &c.broadcastAPI); err != nil {
		_ = c.Close()
		return nil, err
	}

	log.Debug().Uint64("broadcast_api", c.broadcastAPI).Msg("Connected to node")

	return c, nil
}

func (c *WSClient) GetReferenceInfo(ctx context.Context) (transaction.ReferenceInfo, error) {
	var text string
	if err := c.call(ctx, databaseAPI, methodRefBlockInfo, []any{}, &text); err != nil {
		return transaction.ReferenceInfo{}, err
	}

	expiration := c.opts.Now().UTC().Add(c.opts.ExpirationWindow).Truncate(time.Second)

	ref, err := transaction.ParseReferenceInfo(text, expiration)
	if err != nil {
		return transaction.ReferenceInfo{}, errors.Wrap(ErrNode, err.Error())
	}

	return ref, nil
}

func (c *WSClient) GetChainID(ctx context.Context) (string, error) {
	var chainID string
	if err := c.call(ctx, databaseAPI, methodChainID, []any{}, &chainID); err != nil {
		return "", err
	}
	return strings.ToLower(chainID), nil
}

func (c *WSClient) Broadcast(ctx context.Context, tx *transaction.Transaction) (*Receipt, error) {
	body, err := tx.ToJSON(c.opts.AddressPrefix)
	if err != nil {
		return nil, err
	}

	var receipt Receipt
	if err := c.call(ctx, c.broadcastAPI, methodBroadcastSync, []any{body}, &receipt); err != nil {
		return nil, err
	}

	if receipt.TxID == "" {
		receipt.TxID, _ = tx.ID()
	}

	util.LogFromContext(ctx).Info().
		Str("tx_id", receipt.TxID).
		Uint64("block_num", receipt.BlockNum).
		Msg("Transaction broadcast")

	return &receipt, nil
}

// Close sends a close frame and closes the connection.
func (c *WSClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil
	}

	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	err := c.conn.Close()
	c.conn = nil

	return err
}

func (c *WSClient) call(ctx context.Context, api uint64, method string, args []any, result any) (err error) {
	started := time.Now()
	defer func() { c.opts.Metrics.observe(method, started, err) }()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return errors.Wrap(ErrNode, "connection is closed")
	}

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(c.opts.Timeout)
	}
	if err := c.conn.SetWriteDeadline(deadline); err != nil {
		return errors.Wrap(ErrNode, err.Error())
	}
	if err := c.conn.SetReadDeadline(deadline); err != nil {
		return errors.Wrap(ErrNode, err.Error())
	}

	c.nextID++
	id := c.nextID

	req := rpcRequest{ID: id, Method: "call", Params: []any{api, method, args}}
	payload, err := jsonx.Marshal(req)
	if err != nil {
		return errors.Wrapf(err, "failed to encode %s request", method)
	}
	if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		return errors.Wrapf(ErrNode, "%s: %v", method, err)
	}

	for {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(err, method)
		}

		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			return errors.Wrapf(ErrNode, "%s: %v", method, err)
		}

		var resp rpcResponse
		if err := jsonx.Unmarshal(msg, &resp); err != nil {
			return errors.Wrapf(ErrNode, "%s: malformed response: %v", method, err)
		}
		// notices carry no id
		if resp.ID == nil || *resp.ID != id {
			continue
		}

		if resp.Error != nil {
			return errors.Wrapf(ErrNode, "%s: %s (code %d)", method, resp.Error.Message, resp.Error.Code)
		}
		if result == nil {
			return nil
		}
		if err := jsonx.Unmarshal(resp.Result, result); err != nil {
			return errors.Wrapf(ErrNode, "%s: unexpected result %s", method, string(resp.Result))
		}

		return nil
	}
}
