package node_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/go-xwc/internal/node"
	"github/chapool/go-xwc/internal/util/jsonx"
	"github/chapool/go-xwc/internal/wallet/address"
	"github/chapool/go-xwc/internal/wallet/amount"
	"github/chapool/go-xwc/internal/wallet/keys"
	"github/chapool/go-xwc/internal/wallet/operation"
	"github/chapool/go-xwc/internal/wallet/transaction"
)

const prefix = "XWC"

type call struct {
	ID     uint64
	API    uint64
	Method string
	Args   []any
}

// fakeNode answers the node's JSON-RPC over a websocket.
type fakeNode struct {
	mu      sync.Mutex
	calls   []call
	refInfo string
	reject  string
}

func (n *fakeNode) handler(t *testing.T) http.HandlerFunc {
	upgrader := websocket.Upgrader{}

	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer conn.Close()

		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}

			var req struct {
				ID     uint64 `json:"id"`
				Method string `json:"method"`
				Params []any  `json:"params"`
			}
			if err := jsonx.Unmarshal(msg, &req); err != nil {
				t.Errorf("decode request: %v", err)
				return
			}

			c := call{ID: req.ID, API: uint64(req.Params[0].(float64)), Method: req.Params[1].(string)}
			c.Args, _ = req.Params[2].([]any)

			n.mu.Lock()
			n.calls = append(n.calls, c)
			refInfo, reject := n.refInfo, n.reject
			n.mu.Unlock()

			// an unsolicited notice must be skipped by the client
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"method":"notice","params":[1,[]]}`))

			resp := map[string]any{"id": req.ID, "jsonrpc": "2.0"}
			switch c.Method {
			case "login":
				resp["result"] = true
			case "network_broadcast":
				resp["result"] = 3
			case "lightwallet_get_refblock_info":
				resp["result"] = refInfo
			case "get_chain_id":
				resp["result"] = "ABCDEF"
			case "broadcast_transaction_synchronous":
				if reject != "" {
					resp["error"] = map[string]any{"code": 1, "message": reject}
				} else {
					resp["result"] = map[string]any{"id": "f00d", "block_num": 12, "trx_num": 0}
				}
			default:
				resp["error"] = map[string]any{"code": 2, "message": "unknown method"}
			}

			out, _ := jsonx.Marshal(resp)
			if err := conn.WriteMessage(websocket.TextMessage, out); err != nil {
				return
			}
		}
	}
}

func (n *fakeNode) set(refInfo, reject string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.refInfo, n.reject = refInfo, reject
}

func (n *fakeNode) recorded() []call {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]call(nil), n.calls...)
}

func dial(t *testing.T, n *fakeNode, metrics *node.Metrics) *node.WSClient {
	t.Helper()

	srv := httptest.NewServer(n.handler(t))
	t.Cleanup(srv.Close)

	now := time.Date(2024, 1, 2, 3, 4, 5, 500, time.UTC)
	c, err := node.Dial(context.Background(), node.Options{
		Endpoint:         "ws" + strings.TrimPrefix(srv.URL, "http"),
		Timeout:          5 * time.Second,
		ExpirationWindow: time.Minute,
		AddressPrefix:    prefix,
		Metrics:          metrics,
		Now:              func() time.Time { return now },
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	return c
}

func signedTransfer(t *testing.T, ref transaction.ReferenceInfo) *transaction.Transaction {
	t.Helper()

	k, err := keys.Generate()
	require.NoError(t, err)
	addr := address.FromPublicKey(k.PublicKey(), address.VersionNormal, prefix)
	xwc, err := amount.NewAsset("1.3.0", 5)
	require.NoError(t, err)
	fee, err := xwc.NewAmount("0.001")
	require.NoError(t, err)
	value, err := xwc.NewAmount("1")
	require.NoError(t, err)

	tx, err := transaction.New(ref, []operation.Operation{&operation.Transfer{Fee: fee, From: addr, To: addr, Amount: value}}, nil)
	require.NoError(t, err)
	tx.Signatures = append(tx.Signatures, transaction.Signature{0x20})

	return tx
}

func TestDialLogsIn(t *testing.T) {
	n := &fakeNode{refInfo: "4660,3735928559"}
	dial(t, n, nil)

	calls := n.recorded()
	require.Len(t, calls, 2)
	assert.Equal(t, uint64(1), calls[0].API)
	assert.Equal(t, "login", calls[0].Method)
	assert.Equal(t, []any{"", ""}, calls[0].Args)
	assert.Equal(t, "network_broadcast", calls[1].Method)
	assert.NotEqual(t, calls[0].ID, calls[1].ID)
}

func TestGetReferenceInfo(t *testing.T) {
	n := &fakeNode{refInfo: "4660,3735928559"}
	c := dial(t, n, nil)

	ref, err := c.GetReferenceInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint16(4660), ref.RefBlockNum)
	assert.Equal(t, uint32(3735928559), ref.RefBlockPrefix)
	assert.Equal(t, time.Date(2024, 1, 2, 3, 5, 5, 0, time.UTC), ref.Expiration)

	calls := n.recorded()
	assert.Equal(t, uint64(0), calls[len(calls)-1].API)

	n.set("garbage", "")
	_, err = c.GetReferenceInfo(context.Background())
	assert.ErrorIs(t, err, node.ErrNode)
}

func TestGetChainID(t *testing.T) {
	c := dial(t, &fakeNode{}, nil)

	id, err := c.GetChainID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abcdef", id)
}

func TestBroadcast(t *testing.T) {
	n := &fakeNode{refInfo: "1,2"}
	reg := prometheus.NewRegistry()
	metrics := node.NewMetrics(reg)
	c := dial(t, n, metrics)

	ref, err := c.GetReferenceInfo(context.Background())
	require.NoError(t, err)
	tx := signedTransfer(t, ref)

	receipt, err := c.Broadcast(context.Background(), tx)
	require.NoError(t, err)
	assert.Equal(t, "f00d", receipt.TxID)
	assert.Equal(t, uint64(12), receipt.BlockNum)

	calls := n.recorded()
	last := calls[len(calls)-1]
	assert.Equal(t, uint64(3), last.API)
	assert.Equal(t, "broadcast_transaction_synchronous", last.Method)
	require.Len(t, last.Args, 1)
	body, ok := last.Args[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1), body["ref_block_num"])
	assert.Len(t, body["signatures"], 1)

	n.set("1,2", "missing required active authority")
	_, err = c.Broadcast(context.Background(), tx)
	assert.ErrorIs(t, err, node.ErrNode)
	assert.Contains(t, err.Error(), "missing required active authority")

	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.Requests.WithLabelValues("login", "ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.Requests.WithLabelValues("broadcast_transaction_synchronous", "ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.Requests.WithLabelValues("broadcast_transaction_synchronous", "error")))
	assert.GreaterOrEqual(t, testutil.CollectAndCount(reg, "node_rpc_duration_seconds"), 1)
}

func TestClosedClient(t *testing.T) {
	c := dial(t, &fakeNode{refInfo: "1,2"}, nil)
	require.NoError(t, c.Close())
	require.NoError(t, c.Close())

	_, err := c.GetReferenceInfo(context.Background())
	assert.ErrorIs(t, err, node.ErrNode)
}

func TestDialFails(t *testing.T) {
	_, err := node.Dial(context.Background(), node.Options{Endpoint: "ws://127.0.0.1:1", Timeout: time.Second})
	assert.ErrorIs(t, err, node.ErrNode)
}
