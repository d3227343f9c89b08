package tx

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github/chapool/go-xwc/internal/node"
	"github/chapool/go-xwc/internal/util"
	"github/chapool/go-xwc/internal/util/command"
	"github/chapool/go-xwc/internal/util/jsonx"
	"github/chapool/go-xwc/internal/wallet/builder"
	"github/chapool/go-xwc/internal/wallet/signer"
	"github/chapool/go-xwc/internal/wallet/transaction"
)

// New returns the tx command group.
func New() *cobra.Command {
	return command.NewSubcommandGroup("tx",
		newTransfer(),
		newInvoke(),
		newContractTransfer(),
	)
}

// Output is printed by every tx subcommand.
type Output struct {
	TxID        string           `json:"tx_id"`
	Hex         string           `json:"hex"`
	Transaction jsonx.RawMessage `json:"transaction"`
	Signers     []string         `json:"signers"`
	Receipt     *node.Receipt    `json:"receipt,omitempty"`
}

type buildFunc func(ctx context.Context, svc builder.Service, ref transaction.ReferenceInfo) (*transaction.Transaction, error)

// commonFlags are shared by every tx subcommand.
type commonFlags struct {
	refInfo    string
	expiration string
	signers    int
	broadcast  bool
}

func (f *commonFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.refInfo, "ref-info", "", `Reference block as "<ref_block_num>,<ref_block_prefix>"; skips the node lookup`)
	cmd.Flags().StringVar(&f.expiration, "expiration-time", "", "Absolute UTC expiration (2006-01-02T15:04:05); defaults to now plus the expiration window")
	cmd.Flags().IntVar(&f.signers, "signers", 1, "Number of WIF keys to read from stdin, one per line, in signing order")
	cmd.Flags().BoolVar(&f.broadcast, "broadcast", false, "Broadcast the signed transaction and wait for inclusion")
}

func (f *commonFlags) run(cmd *cobra.Command, build buildFunc) error {
	ctx := cmd.Context()
	cfg := command.ConfigFromContext(ctx)
	log := util.LogFromContext(ctx)

	reg := prometheus.NewRegistry()
	defer command.LogMetrics(ctx, reg)

	var client node.Client
	if f.refInfo == "" || f.broadcast {
		network, err := cfg.ResolveNetwork()
		if err != nil {
			return err
		}
		ws, err := command.DialNode(ctx, cfg, network, reg)
		if err != nil {
			return err
		}
		defer ws.Close()
		client = ws
	}

	network, err := command.ResolveNetwork(ctx, cfg, client)
	if err != nil {
		return err
	}

	svc, err := builder.NewService(network)
	if err != nil {
		return err
	}

	ref, err := f.reference(ctx, client, cfg.Node.ExpirationWindow)
	if err != nil {
		return err
	}

	tx, err := build(ctx, svc, ref)
	if err != nil {
		return err
	}

	res, err := f.sign(cmd, svc, tx)
	if err != nil {
		return err
	}

	chainID, err := network.ChainIDBytes()
	if err != nil {
		return err
	}
	signers, err := recoverSigners(res.Transaction, chainID, network.AddressPrefix)
	if err != nil {
		return err
	}

	out := Output{
		TxID:        res.TxID,
		Hex:         res.Hex,
		Transaction: res.JSON,
		Signers:     signers,
	}

	if f.broadcast {
		receipt, err := client.Broadcast(ctx, res.Transaction)
		if err != nil {
			return err
		}
		out.Receipt = receipt
	}

	log.Info().Str("tx_id", out.TxID).Bool("broadcast", f.broadcast).Msg("Transaction ready")

	return command.PrintJSON(cmd.OutOrStdout(), out)
}

func (f *commonFlags) sign(cmd *cobra.Command, svc builder.Service, tx *transaction.Transaction) (*builder.SignResult, error) {
	wifs, err := command.ReadSecrets(cmd.InOrStdin(), cmd.ErrOrStderr(), command.NumberedLabels("WIF", f.signers)...)
	if err != nil {
		return nil, err
	}

	return svc.SignTransaction(cmd.Context(), tx, wifs...)
}

func (f *commonFlags) reference(ctx context.Context, client node.Client, window time.Duration) (transaction.ReferenceInfo, error) {
	var (
		ref transaction.ReferenceInfo
		err error
	)

	if f.refInfo != "" {
		ref, err = transaction.ParseReferenceInfo(f.refInfo, time.Now().UTC().Add(window).Truncate(time.Second))
	} else {
		ref, err = client.GetReferenceInfo(ctx)
	}
	if err != nil {
		return transaction.ReferenceInfo{}, err
	}

	if f.expiration != "" {
		ref.Expiration, err = transaction.ParseExpiration(f.expiration)
		if err != nil {
			return transaction.ReferenceInfo{}, errors.Wrap(err, "expiration-time")
		}
	}

	return ref, nil
}

// recoverSigners lists the public keys recovered from tx's signatures.
func recoverSigners(tx *transaction.Transaction, chainID []byte, prefix string) ([]string, error) {
	unsigned, err := tx.UnsignedBytes()
	if err != nil {
		return nil, err
	}
	digest := signer.Digest(chainID, unsigned)

	out := make([]string, 0, len(tx.Signatures))
	for i, sig := range tx.Signatures {
		pub, err := signer.Recover(digest, sig)
		if err != nil {
			return nil, errors.Wrapf(err, "signature %d", i)
		}
		out = append(out, pub.String(prefix))
	}

	return out, nil
}
