package operation

import (
	"github/chapool/go-xwc/internal/wallet/keys"
	"github/chapool/go-xwc/internal/wallet/serializer"
)

// Memo is attached to transfers. Plaintext memos carry zero keys and a zero nonce.
type Memo struct {
	From    keys.PublicKey
	To      keys.PublicKey
	Nonce   uint64
	Message []byte
}

// MemoEncrypter turns a plaintext memo into an encrypted one before the
// operation is built. The scheme is up to the implementation.
type MemoEncrypter interface {
	EncryptMemo(plaintext []byte) (*Memo, error)
}

// PlainMemo wraps text as an unencrypted memo. Empty text yields nil.
func PlainMemo(text string) *Memo {
	if text == "" {
		return nil
	}
	return &Memo{Message: []byte(text)}
}

// IsPlain reports whether the memo is unencrypted.
func (m *Memo) IsPlain() bool {
	return m.From.IsZero() && m.To.IsZero() && m.Nonce == 0
}

func writeMemo(w *serializer.Writer, m *Memo) {
	w.WriteRaw(m.From[:])
	w.WriteRaw(m.To[:])
	w.WriteUint64(m.Nonce)
	w.WriteBytes(m.Message)
}
