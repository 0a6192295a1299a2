package dex

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
)

// dfTxMarker prefixes every DeFi transaction payload.
var dfTxMarker = []byte("DfTx")

const (
	// TypePoolSwap is the payload type byte of a single pool swap.
	TypePoolSwap byte = 's'
	// TypeCompositeSwap is the payload type byte of a multi-hop swap.
	TypeCompositeSwap byte = 'i'

	maxScriptLen = 10_000
	maxPools     = 1_000
)

var errMalformedPayload = errors.New("malformed dftx payload")

// Message is a decoded DeFi transaction payload.
type Message interface {
	// Type returns the payload type byte.
	Type() byte
}

// PoolSwap exchanges FromAmount of FromToken held by FromScript for ToToken paid to ToScript.
type PoolSwap struct {
	FromScript   []byte
	FromToken    uint64
	FromAmount   int64
	ToScript     []byte
	ToToken      uint64
	MaxPrice     int64
	MaxPriceFrac int64
}

// PoolSwapMessage is a single-hop swap.
type PoolSwapMessage struct {
	PoolSwap
}

func (PoolSwapMessage) Type() byte { return TypePoolSwap }

// CompositeSwapMessage routes a swap through Pools.
type CompositeSwapMessage struct {
	PoolSwap
	Pools []uint64
}

func (CompositeSwapMessage) Type() byte { return TypeCompositeSwap }

// OtherMessage is any payload the indexer does not interpret.
type OtherMessage struct {
	TypeByte byte
	Data     []byte
}

func (m OtherMessage) Type() byte { return m.TypeByte }

// SwapOf returns the pool swap carried by a message. Composite swaps yield their first leg.
func SwapOf(m Message) (PoolSwap, bool) {
	switch msg := m.(type) {
	case PoolSwapMessage:
		return msg.PoolSwap, true
	case CompositeSwapMessage:
		return msg.PoolSwap, true
	case OtherMessage:
		return PoolSwap{}, false
	default:
		return PoolSwap{}, false
	}
}

// DecodeScript parses an output script. It returns ok=false unless the script is exactly
// OP_RETURN followed by a single data push carrying a DfTx payload.
func DecodeScript(script []byte) (Message, bool) {
	tokenizer := txscript.MakeScriptTokenizer(0, script)

	var ops []byte
	var data []byte
	for tokenizer.Next() {
		if len(ops) == 2 {
			return nil, false
		}
		ops = append(ops, tokenizer.Opcode())
		data = tokenizer.Data()
	}
	if tokenizer.Err() != nil || len(ops) != 2 || ops[0] != txscript.OP_RETURN {
		return nil, false
	}
	if ops[1] == txscript.OP_0 || ops[1] > txscript.OP_PUSHDATA4 {
		return nil, false
	}

	msg, err := DecodePayload(data)
	if err != nil {
		return nil, false
	}
	return msg, true
}

// DecodePayload decodes a DfTx payload: the marker, a type byte and the type's body.
func DecodePayload(data []byte) (Message, error) {
	if len(data) < len(dfTxMarker)+1 || !bytes.Equal(data[:len(dfTxMarker)], dfTxMarker) {
		return nil, fmt.Errorf("%w: missing marker", errMalformedPayload)
	}

	typ := data[len(dfTxMarker)]
	body := data[len(dfTxMarker)+1:]
	r := bytes.NewReader(body)

	switch typ {
	case TypePoolSwap:
		swap, err := readPoolSwap(r)
		if err != nil {
			return nil, err
		}
		return PoolSwapMessage{PoolSwap: swap}, nil

	case TypeCompositeSwap:
		swap, err := readPoolSwap(r)
		if err != nil {
			return nil, err
		}
		count, err := wire.ReadVarInt(r, 0)
		if err != nil {
			return nil, fmt.Errorf("%w: pool count: %w", errMalformedPayload, err)
		}
		if count > maxPools {
			return nil, fmt.Errorf("%w: %d pools", errMalformedPayload, count)
		}
		pools := make([]uint64, 0, count)
		for range count {
			id, err := readVarUint(r)
			if err != nil {
				return nil, fmt.Errorf("%w: pool id: %w", errMalformedPayload, err)
			}
			pools = append(pools, id)
		}
		return CompositeSwapMessage{PoolSwap: swap, Pools: pools}, nil

	default:
		return OtherMessage{TypeByte: typ, Data: body}, nil
	}
}

func readPoolSwap(r io.Reader) (PoolSwap, error) {
	var (
		s   PoolSwap
		err error
	)

	if s.FromScript, err = wire.ReadVarBytes(r, 0, maxScriptLen, "fromScript"); err != nil {
		return s, fmt.Errorf("%w: from script: %w", errMalformedPayload, err)
	}
	if s.FromToken, err = readVarUint(r); err != nil {
		return s, fmt.Errorf("%w: from token: %w", errMalformedPayload, err)
	}
	if err = binary.Read(r, binary.LittleEndian, &s.FromAmount); err != nil {
		return s, fmt.Errorf("%w: from amount: %w", errMalformedPayload, err)
	}
	if s.ToScript, err = wire.ReadVarBytes(r, 0, maxScriptLen, "toScript"); err != nil {
		return s, fmt.Errorf("%w: to script: %w", errMalformedPayload, err)
	}
	if s.ToToken, err = readVarUint(r); err != nil {
		return s, fmt.Errorf("%w: to token: %w", errMalformedPayload, err)
	}
	if err = binary.Read(r, binary.LittleEndian, &s.MaxPrice); err != nil {
		return s, fmt.Errorf("%w: max price: %w", errMalformedPayload, err)
	}
	if err = binary.Read(r, binary.LittleEndian, &s.MaxPriceFrac); err != nil {
		return s, fmt.Errorf("%w: max price fraction: %w", errMalformedPayload, err)
	}

	return s, nil
}

// readVarUint reads the node's MSB base-128 integer encoding, where every continuation
// byte also adds one so each value has a single representation.
func readVarUint(r io.Reader) (uint64, error) {
	var (
		n   uint64
		buf [1]byte
	)
	for range 10 {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return 0, err
		}
		b := buf[0]
		if n > (1<<64-1)>>7 {
			return 0, errors.New("varint overflow")
		}
		n = n<<7 | uint64(b&0x7f)
		if b&0x80 == 0 {
			return n, nil
		}
		n++
	}
	return 0, errors.New("varint too long")
}

func writeVarUint(w *bytes.Buffer, n uint64) {
	var tmp [10]byte
	i := 0
	for {
		b := byte(n & 0x7f)
		if i > 0 {
			b |= 0x80
		}
		tmp[i] = b
		if n <= 0x7f {
			break
		}
		n = n>>7 - 1
		i++
	}
	for ; i >= 0; i-- {
		w.WriteByte(tmp[i])
	}
}

// Payload serializes the message body behind the DfTx marker.
func (m PoolSwapMessage) Payload() []byte {
	var buf bytes.Buffer
	buf.Write(dfTxMarker)
	buf.WriteByte(TypePoolSwap)
	m.PoolSwap.write(&buf)
	return buf.Bytes()
}

// Payload serializes the message body behind the DfTx marker.
func (m CompositeSwapMessage) Payload() []byte {
	var buf bytes.Buffer
	buf.Write(dfTxMarker)
	buf.WriteByte(TypeCompositeSwap)
	m.PoolSwap.write(&buf)
	_ = wire.WriteVarInt(&buf, 0, uint64(len(m.Pools)))
	for _, id := range m.Pools {
		writeVarUint(&buf, id)
	}
	return buf.Bytes()
}

func (s PoolSwap) write(buf *bytes.Buffer) {
	_ = wire.WriteVarBytes(buf, 0, s.FromScript)
	writeVarUint(buf, s.FromToken)
	_ = binary.Write(buf, binary.LittleEndian, s.FromAmount)
	_ = wire.WriteVarBytes(buf, 0, s.ToScript)
	writeVarUint(buf, s.ToToken)
	_ = binary.Write(buf, binary.LittleEndian, s.MaxPrice)
	_ = binary.Write(buf, binary.LittleEndian, s.MaxPriceFrac)
}

// OutputScript wraps a payload into an OP_RETURN output script.
func OutputScript(payload []byte) ([]byte, error) {
	return txscript.NewScriptBuilder().
		AddOp(txscript.OP_RETURN).
		AddFullData(payload).
		Script()
}
