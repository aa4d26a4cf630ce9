// Package base58check decodes Base58 numerals into fixed length byte
// strings and verifies the Base58Check checksum carried in their last
// four bytes.
package base58check

import (
	"bytes"
	"errors"
	"math/big"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// Alphabet is the Bitcoin Base58 alphabet. It leaves out 0, O, I and l.
const Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// ChecksumLen is the number of trailing checksum bytes.
const ChecksumLen = 4

var (
	ErrInvalidCharacter = errors.New("base58check: invalid character")
	ErrOverflow         = errors.New("base58check: value does not fit in length")
)

var (
	alphabet = []byte(Alphabet)
	bigRadix = big.NewInt(58)
	bigZero  = big.NewInt(0)
)

// digits maps a byte to its Base58 value, or -1.
var digits = func() [256]int8 {
	var d [256]int8
	for i := range d {
		d[i] = -1
	}
	for i, c := range alphabet {
		d[c] = int8(i)
	}
	return d
}()

// IsDigit reports whether c belongs to the Base58 alphabet.
func IsDigit(c byte) bool {
	return digits[c] >= 0
}

// Decode reads text as a big-endian Base58 numeral and returns its value
// as exactly length bytes, zero padded on the left.
func Decode(text string, length int) ([]byte, error) {
	n := new(big.Int)
	digit := new(big.Int)
	for i := 0; i < len(text); i++ {
		d := digits[text[i]]
		if d < 0 {
			return nil, ErrInvalidCharacter
		}
		n.Mul(n, bigRadix)
		n.Add(n, digit.SetInt64(int64(d)))
	}
	if (n.BitLen()+7)/8 > length {
		return nil, ErrOverflow
	}
	return n.FillBytes(make([]byte, length)), nil
}

// Verify reports whether the last four bytes of decoded are the first
// four bytes of the double SHA-256 of the bytes before them.
func Verify(decoded []byte) bool {
	if len(decoded) <= ChecksumLen {
		return false
	}
	payload := decoded[:len(decoded)-ChecksumLen]
	sum := chainhash.DoubleHashB(payload)
	return bytes.Equal(sum[:ChecksumLen], decoded[len(decoded)-ChecksumLen:])
}

// Check reports whether text is a valid Base58Check token of length
// decoded bytes. Decode failures count as invalid.
func Check(text string, length int) bool {
	return Classify(text, length) == Valid
}

// Checksum returns the four checksum bytes for payload.
func Checksum(payload []byte) []byte {
	return chainhash.DoubleHashB(payload)[:ChecksumLen]
}

// Encode writes b as a Base58 numeral. Each leading zero byte becomes a
// leading '1'.
func Encode(b []byte) string {
	x := new(big.Int).SetBytes(b)
	mod := new(big.Int)

	var result []byte
	for x.Cmp(bigZero) != 0 {
		x.DivMod(x, bigRadix, mod)
		result = append(result, alphabet[mod.Int64()])
	}
	for _, c := range b {
		if c != 0x00 {
			break
		}
		result = append(result, alphabet[0])
	}
	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}
	return string(result)
}

// CheckEncode appends the checksum of payload and encodes the result.
func CheckEncode(payload []byte) string {
	full := make([]byte, 0, len(payload)+ChecksumLen)
	full = append(full, payload...)
	full = append(full, Checksum(payload)...)
	return Encode(full)
}
