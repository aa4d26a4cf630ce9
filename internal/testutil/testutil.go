// Package testutil mints real Base58Check tokens of every supported
// type and builds binary buffers around them.
package testutil

import (
	"crypto/sha256"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"golang.org/x/crypto/ripemd160"
)

// SatoshiAddress is the address of the genesis block coinbase.
const SatoshiAddress = "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa"

const alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// Version bytes of the mainnet token types.
var (
	versionPubKeyHash = []byte{0x00}
	versionScriptHash = []byte{0x05}
	versionWIF        = []byte{0x80}
	versionBIP38      = []byte{0x01, 0x42}
)

// Hash160 is RIPEMD-160 of SHA-256.
func Hash160(data []byte) []byte {
	sha256Hash := sha256.Sum256(data)
	h := ripemd160.New()
	h.Write(sha256Hash[:])
	return h.Sum(nil)
}

func checkEncode(version, payload []byte) string {
	full := append(append([]byte{}, version...), payload...)
	sum := chainhash.DoubleHashB(full)
	full = append(full, sum[:4]...)
	return base58.Encode(full)
}

// seedBytes derives 32 deterministic bytes from n and a label.
func seedBytes(n int, label string) []byte {
	sum := sha256.Sum256([]byte(label + "-" + strconv.Itoa(n)))
	return sum[:]
}

// PrivateKey returns a deterministic secp256k1 key for n.
func PrivateKey(n int) *secp256k1.PrivateKey {
	return secp256k1.PrivKeyFromBytes(seedBytes(n, "key"))
}

// Address returns a P2PKH address for the compressed public key of PrivateKey(n).
func Address(n int) string {
	pubKey := PrivateKey(n).PubKey().SerializeCompressed()
	return checkEncode(versionPubKeyHash, Hash160(pubKey))
}

// P2SHAddress returns a pay to script hash address for a 1-of-1
// multisig script over PrivateKey(n).
func P2SHAddress(n int) string {
	pubKey := PrivateKey(n).PubKey().SerializeCompressed()
	script := []byte{0x51, byte(len(pubKey))}
	script = append(script, pubKey...)
	script = append(script, 0x51, 0xae)
	return checkEncode(versionScriptHash, Hash160(script))
}

// WIFUncompressed returns the WIF encoding of PrivateKey(n) for an
// uncompressed public key. It starts with '5'.
func WIFUncompressed(n int) string {
	return checkEncode(versionWIF, PrivateKey(n).Serialize())
}

// WIFCompressed returns the WIF encoding of PrivateKey(n) for a
// compressed public key. It starts with 'K' or 'L'.
func WIFCompressed(n int) string {
	payload := append(PrivateKey(n).Serialize(), 0x01)
	return checkEncode(versionWIF, payload)
}

// BIP38Key returns a token shaped like a non-EC-multiplied BIP38
// encrypted key. The encrypted half is not a real ciphertext.
func BIP38Key(n int) string {
	payload := []byte{0xc0}
	payload = append(payload, Hash160([]byte(Address(n)))[:4]...)
	payload = append(payload, seedBytes(n, "bip38")...)
	return checkEncode(versionBIP38, payload)
}

func masterKey(n int) *hdkeychain.ExtendedKey {
	key, err := hdkeychain.NewMaster(seedBytes(n, "hd"), &chaincfg.MainNetParams)
	if err != nil {
		panic(err)
	}
	return key
}

// ExtendedPrivateKey returns a BIP32 master xprv key.
func ExtendedPrivateKey(n int) string {
	return masterKey(n).String()
}

// ExtendedPublicKey returns the xpub matching ExtendedPrivateKey(n).
func ExtendedPublicKey(n int) string {
	pub, err := masterKey(n).Neuter()
	if err != nil {
		panic(err)
	}
	return pub.String()
}

// Token returns a valid token of the named type, indexed by n.
func Token(name string, n int) string {
	switch name {
	case "Bitcoin address":
		return Address(n)
	case "Bitcoin P2SH":
		return P2SHAddress(n)
	case "BIP38 Encrypted Private Key":
		return BIP38Key(n)
	case "WIF Private key, uncompressed public keys":
		return WIFUncompressed(n)
	case "WIF Private key, compressed public keys":
		return WIFCompressed(n)
	case "BIP32 HD wallet private node":
		return ExtendedPrivateKey(n)
	case "BIP32 HD wallet public node":
		return ExtendedPublicKey(n)
	}
	panic("testutil: unknown token type " + name)
}

// Corrupt replaces the character at i with a different alphabet character.
func Corrupt(s string, i int) string {
	b := []byte(s)
	if b[i] == alphabet[len(alphabet)-1] {
		b[i] = alphabet[len(alphabet)-2]
	} else {
		b[i] = alphabet[len(alphabet)-1]
	}
	return string(b)
}

// Wide interleaves a zero byte after every byte of s.
func Wide(s string) []byte {
	b := make([]byte, 0, 2*len(s))
	for i := 0; i < len(s); i++ {
		b = append(b, s[i], 0x00)
	}
	return b
}

// Noise returns n pseudo random bytes, none of them a Base58 digit, so
// tokens placed in it are delimited on both sides.
func Noise(n int, seed int64) []byte {
	var pool []byte
	for c := 0; c < 256; c++ {
		if strings.IndexByte(alphabet, byte(c)) < 0 {
			pool = append(pool, byte(c))
		}
	}
	r := rand.New(rand.NewSource(seed))
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = pool[r.Intn(len(pool))]
	}
	return buf
}

// Place copies token into buf at offset.
func Place(buf []byte, offset int, token []byte) []byte {
	copy(buf[offset:], token)
	return buf
}

// WriteFile writes data to name inside a fresh temporary directory.
func WriteFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
