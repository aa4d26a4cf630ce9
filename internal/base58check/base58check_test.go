package base58check

import (
	"crypto/sha256"
	"math/rand"
	"strings"
	"testing"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"btcscan/internal/testutil"
	"btcscan/internal/token"
)

func TestCheckSatoshiAddress(t *testing.T) {
	assert.True(t, Check(testutil.SatoshiAddress, 25))
	assert.False(t, Check(testutil.SatoshiAddress, 24))
}

func TestCheckRejectsSingleCharacterChange(t *testing.T) {
	s := testutil.SatoshiAddress
	for i := range s {
		assert.False(t, Check(testutil.Corrupt(s, i), 25), "position %d", i)
	}
}

func TestCheckFixtures(t *testing.T) {
	for _, spec := range token.Active(token.Mode{NonUnicodeOnly: true}) {
		for n := 0; n < 5; n++ {
			s := testutil.Token(spec.Name, n)
			assert.True(t, Check(s, spec.DecodedLen), "%s %d: %s", spec.Name, n, s)

			matched := false
			for _, prefix := range spec.Prefixes {
				matched = matched || strings.HasPrefix(s, prefix)
			}
			assert.True(t, matched, "%s has prefix %v", s, spec.Prefixes)
			rest := len(s) - spec.PrefixLen()
			assert.True(t, rest >= spec.MinLen && rest <= spec.MaxLen, "%s length %d", s, len(s))

			last := len(s) - 1
			assert.False(t, Check(testutil.Corrupt(s, last), spec.DecodedLen), s)
		}
	}
}

func TestDecodeInvalidCharacter(t *testing.T) {
	for _, c := range []string{"0", "O", "I", "l", " ", "\x00", "+"} {
		s := testutil.SatoshiAddress[:20] + c + testutil.SatoshiAddress[21:]
		_, err := Decode(s, 25)
		assert.ErrorIs(t, err, ErrInvalidCharacter, "%q", c)
		assert.Equal(t, BadCharacter, Classify(s, 25))
	}
}

func TestDecodeOverflow(t *testing.T) {
	_, err := Decode(strings.Repeat("z", 35), 25)
	assert.ErrorIs(t, err, ErrOverflow)

	_, err = Decode("zzzz", 2)
	assert.ErrorIs(t, err, ErrOverflow)

	assert.Equal(t, Overflow, Classify(strings.Repeat("z", 35), 25))
}

func TestDecodeBoundary(t *testing.T) {
	// 58^2 - 1 = 3363 needs two bytes
	b, err := Decode("zz", 2)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x0d, 0x23}, b)

	_, err = Decode("zz", 1)
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestDecodePadsLeft(t *testing.T) {
	for _, test := range []struct {
		in     string
		length int
		want   []byte
	}{
		{"", 2, []byte{0, 0}},
		{"1", 4, []byte{0, 0, 0, 0}},
		{"2", 3, []byte{0, 0, 1}},
		{"111z", 3, []byte{0, 0, 57}},
		{"21", 2, []byte{0, 58}},
	} {
		got, err := Decode(test.in, test.length)
		require.NoError(t, err, test.in)
		assert.Equal(t, test.want, got, test.in)
	}
}

func TestDecodeEncodeRoundTrip(t *testing.T) {
	for _, spec := range token.Active(token.Mode{NonUnicodeOnly: true}) {
		s := testutil.Token(spec.Name, 7)
		decoded, err := Decode(s, spec.DecodedLen)
		require.NoError(t, err)
		assert.Equal(t, s, Encode(decoded), spec.Name)
	}

	decoded, err := Decode(testutil.SatoshiAddress, 25)
	require.NoError(t, err)
	assert.Equal(t, byte(0), decoded[0])
	assert.Equal(t, testutil.SatoshiAddress, Encode(decoded))
}

func TestEncodeMatchesBtcutil(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		b := make([]byte, r.Intn(90))
		r.Read(b)
		if len(b) > 0 && i%3 == 0 {
			b[0] = 0
		}
		assert.Equal(t, base58.Encode(b), Encode(b))
		if len(b) > 0 {
			got, err := Decode(Encode(b), len(b))
			require.NoError(t, err)
			assert.Equal(t, b, got)
		}
	}
}

func TestVerify(t *testing.T) {
	payload := []byte("payload")
	first := sha256.Sum256(payload)
	second := sha256.Sum256(first[:])
	good := append(append([]byte{}, payload...), second[:4]...)
	assert.True(t, Verify(good))
	assert.Equal(t, second[:4], Checksum(payload))

	bad := append([]byte{}, good...)
	bad[len(bad)-1] ^= 0x01
	assert.False(t, Verify(bad))

	assert.False(t, Verify(nil))
	assert.False(t, Verify([]byte{1, 2, 3, 4}))
}

func TestCheckEncode(t *testing.T) {
	s := CheckEncode(append([]byte{0x80}, testutil.PrivateKey(3).Serialize()...))
	assert.Equal(t, testutil.WIFUncompressed(3), s)
	assert.True(t, Check(s, 37))
}

func TestClassify(t *testing.T) {
	assert.Equal(t, Valid, Classify(testutil.SatoshiAddress, 25))
	assert.Equal(t, BadChecksum, Classify("1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNb", 25))
	assert.Equal(t, "bad checksum", BadChecksum.String())
	assert.Equal(t, "unknown", Result(42).String())
}

func TestIsDigit(t *testing.T) {
	n := 0
	for c := 0; c < 256; c++ {
		if IsDigit(byte(c)) {
			n++
			assert.True(t, strings.IndexByte(Alphabet, byte(c)) >= 0)
		}
	}
	assert.Equal(t, 58, n)
}
