package base58check

import "errors"

// Result classifies a candidate string.
type Result int

const (
	Valid Result = iota
	BadCharacter
	Overflow
	BadChecksum
)

var resultNames = []string{
	Valid:        "valid",
	BadCharacter: "bad character",
	Overflow:     "overflow",
	BadChecksum:  "bad checksum",
}

func (r Result) String() string {
	if r < 0 || int(r) >= len(resultNames) {
		return "unknown"
	}
	return resultNames[r]
}

// Classify decodes text to length bytes and verifies it, reporting why
// it was rejected if it was.
func Classify(text string, length int) Result {
	decoded, err := Decode(text, length)
	switch {
	case errors.Is(err, ErrInvalidCharacter):
		return BadCharacter
	case err != nil:
		return Overflow
	}
	if !Verify(decoded) {
		return BadChecksum
	}
	return Valid
}
