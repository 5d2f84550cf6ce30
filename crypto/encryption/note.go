package encryption

import (
	"crypto/cipher"
	"io"

	sha256 "github.com/minio/sha256-simd"
	"github.com/pkg/errors"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"

	"github.com/zkrollup/pxe/model/fields"
)

const (
	pointSize = 2 * fields.FrSize

	// Overhead is the number of bytes a ciphertext has on top of its plaintext.
	Overhead = pointSize + chacha20poly1305.Overhead
)

var kdfInfo = []byte("pxe/note-encryption/v1")

// ErrInvalidOwnerKey is returned when the owner public key is not a point of
// the curve.
var ErrInvalidOwnerKey = errors.New("owner public key is not on the curve")

// ErrInvalidCiphertext is returned by Decrypt for malformed or tampered input.
var ErrInvalidCiphertext = errors.New("invalid ciphertext")

// RandomnessError is returned by Encrypt when the ephemeral key cannot be
// read from the randomness source.
type RandomnessError struct {
	err error
}

func (e RandomnessError) Error() string {
	return "could not create ephemeral key: " + e.err.Error()
}

func (e RandomnessError) Unwrap() error {
	return e.err
}

func IsRandomnessError(err error) bool {
	var target RandomnessError
	return errors.As(err, &target)
}

// Encrypt encrypts plaintext for owner. An ephemeral scalar is read from r, so
// the output is fully determined by (plaintext, owner, bytes read from r).
//
// Layout: ephemeral public key (x || y) || ChaCha20-Poly1305 sealed box.
func (c *Curve) Encrypt(plaintext []byte, owner fields.Point, r io.Reader) ([]byte, error) {
	if owner.IsZero() || !c.IsOnCurve(owner) {
		return nil, errors.Wrapf(ErrInvalidOwnerKey, "owner %s", owner)
	}

	eph, err := c.randomScalar(r)
	if err != nil {
		return nil, RandomnessError{err: err}
	}
	ephPub := c.Mul(c.Generator(), eph)
	shared := c.Mul(owner, eph)

	aead, nonce, err := deriveCipher(shared, ephPub)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, pointSize+len(plaintext)+chacha20poly1305.Overhead)
	out = appendPoint(out, ephPub)
	return aead.Seal(out, nonce, plaintext, nil), nil
}

// Decrypt opens a ciphertext produced by Encrypt with the owner's secret.
func (c *Curve) Decrypt(ciphertext []byte, secret fields.Fr) ([]byte, error) {
	if len(ciphertext) < Overhead {
		return nil, errors.Wrapf(ErrInvalidCiphertext, "length %d is below the minimum %d", len(ciphertext), Overhead)
	}
	ephPub, err := readPoint(ciphertext[:pointSize])
	if err != nil {
		return nil, errors.Wrap(ErrInvalidCiphertext, err.Error())
	}
	if !c.IsOnCurve(ephPub) {
		return nil, errors.Wrap(ErrInvalidCiphertext, "ephemeral key is not on the curve")
	}

	shared := c.Mul(ephPub, c.scalar(secret))
	aead, nonce, err := deriveCipher(shared, ephPub)
	if err != nil {
		return nil, err
	}
	plaintext, err := aead.Open(nil, nonce, ciphertext[pointSize:], nil)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidCiphertext, err.Error())
	}
	return plaintext, nil
}

func deriveCipher(shared, ephPub fields.Point) (cipher.AEAD, []byte, error) {
	ikm := appendPoint(nil, shared)
	salt := appendPoint(nil, ephPub)
	kdf := hkdf.New(sha256.New, ikm, salt, kdfInfo)

	material := make([]byte, chacha20poly1305.KeySize+chacha20poly1305.NonceSize)
	if _, err := io.ReadFull(kdf, material); err != nil {
		return nil, nil, errors.Wrap(err, "could not derive note encryption key")
	}
	aead, err := chacha20poly1305.New(material[:chacha20poly1305.KeySize])
	if err != nil {
		return nil, nil, errors.Wrap(err, "could not create note cipher")
	}
	return aead, material[chacha20poly1305.KeySize:], nil
}

func appendPoint(dst []byte, p fields.Point) []byte {
	x, y := p.X.Bytes(), p.Y.Bytes()
	dst = append(dst, x[:]...)
	return append(dst, y[:]...)
}

func readPoint(b []byte) (fields.Point, error) {
	x, err := fields.FrFromBytes(b[:fields.FrSize])
	if err != nil {
		return fields.Point{}, err
	}
	y, err := fields.FrFromBytes(b[fields.FrSize:pointSize])
	if err != nil {
		return fields.Point{}, err
	}
	return fields.NewPoint(x, y), nil
}
