// SPDX-License-Identifier: ice License 1.0

package model

import (
	"encoding/hex"
	"log"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/cockroachdb/errors"
)

// BIP-340 signing with an all-zero auxiliary value, which is what libsecp256k1 does when no
// aux randomness is supplied. btcec's default nonce (RFC6979) produces different signatures.
var noAuxRand [32]byte

func decodeHex(dst []byte, s string) error {
	if len(s) != hex.EncodedLen(len(dst)) {
		return errors.Wrapf(ErrInvalidLength, "expected %v hex chars, got %v", hex.EncodedLen(len(dst)), len(s))
	}
	if _, err := hex.Decode(dst, []byte(s)); err != nil {
		return errors.Wrapf(ErrInvalidHex, "%q: %v", s, err)
	}

	return nil
}

func IDFromHex(s string) (id ID, err error) {
	err = errors.Wrap(decodeHex(id[:], s), "failed to decode id")

	return id, err
}

func PubKeyFromHex(s string) (pk PubKey, err error) {
	err = errors.Wrap(decodeHex(pk[:], s), "failed to decode pubkey")

	return pk, err
}

func SignatureFromHex(s string) (sig Signature, err error) {
	err = errors.Wrap(decodeHex(sig[:], s), "failed to decode signature")

	return sig, err
}

func SecretKeyFromHex(s string) (SecretKey, error) {
	var raw [32]byte
	if err := decodeHex(raw[:], s); err != nil {
		return SecretKey{}, errors.Wrap(err, "failed to decode secret key")
	}

	return SecretKeyFromBytes(raw[:])
}

func SecretKeyFromBytes(b []byte) (sk SecretKey, err error) {
	if len(b) != len(sk) {
		return sk, errors.Wrapf(ErrInvalidLength, "secret key must be %v bytes, got %v", len(sk), len(b))
	}
	copy(sk[:], b)
	if err = sk.validate(); err != nil {
		return SecretKey{}, err
	}

	return sk, nil
}

func GenerateSecretKey() (SecretKey, error) {
	priv, err := btcec.NewPrivateKey()
	if err != nil {
		return SecretKey{}, errors.Wrap(err, "failed to generate secp256k1 key")
	}

	return SecretKeyFromBytes(priv.Serialize())
}

func (sk SecretKey) validate() error {
	var scalar btcec.ModNScalar
	if overflow := scalar.SetByteSlice(sk[:]); overflow || scalar.IsZero() {
		return errors.Wrap(ErrInvalidSecretKey, "out of the secp256k1 scalar range")
	}

	return nil
}

func (sk SecretKey) mustKeyPair() (*btcec.PrivateKey, PubKey) {
	if err := sk.validate(); err != nil {
		log.Panic(errors.Wrap(err, "secret keys must be validated on construction"))
	}
	priv, pub := btcec.PrivKeyFromBytes(sk[:])
	var pk PubKey
	copy(pk[:], schnorr.SerializePubKey(pub))

	return priv, pk
}

func (sk SecretKey) PubKey() PubKey {
	_, pk := sk.mustKeyPair()

	return pk
}

func (sk SecretKey) Hex() string {
	return hex.EncodeToString(sk[:])
}

func (sk SecretKey) String() string {
	if sk.validate() != nil {
		return "SecretKey(invalid)"
	}

	return "SecretKey(" + sk.PubKey().String() + ")"
}

func (sk SecretKey) MarshalText() ([]byte, error) {
	return []byte(sk.Hex()), nil
}

func (sk *SecretKey) UnmarshalText(text []byte) (err error) {
	*sk, err = SecretKeyFromHex(string(text))

	return err
}

func signHash(priv *btcec.PrivateKey, hash []byte) (sig Signature) {
	s, err := schnorr.Sign(priv, hash, schnorr.CustomNonce(noAuxRand))
	if err != nil {
		log.Panic(errors.Wrapf(err, "failed to sign hash %x", hash))
	}
	copy(sig[:], s.Serialize())

	return sig
}

func (sig Signature) Verify(hash []byte, pk PubKey) bool {
	pub, err := schnorr.ParsePubKey(pk[:])
	if err != nil {
		return false
	}
	s, err := schnorr.ParseSignature(sig[:])
	if err != nil {
		return false
	}

	return s.Verify(hash, pub)
}

func (sig Signature) String() string {
	return hex.EncodeToString(sig[:])
}

func (sig Signature) MarshalText() ([]byte, error) {
	return []byte(sig.String()), nil
}

func (sig *Signature) UnmarshalText(text []byte) (err error) {
	*sig, err = SignatureFromHex(string(text))

	return err
}

func (pk PubKey) String() string {
	return hex.EncodeToString(pk[:])
}

// Valid reports whether pk is the x coordinate of a point on the curve.
func (pk PubKey) Valid() bool {
	_, err := schnorr.ParsePubKey(pk[:])

	return err == nil
}

func (pk PubKey) MarshalText() ([]byte, error) {
	return []byte(pk.String()), nil
}

func (pk *PubKey) UnmarshalText(text []byte) (err error) {
	*pk, err = PubKeyFromHex(string(text))

	return err
}

func (id ID) String() string {
	return hex.EncodeToString(id[:])
}

func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *ID) UnmarshalText(text []byte) (err error) {
	*id, err = IDFromHex(string(text))

	return err
}
