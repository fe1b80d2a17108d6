package key

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"

	"github.com/meverselabs/dmcexchange/common"
	"github.com/pkg/errors"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

const keyFileVersion = 1

// KDFParams are the argon2id parameters stored with the encrypted key
type KDFParams struct {
	Salt    string `json:"salt"`
	Time    uint32 `json:"time"`
	Memory  uint32 `json:"memory"`
	Threads uint8  `json:"threads"`
}

// DefaultKDFParams is used by EncryptKey
var DefaultKDFParams = KDFParams{
	Time:    1,
	Memory:  64 * 1024,
	Threads: 4,
}

// KeyFile is the passphrase encrypted form of a MemoryKey
type KeyFile struct {
	Version    int            `json:"version"`
	Address    common.Address `json:"address"`
	KDF        KDFParams      `json:"kdf"`
	Nonce      string         `json:"nonce"`
	CipherText string         `json:"ciphertext"`
}

func deriveKEK(passphrase []byte, salt []byte, p KDFParams) []byte {
	return argon2.IDKey(passphrase, salt, p.Time, p.Memory, p.Threads, chacha20poly1305.KeySize)
}

func zero(bs []byte) {
	for i := range bs {
		bs[i] = 0
	}
}

// EncryptKey seals the private key with the passphrase
func EncryptKey(k Key, passphrase []byte, params KDFParams) ([]byte, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return nil, errors.WithStack(err)
	}
	kek := deriveKEK(passphrase, salt, params)
	defer zero(kek)

	aead, err := chacha20poly1305.New(kek)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, errors.WithStack(err)
	}
	priv := k.Bytes()
	if priv == nil {
		return nil, errors.WithStack(ErrClearedKey)
	}
	defer zero(priv)

	params.Salt = hex.EncodeToString(salt)
	kf := &KeyFile{
		Version:    keyFileVersion,
		Address:    k.Address(),
		KDF:        params,
		Nonce:      hex.EncodeToString(nonce),
		CipherText: hex.EncodeToString(aead.Seal(nil, nonce, priv, k.Address().Bytes())),
	}
	bs, err := json.MarshalIndent(kf, "", "\t")
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return bs, nil
}

// DecryptKey opens the key file with the passphrase
func DecryptKey(data []byte, passphrase []byte) (*MemoryKey, error) {
	var kf KeyFile
	if err := json.Unmarshal(data, &kf); err != nil {
		return nil, errors.Wrap(ErrInvalidKeyFile, err.Error())
	}
	if kf.Version != keyFileVersion {
		return nil, errors.WithStack(ErrUnsupportedVersion)
	}
	salt, err := hex.DecodeString(kf.KDF.Salt)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidKeyFile, err.Error())
	}
	nonce, err := hex.DecodeString(kf.Nonce)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidKeyFile, err.Error())
	}
	ct, err := hex.DecodeString(kf.CipherText)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidKeyFile, err.Error())
	}
	kek := deriveKEK(passphrase, salt, kf.KDF)
	defer zero(kek)

	aead, err := chacha20poly1305.New(kek)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if len(nonce) != aead.NonceSize() {
		return nil, errors.WithStack(ErrInvalidKeyFile)
	}
	priv, err := aead.Open(nil, nonce, ct, kf.Address.Bytes())
	if err != nil {
		return nil, errors.WithStack(ErrInvalidPassphrase)
	}
	defer zero(priv)
	return NewMemoryKeyFromBytes(priv)
}
