package bnd4

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/md5"
	"fmt"
)

// EntryKey is the AES-128 key shared by every Nightreign save entry.
var EntryKey = []byte{
	0x18, 0xF6, 0x32, 0x66,
	0x05, 0xBD, 0x17, 0x8A,
	0x55, 0x24, 0x52, 0x3A,
	0xC0, 0xA0, 0xC6, 0x09,
}

const ivSize = 16

const (
	// checksumStart and checksumTrailerLen bound the region the game
	// hashes inside a decrypted entry: everything after the first four
	// bytes up to the 12 padding bytes plus 16 checksum bytes at the
	// end.
	checksumStart      = 4
	checksumTrailerLen = 12 + md5.Size
)

// DecryptEntry decrypts one archive entry with AES-CBC. The first 16
// bytes of the entry are the IV and are not part of the plaintext.
func DecryptEntry(enc []byte) ([]byte, error) {
	if len(enc) <= ivSize {
		return nil, fmt.Errorf("entry too short for IV (%d bytes)", len(enc))
	}
	payload := enc[ivSize:]
	if len(payload)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("payload length %d is not a multiple of the block size", len(payload))
	}
	block, err := aes.NewCipher(EntryKey)
	if err != nil {
		return nil, fmt.Errorf("creating AES cipher: %w", err)
	}
	plain := make([]byte, len(payload))
	cipher.NewCBCDecrypter(block, enc[:ivSize]).CryptBlocks(plain, payload)
	return plain, nil
}

// EncryptEntry is the inverse of DecryptEntry, producing iv followed
// by the AES-CBC ciphertext of plain.
func EncryptEntry(iv, plain []byte) ([]byte, error) {
	if len(iv) != ivSize {
		return nil, fmt.Errorf("IV must be %d bytes, got %d", ivSize, len(iv))
	}
	if len(plain)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("plaintext length %d is not a multiple of the block size", len(plain))
	}
	block, err := aes.NewCipher(EntryKey)
	if err != nil {
		return nil, fmt.Errorf("creating AES cipher: %w", err)
	}
	out := make([]byte, ivSize+len(plain))
	copy(out, iv)
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out[ivSize:], plain)
	return out, nil
}

// Checksum computes the MD5 the game stores in the trailer of a
// decrypted entry.
func Checksum(plain []byte) ([]byte, error) {
	if len(plain) < checksumStart+checksumTrailerLen {
		return nil, fmt.Errorf("entry too short for checksum region (%d bytes)", len(plain))
	}
	sum := md5.Sum(plain[checksumStart : len(plain)-checksumTrailerLen])
	return sum[:], nil
}
