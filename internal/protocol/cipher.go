package protocol

import (
	"saturn-payment-network/internal/core/ports"
	"saturn-payment-network/internal/jsonutil"
)

// Data- and key-encryption algorithm identifiers (JOSE names).
const (
	DataEncryptionA128CBCHS256 = "A128CBC-HS256"
	KeyEncryptionECDHES        = "ECDH-ES"
	KeyEncryptionRSAOAEP256    = "RSA-OAEP-256"
)

// EncodeCipherBlock writes an encrypted-payload object.
func EncodeCipherBlock(block *ports.CipherBlock) (*jsonutil.ObjectWriter, error) {
	keyEncryption := jsonutil.NewObjectWriter().SetString(algorithmJSON, block.KeyAlgorithm)
	if block.EphemeralKey != nil {
		pk, err := jsonutil.EncodePublicKey(block.EphemeralKey)
		if err != nil {
			return nil, err
		}
		keyEncryption.SetObject(publicKeyJSON, pk)
	} else {
		keyEncryption.SetBinary(encryptedKeyJSON, block.EncryptedKey)
	}
	return jsonutil.NewObjectWriter().
		SetString(algorithmJSON, block.DataAlgorithm).
		SetObject(keyEncryptionJSON, keyEncryption).
		SetBinary(ivJSON, block.IV).
		SetBinary(tagJSON, block.Tag).
		SetBinary(cipherTextJSON, block.CipherText), nil
}

// ParseCipherBlock reads an encrypted-payload object nested under name.
func ParseCipherBlock(rd *jsonutil.ObjectReader, name string) (*ports.CipherBlock, error) {
	sub, err := rd.GetObject(name)
	if err != nil {
		return nil, err
	}
	block := &ports.CipherBlock{}
	if block.DataAlgorithm, err = sub.GetString(algorithmJSON); err != nil {
		return nil, err
	}
	keyEncryption, err := sub.GetObject(keyEncryptionJSON)
	if err != nil {
		return nil, err
	}
	if block.KeyAlgorithm, err = keyEncryption.GetString(algorithmJSON); err != nil {
		return nil, err
	}
	if keyEncryption.Has(publicKeyJSON) {
		if block.EphemeralKey, err = keyEncryption.GetPublicKey(publicKeyJSON); err != nil {
			return nil, err
		}
	} else {
		if block.EncryptedKey, err = keyEncryption.GetBinary(encryptedKeyJSON); err != nil {
			return nil, err
		}
	}
	if block.IV, err = sub.GetBinary(ivJSON); err != nil {
		return nil, err
	}
	if block.Tag, err = sub.GetBinary(tagJSON); err != nil {
		return nil, err
	}
	if block.CipherText, err = sub.GetBinary(cipherTextJSON); err != nil {
		return nil, err
	}
	return block, nil
}
