package jsonutil

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rsa"
	"fmt"
	"math/big"

	"saturn-payment-network/pkg/apperror"
)

// JWK-style public key fields.
const (
	ktyJSON = "kty"
	crvJSON = "crv"
	xJSON   = "x"
	yJSON   = "y"
	nJSON   = "n"
	eJSON   = "e"
)

// EncodePublicKey writes a public key as a JWK-style object with fields in
// canonical declaration order.
func EncodePublicKey(key crypto.PublicKey) (*ObjectWriter, error) {
	switch k := key.(type) {
	case *ecdsa.PublicKey:
		crv, err := curveName(k.Curve)
		if err != nil {
			return nil, err
		}
		byteLen := (k.Curve.Params().BitSize + 7) / 8
		x := make([]byte, byteLen)
		y := make([]byte, byteLen)
		k.X.FillBytes(x)
		k.Y.FillBytes(y)
		return NewObjectWriter().
			SetString(ktyJSON, "EC").
			SetString(crvJSON, crv).
			SetBinary(xJSON, x).
			SetBinary(yJSON, y), nil
	case *rsa.PublicKey:
		return NewObjectWriter().
			SetString(ktyJSON, "RSA").
			SetBinary(nJSON, k.N.Bytes()).
			SetBinary(eJSON, big.NewInt(int64(k.E)).Bytes()), nil
	}
	return nil, fmt.Errorf("unsupported public key type %T", key)
}

// ParsePublicKey reads a JWK-style public key object.
func ParsePublicKey(rd *ObjectReader) (crypto.PublicKey, error) {
	kty, err := rd.GetString(ktyJSON)
	if err != nil {
		return nil, err
	}
	switch kty {
	case "EC":
		crv, err := rd.GetString(crvJSON)
		if err != nil {
			return nil, err
		}
		curve, err := curveFromName(crv)
		if err != nil {
			return nil, err
		}
		x, err := rd.GetBinary(xJSON)
		if err != nil {
			return nil, err
		}
		y, err := rd.GetBinary(yJSON)
		if err != nil {
			return nil, err
		}
		pub := &ecdsa.PublicKey{
			Curve: curve,
			X:     new(big.Int).SetBytes(x),
			Y:     new(big.Int).SetBytes(y),
		}
		// The ECDH conversion rejects coordinates that do not name a point
		// on the curve, including the point at infinity.
		if _, err := pub.ECDH(); err != nil {
			return nil, apperror.ErrSchemaViolation(
				fmt.Sprintf("EC public key is not a point on %s", crv))
		}
		return pub, nil
	case "RSA":
		n, err := rd.GetBinary(nJSON)
		if err != nil {
			return nil, err
		}
		e, err := rd.GetBinary(eJSON)
		if err != nil {
			return nil, err
		}
		return &rsa.PublicKey{
			N: new(big.Int).SetBytes(n),
			E: int(new(big.Int).SetBytes(e).Int64()),
		}, nil
	}
	return nil, apperror.ErrSchemaViolation(fmt.Sprintf("unsupported key type %q", kty))
}

// GetPublicKey reads a required nested public key object.
func (r *ObjectReader) GetPublicKey(name string) (crypto.PublicKey, error) {
	sub, err := r.GetObject(name)
	if err != nil {
		return nil, err
	}
	return ParsePublicKey(sub)
}

func curveName(curve elliptic.Curve) (string, error) {
	switch curve {
	case elliptic.P256():
		return "P-256", nil
	case elliptic.P384():
		return "P-384", nil
	case elliptic.P521():
		return "P-521", nil
	}
	return "", fmt.Errorf("unsupported curve %s", curve.Params().Name)
}

func curveFromName(name string) (elliptic.Curve, error) {
	switch name {
	case "P-256":
		return elliptic.P256(), nil
	case "P-384":
		return elliptic.P384(), nil
	case "P-521":
		return elliptic.P521(), nil
	}
	return nil, apperror.ErrSchemaViolation(fmt.Sprintf("unsupported curve %q", name))
}
