package protocol

import (
	"saturn-payment-network/internal/core/domain"
	"saturn-payment-network/internal/jsonutil"
)

// EncodeSoftware writes the vendor stamp object.
func EncodeSoftware(sw domain.Software) *jsonutil.ObjectWriter {
	return jsonutil.NewObjectWriter().
		SetString(nameJSON, sw.Name).
		SetString(versionJSON, sw.Version)
}

// ParseSoftware reads the software field of a message.
func ParseSoftware(rd *jsonutil.ObjectReader) (domain.Software, error) {
	sub, err := rd.GetObject(softwareJSON)
	if err != nil {
		return domain.Software{}, err
	}
	var sw domain.Software
	if sw.Name, err = sub.GetString(nameJSON); err != nil {
		return domain.Software{}, err
	}
	if sw.Version, err = sub.GetString(versionJSON); err != nil {
		return domain.Software{}, err
	}
	return sw, nil
}
