package gstate

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// The global state has one canonical serialization for everything it
// persists: deterministic CBOR. Trie roots are hashes over these bytes, so
// the encoding options must never change for a live network.
var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("cannot construct deterministic cbor encoder: %v", err))
	}
	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("cannot construct cbor decoder: %v", err))
	}
}

type storedValueEnvelope struct {
	Tag             StoredValueTag   `cbor:"0,keyasint"`
	CLValue         *CLValue         `cbor:"1,keyasint,omitempty"`
	Contract        *Contract        `cbor:"2,keyasint,omitempty"`
	ContractPackage *ContractPackage `cbor:"3,keyasint,omitempty"`
}

// EncodeStoredValue serializes a stored value into its canonical byte form.
func EncodeStoredValue(v StoredValue) ([]byte, error) {
	envelope := storedValueEnvelope{Tag: v.Tag()}
	switch envelope.Tag {
	case TagCLValue:
		if v.clValue == nil {
			return nil, fmt.Errorf("cannot encode empty stored value")
		}
		envelope.CLValue = v.clValue
	case TagContract:
		envelope.Contract = v.contract
	case TagContractPackage:
		envelope.ContractPackage = v.contractPackage
	}
	data, err := encMode.Marshal(envelope)
	if err != nil {
		return nil, fmt.Errorf("cannot encode stored value (%s): %w", envelope.Tag, err)
	}
	return data, nil
}

// DecodeStoredValue deserializes the canonical byte form of a stored value.
func DecodeStoredValue(data []byte) (StoredValue, error) {
	var envelope storedValueEnvelope
	if err := decMode.Unmarshal(data, &envelope); err != nil {
		return StoredValue{}, fmt.Errorf("cannot decode stored value: %w", err)
	}
	switch envelope.Tag {
	case TagCLValue:
		if envelope.CLValue == nil {
			return StoredValue{}, fmt.Errorf("stored value tagged %s carries no payload", envelope.Tag)
		}
		return StoredValue{clValue: envelope.CLValue}, nil
	case TagContract:
		if envelope.Contract == nil {
			return StoredValue{}, fmt.Errorf("stored value tagged %s carries no payload", envelope.Tag)
		}
		return StoredValue{contract: envelope.Contract}, nil
	case TagContractPackage:
		if envelope.ContractPackage == nil {
			return StoredValue{}, fmt.Errorf("stored value tagged %s carries no payload", envelope.Tag)
		}
		return StoredValue{contractPackage: envelope.ContractPackage}, nil
	default:
		return StoredValue{}, fmt.Errorf("unknown stored value tag %d", envelope.Tag)
	}
}

// MarshalCLValue encodes an arbitrary value into a CLValue payload using the
// canonical codec.
func MarshalCLValue(v interface{}) (CLValue, error) {
	raw, err := encMode.Marshal(v)
	if err != nil {
		return CLValue{}, fmt.Errorf("cannot encode cl value: %w", err)
	}
	return CLValue{Raw: raw}, nil
}

// UnmarshalCLValue decodes a CLValue payload into out.
func UnmarshalCLValue(cl CLValue, out interface{}) error {
	if err := decMode.Unmarshal(cl.Raw, out); err != nil {
		return fmt.Errorf("cannot decode cl value: %w", err)
	}
	return nil
}
