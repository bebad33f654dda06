// Package wire implements the canonical byte encodings of spec §6, the
// normative wire format for every persisted or transmitted PVSS/SCRAPE
// value. Decoding never panics: malformed input surfaces as a DecodeError
// naming the field that failed (spec §7).
package wire

import (
	"encoding/binary"
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/luxfi/pvss/pkg/curve"
	"github.com/luxfi/pvss/pkg/dleq"
	"github.com/luxfi/pvss/pkg/party"
)

// DecodeError names the field that failed to decode, matching spec §7's
// "malformed serialization fails with a structured decoding error naming
// the field" requirement.
type DecodeError struct {
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("wire: failed to decode %s: %v", e.Field, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// EncodePoint / DecodePoint: fixed-size compressed point bytes.
func EncodePoint(p curve.Point) []byte {
	return p.Bytes()
}

func DecodePoint(group curve.Curve, b []byte) (curve.Point, error) {
	p, err := group.PointFromBytes(b)
	if err != nil {
		return nil, &DecodeError{Field: "Point", Err: err}
	}
	return p, nil
}

// EncodeScalar / DecodeScalar: fixed-size big-endian scalar bytes.
func EncodeScalar(s curve.Scalar) []byte {
	return s.Bytes()
}

func DecodeScalar(group curve.Curve, b []byte) (curve.Scalar, error) {
	s, err := group.ScalarFromBytes(b)
	if err != nil {
		return nil, &DecodeError{Field: "Scalar", Err: err}
	}
	return s, nil
}

// EncodeShareID / DecodeShareID: unsigned 32-bit little-endian.
func EncodeShareID(id party.ID) ([]byte, error) {
	n, err := id.Int()
	if err != nil {
		return nil, &DecodeError{Field: "ShareId", Err: err}
	}
	out := make([]byte, 4)
	binary.LittleEndian.PutUint32(out, uint32(n))
	return out, nil
}

func DecodeShareID(b []byte) (party.ID, error) {
	if len(b) != 4 {
		return "", &DecodeError{Field: "ShareId", Err: fmt.Errorf("expected 4 bytes, got %d", len(b))}
	}
	n := binary.LittleEndian.Uint32(b)
	return party.NewID(int(n)), nil
}

// proofCBOR is the cbor-level encoding of a dleq.Proof: Scalar(challenge)
// ‖ Scalar(response).
type proofCBOR struct {
	C []byte `cbor:"1,keyasint"`
	Z []byte `cbor:"2,keyasint"`
}

func EncodeProof(p *dleq.Proof) ([]byte, error) {
	out, err := cbor.Marshal(proofCBOR{C: EncodeScalar(p.C), Z: EncodeScalar(p.Z)})
	if err != nil {
		return nil, &DecodeError{Field: "Proof", Err: err}
	}
	return out, nil
}

func DecodeProof(group curve.Curve, b []byte) (*dleq.Proof, error) {
	var raw proofCBOR
	if err := cbor.Unmarshal(b, &raw); err != nil {
		return nil, &DecodeError{Field: "Proof", Err: err}
	}
	c, err := DecodeScalar(group, raw.C)
	if err != nil {
		return nil, err
	}
	z, err := DecodeScalar(group, raw.Z)
	if err != nil {
		return nil, err
	}
	return &dleq.Proof{C: c, Z: z}, nil
}

// parallelProofsCBOR is the cbor-level encoding of a dleq.ParallelProofs:
// Scalar(challenge) ‖ length-prefixed array of Scalar responses.
type parallelProofsCBOR struct {
	C []byte   `cbor:"1,keyasint"`
	Z [][]byte `cbor:"2,keyasint"`
}

func EncodeParallelProofs(p *dleq.ParallelProofs) ([]byte, error) {
	z := make([][]byte, len(p.Z))
	for i, zi := range p.Z {
		z[i] = EncodeScalar(zi)
	}
	out, err := cbor.Marshal(parallelProofsCBOR{C: EncodeScalar(p.C), Z: z})
	if err != nil {
		return nil, &DecodeError{Field: "ParallelProofs", Err: err}
	}
	return out, nil
}

func DecodeParallelProofs(group curve.Curve, b []byte) (*dleq.ParallelProofs, error) {
	var raw parallelProofsCBOR
	if err := cbor.Unmarshal(b, &raw); err != nil {
		return nil, &DecodeError{Field: "ParallelProofs", Err: err}
	}
	c, err := DecodeScalar(group, raw.C)
	if err != nil {
		return nil, err
	}
	z := make([]curve.Scalar, len(raw.Z))
	for i, zi := range raw.Z {
		s, err := DecodeScalar(group, zi)
		if err != nil {
			return nil, &DecodeError{Field: fmt.Sprintf("ParallelProofs.Z[%d]", i), Err: err}
		}
		z[i] = s
	}
	return &dleq.ParallelProofs{C: c, Z: z}, nil
}

// encryptedShareCBOR is the cbor-level encoding of a PVSS EncryptedShare:
// ShareId ‖ Point ‖ Proof.
type encryptedShareCBOR struct {
	ShareID []byte `cbor:"1,keyasint"`
	Y       []byte `cbor:"2,keyasint"`
	Proof   []byte `cbor:"3,keyasint"`
}

// EncryptedShareFields is the minimal (id, point, proof) view both
// pvss.EncryptedShare and pvss.DecryptedShare satisfy, letting this package
// encode both without importing pvss (which would create an import cycle).
type EncryptedShareFields struct {
	ShareID party.ID
	Point   curve.Point
	Proof   *dleq.Proof
}

func EncodeEncryptedShare(f EncryptedShareFields) ([]byte, error) {
	idBytes, err := EncodeShareID(f.ShareID)
	if err != nil {
		return nil, err
	}
	proofBytes, err := EncodeProof(f.Proof)
	if err != nil {
		return nil, err
	}
	out, err := cbor.Marshal(encryptedShareCBOR{
		ShareID: idBytes,
		Y:       EncodePoint(f.Point),
		Proof:   proofBytes,
	})
	if err != nil {
		return nil, &DecodeError{Field: "EncryptedShare", Err: err}
	}
	return out, nil
}

func DecodeEncryptedShare(group curve.Curve, b []byte) (EncryptedShareFields, error) {
	var raw encryptedShareCBOR
	if err := cbor.Unmarshal(b, &raw); err != nil {
		return EncryptedShareFields{}, &DecodeError{Field: "EncryptedShare", Err: err}
	}
	id, err := DecodeShareID(raw.ShareID)
	if err != nil {
		return EncryptedShareFields{}, err
	}
	pt, err := DecodePoint(group, raw.Y)
	if err != nil {
		return EncryptedShareFields{}, err
	}
	proof, err := DecodeProof(group, raw.Proof)
	if err != nil {
		return EncryptedShareFields{}, err
	}
	return EncryptedShareFields{ShareID: id, Point: pt, Proof: proof}, nil
}

// EncodeEncryptedSi / DecodeEncryptedSi: a SCRAPE EncryptedSi on the wire is
// a bare point.
func EncodeEncryptedSi(p curve.Point) []byte {
	return EncodePoint(p)
}

func DecodeEncryptedSi(group curve.Curve, b []byte) (curve.Point, error) {
	return DecodePoint(group, b)
}

// scrapeDecryptedShareCBOR is the cbor-level encoding of a SCRAPE
// DecryptedShare: Point ‖ Proof (no ShareId — order is tracked separately).
type scrapeDecryptedShareCBOR struct {
	S     []byte `cbor:"1,keyasint"`
	Proof []byte `cbor:"2,keyasint"`
}

func EncodeScrapeDecryptedShare(s curve.Point, proof *dleq.Proof) ([]byte, error) {
	proofBytes, err := EncodeProof(proof)
	if err != nil {
		return nil, err
	}
	out, err := cbor.Marshal(scrapeDecryptedShareCBOR{S: EncodePoint(s), Proof: proofBytes})
	if err != nil {
		return nil, &DecodeError{Field: "DecryptedShare", Err: err}
	}
	return out, nil
}

func DecodeScrapeDecryptedShare(group curve.Curve, b []byte) (curve.Point, *dleq.Proof, error) {
	var raw scrapeDecryptedShareCBOR
	if err := cbor.Unmarshal(b, &raw); err != nil {
		return nil, nil, &DecodeError{Field: "DecryptedShare", Err: err}
	}
	s, err := DecodePoint(group, raw.S)
	if err != nil {
		return nil, nil, err
	}
	proof, err := DecodeProof(group, raw.Proof)
	if err != nil {
		return nil, nil, err
	}
	return s, proof, nil
}

// participantsCBOR is the cbor-level encoding of Participants:
// length-prefixed array of Point.
type participantsCBOR struct {
	Points [][]byte `cbor:"1,keyasint"`
}

func EncodeParticipants(points []curve.Point) ([]byte, error) {
	raw := make([][]byte, len(points))
	for i, p := range points {
		raw[i] = EncodePoint(p)
	}
	out, err := cbor.Marshal(participantsCBOR{Points: raw})
	if err != nil {
		return nil, &DecodeError{Field: "Participants", Err: err}
	}
	return out, nil
}

func DecodeParticipants(group curve.Curve, b []byte) ([]curve.Point, error) {
	var raw participantsCBOR
	if err := cbor.Unmarshal(b, &raw); err != nil {
		return nil, &DecodeError{Field: "Participants", Err: err}
	}
	out := make([]curve.Point, len(raw.Points))
	for i, pb := range raw.Points {
		p, err := DecodePoint(group, pb)
		if err != nil {
			return nil, &DecodeError{Field: fmt.Sprintf("Participants[%d]", i), Err: err.(*DecodeError).Err}
		}
		out[i] = p
	}
	return out, nil
}
