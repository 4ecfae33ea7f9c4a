package keys

import (
	"io"

	"github.com/powersoftau/ceremony-core/curve"
)

func (pk *ProvingKey) WriteTo(w io.Writer, raw bool) (int64, error) {
	n, err := pk.Domain.WriteTo(w)
	if err != nil {
		return n, err
	}

	var enc *curve.Encoder
	if raw {
		enc = curve.NewEncoder(w, curve.RawEncoding())
	} else {
		enc = curve.NewEncoder(w)
	}
	nbWires := uint64(len(pk.InfinityA))

	toEncode := []interface{}{
		&pk.G1.Alpha,
		&pk.G1.Beta,
		&pk.G1.Delta,
		pk.G1.A,
		pk.G1.B,
		pk.G1.Z,
		pk.G1.K,
		&pk.G2.Beta,
		&pk.G2.Delta,
		pk.G2.B,
		nbWires,
		pk.NbInfinityA,
		pk.NbInfinityB,
		pk.InfinityA,
		pk.InfinityB,
	}

	for _, v := range toEncode {
		if err := enc.Encode(v); err != nil {
			return n + enc.BytesWritten(), err
		}
	}

	return n + enc.BytesWritten(), nil
}

// follows the bellman proving-key layout: alpha,beta,delta in G1, A/B/Z/K
// vectors, beta/delta in G2, the B vector in G2, then infinity bookkeeping.
func (pk *ProvingKey) ReadFrom(r io.Reader) (int64, error) {
	domain := curve.NewDomain(1)
	n, err := domain.ReadFrom(r)
	if err != nil {
		return n, err
	}
	pk.Domain = *domain

	dec := curve.NewDecoder(r)
	var nbWires uint64
	toDecode := []interface{}{
		&pk.G1.Alpha,
		&pk.G1.Beta,
		&pk.G1.Delta,
		&pk.G1.A,
		&pk.G1.B,
		&pk.G1.Z,
		&pk.G1.K,
		&pk.G2.Beta,
		&pk.G2.Delta,
		&pk.G2.B,
		&nbWires,
		&pk.NbInfinityA,
		&pk.NbInfinityB,
		&pk.InfinityA,
		&pk.InfinityB,
	}
	for _, v := range toDecode {
		if err := dec.Decode(v); err != nil {
			return n + dec.BytesRead(), err
		}
	}
	return n + dec.BytesRead(), nil
}

// [alpha]_1,[beta]_1,[beta]_2,[gamma]_2,[delta]_1,[delta]_2,[Kvk]_1
func (vk *VerifyingKey) WriteTo(w io.Writer, raw bool) (int64, error) {
	var enc *curve.Encoder
	if raw {
		enc = curve.NewEncoder(w, curve.RawEncoding())
	} else {
		enc = curve.NewEncoder(w)
	}

	toEncode := []interface{}{
		&vk.G1.Alpha,
		&vk.G1.Beta,
		&vk.G2.Beta,
		&vk.G2.Gamma,
		&vk.G1.Delta,
		&vk.G2.Delta,
		vk.G1.K,
	}
	for _, v := range toEncode {
		if err := enc.Encode(v); err != nil {
			return enc.BytesWritten(), err
		}
	}
	return enc.BytesWritten(), nil
}

func (vk *VerifyingKey) ReadFrom(r io.Reader) (int64, error) {
	dec := curve.NewDecoder(r)
	toDecode := []interface{}{
		&vk.G1.Alpha,
		&vk.G1.Beta,
		&vk.G2.Beta,
		&vk.G2.Gamma,
		&vk.G1.Delta,
		&vk.G2.Delta,
		&vk.G1.K,
	}
	for _, v := range toDecode {
		if err := dec.Decode(v); err != nil {
			return dec.BytesRead(), err
		}
	}
	return dec.BytesRead(), nil
}
