package model

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"math/big"
	"os"

	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/zstd"

	"github.com/ChatterjeeGroup-ISTA/PolyHorn/coeff"
	"github.com/ChatterjeeGroup-ISTA/PolyHorn/constraint"
	"github.com/ChatterjeeGroup-ISTA/PolyHorn/dnf"
	"github.com/ChatterjeeGroup-ISTA/PolyHorn/horn"
	"github.com/ChatterjeeGroup-ISTA/PolyHorn/variable"
)

// certificate is the cbor-serializable shape of a post-heuristic
// constraint system, keyed by a content hash of the registered
// obligations so a repeated RunOnSolver over an unchanged Horn set can
// skip witness generation entirely.
type certificate struct {
	Key    string
	Clause [][]coeffAtom
}

type coeffAtom struct {
	Sign int
	Expr []coeffTerm
}

type coeffTerm struct {
	Num, Den string
	Vars     []string
	Kinds    []int
}

func encodeConstraints(cs []dnf.DNF[constraint.Coeff]) []certificate {
	// flattened into one certificate per obligation's DNF.
	out := make([]certificate, len(cs))
	for i, d := range cs {
		cert := certificate{}
		for _, clause := range d.Clauses {
			var atoms []coeffAtom
			for _, c := range clause {
				var terms []coeffTerm
				for _, t := range c.Expr {
					vars := make([]string, len(t.Vars))
					kinds := make([]int, len(t.Vars))
					for j, v := range t.Vars {
						vars[j] = v.Name
						kinds[j] = int(v.Kind)
					}
					terms = append(terms, coeffTerm{
						Num: t.Q.Num().String(), Den: t.Q.Denom().String(),
						Vars: vars, Kinds: kinds,
					})
				}
				atoms = append(atoms, coeffAtom{Sign: int(c.Sign), Expr: terms})
			}
			cert.Clause = append(cert.Clause, atoms)
		}
		out[i] = cert
	}
	return out
}

// contentHash hashes a stable string rendering of the registered
// obligations, used as the certificate cache key: two registrations
// that would produce the same Horn obligations hash identically, so a
// repeated RunOnSolver over an unchanged registry can reuse the cached
// post-heuristic constraint system instead of regenerating witnesses.
func contentHash(obligations []horn.Obligation) string {
	h := sha256.New()
	for _, ob := range obligations {
		for _, g := range ob.LHS {
			fmt.Fprintln(h, g.Preorder())
		}
		fmt.Fprintln(h, "->", ob.RHS.Preorder())
	}
	return hex.EncodeToString(h.Sum(nil))
}

// SaveCertificate cbor-encodes and zstd-compresses the post-heuristic
// constraint system to path, mirroring the WriteTo shape of
// internal/backend/bn254/cs/r1cs_sparse.go but with zstd wrapped
// around the byte stream the way gnark's witness serialization does.
func SaveCertificate(path string, key string, cs []dnf.DNF[constraint.Coeff]) error {
	certs := encodeConstraints(cs)
	if len(certs) > 0 {
		certs[0].Key = key
	}

	var buf bytes.Buffer
	zw, err := zstd.NewWriter(&buf)
	if err != nil {
		return fmt.Errorf("model: new zstd writer: %w", err)
	}
	if err := cbor.NewEncoder(zw).Encode(certs); err != nil {
		_ = zw.Close()
		return fmt.Errorf("model: cbor-encode certificate: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("model: close zstd writer: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("model: write certificate %s: %w", path, err)
	}
	return nil
}

// LoadCertificate reverses SaveCertificate, returning (nil, false, nil)
// when the file doesn't exist or its stored key doesn't match want —
// a cache miss, not an error.
func LoadCertificate(path string, want string) ([]dnf.DNF[constraint.Coeff], bool, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("model: read certificate %s: %w", path, err)
	}

	zr, err := zstd.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, false, fmt.Errorf("model: new zstd reader: %w", err)
	}
	defer zr.Close()

	var certs []certificate
	dec := cbor.NewDecoder(zr)
	if err := dec.Decode(&certs); err != nil && err != io.EOF {
		return nil, false, fmt.Errorf("model: cbor-decode certificate: %w", err)
	}
	if len(certs) == 0 || certs[0].Key != want {
		return nil, false, nil
	}

	out := make([]dnf.DNF[constraint.Coeff], len(certs))
	for i, cert := range certs {
		out[i] = decodeCertificate(cert)
	}
	return out, true, nil
}

func decodeExpr(terms []coeffTerm) coeff.Expr {
	e := coeff.Zero()
	for _, t := range terms {
		q := new(big.Rat)
		if _, ok := q.SetString(t.Num + "/" + t.Den); !ok {
			q.SetInt64(0)
		}
		vars := make([]variable.Variable, len(t.Vars))
		for i, name := range t.Vars {
			vars[i] = variable.Variable{Name: name, Kind: variable.Kind(t.Kinds[i])}
		}
		e = e.Add(coeff.Expr{coeff.NewTerm(q, vars)})
	}
	return e.Canon()
}

func decodeCertificate(cert certificate) dnf.DNF[constraint.Coeff] {
	clauses := make([]dnf.Clause[constraint.Coeff], len(cert.Clause))
	for i, atoms := range cert.Clause {
		clause := make(dnf.Clause[constraint.Coeff], len(atoms))
		for j, a := range atoms {
			clause[j] = constraint.Coeff{Expr: decodeExpr(a.Expr), Sign: constraint.Sign(a.Sign)}
		}
		clauses[i] = clause
	}
	return dnf.DNF[constraint.Coeff]{Clauses: clauses}
}
