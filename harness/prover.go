package harness

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jam-duna/fraudproof/access"
	"github.com/jam-duna/fraudproof/common"
	"github.com/jam-duna/fraudproof/config"
	"github.com/jam-duna/fraudproof/crypto"
)

// ProveRequest is what a proof system needs to re-run a predicate.
type ProveRequest struct {
	Bytecode     []byte
	Access       *access.Access
	N            uint32
	PublicValues []byte
}

// Proof carries what Verify needs to replay the run. Access has no wire
// form; a decoded proof verifies against the empty access unless the
// caller attaches the one it was proven with.
type Proof struct {
	Predicate    common.ContentAddress `json:"predicate"`
	PublicValues []byte                `json:"public_values"`
	Data         []byte                `json:"data"`
	Bytecode     []byte                `json:"bytecode"`
	N            uint32                `json:"n"`

	Access *access.Access `json:"-"`
}

// Prover proves and verifies executions in an external proof system.
type Prover interface {
	Prove(ctx context.Context, req ProveRequest) (*Proof, error)
	Verify(ctx context.Context, proof *Proof) error
}

// ReplayProver "proves" by re-executing the predicate and committing to the
// predicate address and public values; Verify executes it once more. It is
// only as trustworthy as the machine running it.
type ReplayProver struct {
	cfg config.Config
}

func NewReplayProver(cfg config.Config) *ReplayProver {
	return &ReplayProver{cfg: cfg}
}

func (p *ReplayProver) replay(ctx context.Context, req ProveRequest) ([]byte, error) {
	h, err := New(p.cfg)
	if err != nil {
		return nil, err
	}
	report, err := h.Execute(ctx, req.Bytecode, req.Access)
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(report.Encoded, req.PublicValues) {
		return nil, fmt.Errorf("public values mismatch: replay %x, claimed %x", report.Encoded, req.PublicValues)
	}
	return report.Encoded, nil
}

func commitment(predicate common.ContentAddress, publicValues []byte) []byte {
	d := crypto.SHA256(append(predicate.Bytes(), publicValues...))
	return d[:]
}

func (p *ReplayProver) Prove(ctx context.Context, req ProveRequest) (*Proof, error) {
	pv, err := p.replay(ctx, req)
	if err != nil {
		return nil, err
	}
	addr := common.ContentAddress(crypto.SHA256(req.Bytecode))
	return &Proof{
		Predicate:    addr,
		PublicValues: pv,
		Data:         commitment(addr, pv),
		Bytecode:     req.Bytecode,
		N:            req.N,
		Access:       req.Access,
	}, nil
}

func (p *ReplayProver) Verify(ctx context.Context, proof *Proof) error {
	if proof == nil {
		return fmt.Errorf("nil proof")
	}
	if !bytes.Equal(proof.Data, commitment(proof.Predicate, proof.PublicValues)) {
		return fmt.Errorf("commitment mismatch for predicate %s", proof.Predicate)
	}
	if common.ContentAddress(crypto.SHA256(proof.Bytecode)) != proof.Predicate {
		return fmt.Errorf("proof does not carry predicate %s", proof.Predicate)
	}
	_, err := p.replay(ctx, ProveRequest{
		Bytecode:     proof.Bytecode,
		Access:       proof.Access,
		N:            proof.N,
		PublicValues: proof.PublicValues,
	})
	return err
}
