package dimuplot

import (
	"context"
	"fmt"

	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/rtree"
)

// ROOTSource reads the muon branches of a NanoAOD tree.
type ROOTSource struct {
	fname string
	tree  string
	n     int64
}

// OpenROOT checks that fname holds the named tree and returns a source
// over its entries. Each Range call opens its own file handle.
func OpenROOT(fname, tree string) (*ROOTSource, error) {
	f, t, err := openTree(fname, tree)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return &ROOTSource{
		fname: fname,
		tree:  tree,
		n:     t.Entries(),
	}, nil
}

func openTree(fname, name string) (*groot.File, rtree.Tree, error) {
	f, err := groot.Open(fname)
	if err != nil {
		return nil, nil, fmt.Errorf("could not open ROOT file %q: %w", fname, err)
	}

	obj, err := f.Get(name)
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("could not find tree %q in %q: %w", name, fname, err)
	}

	t, ok := obj.(rtree.Tree)
	if !ok {
		f.Close()
		return nil, nil, fmt.Errorf("object %q in %q is not a tree (%T)", name, fname, obj)
	}
	return f, t, nil
}

func (s *ROOTSource) Len() int64 { return s.n }

func (s *ROOTSource) Range(ctx context.Context, beg, end int64, fn func(int64, *Event) error) error {
	if beg >= end {
		return nil
	}

	f, t, err := openTree(s.fname, s.tree)
	if err != nil {
		return err
	}
	defer f.Close()

	var (
		ev    Event
		rvars = []rtree.ReadVar{
			{Name: "nMuon", Value: &ev.NMuon},
			{Name: "Muon_pt", Value: &ev.Pt},
			{Name: "Muon_eta", Value: &ev.Eta},
			{Name: "Muon_phi", Value: &ev.Phi},
			{Name: "Muon_mass", Value: &ev.Mass},
			{Name: "Muon_charge", Value: &ev.Charge},
		}
	)

	r, err := rtree.NewReader(t, rvars, rtree.WithRange(beg, end))
	if err != nil {
		return fmt.Errorf("could not create reader for %q: %w", s.fname, err)
	}
	defer r.Close()

	err = r.Read(func(rctx rtree.RCtx) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return fn(rctx.Entry, &ev)
	})
	if err != nil {
		return fmt.Errorf("could not read entries [%d, %d) of %q: %w", beg, end, s.fname, err)
	}
	return nil
}

func (s *ROOTSource) Close() error { return nil }
