// Package modern adapts the self-describing metadata dialect (spec V14
// and later) to the metadata.Info capability set. Type identifiers are
// the registry's own 32-bit indices, resolved by scaleinfo.TypeResolver
// built from the embedded registry - no external type-registry file is
// ever needed for this dialect (spec §1, §4.2 "Modern").
package modern

import (
	"fmt"

	"github.com/paritytech/frame-decode/metadata"
	"github.com/paritytech/frame-decode/scale"
	"github.com/paritytech/frame-decode/scaleinfo"
)

// TypeDef is one entry of the embedded type registry: an id plus its
// already-resolved structural shape. Path and Params back the rewriting
// rules spec §4.2 calls out (Era normalization, Call/Event re-rooting);
// they are informational only; Shape is authoritative for decoding.
type TypeDef struct {
	ID     uint32
	Path   []string
	Params []uint32
	Shape  scaleinfo.ResolvedShape[uint32]
}

// Pallet is one pallet's modern metadata: its index, storage entries, and
// call/event/constant/custom-value lookups for it.
type Pallet struct {
	Name    string
	Index   uint8
	Storage []metadata.StorageEntryShape[uint32]
	// CallTypeID is the Variant type id whose cases are this pallet's
	// calls, keyed by the enclosing top-level Call enum's per-pallet
	// variant (spec §4.2 "Call/Event names re-rooted per pallet").
	CallTypeID uint32
}

// Metadata wraps a V14+ metadata instance. Types maps every registry id to
// its resolved shape - the "embedded registry" spec §3 describes.
type Metadata struct {
	Spec        uint32
	Types       map[uint32]TypeDef
	Pallets_    []Pallet
	AddressType uint32
	SigType     uint32
	// ExtensionsByVersion maps an extension-version byte (read from the
	// extrinsic itself, spec §4.6 "modern variant") to its ordered
	// extension list.
	ExtensionsByVersion map[uint8][]metadata.ExtensionEntry[uint32]
	Constants           map[[2]string]constantEntry
	CustomValues        map[string]customEntry
	RuntimeApis         map[[2]string]apiEntry
	ViewFunctions       map[[2]string]viewEntry
}

type constantEntry struct {
	Type  uint32
	Value []byte
}
type customEntry struct {
	Type  uint32
	Value []byte
}
type apiEntry struct {
	Args       []metadata.ArgType[uint32]
	ReturnType uint32
}
type viewEntry = apiEntry

var _ metadata.Info[uint32] = (*Metadata)(nil)

func (m *Metadata) SpecVersion() uint32 { return m.Spec }

// Resolver returns a scaleinfo.TypeResolver backed by m.Types, the
// resolver callers pass to the walker and to extrinsic/storagekey decode
// (spec §4.2 "Modern": indexes into the metadata's own registry).
func (m *Metadata) Resolver() scaleinfo.TypeResolver[uint32] {
	return scaleinfo.ResolverFunc[uint32](func(id uint32) (scaleinfo.ResolvedShape[uint32], error) {
		def, ok := m.Types[id]
		if !ok {
			return scaleinfo.ResolvedShape[uint32]{}, scale.NewError(scale.KindTypeNotFound, fmt.Sprintf("type id %d", id), nil)
		}
		return def.Shape, nil
	})
}

func (m *Metadata) SupportedExtrinsicVersions() []uint8 { return []uint8{4} }

func (m *Metadata) ExtrinsicShapeFor(version uint8) (metadata.ExtrinsicShape[uint32], error) {
	if version != 4 {
		return metadata.ExtrinsicShape[uint32]{}, scale.NewError(scale.KindUnsupportedMetadataVersion,
			fmt.Sprintf("extrinsic version %d is not supported", version), nil)
	}
	return metadata.ExtrinsicShape[uint32]{
		Version:                 version,
		AddressType:             m.AddressType,
		SignatureType:           m.SigType,
		ExtensionsByVer:         m.ExtensionsByVersion,
		HasExtensionVersionByte: true,
		Calls:                   callResolver{m},
	}, nil
}

type callResolver struct{ m *Metadata }

func (c callResolver) ResolveCall(palletIndex, callIndex uint8) (string, string, []metadata.ArgType[uint32], error) {
	for _, p := range c.m.Pallets_ {
		if p.Index != palletIndex {
			continue
		}
		shape, err := c.m.Resolver().Resolve(p.CallTypeID)
		if err != nil {
			return "", "", nil, err
		}
		if shape.Tag != scaleinfo.TagVariant {
			return "", "", nil, scale.NewError(scale.KindCallNotFound, "pallet call type is not a variant", nil)
		}
		for _, cs := range shape.Cases {
			if cs.Index != callIndex {
				continue
			}
			args := make([]metadata.ArgType[uint32], len(cs.Fields))
			for i, f := range cs.Fields {
				args[i] = metadata.ArgType[uint32]{Name: f.Name, Type: f.ID}
			}
			return p.Name, cs.Name, args, nil
		}
		return "", "", nil, scale.NewError(scale.KindCallNotFound,
			fmt.Sprintf("pallet %q has no call index %d", p.Name, callIndex), nil)
	}
	return "", "", nil, scale.NewError(scale.KindPalletNotFound, fmt.Sprintf("pallet index %d", palletIndex), nil)
}

func (m *Metadata) Pallets() []string {
	out := make([]string, len(m.Pallets_))
	for i, p := range m.Pallets_ {
		out[i] = p.Name
	}
	return out
}

func (m *Metadata) findPallet(name string) (*Pallet, error) {
	for i := range m.Pallets_ {
		if m.Pallets_[i].Name == name {
			return &m.Pallets_[i], nil
		}
	}
	return nil, scale.NewError(scale.KindPalletNotFound, name, nil)
}

func (m *Metadata) StorageEntries(pallet string) ([]metadata.StorageEntryShape[uint32], error) {
	p, err := m.findPallet(pallet)
	if err != nil {
		return nil, err
	}
	return p.Storage, nil
}

func (m *Metadata) StorageEntry(pallet, entry string) (metadata.StorageEntryShape[uint32], error) {
	p, err := m.findPallet(pallet)
	if err != nil {
		return metadata.StorageEntryShape[uint32]{}, err
	}
	for _, e := range p.Storage {
		if e.Name == entry {
			return e, nil
		}
	}
	return metadata.StorageEntryShape[uint32]{}, scale.NewError(scale.KindStorageEntryNotFound,
		fmt.Sprintf("%s.%s", pallet, entry), nil)
}

func (m *Metadata) RuntimeApiMethod(apiTrait, method string) ([]metadata.ArgType[uint32], uint32, error) {
	e, ok := m.RuntimeApis[[2]string{apiTrait, method}]
	if !ok {
		return nil, 0, scale.NewError(scale.KindTypeNotFound, fmt.Sprintf("runtime api %s.%s", apiTrait, method), nil)
	}
	return e.Args, e.ReturnType, nil
}

func (m *Metadata) Constant(pallet, name string) (uint32, []byte, error) {
	e, ok := m.Constants[[2]string{pallet, name}]
	if !ok {
		return 0, nil, scale.NewError(scale.KindTypeNotFound, fmt.Sprintf("constant %s.%s", pallet, name), nil)
	}
	return e.Type, e.Value, nil
}

func (m *Metadata) CustomValue(name string) (uint32, []byte, error) {
	e, ok := m.CustomValues[name]
	if !ok {
		return 0, nil, scale.NewError(scale.KindTypeNotFound, fmt.Sprintf("custom value %s", name), nil)
	}
	return e.Type, e.Value, nil
}

func (m *Metadata) ViewFunction(pallet, name string) ([]metadata.ArgType[uint32], uint32, error) {
	e, ok := m.ViewFunctions[[2]string{pallet, name}]
	if !ok {
		return nil, 0, scale.NewError(scale.KindTypeNotFound, fmt.Sprintf("view function %s.%s", pallet, name), nil)
	}
	return e.Args, e.ReturnType, nil
}
