// Package legacy adapts the historic, name-based metadata dialect (spec
// V8 through V13) to the metadata.Info capability set. These metadata
// versions name types as plain strings ("Balance", "Vec<AccountId>")
// rather than registry ids, so resolving a shape additionally needs an
// external type registry (package registry) overlaid by spec version
// (spec §1, §4.2 "Historic").
package legacy

import (
	"fmt"

	"github.com/paritytech/frame-decode/hashers"
	"github.com/paritytech/frame-decode/metadata"
	"github.com/paritytech/frame-decode/scale"
	"github.com/paritytech/frame-decode/scaleinfo"
)

// Name is the type identifier for the legacy dialect: the textual type
// expression as it appears in the metadata, e.g. "Compact<Balance>".
type Name = string

// CallArg names one call argument by its textual type.
type CallArg struct {
	Name string
	Type Name
}

// Call is one pallet call, by its index within the pallet.
type Call struct {
	Index uint8
	Name  string
	Args  []CallArg
}

// StorageEntry mirrors metadata.StorageEntryShape but with textual types,
// pre-resolution. HasherKeys holds the hasher name(s) exactly as the
// V8-V13 metadata spells them ("Blake2_128Concat", ...) - one per key type,
// or a single entry for the legacy "one hasher over a tuple" shape (spec
// §4.4, §9).
type StorageEntry struct {
	Name       string
	HasherKeys []string
	KeyTypes   []Name
	ValueType  Name
	Default    []byte
}

// Pallet is one pallet's legacy metadata.
type Pallet struct {
	Name    string
	Index   uint8
	Calls   []Call
	Storage []StorageEntry
}

// Resolver resolves a legacy type Name to its structural shape. It is
// supplied by package registry, which overlays the metadata's own
// (rare) inline definitions with a user-supplied, spec-version-scoped
// type registry (spec §9 "External type registries").
type Resolver = scaleinfo.TypeResolver[Name]

// Metadata wraps a V8-V13 metadata instance plus the resolver needed to
// make sense of its textual type expressions.
type Metadata struct {
	Spec        uint32
	Pallets_    []Pallet
	AddressType Name
	SigType     Name
	// Extensions is the fixed, unversioned signed-extra field list for
	// extrinsic version 4 under the historic dialect (spec §4.4; the
	// extension-versioning mechanism is a modern-only concept).
	Extensions []metadata.ExtensionEntry[Name]
	Constants_ map[[2]string]constEntry
	Customs    map[string]customEntry
	Apis       map[[2]string]apiEntry
	Views      map[[2]string]apiEntry
}

type constEntry struct {
	Type  Name
	Value []byte
}
type customEntry = constEntry
type apiEntry struct {
	Args       []CallArg
	ReturnType Name
}

var _ metadata.Info[Name] = (*Metadata)(nil)

func (m *Metadata) SpecVersion() uint32 { return m.Spec }

func (m *Metadata) SupportedExtrinsicVersions() []uint8 { return []uint8{4} }

func (m *Metadata) ExtrinsicShapeFor(version uint8) (metadata.ExtrinsicShape[Name], error) {
	if version != 4 {
		return metadata.ExtrinsicShape[Name]{}, scale.NewError(scale.KindUnsupportedMetadataVersion,
			fmt.Sprintf("extrinsic version %d is not supported", version), nil)
	}
	return metadata.ExtrinsicShape[Name]{
		Version:       version,
		AddressType:   m.AddressType,
		SignatureType: m.SigType,
		// The historic dialect has no per-version extension list; the
		// single fixed list applies regardless of the extension-version
		// byte, since that byte is itself a modern-only concept. Keying
		// it under 0 lets extrinsic.Decode use one lookup path for both
		// dialects.
		ExtensionsByVer: map[uint8][]metadata.ExtensionEntry[Name]{0: m.Extensions},
		Calls:           callResolver{m},
	}, nil
}

type callResolver struct{ m *Metadata }

func (c callResolver) ResolveCall(palletIndex, callIndex uint8) (string, string, []metadata.ArgType[Name], error) {
	for _, p := range c.m.Pallets_ {
		if p.Index != palletIndex {
			continue
		}
		for _, call := range p.Calls {
			if call.Index != callIndex {
				continue
			}
			args := make([]metadata.ArgType[Name], len(call.Args))
			for i, a := range call.Args {
				args[i] = metadata.ArgType[Name]{Name: a.Name, Type: a.Type}
			}
			return p.Name, call.Name, args, nil
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

func (m *Metadata) StorageEntries(pallet string) ([]metadata.StorageEntryShape[Name], error) {
	p, err := m.findPallet(pallet)
	if err != nil {
		return nil, err
	}
	out := make([]metadata.StorageEntryShape[Name], len(p.Storage))
	for i, e := range p.Storage {
		shape, err := m.toShape(e)
		if err != nil {
			return nil, err
		}
		out[i] = shape
	}
	return out, nil
}

func (m *Metadata) StorageEntry(pallet, entry string) (metadata.StorageEntryShape[Name], error) {
	p, err := m.findPallet(pallet)
	if err != nil {
		return metadata.StorageEntryShape[Name]{}, err
	}
	for _, e := range p.Storage {
		if e.Name == entry {
			return m.toShape(e)
		}
	}
	return metadata.StorageEntryShape[Name]{}, scale.NewError(scale.KindStorageEntryNotFound,
		fmt.Sprintf("%s.%s", pallet, entry), nil)
}

// toShape resolves each of e's textual HasherKeys into a hashers.Kind
// (spec §4.4's StorageHasher enum, as named by V8-V13 metadata).
func (m *Metadata) toShape(e StorageEntry) (metadata.StorageEntryShape[Name], error) {
	hs := make([]hashers.Kind, len(e.HasherKeys))
	for i, name := range e.HasherKeys {
		kind, ok := hashers.ByName(name)
		if !ok {
			return metadata.StorageEntryShape[Name]{}, scale.NewError(scale.KindTypeNotFound,
				fmt.Sprintf("%s.%s: unrecognised hasher %q", e.Name, name, name), nil)
		}
		hs[i] = kind
	}
	return metadata.StorageEntryShape[Name]{
		Name:      e.Name,
		Hashers:   hs,
		KeyTypes:  e.KeyTypes,
		ValueType: e.ValueType,
		Default:   e.Default,
	}, nil
}

func (m *Metadata) RuntimeApiMethod(apiTrait, method string) ([]metadata.ArgType[Name], Name, error) {
	e, ok := m.Apis[[2]string{apiTrait, method}]
	if !ok {
		return nil, "", scale.NewError(scale.KindTypeNotFound, fmt.Sprintf("runtime api %s.%s", apiTrait, method), nil)
	}
	return toArgTypes(e.Args), e.ReturnType, nil
}

func (m *Metadata) Constant(pallet, name string) (Name, []byte, error) {
	e, ok := m.Constants_[[2]string{pallet, name}]
	if !ok {
		return "", nil, scale.NewError(scale.KindTypeNotFound, fmt.Sprintf("constant %s.%s", pallet, name), nil)
	}
	return e.Type, e.Value, nil
}

func (m *Metadata) CustomValue(name string) (Name, []byte, error) {
	e, ok := m.Customs[name]
	if !ok {
		return "", nil, scale.NewError(scale.KindTypeNotFound, fmt.Sprintf("custom value %s", name), nil)
	}
	return e.Type, e.Value, nil
}

func (m *Metadata) ViewFunction(pallet, name string) ([]metadata.ArgType[Name], Name, error) {
	e, ok := m.Views[[2]string{pallet, name}]
	if !ok {
		return nil, "", scale.NewError(scale.KindTypeNotFound, fmt.Sprintf("view function %s.%s", pallet, name), nil)
	}
	return toArgTypes(e.Args), e.ReturnType, nil
}

func toArgTypes(args []CallArg) []metadata.ArgType[Name] {
	out := make([]metadata.ArgType[Name], len(args))
	for i, a := range args {
		out[i] = metadata.ArgType[Name]{Name: a.Name, Type: a.Type}
	}
	return out
}
