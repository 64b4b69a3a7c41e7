// Package extrinsic implements the extrinsic decoder (component F):
// the compact-length-prefixed, optionally-signed call envelope that
// wraps every submitted transaction (spec §4.6).
package extrinsic

import (
	"fmt"

	"github.com/paritytech/frame-decode/metadata"
	"github.com/paritytech/frame-decode/scale"
	"github.com/paritytech/frame-decode/scaleinfo"
)

// NamedArg is one decoded, named value: a call argument or an extension.
type NamedArg[T comparable] struct {
	Name  string
	Type  T
	Value *scaleinfo.Value
	Range scale.Range
}

// Info is the fully decoded shape of one extrinsic.
type Info[T comparable] struct {
	// Empty reports the zero-byte extrinsic corner case (spec §4.6 step
	// 1): when true Range is the empty range just past the length prefix
	// and every other field is the zero value.
	Empty bool

	Version uint8
	Signed  bool

	AddressType   T
	Address       *scaleinfo.Value
	SignatureType T
	Signature     *scaleinfo.Value

	ExtensionVersion uint8
	Extensions       []NamedArg[T]

	PalletIndex uint8
	CallIndex   uint8
	PalletName  string
	CallName    string
	Args        []NamedArg[T]

	// Range spans the whole decoded body, excluding the leading length
	// prefix (spec §4.6 step 1).
	Range scale.Range
	// CallRange spans from the pallet-index byte to the end of the last
	// call argument; CallArgsRange spans just the argument bytes, from
	// the first argument's first byte to the same end (spec §3, §8's
	// CallRange ⊇ CallArgsRange coverage invariant).
	CallRange     scale.Range
	CallArgsRange scale.Range
}

// Decode parses one SCALE-encoded extrinsic (spec §4.6).
func Decode[T comparable](buf []byte, md metadata.Info[T], resolver scaleinfo.TypeResolver[T]) (*Info[T], error) {
	c := scale.NewCursor(buf)

	length, err := c.ReadCompactUint32()
	if err != nil {
		return nil, fmt.Errorf("extrinsic length prefix: %w", err)
	}
	if length == 0 {
		empty := scale.Range{Start: c.Offset(), End: c.Offset()}
		return &Info[T]{Empty: true, Range: empty}, nil
	}

	bodyStart := c.Offset()
	bodyEnd := bodyStart + int(length)
	if bodyEnd > len(buf) {
		return nil, scale.NewError(scale.KindTruncated, "extrinsic body shorter than its length prefix", nil)
	}

	versionByte, err := c.ReadU8()
	if err != nil {
		return nil, fmt.Errorf("extrinsic version byte: %w", err)
	}
	signed := versionByte&0x80 != 0
	version := versionByte & 0x7f

	shape, err := md.ExtrinsicShapeFor(version)
	if err != nil {
		return nil, err
	}

	info := &Info[T]{Version: version, Signed: signed}

	if signed {
		info.AddressType = shape.AddressType
		addr, err := scaleinfo.Walk(c, resolver, shape.AddressType, scaleinfo.ValueVisitor{})
		if err != nil {
			return nil, fmt.Errorf("extrinsic address: %w", err)
		}
		info.Address = addr

		info.SignatureType = shape.SignatureType
		sig, err := scaleinfo.Walk(c, resolver, shape.SignatureType, scaleinfo.ValueVisitor{})
		if err != nil {
			return nil, fmt.Errorf("extrinsic signature: %w", err)
		}
		info.Signature = sig

		extVersion := uint8(0)
		if shape.HasExtensionVersionByte {
			extVersion, err = c.ReadU8()
			if err != nil {
				return nil, fmt.Errorf("extrinsic extension-version byte: %w", err)
			}
		}
		info.ExtensionVersion = extVersion

		extList, ok := shape.ExtensionsByVer[extVersion]
		if !ok {
			return nil, scale.NewError(scale.KindUnsupportedMetadataVersion,
				fmt.Sprintf("no extension list for extension version %d", extVersion), nil)
		}
		info.Extensions = make([]NamedArg[T], len(extList))
		for i, ext := range extList {
			val, err := scaleinfo.Walk(c, resolver, ext.Type, scaleinfo.ValueVisitor{})
			if err != nil {
				return nil, fmt.Errorf("extrinsic extension %q: %w", ext.Name, err)
			}
			info.Extensions[i] = NamedArg[T]{Name: ext.Name, Type: ext.Type, Value: val, Range: val.Range}
		}
	}

	callStart := c.Offset()
	palletIndex, err := c.ReadU8()
	if err != nil {
		return nil, fmt.Errorf("extrinsic call pallet index: %w", err)
	}
	callIndex, err := c.ReadU8()
	if err != nil {
		return nil, fmt.Errorf("extrinsic call index: %w", err)
	}
	info.PalletIndex = palletIndex
	info.CallIndex = callIndex

	palletName, callName, args, err := shape.Calls.ResolveCall(palletIndex, callIndex)
	if err != nil {
		return nil, err
	}
	info.PalletName = palletName
	info.CallName = callName

	argsStart := c.Offset()
	info.Args = make([]NamedArg[T], len(args))
	for i, arg := range args {
		val, err := scaleinfo.Walk(c, resolver, arg.Type, scaleinfo.ValueVisitor{})
		if err != nil {
			return nil, fmt.Errorf("extrinsic call arg %q: %w", arg.Name, err)
		}
		info.Args[i] = NamedArg[T]{Name: arg.Name, Type: arg.Type, Value: val, Range: val.Range}
	}
	argsEnd := c.Offset()
	info.CallRange = scale.Range{Start: callStart, End: argsEnd}
	info.CallArgsRange = scale.Range{Start: argsStart, End: argsEnd}

	if c.Offset() < bodyEnd {
		return nil, scale.NewError(scale.KindTrailingBytes,
			fmt.Sprintf("%d bytes remaining in extrinsic body", bodyEnd-c.Offset()), nil)
	}
	if c.Offset() > bodyEnd {
		return nil, scale.NewError(scale.KindTruncated, "extrinsic body overrun", nil)
	}

	info.Range = scale.Range{Start: bodyStart, End: bodyEnd}
	return info, nil
}
