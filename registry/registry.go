// Package registry loads the user-supplied, YAML-encoded type registry
// that the historic metadata dialect needs to resolve its type names
// (spec §6 "Type registry file", §9 "Name-based legacy resolver"). It
// builds a scaleinfo.TypeResolver[legacy.Name] that composes:
//
//  1. a baseline projected from the metadata's own textual signatures,
//  2. the registry's top-level "global" types, and
//  3. an ordered stack of "forSpec" overlays selected by spec version,
//
// later entries shadowing earlier ones by name, with positional generic
// substitution for names like "Vec<T>".
package registry

import (
	"fmt"
	"regexp"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
	"k8s.io/klog/v2"

	"github.com/paritytech/frame-decode/hashers"
	"github.com/paritytech/frame-decode/metadata/legacy"
	"github.com/paritytech/frame-decode/scale"
	"github.com/paritytech/frame-decode/scaleinfo"
)

// resolverCacheSize bounds the memoized-lookup cache CachedResolver
// keeps per overlay; a single metadata instance's registry rarely names
// more than a few hundred distinct types (spec §4.2, "repeated lookups
// must be cheap").
const resolverCacheSize = 512

// File is the parsed shape of the type-registry YAML document (spec §6).
type File struct {
	Global  TypeSet       `yaml:"global"`
	ForSpec []SpecOverlay `yaml:"forSpec"`
}

// TypeSet is a named bag of type definitions; Types values are either a
// bare string (possibly a generic alias like "Vec<T>") or a structured
// definition decoded into RawDef.
type TypeSet struct {
	Types map[string]RawDef `yaml:"types"`
}

// SpecOverlay is one forSpec entry: a version range plus the types it
// contributes or overrides.
type SpecOverlay struct {
	Range [2]*uint32 `yaml:"range"`
	Types map[string]RawDef `yaml:"types"`
}

// RawDef is a type definition as it appears in YAML: either a plain
// alias string, a composite field map, or an enum.
type RawDef struct {
	Alias     string
	Fields    map[string]string
	EnumList  []string
	EnumMap   map[string]string
}

func (d *RawDef) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		return value.Decode(&d.Alias)
	case yaml.MappingNode:
		var m map[string]yaml.Node
		if err := value.Decode(&m); err != nil {
			return err
		}
		if enumNode, ok := m["_enum"]; ok {
			switch enumNode.Kind {
			case yaml.SequenceNode:
				return enumNode.Decode(&d.EnumList)
			case yaml.MappingNode:
				return enumNode.Decode(&d.EnumMap)
			default:
				return fmt.Errorf("_enum must be a list or map")
			}
		}
		fields := make(map[string]string, len(m))
		for k, v := range m {
			var s string
			if err := v.Decode(&s); err != nil {
				return fmt.Errorf("field %q: %w", k, err)
			}
			fields[k] = s
		}
		d.Fields = fields
		return nil
	default:
		return fmt.Errorf("unsupported type definition node kind %v", value.Kind)
	}
}

// Load parses a type-registry YAML document. A YAML parse error, including
// one from a malformed type definition, is returned as soon as it occurs.
// After parsing, every forSpec entry is checked for a missing range low
// bound, and those problems are aggregated with multierr rather than
// stopping at the first one.
func Load(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("registry: parse: %w", err)
	}
	var errs error
	for i, ov := range f.ForSpec {
		if ov.Range[0] == nil {
			errs = multierr.Append(errs, fmt.Errorf("forSpec[%d]: range low bound is required", i))
		}
	}
	if errs != nil {
		return nil, errs
	}
	return &f, nil
}

// inRange reports whether spec falls within a forSpec range; a nil high
// bound means "open ended".
func inRange(r [2]*uint32, spec uint32) bool {
	if r[0] != nil && spec < *r[0] {
		return false
	}
	if r[1] != nil && spec > *r[1] {
		return false
	}
	return true
}

// Overlay builds the merged name -> RawDef map for one spec version: the
// baseline, then global, then every matching forSpec overlay in order,
// each shadowing earlier entries by name (spec §9).
func (f *File) Overlay(baseline map[string]RawDef, spec uint32) map[string]RawDef {
	merged := make(map[string]RawDef, len(baseline)+len(f.Global.Types))
	for k, v := range baseline {
		merged[k] = v
	}
	for k, v := range f.Global.Types {
		merged[k] = v
	}
	applied := 0
	for _, ov := range f.ForSpec {
		if !inRange(ov.Range, spec) {
			continue
		}
		for k, v := range ov.Types {
			merged[k] = v
		}
		applied++
	}
	klog.V(1).Infof("registry: spec version %d matched %d forSpec overlay(s), %d types total", spec, applied, len(merged))
	return merged
}

// Resolver builds a scaleinfo.TypeResolver over the merged overlay for
// one spec version. Names may carry positional generic parameters, e.g.
// "Vec<AccountId>" resolving "Vec<T>" with T substituted by "AccountId".
// The returned resolver memoizes lookups via CachedResolver, since a
// historic name resolution walks an alias chain and splits generic
// parameters on every call (spec §4.2, "repeated lookups must be
// cheap").
func Resolver(overlay map[string]RawDef) scaleinfo.TypeResolver[legacy.Name] {
	r := &resolver{overlay: overlay}
	return CachedResolver(scaleinfo.ResolverFunc[legacy.Name](r.resolve))
}

// CachedResolver wraps inner with an LRU memoizing cache keyed by type
// name, so repeated resolutions of the same name (common across many
// extrinsics/storage keys decoded against one registry) skip re-walking
// the alias/generic-substitution chain.
func CachedResolver(inner scaleinfo.TypeResolver[legacy.Name]) scaleinfo.TypeResolver[legacy.Name] {
	cache, err := lru.New[legacy.Name, scaleinfo.ResolvedShape[legacy.Name]](resolverCacheSize)
	if err != nil {
		// Only a non-positive size can fail construction here, and
		// resolverCacheSize is a fixed positive constant.
		panic(err)
	}
	return scaleinfo.ResolverFunc[legacy.Name](func(name legacy.Name) (scaleinfo.ResolvedShape[legacy.Name], error) {
		if shape, ok := cache.Get(name); ok {
			return shape, nil
		}
		shape, err := inner.Resolve(name)
		if err != nil {
			return shape, err
		}
		cache.Add(name, shape)
		return shape, nil
	})
}

type resolver struct {
	overlay map[string]RawDef
}

func (r *resolver) resolve(name legacy.Name) (scaleinfo.ResolvedShape[legacy.Name], error) {
	base, args := splitGeneric(name)
	def, ok := r.overlay[name]
	if !ok {
		def, ok = r.overlay[genericTemplate(base, len(args))]
	}
	if !ok {
		if shape, ok := builtinShape(name); ok {
			return shape, nil
		}
		return scaleinfo.ResolvedShape[legacy.Name]{}, scale.NewError(scale.KindTypeNotFound, name, nil)
	}
	return r.shapeOf(def, args)
}

// builtinShape recognises type names that terminate an alias chain
// without any further registry entry: the primitive names and "[T; N]"
// fixed-size arrays. "Compact<T>", "Vec<T>" and "(A, B, ...)" are not
// built in; they resolve only through overlay entries.
func builtinShape(name string) (scaleinfo.ResolvedShape[legacy.Name], bool) {
	if p, ok := primitiveByName(name); ok {
		return scaleinfo.ResolvedShape[legacy.Name]{Tag: scaleinfo.TagPrimitive, Primitive: p}, true
	}
	if elem, n, ok := parseFixedArray(name); ok {
		return scaleinfo.ResolvedShape[legacy.Name]{Tag: scaleinfo.TagArray, Element: elem, ArrayLen: n}, true
	}
	return scaleinfo.ResolvedShape[legacy.Name]{}, false
}

func primitiveByName(name string) (scaleinfo.PrimitiveKind, bool) {
	switch name {
	case "bool":
		return scaleinfo.PrimBool, true
	case "char":
		return scaleinfo.PrimChar, true
	case "str", "String", "Text":
		return scaleinfo.PrimStr, true
	case "u8":
		return scaleinfo.PrimU8, true
	case "u16":
		return scaleinfo.PrimU16, true
	case "u32":
		return scaleinfo.PrimU32, true
	case "u64":
		return scaleinfo.PrimU64, true
	case "u128":
		return scaleinfo.PrimU128, true
	case "u256":
		return scaleinfo.PrimU256, true
	case "i8":
		return scaleinfo.PrimI8, true
	case "i16":
		return scaleinfo.PrimI16, true
	case "i32":
		return scaleinfo.PrimI32, true
	case "i64":
		return scaleinfo.PrimI64, true
	case "i128":
		return scaleinfo.PrimI128, true
	case "i256":
		return scaleinfo.PrimI256, true
	default:
		return 0, false
	}
}

// parseFixedArray parses "[u8; 32]" into ("u8", 32, true).
func parseFixedArray(name string) (string, int, bool) {
	if !strings.HasPrefix(name, "[") || !strings.HasSuffix(name, "]") {
		return "", 0, false
	}
	inner := name[1 : len(name)-1]
	semi := strings.LastIndexByte(inner, ';')
	if semi < 0 {
		return "", 0, false
	}
	elem := strings.TrimSpace(inner[:semi])
	var n int
	if _, err := fmt.Sscanf(strings.TrimSpace(inner[semi+1:]), "%d", &n); err != nil {
		return "", 0, false
	}
	return elem, n, true
}

func (r *resolver) shapeOf(def RawDef, args []string) (scaleinfo.ResolvedShape[legacy.Name], error) {
	switch {
	case def.Alias != "":
		return r.resolve(substitute(def.Alias, args))
	case def.Fields != nil:
		fields := make([]scaleinfo.CompositeField[legacy.Name], 0, len(def.Fields))
		for name, typ := range def.Fields {
			fields = append(fields, scaleinfo.CompositeField[legacy.Name]{Name: name, ID: substitute(typ, args)})
		}
		return scaleinfo.ResolvedShape[legacy.Name]{Tag: scaleinfo.TagComposite, Fields: fields}, nil
	case def.EnumList != nil:
		cases := make([]scaleinfo.VariantCase[legacy.Name], len(def.EnumList))
		for i, name := range def.EnumList {
			cases[i] = scaleinfo.VariantCase[legacy.Name]{Index: uint8(i), Name: name}
		}
		return scaleinfo.ResolvedShape[legacy.Name]{Tag: scaleinfo.TagVariant, Cases: cases}, nil
	case def.EnumMap != nil:
		cases := make([]scaleinfo.VariantCase[legacy.Name], 0, len(def.EnumMap))
		i := uint8(0)
		for name, typ := range def.EnumMap {
			cases = append(cases, scaleinfo.VariantCase[legacy.Name]{
				Index: i,
				Name:  name,
				Fields: []scaleinfo.CompositeField[legacy.Name]{{Name: "", ID: substitute(typ, args)}},
			})
			i++
		}
		return scaleinfo.ResolvedShape[legacy.Name]{Tag: scaleinfo.TagVariant, Cases: cases}, nil
	default:
		return scaleinfo.ResolvedShape[legacy.Name]{}, scale.NewError(scale.KindTypeNotFound, "empty type definition", nil)
	}
}

// splitGeneric splits "Vec<AccountId, Balance>" into ("Vec", ["AccountId", "Balance"]).
func splitGeneric(name string) (string, []string) {
	open := strings.IndexByte(name, '<')
	if open < 0 || !strings.HasSuffix(name, ">") {
		return name, nil
	}
	base := name[:open]
	inner := name[open+1 : len(name)-1]
	parts := strings.Split(inner, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return base, parts
}

// genericTemplate reconstructs the positional-parameter template key a
// generic definition is stored under, e.g. genericTemplate("Vec", 1) ==
// "Vec<T>".
func genericTemplate(base string, arity int) string {
	if arity == 0 {
		return base
	}
	params := make([]string, arity)
	letters := "TUVWXYZ"
	for i := range params {
		if i < len(letters) {
			params[i] = string(letters[i])
		} else {
			params[i] = fmt.Sprintf("T%d", i)
		}
	}
	return base + "<" + strings.Join(params, ", ") + ">"
}

// identifierToken matches one whole type-name identifier, so substitute can
// replace a generic parameter without touching identifiers that merely
// contain the same letter (e.g. "Timestamp" must survive substituting "T").
var identifierToken = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*`)

// substitute replaces positional generic parameters (T, U, V, ...) in typ
// with the corresponding entry of args, matching whole identifier tokens
// only - never a substring of an unrelated name.
func substitute(typ string, args []string) string {
	if len(args) == 0 {
		return typ
	}
	letters := "TUVWXYZ"
	param := make(map[string]string, len(args))
	for i, arg := range args {
		if i >= len(letters) {
			break
		}
		param[string(letters[i])] = arg
	}
	return identifierToken.ReplaceAllStringFunc(typ, func(tok string) string {
		if arg, ok := param[tok]; ok {
			return arg
		}
		return tok
	})
}

// BaselineFromStorage projects a minimal type-name baseline from a
// legacy.Metadata's own storage entries, used as overlay layer 1 before
// global/forSpec are merged in (spec §9, "a small baseline derived from
// the metadata's own textual signatures").
func BaselineFromStorage(m *legacy.Metadata) map[string]RawDef {
	baseline := make(map[string]RawDef)
	for _, p := range m.Pallets_ {
		for _, e := range p.Storage {
			for _, t := range e.KeyTypes {
				if _, ok := baseline[t]; !ok {
					baseline[t] = RawDef{}
				}
			}
		}
	}
	return baseline
}

// HasherByName maps a legacy metadata hasher name to its hashers.Kind
// (spec §4.5 table, as named in V8-V13 metadata). It delegates to
// hashers.ByName so the legacy package - which cannot import registry
// without a cycle - can resolve its own StorageEntry.HasherKeys the same
// way.
func HasherByName(name string) (hashers.Kind, bool) {
	return hashers.ByName(name)
}
