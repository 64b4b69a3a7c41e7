// Package frameinfo implements the small helpers component (component
// I, spec §6): projecting a Registry out of a metadata instance,
// listing its pallets and storage entries, and rendering a decoded
// account id for display.
package frameinfo

import (
	"fmt"

	"github.com/mr-tron/base58"
	"k8s.io/klog/v2"

	"github.com/paritytech/frame-decode/metadata"
)

// Registry is a read-only projection of a metadata instance's shape,
// useful for exploring an unfamiliar runtime without repeatedly calling
// back into the metadata adapter (spec §6 "type_registry_from_metadata").
type Registry struct {
	SpecVersion uint32
	Pallets     []PalletInfo
}

// PalletInfo summarizes one pallet's storage surface.
type PalletInfo struct {
	Name    string
	Storage []string
}

// RegistryFromMetadata projects md into a Registry.
func RegistryFromMetadata[T comparable](md metadata.Info[T]) (Registry, error) {
	klog.V(1).Infof("frameinfo: projecting registry for spec version %d", md.SpecVersion())
	reg := Registry{SpecVersion: md.SpecVersion()}
	for _, name := range md.Pallets() {
		entries, err := md.StorageEntries(name)
		if err != nil {
			return Registry{}, fmt.Errorf("frameinfo: pallet %q: %w", name, err)
		}
		names := make([]string, len(entries))
		for i, e := range entries {
			names[i] = e.Name
		}
		reg.Pallets = append(reg.Pallets, PalletInfo{Name: name, Storage: names})
	}
	return reg, nil
}

// Pallets lists every pallet name in md (spec §6 "list_pallets").
func Pallets[T comparable](md metadata.Info[T]) []string {
	return md.Pallets()
}

// StorageEntries lists every storage entry name under pallet (spec §6
// "list_storage_entries").
func StorageEntries[T comparable](md metadata.Info[T], pallet string) ([]string, error) {
	entries, err := md.StorageEntries(pallet)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out, nil
}

// DisplayAddress renders a 32-byte account id as an SS58-shaped base58
// string, for trace/debug output only: it does not compute or verify
// the chain-specific checksum byte(s) that a real SS58 encoder adds, so
// the result is not a valid SS58 address for any particular network.
func DisplayAddress(accountID []byte) string {
	return base58.Encode(accountID)
}
