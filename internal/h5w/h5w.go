// Package h5w writes HDF5 files in a single pass.
//
// The writer covers exactly the structures the Galacticus data-container
// format needs: a tree of groups carrying scalar string and float64
// attributes, with contiguous one-dimensional float64 datasets at the
// leaves. Files use a V3 superblock and V2 object headers and are readable
// by the HDF5 library, h5py, and github.com/robert-malhotra/go-hdf5.
//
// Because the whole object tree is known before anything is written, the
// file is laid out bottom-up in one allocation pass: dataset data first,
// then dataset headers, then group headers, with the root group last.
// Nothing is ever rewritten or relocated.
package h5w

import (
	"fmt"
	"os"
	"sort"
)

// attribute is a named scalar attribute; value is string or float64.
type attribute struct {
	name  string
	value any
}

// File is an HDF5 file under construction.
type File struct {
	root Group
}

// New returns an empty file builder.
func New() *File {
	return &File{}
}

// Root returns the root group.
func (f *File) Root() *Group {
	return &f.root
}

// Group is a group under construction. Children keep insertion order;
// attributes are sorted by name when encoded.
type Group struct {
	name     string
	attrs    []attribute
	groups   []*Group
	datasets []*Dataset
}

// Group creates and returns a subgroup with the given name.
func (g *Group) Group(name string) *Group {
	child := &Group{name: name}
	g.groups = append(g.groups, child)
	return child
}

// SetAttr sets a scalar attribute on the group. Supported value types are
// string and float64; anything else fails at encode time.
func (g *Group) SetAttr(name string, value any) *Group {
	g.attrs = append(g.attrs, attribute{name, value})
	return g
}

// Dataset creates a one-dimensional float64 dataset in the group. The data
// slice is referenced, not copied; callers must not mutate it before the
// file is encoded.
func (g *Group) Dataset(name string, data []float64) *Dataset {
	d := &Dataset{name: name, data: data}
	g.datasets = append(g.datasets, d)
	return d
}

// Dataset is a dataset under construction.
type Dataset struct {
	name  string
	data  []float64
	attrs []attribute
}

// SetAttr sets a scalar attribute on the dataset.
func (d *Dataset) SetAttr(name string, value any) *Dataset {
	d.attrs = append(d.attrs, attribute{name, value})
	return d
}

// Encode serializes the file and returns its bytes.
func (f *File) Encode() ([]byte, error) {
	var b buffer
	b.zeros(superblockSize) // superblock placeholder, patched below

	rootAddr, err := encodeGroup(&b, &f.root)
	if err != nil {
		return nil, err
	}

	copy(b.b[:superblockSize], encodeSuperblock(rootAddr, b.len()))
	return b.b, nil
}

// Save encodes the file and writes it to path.
func (f *File) Save(path string) error {
	data, err := f.Encode()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// encodeGroup appends a group's subtree to the buffer and returns the
// address of the group's object header. Datasets and subgroups are written
// before the group itself so that every hard link address is known when the
// header is encoded.
func encodeGroup(b *buffer, g *Group) (uint64, error) {
	var links []msg

	for _, d := range g.datasets {
		addr, err := encodeDataset(b, d)
		if err != nil {
			return 0, fmt.Errorf("dataset %q: %w", d.name, err)
		}
		links = append(links, hardLinkMsg(d.name, addr))
	}

	for _, child := range g.groups {
		addr, err := encodeGroup(b, child)
		if err != nil {
			return 0, fmt.Errorf("group %q: %w", child.name, err)
		}
		links = append(links, hardLinkMsg(child.name, addr))
	}

	header, err := groupHeader(sortedAttrs(g.attrs), links)
	if err != nil {
		return 0, fmt.Errorf("group %q: %w", g.name, err)
	}

	addr := b.len()
	b.bytes(header)
	return addr, nil
}

// encodeDataset appends a dataset's raw data and object header to the
// buffer and returns the header address.
func encodeDataset(b *buffer, d *Dataset) (uint64, error) {
	dataAddr := b.len()
	b.bytes(float64Data(d.data))

	header, err := datasetHeader(uint64(len(d.data)), dataAddr, sortedAttrs(d.attrs))
	if err != nil {
		return 0, err
	}

	addr := b.len()
	b.bytes(header)
	return addr, nil
}

// sortedAttrs returns a name-sorted copy of attrs. The HDF5 library keeps
// compact attribute storage sorted by name; writing them sorted keeps the
// headers byte-identical to what it would produce.
func sortedAttrs(attrs []attribute) []attribute {
	out := make([]attribute, len(attrs))
	copy(out, attrs)
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}
