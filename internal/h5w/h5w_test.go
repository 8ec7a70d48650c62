package h5w

import (
	"path/filepath"
	"strconv"
	"testing"

	"github.com/robert-malhotra/go-hdf5/hdf5"
)

func TestLookup3Consistency(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
	}{
		{"empty", []byte{}},
		{"single byte", []byte{0x00}},
		{"12 bytes exactly", []byte("Hello World!")},
		{"13 bytes", []byte("Hello World!!")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if lookup3(tt.input) != lookup3(tt.input) {
				t.Errorf("lookup3 not deterministic for %q", tt.input)
			}
		})
	}

	// Different lengths must produce different checksums.
	seen := make(map[uint32]int)
	for length := 0; length <= 24; length++ {
		data := make([]byte, length)
		for i := range data {
			data[i] = byte(i)
		}
		seen[lookup3(data)] = length
	}
	if len(seen) != 25 {
		t.Errorf("expected 25 unique checksums for lengths 0-24, got %d", len(seen))
	}
}

func TestEmptyFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.hdf5")

	if err := New().Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	f, err := hdf5.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer f.Close()

	members, err := f.Root().Members()
	if err != nil {
		t.Fatalf("Members failed: %v", err)
	}
	if len(members) != 0 {
		t.Errorf("expected empty root group, got members %v", members)
	}
}

func TestGroupAttributesRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "attrs.hdf5")

	f := New()
	root := f.Root()
	root.SetAttr("label", "Behroozi2010")
	root.SetAttr("reference", "Behroozi et al. (2010)")

	cosmo := root.Group("cosmology")
	cosmo.SetAttr("OmegaMatter", 0.279)
	cosmo.SetAttr("HubbleConstant", 70.0)

	if err := f.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	r, err := hdf5.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer r.Close()

	label, err := r.Root().Attr("label").ReadScalarString()
	if err != nil {
		t.Fatalf("reading label: %v", err)
	}
	if label != "Behroozi2010" {
		t.Errorf("label: expected Behroozi2010, got %q", label)
	}

	g, err := r.OpenGroup("cosmology")
	if err != nil {
		t.Fatalf("OpenGroup failed: %v", err)
	}
	om, err := g.Attr("OmegaMatter").ReadScalarFloat64()
	if err != nil {
		t.Fatalf("reading OmegaMatter: %v", err)
	}
	if om != 0.279 {
		t.Errorf("OmegaMatter: expected 0.279, got %v", om)
	}
	h0, err := g.Attr("HubbleConstant").ReadScalarFloat64()
	if err != nil {
		t.Fatalf("reading HubbleConstant: %v", err)
	}
	if h0 != 70.0 {
		t.Errorf("HubbleConstant: expected 70, got %v", h0)
	}
}

func TestDatasetRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.hdf5")

	want := []float64{1e12, 1e13, 1e14}

	f := New()
	interval := f.Root().Group("redshiftInterval0")
	interval.SetAttr("redshiftMinimum", 0.0)
	interval.SetAttr("redshiftMaximum", 0.1)
	interval.Dataset("massHalo", want).
		SetAttr("description", "Halo mass").
		SetAttr("unitsInSI", 1.98847e30)

	if err := f.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	r, err := hdf5.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer r.Close()

	ds, err := r.OpenDataset("redshiftInterval0/massHalo")
	if err != nil {
		t.Fatalf("OpenDataset failed: %v", err)
	}

	got, err := ds.ReadFloat64()
	if err != nil {
		t.Fatalf("ReadFloat64 failed: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d values, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("value %d: expected %v, got %v", i, want[i], got[i])
		}
	}

	desc, err := ds.Attr("description").ReadScalarString()
	if err != nil {
		t.Fatalf("reading description: %v", err)
	}
	if desc != "Halo mass" {
		t.Errorf("description: expected %q, got %q", "Halo mass", desc)
	}
	units, err := ds.Attr("unitsInSI").ReadScalarFloat64()
	if err != nil {
		t.Fatalf("reading unitsInSI: %v", err)
	}
	if units != 1.98847e30 {
		t.Errorf("unitsInSI: expected 1.98847e30, got %v", units)
	}
}

func TestManyGroupsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "many.hdf5")

	f := New()
	data := []float64{1, 2, 3, 4, 5}
	for i := 0; i < 10; i++ {
		g := f.Root().Group(groupName(i))
		g.SetAttr("redshiftMinimum", float64(i)*0.1)
		g.SetAttr("redshiftMaximum", float64(i+1)*0.1)
		g.Dataset("massHalo", data)
		g.Dataset("massStellar", data)
	}

	if err := f.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	r, err := hdf5.Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer r.Close()

	members, err := r.Root().Members()
	if err != nil {
		t.Fatalf("Members failed: %v", err)
	}
	if len(members) != 10 {
		t.Fatalf("expected 10 groups, got %d: %v", len(members), members)
	}

	for i := 0; i < 10; i++ {
		g, err := r.OpenGroup(groupName(i))
		if err != nil {
			t.Fatalf("OpenGroup %d failed: %v", i, err)
		}
		n, err := g.NumObjects()
		if err != nil {
			t.Fatalf("NumObjects %d failed: %v", i, err)
		}
		if n != 2 {
			t.Errorf("group %d: expected 2 datasets, got %d", i, n)
		}
	}
}

func TestSuperblockAddresses(t *testing.T) {
	data, err := New().Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	if len(data) < superblockSize {
		t.Fatalf("file shorter than superblock: %d bytes", len(data))
	}
	for i, b := range fileSignature {
		if data[i] != b {
			t.Fatalf("bad signature byte %d: 0x%02x", i, data[i])
		}
	}
	// Root group header follows the superblock directly in an empty file.
	if string(data[superblockSize:superblockSize+4]) != "OHDR" {
		t.Errorf("expected root object header at %d", superblockSize)
	}
}

func groupName(i int) string {
	return "redshiftInterval" + strconv.Itoa(i)
}
