package usbnet

import (
	"errors"
	"slices"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmdmdm-nz/usbnetd/internal/confstore"
	"github.com/dmdmdm-nz/usbnetd/internal/netmon"
	"github.com/dmdmdm-nz/usbnetd/internal/nwapi"
)

// fakeLink reports the interface present while up is set and counts probes.
type fakeLink struct {
	up     atomic.Bool
	probes atomic.Int32
	names  []string
}

func (f *fakeLink) Probe(name string) bool {
	f.probes.Add(1)
	f.names = append(f.names, name)
	return f.up.Load() && name == DefaultInterface
}

type failingStore struct{ err error }

func (s failingStore) Snapshot() (confstore.Reader, error) { return nil, s.err }

// listFailReader wraps a tree but refuses to list directories.
type listFailReader struct{ *confstore.Tree }

func (listFailReader) AllDirs(string) ([]string, error) { return nil, errors.New("listing failed") }

type listFailStore struct{ tree *confstore.Tree }

func (s listFailStore) Snapshot() (confstore.Reader, error) { return listFailReader{s.tree}, nil }

func newTree(t *testing.T, values map[string]any) *confstore.Tree {
	t.Helper()
	tree := confstore.NewTree()
	for k, v := range values {
		require.NoError(t, tree.Set(DefaultProfilesRoot+"/"+k, v))
	}
	return tree
}

func newTestModule(t *testing.T, link netmon.Prober, store confstore.Store) *Module {
	t.Helper()
	m, err := New(DefaultConfig(), link, store)
	require.NoError(t, err)
	return m
}

func TestNew_Validation(t *testing.T) {
	_, err := New(Config{}, &fakeLink{}, confstore.NewTree())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "network type is required")
	assert.Contains(t, err.Error(), "interface name is required")
	assert.Contains(t, err.Error(), "profiles root is required")

	_, err = New(DefaultConfig(), nil, confstore.NewTree())
	assert.Error(t, err)

	_, err = New(DefaultConfig(), &fakeLink{}, nil)
	assert.Error(t, err)
}

func TestModule_LinkUp(t *testing.T) {
	link := &fakeLink{}
	m := newTestModule(t, link, confstore.NewTree())

	_, err := m.LinkUp()
	assert.ErrorIs(t, err, ErrLinkDown)

	link.up.Store(true)
	ifname, err := m.LinkUp()
	require.NoError(t, err)
	assert.Equal(t, "usb0", ifname)

	// Every call probes again.
	assert.Equal(t, int32(2), link.probes.Load())
	assert.Equal(t, []string{"usb0", "usb0"}, link.names)
}

func TestModule_Search_ProfileA(t *testing.T) {
	link := &fakeLink{}
	link.up.Store(true)
	tree := newTree(t, map[string]any{
		"profileA/type":        "USB",
		"profileA/name":        "My USB Link",
		"profileA/autoconnect": true,
	})
	m := newTestModule(t, link, tree)

	reports := slices.Collect(m.Search())

	require.Len(t, reports, 1)
	assert.Equal(t, "My USB Link", reports[0].Name)
	assert.Equal(t, "profileA", reports[0].ID)
	assert.Equal(t, "USB", reports[0].Type)
	assert.True(t, reports[0].Attrs.Has(nwapi.AttrAutoconnect))
	assert.True(t, reports[0].Attrs.Has(nwapi.AttrIAPName))
	assert.Equal(t, nwapi.Level10, reports[0].Level)
}

func TestModule_Search_InterfaceAbsent(t *testing.T) {
	link := &fakeLink{}
	tree := newTree(t, map[string]any{
		"one/type": "USB",
		"two/type": "USB",
	})
	m := newTestModule(t, link, tree)

	reports := slices.Collect(m.Search())
	assert.Empty(t, reports)
	assert.Equal(t, int32(1), link.probes.Load())
}

func TestModule_Search_FiltersAndOrders(t *testing.T) {
	link := &fakeLink{}
	link.up.Store(true)
	tree := newTree(t, map[string]any{
		"zulu/type":                "USB",
		"alpha/type":               "USB",
		"alpha/name":               "Alpha Cable",
		"home/type":                "WLAN_INFRA",
		"home/name":                "Home",
		"broken/name":              "No type",
		"Desk@32@Dock/type":        "USB",
		"Desk@32@Dock/autoconnect": "yes",
	})
	m := newTestModule(t, link, tree)

	reports := slices.Collect(m.Search())

	var ids, names []string
	for _, r := range reports {
		ids = append(ids, r.ID)
		names = append(names, r.Name)
		assert.Equal(t, nwapi.SearchContinue, r.Status)
		assert.False(t, r.Attrs.Has(nwapi.AttrAutoconnect))
	}
	assert.Equal(t, []string{"Desk Dock", "alpha", "zulu"}, ids)
	assert.Equal(t, []string{"Desk Dock", "Alpha Cable", "zulu"}, names)
}

func TestModule_Search_EarlyStop(t *testing.T) {
	link := &fakeLink{}
	link.up.Store(true)
	tree := newTree(t, map[string]any{
		"a/type": "USB",
		"b/type": "USB",
		"c/type": "USB",
	})
	m := newTestModule(t, link, tree)

	var seen []string
	for r := range m.Search() {
		seen = append(seen, r.ID)
		break
	}
	assert.Equal(t, []string{"a"}, seen)
}

func TestModule_Search_StoreFailures(t *testing.T) {
	link := &fakeLink{}
	link.up.Store(true)

	m := newTestModule(t, link, failingStore{err: errors.New("store offline")})
	assert.Empty(t, slices.Collect(m.Search()))

	m = newTestModule(t, link, listFailStore{tree: newTree(t, map[string]any{"a/type": "USB"})})
	assert.Empty(t, slices.Collect(m.Search()))
}

func TestModule_CustomIdentity(t *testing.T) {
	link := netmon.ProberFunc(func(name string) bool { return name == "usb1" })
	tree := confstore.NewTree()
	require.NoError(t, tree.Set("/profiles/cable/type", "USB_ALT"))
	require.NoError(t, tree.Set("/profiles/other/type", "USB"))

	m, err := New(Config{NetworkType: "USB_ALT", Interface: "usb1", ProfilesRoot: "/profiles"}, link, tree)
	require.NoError(t, err)

	ifname, err := m.LinkUp()
	require.NoError(t, err)
	assert.Equal(t, "usb1", ifname)

	reports := slices.Collect(m.Search())
	require.Len(t, reports, 1)
	assert.Equal(t, "cable", reports[0].ID)
	assert.Equal(t, "USB_ALT", reports[0].Type)

	// A default module sharing the prober governs usb0, which is absent.
	other := newTestModule(t, link, tree)
	_, err = other.LinkUp()
	assert.ErrorIs(t, err, ErrLinkDown)
}
