package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmdmdm-nz/usbnetd/internal/api"
	"github.com/dmdmdm-nz/usbnetd/internal/confstore"
	"github.com/dmdmdm-nz/usbnetd/internal/netmon"
	"github.com/dmdmdm-nz/usbnetd/internal/nwapi"
	"github.com/dmdmdm-nz/usbnetd/internal/usbnet"
)

func registered(t *testing.T, linkUp bool, profiles map[string]any) (*usbnet.Module, *nwapi.API) {
	t.Helper()

	tree := confstore.NewTree()
	for k, v := range profiles {
		require.NoError(t, tree.Set(usbnet.DefaultProfilesRoot+"/"+k, v))
	}
	prober := netmon.ProberFunc(func(string) bool { return linkUp })

	m, err := usbnet.New(usbnet.DefaultConfig(), prober, tree)
	require.NoError(t, err)

	table := &nwapi.API{}
	require.True(t, m.Init(table, nil, nil, nil))
	return m, table
}

func TestRunLinkUp(t *testing.T) {
	_, table := registered(t, true, nil)

	var out bytes.Buffer
	assert.Equal(t, 0, runLinkUp(table, usbnet.DefaultNetworkType, &out))

	var resp api.LinkUpResponse
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "usb0", resp.Interface)
}

func TestRunLinkUp_Down(t *testing.T) {
	_, table := registered(t, false, nil)

	var out bytes.Buffer
	assert.Equal(t, 1, runLinkUp(table, usbnet.DefaultNetworkType, &out))
	assert.Contains(t, out.String(), `"status": "error"`)
}

func TestRunSearch(t *testing.T) {
	_, table := registered(t, true, map[string]any{
		"cable/type": "USB",
		"cable/name": "Cable",
		"wlan/type":  "WLAN_INFRA",
	})

	var out bytes.Buffer
	assert.Equal(t, 0, runSearch(table, usbnet.DefaultNetworkType, &out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)

	var first, last api.NetworkInfo
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &last))
	assert.Equal(t, "Cable", first.Name)
	assert.Equal(t, "cable", first.ID)
	assert.Equal(t, "complete", last.Status)
}

func TestRunStatus(t *testing.T) {
	m, _ := registered(t, false, nil)

	var out bytes.Buffer
	assert.Equal(t, 0, runStatus(m, &out))

	var got statusOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, "usb0", got.Interface)
	assert.False(t, got.Available)
}
