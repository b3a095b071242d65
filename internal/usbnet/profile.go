package usbnet

import (
	"github.com/dmdmdm-nz/usbnetd/internal/confstore"
	"github.com/dmdmdm-nz/usbnetd/internal/nwapi"
)

// ProfileEntry is one connection profile as read from the store. Nil fields
// were absent or unreadable.
type ProfileEntry struct {
	Path        string
	Type        *string
	Name        *string
	Autoconnect *bool
}

// ID is the profile identifier: the unescaped last segment of Path.
func (e ProfileEntry) ID() string {
	return confstore.BaseName(e.Path)
}

// Resolve turns an entry into a candidate report for networkType. It reports
// false for entries of another type or without an identifier. A missing name
// falls back to the identifier and a missing autoconnect flag means false.
func Resolve(e ProfileEntry, networkType string) (nwapi.Report, bool) {
	id := e.ID()
	if id == "" || e.Type == nil || *e.Type != networkType {
		return nwapi.Report{}, false
	}

	name := id
	if e.Name != nil {
		name = *e.Name
	}

	attrs := nwapi.AttrIAPName
	if e.Autoconnect != nil && *e.Autoconnect {
		attrs |= nwapi.AttrAutoconnect
	}

	return nwapi.Report{
		Status: nwapi.SearchContinue,
		Name:   name,
		Type:   networkType,
		Attrs:  attrs,
		ID:     id,
		Level:  nwapi.Level10,
	}, true
}

// readEntry reads the attributes of the profile directory at dirPath. Read
// errors leave the corresponding field nil.
func readEntry(r confstore.Reader, dirPath string) ProfileEntry {
	e := ProfileEntry{Path: dirPath}

	if v, err := r.GetString(dirPath + "/type"); err == nil {
		e.Type = &v
	}
	if v, err := r.GetBool(dirPath + "/autoconnect"); err == nil {
		e.Autoconnect = &v
	}
	if v, err := r.GetString(dirPath + "/name"); err == nil {
		e.Name = &v
	}
	return e
}
