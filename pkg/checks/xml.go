package checks

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"

	stderrors "errors"

	"github.com/beevik/etree"

	"github.com/benchkit/benchkit/pkg/errors"
	"github.com/benchkit/benchkit/pkg/types"
)

// NuGet.Config is the one XML surface a Windows development bootstrap
// routinely touches: registering a package source under
// <configuration><packageSources>.

// XMLSourcePresent reports whether the config file already registers
// a package source under the given key with the given value.
func XMLSourcePresent(fsys types.FS, path, key, value string) func(context.Context) (bool, string, error) {
	return func(context.Context) (bool, string, error) {
		doc, err := readXML(fsys, path)
		if err != nil {
			if stderrors.Is(err, fs.ErrNotExist) {
				return false, "", nil
			}
			return false, "", err
		}

		sources := doc.FindElement("/configuration/packageSources")
		if sources == nil {
			return false, "", nil
		}
		for _, add := range sources.SelectElements("add") {
			if add.SelectAttrValue("key", "") == key {
				if add.SelectAttrValue("value", "") == value {
					return true, fmt.Sprintf("package source %s already registered", key), nil
				}
				return false, "", nil
			}
		}
		return false, "", nil
	}
}

// EnsureXMLSource registers or updates the package source entry,
// preserving everything else in the document. A missing file is
// created with the minimal surrounding structure.
func EnsureXMLSource(fsys types.FS, path, key, value string) func(context.Context) error {
	return func(context.Context) error {
		doc, err := readXML(fsys, path)
		if err != nil {
			if !stderrors.Is(err, fs.ErrNotExist) {
				return err
			}
			doc = etree.NewDocument()
			doc.CreateProcInst("xml", `version="1.0" encoding="utf-8"`)
		}

		config := doc.FindElement("/configuration")
		if config == nil {
			config = doc.CreateElement("configuration")
		}
		sources := config.SelectElement("packageSources")
		if sources == nil {
			sources = config.CreateElement("packageSources")
		}

		var entry *etree.Element
		for _, add := range sources.SelectElements("add") {
			if add.SelectAttrValue("key", "") == key {
				entry = add
				break
			}
		}
		if entry == nil {
			entry = sources.CreateElement("add")
			entry.CreateAttr("key", key)
		}
		entry.RemoveAttr("value")
		entry.CreateAttr("value", value)

		doc.Indent(2)
		content, err := doc.WriteToBytes()
		if err != nil {
			return errors.Wrapf(err, errors.ErrInternal, "cannot serialize %s", path)
		}
		if err := fsys.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return errors.Wrapf(err, errors.ErrDirCreate, "cannot create directory for %s", path)
		}
		if err := fsys.WriteFile(path, content, 0644); err != nil {
			return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", path)
		}
		return nil
	}
}

func readXML(fsys types.FS, path string) (*etree.Document, error) {
	content, err := fsys.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(content); err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "cannot parse XML in %s", path)
	}
	return doc, nil
}
