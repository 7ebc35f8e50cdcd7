// Package export encodes fixtures in interchange formats and reads them
// back.
//
//	text  canonical "//- /path" fixture text, headers always present
//	yaml  {files: [{path, text}]}
//	toml  [[files]] tables
//	xml   <fixture><file path="...">text</file></fixture>
package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/fixtree/pkg/errors"
	"github.com/arthur-debert/fixtree/pkg/fixture"
)

// Format is an export encoding.
type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatXML  Format = "xml"
)

// Formats lists the supported formats.
var Formats = []Format{FormatText, FormatYAML, FormatTOML, FormatXML}

// ParseFormat parses a format name; "yml" is accepted for yaml.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "text", "txt", "":
		return FormatText, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	case "xml":
		return FormatXML, nil
	default:
		return "", errors.Newf(errors.ErrInvalidInput, "unknown export format %q", s).
			WithDetail("format", s)
	}
}

// Encode encodes f in the given format.
func Encode(f fixture.Fixture, format Format) ([]byte, error) {
	switch format {
	case FormatText:
		out, err := fixture.NewRenderer(f).AlwaysShowFilepath().Render()
		if err != nil {
			return nil, err
		}
		return []byte(out), nil
	case FormatYAML:
		return wrapEncode(yaml.Marshal(f))
	case FormatTOML:
		return wrapEncode(toml.Marshal(f))
	case FormatXML:
		return encodeXML(f)
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown export format %q", format)
	}
}

// Decode reads a fixture encoded in the given format. Every path must start
// with "/".
func Decode(data []byte, format Format) (fixture.Fixture, error) {
	var (
		f   fixture.Fixture
		err error
	)
	switch format {
	case FormatText:
		f, err = fixture.Parse(string(data))
	case FormatYAML:
		err = yaml.Unmarshal(data, &f)
	case FormatTOML:
		err = toml.Unmarshal(data, &f)
	case FormatXML:
		f, err = decodeXML(data)
	default:
		return fixture.Fixture{}, errors.Newf(errors.ErrInvalidInput, "unknown export format %q", format)
	}
	if err != nil {
		if errors.GetErrorCode(err) != errors.ErrUnknown {
			return fixture.Fixture{}, err
		}
		return fixture.Fixture{}, errors.Wrapf(err, errors.ErrInvalidInput, "failed to decode %s fixture", format)
	}

	for _, file := range f.Files {
		if !strings.HasPrefix(file.Path, "/") {
			return fixture.Fixture{}, errors.Newf(errors.ErrFixturePath, "fixture path must start with `/`: %q", file.Path).
				WithDetail("path", file.Path)
		}
	}
	return f, nil
}

func wrapEncode(data []byte, err error) ([]byte, error) {
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode fixture")
	}
	return data, nil
}

func encodeXML(f fixture.Fixture) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	doc.CreateText("\n")

	root := doc.CreateElement("fixture")
	for _, file := range f.Files {
		// Whitespace is added by hand: Indent would drop whitespace-only
		// file contents.
		root.CreateText("\n  ")
		el := root.CreateElement("file")
		el.CreateAttr("path", file.Path)
		el.SetText(file.Text)
	}
	if len(f.Files) > 0 {
		root.CreateText("\n")
	}
	doc.CreateText("\n")

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode fixture")
	}
	return buf.Bytes(), nil
}

func decodeXML(data []byte) (fixture.Fixture, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return fixture.Fixture{}, err
	}

	root := doc.SelectElement("fixture")
	if root == nil {
		return fixture.Fixture{}, fmt.Errorf("missing <fixture> root element")
	}

	var f fixture.Fixture
	for _, el := range root.SelectElements("file") {
		path := el.SelectAttrValue("path", "")
		if path == "" {
			return fixture.Fixture{}, fmt.Errorf("<file> without path attribute")
		}
		f.Files = append(f.Files, fixture.FixtureFile{Path: path, Text: el.Text()})
	}
	return f, nil
}
