package edition

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// Document - Input Schema
// =============================================================================

// Document is the wire schema of an edition as delivered by the transcription
// API. It is the single input format consumed by [Build].
//
// Struct tags carry both json and bson so that documents round-trip through
// the Mongo-backed edition store without a separate mapping layer.
type Document struct {
	ID            uint32            `json:"id" bson:"id"`
	Name          string            `json:"name" bson:"name"`
	License       License           `json:"license" bson:"license"`
	Editors       map[string]Editor `json:"editors,omitempty" bson:"editors,omitempty"`
	TextFragments []FragmentDoc     `json:"textFragments" bson:"textFragments"`
}

// License describes the usage terms attached to an edition.
type License struct {
	Name string `json:"name,omitempty" bson:"name,omitempty"`
	URL  string `json:"url,omitempty" bson:"url,omitempty"`
	Text string `json:"text,omitempty" bson:"text,omitempty"`
}

// Editor identifies a contributor to an edition.
type Editor struct {
	Forename     string `json:"forename,omitempty" bson:"forename,omitempty"`
	Surname      string `json:"surname,omitempty" bson:"surname,omitempty"`
	Organization string `json:"organization,omitempty" bson:"organization,omitempty"`
}

// FragmentDoc is one text fragment (e.g. a column) in document form.
// Lines appear in the editor-suggested order.
type FragmentDoc struct {
	ID               uint32    `json:"id" bson:"id"`
	TextFragmentName string    `json:"textFragmentName" bson:"textFragmentName"`
	Lines            []LineDoc `json:"lines" bson:"lines"`
}

// LineDoc is one line in document form. Signs appear in the default reading
// order.
type LineDoc struct {
	ID       uint32    `json:"id" bson:"id"`
	LineName string    `json:"lineName" bson:"lineName"`
	Signs    []SignDoc `json:"signs" bson:"signs"`
}

// SignDoc is one sign position in document form. The id is optional - some
// exports identify signs only through their interpretations.
type SignDoc struct {
	ID                  uint32              `json:"id,omitempty" bson:"id,omitempty"`
	SignInterpretations []InterpretationDoc `json:"signInterpretations" bson:"signInterpretations"`
}

// InterpretationDoc is one concrete reading of a sign in document form.
// Character is absent for purely formatting signs. NextSignInterpretations
// lists the IDs of interpretations that may follow this one.
type InterpretationDoc struct {
	ID                      uint32         `json:"id" bson:"id"`
	Character               string         `json:"character,omitempty" bson:"character,omitempty"`
	Attributes              []AttributeDoc `json:"attributes" bson:"attributes"`
	NextSignInterpretations []uint32       `json:"nextSignInterpretations,omitempty" bson:"nextSignInterpretations,omitempty"`
}

// AttributeDoc is one attribute in document form. Value is optional and only
// meaningful for a few numeric attribute types.
type AttributeDoc struct {
	ID               uint32   `json:"id" bson:"id"`
	AttributeValueID uint32   `json:"attributeValueId" bson:"attributeValueId"`
	Value            *float64 `json:"value,omitempty" bson:"value,omitempty"`
}

// =============================================================================
// Document I/O
// =============================================================================

// ReadDocument decodes a JSON edition document from r.
func ReadDocument(r io.Reader) (Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("decode document: %w", err)
	}
	return doc, nil
}

// ReadDocumentFile reads and decodes a JSON edition document from a file.
func ReadDocumentFile(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadDocument(f)
}

// MarshalDocument encodes a document as indented JSON.
func MarshalDocument(doc Document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}
