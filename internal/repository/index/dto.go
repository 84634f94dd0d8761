package index

import (
	"encoding/binary"
	"math"

	"github.com/kitesearch/collator"
)

// buildHashFields converts a document into a flat map[string]string for HSET.
// Absent optional fields are omitted entirely, never written as empty
// strings, so downstream consumers can tell absence from emptiness.
func buildHashFields(doc collator.CatalogDocument, vector []float32) map[string]string {
	m := map[string]string{
		"title":     doc.Title,
		"location":  doc.Location,
		"text":      doc.Text,
		"namespace": doc.Namespace,
	}
	if doc.ComponentType != "" {
		m["componentType"] = doc.ComponentType
	}
	if doc.Lifecycle != "" {
		m["lifecycle"] = doc.Lifecycle
	}
	if doc.Owner != "" {
		m["owner"] = doc.Owner
	}
	if len(vector) > 0 {
		m["vector"] = vectorToBytes(vector)
	}
	return m
}

// parseHashFields converts a flat hash map back into a document.
func parseHashFields(m map[string]string) collator.CatalogDocument {
	return collator.CatalogDocument{
		Title:         m["title"],
		Location:      m["location"],
		Text:          m["text"],
		Namespace:     m["namespace"],
		ComponentType: m["componentType"],
		Lifecycle:     m["lifecycle"],
		Owner:         m["owner"],
	}
}

// vectorToBytes serializes []float32 to a binary string (4 bytes per float, little-endian).
func vectorToBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}
