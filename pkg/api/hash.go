package api

import (
	"encoding/hex"
	"sort"
	"strings"

	"github.com/zeebo/blake3"
)

// Hash returns a deterministic BLAKE3 hash of the project content.
// It covers ID, Title, Date, Description, Tags (sorted), Links, Images,
// and the visibility flags. Used for build manifests and HTTP ETags.
func (p Project) Hash() string {
	h := blake3.New()

	writeField := func(s string) {
		h.Write([]byte(s))
		h.Write([]byte{0})
	}

	writeField(p.ID)
	writeField(p.Title)
	writeField(p.Date)
	writeField(p.Description)

	// Sort tags for determinism
	sortedTags := append([]string(nil), p.Tags...)
	sort.Strings(sortedTags)
	for _, t := range sortedTags {
		writeField(strings.ToLower(t))
	}
	h.Write([]byte{0}) // End of tags

	for _, l := range p.Links {
		writeField(l.URL)
		writeField(l.Label)
	}
	h.Write([]byte{0})

	for _, im := range p.Images {
		writeField(im.Src)
		writeField(im.Alt)
	}
	h.Write([]byte{0})

	flags := []byte{0, 0, 0}
	if p.Draft {
		flags[0] = 1
	}
	if p.Archived {
		flags[1] = 1
	}
	if p.Private {
		flags[2] = 1
	}
	h.Write(flags)

	sum := h.Sum(nil)
	return hex.EncodeToString(sum)
}

// HashBytes returns the hex BLAKE3 digest of arbitrary content, for
// artifact checksums.
func HashBytes(b []byte) string {
	sum := blake3.Sum256(b)
	return hex.EncodeToString(sum[:])
}
