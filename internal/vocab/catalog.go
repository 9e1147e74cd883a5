package vocab

import (
	"context"
	"fmt"
)

// CustomSource supplies the user's imported words for a course.
type CustomSource interface {
	CustomWords(ctx context.Context, course CourseID) ([]Word, error)
}

// Catalog combines the built-in word lists with imported extensions.
type Catalog struct {
	custom CustomSource
}

// NewCatalog creates a catalog. A nil source means built-in words only.
func NewCatalog(custom CustomSource) *Catalog {
	return &Catalog{custom: custom}
}

// WordsForCourse returns the built-in words followed by the imported words
// whose IDs are not already present.
func (c *Catalog) WordsForCourse(ctx context.Context, course CourseID) ([]Word, error) {
	if _, err := GetCourse(course); err != nil {
		return nil, err
	}
	builtin := BuiltinWords(course)
	if c.custom == nil {
		return builtin, nil
	}
	custom, err := c.custom.CustomWords(ctx, course)
	if err != nil {
		return nil, fmt.Errorf("load custom words for %s: %w", course, err)
	}
	merged, _ := Merge(builtin, custom)
	return merged, nil
}

// Lookup finds a single word in a course.
func (c *Catalog) Lookup(ctx context.Context, course CourseID, id string) (Word, error) {
	words, err := c.WordsForCourse(ctx, course)
	if err != nil {
		return Word{}, err
	}
	for _, w := range words {
		if w.ID == id {
			return w, nil
		}
	}
	return Word{}, fmt.Errorf("%w: %q in %s", ErrWordNotFound, id, course)
}

// Merge appends the words from extra whose IDs are not in base (or earlier in
// extra). Entries in base always win. Returns the merged list and the number
// of words added.
func Merge(base, extra []Word) ([]Word, int) {
	seen := make(map[string]bool, len(base)+len(extra))
	merged := make([]Word, 0, len(base)+len(extra))
	for _, w := range base {
		if seen[w.ID] {
			continue
		}
		seen[w.ID] = true
		merged = append(merged, w)
	}
	added := 0
	for _, w := range extra {
		if seen[w.ID] {
			continue
		}
		seen[w.ID] = true
		merged = append(merged, w)
		added++
	}
	return merged, added
}
