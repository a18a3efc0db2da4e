package fees

// MergedItem pairs the LE and CD disclosures of one fee. Items whose labels
// normalize to the same key are folded into the same side, so a CD line split
// across payer columns stays one fee.
type MergedItem struct {
	Key          string
	DisplayLabel string
	LE           []LineItem
	CD           []LineItem
}

// OnLE reports whether the Loan Estimate disclosed this fee.
func (m MergedItem) OnLE() bool { return len(m.LE) > 0 }

// OnCD reports whether the Closing Disclosure disclosed this fee.
func (m MergedItem) OnCD() bool { return len(m.CD) > 0 }

// LESplit returns the payer split of the LE side.
func (m MergedItem) LESplit() Split { return SplitOf(m.LE...) }

// CDSplit returns the payer split of the CD side.
func (m MergedItem) CDSplit() Split { return SplitOf(m.CD...) }

// Merge pairs LE and CD items by normalized label. LE items are seeded first in
// their original order and CD items are folded in afterwards, so the result
// order is LE order followed by CD-only fees in CD order. The display label
// prefers the LE wording. Items with an empty key are never paired: each one
// becomes its own entry.
func Merge(le, cd []LineItem) []MergedItem {
	var merged []MergedItem
	index := make(map[string]int)

	add := func(item LineItem, fromLE bool) {
		item = item.Resolved()
		key := Normalize(item.Label)
		pos, seen := index[key]
		if !seen || key == "" {
			merged = append(merged, MergedItem{Key: key})
			pos = len(merged) - 1
			if key != "" {
				index[key] = pos
			}
		}
		entry := &merged[pos]
		if fromLE {
			entry.LE = append(entry.LE, item)
		} else {
			entry.CD = append(entry.CD, item)
		}
	}

	for _, item := range le {
		add(item, true)
	}
	for _, item := range cd {
		add(item, false)
	}
	for i := range merged {
		merged[i].DisplayLabel = displayLabel(merged[i])
	}
	return merged
}

func displayLabel(m MergedItem) string {
	for _, item := range m.LE {
		if item.Label != "" {
			return item.Label
		}
	}
	for _, item := range m.CD {
		if item.Label != "" {
			return item.Label
		}
	}
	return m.Key
}
