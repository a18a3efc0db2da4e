package document

// costSections lists the sections scanned when detecting the document type.
var costSections = []string{"A", "B", "C", "E", "F", "G", "H"}

// DetectType tells a Closing Disclosure from a Loan Estimate by structure:
// only the CD splits its cost items into payer columns, so any sub-labelled
// item marks a CD.
func (r *Record) DetectType() Type {
	if r == nil || r.ClosingCostDetails == nil {
		return TypeUnknown
	}
	for _, name := range costSections {
		sec := r.Section(name)
		if sec == nil {
			continue
		}
		for _, item := range sec.Items {
			if item.SubLabel != "" {
				return TypeClosingDisclosure
			}
		}
	}
	return TypeLoanEstimate
}

// Pair orders two records as (LE, CD) by their detected types. Records whose
// type cannot be told apart are returned in the given order.
func Pair(first, second *Record) (le, cd *Record) {
	if first.DetectType() == TypeClosingDisclosure && second.DetectType() != TypeClosingDisclosure {
		return second, first
	}
	return first, second
}
