package suffixindex

import (
	"cmp"
	"slices"
)

// insertionCutoff is the partition size below which sortSuffixes switches to
// insertion sort.
const insertionCutoff = 5

// partition is a half-open range of the suffix array whose suffixes share
// their first d characters.
type partition struct {
	lo, hi, d int
}

// sortSuffixes orders sa by suffix using three-way radix quicksort.
// Pending partitions live on an explicit stack, so deep runs of equal
// characters do not grow the goroutine stack.
func (f *flatText) sortSuffixes(sa []int) {
	work := []partition{{lo: 0, hi: len(sa), d: 0}}
	for len(work) > 0 {
		p := work[len(work)-1]
		work = work[:len(work)-1]

		if p.hi-p.lo < insertionCutoff {
			f.insertionSort(sa[p.lo:p.hi], p.d)
			continue
		}

		// Middle element as pivot keeps already sorted input from going quadratic.
		mid := p.lo + (p.hi-p.lo)/2
		sa[p.lo], sa[mid] = sa[mid], sa[p.lo]
		v := f.charAt(sa[p.lo], p.d)

		lt, gt := p.lo, p.hi-1
		for i := p.lo + 1; i <= gt; {
			switch t := f.charAt(sa[i], p.d); {
			case t < v:
				sa[lt], sa[i] = sa[i], sa[lt]
				lt++
				i++
			case t > v:
				sa[i], sa[gt] = sa[gt], sa[i]
				gt--
			default:
				i++
			}
		}

		// sa[lo:lt] < v = sa[lt:gt+1] < sa[gt+1:hi]
		work = append(work,
			partition{lo: p.lo, hi: lt, d: p.d},
			partition{lo: gt + 1, hi: p.hi, d: p.d},
		)
		if v == terminator {
			// Every suffix here ended at the same depth; only the code tells them apart.
			slices.Sort(sa[lt : gt+1])
		} else {
			work = append(work, partition{lo: lt, hi: gt + 1, d: p.d + 1})
		}
	}
}

// insertionSort sorts a small run of suffixes that share their first d characters.
func (f *flatText) insertionSort(sa []int, d int) {
	for i := 1; i < len(sa); i++ {
		for j := i; j > 0 && f.compareSuffixes(sa[j], sa[j-1], d) < 0; j-- {
			sa[j], sa[j-1] = sa[j-1], sa[j]
		}
	}
}

// compareSuffixes compares the suffixes at codes a and b starting at depth d.
// Suffixes that are equal through their terminators compare by code.
func (f *flatText) compareSuffixes(a, b, d int) int {
	for ; ; d++ {
		ca, cb := f.charAt(a, d), f.charAt(b, d)
		if ca != cb {
			return cmp.Compare(ca, cb)
		}
		if ca == terminator {
			return cmp.Compare(a, b)
		}
	}
}
