// Package strcoll provides locale-independent comparators for entry
// names. Sorting must produce the same order on every machine regardless
// of LC_COLLATE, so both comparators work on raw bytes: Compare is plain
// byte-wise order and CompareFold folds ASCII letters only.
package strcoll

import "bytes"

// Compare returns -1, 0 or 1 comparing a and b byte-wise.
func Compare(a, b []byte) int {
	return bytes.Compare(a, b)
}

// CompareFold compares a and b with ASCII letters folded to lower case.
// Names that are fold-equal are tie-broken byte-wise, so the order is
// total and deterministic: "A.txt" sorts before "a.txt".
func CompareFold(a, b []byte) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		ca, cb := foldByte(a[i]), foldByte(b[i])
		if ca != cb {
			if ca < cb {
				return -1
			}
			return 1
		}
	}
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return bytes.Compare(a, b)
}

func foldByte(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
